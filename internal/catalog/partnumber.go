// Package catalog implements the aggregation pipeline that turns the flat
// per-SKU product collection into the grouped, stock-aware, price-aware view
// the storefront serves: part-number decoding, attribute extraction, stock
// resolution and family aggregation.
package catalog

// The rightmost characters of a part number encode structured data:
//
//	ABC123456 7 56
//	          │ └─ frame size (last 2 chars, when both digits)
//	          └─── battery capacity digit (3rd from the end, electric only)
//
// Stripping the last 2 digits yields the size-family key (same model/color,
// different sizes); stripping the last 3 yields the capacity-family key
// (same model/color across sizes AND battery capacities).

var capacityWhByCode = map[byte]int{
	'4': 400,
	'5': 500,
	'6': 600,
	'7': 750,
	'8': 800,
	'9': 900,
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// SizeCode returns the trailing two-character frame size code, when both
// characters are ASCII digits.
func SizeCode(partNumber string) (string, bool) {
	n := len(partNumber)
	if n < 2 || !isDigit(partNumber[n-2]) || !isDigit(partNumber[n-1]) {
		return "", false
	}
	return partNumber[n-2:], true
}

// SizeFamilyKey strips the trailing 2-digit size code when present; part
// numbers without one are their own key.
func SizeFamilyKey(partNumber string) string {
	if _, ok := SizeCode(partNumber); ok {
		return partNumber[:len(partNumber)-2]
	}
	return partNumber
}

// CapacityCode returns the character three from the end of the part number.
// The digit only carries meaning for electric products; callers decide.
func CapacityCode(partNumber string) (string, bool) {
	if len(partNumber) < 3 {
		return "", false
	}
	return string(partNumber[len(partNumber)-3]), true
}

// CapacityFamilyKey strips the trailing three characters whenever the length
// allows. Stripping is unconditional; grouping by capacity family is always
// meaningful for battery variant search even though the capacity value only
// means something on electric items.
func CapacityFamilyKey(partNumber string) string {
	if len(partNumber) <= 3 {
		return partNumber
	}
	return partNumber[:len(partNumber)-3]
}

// CapacityCodeToWh maps a capacity digit to watt-hours. Unknown codes have
// no capacity.
func CapacityCodeToWh(code string) (int, bool) {
	if len(code) != 1 {
		return 0, false
	}
	wh, ok := capacityWhByCode[code[0]]
	return wh, ok
}

// PartNumberCapacityWh decodes the capacity digit straight off a part number.
func PartNumberCapacityWh(partNumber string) (int, bool) {
	code, ok := CapacityCode(partNumber)
	if !ok {
		return 0, false
	}
	return CapacityCodeToWh(code)
}
