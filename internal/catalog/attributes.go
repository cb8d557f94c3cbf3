package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/adamcernik/biketime-public-sub000/internal/model"
)

// Extractors derive normalized attributes from a raw heterogeneous record.
// Legacy import batches used different key spellings for the same semantic
// field, so every extractor walks an explicit ordered candidate list over the
// top-level document and the specifications bag. Dirty values never raise an
// error; they degrade to "absent".

// electricPrefix is the category marker for electric products ("E-MTB", ...).
const electricPrefix = "e-"

var (
	categoryKeys = []string{"kategorie", "categoryName", "typ", "produktTyp"}
	driveKeys    = []string{"driveType", "pohon", "antrieb", "drive", "motorTyp"}

	// Alternate top-level price spellings seen across import batches.
	altPriceKeys = []string{"priceCzk", "cena", "cenaCzk", "price", "moc", "mocCzk", "uvp", "doporucenaCena"}

	priceKeyPattern   = regexp.MustCompile(`(?i)(price|cena|moc|uvp)`)
	batteryKeys       = []string{"battery", "batteryModel", "baterie", "akku", "akumulator"}
	batteryKeyPattern = regexp.MustCompile(`(?i)(batt?er|akku|akumul)`)
	whPattern         = regexp.MustCompile(`(?i)(\d{3,4})\s*wh`)
	yearKeys          = []string{"modelYear", "year", "rok", "rokModelu", "modeljahr"}
	yearPattern       = regexp.MustCompile(`\d{4}`)
)

// Placeholder sentinels that import batches write into fields a human was
// supposed to fill in later. They must never surface as real values.
var placeholderSentinels = []string{
	"unknown",
	"manual entry required",
	"unknown - manual entry required",
	"neznámý",
	"neznámá",
	"nutno doplnit ručně",
	"neznámý - nutno doplnit ručně",
}

// IsPlaceholder reports whether a field value is one of the known
// fill-me-in-later sentinels.
func IsPlaceholder(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, sentinel := range placeholderSentinels {
		if v == sentinel {
			return true
		}
	}
	return false
}

// Category returns the normalized raw supplier category label, or "" when
// the record only carries a placeholder.
func Category(p *model.Product) string {
	raw := strings.TrimSpace(p.Category)
	if raw == "" {
		raw = lookup(p, categoryKeys...)
	}
	if IsPlaceholder(raw) {
		return ""
	}
	return raw
}

// IsElectric reports whether a SKU is an electric product: the category
// carries the e-prefix marker, or a drivetrain field mentions "elektro".
// Either signal alone wins.
func IsElectric(p *model.Product) bool {
	if strings.HasPrefix(strings.ToLower(Category(p)), electricPrefix) {
		return true
	}
	drive := lookup(p, driveKeys...)
	return strings.Contains(strings.ToLower(drive), "elektro")
}

// Price resolves the retail price (CZK) of a single record:
//
//  1. the explicit canonical declaredPrice field,
//  2. a fixed list of alternate top-level price key spellings,
//  3. a scan of specifications keys matching price/cena/moc/uvp.
//
// First numeric match wins.
func Price(p *model.Product) (decimal.Decimal, bool) {
	if p.DeclaredPrice != nil {
		return decimal.NewFromFloat(*p.DeclaredPrice), true
	}
	for _, key := range altPriceKeys {
		if v := stringAt(p, key); v != "" {
			if d, ok := ParseAmount(v); ok {
				return d, true
			}
		}
	}
	for _, key := range sortedKeys(p.Specifications) {
		if !priceKeyPattern.MatchString(key) {
			continue
		}
		if d, ok := ParseAmount(p.Specifications[key]); ok {
			return d, true
		}
	}
	return decimal.Zero, false
}

// CapacityWh resolves the battery capacity in watt-hours. Free-text battery
// fields ("625 Wh" somewhere in a battery model name) win; the part-number
// capacity digit is only a fallback, and only for electric products.
func CapacityWh(p *model.Product, electric bool) (int, bool) {
	for _, key := range batteryKeys {
		if wh, ok := parseWh(stringAt(p, key)); ok {
			return wh, true
		}
	}
	for _, key := range sortedKeys(p.Specifications) {
		if !batteryKeyPattern.MatchString(key) {
			continue
		}
		if wh, ok := parseWh(p.Specifications[key]); ok {
			return wh, true
		}
	}
	if electric {
		return PartNumberCapacityWh(p.PartNumber)
	}
	return 0, false
}

// ModelYear returns the first year field parseable as an integer.
func ModelYear(p *model.Product) (int, bool) {
	for _, key := range yearKeys {
		v := stringAt(p, key)
		if v == "" {
			continue
		}
		if y, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return y, true
		}
		if m := yearPattern.FindString(v); m != "" {
			y, _ := strconv.Atoi(m)
			return y, true
		}
	}
	return 0, false
}

// ParseAmount parses a price-ish string leniently: every character that is
// not a digit or separator is stripped, comma-as-decimal becomes a period,
// and the result is parsed as a decimal number.
func ParseAmount(s string) (decimal.Decimal, bool) {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == ',':
			b.WriteByte('.')
		}
	}
	cleaned := strings.Trim(b.String(), ".")
	if cleaned == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func parseWh(s string) (int, bool) {
	m := whPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	wh, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return wh, true
}

// ── Field bag access ─────────────────────────────────────────────────────────

// lookup returns the first non-empty value among candidate keys, checking the
// top-level document first and the specifications bag second.
func lookup(p *model.Product, keys ...string) string {
	for _, key := range keys {
		if v := stringAt(p, key); v != "" {
			return v
		}
	}
	return ""
}

// stringAt reads one key case-insensitively from the top-level extras and
// the specifications bag.
func stringAt(p *model.Product, key string) string {
	lower := strings.ToLower(key)
	for _, k := range sortedKeys(p.Extra) {
		if strings.ToLower(k) != lower {
			continue
		}
		if v := strings.TrimSpace(asString(p.Extra[k])); v != "" {
			return v
		}
	}
	for _, k := range sortedKeys(p.Specifications) {
		if strings.ToLower(k) != lower {
			continue
		}
		if v := strings.TrimSpace(p.Specifications[k]); v != "" {
			return v
		}
	}
	return ""
}

func asString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// sortedKeys gives deterministic scan order over a field bag; aggregation
// must be idempotent, so map iteration order can never leak into results.
func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
