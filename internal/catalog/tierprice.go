package catalog

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/adamcernik/biketime-public-sub000/internal/model"
)

// Dealer tier price extraction. A tier is a single letter A–F; the key it
// hides under varies wildly across import batches ("A", "cena B", "price-C",
// "C dealer price", "cenik-d czk", ...), so key recognition works on a
// normalized form of the key rather than exact spellings.

var tierKeyPrefixes = []string{"pricelist", "cenik", "price", "cena", "tier", "level", "dealer"}

var (
	currencySuffixes = []string{"czk", "kč", "kc", "eur"}
	priceTermPattern = regexp.MustCompile(`(price|cena|cenik|tier|level|moc|uvp|dealer)`)
)

// TierPrices scans both top-level and specifications keys of a record and
// returns every dealer tier price it can recognize, keyed by uppercase tier
// letter. First match per tier wins; values parse like any other price.
func TierPrices(p *model.Product) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)

	consider := func(key, value string) {
		tier, ok := TierFromKey(key)
		if !ok {
			return
		}
		if _, seen := out[tier]; seen {
			return
		}
		if d, ok := ParseAmount(value); ok {
			out[tier] = d
		}
	}

	for _, k := range sortedKeys(p.Extra) {
		consider(k, asString(p.Extra[k]))
	}
	for _, k := range sortedKeys(p.Specifications) {
		consider(k, p.Specifications[k])
	}
	return out
}

// TierFromKey decides whether a field key names a dealer tier. After
// normalization (whitespace/dots/hyphens stripped, lowercased, trailing
// currency suffix removed) a key counts when it is:
//
//	(i)   a bare letter a–f,
//	(ii)  a letter a–f left over after a known price-related prefix, or
//	(iii) a leading letter a–f whose remainder itself contains a price term.
func TierFromKey(key string) (string, bool) {
	k := normalizeTierKey(key)
	if k == "" {
		return "", false
	}

	if len(k) == 1 && isTierLetter(k[0]) {
		return strings.ToUpper(k), true
	}
	for _, prefix := range tierKeyPrefixes {
		rest := strings.TrimPrefix(k, prefix)
		if rest != k && len(rest) == 1 && isTierLetter(rest[0]) {
			return strings.ToUpper(rest), true
		}
	}
	if isTierLetter(k[0]) && priceTermPattern.MatchString(k[1:]) {
		return strings.ToUpper(k[:1]), true
	}
	return "", false
}

func normalizeTierKey(key string) string {
	k := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '.', '-':
			return -1
		}
		return r
	}, key)
	k = strings.ToLower(k)
	for _, suffix := range currencySuffixes {
		if len(k) > len(suffix) && strings.HasSuffix(k, suffix) {
			k = strings.TrimSuffix(k, suffix)
			break
		}
	}
	return k
}

func isTierLetter(b byte) bool { return b >= 'a' && b <= 'f' }
