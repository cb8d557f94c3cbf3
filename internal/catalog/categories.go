package catalog

import (
	"strings"

	"github.com/adamcernik/biketime-public-sub000/internal/model"
)

// Public-facing category tags. The supplier feed carries dozens of free-text
// category labels; the storefront shows a handful of fixed tags. The mapping
// differs by electric flag; the same raw label can map to a different tag,
// or be hidden outright, depending on whether the product is electric.
const (
	TagHardtail    = "Hardtail"
	TagFullSus     = "Celopéra"
	TagGravel      = "Gravel"
	TagTrekking    = "Trekking"
	TagCity        = "Město"
	TagYouth       = "Mládež"
	TagRoad        = "Silnice"
	TagKids        = "Dětské"
	TagSUVFullSus  = "SUV Celopéra"
	TagSUVTrekking = "SUV/Trekking"
)

// hidden marks raw labels that exist in the feed but must not surface in the
// catalog at all (not in facets, not in category-filtered results).
const hidden = ""

var displayTagNonElectric = map[string]string{
	"mtb hardtail":       TagHardtail,
	"hardtail":           TagHardtail,
	"mtb celoodpružené":  TagFullSus,
	"mtb celoodpruzene":  TagFullSus,
	"celoodpružené":      TagFullSus,
	"gravel":             TagGravel,
	"trekking":           TagTrekking,
	"cross":              TagTrekking,
	"město":              TagCity,
	"mesto":              TagCity,
	"city":               TagCity,
	"mládež":             TagYouth,
	"mladez":             TagYouth,
	"junior":             TagYouth,
	"silnice":            TagRoad,
	"silniční":           TagRoad,
	"road":               TagRoad,
	"dětské":             TagKids,
	"detske":             TagKids,
	"dětské kolo":        TagKids,
}

var displayTagElectric = map[string]string{
	"e-mtb hardtail":       TagHardtail,
	"e-hardtail":           TagHardtail,
	"e-mtb celoodpružené":  TagFullSus,
	"e-mtb celoodpruzene":  TagFullSus,
	"e-mtb full":           TagFullSus,
	"e-gravel":             TagGravel,
	"e-trekking":           TagTrekking,
	"e-cross":              TagTrekking,
	"e-město":              TagCity,
	"e-mesto":              TagCity,
	"e-city":               TagCity,
	"e-mládež":             TagYouth,
	"e-junior":             TagYouth,
	"e-silnice":            TagRoad,
	"e-road":               TagRoad,
	"e-dětské":             TagKids,
	"e-suv":                TagSUVFullSus,
	"e-suv celoodpružené":  TagSUVFullSus,
	"e-suv trekking":       TagSUVTrekking,
	"e-suv/trekking":       TagSUVTrekking,
	// Speed pedelecs are stocked but never listed on the storefront.
	"e-speed": hidden,
}

// DisplayTag maps a raw supplier category label to its public tag under the
// given electric flag. Unmapped labels are hidden.
func DisplayTag(rawCategory string, electric bool) string {
	key := strings.ToLower(strings.TrimSpace(rawCategory))
	if key == "" {
		return hidden
	}
	table := displayTagNonElectric
	if electric {
		table = displayTagElectric
	}
	return table[key]
}

// DisplayCategory computes the public tag for one record.
func DisplayCategory(p *model.Product, electric bool) string {
	return DisplayTag(Category(p), electric)
}
