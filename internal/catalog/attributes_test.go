package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/adamcernik/biketime-public-sub000/internal/model"
)

func TestIsPlaceholder(t *testing.T) {
	assert.True(t, IsPlaceholder("unknown"))
	assert.True(t, IsPlaceholder("  Unknown - Manual Entry Required  "))
	assert.True(t, IsPlaceholder("nutno doplnit ručně"))
	assert.False(t, IsPlaceholder("Corratec"))
	assert.False(t, IsPlaceholder(""))
}

func TestCategory_PlaceholderHidden(t *testing.T) {
	p := &model.Product{Category: "Unknown - manual entry required"}
	assert.Equal(t, "", Category(p))

	p = &model.Product{Category: "  E-Trekking "}
	assert.Equal(t, "E-Trekking", Category(p))
}

func TestCategory_FallbackKeys(t *testing.T) {
	p := &model.Product{Specifications: map[string]string{"kategorie": "Gravel"}}
	assert.Equal(t, "Gravel", Category(p))
}

func TestIsElectric_CategoryPrefix(t *testing.T) {
	assert.True(t, IsElectric(&model.Product{Category: "E-MTB"}))
	assert.True(t, IsElectric(&model.Product{Category: "e-trekking"}))
	assert.False(t, IsElectric(&model.Product{Category: "MTB hardtail"}))
}

func TestIsElectric_DriveField(t *testing.T) {
	p := &model.Product{
		Category:       "Trekking",
		Specifications: map[string]string{"pohon": "Elektro Bosch CX"},
	}
	assert.True(t, IsElectric(p))
}

// Adding an electric signal can only ever flip the answer to true.
func TestIsElectric_SignalsAreAdditive(t *testing.T) {
	base := &model.Product{Category: "E-MTB"}
	assert.True(t, IsElectric(base))

	withDrive := &model.Product{
		Category:       "E-MTB",
		Specifications: map[string]string{"driveType": "Elektro"},
	}
	assert.True(t, IsElectric(withDrive))
}

func TestPrice_DeclaredWins(t *testing.T) {
	declared := 29990.0
	p := &model.Product{
		DeclaredPrice:  &declared,
		Specifications: map[string]string{"cena": "11111"},
	}
	d, ok := Price(p)
	assert.True(t, ok)
	assert.True(t, d.Equal(decimal.NewFromFloat(29990)))
}

func TestPrice_AltKeyFallback(t *testing.T) {
	p := &model.Product{Extra: map[string]interface{}{"mocCzk": "54 990,-"}}
	d, ok := Price(p)
	assert.True(t, ok)
	assert.True(t, d.Equal(decimal.NewFromInt(54990)))
}

func TestPrice_SpecificationsScan(t *testing.T) {
	p := &model.Product{Specifications: map[string]string{"Doporučená cena CZK": "129 990 Kč"}}
	d, ok := Price(p)
	assert.True(t, ok)
	assert.True(t, d.Equal(decimal.NewFromInt(129990)))
}

func TestPrice_Absent(t *testing.T) {
	_, ok := Price(&model.Product{Specifications: map[string]string{"weight": "14 kg"}})
	assert.False(t, ok)
}

func TestParseAmount(t *testing.T) {
	cases := map[string]string{
		"29 990,-":  "29990",
		"29990":     "29990",
		"CZK 54990": "54990",
		"54 990 Kč": "54990",
		"129,90":    "129.90",
	}
	for in, want := range cases {
		d, ok := ParseAmount(in)
		assert.True(t, ok, in)
		expected, _ := decimal.NewFromString(want)
		assert.True(t, d.Equal(expected), "%s -> %s", in, d)
	}

	for _, in := range []string{"", "n/a", ",-", "..."} {
		_, ok := ParseAmount(in)
		assert.False(t, ok, in)
	}
}

func TestCapacityWh_BatteryFieldWins(t *testing.T) {
	// Free-text battery field beats the part-number digit.
	p := &model.Product{
		PartNumber:     "CO1234756", // digit 7 -> 750
		Specifications: map[string]string{"baterie": "Bosch PowerTube 625 Wh"},
	}
	wh, ok := CapacityWh(p, true)
	assert.True(t, ok)
	assert.Equal(t, 625, wh)
}

func TestCapacityWh_PartNumberFallbackElectricOnly(t *testing.T) {
	p := &model.Product{PartNumber: "CO1234756"}

	wh, ok := CapacityWh(p, true)
	assert.True(t, ok)
	assert.Equal(t, 750, wh)

	_, ok = CapacityWh(p, false)
	assert.False(t, ok)
}

func TestModelYear(t *testing.T) {
	p := &model.Product{Specifications: map[string]string{"modelYear": "2025"}}
	y, ok := ModelYear(p)
	assert.True(t, ok)
	assert.Equal(t, 2025, y)

	p = &model.Product{Specifications: map[string]string{"rok": "model 2024/25"}}
	y, ok = ModelYear(p)
	assert.True(t, ok)
	assert.Equal(t, 2024, y)

	_, ok = ModelYear(&model.Product{})
	assert.False(t, ok)
}

func TestStringAt_CaseInsensitive(t *testing.T) {
	p := &model.Product{
		Extra:          map[string]interface{}{"MocCZK": 54990},
		Specifications: map[string]string{"Baterie": "500 Wh"},
	}
	assert.Equal(t, "54990", stringAt(p, "mocczk"))
	assert.Equal(t, "500 Wh", stringAt(p, "baterie"))
	assert.Equal(t, "", stringAt(p, "missing"))
}
