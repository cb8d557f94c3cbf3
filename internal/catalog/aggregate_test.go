package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/adamcernik/biketime-public-sub000/internal/model"
)

// ── Fixtures ─────────────────────────────────────────────────────────────────

func sku(partNumber string, mutate ...func(*model.Product)) *model.Product {
	p := &model.Product{
		ID:         primitive.NewObjectID(),
		PartNumber: partNumber,
		Brand:      "Corratec",
		Model:      "E Power RS 160",
		Color:      "blue",
		Category:   "E-MTB celoodpružené",
		IsActive:   true,
		Specifications: map[string]string{
			"modelYear": "2025",
		},
	}
	for _, m := range mutate {
		m(p)
	}
	return p
}

func nonElectric(p *model.Product) {
	p.Category = "MTB hardtail"
	p.Model = "X Vert"
}

func withDeclared(price float64) func(*model.Product) {
	return func(p *model.Product) { p.DeclaredPrice = &price }
}

// Electric family "CO1000": two capacities (5 -> 500, 7 -> 750), two sizes
// each (44, 49).
func electricFamily() []*model.Product {
	return []*model.Product{
		sku("CO1000544"),
		sku("CO1000549"),
		sku("CO1000744"),
		sku("CO1000749"),
	}
}

// ── AggregateCatalog ─────────────────────────────────────────────────────────

func TestAggregateCatalog_GroupsByCapacityFamily(t *testing.T) {
	products := append(electricFamily(),
		sku("WI2000017", nonElectric),
		sku("WI2000019", nonElectric),
	)

	aggs := AggregateCatalog(products, NewResolver(nil))
	require.Len(t, aggs, 2)

	// All four electric SKUs collapse into one row.
	e := aggs[0]
	assert.Equal(t, "CO1000", e.FamilyKey)
	assert.True(t, e.Electric)
	assert.Equal(t, []string{"44", "49"}, e.Sizes)
	assert.Equal(t, []int{500, 750}, e.CapacitiesWh)

	n := aggs[1]
	assert.Equal(t, "WI2000", n.FamilyKey)
	assert.False(t, n.Electric)
	assert.Equal(t, []string{"17", "19"}, n.Sizes)
}

func TestAggregateCatalog_Idempotent(t *testing.T) {
	products := append(electricFamily(), sku("WI2000017", nonElectric))
	resolver := NewResolver([]model.StockLedgerEntry{{Key: "CO1000544", OnHand: 2, InTransit: 1}})

	first := AggregateCatalog(products, resolver)
	second := AggregateCatalog(products, resolver)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].FamilyKey, second[i].FamilyKey)
		assert.Equal(t, first[i].Sizes, second[i].Sizes)
		assert.Equal(t, first[i].CapacitiesWh, second[i].CapacitiesWh)
		assert.Equal(t, first[i].StockBySize, second[i].StockBySize)
		assert.Equal(t, first[i].TotalStock, second[i].TotalStock)
		assert.Equal(t, first[i].Representative.PartNumber, second[i].Representative.PartNumber)
	}
}

func TestAggregateCatalog_NonElectricHasNoCapacities(t *testing.T) {
	// The capacity digit position decodes (5 -> 500) but the family is not
	// electric, so no capacity badges.
	aggs := AggregateCatalog([]*model.Product{
		sku("WI2000517", nonElectric),
		sku("WI2000519", nonElectric),
	}, NewResolver(nil))
	require.Len(t, aggs, 1)
	assert.Empty(t, aggs[0].CapacitiesWh)
}

func TestAggregateCatalog_StockPerSize(t *testing.T) {
	resolver := NewResolver([]model.StockLedgerEntry{
		{Key: "CO1000544", OnHand: 2, InTransit: 0},
		{Key: "CO1000549", OnHand: 0, InTransit: 3},
		// 744 and 749 absent: zero.
	})

	aggs := AggregateCatalog(electricFamily(), resolver)
	require.Len(t, aggs, 1)
	a := aggs[0]

	assert.Equal(t, 5, a.TotalStock)
	assert.Equal(t, map[string]int{"44": 2, "49": 3}, a.StockBySize)
	assert.Equal(t, []string{"44", "49"}, a.StockSizes)
	// Size 49 has units only in transit.
	assert.Equal(t, []string{"49"}, a.OnTheWaySizes)
}

func TestAggregateCatalog_PlaceholderTitleBlanked(t *testing.T) {
	products := []*model.Product{
		sku("CO1000544", func(p *model.Product) {
			p.Brand = "Unknown - manual entry required"
		}),
	}
	aggs := AggregateCatalog(products, NewResolver(nil))
	require.Len(t, aggs, 1)
	assert.Equal(t, "", aggs[0].Representative.Brand)
	assert.Equal(t, "E Power RS 160", aggs[0].Representative.Model)
}

func TestAggregateCatalog_UntitledFamilyDropped(t *testing.T) {
	products := []*model.Product{
		sku("CO1000544", func(p *model.Product) {
			p.Brand = "unknown"
			p.Model = "  "
		}),
	}
	assert.Empty(t, AggregateCatalog(products, NewResolver(nil)))
}

func TestAggregateCatalog_RepresentativePrefersImageThenCapacity(t *testing.T) {
	noImage := sku("CO1000749")
	withImage := sku("CO1000544", func(p *model.Product) { p.ImageURL = "https://img/x.jpg" })

	aggs := AggregateCatalog([]*model.Product{noImage, withImage}, NewResolver(nil))
	require.Len(t, aggs, 1)
	assert.Equal(t, "CO1000544", aggs[0].Representative.PartNumber)

	// Without images the higher capacity digit wins.
	aggs = AggregateCatalog(electricFamily(), NewResolver(nil))
	require.Len(t, aggs, 1)
	assert.Equal(t, "CO1000744", aggs[0].Representative.PartNumber)
}

func TestGroupPrice_DeclaredBeatsExtracted(t *testing.T) {
	products := []*model.Product{
		sku("CO1000544", func(p *model.Product) {
			p.Specifications["cena"] = "99 990"
		}),
		sku("CO1000549", withDeclared(89990)),
	}
	aggs := AggregateCatalog(products, NewResolver(nil))
	require.Len(t, aggs, 1)
	require.NotNil(t, aggs[0].Price)
	assert.True(t, aggs[0].Price.Equal(decimal.NewFromInt(89990)))
}

func TestGroupTierPrices_FirstWinsAcrossMembers(t *testing.T) {
	products := []*model.Product{
		sku("CO1000544", func(p *model.Product) {
			p.Specifications["Cena A"] = "80 000"
		}),
		sku("CO1000549", func(p *model.Product) {
			p.Specifications["Cena A"] = "70 000"
			p.Specifications["Cena B"] = "75 000"
		}),
	}
	aggs := AggregateCatalog(products, NewResolver(nil))
	require.Len(t, aggs, 1)
	tiers := aggs[0].TierPrices
	assert.True(t, tiers["A"].Equal(decimal.NewFromInt(80000)))
	assert.True(t, tiers["B"].Equal(decimal.NewFromInt(75000)))
}

// ── AggregateFamily & variants ───────────────────────────────────────────────

func TestAggregateFamily_SizesAndVariants(t *testing.T) {
	family := electricFamily()
	target := family[2] // CO1000744, size 44

	a := AggregateFamily(family, NewResolver(nil), target)
	require.NotNil(t, a)

	// Detail merges the size family (same capacity digit).
	assert.Equal(t, "CO1000744", a.Representative.PartNumber)
	assert.Equal(t, []string{"44", "49"}, a.Sizes)

	// Battery variants cover the whole capacity family, ascending.
	require.Len(t, a.Variants, 2)
	assert.Equal(t, []int{500}, a.Variants[0].CapacitiesWh)
	assert.Equal(t, []int{750}, a.Variants[1].CapacitiesWh)

	// Variant representatives prefer the selected size (44).
	assert.Equal(t, "CO1000544", a.Variants[0].Representative.PartNumber)
	assert.Equal(t, "CO1000744", a.Variants[1].Representative.PartNumber)
}

func TestAggregateFamily_TargetIsRepresentative(t *testing.T) {
	family := electricFamily()
	family[1].ImageURL = "https://img/better.jpg"
	target := family[0] // would lose the rep contest

	a := AggregateFamily(family, NewResolver(nil), target)
	require.NotNil(t, a)
	assert.Equal(t, target.PartNumber, a.Representative.PartNumber)
}

func TestAggregateFamily_NonElectricHasNoVariants(t *testing.T) {
	products := []*model.Product{
		sku("WI2000017", nonElectric),
		sku("WI2000019", nonElectric),
	}
	a := AggregateFamily(products, NewResolver(nil), products[0])
	require.NotNil(t, a)
	assert.Empty(t, a.Variants)
}

func TestAggregateFamily_UntitledReturnsNil(t *testing.T) {
	p := sku("CO1000544", func(p *model.Product) {
		p.Brand = "unknown"
		p.Model = "unknown"
	})
	assert.Nil(t, AggregateFamily([]*model.Product{p}, NewResolver(nil), p))
}

// ── OrderDefault ─────────────────────────────────────────────────────────────

func TestOrderDefault_FourBuckets(t *testing.T) {
	items := []*Aggregate{
		{FamilyKey: "n-old", Electric: false, ModelYear: 2024},
		{FamilyKey: "e-old", Electric: true, ModelYear: 2024},
		{FamilyKey: "n-new", Electric: false, ModelYear: 2025},
		{FamilyKey: "e-new", Electric: true, ModelYear: 2025},
	}
	got := OrderDefault(items)
	keys := []string{got[0].FamilyKey, got[1].FamilyKey, got[2].FamilyKey, got[3].FamilyKey}
	assert.Equal(t, []string{"e-new", "e-old", "n-new", "n-old"}, keys)
}

func TestOrderDefault_StableWithinBucket(t *testing.T) {
	items := []*Aggregate{
		{FamilyKey: "a", Electric: true, ModelYear: 2025},
		{FamilyKey: "b", Electric: true, ModelYear: 2025},
		{FamilyKey: "c", Electric: true, ModelYear: 2025},
	}
	got := OrderDefault(items)
	assert.Equal(t, []string{"a", "b", "c"},
		[]string{got[0].FamilyKey, got[1].FamilyKey, got[2].FamilyKey})
}
