package service

import (
	"github.com/adamcernik/biketime-public-sub000/internal/catalog"
	"github.com/adamcernik/biketime-public-sub000/internal/dto"
)

// toAggregatedDTO shapes one aggregate for the wire. Slices and maps are
// never nil so JSON consumers always see [] / {}. Tier prices only appear
// when the response options allow them.
func toAggregatedDTO(a *catalog.Aggregate, opts ResponseOptions) dto.AggregatedProduct {
	rep := a.Representative

	out := dto.AggregatedProduct{
		ID:             rep.ID.Hex(),
		PartNumber:     rep.PartNumber,
		Brand:          rep.Brand,
		Model:          rep.Model,
		Color:          rep.Color,
		Category:       a.DisplayTag,
		IsEbike:        a.Electric,
		ImageURL:       rep.ImageURL,
		Sizes:          orEmpty(a.Sizes),
		CapacitiesWh:   orEmpty(a.CapacitiesWh),
		StockQtyBySize: a.StockBySize,
		StockSizes:     orEmpty(a.StockSizes),
		OnTheWaySizes:  orEmpty(a.OnTheWaySizes),
		TotalStock:     a.TotalStock,
		PriceCzk:       a.Price,
	}
	if out.StockQtyBySize == nil {
		out.StockQtyBySize = map[string]int{}
	}
	if a.ModelYear > 0 {
		year := a.ModelYear
		out.ModelYear = &year
	}

	if opts.IncludePriceLevels && len(a.TierPrices) > 0 {
		out.PriceLevelsCzk = a.TierPrices
	}
	if opts.DealerTier != "" {
		if price, ok := a.TierPrices[opts.DealerTier]; ok {
			out.DealerPriceCzk = &price
		}
	}

	for _, v := range a.Variants {
		out.BatteryVariants = append(out.BatteryVariants, toAggregatedDTO(v, opts))
	}
	return out
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
