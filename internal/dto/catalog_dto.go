package dto

import "github.com/shopspring/decimal"

// ─── Query parameters ────────────────────────────────────────────────────────

// CatalogFilter carries the raw query string values. Numeric and boolean
// fields stay strings on purpose: unparseable values mean "filter absent",
// never a request error.
type CatalogFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Size     string `form:"size"`
	Year     string `form:"year"`
	Ebike    string `form:"ebike"`
	InStock  string `form:"inStock"`
	Page     string `form:"page"`
	PageSize string `form:"pageSize"`
	Refresh  string `form:"refresh"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

// AggregatedProduct is one storefront row: a whole product family merged
// into a single item. PriceLevelsCzk and DealerPriceCzk are only populated
// for authenticated dealer/admin responses; shaping, enforced per endpoint.
type AggregatedProduct struct {
	ID             string         `json:"id"`
	PartNumber     string         `json:"partNumber"`
	Brand          string         `json:"brand"`
	Model          string         `json:"model"`
	Color          string         `json:"color,omitempty"`
	Category       string         `json:"category,omitempty"`
	IsEbike        bool           `json:"isEbike"`
	ImageURL       string         `json:"imageUrl,omitempty"`
	ModelYear      *int           `json:"modelYear,omitempty"`
	Sizes          []string       `json:"sizes"`
	CapacitiesWh   []int          `json:"capacitiesWh"`
	StockQtyBySize map[string]int `json:"stockQtyBySize"`
	StockSizes     []string       `json:"stockSizes"`
	OnTheWaySizes  []string       `json:"onTheWaySizes"`
	TotalStock     int            `json:"totalStock"`

	PriceCzk       *decimal.Decimal           `json:"priceCzk"`
	DealerPriceCzk *decimal.Decimal           `json:"dealerPriceCzk,omitempty"`
	PriceLevelsCzk map[string]decimal.Decimal `json:"priceLevelsCzk,omitempty"`

	BatteryVariants []AggregatedProduct `json:"batteryVariants,omitempty"`
}

// CatalogListResponse is the well-formed list envelope; always returned
// whole, possibly with empty items, never mixed with a partial error.
type CatalogListResponse struct {
	Items      []AggregatedProduct `json:"items"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"pageSize"`
	TotalPages int                 `json:"totalPages"`

	CategoryOptions []string `json:"categoryOptions"`
	SizeOptions     []string `json:"sizeOptions"`
	YearOptions     []int    `json:"yearOptions"`
}
