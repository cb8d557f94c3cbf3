package dto

import "github.com/shopspring/decimal"

// AdminSkuRow is one raw record in the admin data grid; per-SKU, not
// aggregated, with both stock signals visible side by side.
type AdminSkuRow struct {
	ID             string                     `json:"id"`
	PartNumber     string                     `json:"partNumber"`
	Brand          string                     `json:"brand"`
	Model          string                     `json:"model"`
	Category       string                     `json:"category,omitempty"`
	IsActive       bool                       `json:"isActive"`
	SupplierQty    int                        `json:"supplierQty"`
	OnHand         int                        `json:"onHand"`
	InTransit      int                        `json:"inTransit"`
	PriceCzk       *decimal.Decimal           `json:"priceCzk"`
	PriceLevelsCzk map[string]decimal.Decimal `json:"priceLevelsCzk,omitempty"`
}

type AdminDataResponse struct {
	Items               []AggregatedProduct `json:"items"`
	Skus                []AdminSkuRow       `json:"skus"`
	SkuCount            int                 `json:"skuCount"`
	ActiveCount         int                 `json:"activeCount"`
	LedgerAuthoritative bool                `json:"ledgerAuthoritative"`
}

// UpdateProductRequest is a partial update; only non-nil fields are patched.
type UpdateProductRequest struct {
	Brand         *string  `json:"brand" validate:"omitempty,max=120"`
	Model         *string  `json:"model" validate:"omitempty,max=120"`
	Category      *string  `json:"category"`
	ImageURL      *string  `json:"imageUrl" validate:"omitempty,url"`
	DeclaredPrice *float64 `json:"declaredPrice" validate:"omitempty,min=0"`
	IsActive      *bool    `json:"isActive"`
}

type UpsertStockRequest struct {
	OnHand    int `json:"onHand" validate:"min=0"`
	InTransit int `json:"inTransit" validate:"min=0"`
}

type ImportRequest struct {
	FeedURL string `json:"feedUrl" validate:"omitempty,url"`
}

type ImportAcceptedResponse struct {
	JobID string `json:"jobId"`
}
