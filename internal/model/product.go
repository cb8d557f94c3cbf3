package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product is one stored SKU document: one record per exact
// size/battery/color variant, identified by its part number.
//
// Supplier feed imports are heterogeneous; the same logical attribute may
// arrive under different key spellings depending on the import batch. Known
// fields are declared; everything else lands in Extra (top-level) or
// Specifications (the supplier's secondary field bag) and is read through the
// catalog extractors.
type Product struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PartNumber string             `bson:"partNumber" json:"partNumber"`
	Brand      string             `bson:"brand,omitempty" json:"brand"`
	Model      string             `bson:"model,omitempty" json:"model"`
	Color      string             `bson:"color,omitempty" json:"color,omitempty"`
	Category   string             `bson:"category,omitempty" json:"category,omitempty"`
	ImageURL   string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`

	// IsActive is the soft-delete flag; only active records participate in
	// the public catalog.
	IsActive bool `bson:"isActive" json:"isActive"`

	// DeclaredPrice is the explicitly-set canonical retail price (CZK).
	// When present it wins over anything derived from the field bags.
	DeclaredPrice *float64 `bson:"declaredPrice,omitempty" json:"declaredPrice,omitempty"`

	// SupplierStockQuantity is the quantity self-reported by the upstream
	// feed. Fallback stock signal only; ignored entirely when the stock
	// ledger is non-empty. Typed loosely because feed data is dirty.
	SupplierStockQuantity interface{} `bson:"supplierStockQuantity,omitempty" json:"supplierStockQuantity,omitempty"`

	Specifications map[string]string `bson:"specifications,omitempty" json:"specifications,omitempty"`

	// Extra catches every top-level key not declared above.
	Extra map[string]interface{} `bson:",inline" json:"-"`
}
