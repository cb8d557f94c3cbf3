package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// StockLedgerEntry is one row of the internal tracked-stock collection,
// keyed by exact part number.
//
// Presence of any ledger entry switches the whole system into
// ledger-authoritative mode: supplier-reported quantities are ignored and
// SKUs absent from the ledger resolve to zero.
//
// Quantities are typed loosely on purpose; a malformed value must degrade
// to zero, never fail a catalog request.
type StockLedgerEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Key       string             `bson:"key" json:"key"`
	OnHand    interface{}        `bson:"onHand,omitempty" json:"onHand"`
	InTransit interface{}        `bson:"inTransit,omitempty" json:"inTransit"`
}
