package catalog

import (
	"strconv"
	"strings"

	"github.com/adamcernik/biketime-public-sub000/internal/model"
)

// Resolver merges the two possible stock signals into per-SKU quantities.
//
// If the stock ledger collection holds at least one entry the resolver is
// ledger-authoritative: quantities come from the ledger by exact part-number
// key, and SKUs absent from the ledger resolve to zero; the supplier feed
// quantity is ignored completely. With an empty ledger every SKU falls back
// to its supplier-reported quantity, treated as fully on-hand (the fallback
// signal cannot distinguish in-transit units).
type Resolver struct {
	authoritative bool
	byKey         map[string]ledgerQty
}

type ledgerQty struct {
	onHand    int
	inTransit int
}

// NewResolver builds a resolver from the full ledger collection. Malformed
// entries degrade to zero quantities; they never fail the aggregation pass.
func NewResolver(entries []model.StockLedgerEntry) *Resolver {
	r := &Resolver{
		authoritative: len(entries) > 0,
		byKey:         make(map[string]ledgerQty, len(entries)),
	}
	for _, e := range entries {
		if e.Key == "" {
			continue
		}
		r.byKey[e.Key] = ledgerQty{
			onHand:    coerceQty(e.OnHand),
			inTransit: coerceQty(e.InTransit),
		}
	}
	return r
}

// Authoritative reports whether the ledger is the trusted stock source.
func (r *Resolver) Authoritative() bool { return r.authoritative }

// Split returns the on-hand and in-transit quantities for one SKU.
func (r *Resolver) Split(p *model.Product) (onHand, inTransit int) {
	if r.authoritative {
		q := r.byKey[p.PartNumber]
		return q.onHand, q.inTransit
	}
	return coerceQty(p.SupplierStockQuantity), 0
}

// Available is the effective available quantity: on-hand plus in-transit.
func (r *Resolver) Available(p *model.Product) int {
	onHand, inTransit := r.Split(p)
	return onHand + inTransit
}

// InStock reports whether the SKU has any effective quantity.
func (r *Resolver) InStock(p *model.Product) bool { return r.Available(p) > 0 }

// Ledger returns the raw ledger quantities for one part-number key, zero
// when the key is absent. Unlike Split it never falls back to the supplier
// signal, so both signals can be shown side by side.
func (r *Resolver) Ledger(key string) (onHand, inTransit int) {
	q := r.byKey[key]
	return q.onHand, q.inTransit
}

// SupplierQuantity decodes the feed-reported quantity on its own.
func SupplierQuantity(p *model.Product) int {
	return coerceQty(p.SupplierStockQuantity)
}

// InTransitOnly reports whether the SKU's entire quantity is still on the way.
func (r *Resolver) InTransitOnly(p *model.Product) bool {
	onHand, inTransit := r.Split(p)
	return onHand == 0 && inTransit > 0
}

// coerceQty turns whatever the store handed back into a quantity. Dirty data
// is a fact of life in the feed; anything unparseable counts as zero.
func coerceQty(v interface{}) int {
	switch t := v.(type) {
	case nil:
		return 0
	case int:
		return t
	case int32:
		return int(t)
	case int64:
		return int(t)
	case float64:
		return int(t)
	case float32:
		return int(t)
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
		return 0
	default:
		return 0
	}
}
