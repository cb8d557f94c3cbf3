package catalog

import (
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/adamcernik/biketime-public-sub000/internal/model"
)

// Aggregate is the storefront-level view of one product family: every active
// SKU sharing a capacity-family key collapsed into a single row, with the
// size set, capacity set, stock and price merged across the group.
// Computed fresh per aggregation pass, never persisted.
type Aggregate struct {
	Representative *model.Product
	FamilyKey      string
	Electric       bool
	DisplayTag     string
	ModelYear      int // 0 = unknown
	Sizes          []string
	CapacitiesWh   []int
	StockBySize    map[string]int
	StockSizes     []string
	OnTheWaySizes  []string
	TotalStock     int
	Price          *decimal.Decimal
	TierPrices     map[string]decimal.Decimal

	// Variants holds one entry per battery capacity offered for the same
	// base model. Populated for the detail view only, electric only.
	Variants []*Aggregate
}

// AggregateCatalog groups every supplied SKU into families keyed by the
// capacity-family key (trailing three characters stripped) and merges each
// group into one Aggregate. Input order decides group order and every
// first-wins rule, so the pass is idempotent over the same input.
func AggregateCatalog(products []*model.Product, stock *Resolver) []*Aggregate {
	groups := make(map[string]*group)
	var order []string

	for _, p := range products {
		key := CapacityFamilyKey(p.PartNumber)
		g, ok := groups[key]
		if !ok {
			g = newGroup(key, "")
			groups[key] = g
			order = append(order, key)
		}
		g.add(p, stock)
	}

	out := make([]*Aggregate, 0, len(order))
	for _, key := range order {
		if a := groups[key].finish(); a != nil {
			out = append(out, a)
		}
	}
	return out
}

// AggregateFamily builds the detail view for one record: its size family
// merged the same way the list view merges (sizes, per-size stock, price with
// family fallback), plus the battery-variant list for electric products.
// Returns nil when the family has no presentable title.
func AggregateFamily(all []*model.Product, stock *Resolver, target *model.Product) *Aggregate {
	sizeKey := SizeFamilyKey(target.PartNumber)
	capKey := CapacityFamilyKey(target.PartNumber)

	g := newGroup(sizeKey, "")
	g.add(target, stock)
	for _, p := range all {
		if p.ID == target.ID {
			continue
		}
		if SizeFamilyKey(p.PartNumber) != sizeKey {
			continue
		}
		g.add(p, stock)
	}
	// The detail view is about this exact record, not the group's pick.
	g.rep = target

	a := g.finish()
	if a == nil {
		return nil
	}

	if a.Electric {
		var family []*model.Product
		for _, p := range all {
			if CapacityFamilyKey(p.PartNumber) == capKey {
				family = append(family, p)
			}
		}
		selectedSize, _ := SizeCode(target.PartNumber)
		a.Variants = BuildVariants(family, stock, selectedSize)
	}
	return a
}

// BuildVariants splits a capacity family into one aggregate per distinct
// battery capacity, ascending. Each variant's representative prefers a SKU
// matching the currently selected size.
func BuildVariants(family []*model.Product, stock *Resolver, selectedSize string) []*Aggregate {
	byCap := make(map[int]*group)
	var caps []int

	for _, p := range family {
		if !IsElectric(p) {
			continue
		}
		wh, ok := CapacityWh(p, true)
		if !ok {
			continue
		}
		g, seen := byCap[wh]
		if !seen {
			g = newGroup(CapacityFamilyKey(p.PartNumber), selectedSize)
			byCap[wh] = g
			caps = append(caps, wh)
		}
		g.add(p, stock)
	}

	sort.Ints(caps)
	out := make([]*Aggregate, 0, len(caps))
	for _, wh := range caps {
		if a := byCap[wh].finish(); a != nil {
			out = append(out, a)
		}
	}
	return out
}

// OrderDefault applies the storefront default ordering: electric products
// first, current-model-year products first within each partition. This is a
// stable 4-bucket partition, not a sort; ties keep prior relative order.
// Current year is the latest model year known to the list.
func OrderDefault(items []*Aggregate) []*Aggregate {
	latest := 0
	for _, it := range items {
		if it.ModelYear > latest {
			latest = it.ModelYear
		}
	}

	buckets := make([][]*Aggregate, 4)
	for _, it := range items {
		idx := 0
		if !it.Electric {
			idx = 2
		}
		if it.ModelYear != latest {
			idx++
		}
		buckets[idx] = append(buckets[idx], it)
	}
	return lo.Flatten(buckets)
}

// ── Group accumulation ───────────────────────────────────────────────────────

// repScore ranks representative candidates: selected-size match (variants
// only), then image presence, then higher decoded battery capacity. Greedy
// running max during the single pass; not a full sort.
type repScore struct {
	sizeMatch bool
	hasImage  bool
	capacity  int
}

func (s repScore) beats(o repScore) bool {
	if s.sizeMatch != o.sizeMatch {
		return s.sizeMatch
	}
	if s.hasImage != o.hasImage {
		return s.hasImage
	}
	return s.capacity > o.capacity
}

type group struct {
	key        string
	preferSize string

	members  []*model.Product
	rep      *model.Product
	repScore repScore

	electric bool
	sizeSet  map[string]struct{}
	capSet   map[int]struct{}

	onHandBySize  map[string]int
	transitBySize map[string]int
	totalOnHand   int
	totalTransit  int
}

func newGroup(key, preferSize string) *group {
	return &group{
		key:           key,
		preferSize:    preferSize,
		sizeSet:       make(map[string]struct{}),
		capSet:        make(map[int]struct{}),
		onHandBySize:  make(map[string]int),
		transitBySize: make(map[string]int),
	}
}

func (g *group) add(p *model.Product, stock *Resolver) {
	g.members = append(g.members, p)

	electric := IsElectric(p)
	g.electric = g.electric || electric

	onHand, inTransit := stock.Split(p)
	g.totalOnHand += onHand
	g.totalTransit += inTransit

	size, sized := SizeCode(p.PartNumber)
	if sized {
		g.sizeSet[size] = struct{}{}
		g.onHandBySize[size] += onHand
		g.transitBySize[size] += inTransit
	}

	if electric {
		if wh, ok := CapacityWh(p, true); ok {
			g.capSet[wh] = struct{}{}
		}
	}

	score := repScore{
		sizeMatch: g.preferSize != "" && sized && size == g.preferSize,
		hasImage:  p.ImageURL != "",
	}
	if wh, ok := PartNumberCapacityWh(p.PartNumber); ok {
		score.capacity = wh
	}
	if g.rep == nil || score.beats(g.repScore) {
		g.rep = p
		g.repScore = score
	}
}

// finish merges the accumulated group into one Aggregate. Returns nil for
// groups that end up without any presentable title.
func (g *group) finish() *Aggregate {
	if g.rep == nil {
		return nil
	}

	rep := *g.rep
	if IsPlaceholder(rep.Brand) {
		rep.Brand = ""
	}
	if IsPlaceholder(rep.Model) {
		rep.Model = ""
	}
	if strings.TrimSpace(rep.Brand) == "" && strings.TrimSpace(rep.Model) == "" {
		return nil
	}

	a := &Aggregate{
		Representative: &rep,
		FamilyKey:      g.key,
		Electric:       g.electric,
		TotalStock:     g.totalOnHand + g.totalTransit,
		StockBySize:    make(map[string]int, len(g.sizeSet)),
	}

	a.Sizes = lo.Keys(g.sizeSet)
	sort.Strings(a.Sizes)
	for _, size := range a.Sizes {
		total := g.onHandBySize[size] + g.transitBySize[size]
		a.StockBySize[size] = total
		if total > 0 {
			a.StockSizes = append(a.StockSizes, size)
		}
		if g.onHandBySize[size] == 0 && g.transitBySize[size] > 0 {
			a.OnTheWaySizes = append(a.OnTheWaySizes, size)
		}
	}

	// Non-electric products never carry capacity badges, regardless of what
	// their part numbers happen to decode to.
	if g.electric {
		a.CapacitiesWh = lo.Keys(g.capSet)
		sort.Ints(a.CapacitiesWh)
	}

	a.Price = groupPrice(g.members)
	a.TierPrices = groupTierPrices(g.members)

	if y, ok := ModelYear(&rep); ok {
		a.ModelYear = y
	} else {
		for _, m := range g.members {
			if y, ok := ModelYear(m); ok {
				a.ModelYear = y
				break
			}
		}
	}

	raw := Category(&rep)
	if raw == "" {
		for _, m := range g.members {
			if raw = Category(m); raw != "" {
				break
			}
		}
	}
	a.DisplayTag = DisplayTag(raw, g.electric)

	return a
}

// groupPrice picks the family price: an explicit canonical price on any
// member wins over anything the general extractor can derive, scanning
// members in input order both times.
func groupPrice(members []*model.Product) *decimal.Decimal {
	for _, m := range members {
		if m.DeclaredPrice != nil {
			d := decimal.NewFromFloat(*m.DeclaredPrice)
			return &d
		}
	}
	for _, m := range members {
		if d, ok := Price(m); ok {
			return &d
		}
	}
	return nil
}

// groupTierPrices merges dealer tier maps across the group, first value per
// tier wins.
func groupTierPrices(members []*model.Product) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, m := range members {
		for tier, price := range TierPrices(m) {
			if _, seen := out[tier]; !seen {
				out[tier] = price
			}
		}
	}
	return out
}
