package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/adamcernik/biketime-public-sub000/internal/cache"
	"github.com/adamcernik/biketime-public-sub000/internal/catalog"
	"github.com/adamcernik/biketime-public-sub000/internal/dto"
	"github.com/adamcernik/biketime-public-sub000/internal/model"
	"github.com/adamcernik/biketime-public-sub000/internal/repository"
)

// ErrNotFound signals a missing/inactive record; handlers map it to 404.
var ErrNotFound = errors.New("not found")

const (
	DefaultPageSize = 24
	MaxPageSize     = 100

	// CacheKeyPrefix namespaces catalog snapshots; admin writes invalidate
	// the whole prefix.
	CacheKeyPrefix = "catalog:"
)

// ResponseOptions controls dealer-tier price shaping. Tier prices are
// computed for every aggregation pass but must never reach anonymous
// consumers; the options say what each endpoint is allowed to expose.
type ResponseOptions struct {
	IncludePriceLevels bool   // full tier map (admin)
	DealerTier         string // single tier price (authenticated dealer)
}

// CatalogService serves the filtered, paginated storefront list and the
// single-product detail, both backed by the same aggregation pipeline.
type CatalogService interface {
	List(ctx context.Context, filter dto.CatalogFilter, opts ResponseOptions) (*dto.CatalogListResponse, error)
	Detail(ctx context.Context, id string, opts ResponseOptions) (*dto.AggregatedProduct, error)
}

type catalogService struct {
	products repository.ProductRepository
	stock    repository.StockRepository
	cache    *cache.Cache
	ttl      time.Duration
}

func NewCatalogService(
	products repository.ProductRepository,
	stock repository.StockRepository,
	c *cache.Cache,
	ttl time.Duration,
) CatalogService {
	return &catalogService{products: products, stock: stock, cache: c, ttl: ttl}
}

// ── Query normalization ──────────────────────────────────────────────────────

// catalogQuery is the parsed form of dto.CatalogFilter. Parsing is lenient:
// an unparseable numeric/boolean value means "filter absent", never an error.
type catalogQuery struct {
	search   string
	category string
	size     string
	year     int
	ebike    *bool
	inStock  bool
	page     int
	pageSize int
	refresh  bool
}

func parseFilter(f dto.CatalogFilter) catalogQuery {
	q := catalogQuery{
		search:   strings.TrimSpace(f.Search),
		category: strings.TrimSpace(f.Category),
		size:     strings.TrimSpace(f.Size),
		page:     1,
		pageSize: DefaultPageSize,
		inStock:  strings.EqualFold(strings.TrimSpace(f.InStock), "true"),
		refresh:  strings.EqualFold(strings.TrimSpace(f.Refresh), "true"),
	}
	if y, err := strconv.Atoi(strings.TrimSpace(f.Year)); err == nil && y > 0 {
		q.year = y
	}
	switch strings.ToLower(strings.TrimSpace(f.Ebike)) {
	case "true":
		q.ebike = lo.ToPtr(true)
	case "false":
		q.ebike = lo.ToPtr(false)
	}
	if p, err := strconv.Atoi(strings.TrimSpace(f.Page)); err == nil && p >= 1 {
		q.page = p
	}
	if ps, err := strconv.Atoi(strings.TrimSpace(f.PageSize)); err == nil && ps >= 1 {
		if ps > MaxPageSize {
			ps = MaxPageSize
		}
		q.pageSize = ps
	}
	return q
}

// ── List ─────────────────────────────────────────────────────────────────────

func (s *catalogService) List(ctx context.Context, filter dto.CatalogFilter, opts ResponseOptions) (*dto.CatalogListResponse, error) {
	q := parseFilter(filter)

	aggs, err := s.aggregates(ctx, q.year, q.refresh)
	if err != nil {
		return nil, err
	}

	// The year facet must reflect every year regardless of the active year
	// filter, so it always derives from the all-years snapshot.
	allYears := aggs
	if q.year > 0 {
		if allYears, err = s.aggregates(ctx, 0, false); err != nil {
			return nil, err
		}
	}

	filtered := lo.Filter(aggs, func(a *catalog.Aggregate, _ int) bool {
		return matches(a, q, "")
	})

	// Default ordering only applies to the unscoped storefront view.
	if q.year == 0 && q.ebike == nil {
		filtered = catalog.OrderDefault(filtered)
	}

	total := len(filtered)
	totalPages := (total + q.pageSize - 1) / q.pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	start := (q.page - 1) * q.pageSize
	if start > total {
		start = total
	}
	end := start + q.pageSize
	if end > total {
		end = total
	}

	items := make([]dto.AggregatedProduct, 0, end-start)
	for _, a := range filtered[start:end] {
		items = append(items, toAggregatedDTO(a, opts))
	}

	return &dto.CatalogListResponse{
		Items:           items,
		Total:           total,
		Page:            q.page,
		PageSize:        q.pageSize,
		TotalPages:      totalPages,
		CategoryOptions: categoryOptions(aggs, q),
		SizeOptions:     sizeOptions(aggs, q),
		YearOptions:     yearOptions(allYears, q),
	}, nil
}

// ── Detail ───────────────────────────────────────────────────────────────────

func (s *catalogService) Detail(ctx context.Context, id string, opts ResponseOptions) (*dto.AggregatedProduct, error) {
	target, err := s.products.FindActiveByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	products, err := s.products.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.stock.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	agg := catalog.AggregateFamily(products, catalog.NewResolver(entries), target)
	if agg == nil {
		return nil, ErrNotFound
	}
	out := toAggregatedDTO(agg, opts)
	return &out, nil
}

// ── Aggregation snapshot ─────────────────────────────────────────────────────

// aggregates returns the aggregated catalog for one model-year scope, served
// from the snapshot cache unless refresh is forced. A snapshot is never
// reused across different year keys.
func (s *catalogService) aggregates(ctx context.Context, year int, refresh bool) ([]*catalog.Aggregate, error) {
	key := CacheKeyPrefix + "all"
	if year > 0 {
		key = fmt.Sprintf("%syear:%d", CacheKeyPrefix, year)
	}
	if !refresh {
		if v, ok := s.cache.Get(key); ok {
			return v.([]*catalog.Aggregate), nil
		}
	}

	products, err := s.products.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.stock.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	// The year filter applies to raw SKUs, before aggregation.
	if year > 0 {
		products = lo.Filter(products, func(p *model.Product, _ int) bool {
			y, ok := catalog.ModelYear(p)
			return ok && y == year
		})
	}

	aggs := catalog.AggregateCatalog(products, catalog.NewResolver(entries))
	s.cache.SetTTL(key, aggs, s.ttl)
	return aggs, nil
}

// ── Filtering & facets ───────────────────────────────────────────────────────

// matches applies every post-aggregation filter except the one named by
// exclude ("category" or "size"). Facet option lists must reflect all other
// active filters but never filter themselves by their own selection.
func matches(a *catalog.Aggregate, q catalogQuery, exclude string) bool {
	if q.search != "" && !searchMatch(a, q.search) {
		return false
	}
	if exclude != "category" && q.category != "" {
		if a.DisplayTag == "" || a.DisplayTag != q.category {
			return false
		}
	}
	if q.ebike != nil && a.Electric != *q.ebike {
		return false
	}
	if q.inStock && a.TotalStock <= 0 {
		return false
	}
	if exclude != "size" && q.size != "" && !lo.Contains(a.Sizes, q.size) {
		return false
	}
	return true
}

func searchMatch(a *catalog.Aggregate, term string) bool {
	t := strings.ToLower(term)
	rep := a.Representative
	for _, field := range []string{rep.Brand, rep.Model, rep.PartNumber, rep.Color} {
		if strings.Contains(strings.ToLower(field), t) {
			return true
		}
	}
	return false
}

func categoryOptions(aggs []*catalog.Aggregate, q catalogQuery) []string {
	var tags []string
	for _, a := range aggs {
		if a.DisplayTag != "" && matches(a, q, "category") {
			tags = append(tags, a.DisplayTag)
		}
	}
	tags = lo.Uniq(tags)
	sort.Strings(tags)
	return tags
}

func sizeOptions(aggs []*catalog.Aggregate, q catalogQuery) []string {
	var sizes []string
	for _, a := range aggs {
		if matches(a, q, "size") {
			sizes = append(sizes, a.Sizes...)
		}
	}
	sizes = lo.Uniq(sizes)
	sort.Strings(sizes)
	return sizes
}

func yearOptions(allYears []*catalog.Aggregate, q catalogQuery) []int {
	var years []int
	for _, a := range allYears {
		if a.ModelYear > 0 && matches(a, q, "") {
			years = append(years, a.ModelYear)
		}
	}
	years = lo.Uniq(years)
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
