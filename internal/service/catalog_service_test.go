package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/adamcernik/biketime-public-sub000/internal/cache"
	"github.com/adamcernik/biketime-public-sub000/internal/dto"
	"github.com/adamcernik/biketime-public-sub000/internal/model"
	"github.com/adamcernik/biketime-public-sub000/internal/repository"
)

// ── In-memory repository stubs ───────────────────────────────────────────────

type stubProductRepo struct {
	products []*model.Product
	finds    int
}

func (r *stubProductRepo) FindAllActive(_ context.Context) ([]*model.Product, error) {
	r.finds++
	var out []*model.Product
	for _, p := range r.products {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindAll(_ context.Context) ([]*model.Product, error) {
	return r.products, nil
}

func (r *stubProductRepo) FindActiveByID(_ context.Context, id string) (*model.Product, error) {
	for _, p := range r.products {
		if p.ID.Hex() == id && p.IsActive {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubProductRepo) UpdateByID(_ context.Context, id string, _ bson.M) error {
	for _, p := range r.products {
		if p.ID.Hex() == id {
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *stubProductRepo) UpsertBatch(_ context.Context, products []model.Product) (int, error) {
	return len(products), nil
}

type stubStockRepo struct {
	entries []model.StockLedgerEntry
}

func (r *stubStockRepo) FindAll(_ context.Context) ([]model.StockLedgerEntry, error) {
	return r.entries, nil
}

func (r *stubStockRepo) Upsert(_ context.Context, key string, onHand, inTransit int) error {
	r.entries = append(r.entries, model.StockLedgerEntry{Key: key, OnHand: onHand, InTransit: inTransit})
	return nil
}

// ── Fixtures ─────────────────────────────────────────────────────────────────

func product(partNumber, brand, modelName, category, year string, mutate ...func(*model.Product)) *model.Product {
	p := &model.Product{
		ID:         primitive.NewObjectID(),
		PartNumber: partNumber,
		Brand:      brand,
		Model:      modelName,
		Category:   category,
		IsActive:   true,
		Specifications: map[string]string{
			"modelYear": year,
		},
	}
	for _, m := range mutate {
		m(p)
	}
	return p
}

func withTier(tier, value string) func(*model.Product) {
	return func(p *model.Product) { p.Specifications["Cena "+tier] = value }
}

// Catalog: one electric trekking family (2025), one hardtail family (2024),
// one road family (2025).
func testCatalog() []*model.Product {
	return []*model.Product{
		product("EB1000544", "Corratec", "e-Power Trekking", "E-Trekking", "2025", withTier("A", "60 000"), withTier("B", "58 000")),
		product("EB1000549", "Corratec", "e-Power Trekking", "E-Trekking", "2025"),
		product("HT2000017", "Ghost", "Kato", "MTB hardtail", "2024"),
		product("HT2000019", "Ghost", "Kato", "MTB hardtail", "2024"),
		product("RD3000053", "Lapierre", "Xelius", "Silnice", "2025"),
	}
}

func newTestService(products []*model.Product, entries []model.StockLedgerEntry) (CatalogService, *stubProductRepo) {
	repo := &stubProductRepo{products: products}
	stock := &stubStockRepo{entries: entries}
	return NewCatalogService(repo, stock, cache.New(time.Minute), time.Minute), repo
}

func listAll(t *testing.T, svc CatalogService, filter dto.CatalogFilter, opts ResponseOptions) *dto.CatalogListResponse {
	t.Helper()
	resp, err := svc.List(context.Background(), filter, opts)
	require.NoError(t, err)
	return resp
}

// ── List ─────────────────────────────────────────────────────────────────────

func TestList_AggregatesFamilies(t *testing.T) {
	svc, _ := newTestService(testCatalog(), nil)

	resp := listAll(t, svc, dto.CatalogFilter{}, ResponseOptions{})
	assert.Equal(t, 3, resp.Total)
	assert.Len(t, resp.Items, 3)
	assert.Equal(t, 1, resp.TotalPages)

	// Default ordering: electric current-year family first.
	assert.True(t, resp.Items[0].IsEbike)
	assert.Equal(t, []string{"44", "49"}, resp.Items[0].Sizes)
}

func TestList_PublicNeverCarriesTierPrices(t *testing.T) {
	svc, _ := newTestService(testCatalog(), nil)

	resp := listAll(t, svc, dto.CatalogFilter{}, ResponseOptions{})
	for _, it := range resp.Items {
		assert.Nil(t, it.DealerPriceCzk)
		assert.Empty(t, it.PriceLevelsCzk)
	}
}

func TestList_DealerTierShaping(t *testing.T) {
	svc, _ := newTestService(testCatalog(), nil)

	resp := listAll(t, svc, dto.CatalogFilter{Ebike: "true"}, ResponseOptions{DealerTier: "A"})
	require.Equal(t, 1, resp.Total)
	it := resp.Items[0]
	require.NotNil(t, it.DealerPriceCzk)
	assert.True(t, it.DealerPriceCzk.Equal(decimal.NewFromInt(60000)))
	// Single-tier shaping never exposes the full map.
	assert.Empty(t, it.PriceLevelsCzk)
}

func TestList_AdminGetsFullPriceLevels(t *testing.T) {
	svc, _ := newTestService(testCatalog(), nil)

	resp := listAll(t, svc, dto.CatalogFilter{Ebike: "true"}, ResponseOptions{IncludePriceLevels: true})
	require.Equal(t, 1, resp.Total)
	levels := resp.Items[0].PriceLevelsCzk
	require.Len(t, levels, 2)
	assert.True(t, levels["A"].Equal(decimal.NewFromInt(60000)))
	assert.True(t, levels["B"].Equal(decimal.NewFromInt(58000)))
}

func TestList_SearchFilter(t *testing.T) {
	svc, _ := newTestService(testCatalog(), nil)

	resp := listAll(t, svc, dto.CatalogFilter{Search: "kato"}, ResponseOptions{})
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Ghost", resp.Items[0].Brand)

	resp = listAll(t, svc, dto.CatalogFilter{Search: "HT2000"}, ResponseOptions{})
	assert.Equal(t, 1, resp.Total)
}

func TestList_InStockFilter_EmptyEnvelope(t *testing.T) {
	// No stock anywhere: the response is a well-formed empty page.
	svc, _ := newTestService(testCatalog(), nil)

	resp := listAll(t, svc, dto.CatalogFilter{InStock: "true"}, ResponseOptions{})
	assert.Equal(t, 0, resp.Total)
	assert.NotNil(t, resp.Items)
	assert.Len(t, resp.Items, 0)
	assert.Equal(t, 1, resp.TotalPages)
}

func TestList_InStockFilter_LedgerDriven(t *testing.T) {
	entries := []model.StockLedgerEntry{{Key: "HT2000017", OnHand: 4}}
	svc, _ := newTestService(testCatalog(), entries)

	resp := listAll(t, svc, dto.CatalogFilter{InStock: "true"}, ResponseOptions{})
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Ghost", resp.Items[0].Brand)
	assert.Equal(t, 4, resp.Items[0].TotalStock)
}

func TestList_YearFilterAppliedBeforeAggregation(t *testing.T) {
	svc, _ := newTestService(testCatalog(), nil)

	resp := listAll(t, svc, dto.CatalogFilter{Year: "2024"}, ResponseOptions{})
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Ghost", resp.Items[0].Brand)

	// The year facet still shows every year in the catalog.
	assert.Equal(t, []int{2025, 2024}, resp.YearOptions)
}

func TestList_CategoryFacetSelfExclusion(t *testing.T) {
	svc, _ := newTestService(testCatalog(), nil)

	// With an active category filter the category facet still lists the
	// alternatives that match the remaining filters.
	resp := listAll(t, svc, dto.CatalogFilter{Category: "Hardtail"}, ResponseOptions{})
	require.Equal(t, 1, resp.Total)
	assert.ElementsMatch(t, []string{"Hardtail", "Trekking", "Silnice"}, resp.CategoryOptions)

	// The size facet respects the category filter.
	assert.ElementsMatch(t, []string{"17", "19"}, resp.SizeOptions)
}

func TestList_SizeFacetSelfExclusion(t *testing.T) {
	svc, _ := newTestService(testCatalog(), nil)

	resp := listAll(t, svc, dto.CatalogFilter{Size: "44"}, ResponseOptions{})
	require.Equal(t, 1, resp.Total)
	// Size options ignore the size filter itself.
	assert.ElementsMatch(t, []string{"17", "19", "44", "49", "53"}, resp.SizeOptions)
	// Category options respect it.
	assert.ElementsMatch(t, []string{"Trekking"}, resp.CategoryOptions)
}

func TestList_LenientParsing(t *testing.T) {
	svc, _ := newTestService(testCatalog(), nil)

	// Garbage numeric/boolean values mean "filter absent", never an error.
	resp := listAll(t, svc, dto.CatalogFilter{Year: "rok", Ebike: "maybe", Page: "x", PageSize: "-2"}, ResponseOptions{})
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, DefaultPageSize, resp.PageSize)
}

func TestList_Pagination(t *testing.T) {
	svc, _ := newTestService(testCatalog(), nil)

	resp := listAll(t, svc, dto.CatalogFilter{Page: "2", PageSize: "2"}, ResponseOptions{})
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Len(t, resp.Items, 1)

	// Page far past the end: empty items, same envelope.
	resp = listAll(t, svc, dto.CatalogFilter{Page: "9", PageSize: "2"}, ResponseOptions{})
	assert.Len(t, resp.Items, 0)
	assert.Equal(t, 3, resp.Total)
}

func TestList_SnapshotCached(t *testing.T) {
	svc, repo := newTestService(testCatalog(), nil)

	listAll(t, svc, dto.CatalogFilter{}, ResponseOptions{})
	first := repo.finds
	listAll(t, svc, dto.CatalogFilter{}, ResponseOptions{})
	assert.Equal(t, first, repo.finds, "second list should hit the snapshot cache")

	listAll(t, svc, dto.CatalogFilter{Refresh: "true"}, ResponseOptions{})
	assert.Greater(t, repo.finds, first, "refresh must bypass the cache")
}

// ── Detail ───────────────────────────────────────────────────────────────────

func TestDetail_NotFound(t *testing.T) {
	svc, _ := newTestService(testCatalog(), nil)

	_, err := svc.Detail(context.Background(), primitive.NewObjectID().Hex(), ResponseOptions{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDetail_BatteryVariants(t *testing.T) {
	products := testCatalog()
	// Second capacity for the electric family (7 -> 750 Wh).
	products = append(products,
		product("EB1000744", "Corratec", "e-Power Trekking", "E-Trekking", "2025"),
		product("EB1000749", "Corratec", "e-Power Trekking", "E-Trekking", "2025"),
	)
	svc, _ := newTestService(products, nil)

	target := products[0] // EB1000544
	detail, err := svc.Detail(context.Background(), target.ID.Hex(), ResponseOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"44", "49"}, detail.Sizes)
	require.Len(t, detail.BatteryVariants, 2)
	assert.Equal(t, []int{500}, detail.BatteryVariants[0].CapacitiesWh)
	assert.Equal(t, []int{750}, detail.BatteryVariants[1].CapacitiesWh)
}

func TestDetail_NonElectricHasEmptyCapacities(t *testing.T) {
	products := testCatalog()
	svc, _ := newTestService(products, nil)

	target := products[2] // hardtail
	detail, err := svc.Detail(context.Background(), target.ID.Hex(), ResponseOptions{})
	require.NoError(t, err)
	assert.NotNil(t, detail.CapacitiesWh)
	assert.Empty(t, detail.CapacitiesWh)
	assert.Empty(t, detail.BatteryVariants)
}
