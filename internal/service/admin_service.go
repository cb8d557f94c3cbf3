package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/adamcernik/biketime-public-sub000/internal/cache"
	"github.com/adamcernik/biketime-public-sub000/internal/catalog"
	"github.com/adamcernik/biketime-public-sub000/internal/dto"
	"github.com/adamcernik/biketime-public-sub000/internal/infra"
	"github.com/adamcernik/biketime-public-sub000/internal/model"
	"github.com/adamcernik/biketime-public-sub000/internal/repository"
	"github.com/adamcernik/biketime-public-sub000/internal/worker"
)

// AdminService backs the back-office surface: the combined data view, record
// patches, manual stock corrections, feed import triggers and the PDF price
// list export. Every write invalidates all cached catalog snapshots.
type AdminService interface {
	Data(ctx context.Context) (*dto.AdminDataResponse, error)
	UpdateProduct(ctx context.Context, id string, req dto.UpdateProductRequest) error
	UpsertStock(ctx context.Context, partNumber string, req dto.UpsertStockRequest) error
	TriggerImport(ctx context.Context, feedURL string) (string, error)
	PriceListPDF(ctx context.Context, tier string) ([]byte, error)
}

type adminService struct {
	products       repository.ProductRepository
	stock          repository.StockRepository
	dispatcher     *worker.Dispatcher
	cache          *cache.Cache
	defaultFeedURL string
}

func NewAdminService(
	products repository.ProductRepository,
	stock repository.StockRepository,
	dispatcher *worker.Dispatcher,
	c *cache.Cache,
	defaultFeedURL string,
) AdminService {
	return &adminService{
		products:       products,
		stock:          stock,
		dispatcher:     dispatcher,
		cache:          c,
		defaultFeedURL: defaultFeedURL,
	}
}

// Data assembles the admin view: the aggregated catalog with full tier
// prices, plus the raw per-SKU grid including inactive records and both
// stock signals.
func (s *adminService) Data(ctx context.Context) (*dto.AdminDataResponse, error) {
	all, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.stock.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resolver := catalog.NewResolver(entries)

	activeProducts := filterActive(all)
	aggs := catalog.AggregateCatalog(activeProducts, resolver)

	opts := ResponseOptions{IncludePriceLevels: true}
	items := make([]dto.AggregatedProduct, 0, len(aggs))
	for _, a := range aggs {
		items = append(items, toAggregatedDTO(a, opts))
	}

	skus := make([]dto.AdminSkuRow, 0, len(all))
	for _, p := range all {
		onHand, inTransit := resolver.Ledger(p.PartNumber)
		row := dto.AdminSkuRow{
			ID:          p.ID.Hex(),
			PartNumber:  p.PartNumber,
			Brand:       p.Brand,
			Model:       p.Model,
			Category:    p.Category,
			IsActive:    p.IsActive,
			SupplierQty: catalog.SupplierQuantity(p),
			OnHand:      onHand,
			InTransit:   inTransit,
		}
		if price, ok := catalog.Price(p); ok {
			row.PriceCzk = &price
		}
		if tiers := catalog.TierPrices(p); len(tiers) > 0 {
			row.PriceLevelsCzk = tiers
		}
		skus = append(skus, row)
	}

	return &dto.AdminDataResponse{
		Items:               items,
		Skus:                skus,
		SkuCount:            len(all),
		ActiveCount:         len(activeProducts),
		LedgerAuthoritative: resolver.Authoritative(),
	}, nil
}

// UpdateProduct patches the non-nil fields of one record. An empty patch is
// a no-op and does not touch the store or the cache.
func (s *adminService) UpdateProduct(ctx context.Context, id string, req dto.UpdateProductRequest) error {
	patch := bson.M{}
	if req.Brand != nil {
		patch["brand"] = strings.TrimSpace(*req.Brand)
	}
	if req.Model != nil {
		patch["model"] = strings.TrimSpace(*req.Model)
	}
	if req.Category != nil {
		patch["category"] = strings.TrimSpace(*req.Category)
	}
	if req.ImageURL != nil {
		patch["imageUrl"] = strings.TrimSpace(*req.ImageURL)
	}
	if req.DeclaredPrice != nil {
		patch["declaredPrice"] = *req.DeclaredPrice
	}
	if req.IsActive != nil {
		patch["isActive"] = *req.IsActive
	}
	if len(patch) == 0 {
		return nil
	}

	if err := s.products.UpdateByID(ctx, id, patch); err != nil {
		if err == repository.ErrNotFound {
			return ErrNotFound
		}
		return err
	}
	s.cache.DeletePrefix(CacheKeyPrefix)
	return nil
}

// UpsertStock writes one ledger row keyed by part number. The part number
// does not have to exist in the products collection; the ledger is its own
// source of truth.
func (s *adminService) UpsertStock(ctx context.Context, partNumber string, req dto.UpsertStockRequest) error {
	key := strings.TrimSpace(partNumber)
	if key == "" {
		return ErrNotFound
	}
	if err := s.stock.Upsert(ctx, key, req.OnHand, req.InTransit); err != nil {
		return err
	}
	s.cache.DeletePrefix(CacheKeyPrefix)
	return nil
}

// TriggerImport enqueues a supplier feed refresh and returns the job id.
// An empty feed URL falls back to the configured default.
func (s *adminService) TriggerImport(ctx context.Context, feedURL string) (string, error) {
	url := strings.TrimSpace(feedURL)
	if url == "" {
		url = s.defaultFeedURL
	}

	jobID := uuid.NewString()
	payload := worker.ImportPayload{JobID: jobID, FeedURL: url}
	if err := s.dispatcher.EnqueueImport(ctx, payload); err != nil {
		return "", err
	}
	return jobID, nil
}

// PriceListPDF renders the wholesale price list for one tier letter.
func (s *adminService) PriceListPDF(ctx context.Context, tier string) ([]byte, error) {
	all, err := s.products.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.stock.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	aggs := catalog.AggregateCatalog(all, catalog.NewResolver(entries))
	opts := ResponseOptions{IncludePriceLevels: true}
	items := make([]dto.AggregatedProduct, 0, len(aggs))
	for _, a := range aggs {
		items = append(items, toAggregatedDTO(a, opts))
	}
	return infra.PriceListPDF(items, tier)
}

func filterActive(products []*model.Product) []*model.Product {
	out := make([]*model.Product, 0, len(products))
	for _, p := range products {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out
}
