package worker

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/adamcernik/biketime-public-sub000/internal/cache"
	"github.com/adamcernik/biketime-public-sub000/internal/infra"
	"github.com/adamcernik/biketime-public-sub000/internal/model"
	"github.com/adamcernik/biketime-public-sub000/internal/repository"
)

// ImportPayload identifies one supplier feed refresh job.
type ImportPayload struct {
	JobID   string `json:"job_id"`
	FeedURL string `json:"feed_url"`
}

// ImportWorker refreshes the products collection from the supplier CSV feed.
// Parsing is deliberately lenient; column headers are matched by name, any
// unrecognized column lands in the specifications bag, and rows without a
// part number are skipped. Writes commit in fixed-size chunks sequentially
// to respect store write-batch limits.
type ImportWorker struct {
	feed        *infra.FeedClient
	products    repository.ProductRepository
	dispatcher  *Dispatcher
	cache       *cache.Cache
	batchSize   int
	reportEmail string
}

func NewImportWorker(
	feed *infra.FeedClient,
	products repository.ProductRepository,
	dispatcher *Dispatcher,
	c *cache.Cache,
	batchSize int,
	reportEmail string,
) *ImportWorker {
	if batchSize <= 0 {
		batchSize = 250
	}
	return &ImportWorker{
		feed:        feed,
		products:    products,
		dispatcher:  dispatcher,
		cache:       c,
		batchSize:   batchSize,
		reportEmail: reportEmail,
	}
}

func (w *ImportWorker) Handle(ctx context.Context, job ImportPayload) error {
	started := time.Now()

	body, err := w.feed.Fetch(ctx, job.FeedURL)
	if err != nil {
		return fmt.Errorf("import %s: fetch feed: %w", job.JobID, err)
	}

	products, skipped := parseFeed(body)
	if len(products) == 0 {
		return fmt.Errorf("import %s: feed contained no usable rows", job.JobID)
	}

	written := 0
	for i := 0; i < len(products); i += w.batchSize {
		end := i + w.batchSize
		if end > len(products) {
			end = len(products)
		}
		n, err := w.products.UpsertBatch(ctx, products[i:end])
		if err != nil {
			return fmt.Errorf("import %s: batch %d: %w", job.JobID, i/w.batchSize, err)
		}
		written += n
	}

	// Every catalog snapshot is stale now.
	w.cache.DeletePrefix("catalog:")

	log.Info().
		Str("job_id", job.JobID).
		Int("rows", len(products)).
		Int("written", written).
		Int("skipped", skipped).
		Dur("took", time.Since(started)).
		Msg("feed import finished")

	if w.reportEmail != "" {
		report := EmailPayload{
			To:      w.reportEmail,
			Subject: "Supplier feed import finished",
			Body: fmt.Sprintf("Import %s finished in %s.\nRows: %d\nWritten: %d\nSkipped: %d\n",
				job.JobID, time.Since(started).Round(time.Second), len(products), written, skipped),
		}
		if err := w.dispatcher.EnqueueEmail(ctx, report); err != nil {
			log.Error().Err(err).Msg("failed to enqueue import report email")
		}
	}
	return nil
}

// parseFeed turns the raw CSV body into product documents. The feed is
// semicolon-separated with a header row; header names vary between batches,
// so matching is case-insensitive on a few known spellings.
func parseFeed(body []byte) (products []model.Product, skipped int) {
	reader := csv.NewReader(bytes.NewReader(body))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil || len(rows) < 2 {
		return nil, 0
	}

	header := rows[0]
	for _, row := range rows[1:] {
		p, ok := rowToProduct(header, row)
		if !ok {
			skipped++
			continue
		}
		products = append(products, p)
	}
	return products, skipped
}

func rowToProduct(header, row []string) (model.Product, bool) {
	p := model.Product{
		IsActive:       true,
		Specifications: make(map[string]string),
	}

	for i, name := range header {
		if i >= len(row) {
			break
		}
		value := strings.TrimSpace(row[i])
		if value == "" {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "partnumber", "part_number", "cislo", "objednaci cislo":
			p.PartNumber = value
		case "brand", "znacka":
			p.Brand = value
		case "model":
			p.Model = value
		case "color", "barva":
			p.Color = value
		case "category", "kategorie":
			p.Category = value
		case "image", "imageurl", "obrazek":
			p.ImageURL = value
		case "quantity", "qty", "stock", "sklad":
			p.SupplierStockQuantity = value
		default:
			p.Specifications[strings.TrimSpace(name)] = value
		}
	}

	if p.PartNumber == "" {
		return model.Product{}, false
	}
	return p, true
}
