package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/isuraem/shopify-best-sellers-app/internal/collector"
	"github.com/isuraem/shopify-best-sellers-app/internal/config"
	"github.com/isuraem/shopify-best-sellers-app/internal/domain"
	"github.com/isuraem/shopify-best-sellers-app/internal/reconcile"
	"github.com/isuraem/shopify-best-sellers-app/internal/refdata"
	"github.com/isuraem/shopify-best-sellers-app/internal/repository"
	"github.com/isuraem/shopify-best-sellers-app/internal/shopify"
)

// ScanService drives the collect-then-classify read path for one key field.
type ScanService struct {
	client *shopify.Client
	repos  *repository.Repositories
	logger *zap.Logger
	cfg    config.ScanConfig
}

// NewScanService creates a new scan service. repos may be nil; scan history
// is then simply not recorded.
func NewScanService(cfg config.ScanConfig, client *shopify.Client, repos *repository.Repositories, logger *zap.Logger) *ScanService {
	return &ScanService{
		client: client,
		repos:  repos,
		logger: logger,
		cfg:    cfg,
	}
}

// Scan collects every variant in the store and classifies it by the chosen
// key field. Any page failure aborts the run; nothing partial is returned.
func (s *ScanService) Scan(ctx context.Context, keyField domain.KeyField) (*domain.ClassificationResult, error) {
	if !keyField.IsValid() {
		return nil, fmt.Errorf("unsupported key field: %s", keyField)
	}

	started := time.Now()
	col := collector.New(s.fetchVariantPage(keyField), s.cfg.PagesPerSecond, s.logger)
	collected, err := col.Collect(ctx)
	if err != nil {
		return nil, err
	}

	result := reconcile.Classify(keyField, collected.Records, collected.ParentsScanned)

	s.logger.Info("Scan complete",
		zap.String("key_field", string(keyField)),
		zap.Int("pages", collected.PagesFetched),
		zap.Int("parents", result.TotalParentsScanned),
		zap.Int("variants", result.TotalVariantsScanned),
		zap.Int("duplicate_groups", result.DuplicateGroupCount),
		zap.Int("missing_key", result.MissingKeyCount),
	)

	s.recordRun(ctx, result, time.Since(started))

	return result, nil
}

// CompareCSV parses an uploaded inventory export and cross-checks it against
// a fresh SKU scan. Parse errors are returned before any network call.
func (s *ScanService) CompareCSV(ctx context.Context, upload io.Reader) (*domain.ReferenceComparison, error) {
	rows, err := refdata.Parse(upload)
	if err != nil {
		return nil, err
	}

	col := collector.New(s.fetchVariantPage(domain.KeyFieldSKU), s.cfg.PagesPerSecond, s.logger)
	collected, err := col.Collect(ctx)
	if err != nil {
		return nil, err
	}

	comparison := reconcile.CompareReference(rows, collected.Records)

	s.logger.Info("CSV comparison complete",
		zap.Int("rows", comparison.TotalRows),
		zap.Int("not_found", comparison.NotFoundCount),
		zap.Int("mismatched", comparison.MismatchCount),
		zap.Int("matched", comparison.MatchedCount),
	)

	return comparison, nil
}

// HistoryEnabled reports whether a scan-history store is configured.
func (s *ScanService) HistoryEnabled() bool {
	return s.repos != nil && s.repos.ScanRun != nil
}

// History lists recent scan-run summaries.
func (s *ScanService) History(ctx context.Context, limit int) ([]*domain.ScanRun, error) {
	if !s.HistoryEnabled() {
		return nil, nil
	}
	return s.repos.ScanRun.List(ctx, limit)
}

// fetchVariantPage adapts the products connection to the collector contract,
// flattening each variant with the chosen key field.
func (s *ScanService) fetchVariantPage(keyField domain.KeyField) collector.FetchPageFunc {
	return func(ctx context.Context, cursor string) (*collector.Page, error) {
		variables := map[string]interface{}{
			"first": s.cfg.PageSize,
		}
		if cursor != "" {
			variables["after"] = cursor
		}

		resp, err := s.client.Execute(ctx, shopify.ProductVariantsQuery, variables)
		if err != nil {
			return nil, err
		}

		var result struct {
			Products struct {
				PageInfo struct {
					HasNextPage bool   `json:"hasNextPage"`
					EndCursor   string `json:"endCursor"`
				} `json:"pageInfo"`
				Edges []struct {
					Node struct {
						ID            string `json:"id"`
						Title         string `json:"title"`
						Status        string `json:"status"`
						FeaturedImage *struct {
							URL string `json:"url"`
						} `json:"featuredImage"`
						Variants struct {
							Edges []struct {
								Node struct {
									ID                string `json:"id"`
									Title             string `json:"title"`
									SKU               string `json:"sku"`
									Barcode           string `json:"barcode"`
									Price             string `json:"price"`
									InventoryQuantity int    `json:"inventoryQuantity"`
								} `json:"node"`
							} `json:"edges"`
						} `json:"variants"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"products"`
		}

		if err := json.Unmarshal(resp.Data, &result); err != nil {
			return nil, fmt.Errorf("failed to parse products response: %w", err)
		}

		page := &collector.Page{
			NextCursor:  result.Products.PageInfo.EndCursor,
			HasNextPage: result.Products.PageInfo.HasNextPage,
		}

		for _, edge := range result.Products.Edges {
			product := edge.Node
			imageURL := ""
			if product.FeaturedImage != nil {
				imageURL = product.FeaturedImage.URL
			}
			for _, vEdge := range product.Variants.Edges {
				v := vEdge.Node
				rec := domain.VariantRecord{
					VariantID:         v.ID,
					ParentID:          product.ID,
					ParentTitle:       product.Title,
					ParentImageURL:    imageURL,
					VariantTitle:      v.Title,
					InventoryQuantity: v.InventoryQuantity,
					Price:             v.Price,
					Status:            product.Status,
				}
				switch keyField {
				case domain.KeyFieldBarcode:
					rec.KeyField = v.Barcode
					rec.AltID = v.SKU
				default:
					rec.KeyField = v.SKU
					rec.AltID = v.Barcode
				}
				page.Records = append(page.Records, rec)
			}
		}

		return page, nil
	}
}

func (s *ScanService) recordRun(ctx context.Context, result *domain.ClassificationResult, took time.Duration) {
	if s.repos == nil || s.repos.ScanRun == nil {
		return
	}
	run := &domain.ScanRun{
		KeyField:        result.KeyField,
		ParentsScanned:  result.TotalParentsScanned,
		VariantsScanned: result.TotalVariantsScanned,
		DuplicateGroups: result.DuplicateGroupCount,
		Duplicates:      result.DuplicateCount,
		MissingKey:      result.MissingKeyCount,
		Unique:          result.UniqueCount,
		DurationMS:      took.Milliseconds(),
	}
	if err := s.repos.ScanRun.Create(ctx, run); err != nil {
		// History is best-effort; the scan result is still valid.
		s.logger.Warn("Failed to record scan run", zap.Error(err))
	}
}
