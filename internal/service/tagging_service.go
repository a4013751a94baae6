package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/isuraem/shopify-best-sellers-app/internal/config"
	"github.com/isuraem/shopify-best-sellers-app/internal/domain"
	"github.com/isuraem/shopify-best-sellers-app/internal/shopify"
)

// TaggingService handles bulk tag and collection-assignment workflows.
// tagsAdd operates on one product at a time, so the same per-parent failure
// isolation applies: one failed product does not stop the rest.
type TaggingService struct {
	client  *shopify.Client
	logger  *zap.Logger
	limiter *rate.Limiter
}

// NewTaggingService creates a new tagging service
func NewTaggingService(cfg config.ScanConfig, client *shopify.Client, logger *zap.Logger) *TaggingService {
	var limiter *rate.Limiter
	if cfg.PagesPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.PagesPerSecond), 1)
	}
	return &TaggingService{
		client:  client,
		logger:  logger,
		limiter: limiter,
	}
}

// AddTags adds tags to each product independently. The result counts
// products tagged and reports each failed product with its error.
func (s *TaggingService) AddTags(ctx context.Context, productIDs []string, tags []string) (*domain.ActionResult, error) {
	if len(tags) == 0 {
		return nil, fmt.Errorf("no tags supplied")
	}

	result := &domain.ActionResult{}
	for i, productID := range productIDs {
		productID = normalizeGID(productID, shopify.ProductGID)
		if i > 0 && s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("wait for rate limiter: %w", err)
			}
		}

		if err := s.addTagsToProduct(ctx, productID, tags); err != nil {
			s.logger.Warn("tagsAdd failed", zap.String("product_id", productID), zap.Error(err))
			result.FailedBatches = append(result.FailedBatches, domain.BatchFailure{
				ParentID: productID,
				Error:    err.Error(),
			})
			if result.Error == "" {
				result.Error = err.Error()
			}
			continue
		}
		result.Succeeded++
	}

	return result, nil
}

// normalizeGID accepts either a full GID or a bare numeric ID and
// returns the full GID form the Admin API expects.
func normalizeGID(id string, build func(int64) string) string {
	if strings.HasPrefix(id, "gid://") {
		return id
	}
	if n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64); err == nil {
		return build(n)
	}
	return id
}

func (s *TaggingService) addTagsToProduct(ctx context.Context, productID string, tags []string) error {
	variables := map[string]interface{}{
		"id":   productID,
		"tags": tags,
	}

	resp, err := s.client.Execute(ctx, shopify.TagsAddMutation, variables)
	if err != nil {
		return fmt.Errorf("tagsAdd: %w", err)
	}

	var result struct {
		TagsAdd struct {
			UserErrors []struct {
				Field   []string `json:"field"`
				Message string   `json:"message"`
			} `json:"userErrors"`
		} `json:"tagsAdd"`
	}

	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("failed to parse tagsAdd response: %w", err)
	}

	if len(result.TagsAdd.UserErrors) > 0 {
		return fmt.Errorf("tagsAdd userErrors: %v", result.TagsAdd.UserErrors)
	}

	return nil
}

// AddToCollection adds products to a custom collection in a single call.
func (s *TaggingService) AddToCollection(ctx context.Context, collectionID string, productIDs []string) error {
	if len(productIDs) == 0 {
		return fmt.Errorf("no products supplied")
	}

	ids := make([]string, len(productIDs))
	for i, id := range productIDs {
		ids[i] = normalizeGID(id, shopify.ProductGID)
	}

	variables := map[string]interface{}{
		"id":         normalizeGID(collectionID, shopify.CollectionGID),
		"productIds": ids,
	}

	resp, err := s.client.Execute(ctx, shopify.CollectionAddProductsMutation, variables)
	if err != nil {
		return fmt.Errorf("collectionAddProducts: %w", err)
	}

	var result struct {
		CollectionAddProducts struct {
			Collection *struct {
				ID string `json:"id"`
			} `json:"collection"`
			UserErrors []struct {
				Field   []string `json:"field"`
				Message string   `json:"message"`
			} `json:"userErrors"`
		} `json:"collectionAddProducts"`
	}

	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("failed to parse collectionAddProducts response: %w", err)
	}

	if len(result.CollectionAddProducts.UserErrors) > 0 {
		return fmt.Errorf("collectionAddProducts userErrors: %v", result.CollectionAddProducts.UserErrors)
	}

	s.logger.Info("Added products to collection",
		zap.String("collection_id", collectionID),
		zap.Int("products", len(productIDs)),
	)

	return nil
}
