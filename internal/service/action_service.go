package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/isuraem/shopify-best-sellers-app/internal/config"
	"github.com/isuraem/shopify-best-sellers-app/internal/domain"
	"github.com/isuraem/shopify-best-sellers-app/internal/planner"
	"github.com/isuraem/shopify-best-sellers-app/internal/shopify"
)

// ActionService executes operator-confirmed bulk actions against Shopify.
type ActionService struct {
	client *shopify.Client
	logger *zap.Logger
	cfg    config.ScanConfig
}

// NewActionService creates a new action service
func NewActionService(cfg config.ScanConfig, client *shopify.Client, logger *zap.Logger) *ActionService {
	return &ActionService{
		client: client,
		logger: logger,
		cfg:    cfg,
	}
}

// ExecuteBulkAction plans per-parent batches from the selection and runs
// them. keyField decides whether updates write the SKU or the barcode.
func (s *ActionService) ExecuteBulkAction(ctx context.Context, keyField domain.KeyField, selection []domain.VariantRecord, action domain.BulkAction) (*domain.ActionResult, error) {
	if !keyField.IsValid() {
		return nil, fmt.Errorf("unsupported key field: %s", keyField)
	}

	mutator := &variantMutator{
		client:   s.client,
		keyField: keyField,
		logger:   s.logger,
	}
	executor := planner.NewExecutor(mutator, s.cfg.PagesPerSecond, s.logger)
	return executor.Execute(ctx, selection, action, s.cfg.ReassignPrefix)
}

// variantMutator is the Shopify-backed write side of the planner contract.
type variantMutator struct {
	client   *shopify.Client
	keyField domain.KeyField
	logger   *zap.Logger
}

func (m *variantMutator) BulkUpdateChildren(ctx context.Context, parentID string, changes []planner.ChildChange) (int, error) {
	variants := make([]shopify.ProductVariantsBulkInput, 0, len(changes))
	for _, change := range changes {
		value := change.NewValue
		input := shopify.ProductVariantsBulkInput{ID: change.ChildID}
		if m.keyField == domain.KeyFieldBarcode {
			input.Barcode = &value
		} else {
			input.InventoryItem = &shopify.InventoryItemInput{SKU: &value}
		}
		variants = append(variants, input)
	}

	variables := map[string]interface{}{
		"productId": parentID,
		"variants":  variants,
	}

	resp, err := m.client.Execute(ctx, shopify.ProductVariantsBulkUpdateMutation, variables)
	if err != nil {
		return 0, fmt.Errorf("productVariantsBulkUpdate: %w", err)
	}

	var result struct {
		ProductVariantsBulkUpdate struct {
			ProductVariants []struct {
				ID string `json:"id"`
			} `json:"productVariants"`
			UserErrors []struct {
				Field   []string `json:"field"`
				Message string   `json:"message"`
			} `json:"userErrors"`
		} `json:"productVariantsBulkUpdate"`
	}

	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return 0, fmt.Errorf("failed to parse bulk update response: %w", err)
	}

	if len(result.ProductVariantsBulkUpdate.UserErrors) > 0 {
		return 0, fmt.Errorf("productVariantsBulkUpdate userErrors: %v", result.ProductVariantsBulkUpdate.UserErrors)
	}

	updated := len(result.ProductVariantsBulkUpdate.ProductVariants)
	if updated == 0 {
		// Some API versions omit the variant list on success.
		updated = len(changes)
	}
	return updated, nil
}

func (m *variantMutator) BulkDeleteChildren(ctx context.Context, parentID string, childIDs []string) (int, error) {
	variables := map[string]interface{}{
		"productId":   parentID,
		"variantsIds": childIDs,
	}

	resp, err := m.client.Execute(ctx, shopify.ProductVariantsBulkDeleteMutation, variables)
	if err != nil {
		return 0, fmt.Errorf("productVariantsBulkDelete: %w", err)
	}

	var result struct {
		ProductVariantsBulkDelete struct {
			UserErrors []struct {
				Field   []string `json:"field"`
				Message string   `json:"message"`
			} `json:"userErrors"`
		} `json:"productVariantsBulkDelete"`
	}

	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return 0, fmt.Errorf("failed to parse bulk delete response: %w", err)
	}

	if len(result.ProductVariantsBulkDelete.UserErrors) > 0 {
		return 0, fmt.Errorf("productVariantsBulkDelete userErrors: %v", result.ProductVariantsBulkDelete.UserErrors)
	}

	return len(childIDs), nil
}
