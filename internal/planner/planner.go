package planner

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/isuraem/shopify-best-sellers-app/internal/domain"
)

// ChildChange is one variant-level change inside a parent batch.
type ChildChange struct {
	ChildID  string
	NewValue string
}

// MutationBatch groups the selected children of one parent. The write API
// operates per parent, so each batch maps to exactly one call.
type MutationBatch struct {
	ParentID string
	Children []ChildChange
}

// Mutator is the write side of the external store contract.
type Mutator interface {
	// BulkUpdateChildren applies the key-field values to children of one
	// parent and returns how many were updated.
	BulkUpdateChildren(ctx context.Context, parentID string, changes []ChildChange) (int, error)
	// BulkDeleteChildren removes children of one parent and returns how many
	// were deleted.
	BulkDeleteChildren(ctx context.Context, parentID string, childIDs []string) (int, error)
}

// PlanBatches partitions a selection by owning parent, preserving first-seen
// parent order. The parent of each child is re-derived from the record itself,
// never taken from caller input.
//
// For ReassignField the new value is the prefix plus the numeric suffix of the
// variant's own ID, which is unique per variant and immutable, so re-running
// the action produces the same value.
func PlanBatches(selection []domain.VariantRecord, action domain.BulkAction, reassignPrefix string) []MutationBatch {
	batchIndex := make(map[string]int)
	var batches []MutationBatch

	for _, rec := range selection {
		idx, seen := batchIndex[rec.ParentID]
		if !seen {
			idx = len(batches)
			batchIndex[rec.ParentID] = idx
			batches = append(batches, MutationBatch{ParentID: rec.ParentID})
		}

		change := ChildChange{ChildID: rec.VariantID}
		if action == domain.ActionReassignField {
			change.NewValue = reassignPrefix + numericSuffix(rec.VariantID)
		}
		batches[idx].Children = append(batches[idx].Children, change)
	}

	return batches
}

// numericSuffix returns the trailing path segment of a GID
// ("gid://shopify/ProductVariant/43122345" -> "43122345"). A plain numeric ID
// passes through unchanged.
func numericSuffix(id string) string {
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}

// Executor runs planned batches against the store, one write call per parent,
// strictly sequentially. A failed parent does not stop the remaining parents;
// there is no rollback of parents that already succeeded.
type Executor struct {
	mutator Mutator
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewExecutor creates an executor. callsPerSecond throttles per-parent write
// calls; zero or negative disables throttling.
func NewExecutor(mutator Mutator, callsPerSecond float64, logger *zap.Logger) *Executor {
	var limiter *rate.Limiter
	if callsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(callsPerSecond), 1)
	}
	return &Executor{
		mutator: mutator,
		limiter: limiter,
		logger:  logger,
	}
}

// Execute plans and runs a bulk action over the selection. The result reports
// the count of variants updated plus each failed parent with its error; the
// first error message is also surfaced on the aggregate.
func (e *Executor) Execute(ctx context.Context, selection []domain.VariantRecord, action domain.BulkAction, reassignPrefix string) (*domain.ActionResult, error) {
	if !action.IsValid() {
		return nil, fmt.Errorf("unsupported action: %s", action)
	}

	batches := PlanBatches(selection, action, reassignPrefix)
	result := &domain.ActionResult{}

	for i, batch := range batches {
		if i > 0 && e.limiter != nil {
			if err := e.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("wait for rate limiter: %w", err)
			}
		}

		count, err := e.runBatch(ctx, batch, action)
		if err != nil {
			e.logger.Warn("Batch failed",
				zap.String("parent_id", batch.ParentID),
				zap.String("action", string(action)),
				zap.Error(err),
			)
			result.FailedBatches = append(result.FailedBatches, domain.BatchFailure{
				ParentID: batch.ParentID,
				Error:    err.Error(),
			})
			if result.Error == "" {
				result.Error = err.Error()
			}
			continue
		}
		result.Succeeded += count
	}

	e.logger.Info("Bulk action finished",
		zap.String("action", string(action)),
		zap.Int("batches", len(batches)),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed_batches", len(result.FailedBatches)),
	)

	return result, nil
}

func (e *Executor) runBatch(ctx context.Context, batch MutationBatch, action domain.BulkAction) (int, error) {
	switch action {
	case domain.ActionClearField, domain.ActionReassignField:
		return e.mutator.BulkUpdateChildren(ctx, batch.ParentID, batch.Children)
	case domain.ActionDeleteVariant:
		ids := make([]string, len(batch.Children))
		for i, c := range batch.Children {
			ids[i] = c.ChildID
		}
		return e.mutator.BulkDeleteChildren(ctx, batch.ParentID, ids)
	default:
		return 0, fmt.Errorf("unsupported action: %s", action)
	}
}
