package planner

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/isuraem/shopify-best-sellers-app/internal/domain"
)

func record(variantID, parentID string) domain.VariantRecord {
	return domain.VariantRecord{
		VariantID: "gid://shopify/ProductVariant/" + variantID,
		ParentID:  "gid://shopify/Product/" + parentID,
	}
}

func TestPlanBatchesGroupsByParent(t *testing.T) {
	selection := []domain.VariantRecord{
		record("1", "10"),
		record("2", "11"),
		record("3", "10"),
		record("4", "12"),
	}

	batches := PlanBatches(selection, domain.ActionClearField, "SKU-")

	require.Len(t, batches, 3)
	assert.Equal(t, "gid://shopify/Product/10", batches[0].ParentID)
	assert.Len(t, batches[0].Children, 2)
	assert.Equal(t, "gid://shopify/Product/11", batches[1].ParentID)
	assert.Equal(t, "gid://shopify/Product/12", batches[2].ParentID)
}

func TestPlanBatchesClearFieldEmptiesValue(t *testing.T) {
	batches := PlanBatches([]domain.VariantRecord{record("1", "10")}, domain.ActionClearField, "SKU-")

	require.Len(t, batches, 1)
	assert.Equal(t, "", batches[0].Children[0].NewValue)
}

func TestPlanBatchesReassignDerivesFromVariantID(t *testing.T) {
	selection := []domain.VariantRecord{record("43122345", "10")}

	first := PlanBatches(selection, domain.ActionReassignField, "SKU-")
	second := PlanBatches(selection, domain.ActionReassignField, "SKU-")

	require.Len(t, first, 1)
	assert.Equal(t, "SKU-43122345", first[0].Children[0].NewValue)
	// Derived only from the immutable variant ID, so re-running yields the
	// same value.
	assert.Equal(t, first[0].Children[0].NewValue, second[0].Children[0].NewValue)
}

func TestPlanBatchesReassignAfterKeyChanged(t *testing.T) {
	rec := record("7", "10")
	rec.KeyField = "SKU-7" // already reassigned once

	batches := PlanBatches([]domain.VariantRecord{rec}, domain.ActionReassignField, "SKU-")

	assert.Equal(t, "SKU-7", batches[0].Children[0].NewValue)
}

type fakeMutator struct {
	failParents map[string]string
	updateCalls []string
	deleteCalls []string
}

func (f *fakeMutator) BulkUpdateChildren(_ context.Context, parentID string, changes []ChildChange) (int, error) {
	f.updateCalls = append(f.updateCalls, parentID)
	if msg, ok := f.failParents[parentID]; ok {
		return 0, fmt.Errorf("%s", msg)
	}
	return len(changes), nil
}

func (f *fakeMutator) BulkDeleteChildren(_ context.Context, parentID string, childIDs []string) (int, error) {
	f.deleteCalls = append(f.deleteCalls, parentID)
	if msg, ok := f.failParents[parentID]; ok {
		return 0, fmt.Errorf("%s", msg)
	}
	return len(childIDs), nil
}

func TestExecutePartialFailureIsolation(t *testing.T) {
	mutator := &fakeMutator{
		failParents: map[string]string{"gid://shopify/Product/11": "variant does not exist"},
	}
	executor := NewExecutor(mutator, 0, zap.NewNop())

	selection := []domain.VariantRecord{
		record("1", "10"),
		record("2", "10"),
		record("3", "11"),
		record("4", "12"),
	}

	result, err := executor.Execute(context.Background(), selection, domain.ActionClearField, "SKU-")
	require.NoError(t, err)

	// Both healthy parents were attempted despite the failure in between.
	assert.Equal(t, 3, result.Succeeded)
	require.Len(t, result.FailedBatches, 1)
	assert.Equal(t, "gid://shopify/Product/11", result.FailedBatches[0].ParentID)
	assert.Contains(t, result.FailedBatches[0].Error, "variant does not exist")
	assert.Contains(t, result.Error, "variant does not exist")
	assert.Len(t, mutator.updateCalls, 3)
}

func TestExecuteClearTwiceSucceedsBothTimes(t *testing.T) {
	mutator := &fakeMutator{}
	executor := NewExecutor(mutator, 0, zap.NewNop())
	selection := []domain.VariantRecord{record("1", "10")}

	for i := 0; i < 2; i++ {
		result, err := executor.Execute(context.Background(), selection, domain.ActionClearField, "SKU-")
		require.NoError(t, err)
		assert.Equal(t, 1, result.Succeeded)
		assert.Empty(t, result.FailedBatches)
	}
}

func TestExecuteDeleteUsesDeletePath(t *testing.T) {
	mutator := &fakeMutator{}
	executor := NewExecutor(mutator, 0, zap.NewNop())

	result, err := executor.Execute(context.Background(),
		[]domain.VariantRecord{record("1", "10"), record("2", "10")},
		domain.ActionDeleteVariant, "SKU-")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Succeeded)
	assert.Empty(t, mutator.updateCalls)
	assert.Equal(t, []string{"gid://shopify/Product/10"}, mutator.deleteCalls)
}

func TestExecuteRejectsUnknownAction(t *testing.T) {
	executor := NewExecutor(&fakeMutator{}, 0, zap.NewNop())

	_, err := executor.Execute(context.Background(),
		[]domain.VariantRecord{record("1", "10")},
		domain.BulkAction("EXPLODE"), "SKU-")
	assert.Error(t, err)
}
