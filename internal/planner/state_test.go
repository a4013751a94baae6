package planner

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isuraem/shopify-best-sellers-app/internal/domain"
)

func TestOperationLifecycle(t *testing.T) {
	op := NewOperation(domain.KeyFieldSKU, []domain.VariantRecord{record("1", "10")}, domain.ActionClearField)
	assert.Equal(t, domain.StateConfirming, op.State())

	require.NoError(t, op.BeginExecute())
	assert.Equal(t, domain.StateExecuting, op.State())

	// Double execute is rejected.
	assert.Error(t, op.BeginExecute())

	op.Finish(&domain.ActionResult{Succeeded: 1}, nil)
	assert.Equal(t, domain.StateIdle, op.State())
	assert.Nil(t, op.Selection)
}

func TestOperationFailureKeepsSelection(t *testing.T) {
	selection := []domain.VariantRecord{record("1", "10"), record("2", "11")}
	op := NewOperation(domain.KeyFieldBarcode, selection, domain.ActionDeleteVariant)

	require.NoError(t, op.BeginExecute())
	op.Finish(nil, fmt.Errorf("shopify unavailable"))

	// Back to Confirming with the selection intact so the operator can retry.
	assert.Equal(t, domain.StateConfirming, op.State())
	assert.Len(t, op.Selection, 2)
	assert.Equal(t, "shopify unavailable", op.Err)

	// Retry path works.
	require.NoError(t, op.BeginExecute())
}

// The key field an operation executes against is the one fixed when the
// selection was staged. A barcode selection must never run as a SKU write.
func TestOperationKeyFieldFixedAtStage(t *testing.T) {
	registry := NewRegistry()

	op := registry.Stage(domain.KeyFieldBarcode, []domain.VariantRecord{record("1", "10")}, domain.ActionClearField)
	assert.Equal(t, domain.KeyFieldBarcode, op.KeyField)

	got, ok := registry.Get(op.Token)
	require.True(t, ok)
	assert.Equal(t, domain.KeyFieldBarcode, got.KeyField)

	// Failure and retry do not change the field either.
	require.NoError(t, got.BeginExecute())
	got.Finish(nil, fmt.Errorf("shopify unavailable"))
	assert.Equal(t, domain.KeyFieldBarcode, got.KeyField)
}

func TestRegistryStageGetRemove(t *testing.T) {
	registry := NewRegistry()

	op := registry.Stage(domain.KeyFieldSKU, []domain.VariantRecord{record("1", "10")}, domain.ActionClearField)

	got, ok := registry.Get(op.Token)
	require.True(t, ok)
	assert.Same(t, op, got)

	registry.Remove(op.Token)
	_, ok = registry.Get(op.Token)
	assert.False(t, ok)
}
