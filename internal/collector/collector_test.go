package collector

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/isuraem/shopify-best-sellers-app/internal/domain"
	pkgerrors "github.com/isuraem/shopify-best-sellers-app/pkg/errors"
)

func rec(variantID, parentID string) domain.VariantRecord {
	return domain.VariantRecord{VariantID: variantID, ParentID: parentID}
}

func pages(ps ...*Page) FetchPageFunc {
	cursors := make(map[string]*Page)
	cursor := ""
	for _, p := range ps {
		cursors[cursor] = p
		cursor = p.NextCursor
	}
	return func(_ context.Context, c string) (*Page, error) {
		p, ok := cursors[c]
		if !ok {
			return nil, fmt.Errorf("unexpected cursor %q", c)
		}
		return p, nil
	}
}

func TestCollectDrainsAllPages(t *testing.T) {
	fetch := pages(
		&Page{Records: []domain.VariantRecord{rec("v1", "p1"), rec("v2", "p1")}, NextCursor: "c1", HasNextPage: true},
		&Page{Records: []domain.VariantRecord{rec("v3", "p2")}, NextCursor: "c2", HasNextPage: true},
		&Page{Records: []domain.VariantRecord{rec("v4", "p3")}, HasNextPage: false},
	)

	result, err := New(fetch, 0, zap.NewNop()).Collect(context.Background())
	require.NoError(t, err)

	assert.Len(t, result.Records, 4)
	assert.Equal(t, 3, result.ParentsScanned)
	assert.Equal(t, 3, result.PagesFetched)
	// Delivery order is preserved.
	assert.Equal(t, "v1", result.Records[0].VariantID)
	assert.Equal(t, "v4", result.Records[3].VariantID)
}

func TestCollectStopsOnMissingCursorEvenIfHasNextPage(t *testing.T) {
	// Defensive OR: some APIs omit the cursor instead of flipping the flag.
	fetch := pages(
		&Page{Records: []domain.VariantRecord{rec("v1", "p1")}, NextCursor: "", HasNextPage: true},
	)

	result, err := New(fetch, 0, zap.NewNop()).Collect(context.Background())
	require.NoError(t, err)
	assert.Len(t, result.Records, 1)
	assert.Equal(t, 1, result.PagesFetched)
}

func TestCollectAbortsAndDiscardsOnPageError(t *testing.T) {
	calls := 0
	fetch := func(_ context.Context, cursor string) (*Page, error) {
		calls++
		if cursor == "" {
			return &Page{Records: []domain.VariantRecord{rec("v1", "p1")}, NextCursor: "c1", HasNextPage: true}, nil
		}
		return nil, fmt.Errorf("throttled")
	}

	result, err := New(fetch, 0, zap.NewNop()).Collect(context.Background())

	require.Error(t, err)
	assert.Nil(t, result)
	var collErr *pkgerrors.ErrCollection
	require.ErrorAs(t, err, &collErr)
	assert.Equal(t, 2, collErr.Page)
	assert.Equal(t, 2, calls)
}

func TestCollectSinglePage(t *testing.T) {
	fetch := pages(&Page{Records: []domain.VariantRecord{rec("v1", "p1")}})

	result, err := New(fetch, 0, zap.NewNop()).Collect(context.Background())
	require.NoError(t, err)
	assert.Len(t, result.Records, 1)
}

func TestCollectEmptyStore(t *testing.T) {
	fetch := pages(&Page{})

	result, err := New(fetch, 0, zap.NewNop()).Collect(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.Zero(t, result.ParentsScanned)
}
