package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isuraem/shopify-best-sellers-app/internal/domain"
)

func variant(id, parent, key string) domain.VariantRecord {
	return domain.VariantRecord{
		VariantID: "gid://shopify/ProductVariant/" + id,
		ParentID:  "gid://shopify/Product/" + parent,
		KeyField:  key,
	}
}

func TestClassifyPartitionsEveryRecord(t *testing.T) {
	records := []domain.VariantRecord{
		variant("1", "10", "A"),
		variant("2", "10", "B"),
		variant("3", "11", "A"),
		variant("4", "11", ""),
		variant("5", "12", "C"),
	}

	result := Classify(domain.KeyFieldSKU, records, 3)

	require.Len(t, result.MissingKey, 1)
	require.Len(t, result.Duplicates, 1)
	assert.Equal(t, "A", result.Duplicates[0].Key)
	assert.Len(t, result.Duplicates[0].Records, 2)
	require.Len(t, result.UniqueWithKey, 2)
	assert.Equal(t, "B", result.UniqueWithKey[0].KeyField)
	assert.Equal(t, "C", result.UniqueWithKey[1].KeyField)

	assert.Equal(t, 5, result.TotalVariantsScanned)
	assert.Equal(t, 3, result.TotalParentsScanned)
	assert.Equal(t, result.TotalVariantsScanned,
		result.MissingKeyCount+result.DuplicateCount+result.UniqueCount)
}

func TestClassifyCountersMatchBuckets(t *testing.T) {
	records := []domain.VariantRecord{
		variant("1", "10", "X"),
		variant("2", "10", "X"),
		variant("3", "10", "X"),
		variant("4", "11", "  "),
		variant("5", "11", ""),
		variant("6", "12", "Y"),
	}

	result := Classify(domain.KeyFieldBarcode, records, 3)

	assert.Equal(t, 6, result.TotalVariantsScanned)
	assert.Equal(t, 3, result.DuplicateCount)
	assert.Equal(t, 1, result.DuplicateGroupCount)
	assert.Equal(t, 2, result.MissingKeyCount)
	assert.Equal(t, 1, result.UniqueCount)
}

func TestClassifyAllDuplicatesOfAKeyShareOneGroup(t *testing.T) {
	records := []domain.VariantRecord{
		variant("1", "10", "DUP"),
		variant("2", "11", "other"),
		variant("3", "12", "DUP"),
		variant("4", "13", "DUP"),
	}

	result := Classify(domain.KeyFieldSKU, records, 4)

	require.Len(t, result.Duplicates, 1)
	group := result.Duplicates[0]
	assert.Equal(t, "DUP", group.Key)
	require.Len(t, group.Records, 3)
	ids := []string{group.Records[0].VariantID, group.Records[1].VariantID, group.Records[2].VariantID}
	assert.Equal(t, []string{
		"gid://shopify/ProductVariant/1",
		"gid://shopify/ProductVariant/3",
		"gid://shopify/ProductVariant/4",
	}, ids)
}

func TestClassifySortsGroupsBySizeThenFirstSeen(t *testing.T) {
	records := []domain.VariantRecord{
		variant("1", "10", "A"),
		variant("2", "10", "B"),
		variant("3", "10", "A"),
		variant("4", "10", "B"),
		variant("5", "10", "C"),
		variant("6", "10", "C"),
		variant("7", "10", "C"),
	}

	result := Classify(domain.KeyFieldSKU, records, 1)

	require.Len(t, result.Duplicates, 3)
	// C is largest; A and B are equal size and keep first-seen order.
	assert.Equal(t, "C", result.Duplicates[0].Key)
	assert.Equal(t, "A", result.Duplicates[1].Key)
	assert.Equal(t, "B", result.Duplicates[2].Key)
}

func TestClassifyTrimsKeysButKeepsInternalWhitespace(t *testing.T) {
	records := []domain.VariantRecord{
		variant("1", "10", " A "),
		variant("2", "10", "A"),
		variant("3", "10", "A B"),
		variant("4", "10", "AB"),
	}

	result := Classify(domain.KeyFieldSKU, records, 1)

	require.Len(t, result.Duplicates, 1)
	assert.Equal(t, "A", result.Duplicates[0].Key)
	// "A B" and "AB" differ by internal whitespace and stay distinct.
	assert.Len(t, result.UniqueWithKey, 2)
}

func TestClassifyEmptyInput(t *testing.T) {
	result := Classify(domain.KeyFieldSKU, nil, 0)

	assert.Zero(t, result.TotalVariantsScanned)
	assert.Empty(t, result.Duplicates)
	assert.Empty(t, result.MissingKey)
	assert.Empty(t, result.UniqueWithKey)
}
