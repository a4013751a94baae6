package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isuraem/shopify-best-sellers-app/internal/domain"
)

func TestNormalizeNumericID(t *testing.T) {
	cases := map[string]string{
		"123.0":   "123",
		"123.00":  "123",
		"123":     "123",
		" 123.0 ": "123",
		"123.5":   "123.5",
		"1.2e5":   "1.2e5",
		"abc.0":   "abc.0",
		"123.":    "123.",
		".0":      ".0",
		"":        "",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeNumericID(input), "input %q", input)
	}
}

func refVariant(key, alt string) domain.VariantRecord {
	return domain.VariantRecord{
		VariantID: "gid://shopify/ProductVariant/1",
		ParentID:  "gid://shopify/Product/1",
		KeyField:  key,
		AltID:     alt,
	}
}

func TestCompareReferenceBuckets(t *testing.T) {
	records := []domain.VariantRecord{
		refVariant("SKU-1", "111"),
		refVariant("SKU-2", "222"),
		refVariant("SKU-3", ""),
		refVariant("SKU-4", ""),
	}
	rows := []domain.ReferenceRow{
		{Key: "SKU-1", Secondary: "111"},   // matched
		{Key: "SKU-2", Secondary: "999"},   // mismatched
		{Key: "SKU-3", Secondary: "333"},   // missing on store side
		{Key: "SKU-4", Secondary: ""},      // matched, both empty
		{Key: "SKU-404", Secondary: "444"}, // not in store
	}

	result := CompareReference(rows, records)

	assert.Equal(t, 5, result.TotalRows)
	require.Len(t, result.Matched, 2)
	require.Len(t, result.Mismatched, 1)
	require.Len(t, result.MissingOneSide, 1)
	require.Len(t, result.NotFound, 1)
	assert.Equal(t, "SKU-404", result.NotFound[0].Key)
	assert.Equal(t, "SKU-2", result.Mismatched[0].Row.Key)

	// The four counters partition the rows.
	assert.Equal(t, 2, result.MatchedCount)
	assert.Equal(t, 1, result.MismatchCount)
	assert.Equal(t, 1, result.MissingCount)
	assert.Equal(t, 1, result.NotFoundCount)
	sum := result.MatchedCount + result.MismatchCount + result.MissingCount + result.NotFoundCount
	assert.Equal(t, result.TotalRows, sum)
}

func TestCompareReferenceFloatCoercedSecondary(t *testing.T) {
	records := []domain.VariantRecord{refVariant("SKU-1", "123")}
	rows := []domain.ReferenceRow{{Key: "SKU-1", Secondary: "123.0"}}

	result := CompareReference(rows, records)

	assert.Len(t, result.Matched, 1)
	assert.Empty(t, result.Mismatched)
}

func TestCompareReferenceTrimsKeys(t *testing.T) {
	records := []domain.VariantRecord{refVariant(" SKU-1 ", "")}
	rows := []domain.ReferenceRow{{Key: "SKU-1"}}

	result := CompareReference(rows, records)

	assert.Len(t, result.Matched, 1)
	assert.Empty(t, result.NotFound)
}

func TestCompareReferenceIgnoresEmptyStoreKeys(t *testing.T) {
	records := []domain.VariantRecord{refVariant("", "111")}
	rows := []domain.ReferenceRow{{Key: "X"}}

	result := CompareReference(rows, records)

	assert.Len(t, result.NotFound, 1)
}
