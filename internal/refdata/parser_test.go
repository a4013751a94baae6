package refdata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/isuraem/shopify-best-sellers-app/pkg/errors"
)

func TestParseWithHeader(t *testing.T) {
	input := "Variant SKU,Barcode\nSKU-1,111\nSKU-2,222\n"

	rows, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "SKU-1", rows[0].Key)
	assert.Equal(t, "111", rows[0].Secondary)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "SKU-2", rows[1].Key)
}

func TestParseQuotedFieldWithSeparator(t *testing.T) {
	input := "SKU,Barcode\n\"A, B\",C\n"

	rows, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "A, B", rows[0].Key)
	assert.Equal(t, "C", rows[0].Secondary)
}

func TestParseEscapedQuote(t *testing.T) {
	input := "SKU,Barcode\n\"say \"\"hi\"\"\",X\n"

	rows, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, `say "hi"`, rows[0].Key)
}

func TestParseHeaderlessFallback(t *testing.T) {
	input := "SKU-1,111\nSKU-2,222\n"

	rows, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "SKU-1", rows[0].Key)
	assert.Equal(t, "111", rows[0].Secondary)
	assert.Equal(t, 1, rows[0].Line)
}

func TestParseSkipsRowsWithoutKey(t *testing.T) {
	input := "Variant SKU,Barcode\n,111\nSKU-2,222\n  ,333\n"

	rows, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "SKU-2", rows[0].Key)
}

func TestParseStripsBOM(t *testing.T) {
	input := "\uFEFFVariant SKU,Barcode\nSKU-1,111\n"

	rows, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "SKU-1", rows[0].Key)
}

func TestParseSecondaryOnlyHeaderSkipsHeaderRow(t *testing.T) {
	input := "Item Code,Barcode\nSKU-1,111\nSKU-2,222\n"

	rows, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "SKU-1", rows[0].Key)
	assert.Equal(t, "111", rows[0].Secondary)
	assert.Equal(t, 2, rows[0].Line)
}

func TestParseSecondaryOnlyHeaderInFirstColumn(t *testing.T) {
	input := "Barcode,Item Code\n111,SKU-1\n"

	rows, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "SKU-1", rows[0].Key)
	assert.Equal(t, "111", rows[0].Secondary)
}

func TestParseEmptyFile(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	require.Error(t, err)
	assert.IsType(t, &pkgerrors.ErrParse{}, err)
}

func TestParseOnlyEmptyKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("SKU,Barcode\n,1\n,2\n"))
	require.Error(t, err)
	assert.IsType(t, &pkgerrors.ErrParse{}, err)
}

func TestParseSecondaryColumnOptional(t *testing.T) {
	input := "SKU\nSKU-1\n"

	rows, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].Secondary)
}
