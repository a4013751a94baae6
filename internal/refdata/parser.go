package refdata

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/isuraem/shopify-best-sellers-app/internal/domain"
	"github.com/isuraem/shopify-best-sellers-app/pkg/errors"
)

// Column names accepted for the key field and the secondary identifier.
// Covers both Shopify and Matrixify export formats.
var (
	keyColumns       = []string{"Variant SKU", "SKU"}
	secondaryColumns = []string{"Variant Barcode", "Barcode", "GTIN", "UPC"}
)

// Parse reads an uploaded inventory export into reference rows. Quoted fields
// containing the separator and escaped quotes ("" inside a quoted field) are
// honored. Rows with an empty key are skipped. A malformed file returns an
// ErrParse before any network call is attempted.
func Parse(r io.Reader) ([]domain.ReferenceRow, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true // Handle Shopify's sometimes malformed CSV
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		if parseErr, ok := err.(*csv.ParseError); ok {
			return nil, &errors.ErrParse{Line: parseErr.Line, Message: parseErr.Err.Error()}
		}
		return nil, &errors.ErrParse{Message: err.Error()}
	}

	if len(records) == 0 {
		return nil, &errors.ErrParse{Message: "file is empty"}
	}

	header := records[0]
	// Clean BOM from first column if present
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	keyIdx := findColumn(header, keyColumns...)
	secondaryIdx := findColumn(header, secondaryColumns...)

	dataRows := records[1:]
	firstLine := 2
	if keyIdx < 0 && secondaryIdx < 0 {
		// No recognizable header: treat every row as data, column 0 = key,
		// column 1 = secondary.
		keyIdx = 0
		if len(header) > 1 {
			secondaryIdx = 1
		}
		dataRows = records
		firstLine = 1
	} else if keyIdx < 0 {
		// A known secondary column matched, so the first row is a header
		// even though no key column was recognized. Fall back to the first
		// column that is not the secondary, and keep skipping the header row.
		keyIdx = 0
		if secondaryIdx == 0 {
			keyIdx = 1
		}
	}

	var rows []domain.ReferenceRow
	for i, row := range dataRows {
		if keyIdx >= len(row) {
			continue
		}
		key := strings.TrimSpace(row[keyIdx])
		if key == "" {
			continue
		}
		ref := domain.ReferenceRow{
			Key:  key,
			Line: firstLine + i,
		}
		if secondaryIdx >= 0 && secondaryIdx < len(row) {
			ref.Secondary = strings.TrimSpace(row[secondaryIdx])
		}
		rows = append(rows, ref)
	}

	if len(rows) == 0 {
		return nil, &errors.ErrParse{Message: "no rows with a key field found"}
	}

	return rows, nil
}

func findColumn(header []string, names ...string) int {
	for _, name := range names {
		for i, col := range header {
			if strings.EqualFold(strings.TrimSpace(col), name) {
				return i
			}
		}
	}
	return -1
}
