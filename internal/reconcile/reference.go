package reconcile

import (
	"strings"

	"github.com/isuraem/shopify-best-sellers-app/internal/domain"
)

// CompareReference cross-checks uploaded reference rows against store
// variants by exact trimmed key equality. The secondary identifier (barcode /
// GTIN) decides between the matched, mismatched, and missing-one-side
// buckets: both empty or equal = matched, exactly one empty = missing on one
// side, both present and different = mismatched.
func CompareReference(rows []domain.ReferenceRow, records []domain.VariantRecord) *domain.ReferenceComparison {
	result := &domain.ReferenceComparison{TotalRows: len(rows)}

	byKey := make(map[string][]domain.VariantRecord)
	for _, rec := range records {
		key := strings.TrimSpace(rec.KeyField)
		if key == "" {
			continue
		}
		byKey[key] = append(byKey[key], rec)
	}

	for _, row := range rows {
		key := strings.TrimSpace(row.Key)
		matches, found := byKey[key]
		if !found {
			result.NotFound = append(result.NotFound, row)
			continue
		}

		match := domain.ReferenceMatch{Row: row, Records: matches}
		rowSecondary := NormalizeNumericID(row.Secondary)
		recSecondary := NormalizeNumericID(matches[0].AltID)

		switch {
		case rowSecondary == "" && recSecondary == "":
			result.Matched = append(result.Matched, match)
		case rowSecondary == "" || recSecondary == "":
			result.MissingOneSide = append(result.MissingOneSide, match)
		case rowSecondary == recSecondary:
			result.Matched = append(result.Matched, match)
		default:
			result.Mismatched = append(result.Mismatched, match)
		}
	}

	result.NotFoundCount = len(result.NotFound)
	result.MismatchCount = len(result.Mismatched)
	result.MissingCount = len(result.MissingOneSide)
	result.MatchedCount = len(result.Matched)

	return result
}

// NormalizeNumericID trims whitespace and strips a trailing ".0"-style suffix
// so identifiers coerced to floating point by spreadsheet tools still match
// (e.g. "123.0" == "123"). No other numeric normalization is applied;
// scientific notation in particular is left untouched.
func NormalizeNumericID(s string) string {
	s = strings.TrimSpace(s)
	dot := strings.LastIndex(s, ".")
	if dot <= 0 || dot == len(s)-1 {
		return s
	}
	frac := s[dot+1:]
	for _, r := range frac {
		if r != '0' {
			return s
		}
	}
	// All digits before the dot, otherwise this is not a numeric identifier.
	for _, r := range s[:dot] {
		if r < '0' || r > '9' {
			return s
		}
	}
	return s[:dot]
}
