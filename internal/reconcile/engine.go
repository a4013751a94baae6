package reconcile

import (
	"sort"
	"strings"

	"github.com/isuraem/shopify-best-sellers-app/internal/domain"
)

// Classify partitions records into duplicates, missing-key, and unique
// buckets. It is a pure pass over already-collected data and never errors.
//
// Grouping is by exact trimmed key equality; internal whitespace is left
// alone. Records with an empty trimmed key never form a group - they go to
// the missingKey bucket. Duplicate groups are sorted by descending member
// count with first-seen order breaking ties, so output is deterministic for
// a given input order.
func Classify(keyField domain.KeyField, records []domain.VariantRecord, parentsScanned int) *domain.ClassificationResult {
	result := &domain.ClassificationResult{
		KeyField:            keyField,
		TotalParentsScanned: parentsScanned,
	}

	// Ordered mapping: index into groups, plus first-seen key order.
	groupIndex := make(map[string]int)
	var groups []domain.KeyGroup

	for _, rec := range records {
		key := strings.TrimSpace(rec.KeyField)
		if key == "" {
			result.MissingKey = append(result.MissingKey, rec)
			continue
		}
		idx, seen := groupIndex[key]
		if !seen {
			idx = len(groups)
			groupIndex[key] = idx
			groups = append(groups, domain.KeyGroup{Key: key})
		}
		groups[idx].Records = append(groups[idx].Records, rec)
	}

	for _, g := range groups {
		if len(g.Records) > 1 {
			result.Duplicates = append(result.Duplicates, g)
		} else {
			result.UniqueWithKey = append(result.UniqueWithKey, g.Records[0])
		}
	}

	// Stable: equal-size groups keep first-seen order.
	sort.SliceStable(result.Duplicates, func(i, j int) bool {
		return len(result.Duplicates[i].Records) > len(result.Duplicates[j].Records)
	})

	result.MissingKeyCount = len(result.MissingKey)
	result.UniqueCount = len(result.UniqueWithKey)
	result.DuplicateGroupCount = len(result.Duplicates)
	for _, g := range result.Duplicates {
		result.DuplicateCount += len(g.Records)
	}
	result.TotalVariantsScanned = result.MissingKeyCount + result.UniqueCount + result.DuplicateCount

	return result
}
