package collector

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/isuraem/shopify-best-sellers-app/internal/domain"
	"github.com/isuraem/shopify-best-sellers-app/pkg/errors"
)

// Page is one slice of the variant listing as delivered by the source.
type Page struct {
	Records     []domain.VariantRecord
	NextCursor  string
	HasNextPage bool
}

// FetchPageFunc fetches one page. An empty cursor means the first page.
type FetchPageFunc func(ctx context.Context, cursor string) (*Page, error)

// Collector drains a cursor-paged source into a complete record sequence.
// Pages are fetched strictly one at a time; a failure on any page aborts the
// whole collection and discards everything gathered so far, since classifying
// a partial catalog could report a false "no duplicates".
type Collector struct {
	fetch   FetchPageFunc
	limiter *rate.Limiter
	logger  *zap.Logger
}

// New creates a collector. pagesPerSecond throttles successive fetches as a
// courtesy to the rate-limited API; zero or negative disables throttling.
func New(fetch FetchPageFunc, pagesPerSecond float64, logger *zap.Logger) *Collector {
	var limiter *rate.Limiter
	if pagesPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(pagesPerSecond), 1)
	}
	return &Collector{
		fetch:   fetch,
		limiter: limiter,
		logger:  logger,
	}
}

// Result is the complete collected sequence plus run counters.
type Result struct {
	Records        []domain.VariantRecord
	ParentsScanned int
	PagesFetched   int
}

// Collect pages through the source until exhaustion. Both an unset
// hasNextPage and a missing cursor are treated as terminal, since an external
// API may signal completion either way.
func (c *Collector) Collect(ctx context.Context) (*Result, error) {
	var records []domain.VariantRecord
	parents := make(map[string]struct{})
	cursor := ""
	pageNum := 0

	for {
		pageNum++
		page, err := c.fetch(ctx, cursor)
		if err != nil {
			return nil, &errors.ErrCollection{Page: pageNum, Err: err}
		}

		records = append(records, page.Records...)
		for _, r := range page.Records {
			parents[r.ParentID] = struct{}{}
		}

		c.logger.Debug("Collected page",
			zap.Int("page", pageNum),
			zap.Int("records", len(page.Records)),
			zap.Bool("has_next", page.HasNextPage),
		)

		if !page.HasNextPage || page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, &errors.ErrCollection{Page: pageNum, Err: err}
			}
		}
	}

	return &Result{
		Records:        records,
		ParentsScanned: len(parents),
		PagesFetched:   pageNum,
	}, nil
}
