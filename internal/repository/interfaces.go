package repository

import (
	"context"

	"github.com/isuraem/shopify-best-sellers-app/internal/domain"
)

// ScanRunRepository records reconciliation-run summaries. Only counters are
// stored, never the variant records themselves.
type ScanRunRepository interface {
	Create(ctx context.Context, run *domain.ScanRun) error
	List(ctx context.Context, limit int) ([]*domain.ScanRun, error)
}

// Repositories bundles all data access. Nil when no database is configured;
// callers must treat history as optional.
type Repositories struct {
	ScanRun ScanRunRepository
}
