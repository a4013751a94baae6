package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/isuraem/shopify-best-sellers-app/internal/domain"
)

type scanRunRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewScanRunRepository creates a new scan run repository
func NewScanRunRepository(db *sql.DB, logger *zap.Logger) *scanRunRepository {
	return &scanRunRepository{
		db:     db,
		logger: logger,
	}
}

func (r *scanRunRepository) Create(ctx context.Context, run *domain.ScanRun) error {
	query := `
		INSERT INTO scan_runs (
			id, key_field, parents_scanned, variants_scanned, duplicate_groups,
			duplicates, missing_key, unique_with_key, duration_ms, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.KeyField,
		run.ParentsScanned,
		run.VariantsScanned,
		run.DuplicateGroups,
		run.Duplicates,
		run.MissingKey,
		run.Unique,
		run.DurationMS,
		run.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create scan run", zap.Error(err))
		return err
	}
	return nil
}

func (r *scanRunRepository) List(ctx context.Context, limit int) ([]*domain.ScanRun, error) {
	if limit < 1 || limit > 500 {
		limit = 50
	}

	query := `
		SELECT id, key_field, parents_scanned, variants_scanned, duplicate_groups,
		       duplicates, missing_key, unique_with_key, duration_ms, created_at
		FROM scan_runs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("Failed to list scan runs", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var runs []*domain.ScanRun
	for rows.Next() {
		run := &domain.ScanRun{}
		if err := rows.Scan(
			&run.ID,
			&run.KeyField,
			&run.ParentsScanned,
			&run.VariantsScanned,
			&run.DuplicateGroups,
			&run.Duplicates,
			&run.MissingKey,
			&run.Unique,
			&run.DurationMS,
			&run.CreatedAt,
		); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
