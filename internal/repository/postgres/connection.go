package postgres

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/isuraem/shopify-best-sellers-app/internal/config"
)

// NewConnection creates a new PostgreSQL database connection
func NewConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// RunMigrations creates the scan_runs table if it does not exist. The schema
// is small enough that a migration tool would be overkill.
func RunMigrations(db *sql.DB) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS scan_runs (
			id UUID PRIMARY KEY,
			key_field TEXT NOT NULL,
			parents_scanned INT NOT NULL,
			variants_scanned INT NOT NULL,
			duplicate_groups INT NOT NULL,
			duplicates INT NOT NULL,
			missing_key INT NOT NULL,
			unique_with_key INT NOT NULL,
			duration_ms BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create scan_runs table: %w", err)
	}
	return nil
}
