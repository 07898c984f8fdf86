package postgres

import (
	"context"

	"gopbo/domain/backtest"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// RunRepository persists CSCV run reports so sweeps can be compared
// across sessions. The lambda distribution itself is a diagnostic
// hand-back to the caller and is not stored; the ledger keeps the
// summary row.
type RunRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a PostgreSQL run repository
func NewRunRepository(db *sqlx.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Connect opens a PostgreSQL connection pool for the run ledger
func Connect(databaseURL string) (*sqlx.DB, error) {
	return sqlx.Connect("postgres", databaseURL)
}

// EnsureSchema creates the run ledger table if it does not exist
func (r *RunRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS pbo_runs (
			run_id            UUID PRIMARY KEY,
			row_count         INTEGER NOT NULL,
			config_count      INTEGER NOT NULL,
			block_count       INTEGER NOT NULL,
			combination_count INTEGER NOT NULL,
			metric            TEXT NOT NULL,
			pbo               DOUBLE PRECISION NOT NULL,
			lambda_mean       DOUBLE PRECISION NOT NULL,
			lambda_variance   DOUBLE PRECISION NOT NULL,
			computed_at       TIMESTAMPTZ NOT NULL
		)
	`)
	return err
}

// Save inserts one run report
func (r *RunRepository) Save(ctx context.Context, report *backtest.Report) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pbo_runs (run_id, row_count, config_count, block_count, combination_count, metric, pbo, lambda_mean, lambda_variance, computed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, report.RunID.String(), report.Rows, report.Configs, report.Blocks, report.Combinations,
		report.Metric, report.PBO, report.LambdaMean, report.LambdaVar, report.ComputedAt)
	return err
}

// ListRecent returns the most recent run reports, newest first
func (r *RunRepository) ListRecent(ctx context.Context, limit int) ([]backtest.Report, error) {
	if limit <= 0 {
		limit = 20
	}
	var reports []backtest.Report
	err := r.db.SelectContext(ctx, &reports, `
		SELECT run_id, row_count, config_count, block_count, combination_count, metric, pbo, lambda_mean, lambda_variance, computed_at
		FROM pbo_runs
		ORDER BY computed_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return reports, nil
}
