package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/jwarwick/hr-explore/domain/core"
	"github.com/jwarwick/hr-explore/domain/run"
	"github.com/jwarwick/hr-explore/ports"
)

// runRepository implements the RunRepository interface
type runRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new analysis-run repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &runRepository{db: db}
}

// Connect opens a database handle and ensures the schema exists.
func Connect(ctx context.Context, url string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}
	return db, nil
}

const schema = `CREATE TABLE IF NOT EXISTS analysis_runs (
	id TEXT PRIMARY KEY,
	target_year INTEGER NOT NULL,
	day_offset INTEGER NOT NULL,
	alpha DOUBLE PRECISION NOT NULL,
	breakpoint DATE NOT NULL,
	ingest_report JSONB NOT NULL,
	table_grid TEXT NOT NULL,
	chi_square JSONB NOT NULL,
	kruskal_wallis JSONB NOT NULL,
	quantile_pairs JSONB NOT NULL,
	summaries JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`

// Save inserts a completed run
func (r *runRepository) Save(ctx context.Context, a *run.AnalysisRun) error {
	ingestJSON, err := json.Marshal(a.Ingest)
	if err != nil {
		return fmt.Errorf("failed to marshal ingest report: %w", err)
	}
	chiJSON, err := json.Marshal(a.ChiSquare)
	if err != nil {
		return fmt.Errorf("failed to marshal chi-square result: %w", err)
	}
	kwJSON, err := json.Marshal(a.Kruskal)
	if err != nil {
		return fmt.Errorf("failed to marshal kruskal-wallis result: %w", err)
	}
	qqJSON, err := json.Marshal(a.Quantiles)
	if err != nil {
		return fmt.Errorf("failed to marshal quantile pairs: %w", err)
	}
	summariesJSON, err := json.Marshal(a.Summaries)
	if err != nil {
		return fmt.Errorf("failed to marshal summaries: %w", err)
	}

	query := `INSERT INTO analysis_runs (
		id, target_year, day_offset, alpha, breakpoint, ingest_report,
		table_grid, chi_square, kruskal_wallis, quantile_pairs, summaries, created_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
	)`

	_, err = r.db.ExecContext(ctx, query,
		a.ID, a.Params.TargetYear, a.Params.DayOffset, a.Params.Alpha, a.Breakpoint, ingestJSON,
		a.TableGrid, chiJSON, kwJSON, qqJSON, summariesJSON, a.CreatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis run: %w", err)
	}

	return nil
}

// GetByID retrieves a run by its ID
func (r *runRepository) GetByID(ctx context.Context, id core.RunID) (*run.AnalysisRun, error) {
	query := `SELECT
		id, target_year, day_offset, alpha, breakpoint, ingest_report,
		table_grid, chi_square, kruskal_wallis, quantile_pairs, summaries, created_at
	FROM analysis_runs WHERE id = $1`

	a, err := r.scanRun(r.db.QueryRowxContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("analysis run not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get analysis run: %w", err)
	}
	return a, nil
}

// ListRecent returns the newest runs first
func (r *runRepository) ListRecent(ctx context.Context, limit int) ([]*run.AnalysisRun, error) {
	query := `SELECT
		id, target_year, day_offset, alpha, breakpoint, ingest_report,
		table_grid, chi_square, kruskal_wallis, quantile_pairs, summaries, created_at
	FROM analysis_runs ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryxContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis runs: %w", err)
	}
	defer rows.Close()

	var runs []*run.AnalysisRun
	for rows.Next() {
		a, err := r.scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		runs = append(runs, a)
	}
	return runs, rows.Err()
}

// rowScanner covers both *sqlx.Row and *sqlx.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *runRepository) scanRun(row rowScanner) (*run.AnalysisRun, error) {
	var a run.AnalysisRun
	var ingestJSON, chiJSON, kwJSON, qqJSON, summariesJSON []byte
	var createdAt time.Time

	err := row.Scan(
		&a.ID, &a.Params.TargetYear, &a.Params.DayOffset, &a.Params.Alpha, &a.Breakpoint, &ingestJSON,
		&a.TableGrid, &chiJSON, &kwJSON, &qqJSON, &summariesJSON, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(ingestJSON, &a.Ingest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ingest report: %w", err)
	}
	if err := json.Unmarshal(chiJSON, &a.ChiSquare); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chi-square result: %w", err)
	}
	if err := json.Unmarshal(kwJSON, &a.Kruskal); err != nil {
		return nil, fmt.Errorf("failed to unmarshal kruskal-wallis result: %w", err)
	}
	if err := json.Unmarshal(qqJSON, &a.Quantiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quantile pairs: %w", err)
	}
	if err := json.Unmarshal(summariesJSON, &a.Summaries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summaries: %w", err)
	}
	// The structured table is not persisted; TableGrid is its stored form.
	a.CreatedAt = core.Timestamp(createdAt)

	return &a, nil
}
