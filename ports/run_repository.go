package ports

import (
	"context"

	"github.com/jwarwick/hr-explore/domain/core"
	"github.com/jwarwick/hr-explore/domain/run"
)

// RunRepository persists completed analysis runs.
type RunRepository interface {
	Save(ctx context.Context, r *run.AnalysisRun) error
	GetByID(ctx context.Context, id core.RunID) (*run.AnalysisRun, error)
	ListRecent(ctx context.Context, limit int) ([]*run.AnalysisRun, error)
}
