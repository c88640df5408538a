package ports

import (
	"context"

	"github.com/jwarwick/hr-explore/domain/batted"
)

// RowReader loads already-parsed raw rows from an input source. Multiple
// files are concatenated before ingestion; no ordering is guaranteed.
type RowReader interface {
	ReadRows(ctx context.Context) ([]batted.RawRow, error)
}
