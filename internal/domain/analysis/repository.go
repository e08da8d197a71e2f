package analysis

import (
	"context"

	"github.com/turtacn/WellNodal/pkg/types/common"
)

// Repository persists analysis runs.  HasActive reports whether the well
// already has a pending or running run; StartRun uses it to enforce one
// in-flight analysis per well.
type Repository interface {
	Create(ctx context.Context, run *Run) error
	GetByID(ctx context.Context, id common.ID) (*Run, error)
	ListByWell(ctx context.Context, wellID common.ID, p common.Pagination) ([]*Run, int64, error)
	Update(ctx context.Context, run *Run) error
	HasActive(ctx context.Context, wellID common.ID) (bool, error)
}
