package wellbore

import (
	"context"

	"github.com/turtacn/WellNodal/pkg/types/common"
)

// WellRepository persists wells.
type WellRepository interface {
	Create(ctx context.Context, well *Well) error
	GetByID(ctx context.Context, id common.ID) (*Well, error)
	List(ctx context.Context, p common.Pagination) ([]*Well, int64, error)
	Update(ctx context.Context, well *Well) error
	Delete(ctx context.Context, id common.ID) error
}

// DesignRepository persists wellbore designs, one per well.  Save enforces
// optimistic concurrency: it compares the design's Revision against the
// stored revision and fails with ErrCodeDesignRevisionOld when another writer
// got there first; on success the stored revision is the design's Revision
// plus one, and the design is updated in place to match.
type DesignRepository interface {
	Get(ctx context.Context, wellID common.ID) (*Design, error)
	Save(ctx context.Context, design *Design) error
	Delete(ctx context.Context, wellID common.ID) error
}
