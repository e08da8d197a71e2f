package fluid

import (
	"context"

	"github.com/turtacn/WellNodal/pkg/types/common"
)

// Repository persists fluid samples.  SetActive atomically clears the active
// flag on the well's other samples before setting it on the given one, so at
// most one sample per well is ever active.
type Repository interface {
	Create(ctx context.Context, sample *Sample) error
	GetByID(ctx context.Context, id common.ID) (*Sample, error)
	ListByWell(ctx context.Context, wellID common.ID) ([]*Sample, error)
	GetActive(ctx context.Context, wellID common.ID) (*Sample, error)
	Update(ctx context.Context, sample *Sample) error
	SetActive(ctx context.Context, wellID, sampleID common.ID) error
	Delete(ctx context.Context, id common.ID) error
}
