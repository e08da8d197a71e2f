package wellbore

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/WellNodal/internal/config"
	domain "github.com/turtacn/WellNodal/internal/domain/wellbore"
	"github.com/turtacn/WellNodal/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/WellNodal/pkg/errors"
	"github.com/turtacn/WellNodal/pkg/types/common"
	wbtypes "github.com/turtacn/WellNodal/pkg/types/wellbore"
)

// In-memory fakes mirroring the repository contracts.

type memWellRepo struct {
	mu    sync.Mutex
	wells map[common.ID]*domain.Well
}

func newMemWellRepo() *memWellRepo {
	return &memWellRepo{wells: map[common.ID]*domain.Well{}}
}

func (r *memWellRepo) Create(_ context.Context, w *domain.Well) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wells[w.ID] = w
	return nil
}

func (r *memWellRepo) GetByID(_ context.Context, id common.ID) (*domain.Well, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wells[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeWellNotFound, "well not found")
	}
	return w, nil
}

func (r *memWellRepo) List(_ context.Context, p common.Pagination) ([]*domain.Well, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Well, 0, len(r.wells))
	for _, w := range r.wells {
		out = append(out, w)
	}
	return out, int64(len(out)), nil
}

func (r *memWellRepo) Update(_ context.Context, w *domain.Well) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.wells[w.ID]; !ok {
		return errors.New(errors.ErrCodeWellNotFound, "well not found")
	}
	r.wells[w.ID] = w
	return nil
}

func (r *memWellRepo) Delete(_ context.Context, id common.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.wells[id]; !ok {
		return errors.New(errors.ErrCodeWellNotFound, "well not found")
	}
	delete(r.wells, id)
	return nil
}

type memDesignRepo struct {
	mu      sync.Mutex
	designs map[common.ID]*domain.Design
}

func newMemDesignRepo() *memDesignRepo {
	return &memDesignRepo{designs: map[common.ID]*domain.Design{}}
}

func (r *memDesignRepo) Get(_ context.Context, wellID common.ID) (*domain.Design, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.designs[wellID]
	if !ok {
		return nil, errors.New(errors.ErrCodeDesignNotFound, "design not found")
	}
	copied := *d
	return &copied, nil
}

func (r *memDesignRepo) Save(_ context.Context, d *domain.Design) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.designs[d.WellID]
	if ok && stored.Revision != d.Revision {
		return errors.New(errors.ErrCodeDesignRevisionOld, "stale revision")
	}
	d.Revision++
	copied := *d
	r.designs[d.WellID] = &copied
	return nil
}

func (r *memDesignRepo) Delete(_ context.Context, wellID common.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.designs, wellID)
	return nil
}

type capturedEvent struct {
	topic   string
	key     string
	payload interface{}
}

type capturePublisher struct {
	mu     sync.Mutex
	events []capturedEvent
}

func (p *capturePublisher) Publish(_ context.Context, topic, key string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, capturedEvent{topic: topic, key: key, payload: payload})
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func newTestService(t *testing.T) (Service, *memWellRepo, *capturePublisher) {
	t.Helper()
	wells := newMemWellRepo()
	pub := &capturePublisher{}
	svc := NewService(wells, newMemDesignRepo(), nil, pub, nil, logging.NewNopLogger(),
		config.GeometryConfig{DepthUnit: "ft", DiameterUnit: "in", SurfaceDiagnostics: true})
	return svc, wells, pub
}

func createTestWell(t *testing.T, svc Service) common.ID {
	t.Helper()
	w, err := svc.CreateWell(context.Background(), CreateWellInput{Name: "test well"})
	require.NoError(t, err)
	return common.ID(w.ID)
}

func TestCreateAndGetWell(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateWell(ctx, CreateWellInput{Name: "Eagleford 12-H", Field: "Eagleford"})
	require.NoError(t, err)

	got, err := svc.GetWell(ctx, common.ID(created.ID))
	require.NoError(t, err)
	assert.Equal(t, "Eagleford 12-H", got.Name)

	_, err = svc.GetWell(ctx, common.NewID())
	assert.True(t, errors.IsCode(err, errors.ErrCodeWellNotFound))
}

func TestGetDesignForFreshWellIsEmpty(t *testing.T) {
	svc, _, _ := newTestService(t)
	wellID := createTestWell(t, svc)

	d, err := svc.GetDesign(context.Background(), wellID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), d.Revision)
	assert.Empty(t, d.BHARows)
	assert.Empty(t, d.CasingRows)
}

func TestAddRowBumpsRevisionAndPublishes(t *testing.T) {
	svc, _, pub := newTestService(t)
	ctx := context.Background()
	wellID := createTestWell(t, svc)

	d, err := svc.AddRow(ctx, wellID, wbtypes.ComponentRowDTO{
		Kind: wbtypes.RowKindBHA, Top: 800, Bottom: 1000, InternalDiameter: 2.5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.Revision)
	require.Len(t, d.BHARows, 1)

	d, err = svc.AddRow(ctx, wellID, wbtypes.ComponentRowDTO{
		Kind: wbtypes.RowKindCasing, Top: 900, Bottom: 1200, InternalDiameter: 4.0,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), d.Revision)

	require.Len(t, pub.events, 2)
	assert.Equal(t, "wellbore.design.updated", pub.events[0].topic)
	assert.Equal(t, wellID.String(), pub.events[0].key)
}

func TestAddRowInvalidRejectedWithoutSave(t *testing.T) {
	svc, _, pub := newTestService(t)
	ctx := context.Background()
	wellID := createTestWell(t, svc)

	_, err := svc.AddRow(ctx, wellID, wbtypes.ComponentRowDTO{
		Kind: wbtypes.RowKindBHA, Top: 800, Bottom: 1000, InternalDiameter: -1,
	})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeRowInvalid))
	assert.Empty(t, pub.events)

	d, err := svc.GetDesign(ctx, wellID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), d.Revision)
}

func TestReplaceDesign(t *testing.T) {
	svc, _, pub := newTestService(t)
	ctx := context.Background()
	wellID := createTestWell(t, svc)

	_, err := svc.AddRow(ctx, wellID, wbtypes.ComponentRowDTO{
		Kind: wbtypes.RowKindBHA, Top: 0, Bottom: 100, InternalDiameter: 3,
	})
	require.NoError(t, err)

	d, err := svc.ReplaceDesign(ctx, wellID, ReplaceDesignInput{
		BHARows: []wbtypes.ComponentRowDTO{
			{Top: 0, Bottom: 600, InternalDiameter: 2.75},
			{Top: 0, Bottom: 200, InternalDiameter: 2.25},
		},
		CasingRows: []wbtypes.ComponentRowDTO{
			{Top: 0, Bottom: 900, InternalDiameter: 6.0},
		},
		NodalPoint: 750,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), d.Revision)
	require.Len(t, d.BHARows, 2)
	require.Len(t, d.CasingRows, 1)
	assert.Equal(t, 750.0, d.NodalPoint)
	// New rows get IDs and the lists are chained like incremental edits.
	assert.NotEmpty(t, d.BHARows[0].ID)
	assert.Equal(t, 600.0, d.BHARows[1].Top)

	require.Len(t, pub.events, 2)
}

func TestReplaceDesignInvalidRowRejectedWithoutSave(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	wellID := createTestWell(t, svc)

	_, err := svc.ReplaceDesign(ctx, wellID, ReplaceDesignInput{
		BHARows: []wbtypes.ComponentRowDTO{{Top: 0, Bottom: 600, InternalDiameter: -2}},
	})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeRowInvalid))

	d, err := svc.GetDesign(ctx, wellID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), d.Revision)
}

func TestRemoveAndMoveRow(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	wellID := createTestWell(t, svc)

	d, err := svc.AddRow(ctx, wellID, wbtypes.ComponentRowDTO{
		ID: "a", Kind: wbtypes.RowKindBHA, Top: 0, Bottom: 100, InternalDiameter: 3,
	})
	require.NoError(t, err)
	_, err = svc.AddRow(ctx, wellID, wbtypes.ComponentRowDTO{
		ID: "b", Kind: wbtypes.RowKindBHA, Top: 0, Bottom: 50, InternalDiameter: 3,
	})
	require.NoError(t, err)

	d, err = svc.MoveRow(ctx, wellID, wbtypes.RowKindBHA, "b", 0)
	require.NoError(t, err)
	assert.Equal(t, "b", d.BHARows[0].ID)

	d, err = svc.RemoveRow(ctx, wellID, wbtypes.RowKindBHA, "a")
	require.NoError(t, err)
	require.Len(t, d.BHARows, 1)

	_, err = svc.RemoveRow(ctx, wellID, wbtypes.RowKindBHA, "missing")
	assert.True(t, errors.IsCode(err, errors.ErrCodeRowNotFound))
}

func TestBuildGeometry(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	wellID := createTestWell(t, svc)

	_, err := svc.AddRow(ctx, wellID, wbtypes.ComponentRowDTO{
		Kind: wbtypes.RowKindBHA, Top: 800, Bottom: 1000, InternalDiameter: 2.5,
	})
	require.NoError(t, err)
	_, err = svc.AddRow(ctx, wellID, wbtypes.ComponentRowDTO{
		Kind: wbtypes.RowKindCasing, Top: 900, Bottom: 1200, InternalDiameter: 4.0,
	})
	require.NoError(t, err)
	_, err = svc.SetNodalPoint(ctx, wellID, 850)
	require.NoError(t, err)

	got, err := svc.BuildGeometry(ctx, wellID)
	require.NoError(t, err)

	assert.Equal(t, wellID.String(), got.Payload.WellID)
	assert.Equal(t, int64(3), got.Payload.DesignRevision)
	assert.Equal(t, 850.0, got.Payload.NodalPoint)
	assert.Equal(t, "ft", got.Payload.DepthUnit)
	require.Len(t, got.Payload.Segments, 1)
	assert.Equal(t, wbtypes.SegmentDTO{StartDepth: 800, EndDepth: 850, Diameter: 2.5}, got.Payload.Segments[0])
	assert.Empty(t, got.Diagnostics)
}

func TestBuildGeometryEmptyDesign(t *testing.T) {
	svc, _, _ := newTestService(t)
	wellID := createTestWell(t, svc)

	got, err := svc.BuildGeometry(context.Background(), wellID)
	require.NoError(t, err)
	assert.True(t, got.Payload.Empty())
	assert.NotNil(t, got.Payload.Segments)
}

func TestBuildGeometryUnknownWell(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.BuildGeometry(context.Background(), common.NewID())
	assert.True(t, errors.IsCode(err, errors.ErrCodeWellNotFound))
}
