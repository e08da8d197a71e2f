package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appwellbore "github.com/turtacn/WellNodal/internal/application/wellbore"
	"github.com/turtacn/WellNodal/pkg/errors"
	"github.com/turtacn/WellNodal/pkg/types/common"
	wbtypes "github.com/turtacn/WellNodal/pkg/types/wellbore"
)

type stubDesignService struct {
	appwellbore.Service
	addRow        func(context.Context, common.ID, wbtypes.ComponentRowDTO) (*appwellbore.DesignDTO, error)
	replaceDesign func(context.Context, common.ID, appwellbore.ReplaceDesignInput) (*appwellbore.DesignDTO, error)
	removeRow     func(context.Context, common.ID, wbtypes.RowKind, string) (*appwellbore.DesignDTO, error)
	setNodalPoint func(context.Context, common.ID, float64) (*appwellbore.DesignDTO, error)
	buildGeometry func(context.Context, common.ID) (*appwellbore.GeometryResult, error)
}

func (s *stubDesignService) AddRow(ctx context.Context, wellID common.ID, row wbtypes.ComponentRowDTO) (*appwellbore.DesignDTO, error) {
	return s.addRow(ctx, wellID, row)
}

func (s *stubDesignService) ReplaceDesign(ctx context.Context, wellID common.ID, input appwellbore.ReplaceDesignInput) (*appwellbore.DesignDTO, error) {
	return s.replaceDesign(ctx, wellID, input)
}

func (s *stubDesignService) RemoveRow(ctx context.Context, wellID common.ID, kind wbtypes.RowKind, rowID string) (*appwellbore.DesignDTO, error) {
	return s.removeRow(ctx, wellID, kind, rowID)
}

func (s *stubDesignService) SetNodalPoint(ctx context.Context, wellID common.ID, depth float64) (*appwellbore.DesignDTO, error) {
	return s.setNodalPoint(ctx, wellID, depth)
}

func (s *stubDesignService) BuildGeometry(ctx context.Context, wellID common.ID) (*appwellbore.GeometryResult, error) {
	return s.buildGeometry(ctx, wellID)
}

func newDesignRouter(svc appwellbore.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewDesignHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestAddRowEndpoint(t *testing.T) {
	var gotRow wbtypes.ComponentRowDTO
	svc := &stubDesignService{
		addRow: func(_ context.Context, _ common.ID, row wbtypes.ComponentRowDTO) (*appwellbore.DesignDTO, error) {
			gotRow = row
			return &appwellbore.DesignDTO{Revision: 1, BHARows: []wbtypes.ComponentRowDTO{row}}, nil
		},
	}
	r := newDesignRouter(svc)
	wellID := common.NewID().String()

	w := doJSON(t, r, http.MethodPost, "/api/v1/wells/"+wellID+"/design/rows", wbtypes.ComponentRowDTO{
		Kind: wbtypes.RowKindBHA, Top: 800, Bottom: 1000, InternalDiameter: 2.5,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, wbtypes.RowKindBHA, gotRow.Kind)
	assert.Equal(t, 2.5, gotRow.InternalDiameter)
}

func TestAddRowInvalidMapsTo422(t *testing.T) {
	svc := &stubDesignService{
		addRow: func(context.Context, common.ID, wbtypes.ComponentRowDTO) (*appwellbore.DesignDTO, error) {
			return nil, errors.New(errors.ErrCodeRowInvalid, "internal diameter must be positive")
		},
	}
	r := newDesignRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/wells/"+common.NewID().String()+"/design/rows",
		wbtypes.ComponentRowDTO{Kind: wbtypes.RowKindBHA, InternalDiameter: -1})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "WB_003", resp.Code)
}

func TestReplaceDesignEndpoint(t *testing.T) {
	var gotInput appwellbore.ReplaceDesignInput
	svc := &stubDesignService{
		replaceDesign: func(_ context.Context, _ common.ID, input appwellbore.ReplaceDesignInput) (*appwellbore.DesignDTO, error) {
			gotInput = input
			return &appwellbore.DesignDTO{Revision: 2, NodalPoint: input.NodalPoint}, nil
		},
	}
	r := newDesignRouter(svc)

	w := doJSON(t, r, http.MethodPut, "/api/v1/wells/"+common.NewID().String()+"/design",
		appwellbore.ReplaceDesignInput{
			BHARows:    []wbtypes.ComponentRowDTO{{Top: 0, Bottom: 600, InternalDiameter: 2.75}},
			NodalPoint: 750,
		})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, gotInput.BHARows, 1)
	assert.Equal(t, 750.0, gotInput.NodalPoint)

	var got appwellbore.DesignDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(2), got.Revision)
}

func TestRemoveRowRequiresKind(t *testing.T) {
	r := newDesignRouter(&stubDesignService{})
	w := doJSON(t, r, http.MethodDelete,
		"/api/v1/wells/"+common.NewID().String()+"/design/rows/r1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveRowPassesKindAndID(t *testing.T) {
	var gotKind wbtypes.RowKind
	var gotRowID string
	svc := &stubDesignService{
		removeRow: func(_ context.Context, _ common.ID, kind wbtypes.RowKind, rowID string) (*appwellbore.DesignDTO, error) {
			gotKind, gotRowID = kind, rowID
			return &appwellbore.DesignDTO{}, nil
		},
	}
	r := newDesignRouter(svc)

	w := doJSON(t, r, http.MethodDelete,
		"/api/v1/wells/"+common.NewID().String()+"/design/rows/r1?kind=casing", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, wbtypes.RowKindCasing, gotKind)
	assert.Equal(t, "r1", gotRowID)
}

func TestSetNodalPointEndpoint(t *testing.T) {
	var gotDepth float64
	svc := &stubDesignService{
		setNodalPoint: func(_ context.Context, _ common.ID, depth float64) (*appwellbore.DesignDTO, error) {
			gotDepth = depth
			return &appwellbore.DesignDTO{NodalPoint: depth}, nil
		},
	}
	r := newDesignRouter(svc)

	w := doJSON(t, r, http.MethodPut,
		"/api/v1/wells/"+common.NewID().String()+"/design/nodal-point",
		map[string]float64{"depth": 850})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 850.0, gotDepth)
}

func TestGeometryEndpoint(t *testing.T) {
	wellID := common.NewID()
	svc := &stubDesignService{
		buildGeometry: func(context.Context, common.ID) (*appwellbore.GeometryResult, error) {
			return &appwellbore.GeometryResult{
				Payload: wbtypes.GeometryPayload{
					WellID:         wellID.String(),
					DesignRevision: 3,
					NodalPoint:     850,
					Segments:       []wbtypes.SegmentDTO{{StartDepth: 800, EndDepth: 850, Diameter: 2.5}},
				},
			}, nil
		},
	}
	r := newDesignRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/api/v1/wells/"+wellID.String()+"/design/geometry", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got appwellbore.GeometryResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Payload.Segments, 1)
	assert.Equal(t, 850.0, got.Payload.Segments[0].EndDepth)
	assert.Equal(t, int64(3), got.Payload.DesignRevision)
}
