package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalysis "github.com/turtacn/WellNodal/internal/application/analysis"
	"github.com/turtacn/WellNodal/pkg/errors"
	"github.com/turtacn/WellNodal/pkg/types/common"
)

type stubAnalysisService struct {
	appanalysis.Service
	startRun func(context.Context, common.ID, appanalysis.StartRunInput) (*appanalysis.RunDTO, error)
	getRun   func(context.Context, common.ID) (*appanalysis.RunDTO, error)
}

func (s *stubAnalysisService) StartRun(ctx context.Context, wellID common.ID, input appanalysis.StartRunInput) (*appanalysis.RunDTO, error) {
	return s.startRun(ctx, wellID, input)
}

func (s *stubAnalysisService) GetRun(ctx context.Context, runID common.ID) (*appanalysis.RunDTO, error) {
	return s.getRun(ctx, runID)
}

func newAnalysisRouter(svc appanalysis.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewAnalysisHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestStartRunEndpoint(t *testing.T) {
	svc := &stubAnalysisService{
		startRun: func(_ context.Context, wellID common.ID, _ appanalysis.StartRunInput) (*appanalysis.RunDTO, error) {
			return &appanalysis.RunDTO{ID: common.NewID().String(), WellID: wellID.String(), Status: "completed"}, nil
		},
	}
	r := newAnalysisRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/wells/"+common.NewID().String()+"/analyses", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var got appanalysis.RunDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "completed", got.Status)
}

func TestStartRunEndpointPassesModelSelection(t *testing.T) {
	var seen appanalysis.StartRunInput
	svc := &stubAnalysisService{
		startRun: func(_ context.Context, wellID common.ID, input appanalysis.StartRunInput) (*appanalysis.RunDTO, error) {
			seen = input
			return &appanalysis.RunDTO{ID: common.NewID().String(), WellID: wellID.String(), Status: "completed"}, nil
		},
	}
	r := newAnalysisRouter(svc)

	body := appanalysis.StartRunInput{IPRModel: "fetkovich", VLPCorrelation: "beggs_brill"}
	w := doJSON(t, r, http.MethodPost, "/api/v1/wells/"+common.NewID().String()+"/analyses", body)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "fetkovich", seen.IPRModel)
	assert.Equal(t, "beggs_brill", seen.VLPCorrelation)
}

func TestStartRunConflictMapsTo409(t *testing.T) {
	svc := &stubAnalysisService{
		startRun: func(context.Context, common.ID, appanalysis.StartRunInput) (*appanalysis.RunDTO, error) {
			return nil, errors.New(errors.ErrCodeRunAlreadyActive, "an analysis run is already active for this well")
		},
	}
	r := newAnalysisRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/wells/"+common.NewID().String()+"/analyses", nil)
	require.Equal(t, http.StatusConflict, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "RUN_004", resp.Code)
}

func TestStartRunMissingPrerequisitesMapsTo422(t *testing.T) {
	svc := &stubAnalysisService{
		startRun: func(context.Context, common.ID, appanalysis.StartRunInput) (*appanalysis.RunDTO, error) {
			return nil, errors.New(errors.ErrCodeRunPrerequisitesMissing, "well has no active fluid sample")
		},
	}
	r := newAnalysisRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/wells/"+common.NewID().String()+"/analyses", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetRunEndpoint(t *testing.T) {
	runID := common.NewID()
	svc := &stubAnalysisService{
		getRun: func(_ context.Context, id common.ID) (*appanalysis.RunDTO, error) {
			return &appanalysis.RunDTO{ID: id.String(), Status: "failed", ErrorMessage: "engine timed out"}, nil
		},
	}
	r := newAnalysisRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/api/v1/analyses/"+runID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got appanalysis.RunDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, runID.String(), got.ID)
	assert.Equal(t, "failed", got.Status)
}
