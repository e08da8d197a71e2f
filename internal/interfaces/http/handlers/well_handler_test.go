package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appwellbore "github.com/turtacn/WellNodal/internal/application/wellbore"
	"github.com/turtacn/WellNodal/pkg/errors"
	"github.com/turtacn/WellNodal/pkg/types/common"
)

// stubWellService overrides only the methods a test exercises; untouched
// methods panic through the embedded nil interface.
type stubWellService struct {
	appwellbore.Service
	createWell func(context.Context, appwellbore.CreateWellInput) (*appwellbore.WellDTO, error)
	getWell    func(context.Context, common.ID) (*appwellbore.WellDTO, error)
	listWells  func(context.Context, common.Pagination) (*appwellbore.WellListResult, error)
	deleteWell func(context.Context, common.ID) error
}

func (s *stubWellService) CreateWell(ctx context.Context, input appwellbore.CreateWellInput) (*appwellbore.WellDTO, error) {
	return s.createWell(ctx, input)
}

func (s *stubWellService) GetWell(ctx context.Context, id common.ID) (*appwellbore.WellDTO, error) {
	return s.getWell(ctx, id)
}

func (s *stubWellService) ListWells(ctx context.Context, p common.Pagination) (*appwellbore.WellListResult, error) {
	return s.listWells(ctx, p)
}

func (s *stubWellService) DeleteWell(ctx context.Context, id common.ID) error {
	return s.deleteWell(ctx, id)
}

func newWellRouter(svc appwellbore.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewWellHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateWellEndpoint(t *testing.T) {
	svc := &stubWellService{
		createWell: func(_ context.Context, input appwellbore.CreateWellInput) (*appwellbore.WellDTO, error) {
			return &appwellbore.WellDTO{ID: common.NewID().String(), Name: input.Name}, nil
		},
	}
	r := newWellRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/wells", appwellbore.CreateWellInput{Name: "Eagleford 12-H"})
	require.Equal(t, http.StatusCreated, w.Code)

	var got appwellbore.WellDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Eagleford 12-H", got.Name)
	assert.NotEmpty(t, got.ID)
}

func TestCreateWellInvalidBody(t *testing.T) {
	r := newWellRouter(&stubWellService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/wells", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, errors.ErrCodeBadRequest.String(), resp.Code)
}

func TestGetWellNotFoundMapsTo404(t *testing.T) {
	svc := &stubWellService{
		getWell: func(context.Context, common.ID) (*appwellbore.WellDTO, error) {
			return nil, errors.New(errors.ErrCodeWellNotFound, "well not found")
		},
	}
	r := newWellRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/api/v1/wells/"+common.NewID().String(), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "WB_001", resp.Code)
}

func TestGetWellRejectsMalformedID(t *testing.T) {
	r := newWellRouter(&stubWellService{})
	w := doJSON(t, r, http.MethodGet, "/api/v1/wells/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListWellsPassesPagination(t *testing.T) {
	var gotPage common.Pagination
	svc := &stubWellService{
		listWells: func(_ context.Context, p common.Pagination) (*appwellbore.WellListResult, error) {
			gotPage = p
			return &appwellbore.WellListResult{Wells: []*appwellbore.WellDTO{}, Page: p.Page, PageSize: p.PageSize}, nil
		},
	}
	r := newWellRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/api/v1/wells?page=2&page_size=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, gotPage.Page)
	assert.Equal(t, 5, gotPage.PageSize)
}

func TestDeleteWellNoContent(t *testing.T) {
	svc := &stubWellService{
		deleteWell: func(context.Context, common.ID) error { return nil },
	}
	r := newWellRouter(svc)

	w := doJSON(t, r, http.MethodDelete, "/api/v1/wells/"+common.NewID().String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestInternalErrorIsMasked(t *testing.T) {
	svc := &stubWellService{
		getWell: func(context.Context, common.ID) (*appwellbore.WellDTO, error) {
			return nil, errors.New(errors.ErrCodeDatabaseError, "pq: connection refused to 10.0.3.7")
		},
	}
	r := newWellRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/api/v1/wells/"+common.NewID().String(), nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotContains(t, resp.Message, "10.0.3.7")
}
