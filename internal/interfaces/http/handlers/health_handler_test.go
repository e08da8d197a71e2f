package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/WellNodal/pkg/errors"
)

func newHealthRouter(checkers ...HealthChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHealthHandler("0.1.0", checkers...).RegisterRoutes(r)
	return r
}

func TestLivenessAlwaysOK(t *testing.T) {
	r := newHealthRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "alive", body["status"])
	assert.Equal(t, "0.1.0", body["version"])
}

func TestReadinessAllHealthy(t *testing.T) {
	r := newHealthRouter(
		CheckerFunc{CheckerName: "postgres", Fn: func(context.Context) error { return nil }},
		CheckerFunc{CheckerName: "redis", Fn: func(context.Context) error { return nil }},
	)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReadinessFailingDependency(t *testing.T) {
	r := newHealthRouter(
		CheckerFunc{CheckerName: "postgres", Fn: func(context.Context) error { return nil }},
		CheckerFunc{CheckerName: "redis", Fn: func(context.Context) error {
			return errors.New(errors.ErrCodeCacheError, "connection refused")
		}},
	)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var body struct {
		Status     string `json:"status"`
		Components map[string]struct {
			Status string `json:"status"`
			Error  string `json:"error"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "not_ready", body.Status)
	assert.Equal(t, "healthy", body.Components["postgres"].Status)
	assert.Equal(t, "unhealthy", body.Components["redis"].Status)
}
