package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/WellNodal/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/WellNodal/internal/infrastructure/monitoring/prometheus"
)

func newTestRouter(t *testing.T) (*prometheus.Metrics, http.Handler) {
	t.Helper()
	m := prometheus.NewMetrics()
	r := NewRouter(RouterConfig{
		Mode:    "test",
		Version: "test",
		Metrics: m,
		Logger:  logging.NewNopLogger(),
	})
	return m, r
}

func TestRouterServesProbes(t *testing.T) {
	_, r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterExposesMetrics(t *testing.T) {
	_, r := newTestRouter(t)

	// Drive one API request through the middleware chain first.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/wells/not-a-uuid", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "wellnodal_http_requests_total")
}

func TestRouterStampsRequestID(t *testing.T) {
	_, r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
