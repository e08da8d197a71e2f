// Package http assembles the gin router and HTTP server for the WellNodal
// API.
package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appanalysis "github.com/turtacn/WellNodal/internal/application/analysis"
	appfluid "github.com/turtacn/WellNodal/internal/application/fluid"
	appwellbore "github.com/turtacn/WellNodal/internal/application/wellbore"
	"github.com/turtacn/WellNodal/internal/config"
	"github.com/turtacn/WellNodal/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/WellNodal/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/WellNodal/internal/interfaces/http/handlers"
	"github.com/turtacn/WellNodal/internal/interfaces/http/middleware"
)

// RouterConfig carries everything the router needs; Metrics may be nil.
type RouterConfig struct {
	Mode           string // gin mode: "debug" | "release" | "test"
	Version        string
	AllowedOrigins []string
	RateLimit      config.RateLimitConfig

	Wells    appwellbore.Service
	Fluids   appfluid.Service
	Analyses appanalysis.Service

	Metrics  *prometheus.Metrics
	Logger   logging.Logger
	Checkers []handlers.HealthChecker
}

// NewRouter builds the full gin engine: middleware chain, probe and metrics
// endpoints, and the versioned API.
func NewRouter(cfg RouterConfig) *gin.Engine {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(cfg.Logger),
		middleware.RequestLogging(cfg.Logger, "/healthz", "/readyz", "/metrics"),
		middleware.CORS(middleware.CORSConfig{AllowedOrigins: cfg.AllowedOrigins}),
	)
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	handlers.NewHealthHandler(cfg.Version, cfg.Checkers...).RegisterRoutes(r)

	api := r.Group("/api/v1")
	// Probes and metrics stay outside the throttle; only the API pays for it.
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(middleware.RateLimitOptions{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
			CleanupInterval:   5 * time.Minute,
		}))
	}
	handlers.NewWellHandler(cfg.Wells).RegisterRoutes(api)
	handlers.NewDesignHandler(cfg.Wells).RegisterRoutes(api)
	handlers.NewFluidHandler(cfg.Fluids).RegisterRoutes(api)
	handlers.NewAnalysisHandler(cfg.Analyses).RegisterRoutes(api)

	return r
}
