package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appanalysis "github.com/turtacn/WellNodal/internal/application/analysis"
	"github.com/turtacn/WellNodal/pkg/errors"
)

// AnalysisHandler serves the nodal-analysis run endpoints.
type AnalysisHandler struct {
	runs appanalysis.Service
}

// NewAnalysisHandler creates an AnalysisHandler.
func NewAnalysisHandler(runs appanalysis.Service) *AnalysisHandler {
	return &AnalysisHandler{runs: runs}
}

// RegisterRoutes mounts the analysis routes on the API group.
func (h *AnalysisHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/wells/:wellID/analyses", h.Start)
	api.GET("/wells/:wellID/analyses", h.List)
	api.GET("/analyses/:runID", h.Get)
}

// Start handles POST /wells/:wellID/analyses.  The body is optional and may
// pick the IPR model and VLP correlation.  The run executes synchronously and
// the response carries its terminal state; a failed engine call is a 201 with
// status "failed", not an HTTP error.
func (h *AnalysisHandler) Start(c *gin.Context) {
	wellID, ok := pathID(c, "wellID")
	if !ok {
		return
	}
	var input appanalysis.StartRunInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, errors.InvalidParam("invalid request body").WithCause(err))
			return
		}
	}
	run, err := h.runs.StartRun(c.Request.Context(), wellID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, run)
}

// List handles GET /wells/:wellID/analyses.
func (h *AnalysisHandler) List(c *gin.Context) {
	wellID, ok := pathID(c, "wellID")
	if !ok {
		return
	}
	result, err := h.runs.ListRuns(c.Request.Context(), wellID, parsePagination(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get handles GET /analyses/:runID.
func (h *AnalysisHandler) Get(c *gin.Context) {
	runID, ok := pathID(c, "runID")
	if !ok {
		return
	}
	run, err := h.runs.GetRun(c.Request.Context(), runID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}
