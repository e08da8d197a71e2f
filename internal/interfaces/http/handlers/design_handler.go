package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appwellbore "github.com/turtacn/WellNodal/internal/application/wellbore"
	"github.com/turtacn/WellNodal/pkg/errors"
	wbtypes "github.com/turtacn/WellNodal/pkg/types/wellbore"
)

// DesignHandler serves the wellbore-design editor endpoints and the merged
// geometry view.
type DesignHandler struct {
	wells appwellbore.Service
}

// NewDesignHandler creates a DesignHandler.
func NewDesignHandler(wells appwellbore.Service) *DesignHandler {
	return &DesignHandler{wells: wells}
}

// RegisterRoutes mounts the design routes on the API group.
func (h *DesignHandler) RegisterRoutes(api *gin.RouterGroup) {
	design := api.Group("/wells/:wellID/design")
	design.GET("", h.Get)
	design.PUT("", h.Replace)
	design.POST("/rows", h.AddRow)
	design.PUT("/rows/:rowID", h.UpdateRow)
	design.DELETE("/rows/:rowID", h.RemoveRow)
	design.POST("/rows/:rowID/move", h.MoveRow)
	design.PUT("/nodal-point", h.SetNodalPoint)
	design.GET("/geometry", h.Geometry)
}

// Get handles GET /wells/:wellID/design.  A well without a stored design
// returns an empty revision-0 design rather than 404.
func (h *DesignHandler) Get(c *gin.Context) {
	wellID, ok := pathID(c, "wellID")
	if !ok {
		return
	}
	design, err := h.wells.GetDesign(c.Request.Context(), wellID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, design)
}

// Replace handles PUT /wells/:wellID/design: the bulk editor save.  The body
// is a full snapshot of both row lists and the nodal point; row IDs are kept
// when present and minted when missing.
func (h *DesignHandler) Replace(c *gin.Context) {
	wellID, ok := pathID(c, "wellID")
	if !ok {
		return
	}
	var input appwellbore.ReplaceDesignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, errors.InvalidParam("invalid request body").WithCause(err))
		return
	}
	design, err := h.wells.ReplaceDesign(c.Request.Context(), wellID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, design)
}

// AddRow handles POST /wells/:wellID/design/rows.
func (h *DesignHandler) AddRow(c *gin.Context) {
	wellID, ok := pathID(c, "wellID")
	if !ok {
		return
	}
	var row wbtypes.ComponentRowDTO
	if err := c.ShouldBindJSON(&row); err != nil {
		respondError(c, errors.InvalidParam("invalid request body").WithCause(err))
		return
	}
	design, err := h.wells.AddRow(c.Request.Context(), wellID, row)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, design)
}

// UpdateRow handles PUT /wells/:wellID/design/rows/:rowID.
func (h *DesignHandler) UpdateRow(c *gin.Context) {
	wellID, ok := pathID(c, "wellID")
	if !ok {
		return
	}
	var row wbtypes.ComponentRowDTO
	if err := c.ShouldBindJSON(&row); err != nil {
		respondError(c, errors.InvalidParam("invalid request body").WithCause(err))
		return
	}
	row.ID = c.Param("rowID")
	design, err := h.wells.UpdateRow(c.Request.Context(), wellID, row)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, design)
}

// RemoveRow handles DELETE /wells/:wellID/design/rows/:rowID?kind=bha|casing.
func (h *DesignHandler) RemoveRow(c *gin.Context) {
	wellID, ok := pathID(c, "wellID")
	if !ok {
		return
	}
	kind, ok := queryRowKind(c)
	if !ok {
		return
	}
	design, err := h.wells.RemoveRow(c.Request.Context(), wellID, kind, c.Param("rowID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, design)
}

type moveRowRequest struct {
	Kind     wbtypes.RowKind `json:"kind"`
	NewIndex int             `json:"new_index"`
}

// MoveRow handles POST /wells/:wellID/design/rows/:rowID/move.
func (h *DesignHandler) MoveRow(c *gin.Context) {
	wellID, ok := pathID(c, "wellID")
	if !ok {
		return
	}
	var req moveRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidParam("invalid request body").WithCause(err))
		return
	}
	design, err := h.wells.MoveRow(c.Request.Context(), wellID, req.Kind, c.Param("rowID"), req.NewIndex)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, design)
}

type nodalPointRequest struct {
	Depth float64 `json:"depth"`
}

// SetNodalPoint handles PUT /wells/:wellID/design/nodal-point.
func (h *DesignHandler) SetNodalPoint(c *gin.Context) {
	wellID, ok := pathID(c, "wellID")
	if !ok {
		return
	}
	var req nodalPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidParam("invalid request body").WithCause(err))
		return
	}
	design, err := h.wells.SetNodalPoint(c.Request.Context(), wellID, req.Depth)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, design)
}

// Geometry handles GET /wells/:wellID/design/geometry: the merged segment
// stack anchored at the nodal point.
func (h *DesignHandler) Geometry(c *gin.Context) {
	wellID, ok := pathID(c, "wellID")
	if !ok {
		return
	}
	result, err := h.wells.BuildGeometry(c.Request.Context(), wellID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func queryRowKind(c *gin.Context) (wbtypes.RowKind, bool) {
	kind := wbtypes.RowKind(c.Query("kind"))
	switch kind {
	case wbtypes.RowKindBHA, wbtypes.RowKindCasing:
		return kind, true
	}
	respondError(c, errors.InvalidParam("kind must be bha or casing"))
	return "", false
}
