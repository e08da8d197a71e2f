package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appwellbore "github.com/turtacn/WellNodal/internal/application/wellbore"
	"github.com/turtacn/WellNodal/pkg/errors"
)

// WellHandler serves the well CRUD endpoints.
type WellHandler struct {
	wells appwellbore.Service
}

// NewWellHandler creates a WellHandler.
func NewWellHandler(wells appwellbore.Service) *WellHandler {
	return &WellHandler{wells: wells}
}

// RegisterRoutes mounts the well routes on the API group.
func (h *WellHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/wells", h.Create)
	api.GET("/wells", h.List)
	api.GET("/wells/:wellID", h.Get)
	api.PATCH("/wells/:wellID", h.Update)
	api.DELETE("/wells/:wellID", h.Delete)
}

// Create handles POST /wells.
func (h *WellHandler) Create(c *gin.Context) {
	var input appwellbore.CreateWellInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, errors.InvalidParam("invalid request body").WithCause(err))
		return
	}
	well, err := h.wells.CreateWell(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, well)
}

// Get handles GET /wells/:wellID.
func (h *WellHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "wellID")
	if !ok {
		return
	}
	well, err := h.wells.GetWell(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, well)
}

// List handles GET /wells.
func (h *WellHandler) List(c *gin.Context) {
	result, err := h.wells.ListWells(c.Request.Context(), parsePagination(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Update handles PATCH /wells/:wellID with a partial body.
func (h *WellHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "wellID")
	if !ok {
		return
	}
	var input appwellbore.UpdateWellInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, errors.InvalidParam("invalid request body").WithCause(err))
		return
	}
	input.ID = id
	well, err := h.wells.UpdateWell(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, well)
}

// Delete handles DELETE /wells/:wellID.
func (h *WellHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "wellID")
	if !ok {
		return
	}
	if err := h.wells.DeleteWell(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
