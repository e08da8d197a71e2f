package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appfluid "github.com/turtacn/WellNodal/internal/application/fluid"
	"github.com/turtacn/WellNodal/pkg/errors"
)

// FluidHandler serves the PVT fluid-sample endpoints.
type FluidHandler struct {
	fluids appfluid.Service
}

// NewFluidHandler creates a FluidHandler.
func NewFluidHandler(fluids appfluid.Service) *FluidHandler {
	return &FluidHandler{fluids: fluids}
}

// RegisterRoutes mounts the fluid routes on the API group.
func (h *FluidHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/wells/:wellID/fluids", h.Create)
	api.GET("/wells/:wellID/fluids", h.List)
	api.PUT("/wells/:wellID/fluids/:sampleID/activate", h.Activate)
	api.GET("/fluids/:sampleID", h.Get)
	api.PUT("/fluids/:sampleID", h.Update)
	api.DELETE("/fluids/:sampleID", h.Delete)
}

// Create handles POST /wells/:wellID/fluids.
func (h *FluidHandler) Create(c *gin.Context) {
	wellID, ok := pathID(c, "wellID")
	if !ok {
		return
	}
	var input appfluid.SampleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, errors.InvalidParam("invalid request body").WithCause(err))
		return
	}
	sample, err := h.fluids.CreateSample(c.Request.Context(), wellID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sample)
}

// List handles GET /wells/:wellID/fluids.
func (h *FluidHandler) List(c *gin.Context) {
	wellID, ok := pathID(c, "wellID")
	if !ok {
		return
	}
	samples, err := h.fluids.ListSamples(c.Request.Context(), wellID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"samples": samples})
}

// Activate handles PUT /wells/:wellID/fluids/:sampleID/activate.
func (h *FluidHandler) Activate(c *gin.Context) {
	wellID, ok := pathID(c, "wellID")
	if !ok {
		return
	}
	sampleID, ok := pathID(c, "sampleID")
	if !ok {
		return
	}
	if err := h.fluids.ActivateSample(c.Request.Context(), wellID, sampleID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get handles GET /fluids/:sampleID.
func (h *FluidHandler) Get(c *gin.Context) {
	sampleID, ok := pathID(c, "sampleID")
	if !ok {
		return
	}
	sample, err := h.fluids.GetSample(c.Request.Context(), sampleID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sample)
}

// Update handles PUT /fluids/:sampleID.
func (h *FluidHandler) Update(c *gin.Context) {
	sampleID, ok := pathID(c, "sampleID")
	if !ok {
		return
	}
	var input appfluid.SampleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, errors.InvalidParam("invalid request body").WithCause(err))
		return
	}
	sample, err := h.fluids.UpdateSample(c.Request.Context(), sampleID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sample)
}

// Delete handles DELETE /fluids/:sampleID.
func (h *FluidHandler) Delete(c *gin.Context) {
	sampleID, ok := pathID(c, "sampleID")
	if !ok {
		return
	}
	if err := h.fluids.DeleteSample(c.Request.Context(), sampleID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
