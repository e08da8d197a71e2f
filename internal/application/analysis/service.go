// Package analysis orchestrates nodal-analysis runs: it freezes the inputs
// (geometry revision, active fluid sample, nodal point), archives the engine
// request, calls the physics engine, and records the outcome.
package analysis

import (
	"context"
	"time"

	domain "github.com/turtacn/WellNodal/internal/domain/analysis"
	"github.com/turtacn/WellNodal/pkg/client"
	"github.com/turtacn/WellNodal/pkg/types/common"
)

// Service is the interface consumed by the HTTP handlers.
type Service interface {
	StartRun(ctx context.Context, wellID common.ID, input StartRunInput) (*RunDTO, error)
	GetRun(ctx context.Context, runID common.ID) (*RunDTO, error)
	ListRuns(ctx context.Context, wellID common.ID, p common.Pagination) (*RunListResult, error)
}

// StartRunInput carries optional model selections for a run.  Empty fields
// fall back to the engine defaults.
type StartRunInput struct {
	IPRModel       string `json:"ipr_model"`
	VLPCorrelation string `json:"vlp_correlation"`
}

// EngineClient is the slice of the physics-engine SDK the service uses;
// *client.Client satisfies it.
type EngineClient interface {
	ComputeNodal(ctx context.Context, req client.NodalRequest) (*client.NodalResult, error)
}

// RunDTO is the wire representation of an analysis run.
type RunDTO struct {
	ID             string         `json:"id"`
	WellID         string         `json:"well_id"`
	DesignRevision int64          `json:"design_revision"`
	FluidSampleID  string         `json:"fluid_sample_id"`
	NodalPoint     float64        `json:"nodal_point"`
	IPRModel       string         `json:"ipr_model"`
	VLPCorrelation string         `json:"vlp_correlation"`
	Status         string         `json:"status"`
	Result         *domain.Result `json:"result,omitempty"`
	ErrorMessage   string         `json:"error_message,omitempty"`
	ArchiveKey     string         `json:"archive_key,omitempty"`
	RequestedAt    time.Time      `json:"requested_at"`
	StartedAt      *time.Time     `json:"started_at,omitempty"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty"`
}

// RunListResult is a paginated run listing.
type RunListResult struct {
	Runs     []*RunDTO `json:"runs"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

func runToDTO(r *domain.Run) *RunDTO {
	return &RunDTO{
		ID:             r.ID.String(),
		WellID:         r.WellID.String(),
		DesignRevision: r.DesignRevision,
		FluidSampleID:  r.FluidSampleID.String(),
		NodalPoint:     r.NodalPoint,
		IPRModel:       r.IPRModel,
		VLPCorrelation: r.VLPCorrelation,
		Status:         string(r.Status),
		Result:         r.Result,
		ErrorMessage:   r.ErrorMessage,
		ArchiveKey:     r.ArchiveKey,
		RequestedAt:    r.RequestedAt,
		StartedAt:      r.StartedAt,
		CompletedAt:    r.CompletedAt,
	}
}
