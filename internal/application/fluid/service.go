// Package fluid provides the fluid-sample application service: PVT sample
// CRUD plus the active-sample switch that feeds nodal-analysis runs.
package fluid

import (
	"context"
	"time"

	domain "github.com/turtacn/WellNodal/internal/domain/fluid"
	"github.com/turtacn/WellNodal/pkg/types/common"
)

// Service is the interface consumed by the HTTP handlers.
type Service interface {
	CreateSample(ctx context.Context, wellID common.ID, input SampleInput) (*SampleDTO, error)
	GetSample(ctx context.Context, id common.ID) (*SampleDTO, error)
	ListSamples(ctx context.Context, wellID common.ID) ([]*SampleDTO, error)
	UpdateSample(ctx context.Context, id common.ID, input SampleInput) (*SampleDTO, error)
	ActivateSample(ctx context.Context, wellID, sampleID common.ID) error
	DeleteSample(ctx context.Context, id common.ID) error
}

// SampleInput carries the measured PVT properties for creating or updating a
// sample.
type SampleInput struct {
	Label               string     `json:"label"`
	OilGravityAPI       float64    `json:"oil_gravity_api"`
	GasSpecificGravity  float64    `json:"gas_specific_gravity"`
	SolutionGOR         float64    `json:"solution_gor"`
	WaterCut            float64    `json:"water_cut"`
	BubblePointPressure float64    `json:"bubble_point_pressure"`
	ReservoirTemp       float64    `json:"reservoir_temp"`
	SampledAt           *time.Time `json:"sampled_at"`
}

// SampleDTO is the wire representation of a fluid sample.
type SampleDTO struct {
	ID                  string    `json:"id"`
	WellID              string    `json:"well_id"`
	Label               string    `json:"label,omitempty"`
	OilGravityAPI       float64   `json:"oil_gravity_api"`
	GasSpecificGravity  float64   `json:"gas_specific_gravity"`
	SolutionGOR         float64   `json:"solution_gor"`
	WaterCut            float64   `json:"water_cut"`
	BubblePointPressure float64   `json:"bubble_point_pressure"`
	ReservoirTemp       float64   `json:"reservoir_temp"`
	Active              bool      `json:"active"`
	SampledAt           time.Time `json:"sampled_at"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func sampleToDTO(s *domain.Sample) *SampleDTO {
	return &SampleDTO{
		ID:                  s.ID.String(),
		WellID:              s.WellID.String(),
		Label:               s.Label,
		OilGravityAPI:       s.OilGravityAPI,
		GasSpecificGravity:  s.GasSpecificGravity,
		SolutionGOR:         s.SolutionGOR,
		WaterCut:            s.WaterCut,
		BubblePointPressure: s.BubblePointPressure,
		ReservoirTemp:       s.ReservoirTemp,
		Active:              s.Active,
		SampledAt:           s.SampledAt,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}
