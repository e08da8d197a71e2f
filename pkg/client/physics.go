package client

import (
	"context"
	"net/http"

	"github.com/turtacn/WellNodal/pkg/types/wellbore"
)

// FluidProperties carries the PVT inputs for a computation.
type FluidProperties struct {
	OilGravityAPI       float64 `json:"oil_gravity_api"`
	GasSpecificGravity  float64 `json:"gas_specific_gravity"`
	SolutionGOR         float64 `json:"solution_gor"`
	WaterCut            float64 `json:"water_cut"`
	BubblePointPressure float64 `json:"bubble_point_pressure"`
	ReservoirTemp       float64 `json:"reservoir_temp"`
}

// NodalRequest is the input to a nodal computation: the merged wellbore
// geometry anchored at the nodal point, the fluid description, and the model
// selections.  Empty model names let the engine pick its defaults.
type NodalRequest struct {
	Geometry       wellbore.GeometryPayload `json:"geometry"`
	Fluid          FluidProperties          `json:"fluid"`
	IPRModel       string                   `json:"ipr_model,omitempty"`
	VLPCorrelation string                   `json:"vlp_correlation,omitempty"`
}

// CurvePoint is one (rate, pressure) point on a computed curve.
type CurvePoint struct {
	Rate     float64 `json:"rate"`
	Pressure float64 `json:"pressure"`
}

// NodalResult is the engine's answer to a nodal computation.
type NodalResult struct {
	OperatingRate     float64      `json:"operating_rate"`
	OperatingPressure float64      `json:"operating_pressure"`
	InflowCurve       []CurvePoint `json:"inflow_curve,omitempty"`
	OutflowCurve      []CurvePoint `json:"outflow_curve,omitempty"`
	RequestID         string       `json:"request_id"`
}

// PVTRequest asks the engine for derived fluid properties at a pressure and
// temperature.
type PVTRequest struct {
	Fluid       FluidProperties `json:"fluid"`
	Pressure    float64         `json:"pressure"`
	Temperature float64         `json:"temperature"`
}

// PVTResult carries the correlated fluid properties.
type PVTResult struct {
	FormationVolumeFactor float64 `json:"formation_volume_factor"`
	OilViscosity          float64 `json:"oil_viscosity"`
	SolutionGOR           float64 `json:"solution_gor"`
	Density               float64 `json:"density"`
	RequestID             string  `json:"request_id"`
}

// HealthStatus is the engine's health report.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// ComputeNodal runs a nodal analysis on the engine.
func (c *Client) ComputeNodal(ctx context.Context, req NodalRequest) (*NodalResult, error) {
	var result NodalResult
	if err := c.do(ctx, http.MethodPost, "/v1/nodal/compute", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ComputePVT evaluates PVT correlations on the engine.
func (c *Client) ComputePVT(ctx context.Context, req PVTRequest) (*PVTResult, error) {
	var result PVTResult
	if err := c.do(ctx, http.MethodPost, "/v1/pvt/compute", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health checks engine availability.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.do(ctx, http.MethodGet, "/healthz", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
