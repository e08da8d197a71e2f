// Package analysis holds the nodal-analysis run aggregate: a run captures the
// exact inputs sent to the physics engine (design revision, fluid sample,
// nodal point), tracks the run lifecycle, and stores the operating-point
// result when the engine answers.
package analysis

import (
	"fmt"
	"time"

	"github.com/turtacn/WellNodal/pkg/errors"
	"github.com/turtacn/WellNodal/pkg/types/common"
)

// Status is the lifecycle state of an analysis run.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusRunning, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether the run can no longer change state.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Default model selections sent to the engine when the caller does not pick
// one.  The engine owns the catalogue; these names follow its API.
const (
	DefaultIPRModel       = "vogel"
	DefaultVLPCorrelation = "hagedorn_brown"
)

// CurvePoint is one (rate, pressure) point of an inflow or outflow curve.
type CurvePoint struct {
	Rate     float64 `json:"rate"`
	Pressure float64 `json:"pressure"`
}

// Result holds the engine's answer: the operating point where the inflow and
// outflow curves intersect, plus the curves themselves for plotting.
type Result struct {
	OperatingRate     float64      `json:"operating_rate"`
	OperatingPressure float64      `json:"operating_pressure"`
	InflowCurve       []CurvePoint `json:"inflow_curve,omitempty"`
	OutflowCurve      []CurvePoint `json:"outflow_curve,omitempty"`
	EngineRequestID   string       `json:"engine_request_id,omitempty"`
}

// Run is one nodal-analysis execution against a frozen set of inputs.  The
// design revision and sample ID pin exactly what the engine saw, so a run
// stays reproducible after the design moves on.
type Run struct {
	ID             common.ID
	WellID         common.ID
	DesignRevision int64
	FluidSampleID  common.ID
	NodalPoint     float64

	// Model selections frozen with the run; defaults applied at creation.
	IPRModel       string
	VLPCorrelation string

	Status       Status
	Result       *Result
	ErrorMessage string

	// ArchiveKey points at the request payload snapshot in object storage,
	// set when archiving is enabled.
	ArchiveKey string

	RequestedAt time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// NewRun creates a pending run for the given frozen inputs.
func NewRun(wellID common.ID, designRevision int64, sampleID common.ID, nodalPoint float64) *Run {
	return &Run{
		ID:             common.NewID(),
		WellID:         wellID,
		DesignRevision: designRevision,
		FluidSampleID:  sampleID,
		NodalPoint:     nodalPoint,
		IPRModel:       DefaultIPRModel,
		VLPCorrelation: DefaultVLPCorrelation,
		Status:         StatusPending,
		RequestedAt:    time.Now().UTC(),
	}
}

// Start moves the run from pending to running.
func (r *Run) Start() error {
	if r.Status != StatusPending {
		return r.transitionError(StatusRunning)
	}
	now := time.Now().UTC()
	r.Status = StatusRunning
	r.StartedAt = &now
	return nil
}

// Complete records the engine result and moves the run to completed.
func (r *Run) Complete(res Result) error {
	if r.Status != StatusRunning {
		return r.transitionError(StatusCompleted)
	}
	now := time.Now().UTC()
	r.Status = StatusCompleted
	r.Result = &res
	r.CompletedAt = &now
	return nil
}

// Fail records the failure reason and moves the run to failed.  Pending runs
// may fail directly, covering prerequisite errors caught before the engine
// call.
func (r *Run) Fail(reason string) error {
	if r.Status.Terminal() {
		return r.transitionError(StatusFailed)
	}
	now := time.Now().UTC()
	r.Status = StatusFailed
	r.ErrorMessage = reason
	r.CompletedAt = &now
	return nil
}

// Duration returns the wall time from start to completion, or zero while the
// run is still in flight.
func (r *Run) Duration() time.Duration {
	if r.StartedAt == nil || r.CompletedAt == nil {
		return 0
	}
	return r.CompletedAt.Sub(*r.StartedAt)
}

func (r *Run) transitionError(to Status) error {
	return errors.New(errors.ErrCodeRunStateInvalid,
		fmt.Sprintf("run %s cannot move from %s to %s", r.ID, r.Status, to))
}
