// Package fluid holds the PVT fluid-sample aggregate.  The dashboard stores
// the measured fluid properties; PVT correlation and flash calculations run
// on the external physics engine, which receives the active sample with every
// analysis request.
package fluid

import (
	"fmt"
	"time"

	"github.com/turtacn/WellNodal/pkg/errors"
	"github.com/turtacn/WellNodal/pkg/types/common"
)

// Sample is one set of measured PVT properties for a well's produced fluids.
// A well can hold several samples (different dates, labs, or recombination
// bases); exactly one is marked active and used for analysis.
type Sample struct {
	ID     common.ID
	WellID common.ID
	Label  string

	// Oil gravity in °API, gas specific gravity relative to air.
	OilGravityAPI      float64
	GasSpecificGravity float64

	// Solution gas-oil ratio in scf/STB and produced water cut as a
	// fraction in [0, 1].
	SolutionGOR float64
	WaterCut    float64

	// Bubble-point pressure in psia and reservoir temperature in °F.
	BubblePointPressure float64
	ReservoirTemp       float64

	Active    bool
	SampledAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSample constructs a sample after validating its measurements.
func NewSample(wellID common.ID, label string, s Sample) (*Sample, error) {
	s.ID = common.NewID()
	s.WellID = wellID
	s.Label = label
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	if s.SampledAt.IsZero() {
		s.SampledAt = now
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the measured properties against physical bounds.  Bounds
// are deliberately loose; they catch unit mix-ups and sign errors, not
// questionable lab work.
func (s *Sample) Validate() error {
	if s.WellID.IsZero() {
		return errors.New(errors.ErrCodeFluidSampleInvalid, "sample is not attached to a well")
	}
	checks := []struct {
		name     string
		value    float64
		min, max float64
	}{
		{"oil gravity (°API)", s.OilGravityAPI, 5, 70},
		{"gas specific gravity", s.GasSpecificGravity, 0.5, 2.0},
		{"solution GOR (scf/STB)", s.SolutionGOR, 0, 50000},
		{"water cut", s.WaterCut, 0, 1},
		{"bubble-point pressure (psia)", s.BubblePointPressure, 0, 20000},
		{"reservoir temperature (°F)", s.ReservoirTemp, 32, 500},
	}
	for _, c := range checks {
		if c.value < c.min || c.value > c.max {
			return errors.New(errors.ErrCodeFluidSampleInvalid,
				fmt.Sprintf("%s %v outside [%v, %v]", c.name, c.value, c.min, c.max))
		}
	}
	return nil
}

// Touch bumps the update timestamp after a mutation.
func (s *Sample) Touch() {
	s.UpdatedAt = time.Now().UTC()
}
