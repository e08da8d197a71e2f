package fluid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/WellNodal/pkg/errors"
	"github.com/turtacn/WellNodal/pkg/types/common"
)

func validMeasurements() Sample {
	return Sample{
		OilGravityAPI:       35,
		GasSpecificGravity:  0.75,
		SolutionGOR:         650,
		WaterCut:            0.4,
		BubblePointPressure: 2400,
		ReservoirTemp:       180,
	}
}

func TestNewSample(t *testing.T) {
	wellID := common.NewID()
	s, err := NewSample(wellID, "lab recombination 2026-03", validMeasurements())
	require.NoError(t, err)

	assert.True(t, s.ID.Valid())
	assert.Equal(t, wellID, s.WellID)
	assert.Equal(t, "lab recombination 2026-03", s.Label)
	assert.False(t, s.SampledAt.IsZero())
	assert.False(t, s.Active)
}

func TestSampleValidateBounds(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Sample)
	}{
		{"no well", func(s *Sample) { s.WellID = "" }},
		{"api too low", func(s *Sample) { s.OilGravityAPI = 2 }},
		{"api too high", func(s *Sample) { s.OilGravityAPI = 90 }},
		{"gas gravity low", func(s *Sample) { s.GasSpecificGravity = 0.1 }},
		{"negative gor", func(s *Sample) { s.SolutionGOR = -10 }},
		{"water cut above 1", func(s *Sample) { s.WaterCut = 1.5 }},
		{"negative bubble point", func(s *Sample) { s.BubblePointPressure = -5 }},
		{"freezing reservoir", func(s *Sample) { s.ReservoirTemp = 20 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validMeasurements()
			s.WellID = common.NewID()
			tc.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeFluidSampleInvalid))
		})
	}
}
