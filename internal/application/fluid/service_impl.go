package fluid

import (
	"context"

	domain "github.com/turtacn/WellNodal/internal/domain/fluid"
	wbdomain "github.com/turtacn/WellNodal/internal/domain/wellbore"
	"github.com/turtacn/WellNodal/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/WellNodal/pkg/errors"
	"github.com/turtacn/WellNodal/pkg/types/common"
)

type service struct {
	samples domain.Repository
	wells   wbdomain.WellRepository
	logger  logging.Logger
}

// NewService wires the fluid-sample application service.
func NewService(samples domain.Repository, wells wbdomain.WellRepository, logger logging.Logger) Service {
	return &service{samples: samples, wells: wells, logger: logger}
}

func (s *service) CreateSample(ctx context.Context, wellID common.ID, input SampleInput) (*SampleDTO, error) {
	if _, err := s.wells.GetByID(ctx, wellID); err != nil {
		return nil, err
	}
	sample, err := domain.NewSample(wellID, input.Label, sampleFromInput(input))
	if err != nil {
		return nil, err
	}
	if err := s.samples.Create(ctx, sample); err != nil {
		return nil, err
	}
	s.logger.Info("fluid sample created",
		logging.String("sample_id", sample.ID.String()),
		logging.String("well_id", wellID.String()),
	)
	return sampleToDTO(sample), nil
}

func (s *service) GetSample(ctx context.Context, id common.ID) (*SampleDTO, error) {
	sample, err := s.samples.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sampleToDTO(sample), nil
}

func (s *service) ListSamples(ctx context.Context, wellID common.ID) ([]*SampleDTO, error) {
	samples, err := s.samples.ListByWell(ctx, wellID)
	if err != nil {
		return nil, err
	}
	out := make([]*SampleDTO, 0, len(samples))
	for _, sample := range samples {
		out = append(out, sampleToDTO(sample))
	}
	return out, nil
}

func (s *service) UpdateSample(ctx context.Context, id common.ID, input SampleInput) (*SampleDTO, error) {
	sample, err := s.samples.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := sampleFromInput(input)
	updated.ID = sample.ID
	updated.WellID = sample.WellID
	updated.Label = input.Label
	updated.Active = sample.Active
	updated.CreatedAt = sample.CreatedAt
	if input.SampledAt == nil {
		updated.SampledAt = sample.SampledAt
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	updated.Touch()
	if err := s.samples.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return sampleToDTO(&updated), nil
}

// ActivateSample flips the well's active sample.  The repository performs the
// clear-then-set atomically, so at most one sample per well is active.
func (s *service) ActivateSample(ctx context.Context, wellID, sampleID common.ID) error {
	sample, err := s.samples.GetByID(ctx, sampleID)
	if err != nil {
		return err
	}
	if sample.WellID != wellID {
		return errors.New(errors.ErrCodeFluidSampleInvalid, "sample belongs to a different well")
	}
	if err := s.samples.SetActive(ctx, wellID, sampleID); err != nil {
		return err
	}
	s.logger.Info("active fluid sample changed",
		logging.String("well_id", wellID.String()),
		logging.String("sample_id", sampleID.String()),
	)
	return nil
}

func (s *service) DeleteSample(ctx context.Context, id common.ID) error {
	return s.samples.Delete(ctx, id)
}

func sampleFromInput(input SampleInput) domain.Sample {
	sample := domain.Sample{
		OilGravityAPI:       input.OilGravityAPI,
		GasSpecificGravity:  input.GasSpecificGravity,
		SolutionGOR:         input.SolutionGOR,
		WaterCut:            input.WaterCut,
		BubblePointPressure: input.BubblePointPressure,
		ReservoirTemp:       input.ReservoirTemp,
	}
	if input.SampledAt != nil {
		sample.SampledAt = *input.SampledAt
	}
	return sample
}
