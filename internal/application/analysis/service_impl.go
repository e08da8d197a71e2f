package analysis

import (
	"context"
	"time"

	appwellbore "github.com/turtacn/WellNodal/internal/application/wellbore"
	domain "github.com/turtacn/WellNodal/internal/domain/analysis"
	"github.com/turtacn/WellNodal/internal/domain/fluid"
	"github.com/turtacn/WellNodal/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/WellNodal/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/WellNodal/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/WellNodal/internal/infrastructure/storage/minio"
	"github.com/turtacn/WellNodal/pkg/client"
	"github.com/turtacn/WellNodal/pkg/errors"
	"github.com/turtacn/WellNodal/pkg/types/common"
)

type service struct {
	runs      domain.Repository
	fluids    fluid.Repository
	geometry  appwellbore.Service
	engine    EngineClient
	archive   minio.ArchiveStore
	publisher kafka.Publisher
	metrics   *prometheus.Metrics
	logger    logging.Logger
}

// NewService wires the analysis application service.  archive, publisher, and
// metrics may be nil and are replaced with no-ops.
func NewService(
	runs domain.Repository,
	fluids fluid.Repository,
	geometry appwellbore.Service,
	engine EngineClient,
	archive minio.ArchiveStore,
	publisher kafka.Publisher,
	metrics *prometheus.Metrics,
	logger logging.Logger,
) Service {
	if archive == nil {
		archive = minio.NopArchive{}
	}
	if publisher == nil {
		publisher = kafka.NopPublisher{}
	}
	return &service{
		runs:      runs,
		fluids:    fluids,
		geometry:  geometry,
		engine:    engine,
		archive:   archive,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// StartRun validates prerequisites, creates the run, and executes it to
// completion.  The engine call is synchronous; callers get the terminal run
// state back.
func (s *service) StartRun(ctx context.Context, wellID common.ID, input StartRunInput) (*RunDTO, error) {
	active, err := s.runs.HasActive(ctx, wellID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, errors.New(errors.ErrCodeRunAlreadyActive,
			"an analysis run is already active for this well")
	}

	geo, err := s.geometry.BuildGeometry(ctx, wellID)
	if err != nil {
		return nil, err
	}
	if geo.Payload.Empty() {
		return nil, errors.New(errors.ErrCodeRunPrerequisitesMissing,
			"wellbore design produces no usable geometry")
	}

	sample, err := s.fluids.GetActive(ctx, wellID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.New(errors.ErrCodeRunPrerequisitesMissing,
				"well has no active fluid sample")
		}
		return nil, err
	}

	run := domain.NewRun(wellID, geo.Payload.DesignRevision, sample.ID, geo.Payload.NodalPoint)
	if input.IPRModel != "" {
		run.IPRModel = input.IPRModel
	}
	if input.VLPCorrelation != "" {
		run.VLPCorrelation = input.VLPCorrelation
	}
	if err := s.runs.Create(ctx, run); err != nil {
		return nil, err
	}

	req := client.NodalRequest{
		Geometry:       geo.Payload,
		IPRModel:       run.IPRModel,
		VLPCorrelation: run.VLPCorrelation,
		Fluid: client.FluidProperties{
			OilGravityAPI:       sample.OilGravityAPI,
			GasSpecificGravity:  sample.GasSpecificGravity,
			SolutionGOR:         sample.SolutionGOR,
			WaterCut:            sample.WaterCut,
			BubblePointPressure: sample.BubblePointPressure,
			ReservoirTemp:       sample.ReservoirTemp,
		},
	}
	s.execute(ctx, run, req)
	return runToDTO(run), nil
}

// execute drives the run to a terminal state.  Failures after this point are
// recorded on the run instead of returned: the run exists and its state is
// the source of truth.
func (s *service) execute(ctx context.Context, run *domain.Run, req client.NodalRequest) {
	if err := run.Start(); err != nil {
		s.logger.Error("run start transition failed", logging.Err(err))
		return
	}
	s.persist(ctx, run)

	if key, err := s.archive.ArchivePayload(ctx, run.ID.String(), req); err != nil {
		// Archiving is best-effort; the run proceeds without it.
		s.logger.Warn("failed to archive run payload",
			logging.String("run_id", run.ID.String()), logging.Err(err))
	} else {
		run.ArchiveKey = key
	}

	start := time.Now()
	result, err := s.engine.ComputeNodal(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		engineErr := translateEngineError(err)
		if s.metrics != nil {
			s.metrics.ObserveEngineCall("compute_nodal", elapsed, errors.GetCode(engineErr).String())
		}
		s.fail(ctx, run, engineErr.Error())
		return
	}
	if s.metrics != nil {
		s.metrics.ObserveEngineCall("compute_nodal", elapsed, "")
	}

	if err := run.Complete(domain.Result{
		OperatingRate:     result.OperatingRate,
		OperatingPressure: result.OperatingPressure,
		InflowCurve:       curvePoints(result.InflowCurve),
		OutflowCurve:      curvePoints(result.OutflowCurve),
		EngineRequestID:   result.RequestID,
	}); err != nil {
		s.logger.Error("run complete transition failed", logging.Err(err))
		return
	}
	s.persist(ctx, run)
	if s.metrics != nil {
		s.metrics.RunsTotal.WithLabelValues(string(run.Status)).Inc()
	}

	s.publish(ctx, kafka.TopicRunCompleted, run.WellID.String(), kafka.RunCompletedPayload{
		RunID:             run.ID.String(),
		WellID:            run.WellID.String(),
		DesignRevision:    run.DesignRevision,
		OperatingRate:     run.Result.OperatingRate,
		OperatingPressure: run.Result.OperatingPressure,
		CompletedAt:       *run.CompletedAt,
	})
	s.logger.Info("analysis run completed",
		logging.String("run_id", run.ID.String()),
		logging.String("well_id", run.WellID.String()),
		logging.Duration("duration", run.Duration()),
	)
}

func (s *service) fail(ctx context.Context, run *domain.Run, reason string) {
	if err := run.Fail(reason); err != nil {
		s.logger.Error("run fail transition failed", logging.Err(err))
		return
	}
	s.persist(ctx, run)
	if s.metrics != nil {
		s.metrics.RunsTotal.WithLabelValues(string(run.Status)).Inc()
	}
	s.publish(ctx, kafka.TopicRunFailed, run.WellID.String(), kafka.RunFailedPayload{
		RunID:    run.ID.String(),
		WellID:   run.WellID.String(),
		Reason:   reason,
		FailedAt: *run.CompletedAt,
	})
	s.logger.Warn("analysis run failed",
		logging.String("run_id", run.ID.String()),
		logging.String("reason", reason),
	)
}

func (s *service) persist(ctx context.Context, run *domain.Run) {
	if err := s.runs.Update(ctx, run); err != nil {
		s.logger.Error("failed to persist run state",
			logging.String("run_id", run.ID.String()),
			logging.String("status", string(run.Status)),
			logging.Err(err),
		)
	}
}

func (s *service) publish(ctx context.Context, topic, key string, payload interface{}) {
	if err := s.publisher.Publish(ctx, topic, key, payload); err != nil {
		s.logger.Warn("failed to publish run event",
			logging.String("topic", topic), logging.Err(err))
	}
}

func (s *service) GetRun(ctx context.Context, runID common.ID) (*RunDTO, error) {
	run, err := s.runs.GetByID(ctx, runID)
	if err != nil {
		return nil, err
	}
	return runToDTO(run), nil
}

func (s *service) ListRuns(ctx context.Context, wellID common.ID, p common.Pagination) (*RunListResult, error) {
	p.Normalize()
	runs, total, err := s.runs.ListByWell(ctx, wellID, p)
	if err != nil {
		return nil, err
	}
	result := &RunListResult{
		Runs:     make([]*RunDTO, 0, len(runs)),
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
	for _, r := range runs {
		result.Runs = append(result.Runs, runToDTO(r))
	}
	return result, nil
}

// translateEngineError maps SDK errors onto domain error codes.
func translateEngineError(err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.IsRateLimited():
			return errors.Wrap(err, errors.ErrCodeEngineRateLimited, "physics engine rate limited")
		case apiErr.IsServerError():
			return errors.Wrap(err, errors.ErrCodeEngineUnavailable, "physics engine unavailable")
		default:
			return errors.Wrap(err, errors.ErrCodeEngineRejected, "physics engine rejected the request")
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(err, errors.ErrCodeEngineTimeout, "physics engine timed out")
	}
	return errors.Wrap(err, errors.ErrCodeEngineUnavailable, "physics engine unreachable")
}

func curvePoints(points []client.CurvePoint) []domain.CurvePoint {
	if len(points) == 0 {
		return nil
	}
	out := make([]domain.CurvePoint, 0, len(points))
	for _, p := range points {
		out = append(out, domain.CurvePoint{Rate: p.Rate, Pressure: p.Pressure})
	}
	return out
}
