package wellbore

import (
	"context"
	"fmt"
	"time"

	"github.com/turtacn/WellNodal/internal/config"
	domain "github.com/turtacn/WellNodal/internal/domain/wellbore"
	"github.com/turtacn/WellNodal/internal/infrastructure/database/redis"
	"github.com/turtacn/WellNodal/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/WellNodal/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/WellNodal/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/WellNodal/pkg/errors"
	"github.com/turtacn/WellNodal/pkg/types/common"
	wbtypes "github.com/turtacn/WellNodal/pkg/types/wellbore"
)

type service struct {
	wells     domain.WellRepository
	designs   domain.DesignRepository
	cache     redis.Cache
	publisher kafka.Publisher
	metrics   *prometheus.Metrics
	logger    logging.Logger
	geometry  config.GeometryConfig
}

// NewService wires the wellbore application service.  cache, publisher, and
// metrics may be nil; the service then skips the corresponding side effects,
// which keeps the CLI and tests light.
func NewService(
	wells domain.WellRepository,
	designs domain.DesignRepository,
	cache redis.Cache,
	publisher kafka.Publisher,
	metrics *prometheus.Metrics,
	logger logging.Logger,
	geometry config.GeometryConfig,
) Service {
	if publisher == nil {
		publisher = kafka.NopPublisher{}
	}
	return &service{
		wells:     wells,
		designs:   designs,
		cache:     cache,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		geometry:  geometry,
	}
}

func (s *service) CreateWell(ctx context.Context, input CreateWellInput) (*WellDTO, error) {
	well, err := domain.NewWell(input.Name, input.Field, input.Operator)
	if err != nil {
		return nil, err
	}
	if err := s.wells.Create(ctx, well); err != nil {
		return nil, err
	}
	s.logger.Info("well created",
		logging.String("well_id", well.ID.String()),
		logging.String("name", well.Name),
	)
	return wellToDTO(well), nil
}

func (s *service) GetWell(ctx context.Context, id common.ID) (*WellDTO, error) {
	well, err := s.wells.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return wellToDTO(well), nil
}

func (s *service) ListWells(ctx context.Context, p common.Pagination) (*WellListResult, error) {
	p.Normalize()
	wells, total, err := s.wells.List(ctx, p)
	if err != nil {
		return nil, err
	}
	result := &WellListResult{
		Wells:    make([]*WellDTO, 0, len(wells)),
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
	for _, w := range wells {
		result.Wells = append(result.Wells, wellToDTO(w))
	}
	return result, nil
}

func (s *service) UpdateWell(ctx context.Context, input UpdateWellInput) (*WellDTO, error) {
	well, err := s.wells.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		if err := well.Rename(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Field != nil {
		well.Field = *input.Field
	}
	if input.Operator != nil {
		well.Operator = *input.Operator
	}
	if err := s.wells.Update(ctx, well); err != nil {
		return nil, err
	}
	return wellToDTO(well), nil
}

func (s *service) DeleteWell(ctx context.Context, id common.ID) error {
	if err := s.wells.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateGeometry(ctx, id)
	return nil
}

func (s *service) GetDesign(ctx context.Context, wellID common.ID) (*DesignDTO, error) {
	design, err := s.loadOrNewDesign(ctx, wellID)
	if err != nil {
		return nil, err
	}
	return designToDTO(design), nil
}

func (s *service) ReplaceDesign(ctx context.Context, wellID common.ID, input ReplaceDesignInput) (*DesignDTO, error) {
	return s.mutateDesign(ctx, wellID, func(d *domain.Design) error {
		return d.Replace(rowsFromDTO(input.BHARows), rowsFromDTO(input.CasingRows), input.NodalPoint)
	})
}

func (s *service) AddRow(ctx context.Context, wellID common.ID, row wbtypes.ComponentRowDTO) (*DesignDTO, error) {
	return s.mutateDesign(ctx, wellID, func(d *domain.Design) error {
		return d.AddRow(domain.RowFromDTO(row))
	})
}

func (s *service) UpdateRow(ctx context.Context, wellID common.ID, row wbtypes.ComponentRowDTO) (*DesignDTO, error) {
	return s.mutateDesign(ctx, wellID, func(d *domain.Design) error {
		return d.UpdateRow(domain.RowFromDTO(row))
	})
}

func (s *service) RemoveRow(ctx context.Context, wellID common.ID, kind wbtypes.RowKind, rowID string) (*DesignDTO, error) {
	return s.mutateDesign(ctx, wellID, func(d *domain.Design) error {
		return d.RemoveRow(kind, rowID)
	})
}

func (s *service) MoveRow(ctx context.Context, wellID common.ID, kind wbtypes.RowKind, rowID string, newIndex int) (*DesignDTO, error) {
	return s.mutateDesign(ctx, wellID, func(d *domain.Design) error {
		return d.MoveRow(kind, rowID, newIndex)
	})
}

func (s *service) SetNodalPoint(ctx context.Context, wellID common.ID, depth float64) (*DesignDTO, error) {
	return s.mutateDesign(ctx, wellID, func(d *domain.Design) error {
		return d.SetNodalPoint(depth)
	})
}

// BuildGeometry merges the design's component lists into the segment stack
// and wraps it as an engine-ready payload.  Results are cached per design
// revision, so edits naturally roll the cache key forward.
func (s *service) BuildGeometry(ctx context.Context, wellID common.ID) (*GeometryResult, error) {
	design, err := s.loadOrNewDesign(ctx, wellID)
	if err != nil {
		return nil, err
	}

	if s.cache == nil {
		return s.buildGeometry(design), nil
	}

	var result GeometryResult
	key := geometryCacheKey(wellID, design.Revision)
	err = s.cache.GetOrSet(ctx, key, &result, s.geometry.CacheTTL, func(context.Context) (interface{}, error) {
		return s.buildGeometry(design), nil
	})
	if err != nil {
		// Cache trouble must not block the dashboard; fall back to a direct
		// merge.
		s.logger.Warn("geometry cache unavailable", logging.String("key", key), logging.Err(err))
		return s.buildGeometry(design), nil
	}
	return &result, nil
}

func (s *service) buildGeometry(design *domain.Design) *GeometryResult {
	start := time.Now()
	segments, diags := design.GeometryWithReport()
	elapsed := time.Since(start)

	if s.metrics != nil {
		s.metrics.ObserveMerge(elapsed, len(segments), len(diags))
	}
	for _, diag := range diags {
		s.logger.Warn("component row excluded from geometry",
			logging.String("well_id", design.WellID.String()),
			logging.String("row_id", diag.RowID),
			logging.String("kind", string(diag.Kind)),
			logging.String("reason", diag.Reason),
		)
	}

	result := &GeometryResult{
		Payload: wbtypes.GeometryPayload{
			WellID:         design.WellID.String(),
			DesignRevision: design.Revision,
			NodalPoint:     design.NodalPoint,
			DepthUnit:      s.geometry.DepthUnit,
			DiameterUnit:   s.geometry.DiameterUnit,
			Segments:       domain.SegmentsToDTO(segments),
			GeneratedAt:    time.Now().UTC(),
		},
	}
	if s.geometry.SurfaceDiagnostics {
		result.Diagnostics = diagnosticsToDTO(diags)
	}
	return result
}

// loadOrNewDesign returns the stored design, or a fresh empty one when the
// well has no design yet.  The well must exist.
func (s *service) loadOrNewDesign(ctx context.Context, wellID common.ID) (*domain.Design, error) {
	if _, err := s.wells.GetByID(ctx, wellID); err != nil {
		return nil, err
	}
	design, err := s.designs.Get(ctx, wellID)
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeDesignNotFound) {
			return domain.NewDesign(wellID), nil
		}
		return nil, err
	}
	return design, nil
}

func (s *service) mutateDesign(ctx context.Context, wellID common.ID, mutate func(*domain.Design) error) (*DesignDTO, error) {
	design, err := s.loadOrNewDesign(ctx, wellID)
	if err != nil {
		return nil, err
	}
	if err := mutate(design); err != nil {
		return nil, err
	}
	if err := s.designs.Save(ctx, design); err != nil {
		return nil, err
	}
	s.invalidateGeometry(ctx, wellID)

	if err := s.publisher.Publish(ctx, kafka.TopicDesignUpdated, wellID.String(), kafka.DesignUpdatedPayload{
		WellID:     wellID.String(),
		Revision:   design.Revision,
		NodalPoint: design.NodalPoint,
		BHARows:    len(design.BHARows),
		CasingRows: len(design.CasingRows),
		UpdatedAt:  design.UpdatedAt,
	}); err != nil {
		// Events are best-effort; the design is already saved.
		s.logger.Warn("failed to publish design update", logging.Err(err))
	}
	return designToDTO(design), nil
}

func (s *service) invalidateGeometry(ctx context.Context, wellID common.ID) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.DeleteByPrefix(ctx, fmt.Sprintf("well:%s:", wellID)); err != nil {
		s.logger.Warn("failed to invalidate geometry cache",
			logging.String("well_id", wellID.String()), logging.Err(err))
	}
}

func geometryCacheKey(wellID common.ID, revision int64) string {
	return fmt.Sprintf("well:%s:rev:%d:geometry", wellID, revision)
}

func rowsFromDTO(dtos []wbtypes.ComponentRowDTO) []domain.ComponentRow {
	rows := make([]domain.ComponentRow, 0, len(dtos))
	for _, d := range dtos {
		rows = append(rows, domain.RowFromDTO(d))
	}
	return rows
}

func diagnosticsToDTO(diags []domain.RowDiagnostic) []wbtypes.RowDiagnosticDTO {
	if len(diags) == 0 {
		return nil
	}
	out := make([]wbtypes.RowDiagnosticDTO, 0, len(diags))
	for _, d := range diags {
		out = append(out, wbtypes.RowDiagnosticDTO{RowID: d.RowID, Kind: d.Kind, Reason: d.Reason})
	}
	return out
}
