package repositories

import (
	"context"
	"database/sql"

	"github.com/turtacn/WellNodal/internal/domain/fluid"
	"github.com/turtacn/WellNodal/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/WellNodal/pkg/errors"
	"github.com/turtacn/WellNodal/pkg/types/common"
)

// FluidRepository is the PostgreSQL implementation of fluid.Repository.  A
// partial unique index on (well_id) WHERE active backs the single-active-
// sample invariant at the storage level.
type FluidRepository struct {
	db     *sql.DB
	logger logging.Logger
}

// NewFluidRepository constructs a ready-to-use FluidRepository.
func NewFluidRepository(db *sql.DB, logger logging.Logger) *FluidRepository {
	return &FluidRepository{db: db, logger: logger}
}

const fluidColumns = `id, well_id, label, oil_gravity_api, gas_specific_gravity,
	solution_gor, water_cut, bubble_point_pressure, reservoir_temp,
	active, sampled_at, created_at, updated_at`

func (r *FluidRepository) Create(ctx context.Context, s *fluid.Sample) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO fluid_samples (`+fluidColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		s.ID, s.WellID, s.Label, s.OilGravityAPI, s.GasSpecificGravity,
		s.SolutionGOR, s.WaterCut, s.BubblePointPressure, s.ReservoirTemp,
		s.Active, s.SampledAt, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("FluidRepository.Create", logging.Err(err))
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to insert fluid sample")
	}
	return nil
}

func (r *FluidRepository) GetByID(ctx context.Context, id common.ID) (*fluid.Sample, error) {
	return scanSample(r.db.QueryRowContext(ctx, `
		SELECT `+fluidColumns+` FROM fluid_samples WHERE id = $1`, id))
}

func (r *FluidRepository) ListByWell(ctx context.Context, wellID common.ID) ([]*fluid.Sample, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+fluidColumns+` FROM fluid_samples
		WHERE well_id = $1 ORDER BY sampled_at DESC`, wellID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list fluid samples")
	}
	defer rows.Close()

	var samples []*fluid.Sample
	for rows.Next() {
		s, err := scanSample(rows)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate fluid samples")
	}
	return samples, nil
}

func (r *FluidRepository) GetActive(ctx context.Context, wellID common.ID) (*fluid.Sample, error) {
	return scanSample(r.db.QueryRowContext(ctx, `
		SELECT `+fluidColumns+` FROM fluid_samples
		WHERE well_id = $1 AND active`, wellID))
}

func (r *FluidRepository) Update(ctx context.Context, s *fluid.Sample) error {
	s.Touch()
	res, err := r.db.ExecContext(ctx, `
		UPDATE fluid_samples
		SET label = $2, oil_gravity_api = $3, gas_specific_gravity = $4,
		    solution_gor = $5, water_cut = $6, bubble_point_pressure = $7,
		    reservoir_temp = $8, sampled_at = $9, updated_at = $10
		WHERE id = $1`,
		s.ID, s.Label, s.OilGravityAPI, s.GasSpecificGravity,
		s.SolutionGOR, s.WaterCut, s.BubblePointPressure,
		s.ReservoirTemp, s.SampledAt, s.UpdatedAt,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to update fluid sample")
	}
	return requireAffected(res, errors.ErrCodeFluidSampleNotFound)
}

// SetActive flips the active sample for a well in one transaction.
func (r *FluidRepository) SetActive(ctx context.Context, wellID, sampleID common.ID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		UPDATE fluid_samples SET active = FALSE, updated_at = NOW()
		WHERE well_id = $1 AND active`, wellID); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to clear active sample")
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE fluid_samples SET active = TRUE, updated_at = NOW()
		WHERE id = $1 AND well_id = $2`, sampleID, wellID)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to set active sample")
	}
	if err := requireAffected(res, errors.ErrCodeFluidSampleNotFound); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to commit active-sample switch")
	}
	return nil
}

func (r *FluidRepository) Delete(ctx context.Context, id common.ID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM fluid_samples WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to delete fluid sample")
	}
	return requireAffected(res, errors.ErrCodeFluidSampleNotFound)
}

func scanSample(s rowScanner) (*fluid.Sample, error) {
	var sample fluid.Sample
	err := s.Scan(
		&sample.ID, &sample.WellID, &sample.Label,
		&sample.OilGravityAPI, &sample.GasSpecificGravity,
		&sample.SolutionGOR, &sample.WaterCut,
		&sample.BubblePointPressure, &sample.ReservoirTemp,
		&sample.Active, &sample.SampledAt, &sample.CreatedAt, &sample.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeFluidSampleNotFound, "fluid sample not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan fluid sample")
	}
	return &sample, nil
}
