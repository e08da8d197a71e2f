package repositories

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/turtacn/WellNodal/internal/domain/analysis"
	"github.com/turtacn/WellNodal/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/WellNodal/pkg/errors"
	"github.com/turtacn/WellNodal/pkg/types/common"
)

// RunRepository is the PostgreSQL implementation of analysis.Repository.
type RunRepository struct {
	db     *sql.DB
	logger logging.Logger
}

// NewRunRepository constructs a ready-to-use RunRepository.
func NewRunRepository(db *sql.DB, logger logging.Logger) *RunRepository {
	return &RunRepository{db: db, logger: logger}
}

const runColumns = `id, well_id, design_revision, fluid_sample_id, nodal_point,
	ipr_model, vlp_correlation,
	status, result, error_message, archive_key, requested_at, started_at, completed_at`

func (r *RunRepository) Create(ctx context.Context, run *analysis.Run) error {
	resultJSON, err := encodeResult(run.Result)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO analysis_runs (`+runColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		run.ID, run.WellID, run.DesignRevision, run.FluidSampleID, run.NodalPoint,
		run.IPRModel, run.VLPCorrelation,
		run.Status, resultJSON, run.ErrorMessage, run.ArchiveKey,
		run.RequestedAt, run.StartedAt, run.CompletedAt,
	)
	if err != nil {
		r.logger.Error("RunRepository.Create", logging.Err(err))
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to insert analysis run")
	}
	return nil
}

func (r *RunRepository) GetByID(ctx context.Context, id common.ID) (*analysis.Run, error) {
	return scanRun(r.db.QueryRowContext(ctx, `
		SELECT `+runColumns+` FROM analysis_runs WHERE id = $1`, id))
}

func (r *RunRepository) ListByWell(ctx context.Context, wellID common.ID, p common.Pagination) ([]*analysis.Run, int64, error) {
	p.Normalize()

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM analysis_runs WHERE well_id = $1`, wellID,
	).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count analysis runs")
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+runColumns+` FROM analysis_runs
		WHERE well_id = $1
		ORDER BY requested_at DESC
		LIMIT $2 OFFSET $3`, wellID, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list analysis runs")
	}
	defer rows.Close()

	runs := make([]*analysis.Run, 0, p.PageSize)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, 0, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate analysis runs")
	}
	return runs, total, nil
}

func (r *RunRepository) Update(ctx context.Context, run *analysis.Run) error {
	resultJSON, err := encodeResult(run.Result)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE analysis_runs
		SET status = $2, result = $3, error_message = $4, archive_key = $5,
		    started_at = $6, completed_at = $7
		WHERE id = $1`,
		run.ID, run.Status, resultJSON, run.ErrorMessage, run.ArchiveKey,
		run.StartedAt, run.CompletedAt,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to update analysis run")
	}
	return requireAffected(res, errors.ErrCodeRunNotFound)
}

func (r *RunRepository) HasActive(ctx context.Context, wellID common.ID) (bool, error) {
	var active bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM analysis_runs
			WHERE well_id = $1 AND status IN ('pending', 'running')
		)`, wellID).Scan(&active)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to check active runs")
	}
	return active, nil
}

func encodeResult(res *analysis.Result) ([]byte, error) {
	if res == nil {
		return nil, nil
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode run result")
	}
	return raw, nil
}

func scanRun(s rowScanner) (*analysis.Run, error) {
	var (
		run        analysis.Run
		resultJSON []byte
	)
	err := s.Scan(
		&run.ID, &run.WellID, &run.DesignRevision, &run.FluidSampleID, &run.NodalPoint,
		&run.IPRModel, &run.VLPCorrelation,
		&run.Status, &resultJSON, &run.ErrorMessage, &run.ArchiveKey,
		&run.RequestedAt, &run.StartedAt, &run.CompletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeRunNotFound, "analysis run not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan analysis run")
	}
	if len(resultJSON) > 0 {
		run.Result = &analysis.Result{}
		if err := json.Unmarshal(resultJSON, run.Result); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode run result")
		}
	}
	return &run, nil
}
