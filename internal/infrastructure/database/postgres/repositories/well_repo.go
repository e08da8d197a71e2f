// Package repositories contains the PostgreSQL implementations of the domain
// repository interfaces.  All repositories share the same shape: a *sql.DB, a
// logger, and explicit column lists so scans stay aligned with the schema.
package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/turtacn/WellNodal/internal/domain/wellbore"
	"github.com/turtacn/WellNodal/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/WellNodal/pkg/errors"
	"github.com/turtacn/WellNodal/pkg/types/common"
)

// WellRepository is the PostgreSQL implementation of wellbore.WellRepository.
type WellRepository struct {
	db     *sql.DB
	logger logging.Logger
}

// NewWellRepository constructs a ready-to-use WellRepository.
func NewWellRepository(db *sql.DB, logger logging.Logger) *WellRepository {
	return &WellRepository{db: db, logger: logger}
}

const wellColumns = `id, name, field, operator, created_at, updated_at`

func (r *WellRepository) Create(ctx context.Context, well *wellbore.Well) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wells (`+wellColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		well.ID, well.Name, well.Field, well.Operator, well.CreatedAt, well.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("WellRepository.Create", logging.Err(err))
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to insert well")
	}
	return nil
}

func (r *WellRepository) GetByID(ctx context.Context, id common.ID) (*wellbore.Well, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+wellColumns+` FROM wells WHERE id = $1`, id)
	return scanWell(row)
}

func (r *WellRepository) List(ctx context.Context, p common.Pagination) ([]*wellbore.Well, int64, error) {
	p.Normalize()

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM wells`).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count wells")
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+wellColumns+` FROM wells
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list wells")
	}
	defer rows.Close()

	wells := make([]*wellbore.Well, 0, p.PageSize)
	for rows.Next() {
		w, err := scanWell(rows)
		if err != nil {
			return nil, 0, err
		}
		wells = append(wells, w)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate wells")
	}
	return wells, total, nil
}

func (r *WellRepository) Update(ctx context.Context, well *wellbore.Well) error {
	well.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE wells SET name = $2, field = $3, operator = $4, updated_at = $5
		WHERE id = $1`,
		well.ID, well.Name, well.Field, well.Operator, well.UpdatedAt,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to update well")
	}
	return requireAffected(res, errors.ErrCodeWellNotFound)
}

func (r *WellRepository) Delete(ctx context.Context, id common.ID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM wells WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to delete well")
	}
	return requireAffected(res, errors.ErrCodeWellNotFound)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWell(s rowScanner) (*wellbore.Well, error) {
	var w wellbore.Well
	err := s.Scan(&w.ID, &w.Name, &w.Field, &w.Operator, &w.CreatedAt, &w.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeWellNotFound, "well not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan well")
	}
	return &w, nil
}

// requireAffected translates a zero-row write into the given not-found code.
func requireAffected(res sql.Result, code errors.ErrorCode) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to read rows affected")
	}
	if n == 0 {
		return errors.New(code, errors.ErrorCodeMessage[code])
	}
	return nil
}
