package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/turtacn/WellNodal/internal/domain/wellbore"
	"github.com/turtacn/WellNodal/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/WellNodal/pkg/errors"
	"github.com/turtacn/WellNodal/pkg/types/common"
	wbtypes "github.com/turtacn/WellNodal/pkg/types/wellbore"
)

// DesignRepository is the PostgreSQL implementation of
// wellbore.DesignRepository.  Component lists are stored as JSONB; the
// revision column backs optimistic concurrency.
type DesignRepository struct {
	db     *sql.DB
	logger logging.Logger
}

// NewDesignRepository constructs a ready-to-use DesignRepository.
func NewDesignRepository(db *sql.DB, logger logging.Logger) *DesignRepository {
	return &DesignRepository{db: db, logger: logger}
}

func (r *DesignRepository) Get(ctx context.Context, wellID common.ID) (*wellbore.Design, error) {
	var (
		d          wellbore.Design
		bhaJSON    []byte
		casingJSON []byte
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT well_id, revision, bha_rows, casing_rows, nodal_point, updated_at
		FROM wellbore_designs WHERE well_id = $1`, wellID,
	).Scan(&d.WellID, &d.Revision, &bhaJSON, &casingJSON, &d.NodalPoint, &d.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeDesignNotFound, "wellbore design not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load wellbore design")
	}

	if d.BHARows, err = decodeRows(bhaJSON); err != nil {
		return nil, err
	}
	if d.CasingRows, err = decodeRows(casingJSON); err != nil {
		return nil, err
	}

	// Defensive: re-chain whatever an older writer persisted.
	d.Normalize()
	return &d, nil
}

// Save persists the design with optimistic concurrency.  A revision of 0
// inserts; anything else updates only when the stored revision still matches.
// On success design.Revision carries the newly stored revision.
func (r *DesignRepository) Save(ctx context.Context, design *wellbore.Design) error {
	bhaJSON, err := json.Marshal(rowsToDTO(design.BHARows))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode bha rows")
	}
	casingJSON, err := json.Marshal(rowsToDTO(design.CasingRows))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode casing rows")
	}
	now := time.Now().UTC()

	if design.Revision == 0 {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO wellbore_designs (well_id, revision, bha_rows, casing_rows, nodal_point, updated_at)
			VALUES ($1, 1, $2, $3, $4, $5)`,
			design.WellID, bhaJSON, casingJSON, design.NodalPoint, now,
		)
		if err != nil {
			r.logger.Error("DesignRepository.Save insert", logging.Err(err))
			return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to insert wellbore design")
		}
		design.Revision = 1
		design.UpdatedAt = now
		return nil
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE wellbore_designs
		SET revision = revision + 1, bha_rows = $3, casing_rows = $4, nodal_point = $5, updated_at = $6
		WHERE well_id = $1 AND revision = $2`,
		design.WellID, design.Revision, bhaJSON, casingJSON, design.NodalPoint, now,
	)
	if err != nil {
		r.logger.Error("DesignRepository.Save update", logging.Err(err))
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to update wellbore design")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to read rows affected")
	}
	if n == 0 {
		return errors.New(errors.ErrCodeDesignRevisionOld, "design was modified by another writer")
	}
	design.Revision++
	design.UpdatedAt = now
	return nil
}

func (r *DesignRepository) Delete(ctx context.Context, wellID common.ID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM wellbore_designs WHERE well_id = $1`, wellID)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to delete wellbore design")
	}
	return requireAffected(res, errors.ErrCodeDesignNotFound)
}

func rowsToDTO(rows []wellbore.ComponentRow) []wbtypes.ComponentRowDTO {
	out := make([]wbtypes.ComponentRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.DTO())
	}
	return out
}

func decodeRows(raw []byte) ([]wellbore.ComponentRow, error) {
	var dtos []wbtypes.ComponentRowDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode component rows")
	}
	rows := make([]wellbore.ComponentRow, 0, len(dtos))
	for _, d := range dtos {
		rows = append(rows, wellbore.RowFromDTO(d))
	}
	return rows, nil
}
