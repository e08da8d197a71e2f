// Package wellbore holds the wellbore-geometry domain: strongly-typed BHA and
// casing component rows, the depth-segment value object, and the merge
// algorithm that reconciles two independently edited component lists into a
// single non-overlapping segment stack anchored at the nodal point.
package wellbore

import (
	"fmt"
	"math"

	"github.com/turtacn/WellNodal/pkg/errors"
	wbtypes "github.com/turtacn/WellNodal/pkg/types/wellbore"
)

// RowKind discriminates BHA rows from casing rows.  The two lists are edited
// independently and may legitimately overlap each other in depth (casing
// surrounds BHA over parts of the well).
type RowKind = wbtypes.RowKind

const (
	RowKindBHA    = wbtypes.RowKindBHA
	RowKindCasing = wbtypes.RowKindCasing
)

// ComponentRow is one depth-tagged wellbore element.  Depths are measured
// from surface and increase downward; Top is the shallow end and Bottom the
// deep end of the component.
type ComponentRow struct {
	ID               string
	Kind             RowKind
	Description      string
	Top              float64
	Bottom           float64
	InternalDiameter float64
}

// Validate checks a single row against the data-model invariants: finite
// non-negative depths, Bottom ≥ Top, and a strictly positive internal
// diameter.  It is the boundary validation applied on ingestion from the
// table editor; the merger additionally applies the same checks defensively.
func (r ComponentRow) Validate() error {
	switch r.Kind {
	case RowKindBHA, RowKindCasing:
	default:
		return errors.New(errors.ErrCodeRowInvalid, fmt.Sprintf("unknown row kind %q", r.Kind))
	}
	if !isFinite(r.Top) || !isFinite(r.Bottom) || !isFinite(r.InternalDiameter) {
		return errors.New(errors.ErrCodeRowInvalid, "depth and diameter values must be finite numbers")
	}
	if r.Top < 0 {
		return errors.New(errors.ErrCodeRowInvalid, fmt.Sprintf("top depth %v is negative", r.Top))
	}
	if r.Bottom < r.Top {
		return errors.New(errors.ErrCodeRowInvalid, fmt.Sprintf("bottom depth %v is above top depth %v", r.Bottom, r.Top))
	}
	if r.InternalDiameter <= 0 {
		return errors.New(errors.ErrCodeRowInvalid, fmt.Sprintf("internal diameter %v is not positive", r.InternalDiameter))
	}
	return nil
}

// usable reports whether a row survives merge sanitization.  Unlike Validate
// it never allocates; the merger runs it on every row of every invocation in
// a render path.
func (r ComponentRow) usable() bool {
	return isFinite(r.Top) && isFinite(r.Bottom) && isFinite(r.InternalDiameter) &&
		r.Top >= 0 && r.Bottom >= r.Top && r.InternalDiameter > 0
}

// Length returns the covered depth span of the row.
func (r ComponentRow) Length() float64 {
	return r.Bottom - r.Top
}

// covers reports whether the row fully covers the elementary interval
// (shallow, deep].  Because every row endpoint participates in the boundary
// set, overlap with an elementary interval implies full coverage; the exact
// containment form is used for clarity.
func (r ComponentRow) covers(shallow, deep float64) bool {
	return r.Top <= shallow && r.Bottom >= deep
}

// DTO converts the row to its wire representation.
func (r ComponentRow) DTO() wbtypes.ComponentRowDTO {
	return wbtypes.ComponentRowDTO{
		ID:               r.ID,
		Kind:             r.Kind,
		Description:      r.Description,
		Top:              r.Top,
		Bottom:           r.Bottom,
		InternalDiameter: r.InternalDiameter,
	}
}

// RowFromDTO converts a wire row into the domain type.
func RowFromDTO(d wbtypes.ComponentRowDTO) ComponentRow {
	return ComponentRow{
		ID:               d.ID,
		Kind:             d.Kind,
		Description:      d.Description,
		Top:              d.Top,
		Bottom:           d.Bottom,
		InternalDiameter: d.InternalDiameter,
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
