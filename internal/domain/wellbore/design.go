package wellbore

import (
	"fmt"
	"time"

	"github.com/turtacn/WellNodal/pkg/errors"
	"github.com/turtacn/WellNodal/pkg/types/common"
)

// Design is the wellbore design aggregate: the two editable component lists
// (BHA and casing) plus the nodal point, versioned with an optimistic
// revision counter.  All edits go through the aggregate so the chaining
// invariant holds: within each list, every row after the first starts where
// the previous row ends.
type Design struct {
	WellID     common.ID
	Revision   int64
	BHARows    []ComponentRow
	CasingRows []ComponentRow
	NodalPoint float64
	UpdatedAt  time.Time
}

// NewDesign creates an empty design for a well.
func NewDesign(wellID common.ID) *Design {
	return &Design{
		WellID:     wellID,
		BHARows:    []ComponentRow{},
		CasingRows: []ComponentRow{},
		UpdatedAt:  time.Now().UTC(),
	}
}

// Rows returns the list for the given kind.  The returned slice aliases the
// aggregate's storage; callers must not mutate it.
func (d *Design) Rows(kind RowKind) ([]ComponentRow, error) {
	switch kind {
	case RowKindBHA:
		return d.BHARows, nil
	case RowKindCasing:
		return d.CasingRows, nil
	default:
		return nil, errors.New(errors.ErrCodeRowInvalid, fmt.Sprintf("unknown row kind %q", kind))
	}
}

func (d *Design) setRows(kind RowKind, rows []ComponentRow) {
	if kind == RowKindBHA {
		d.BHARows = rows
	} else {
		d.CasingRows = rows
	}
}

// AddRow validates and appends a row to the list matching its kind, then
// re-chains the list.  The row keeps its Length; its Top is rewritten to the
// previous row's Bottom unless the list was empty, in which case the row's
// own Top anchors the list.
func (d *Design) AddRow(row ComponentRow) error {
	if err := row.Validate(); err != nil {
		return err
	}
	rows, err := d.Rows(row.Kind)
	if err != nil {
		return err
	}
	if row.ID == "" {
		row.ID = common.NewID().String()
	}
	rows = append(rows, row)
	d.setRows(row.Kind, rechain(rows))
	d.touch()
	return nil
}

// UpdateRow replaces the row with the matching ID in place, preserving its
// position, then re-chains the list.
func (d *Design) UpdateRow(row ComponentRow) error {
	if err := row.Validate(); err != nil {
		return err
	}
	rows, err := d.Rows(row.Kind)
	if err != nil {
		return err
	}
	for i := range rows {
		if rows[i].ID == row.ID {
			rows[i] = row
			d.setRows(row.Kind, rechain(rows))
			d.touch()
			return nil
		}
	}
	return errors.New(errors.ErrCodeRowNotFound, fmt.Sprintf("row %s not found in %s list", row.ID, row.Kind))
}

// RemoveRow deletes the row with the given ID from the list of the given
// kind and re-chains the remainder, closing the gap.
func (d *Design) RemoveRow(kind RowKind, rowID string) error {
	rows, err := d.Rows(kind)
	if err != nil {
		return err
	}
	for i := range rows {
		if rows[i].ID == rowID {
			rows = append(rows[:i], rows[i+1:]...)
			d.setRows(kind, rechain(rows))
			d.touch()
			return nil
		}
	}
	return errors.New(errors.ErrCodeRowNotFound, fmt.Sprintf("row %s not found in %s list", rowID, kind))
}

// MoveRow relocates the row with the given ID to newIndex within its list
// and re-chains.  newIndex is clamped to the list bounds.
func (d *Design) MoveRow(kind RowKind, rowID string, newIndex int) error {
	rows, err := d.Rows(kind)
	if err != nil {
		return err
	}
	from := -1
	for i := range rows {
		if rows[i].ID == rowID {
			from = i
			break
		}
	}
	if from == -1 {
		return errors.New(errors.ErrCodeRowNotFound, fmt.Sprintf("row %s not found in %s list", rowID, kind))
	}
	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(rows)-1 {
		newIndex = len(rows) - 1
	}
	row := rows[from]
	rows = append(rows[:from], rows[from+1:]...)
	rows = append(rows[:newIndex], append([]ComponentRow{row}, rows[newIndex:]...)...)
	d.setRows(kind, rechain(rows))
	d.touch()
	return nil
}

// Replace swaps in entirely new component lists and nodal point, as used by
// the bulk design editor save.  Every row is validated before anything
// changes, so a bad row leaves the design untouched.  Rows without IDs get
// fresh ones; both lists are re-chained.
func (d *Design) Replace(bha, casing []ComponentRow, nodalPoint float64) error {
	if !isFinite(nodalPoint) || nodalPoint < 0 {
		return errors.Validation(fmt.Sprintf("nodal point %v must be a finite non-negative depth", nodalPoint))
	}
	for i := range bha {
		bha[i].Kind = RowKindBHA
		if err := bha[i].Validate(); err != nil {
			return err
		}
	}
	for i := range casing {
		casing[i].Kind = RowKindCasing
		if err := casing[i].Validate(); err != nil {
			return err
		}
	}
	for i := range bha {
		if bha[i].ID == "" {
			bha[i].ID = common.NewID().String()
		}
	}
	for i := range casing {
		if casing[i].ID == "" {
			casing[i].ID = common.NewID().String()
		}
	}
	d.BHARows = rechain(bha)
	d.CasingRows = rechain(casing)
	d.NodalPoint = nodalPoint
	d.touch()
	return nil
}

// SetNodalPoint moves the analysis point.  Invalid values are rejected here
// rather than silently clamped: the aggregate is the write path, and a bad
// nodal point on the write path is a caller bug.  (The merger still clamps
// defensively on the read path.)
func (d *Design) SetNodalPoint(depth float64) error {
	if !isFinite(depth) || depth < 0 {
		return errors.Validation(fmt.Sprintf("nodal point %v must be a finite non-negative depth", depth))
	}
	d.NodalPoint = depth
	d.touch()
	return nil
}

// Normalize re-chains both lists and clamps an out-of-range nodal point to
// surface.  Called after loading a design persisted by an older writer.
func (d *Design) Normalize() {
	d.BHARows = rechain(d.BHARows)
	d.CasingRows = rechain(d.CasingRows)
	if !isFinite(d.NodalPoint) || d.NodalPoint < 0 {
		d.NodalPoint = 0
	}
}

// Geometry merges the two component lists into the segment stack anchored at
// the design's nodal point.
func (d *Design) Geometry() []Segment {
	return Merge(d.BHARows, d.CasingRows, d.NodalPoint)
}

// GeometryWithReport is Geometry plus merge diagnostics.
func (d *Design) GeometryWithReport() ([]Segment, []RowDiagnostic) {
	return MergeWithReport(d.BHARows, d.CasingRows, d.NodalPoint)
}

func (d *Design) touch() {
	d.UpdatedAt = time.Now().UTC()
}

// rechain rewrites Top/Bottom so each row after the first starts where the
// previous one ends, preserving every row's length.  The first row's Top
// anchors the chain.
func rechain(rows []ComponentRow) []ComponentRow {
	for i := 1; i < len(rows); i++ {
		length := rows[i].Length()
		rows[i].Top = rows[i-1].Bottom
		rows[i].Bottom = rows[i].Top + length
	}
	return rows
}
