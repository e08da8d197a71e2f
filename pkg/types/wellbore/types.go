// Package wellbore holds the wire-level data contracts for wellbore geometry:
// the component-row and depth-segment DTOs exchanged with the dashboard UI and
// the geometry payload serialized toward the external physics engine.
package wellbore

import "time"

// RowKind discriminates the two independently edited component lists.
type RowKind string

const (
	RowKindBHA    RowKind = "bha"
	RowKindCasing RowKind = "casing"
)

// ComponentRowDTO is the wire representation of a single BHA or casing
// element.  Depths are measured from surface in feet; depth increases
// downward.
type ComponentRowDTO struct {
	ID               string  `json:"id,omitempty"`
	Kind             RowKind `json:"kind"`
	Description      string  `json:"description,omitempty"`
	Top              float64 `json:"top"`
	Bottom           float64 `json:"bottom"`
	InternalDiameter float64 `json:"internal_diameter"`
}

// SegmentDTO is one merged depth interval with its governing internal
// diameter.  Invariants: end_depth ≥ start_depth, diameter > 0.
type SegmentDTO struct {
	StartDepth float64 `json:"start_depth"`
	EndDepth   float64 `json:"end_depth"`
	Diameter   float64 `json:"diameter"`
}

// RowDiagnosticDTO describes one input row (or the nodal point) that the
// merger excluded or adjusted, so the row editor can surface it.
type RowDiagnosticDTO struct {
	RowID  string  `json:"row_id,omitempty"`
	Kind   RowKind `json:"kind,omitempty"`
	Reason string  `json:"reason"`
}

// GeometryPayload is the wellbore-geometry document sent to the external
// physics engine with every nodal computation.  Segments are ordered from the
// nodal point outward to the shallowest boundary, matching the downstream
// contract: hydraulics are computed from the analysis point up to surface.
type GeometryPayload struct {
	WellID         string       `json:"well_id"`
	DesignRevision int64        `json:"design_revision"`
	NodalPoint     float64      `json:"nodal_point"`
	DepthUnit      string       `json:"depth_unit"`
	DiameterUnit   string       `json:"diameter_unit"`
	Segments       []SegmentDTO `json:"segments"`
	GeneratedAt    time.Time    `json:"generated_at"`
}

// Empty reports whether the payload carries no usable geometry.  Downstream
// consumers treat an empty payload as "no wellbore design yet", not an error.
func (p GeometryPayload) Empty() bool {
	return len(p.Segments) == 0
}
