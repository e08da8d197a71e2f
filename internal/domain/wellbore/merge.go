package wellbore

import "sort"

// RowDiagnostic records one input row the merger excluded, or an adjustment
// it made to the nodal point.  Diagnostics let the row editor highlight the
// offending rows; the merge result itself is unaffected by their presence.
type RowDiagnostic struct {
	RowID  string
	Kind   RowKind
	Reason string
}

// Exclusion reasons reported by MergeWithReport.
const (
	ReasonNonFinite    = "depth or diameter is not a finite number"
	ReasonNegativeTop  = "top depth is negative"
	ReasonInverted     = "bottom depth is above top depth"
	ReasonBadDiameter  = "internal diameter is not positive"
	ReasonNodalClamped = "nodal point was invalid and clamped to 0"
)

// Merge reconciles the BHA and casing component lists into a single ordered
// stack of non-overlapping depth segments re-anchored at nodalPoint, each
// segment carrying the smallest internal diameter of the components covering
// it.  The smallest diameter governs because it is the hydraulic restriction:
// pressure-drop integration over a segment must use the tightest conduit.
//
// Merge never fails: malformed rows are silently excluded, an invalid nodal
// point is clamped to surface, and degenerate input yields an empty segment
// list.  Segments are ordered from the nodal point outward to the shallowest
// covered boundary, so segment[i].StartDepth == segment[i+1].EndDepth for
// consecutive covered segments.
func Merge(bhaRows, casingRows []ComponentRow, nodalPoint float64) []Segment {
	segs, _ := MergeWithReport(bhaRows, casingRows, nodalPoint)
	return segs
}

// MergeWithReport is Merge plus a diagnostic for every excluded row and for a
// clamped nodal point.  The segment output is identical to Merge's.
func MergeWithReport(bhaRows, casingRows []ComponentRow, nodalPoint float64) ([]Segment, []RowDiagnostic) {
	diags := []RowDiagnostic{}

	if !isFinite(nodalPoint) || nodalPoint < 0 {
		nodalPoint = 0
		diags = append(diags, RowDiagnostic{Reason: ReasonNodalClamped})
	}

	// Sanitize both lists.  BHA rows stay ahead of casing rows in the scan
	// order so that on an exact diameter tie the BHA component is the one
	// reported as governing.
	rows := make([]ComponentRow, 0, len(bhaRows)+len(casingRows))
	for _, r := range bhaRows {
		rows, diags = appendUsable(rows, diags, r)
	}
	for _, r := range casingRows {
		rows, diags = appendUsable(rows, diags, r)
	}
	if len(rows) == 0 {
		return []Segment{}, diags
	}

	elems := elementaryIntervals(rows, nodalPoint)
	if len(elems) == 0 {
		return []Segment{}, diags
	}

	return anchorAtNodal(elems, rows, nodalPoint), diags
}

func appendUsable(rows []ComponentRow, diags []RowDiagnostic, r ComponentRow) ([]ComponentRow, []RowDiagnostic) {
	if reason := exclusionReason(r); reason != "" {
		diags = append(diags, RowDiagnostic{RowID: r.ID, Kind: r.Kind, Reason: reason})
		return rows, diags
	}
	return append(rows, r), diags
}

// exclusionReason classifies why a row cannot participate in the merge, or
// returns "" for a usable row.  Zero-length rows pass: they are harmless and
// simply cover no interval.
func exclusionReason(r ComponentRow) string {
	switch {
	case !isFinite(r.Top) || !isFinite(r.Bottom) || !isFinite(r.InternalDiameter):
		return ReasonNonFinite
	case r.Top < 0:
		return ReasonNegativeTop
	case r.Bottom < r.Top:
		return ReasonInverted
	case r.InternalDiameter <= 0:
		return ReasonBadDiameter
	}
	return ""
}

// elementaryIntervals partitions the union of all row boundary depths (plus
// the nodal point) into maximal intervals over which the set of covering
// components is constant, resolving the governing diameter for each.
// Intervals covered by no component are dropped; coverage is never fabricated
// across gaps.  The result is ordered deepest first.
func elementaryIntervals(rows []ComponentRow, nodalPoint float64) []Segment {
	bounds := make([]float64, 0, len(rows)*2+1)
	for _, r := range rows {
		bounds = append(bounds, r.Top, r.Bottom)
	}
	bounds = append(bounds, nodalPoint)

	sort.Sort(sort.Reverse(sort.Float64Slice(bounds)))
	bounds = dedupeDescending(bounds)

	elems := make([]Segment, 0, len(bounds)-1)
	for i := 0; i+1 < len(bounds); i++ {
		deep, shallow := bounds[i], bounds[i+1]
		diameter, covered := governingDiameter(rows, shallow, deep)
		if !covered {
			continue
		}
		elems = append(elems, Segment{StartDepth: shallow, EndDepth: deep, Diameter: diameter})
	}
	return elems
}

// governingDiameter returns the smallest internal diameter among rows fully
// covering (shallow, deep], scanning in input order so ties keep the first
// row encountered.
func governingDiameter(rows []ComponentRow, shallow, deep float64) (float64, bool) {
	var (
		best    float64
		covered bool
	)
	for _, r := range rows {
		if !r.covers(shallow, deep) {
			continue
		}
		if !covered || r.InternalDiameter < best {
			best = r.InternalDiameter
			covered = true
		}
	}
	return best, covered
}

// anchorAtNodal re-anchors the deepest-first elementary intervals at the
// nodal point.  The interval containing the nodal point is truncated at it,
// intervals deeper than the nodal point are excluded, and everything
// shallower is emitted unchanged.  When no interval contains the nodal point
// the nearest interval at or above it is used without truncation; if the
// nodal point is shallower than all coverage, the full stack is returned from
// the deepest interval.  No synthetic coverage is created over gaps.
func anchorAtNodal(elems []Segment, rows []ComponentRow, nodalPoint float64) []Segment {
	idx := -1
	for i, e := range elems {
		if e.contains(nodalPoint) {
			idx = i
			if e.EndDepth > nodalPoint {
				// Unreachable while the nodal point participates in the
				// boundary set, but kept so the anchoring step stands alone.
				diameter, covered := governingDiameter(rows, e.StartDepth, nodalPoint)
				if !covered {
					diameter = e.Diameter
				}
				head := Segment{StartDepth: e.StartDepth, EndDepth: nodalPoint, Diameter: diameter}
				return append([]Segment{head}, elems[i+1:]...)
			}
			break
		}
	}
	if idx == -1 {
		for i, e := range elems {
			if e.EndDepth <= nodalPoint {
				idx = i
				break
			}
		}
	}
	if idx == -1 {
		idx = 0
	}
	out := make([]Segment, len(elems)-idx)
	copy(out, elems[idx:])
	return out
}

// dedupeDescending removes adjacent duplicates from a descending-sorted
// slice, in place.
func dedupeDescending(vals []float64) []float64 {
	if len(vals) == 0 {
		return vals
	}
	out := vals[:1]
	for _, v := range vals[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
