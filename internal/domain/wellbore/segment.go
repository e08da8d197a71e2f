package wellbore

import wbtypes "github.com/turtacn/WellNodal/pkg/types/wellbore"

// Segment is one merged depth interval carrying the governing (smallest)
// internal diameter of all components covering it.  StartDepth is the shallow
// end, EndDepth the deep end; EndDepth ≥ StartDepth and Diameter > 0 hold for
// every segment produced by the merger.
type Segment struct {
	StartDepth float64
	EndDepth   float64
	Diameter   float64
}

// Length returns the depth span covered by the segment.
func (s Segment) Length() float64 {
	return s.EndDepth - s.StartDepth
}

// contains reports whether depth d lies in the half-open interval
// (StartDepth, EndDepth].  The deep end is inclusive so that a nodal point
// sitting exactly on a segment boundary belongs to the shallower segment.
func (s Segment) contains(d float64) bool {
	return s.StartDepth < d && d <= s.EndDepth
}

// DTO converts the segment to its wire representation.
func (s Segment) DTO() wbtypes.SegmentDTO {
	return wbtypes.SegmentDTO{
		StartDepth: s.StartDepth,
		EndDepth:   s.EndDepth,
		Diameter:   s.Diameter,
	}
}

// SegmentsToDTO converts a merged segment stack to wire form, preserving
// order.  A nil input yields an empty (non-nil) slice so that JSON encodes
// "segments": [] rather than null.
func SegmentsToDTO(segs []Segment) []wbtypes.SegmentDTO {
	out := make([]wbtypes.SegmentDTO, 0, len(segs))
	for _, s := range segs {
		out = append(out, s.DTO())
	}
	return out
}
