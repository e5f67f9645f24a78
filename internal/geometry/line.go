package geometry

import "math"

// Direction is the orientation of an axis-aligned line segment.
type Direction string

const (
	Horizontal Direction = "h"
	Vertical   Direction = "v"
)

// LineSegment is a straight segment between two points.
type LineSegment struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// Direction reports the orientation of the segment. Segments that are
// neither horizontal nor vertical report the empty direction.
func (l LineSegment) Direction() Direction {
	switch {
	case l.Start.X == l.End.X && l.Start.Y != l.End.Y:
		return Vertical
	case l.Start.Y == l.End.Y && l.Start.X != l.End.X:
		return Horizontal
	default:
		return ""
	}
}

// Position is the fixed coordinate of an axis-aligned segment:
// y for horizontal segments, x for vertical ones.
func (l LineSegment) Position() float64 {
	if l.Direction() == Horizontal {
		return l.Start.Y
	}
	return l.Start.X
}

// IsLineSegment reports whether l is a finite, non-degenerate, axis-aligned segment.
func IsLineSegment(l LineSegment) bool {
	for _, v := range []float64{l.Start.X, l.Start.Y, l.End.X, l.End.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return l.Direction() != ""
}

// EdgeLines holds the three vertical (left, center, right) and three
// horizontal (top, center, bottom) lines of a rect.
type EdgeLines struct {
	V [3]LineSegment
	H [3]LineSegment
}

// EdgeLinesOfRect extracts the edge and center lines of r.
func EdgeLinesOfRect(r Rect) EdgeLines {
	cx, cy := r.X+r.Width/2, r.Y+r.Height/2
	return EdgeLines{
		V: [3]LineSegment{
			{Start: Point{r.X, r.Y}, End: Point{r.X, r.Bottom()}},
			{Start: Point{cx, r.Y}, End: Point{cx, r.Bottom()}},
			{Start: Point{r.Right(), r.Y}, End: Point{r.Right(), r.Bottom()}},
		},
		H: [3]LineSegment{
			{Start: Point{r.X, r.Y}, End: Point{r.Right(), r.Y}},
			{Start: Point{r.X, cy}, End: Point{r.Right(), cy}},
			{Start: Point{r.X, r.Bottom()}, End: Point{r.Right(), r.Bottom()}},
		},
	}
}

// CombineSegments extends target along its own axis so that it also covers
// the span of source. The fixed coordinate of target is kept.
func CombineSegments(target, source LineSegment) LineSegment {
	if target.Direction() == Vertical {
		x := target.Start.X
		return LineSegment{
			Start: Point{x, min(target.Start.Y, target.End.Y, source.Start.Y, source.End.Y)},
			End:   Point{x, max(target.Start.Y, target.End.Y, source.Start.Y, source.End.Y)},
		}
	}
	y := target.Start.Y
	return LineSegment{
		Start: Point{min(target.Start.X, target.End.X, source.Start.X, source.End.X), y},
		End:   Point{max(target.Start.X, target.End.X, source.Start.X, source.End.X), y},
	}
}
