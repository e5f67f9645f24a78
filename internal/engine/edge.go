package engine

import (
	"math"

	"github.com/inamate/snapkit/internal/geometry"
)

// Edge names one of the six alignment lines of a rect.
type Edge string

const (
	EdgeTop     Edge = "ht"
	EdgeHCenter Edge = "hc"
	EdgeBottom  Edge = "hb"
	EdgeLeft    Edge = "vl"
	EdgeVCenter Edge = "vc"
	EdgeRight   Edge = "vr"
)

var allEdges = []Edge{EdgeTop, EdgeHCenter, EdgeBottom, EdgeLeft, EdgeVCenter, EdgeRight}

func (e Edge) Direction() geometry.Direction {
	switch e {
	case EdgeTop, EdgeHCenter, EdgeBottom:
		return geometry.Horizontal
	default:
		return geometry.Vertical
	}
}

// Position is the fixed coordinate of this edge on r.
func (e Edge) Position(r geometry.Rect) float64 {
	switch e {
	case EdgeTop:
		return r.Top()
	case EdgeHCenter:
		return r.Y + r.Height/2
	case EdgeBottom:
		return r.Bottom()
	case EdgeLeft:
		return r.Left()
	case EdgeVCenter:
		return r.X + r.Width/2
	default:
		return r.Right()
	}
}

// Line is the segment this edge draws on r.
func (e Edge) Line(r geometry.Rect) geometry.LineSegment {
	p := e.Position(r)
	if e.Direction() == geometry.Horizontal {
		return geometry.LineSegment{Start: geometry.Point{X: r.Left(), Y: p}, End: geometry.Point{X: r.Right(), Y: p}}
	}
	return geometry.LineSegment{Start: geometry.Point{X: p, Y: r.Top()}, End: geometry.Point{X: p, Y: r.Bottom()}}
}

// closestEdge picks, among edges parallel to line, the one of r with the
// smallest perpendicular offset. Non-parallel or empty edge sets report +Inf.
func closestEdge(line geometry.LineSegment, r geometry.Rect, edges []Edge) (Edge, float64) {
	dir := line.Direction()
	pos := line.Position()
	best, distance := Edge(""), math.Inf(1)
	for _, e := range edges {
		if e.Direction() != dir {
			continue
		}
		if d := math.Abs(e.Position(r) - pos); d < distance {
			best, distance = e, d
		}
	}
	return best, distance
}

// applyEdgeShift moves one edge of r by shift. Translating moves the whole
// rect; resizing moves only that edge and keeps the opposite one fixed.
func applyEdgeShift(r geometry.Rect, e Edge, shift float64, resize bool) geometry.Rect {
	if !resize {
		if e.Direction() == geometry.Horizontal {
			return r.Offset(0, shift)
		}
		return r.Offset(shift, 0)
	}
	switch e {
	case EdgeLeft:
		r.X += shift
		r.Width -= shift
	case EdgeRight:
		r.Width += shift
	case EdgeTop:
		r.Y += shift
		r.Height -= shift
	case EdgeBottom:
		r.Height += shift
	}
	return r
}
