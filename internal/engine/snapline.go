package engine

import (
	"encoding/json"
	"math"

	"github.com/inamate/snapkit/internal/geometry"
	"github.com/inamate/snapkit/internal/tree"
)

// Threshold is the distance below which a line is close enough to snap.
const Threshold = 6.0

// Source tells where a snap line came from.
type Source string

const (
	SourceRuler      Source = "ruler"
	SourceAround     Source = "around"
	SourceSpaceBlock Source = "space-block"
)

// SnapLine is an axis-aligned guide the dragged rect can lock onto.
// Distance is measured against the drag rect of the last DragMove.
type SnapLine struct {
	geometry.LineSegment
	ID       string
	Source   Source
	Distance float64

	helper *TransformHelper
}

func newSnapLine(h *TransformHelper, seg geometry.LineSegment, source Source, distance float64) *SnapLine {
	return &SnapLine{LineSegment: seg, Source: source, Distance: distance, helper: h}
}

// Closest reports whether the line was within the threshold at the last
// recompute.
func (l *SnapLine) Closest() bool {
	return l.Distance < Threshold
}

// SnapEdge classifies which edge or center line of r this line aligns to.
func (l *SnapLine) SnapEdge(r geometry.Rect) (Edge, bool) {
	e, d := closestEdge(l.LineSegment, r, allEdges)
	if d >= Threshold {
		return "", false
	}
	return e, true
}

// snap finds the edge of r allowed to lock onto this line for the current
// transform, and how far it has to move.
func (l *SnapLine) snap(r geometry.Rect) (Edge, float64, bool) {
	if l.helper == nil || l.helper.transform == nil {
		return "", 0, false
	}
	e, d := closestEdge(l.LineSegment, r, l.helper.transform.snapEdges())
	if d >= Threshold {
		return "", 0, false
	}
	return e, l.Position() - e.Position(r), true
}

// Translate aligns target so the dragged group's matching edge lands on
// this line. It reports whether target changed.
func (l *SnapLine) Translate(node *tree.Node, target *geometry.Point) bool {
	if node == nil || target == nil {
		return false
	}
	e, shift, ok := l.snap(l.helper.CursorDragNodesRect())
	if !ok {
		return false
	}
	if e.Direction() == geometry.Horizontal {
		target.Y += shift
	} else {
		target.X += shift
	}
	return true
}

// Resize moves the edge of target that follows the pointer onto this line.
// Center lines never take part because resizing has no center anchor.
func (l *SnapLine) Resize(node *tree.Node, target *geometry.Rect) bool {
	if node == nil || target == nil {
		return false
	}
	e, shift, ok := l.snap(l.helper.CursorDragNodesRect())
	if !ok || e == EdgeHCenter || e == EdgeVCenter {
		return false
	}
	*target = applyEdgeShift(*target, e, shift, true)
	return true
}

func (l *SnapLine) MarshalJSON() ([]byte, error) {
	type wire struct {
		ID        string             `json:"id,omitempty"`
		Start     geometry.Point     `json:"start"`
		End       geometry.Point     `json:"end"`
		Direction geometry.Direction `json:"direction"`
		Source    Source             `json:"source"`
		Distance  *float64           `json:"distance,omitempty"`
	}
	w := wire{ID: l.ID, Start: l.Start, End: l.End, Direction: l.Direction(), Source: l.Source}
	if !math.IsInf(l.Distance, 0) && !math.IsNaN(l.Distance) {
		d := l.Distance
		w.Distance = &d
	}
	return json.Marshal(w)
}
