package engine

import (
	"fmt"

	"github.com/inamate/snapkit/internal/geometry"
	"github.com/inamate/snapkit/internal/tree"
	"github.com/inamate/snapkit/internal/workspace"
)

type Kind string

const (
	KindTranslate Kind = "translate"
	KindResize    Kind = "resize"
	KindRotate    Kind = "rotate"
	KindScale     Kind = "scale"
	KindRound     Kind = "round"
)

// Transform is the kind of a drag session. The implementations are
// TranslateTransform, ResizeTransform, RotateTransform, ScaleTransform and
// RoundTransform; no other package can add one.
type Transform interface {
	Kind() Kind
	// filter keeps the nodes able to take part in this transform.
	filter(nodes []*tree.Node) []*tree.Node
	dragType() workspace.DragType
	// snapEdges lists the drag-rect edges allowed to lock onto snap lines.
	snapEdges() []Edge
	// target is the unsnapped group rect for a pointer delta.
	target(start geometry.Rect, delta geometry.Point) geometry.Rect
}

type TranslateTransform struct{}

func (TranslateTransform) Kind() Kind                         { return KindTranslate }
func (TranslateTransform) filter(n []*tree.Node) []*tree.Node { return tree.FilterTranslatable(n) }
func (TranslateTransform) dragType() workspace.DragType       { return workspace.DragTypeTranslate }
func (TranslateTransform) snapEdges() []Edge                  { return allEdges }
func (TranslateTransform) target(r geometry.Rect, d geometry.Point) geometry.Rect {
	return r.Offset(d.X, d.Y)
}

// ResizeTransform drags one of the eight resize handles.
type ResizeTransform struct {
	Direction Direction
}

func (ResizeTransform) Kind() Kind                         { return KindResize }
func (ResizeTransform) filter(n []*tree.Node) []*tree.Node { return tree.FilterResizable(n) }
func (ResizeTransform) dragType() workspace.DragType       { return workspace.DragTypeResize }
func (t ResizeTransform) snapEdges() []Edge                { return t.Direction.movingEdges() }
func (t ResizeTransform) target(r geometry.Rect, d geometry.Point) geometry.Rect {
	return t.Direction.Apply(r, d)
}

// Rotate, scale and round sessions only carry lifecycle state: nodes are
// filtered and snapshotted, but no geometry is derived from the pointer.
type RotateTransform struct{}
type ScaleTransform struct{}
type RoundTransform struct{}

func (RotateTransform) Kind() Kind                                             { return KindRotate }
func (RotateTransform) filter(n []*tree.Node) []*tree.Node                     { return tree.FilterRotatable(n) }
func (RotateTransform) dragType() workspace.DragType                           { return workspace.DragTypeRotate }
func (RotateTransform) snapEdges() []Edge                                      { return nil }
func (RotateTransform) target(r geometry.Rect, _ geometry.Point) geometry.Rect { return r }

func (ScaleTransform) Kind() Kind                                             { return KindScale }
func (ScaleTransform) filter(n []*tree.Node) []*tree.Node                     { return tree.FilterScalable(n) }
func (ScaleTransform) dragType() workspace.DragType                           { return workspace.DragTypeScale }
func (ScaleTransform) snapEdges() []Edge                                      { return nil }
func (ScaleTransform) target(r geometry.Rect, _ geometry.Point) geometry.Rect { return r }

func (RoundTransform) Kind() Kind                                             { return KindRound }
func (RoundTransform) filter(n []*tree.Node) []*tree.Node                     { return tree.FilterRoundable(n) }
func (RoundTransform) dragType() workspace.DragType                           { return workspace.DragTypeRound }
func (RoundTransform) snapEdges() []Edge                                      { return nil }
func (RoundTransform) target(r geometry.Rect, _ geometry.Point) geometry.Rect { return r }

// ParseTransform builds a Transform from its wire form. direction is only
// read for resize.
func ParseTransform(kind, direction string) (Transform, error) {
	switch Kind(kind) {
	case KindTranslate:
		return TranslateTransform{}, nil
	case KindResize:
		d := Direction(direction)
		if !d.Valid() {
			return nil, fmt.Errorf("invalid resize direction %q", direction)
		}
		return ResizeTransform{Direction: d}, nil
	case KindRotate:
		return RotateTransform{}, nil
	case KindScale:
		return ScaleTransform{}, nil
	case KindRound:
		return RoundTransform{}, nil
	default:
		return nil, fmt.Errorf("unknown transform type %q", kind)
	}
}

// Direction names a resize handle.
type Direction string

const (
	LeftTop      Direction = "left-top"
	LeftCenter   Direction = "left-center"
	LeftBottom   Direction = "left-bottom"
	CenterTop    Direction = "center-top"
	CenterBottom Direction = "center-bottom"
	RightTop     Direction = "right-top"
	RightCenter  Direction = "right-center"
	RightBottom  Direction = "right-bottom"
)

// axisRule maps the pointer delta on one axis: the position moves by
// move*delta and the size grows by grow*delta.
type axisRule struct {
	move, grow float64
}

var (
	fixedAxis = axisRule{0, 0}
	startAxis = axisRule{1, -1} // left or top handle
	endAxis   = axisRule{0, 1}  // right or bottom handle
)

var resizeRules = map[Direction][2]axisRule{
	LeftTop:      {startAxis, startAxis},
	LeftCenter:   {startAxis, fixedAxis},
	LeftBottom:   {startAxis, endAxis},
	CenterTop:    {fixedAxis, startAxis},
	CenterBottom: {fixedAxis, endAxis},
	RightTop:     {endAxis, startAxis},
	RightCenter:  {endAxis, fixedAxis},
	RightBottom:  {endAxis, endAxis},
}

func (d Direction) Valid() bool {
	_, ok := resizeRules[d]
	return ok
}

// Apply resizes r by a pointer delta dragged from this handle.
func (d Direction) Apply(r geometry.Rect, delta geometry.Point) geometry.Rect {
	rule, ok := resizeRules[d]
	if !ok {
		return r
	}
	x, y := rule[0], rule[1]
	return geometry.Rect{
		X:      r.X + x.move*delta.X,
		Y:      r.Y + y.move*delta.Y,
		Width:  r.Width + x.grow*delta.X,
		Height: r.Height + y.grow*delta.Y,
	}
}

// movingEdges are the rect edges that follow the pointer for this handle.
func (d Direction) movingEdges() []Edge {
	rule, ok := resizeRules[d]
	if !ok {
		return nil
	}
	var edges []Edge
	switch rule[0] {
	case startAxis:
		edges = append(edges, EdgeLeft)
	case endAxis:
		edges = append(edges, EdgeRight)
	}
	switch rule[1] {
	case startAxis:
		edges = append(edges, EdgeTop)
	case endAxis:
		edges = append(edges, EdgeBottom)
	}
	return edges
}
