package engine

import (
	"encoding/json"
	"math"

	"github.com/inamate/snapkit/internal/geometry"
	"github.com/inamate/snapkit/internal/tree"
)

// SpaceBlock is the gap between a rect and its nearest neighbor on one side.
// Around blocks measure from the drag rect; chained blocks (see Next)
// measure from another block's refer rect.
type SpaceBlock struct {
	Side     geometry.Side
	Refer    *tree.Node
	Distance float64
	Rect     geometry.Rect

	helper     *TransformHelper
	isometrics []*SpaceBlock
	isoDone    bool
	snapLine   *SnapLine
	lineDone   bool
}

// AroundSpaceBlocks holds the closest block per side of the drag rect.
type AroundSpaceBlocks map[geometry.Side]*SpaceBlock

// Each visits the blocks in top, right, bottom, left order.
func (a AroundSpaceBlocks) Each(fn func(*SpaceBlock)) {
	for _, side := range geometry.Sides {
		if b := a[side]; b != nil {
			fn(b)
		}
	}
}

func newSpaceBlock(h *TransformHelper, refer *tree.Node, space geometry.Space) *SpaceBlock {
	return &SpaceBlock{
		Side:     space.Side,
		Refer:    refer,
		Distance: space.Distance,
		Rect:     space.Rect,
		helper:   h,
	}
}

func (b *SpaceBlock) ReferRect() geometry.Rect {
	if b.Refer == nil {
		return geometry.Rect{}
	}
	return b.helper.viewportRects[b.Refer.ID]
}

// Next is the block on the same side of this block's refer rect, which
// continues a row or column of equally spaced nodes.
func (b *SpaceBlock) Next() *SpaceBlock {
	if b.Refer == nil {
		return nil
	}
	source := b.ReferRect()
	var next *SpaceBlock
	b.helper.eachViewportNode(func(n *tree.Node, r geometry.Rect) {
		if n == b.Refer {
			return
		}
		space, ok := geometry.SpaceOfRect(source, r)
		if !ok || space.Side != b.Side {
			return
		}
		if next == nil || space.Distance < next.Distance {
			next = newSpaceBlock(b.helper, n, space)
		}
	})
	return next
}

func (b *SpaceBlock) isometric(other *SpaceBlock) bool {
	return other != nil && other != b && math.Abs(other.Distance-b.Distance) < Threshold
}

// Isometrics lists the blocks whose gap matches this one within the
// threshold: around blocks on the other sides of the drag rect, then the
// chain of same-side blocks beyond this block's refer.
func (b *SpaceBlock) Isometrics() []*SpaceBlock {
	if b.isoDone {
		return b.isometrics
	}
	b.isoDone = true
	b.helper.aroundSpaceBlocks.Each(func(other *SpaceBlock) {
		if b.isometric(other) {
			b.isometrics = append(b.isometrics, other)
		}
	})
	next := b.Next()
	for i := 0; next != nil && i < len(b.helper.viewportIDs); i++ {
		if !b.isometric(next) {
			break
		}
		b.isometrics = append(b.isometrics, next)
		next = next.Next()
	}
	return b.isometrics
}

func oppositeSide(s geometry.Side) geometry.Side {
	switch s {
	case geometry.SideTop:
		return geometry.SideBottom
	case geometry.SideBottom:
		return geometry.SideTop
	case geometry.SideLeft:
		return geometry.SideRight
	default:
		return geometry.SideLeft
	}
}

// SnapLine is where the drag rect edge facing this block would sit to make
// the gap equal to its isometric partner: the average gap with the block
// on the opposite side, or the gap of the next block along the chain.
// Blocks without a usable partner have no line.
func (b *SpaceBlock) SnapLine() *SnapLine {
	if b.lineDone {
		return b.snapLine
	}
	b.lineDone = true

	gap, found := 0.0, false
	for _, iso := range b.Isometrics() {
		if iso.Side == oppositeSide(b.Side) && b.helper.aroundSpaceBlocks[iso.Side] == iso {
			gap, found = (b.Distance+iso.Distance)/2, true
			break
		}
		if iso.Side == b.Side && !found {
			gap, found = iso.Distance, true
		}
	}
	if !found {
		return nil
	}

	refer := b.ReferRect()
	var seg geometry.LineSegment
	switch b.Side {
	case geometry.SideLeft:
		x := refer.Right() + gap
		seg = geometry.LineSegment{Start: geometry.Point{X: x, Y: b.Rect.Top()}, End: geometry.Point{X: x, Y: b.Rect.Bottom()}}
	case geometry.SideRight:
		x := refer.Left() - gap
		seg = geometry.LineSegment{Start: geometry.Point{X: x, Y: b.Rect.Top()}, End: geometry.Point{X: x, Y: b.Rect.Bottom()}}
	case geometry.SideTop:
		y := refer.Bottom() + gap
		seg = geometry.LineSegment{Start: geometry.Point{X: b.Rect.Left(), Y: y}, End: geometry.Point{X: b.Rect.Right(), Y: y}}
	case geometry.SideBottom:
		y := refer.Top() - gap
		seg = geometry.LineSegment{Start: geometry.Point{X: b.Rect.Left(), Y: y}, End: geometry.Point{X: b.Rect.Right(), Y: y}}
	}
	if !geometry.IsLineSegment(seg) {
		return nil
	}
	_, distance := closestEdge(seg, b.helper.dragNodesRect, b.helper.snapEdges())
	b.snapLine = newSnapLine(b.helper, seg, SourceSpaceBlock, distance)
	return b.snapLine
}

func (b *SpaceBlock) MarshalJSON() ([]byte, error) {
	type wire struct {
		Side     geometry.Side `json:"side"`
		Refer    string        `json:"refer,omitempty"`
		Distance float64       `json:"distance"`
		Rect     geometry.Rect `json:"rect"`
	}
	w := wire{Side: b.Side, Distance: b.Distance, Rect: b.Rect}
	if b.Refer != nil {
		w.Refer = b.Refer.ID
	}
	return json.Marshal(w)
}
