package designer

import (
	"encoding/json"

	"github.com/inamate/snapkit/internal/engine"
	"github.com/inamate/snapkit/internal/geometry"
	"github.com/inamate/snapkit/internal/tree"
)

// NodeState is the live geometry of a dragged node.
type NodeState struct {
	ID   string        `json:"id"`
	Rect geometry.Rect `json:"rect"`
}

// State is what a renderer needs to draw one frame of a drag.
type State struct {
	Dragging            bool                 `json:"dragging"`
	Transform           engine.Kind          `json:"transform,omitempty"`
	Snapped             bool                 `json:"snapped"`
	Nodes               []NodeState          `json:"nodes"`
	DragNodesRect       geometry.Rect        `json:"dragNodesRect"`
	Scroll              geometry.Point       `json:"scroll"`
	ClosestSnapLines    []*engine.SnapLine   `json:"closestSnapLines"`
	ClosestSpaceBlocks  []*engine.SpaceBlock `json:"closestSpaceBlocks"`
	MeasurerSpaceBlocks []*engine.SpaceBlock `json:"measurerSpaceBlocks"`
	Guides              []Guide              `json:"guides"`
}

// --- Queries ---

func (d *Designer) State() State {
	s := State{
		Nodes:               []NodeState{},
		Scroll:              d.viewport().Scroll,
		ClosestSnapLines:    []*engine.SnapLine{},
		ClosestSpaceBlocks:  []*engine.SpaceBlock{},
		MeasurerSpaceBlocks: []*engine.SpaceBlock{},
		Guides:              d.Guides(),
	}
	if s.Guides == nil {
		s.Guides = []Guide{}
	}
	if d.helper == nil || !d.helper.Dragging() {
		return s
	}

	s.Dragging = true
	s.Transform = d.helper.Transform().Kind()
	s.Snapped = d.helper.Snapped()
	s.DragNodesRect = d.helper.DragNodesRect()
	for _, n := range d.helper.DragNodes() {
		s.Nodes = append(s.Nodes, NodeState{ID: n.ID, Rect: n.ValidOffsetRect()})
	}
	s.ClosestSnapLines = append(s.ClosestSnapLines, d.helper.ClosestSnapLines()...)
	s.ClosestSpaceBlocks = append(s.ClosestSpaceBlocks, d.helper.ClosestSpaceBlocks()...)
	s.MeasurerSpaceBlocks = append(s.MeasurerSpaceBlocks, d.helper.MeasurerSpaceBlocks()...)
	return s
}

// StateJSON is State encoded for the wasm bridge.
func (d *Designer) StateJSON() string {
	data, err := json.Marshal(d.State())
	if err != nil {
		return "{}"
	}
	return string(data)
}

// HitTest returns the id of the topmost node under a client point, or "".
func (d *Designer) HitTest(client geometry.Point) string {
	if d.tree == nil {
		return ""
	}
	if n := d.tree.HitTest(d.viewport().GetOffsetPoint(client)); n != nil {
		return n.ID
	}
	return ""
}

// SelectionBounds is the offset bounding rect of the given nodes.
func (d *Designer) SelectionBounds(ids []string) geometry.Rect {
	if d.tree == nil {
		return geometry.Rect{}
	}
	return tree.Bounds(d.tree.FindAll(ids))
}

// Document returns the document with current node geometry.
func (d *Designer) Document() *tree.Document {
	if d.tree == nil {
		return nil
	}
	return d.tree.Document()
}

// DocumentJSON is Document encoded for the wasm bridge.
func (d *Designer) DocumentJSON() string {
	doc := d.Document()
	if doc == nil {
		return "{}"
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// Scroll is the canvas scroll offset.
func (d *Designer) Scroll() geometry.Point {
	return d.viewport().Scroll
}

func (d *Designer) Dragging() bool {
	return d.helper != nil && d.helper.Dragging()
}
