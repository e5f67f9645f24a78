package engine

import (
	"slices"

	"github.com/inamate/snapkit/internal/geometry"
	"github.com/inamate/snapkit/internal/tree"
	"github.com/inamate/snapkit/internal/workspace"
)

// Walker is the part of the node tree the helper reads.
type Walker interface {
	EachTree(fn func(*tree.Node))
	FindByID(id string) *tree.Node
}

// Cursor reports the pointer delta of the current drag and receives the
// drag type for the cursor icon.
type Cursor interface {
	DragStartToCurrentDelta() geometry.Point
	SetDragType(t workspace.DragType)
}

// Viewport decides which nodes are candidates for snapping.
type Viewport interface {
	IsRectInViewport(r geometry.Rect) bool
	ClientRect(offset geometry.Rect) geometry.Rect
}

// TransformHelper runs one drag session at a time and keeps the snap lines
// and space blocks of the current frame. It is not safe for concurrent use.
type TransformHelper struct {
	tree     Walker
	cursor   Cursor
	viewport Viewport

	transform Transform
	dragNodes []*tree.Node
	dragging  bool
	snapping  bool
	snapped   bool

	rulerSnapLines    []*SnapLine
	aroundSnapLines   []*SnapLine
	aroundSpaceBlocks AroundSpaceBlocks

	dragNodesRect           geometry.Rect
	dragStartNodesRect      geometry.Rect
	snappedRect             geometry.Rect
	dragStartTranslateStore map[string]geometry.Point
	dragStartSizeStore      map[string]geometry.Size
	viewportRects           map[string]geometry.Rect
	viewportIDs             []string

	observers    []observer
	nextObserver int
}

type observer struct {
	id int
	fn func()
}

func NewTransformHelper(t Walker, cursor Cursor, viewport Viewport) *TransformHelper {
	h := &TransformHelper{tree: t, cursor: cursor, viewport: viewport}
	h.resetSession()
	return h
}

func (h *TransformHelper) resetSession() {
	h.transform = nil
	h.dragNodes = nil
	h.dragging = false
	h.snapping = false
	h.snapped = false
	h.aroundSnapLines = nil
	h.aroundSpaceBlocks = AroundSpaceBlocks{}
	h.dragNodesRect = geometry.Rect{}
	h.dragStartNodesRect = geometry.Rect{}
	h.snappedRect = geometry.Rect{}
	h.dragStartTranslateStore = make(map[string]geometry.Point)
	h.dragStartSizeStore = make(map[string]geometry.Size)
	h.viewportRects = make(map[string]geometry.Rect)
	h.viewportIDs = nil
}

// Observe registers fn to run after every DragStart, DragMove and DragEnd.
// The returned func removes it.
func (h *TransformHelper) Observe(fn func()) func() {
	h.nextObserver++
	id := h.nextObserver
	h.observers = append(h.observers, observer{id: id, fn: fn})
	return func() {
		h.observers = slices.DeleteFunc(h.observers, func(o observer) bool { return o.id == id })
	}
}

func (h *TransformHelper) notify() {
	for _, o := range slices.Clone(h.observers) {
		o.fn()
	}
}

func (h *TransformHelper) Dragging() bool               { return h.dragging }
func (h *TransformHelper) Snapped() bool                { return h.snapped }
func (h *TransformHelper) Transform() Transform         { return h.transform }
func (h *TransformHelper) DragNodes() []*tree.Node      { return h.dragNodes }
func (h *TransformHelper) DragNodesRect() geometry.Rect { return h.dragNodesRect }
func (h *TransformHelper) DragStartNodesRect() geometry.Rect {
	return h.dragStartNodesRect
}
func (h *TransformHelper) RulerSnapLines() []*SnapLine  { return h.rulerSnapLines }
func (h *TransformHelper) AroundSnapLines() []*SnapLine { return h.aroundSnapLines }
func (h *TransformHelper) AroundSpaceBlocks() AroundSpaceBlocks {
	return h.aroundSpaceBlocks
}

// Draggable returns the nodes able to take t.
func (h *TransformHelper) Draggable(t Transform, nodes []*tree.Node) []*tree.Node {
	if t == nil {
		return nil
	}
	return t.filter(nodes)
}

// DragStart begins a session for the nodes able to take t. When none are,
// nothing changes and it returns false. A running session is ended first.
func (h *TransformHelper) DragStart(t Transform, nodes []*tree.Node) bool {
	nodes = h.Draggable(t, nodes)
	if len(nodes) == 0 {
		return false
	}
	if h.dragging {
		h.DragEnd()
	}

	h.dragging = true
	h.transform = t
	h.dragNodes = nodes
	h.calcDragStartStore()
	h.calcViewportNodes()
	if h.cursor != nil {
		h.cursor.SetDragType(t.dragType())
	}
	h.notify()
	return true
}

func (h *TransformHelper) calcDragStartStore() {
	h.dragStartNodesRect = tree.Bounds(h.dragNodes)
	h.dragNodesRect = h.dragStartNodesRect
	for _, n := range h.dragNodes {
		h.dragStartTranslateStore[n.ID] = n.Translate
		h.dragStartSizeStore[n.ID] = n.Size
	}
}

func (h *TransformHelper) isDragged(n *tree.Node) bool {
	for p := n; p != nil; p = p.Parent {
		for _, d := range h.dragNodes {
			if d == p {
				return true
			}
		}
	}
	return false
}

// calcViewportNodes caches the offset rects of the measurable nodes shown
// in the viewport. The cache holds for the whole session.
func (h *TransformHelper) calcViewportNodes() {
	if h.tree == nil {
		return
	}
	h.tree.EachTree(func(n *tree.Node) {
		if h.isDragged(n) {
			return
		}
		r, ok := n.OffsetRect()
		if !ok {
			return
		}
		if h.viewport != nil && !h.viewport.IsRectInViewport(h.viewport.ClientRect(r)) {
			return
		}
		h.viewportRects[n.ID] = r
		h.viewportIDs = append(h.viewportIDs, n.ID)
	})
}

func (h *TransformHelper) eachViewportNode(fn func(*tree.Node, geometry.Rect)) {
	for _, id := range h.viewportIDs {
		n := h.tree.FindByID(id)
		if n == nil {
			continue
		}
		fn(n, h.viewportRects[id])
	}
}

func (h *TransformHelper) snapEdges() []Edge {
	if h.transform == nil {
		return nil
	}
	return h.transform.snapEdges()
}

func (h *TransformHelper) delta() geometry.Point {
	if h.cursor == nil {
		return geometry.Point{}
	}
	return h.cursor.DragStartToCurrentDelta()
}

// CursorDragNodesRect is where the pointer puts the dragged group before
// any snapping.
func (h *TransformHelper) CursorDragNodesRect() geometry.Rect {
	if !h.dragging || h.transform == nil {
		return geometry.Rect{}
	}
	return h.transform.target(h.dragStartNodesRect, h.delta())
}

// DragMove recomputes the drag rect, ruler distances, around snap lines and
// space blocks. The rect comes from the pointer (CursorDragNodesRect), or
// from the snapped rect while a snap is being applied; node geometry is
// never read here.
func (h *TransformHelper) DragMove() {
	if !h.dragging {
		return
	}
	if h.snapping {
		h.dragNodesRect = h.snappedRect
	} else {
		h.dragNodesRect = h.CursorDragNodesRect()
	}
	h.calcRulerSnapLines()
	h.aroundSnapLines = h.calcAroundSnapLines()
	h.aroundSpaceBlocks = h.calcAroundSpaceBlocks()
	h.notify()
}

func (h *TransformHelper) calcRulerSnapLines() {
	edges := h.snapEdges()
	for _, line := range h.rulerSnapLines {
		_, line.Distance = closestEdge(line.LineSegment, h.dragNodesRect, edges)
	}
}

func (h *TransformHelper) calcAroundSnapLines() []*SnapLine {
	var lines []*SnapLine
	edges := h.snapEdges()
	if len(edges) == 0 {
		return nil
	}
	h.eachViewportNode(func(_ *tree.Node, r geometry.Rect) {
		refer := geometry.EdgeLinesOfRect(r)
		add := func(line geometry.LineSegment) {
			if !geometry.IsLineSegment(line) {
				return
			}
			edge, distance := closestEdge(line, h.dragNodesRect, edges)
			if distance >= Threshold {
				return
			}
			if h.snapping && distance != 0 {
				return
			}
			combined := geometry.CombineSegments(line, edge.Line(h.dragNodesRect))
			lines = append(lines, newSnapLine(h, combined, SourceAround, distance))
		}
		for _, l := range refer.H {
			add(l)
		}
		for _, l := range refer.V {
			add(l)
		}
	})
	return lines
}

func (h *TransformHelper) calcAroundSpaceBlocks() AroundSpaceBlocks {
	blocks := AroundSpaceBlocks{}
	h.eachViewportNode(func(n *tree.Node, r geometry.Rect) {
		space, ok := geometry.SpaceOfRect(h.dragNodesRect, r)
		if !ok {
			return
		}
		if cur := blocks[space.Side]; cur == nil || space.Distance < cur.Distance {
			blocks[space.Side] = newSpaceBlock(h, n, space)
		}
	})
	return blocks
}

// DragEnd drops all session state. Ruler lines stay.
func (h *TransformHelper) DragEnd() {
	h.resetSession()
	if h.cursor != nil {
		h.cursor.SetDragType(workspace.DragTypeMove)
	}
	h.notify()
}

// ThresholdSnapLines are the candidate lines within the threshold of the
// last drag rect.
func (h *TransformHelper) ThresholdSnapLines() []*SnapLine {
	if !h.dragging {
		return nil
	}
	lines := append([]*SnapLine(nil), h.aroundSnapLines...)
	for _, line := range h.rulerSnapLines {
		if line.Closest() {
			lines = append(lines, line)
		}
	}
	h.aroundSpaceBlocks.Each(func(b *SpaceBlock) {
		if line := b.SnapLine(); line != nil && line.Closest() {
			lines = append(lines, line)
		}
	})
	return lines
}

// ClosestSnapLines keeps, per direction, the threshold line nearest to the
// pointer rect. On a tie the earlier line wins.
func (h *TransformHelper) ClosestSnapLines() []*SnapLine {
	if !h.dragging {
		return nil
	}
	cursorRect := h.CursorDragNodesRect()
	edges := h.snapEdges()
	var results []*SnapLine
	var distances []float64
	for _, line := range h.ThresholdSnapLines() {
		_, d := closestEdge(line.LineSegment, cursorRect, edges)
		if d >= Threshold {
			continue
		}
		replaced := false
		for i, kept := range results {
			if kept.Direction() != line.Direction() {
				continue
			}
			if d < distances[i] {
				results[i], distances[i] = line, d
			}
			replaced = true
			break
		}
		if !replaced {
			results = append(results, line)
			distances = append(distances, d)
		}
	}
	return results
}

// ThresholdSpaceBlocks are the around blocks whose equal-spacing line is in
// range, together with their isometric partners.
func (h *TransformHelper) ThresholdSpaceBlocks() []*SpaceBlock {
	if !h.dragging {
		return nil
	}
	var results []*SpaceBlock
	h.aroundSpaceBlocks.Each(func(b *SpaceBlock) {
		if line := b.SnapLine(); line != nil && line.Closest() {
			results = appendBlocks(results, b)
			results = appendBlocks(results, b.Isometrics()...)
		}
	})
	return results
}

// ClosestSpaceBlocks are the around blocks whose line made it into
// ClosestSnapLines, with their isometric partners.
func (h *TransformHelper) ClosestSpaceBlocks() []*SpaceBlock {
	if !h.dragging {
		return nil
	}
	closest := make(map[*SnapLine]bool)
	for _, line := range h.ClosestSnapLines() {
		closest[line] = true
	}
	var results []*SpaceBlock
	h.aroundSpaceBlocks.Each(func(b *SpaceBlock) {
		if line := b.SnapLine(); line != nil && closest[line] {
			results = appendBlocks(results, b)
			results = appendBlocks(results, b.Isometrics()...)
		}
	})
	return results
}

// MeasurerSpaceBlocks are every around block, once a snap has happened.
func (h *TransformHelper) MeasurerSpaceBlocks() []*SpaceBlock {
	if !h.dragging || !h.snapped {
		return nil
	}
	var results []*SpaceBlock
	h.aroundSpaceBlocks.Each(func(b *SpaceBlock) {
		results = append(results, b)
	})
	return results
}

func appendBlocks(list []*SpaceBlock, blocks ...*SpaceBlock) []*SpaceBlock {
	for _, b := range blocks {
		dup := false
		for _, existing := range list {
			if existing == b {
				dup = true
				break
			}
		}
		if !dup {
			list = append(list, b)
		}
	}
	return list
}

func (h *TransformHelper) baseTranslate(node *tree.Node) geometry.Point {
	start := h.dragStartTranslateStore[node.ID]
	d := h.delta()
	return geometry.Point{X: start.X + d.X, Y: start.Y + d.Y}
}

func (h *TransformHelper) baseResize(node *tree.Node, dir Direction) geometry.Rect {
	start := h.dragStartTranslateStore[node.ID]
	size := h.dragStartSizeStore[node.ID]
	r := geometry.Rect{X: start.X, Y: start.Y, Width: size.Width, Height: size.Height}
	return dir.Apply(r, h.delta())
}

// Translate hands handler the node's translate for the current pointer,
// pulled onto the closest snap lines. A snap triggers an immediate
// DragMove so the new position can expose further alignments.
func (h *TransformHelper) Translate(node *tree.Node, handler func(geometry.Point)) {
	if !h.dragging || node == nil {
		return
	}
	if _, ok := h.transform.(TranslateTransform); !ok {
		return
	}
	target := h.baseTranslate(node)
	h.snapped = false
	h.snapping = false

	cursorRect := h.CursorDragNodesRect()
	h.snappedRect = cursorRect
	for _, line := range h.ClosestSnapLines() {
		if !line.Translate(node, &target) {
			continue
		}
		if e, shift, ok := line.snap(cursorRect); ok {
			h.snappedRect = applyEdgeShift(h.snappedRect, e, shift, false)
		}
		h.snapping = true
		h.snapped = true
	}
	if handler != nil {
		handler(target)
	}
	if h.snapping {
		h.DragMove()
		h.snapping = false
	}
}

// Resize is Translate for resize sessions: handler gets the node's rect
// with the moving edges pulled onto the closest snap lines.
func (h *TransformHelper) Resize(node *tree.Node, handler func(geometry.Rect)) {
	if !h.dragging || node == nil {
		return
	}
	rt, ok := h.transform.(ResizeTransform)
	if !ok {
		return
	}
	target := h.baseResize(node, rt.Direction)
	h.snapped = false
	h.snapping = false

	cursorRect := h.CursorDragNodesRect()
	h.snappedRect = cursorRect
	for _, line := range h.ClosestSnapLines() {
		if !line.Resize(node, &target) {
			continue
		}
		if e, shift, ok := line.snap(cursorRect); ok {
			h.snappedRect = applyEdgeShift(h.snappedRect, e, shift, true)
		}
		h.snapping = true
		h.snapped = true
	}
	if handler != nil {
		handler(target)
	}
	if h.snapping {
		h.DragMove()
		h.snapping = false
	}
}

func (h *TransformHelper) FindRulerSnapLine(id string) *SnapLine {
	for _, line := range h.rulerSnapLines {
		if line.ID == id {
			return line
		}
	}
	return nil
}

// AddRulerSnapLine adds a user guide. Segments that are not axis-aligned,
// and ids already present, are ignored.
func (h *TransformHelper) AddRulerSnapLine(id string, seg geometry.LineSegment) bool {
	if !geometry.IsLineSegment(seg) || h.FindRulerSnapLine(id) != nil {
		return false
	}
	line := newSnapLine(h, seg, SourceRuler, 0)
	line.ID = id
	if h.dragging {
		_, line.Distance = closestEdge(seg, h.dragNodesRect, h.snapEdges())
	} else {
		line.Distance = Threshold
	}
	h.rulerSnapLines = append(h.rulerSnapLines, line)
	return true
}

func (h *TransformHelper) RemoveRulerSnapLine(id string) bool {
	for i, line := range h.rulerSnapLines {
		if line.ID == id {
			h.rulerSnapLines = append(h.rulerSnapLines[:i], h.rulerSnapLines[i+1:]...)
			return true
		}
	}
	return false
}
