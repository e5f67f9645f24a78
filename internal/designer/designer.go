// Package designer is the command/query facade over one editing session:
// it owns the document tree, the workspace viewport, the cursor, the
// transform helper and the auto-scroll effect, and turns pointer commands
// into per-frame transform updates.
package designer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/inamate/snapkit/internal/engine"
	"github.com/inamate/snapkit/internal/event"
	"github.com/inamate/snapkit/internal/frame"
	"github.com/inamate/snapkit/internal/geometry"
	"github.com/inamate/snapkit/internal/scroll"
	"github.com/inamate/snapkit/internal/tree"
	"github.com/inamate/snapkit/internal/workspace"
)

type Options struct {
	WorkspaceID    string
	MaxScrollSpeed float64
	ScrollEasing   scroll.Easing
}

// Designer is not safe for concurrent use; one goroutine owns it.
type Designer struct {
	tree *tree.Tree

	bus       *event.Bus
	loop      *frame.Loop
	moves     *frame.Coalescer
	workbench *workspace.Workbench
	cursor    *workspace.Cursor
	helper    *engine.TransformHelper
	scroller  *scroll.AutoScroll
	opts      Options

	// lastClient is the last pointer position in client coordinates.
	lastClient geometry.Point
	guides     []Guide
	onChange   []func()
}

// Guide is a ruler line placed by the user.
type Guide struct {
	ID    string         `json:"id"`
	Start geometry.Point `json:"start"`
	End   geometry.Point `json:"end"`
}

func New(opts Options) *Designer {
	if opts.WorkspaceID == "" {
		opts.WorkspaceID = "default"
	}
	d := &Designer{
		bus:       event.NewBus(),
		loop:      frame.NewLoop(),
		workbench: workspace.NewWorkbench(),
		cursor:    workspace.NewCursor(),
		opts:      opts,
	}
	d.moves = frame.NewCoalescer(d.loop)
	d.workbench.Add(&workspace.Workspace{
		ID:       opts.WorkspaceID,
		Viewport: workspace.NewViewport(geometry.Rect{}, geometry.Size{}),
	})
	d.scroller = scroll.NewAutoScroll(d.bus, d.workbench, d.cursor, scroll.Animator(d.loop), scroll.Options{
		MaxSpeed: opts.MaxScrollSpeed,
		Easing:   opts.ScrollEasing,
	})
	d.viewport().OnScroll(d.onScroll)
	return d
}

func (d *Designer) viewport() *workspace.Viewport {
	return d.workbench.Current().Viewport
}

// --- Commands ---

// LoadDocument replaces the document from JSON. Any drag is dropped; ruler
// guides are kept.
func (d *Designer) LoadDocument(jsonData string) error {
	var doc tree.Document
	if err := json.Unmarshal([]byte(jsonData), &doc); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return d.setDocument(&doc)
}

// LoadSampleDocument loads the built-in sample page.
func (d *Designer) LoadSampleDocument(docID string) {
	_ = d.setDocument(tree.NewSampleDocument(docID))
}

func (d *Designer) setDocument(doc *tree.Document) error {
	t, err := tree.Build(doc)
	if err != nil {
		return fmt.Errorf("build tree: %w", err)
	}
	if d.helper != nil && d.helper.Dragging() {
		d.DragStop()
	}
	d.tree = t
	d.helper = engine.NewTransformHelper(t, d.cursor, d.viewport())
	d.helper.Observe(d.changed)
	for _, g := range d.guides {
		d.helper.AddRulerSnapLine(g.ID, geometry.LineSegment{Start: g.Start, End: g.End})
	}

	vp := d.viewport()
	vp.ContentSize = geometry.Size{Width: doc.Width, Height: doc.Height}
	if vp.Rect.IsEmpty() {
		vp.Rect = geometry.Rect{Width: doc.Width, Height: doc.Height}
	}
	d.changed()
	return nil
}

// SetViewport places the canvas viewport in client coordinates and
// scrolls it to the given content offset.
func (d *Designer) SetViewport(rect geometry.Rect, scrollTo geometry.Point) {
	vp := d.viewport()
	vp.Rect = rect
	vp.ScrollBy(scrollTo.X-vp.Scroll.X, scrollTo.Y-vp.Scroll.Y)
}

// SetOutline places the outline panel, which auto-scrolls before the
// canvas when the pointer is over it.
func (d *Designer) SetOutline(rect geometry.Rect, content geometry.Size) {
	d.workbench.Current().Outline = workspace.NewViewport(rect, content)
}

// DragStart begins a transform of the given nodes at a client point. A live
// drag is stopped first. When none of the nodes can take the transform the
// call is a no-op and any live drag keeps running.
func (d *Designer) DragStart(kind, direction string, nodeIDs []string, client geometry.Point) error {
	if d.tree == nil {
		return fmt.Errorf("drag start: %w", tree.ErrNoRoot)
	}
	t, err := engine.ParseTransform(kind, direction)
	if err != nil {
		return fmt.Errorf("drag start: %w", err)
	}
	nodes := d.helper.Draggable(t, d.tree.FindAll(nodeIDs))
	if len(nodes) == 0 {
		return nil
	}
	if d.helper.Dragging() {
		d.DragStop()
	}
	d.lastClient = client
	d.cursor.SetDragStartPosition(d.viewport().GetOffsetPoint(client))
	d.cursor.SetStatus(workspace.StatusDragStart)
	d.helper.DragStart(t, nodes)
	d.bus.Publish(event.Event{Type: event.DragStart, Point: client})
	d.cursor.SetStatus(workspace.StatusDragging)
	return nil
}

// DragMove records the pointer. The transform is applied on the next
// frame; only the latest move of a frame is applied.
func (d *Designer) DragMove(client geometry.Point) {
	if d.helper == nil || !d.helper.Dragging() {
		return
	}
	d.lastClient = client
	d.cursor.SetPosition(d.viewport().GetOffsetPoint(client))
	d.bus.Publish(event.Event{Type: event.DragMove, Point: client})
	d.moves.Schedule(d.applyMove)
}

// DragStop applies any pending move and ends the session.
func (d *Designer) DragStop() {
	if d.helper == nil || !d.helper.Dragging() {
		return
	}
	d.moves.Flush()
	d.cursor.SetStatus(workspace.StatusDragStop)
	d.bus.Publish(event.Event{Type: event.DragStop, Point: d.lastClient})
	d.helper.DragEnd()
	d.cursor.SetStatus(workspace.StatusNormal)
}

// onScroll keeps the pointer anchored in client space while the content
// scrolls under it, so a drag follows auto-scroll.
func (d *Designer) onScroll(geometry.Point) {
	if d.helper == nil || !d.helper.Dragging() {
		return
	}
	d.cursor.SetPosition(d.viewport().GetOffsetPoint(d.lastClient))
	if !d.moves.Pending() {
		d.moves.Schedule(d.applyMove)
	}
}

func (d *Designer) applyMove() {
	if !d.helper.Dragging() {
		return
	}
	d.helper.DragMove()
	for _, node := range d.helper.DragNodes() {
		switch d.helper.Transform().(type) {
		case engine.TranslateTransform:
			d.helper.Translate(node, func(p geometry.Point) { node.Translate = p })
		case engine.ResizeTransform:
			d.helper.Resize(node, node.SetRect)
		}
	}
}

// Tick advances one animation frame: pending moves and scroll animations
// run here.
func (d *Designer) Tick(now time.Time) {
	d.loop.Tick(now)
}

// AddGuide places a ruler guide. It reports false for slanted segments and
// ids already in use.
func (d *Designer) AddGuide(g Guide) bool {
	for _, existing := range d.guides {
		if existing.ID == g.ID {
			return false
		}
	}
	seg := geometry.LineSegment{Start: g.Start, End: g.End}
	if !geometry.IsLineSegment(seg) {
		return false
	}
	d.guides = append(d.guides, g)
	if d.helper != nil {
		d.helper.AddRulerSnapLine(g.ID, seg)
	}
	d.changed()
	return true
}

func (d *Designer) RemoveGuide(id string) bool {
	for i, g := range d.guides {
		if g.ID == id {
			d.guides = append(d.guides[:i], d.guides[i+1:]...)
			if d.helper != nil {
				d.helper.RemoveRulerSnapLine(id)
			}
			d.changed()
			return true
		}
	}
	return false
}

func (d *Designer) Guides() []Guide {
	return append([]Guide(nil), d.guides...)
}

// OnChange registers fn to run whenever visible state changes.
func (d *Designer) OnChange(fn func()) {
	d.onChange = append(d.onChange, fn)
}

func (d *Designer) changed() {
	for _, fn := range d.onChange {
		fn()
	}
}

// Close stops the auto-scroll effect and any pending frame work.
func (d *Designer) Close() {
	d.moves.Cancel()
	d.scroller.Close()
}
