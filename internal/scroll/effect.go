package scroll

import (
	"github.com/inamate/snapkit/internal/event"
	"github.com/inamate/snapkit/internal/geometry"
	"github.com/inamate/snapkit/internal/workspace"
)

type Workbench interface {
	EachWorkspace(fn func(*workspace.Workspace))
}

type CursorStatus interface {
	Status() workspace.Status
}

type Options struct {
	MaxSpeed float64
	Easing   Easing
}

// AutoScroll scrolls the viewport (or outline) under the pointer while a
// drag sits in its edge zone. At most one animation runs per axis.
type AutoScroll struct {
	workbench Workbench
	cursor    CursorStatus
	animate   AnimateFunc
	opts      Options

	xScroller *BasicInfo
	yScroller *BasicInfo
	xStop     func()
	yStop     func()

	unsubscribe []func()
}

// NewAutoScroll subscribes the effect to the drag events on bus.
func NewAutoScroll(bus *event.Bus, wb Workbench, cursor CursorStatus, animate AnimateFunc, opts Options) *AutoScroll {
	if opts.MaxSpeed <= 0 {
		opts.MaxSpeed = DefaultMaxSpeed
	}
	if opts.Easing == "" {
		opts.Easing = EasingEaseIn
	}
	a := &AutoScroll{workbench: wb, cursor: cursor, animate: animate, opts: opts}
	a.unsubscribe = []func(){
		bus.Subscribe(event.DragStart, a.onDragStart),
		bus.Subscribe(event.DragMove, a.onDragMove),
		bus.Subscribe(event.DragStop, a.onDragStop),
	}
	return a
}

// Scrolling reports which axes have a running animation.
func (a *AutoScroll) Scrolling() (x, y bool) {
	return a.xStop != nil, a.yStop != nil
}

func (a *AutoScroll) onDragStart(event.Event) {
	a.workbench.EachWorkspace(func(ws *workspace.Workspace) {
		if ws.Viewport != nil {
			ws.Viewport.TakeDragStartSnapshot()
		}
		if ws.Outline != nil {
			ws.Outline.TakeDragStartSnapshot()
		}
	})
}

func (a *AutoScroll) onDragMove(e event.Event) {
	a.workbench.EachWorkspace(func(ws *workspace.Workspace) {
		switch {
		case ws.Outline.IsPointInViewport(e.Point):
			a.scrolling(e.Point, ws.Outline)
		case ws.Viewport.IsPointInViewport(e.Point):
			a.scrolling(e.Point, ws.Viewport)
		}
	})
}

func (a *AutoScroll) scrolling(p geometry.Point, v *workspace.Viewport) {
	if a.cursor != nil && a.cursor.Status() != workspace.StatusDragging {
		return
	}
	a.xScroller = CalcAutoScrollBasicInfo(p, AxisX, v.Rect, a.opts.MaxSpeed, a.opts.Easing)
	a.yScroller = CalcAutoScrollBasicInfo(p, AxisY, v.Rect, a.opts.MaxSpeed, a.opts.Easing)

	a.stopX()
	if a.xScroller != nil {
		a.xStop = a.animate(v, AxisX, a.xScroller.Direction, a.xScroller.Speed)
	}
	a.stopY()
	if a.yScroller != nil {
		a.yStop = a.animate(v, AxisY, a.yScroller.Direction, a.yScroller.Speed)
	}
}

func (a *AutoScroll) onDragStop(event.Event) {
	a.xScroller = nil
	a.yScroller = nil
	a.stopX()
	a.stopY()
}

func (a *AutoScroll) stopX() {
	if a.xStop != nil {
		a.xStop()
		a.xStop = nil
	}
}

func (a *AutoScroll) stopY() {
	if a.yStop != nil {
		a.yStop()
		a.yStop = nil
	}
}

// Close stops any running animation and leaves the bus.
func (a *AutoScroll) Close() {
	a.onDragStop(event.Event{Type: event.DragStop})
	for _, unsub := range a.unsubscribe {
		unsub()
	}
	a.unsubscribe = nil
}
