package workspace

import "github.com/inamate/snapkit/internal/geometry"

// Viewport is a scrollable window onto the layout canvas. Rect is in client
// coordinates; Scroll is the content offset shown at Rect's origin.
type Viewport struct {
	Rect        geometry.Rect
	Scroll      geometry.Point
	ContentSize geometry.Size

	dragStartScroll geometry.Point
	onScroll        []func(geometry.Point)
}

func NewViewport(rect geometry.Rect, content geometry.Size) *Viewport {
	return &Viewport{Rect: rect, ContentSize: content}
}

func (v *Viewport) IsPointInViewport(p geometry.Point) bool {
	return v != nil && !v.Rect.IsEmpty() && v.Rect.Contains(p)
}

// IsRectInViewport reports whether any part of a client rect is visible.
func (v *Viewport) IsRectInViewport(r geometry.Rect) bool {
	return v != nil && !v.Rect.IsEmpty() && v.Rect.Intersects(r)
}

// GetOffsetPoint converts a client point into canvas offset coordinates.
func (v *Viewport) GetOffsetPoint(p geometry.Point) geometry.Point {
	return geometry.Point{
		X: p.X - v.Rect.X + v.Scroll.X,
		Y: p.Y - v.Rect.Y + v.Scroll.Y,
	}
}

// ClientRect converts a canvas offset rect into client coordinates.
func (v *Viewport) ClientRect(offset geometry.Rect) geometry.Rect {
	return offset.Offset(v.Rect.X-v.Scroll.X, v.Rect.Y-v.Scroll.Y)
}

func (v *Viewport) TakeDragStartSnapshot() {
	v.dragStartScroll = v.Scroll
}

// DragScrollDelta is how far the content scrolled since the drag started.
func (v *Viewport) DragScrollDelta() geometry.Point {
	return geometry.Point{
		X: v.Scroll.X - v.dragStartScroll.X,
		Y: v.Scroll.Y - v.dragStartScroll.Y,
	}
}

// ScrollBy moves the content offset, clamped to the scrollable range,
// and notifies scroll observers when it changed.
func (v *Viewport) ScrollBy(dx, dy float64) {
	next := geometry.Point{
		X: clamp(v.Scroll.X+dx, 0, max(v.ContentSize.Width-v.Rect.Width, 0)),
		Y: clamp(v.Scroll.Y+dy, 0, max(v.ContentSize.Height-v.Rect.Height, 0)),
	}
	if next == v.Scroll {
		return
	}
	v.Scroll = next
	for _, fn := range v.onScroll {
		fn(next)
	}
}

// OnScroll registers fn to run after every effective scroll.
func (v *Viewport) OnScroll(fn func(geometry.Point)) {
	v.onScroll = append(v.onScroll, fn)
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
