package workspace

import (
	"testing"

	"github.com/inamate/snapkit/internal/geometry"
)

func TestViewport_Coordinates(t *testing.T) {
	v := NewViewport(geometry.Rect{X: 100, Y: 50, Width: 800, Height: 600}, geometry.Size{Width: 2000, Height: 2000})
	v.Scroll = geometry.Point{X: 30, Y: 40}

	if got := v.GetOffsetPoint(geometry.Point{X: 110, Y: 60}); got != (geometry.Point{X: 40, Y: 50}) {
		t.Errorf("GetOffsetPoint() = %+v", got)
	}
	if got := v.ClientRect(geometry.Rect{X: 40, Y: 50, Width: 10, Height: 10}); got != (geometry.Rect{X: 110, Y: 60, Width: 10, Height: 10}) {
		t.Errorf("ClientRect() = %+v", got)
	}
}

func TestViewport_Visibility(t *testing.T) {
	v := NewViewport(geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100}, geometry.Size{})

	type tc struct {
		rect geometry.Rect
		want bool
	}

	tests := map[string]tc{
		"fully inside":   {rect: geometry.Rect{X: 10, Y: 10, Width: 10, Height: 10}, want: true},
		"partly inside":  {rect: geometry.Rect{X: 90, Y: 90, Width: 50, Height: 50}, want: true},
		"fully outside":  {rect: geometry.Rect{X: 200, Y: 0, Width: 10, Height: 10}, want: false},
		"above viewport": {rect: geometry.Rect{X: 0, Y: -50, Width: 10, Height: 10}, want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := v.IsRectInViewport(tt.rect); got != tt.want {
				t.Errorf("IsRectInViewport() = %v, want %v", got, tt.want)
			}
		})
	}

	var nilViewport *Viewport
	if nilViewport.IsPointInViewport(geometry.Point{}) {
		t.Error("nil viewport should contain nothing")
	}
}

func TestViewport_ScrollByClampsAndNotifies(t *testing.T) {
	v := NewViewport(geometry.Rect{Width: 100, Height: 100}, geometry.Size{Width: 300, Height: 150})
	var seen []geometry.Point
	v.OnScroll(func(p geometry.Point) { seen = append(seen, p) })

	v.TakeDragStartSnapshot()
	v.ScrollBy(250, 80)
	v.ScrollBy(10, 10)
	v.ScrollBy(-20, 0)

	if v.Scroll != (geometry.Point{X: 180, Y: 50}) {
		t.Errorf("Scroll = %+v, want {180 50}", v.Scroll)
	}
	if len(seen) != 2 {
		t.Errorf("notified %d times, want 2", len(seen))
	}
	if got := v.DragScrollDelta(); got != (geometry.Point{X: 180, Y: 50}) {
		t.Errorf("DragScrollDelta() = %+v", got)
	}
}

func TestCursor_Delta(t *testing.T) {
	c := NewCursor()
	if c.DragType() != DragTypeMove {
		t.Errorf("initial DragType() = %q", c.DragType())
	}
	c.SetDragStartPosition(geometry.Point{X: 10, Y: 10})
	c.SetPosition(geometry.Point{X: 25, Y: 5})
	if got := c.DragStartToCurrentDelta(); got != (geometry.Point{X: 15, Y: -5}) {
		t.Errorf("DragStartToCurrentDelta() = %+v", got)
	}
}

func TestWorkbench(t *testing.T) {
	wb := NewWorkbench()
	wb.Add(&Workspace{ID: "a"})
	wb.Add(&Workspace{ID: "b"})

	if wb.Current().ID != "b" {
		t.Errorf("Current() = %q, want b", wb.Current().ID)
	}
	if wb.Find("a") == nil || wb.Find("c") != nil {
		t.Error("Find() returned unexpected result")
	}
	n := 0
	wb.EachWorkspace(func(*Workspace) { n++ })
	if n != 2 {
		t.Errorf("EachWorkspace visited %d, want 2", n)
	}
}
