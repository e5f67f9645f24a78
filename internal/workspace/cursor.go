package workspace

import "github.com/inamate/snapkit/internal/geometry"

// DragType drives the cursor icon while a transform is active.
type DragType string

const (
	DragTypeMove      DragType = "MOVE"
	DragTypeTranslate DragType = "TRANSLATE"
	DragTypeResize    DragType = "RESIZE"
	DragTypeRotate    DragType = "ROTATE"
	DragTypeScale     DragType = "SCALE"
	DragTypeRound     DragType = "ROUND"
)

type Status string

const (
	StatusNormal    Status = "NORMAL"
	StatusDragStart Status = "DRAG_START"
	StatusDragging  Status = "DRAGGING"
	StatusDragStop  Status = "DRAG_STOP"
)

// Cursor tracks the pointer in canvas offset coordinates.
type Cursor struct {
	status            Status
	dragType          DragType
	position          geometry.Point
	dragStartPosition geometry.Point
}

func NewCursor() *Cursor {
	return &Cursor{status: StatusNormal, dragType: DragTypeMove}
}

func (c *Cursor) Status() Status                    { return c.status }
func (c *Cursor) SetStatus(s Status)                { c.status = s }
func (c *Cursor) Position() geometry.Point          { return c.position }
func (c *Cursor) SetPosition(p geometry.Point)      { c.position = p }
func (c *Cursor) DragStartPosition() geometry.Point { return c.dragStartPosition }
func (c *Cursor) DragType() DragType                { return c.dragType }
func (c *Cursor) SetDragType(t DragType)            { c.dragType = t }

// SetDragStartPosition anchors a drag at p and moves the pointer there.
func (c *Cursor) SetDragStartPosition(p geometry.Point) {
	c.dragStartPosition = p
	c.position = p
}

// DragStartToCurrentDelta is the pointer travel since the drag started.
func (c *Cursor) DragStartToCurrentDelta() geometry.Point {
	return geometry.Point{
		X: c.position.X - c.dragStartPosition.X,
		Y: c.position.Y - c.dragStartPosition.Y,
	}
}
