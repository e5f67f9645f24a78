// Package event carries abstract drag lifecycle events between the
// pointer driver, the transform helper and effects such as auto-scroll.
//
// A Bus is not safe for concurrent use. It belongs to the goroutine that
// owns the designer session, the same one that owns the transform helper.
package event

import "github.com/inamate/snapkit/internal/geometry"

type Type string

const (
	DragStart Type = "drag:start"
	DragMove  Type = "drag:move"
	DragStop  Type = "drag:stop"
)

// Event is a drag lifecycle signal. Point is the pointer position in
// client (top window) coordinates.
type Event struct {
	Type  Type
	Point geometry.Point
}

type Handler func(Event)

type subscription struct {
	id      int
	handler Handler
}

// Bus dispatches events synchronously, in subscription order.
type Bus struct {
	nextID   int
	handlers map[Type][]subscription
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[Type][]subscription)}
}

// Subscribe registers h for events of type t and returns a function that
// removes the registration.
func (b *Bus) Subscribe(t Type, h Handler) func() {
	b.nextID++
	id := b.nextID
	b.handlers[t] = append(b.handlers[t], subscription{id: id, handler: h})
	return func() {
		subs := b.handlers[t]
		for i, s := range subs {
			if s.id == id {
				b.handlers[t] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers e to every handler subscribed to its type.
func (b *Bus) Publish(e Event) {
	subs := append([]subscription(nil), b.handlers[e.Type]...)
	for _, s := range subs {
		s.handler(e)
	}
}
