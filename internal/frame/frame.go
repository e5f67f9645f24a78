// Package frame emulates a display's animation-frame callbacks. A Loop is
// advanced by Tick, usually from a ticker owned by the same goroutine that
// owns the rest of the session state.
package frame

import (
	"sort"
	"time"
)

type Callback func(now time.Time)

// Loop holds callbacks waiting for the next frame.
type Loop struct {
	nextID  int
	pending map[int]Callback
}

func NewLoop() *Loop {
	return &Loop{pending: make(map[int]Callback)}
}

// RequestFrame schedules cb for the next Tick and returns a handle for
// CancelFrame.
func (l *Loop) RequestFrame(cb Callback) int {
	l.nextID++
	l.pending[l.nextID] = cb
	return l.nextID
}

// CancelFrame drops a pending callback. Unknown handles are ignored.
func (l *Loop) CancelFrame(id int) {
	delete(l.pending, id)
}

// Pending reports how many callbacks wait for the next frame.
func (l *Loop) Pending() int {
	return len(l.pending)
}

// Tick runs every callback requested before this call, in request order.
// Callbacks requested while ticking wait for the following Tick. A callback
// canceled by an earlier one in the same frame does not run.
func (l *Loop) Tick(now time.Time) {
	if len(l.pending) == 0 {
		return
	}
	ids := make([]int, 0, len(l.pending))
	for id := range l.pending {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		cb, ok := l.pending[id]
		if !ok {
			continue
		}
		delete(l.pending, id)
		cb(now)
	}
}

// Coalescer keeps at most one pending callback: scheduling again before the
// frame fires replaces the previous one (last event wins per frame).
type Coalescer struct {
	loop *Loop
	id   int
}

func NewCoalescer(loop *Loop) *Coalescer {
	return &Coalescer{loop: loop}
}

func (c *Coalescer) Schedule(fn func()) {
	c.Cancel()
	c.id = c.loop.RequestFrame(func(time.Time) {
		c.id = 0
		fn()
	})
}

// Pending reports whether a callback waits for the next frame.
func (c *Coalescer) Pending() bool {
	return c.id != 0
}

func (c *Coalescer) Cancel() {
	if c.id != 0 {
		c.loop.CancelFrame(c.id)
		c.id = 0
	}
}

// Flush runs the pending callback immediately, if any.
func (c *Coalescer) Flush() {
	if c.id == 0 {
		return
	}
	id := c.id
	if cb, ok := c.loop.pending[id]; ok {
		c.loop.CancelFrame(id)
		cb(time.Now())
	}
}
