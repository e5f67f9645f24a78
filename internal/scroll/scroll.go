// Package scroll scrolls a viewport while a drag hovers near its edges.
package scroll

import (
	"time"

	"github.com/inamate/snapkit/internal/frame"
	"github.com/inamate/snapkit/internal/geometry"
)

type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// Position is the end of an axis the content scrolls toward.
type Position string

const (
	Begin Position = "begin"
	End   Position = "end"
)

// DefaultMaxSpeed is the scroll distance per frame at the very edge.
const DefaultMaxSpeed = 80.0

// BasicInfo describes a scroll the pointer asks for on one axis.
type BasicInfo struct {
	Direction   Position
	SpeedFactor float64
	Speed       float64
}

// CalcAutoScrollBasicInfo checks whether p lies in the edge zone of r on
// the given axis. The zone is 100 deep, or a third of r for small
// containers. It returns nil outside the zone.
func CalcAutoScrollBasicInfo(p geometry.Point, axis Axis, r geometry.Rect, maxSpeed float64, ease Easing) *BasicInfo {
	begin, end, pos := r.Left(), r.Right(), p.X
	if axis == AxisY {
		begin, end, pos = r.Top(), r.Bottom(), p.Y
	}
	size := end - begin
	if size <= 0 {
		return nil
	}
	zone := size / 3
	if size > 400 {
		zone = 100
	}

	var info BasicInfo
	switch {
	case end-pos < zone:
		info = BasicInfo{Direction: End, SpeedFactor: (zone - (end - pos)) / zone}
	case pos-begin < zone:
		info = BasicInfo{Direction: Begin, SpeedFactor: (zone - (pos - begin)) / zone}
	default:
		return nil
	}
	info.SpeedFactor = max(0, min(info.SpeedFactor, 1))
	info.Speed = maxSpeed * ease.Apply(info.SpeedFactor)
	return &info
}

// Container is anything that can be scrolled.
type Container interface {
	ScrollBy(dx, dy float64)
}

// Scheduler requests animation frames.
type Scheduler interface {
	RequestFrame(cb frame.Callback) int
	CancelFrame(id int)
}

// AnimateFunc starts a continuous scroll and returns the function that
// stops it.
type AnimateFunc func(c Container, axis Axis, dir Position, speed float64) func()

// Animate scrolls c by speed on every frame until the returned stop func
// is called. Calling stop more than once is harmless.
func Animate(s Scheduler, c Container, axis Axis, dir Position, speed float64) func() {
	step := speed
	if dir == Begin {
		step = -speed
	}
	stopped := false
	var id int
	var tick frame.Callback
	tick = func(time.Time) {
		if stopped {
			return
		}
		if axis == AxisX {
			c.ScrollBy(step, 0)
		} else {
			c.ScrollBy(0, step)
		}
		id = s.RequestFrame(tick)
	}
	id = s.RequestFrame(tick)
	return func() {
		if stopped {
			return
		}
		stopped = true
		s.CancelFrame(id)
	}
}

// Animator binds Animate to a scheduler.
func Animator(s Scheduler) AnimateFunc {
	return func(c Container, axis Axis, dir Position, speed float64) func() {
		return Animate(s, c, axis, dir, speed)
	}
}
