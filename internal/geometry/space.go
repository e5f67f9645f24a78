package geometry

// Side names the side of a source rect on which a neighbor sits.
type Side string

const (
	SideTop    Side = "top"
	SideRight  Side = "right"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
)

// Sides lists every side in a stable order.
var Sides = [4]Side{SideTop, SideRight, SideBottom, SideLeft}

// Space is the gap between a source rect and a neighbor on one side.
// Rect spans the gap itself and covers both rects along the other axis.
type Space struct {
	Side     Side
	Distance float64
	Rect     Rect
}

// SpaceOfRect measures the gap from source to target. Targets that overlap
// source, or sit diagonally to it, have no space and report false.
func SpaceOfRect(source, target Rect) (Space, bool) {
	above := target.Bottom() < source.Top()
	below := target.Top() > source.Bottom()
	leftOf := target.Right() < source.Left()
	rightOf := target.Left() > source.Right()

	if (above || below) && (leftOf || rightOf) {
		return Space{}, false
	}

	switch {
	case below:
		d := target.Top() - source.Bottom()
		left := min(source.Left(), target.Left())
		right := max(source.Right(), target.Right())
		return Space{Side: SideBottom, Distance: d, Rect: Rect{left, source.Bottom(), right - left, d}}, true
	case above:
		d := source.Top() - target.Bottom()
		left := min(source.Left(), target.Left())
		right := max(source.Right(), target.Right())
		return Space{Side: SideTop, Distance: d, Rect: Rect{left, target.Bottom(), right - left, d}}, true
	case leftOf:
		d := source.Left() - target.Right()
		top := min(source.Top(), target.Top())
		bottom := max(source.Bottom(), target.Bottom())
		return Space{Side: SideLeft, Distance: d, Rect: Rect{target.Right(), top, d, bottom - top}}, true
	case rightOf:
		d := target.Left() - source.Right()
		top := min(source.Top(), target.Top())
		bottom := max(source.Bottom(), target.Bottom())
		return Space{Side: SideRight, Distance: d, Rect: Rect{source.Right(), top, d, bottom - top}}, true
	}
	return Space{}, false
}
