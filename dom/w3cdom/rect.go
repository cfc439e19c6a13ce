package w3cdom

import "fmt"

// DOMRect describes the size and position of a rectangle.
// https://drafts.fxtf.org/geometry/#DOMRect
type DOMRect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Top returns the top edge (y for positive height, y + height for negative).
func (r DOMRect) Top() float64 {
	if r.Height < 0 {
		return r.Y + r.Height
	}
	return r.Y
}

// Right returns the right edge.
func (r DOMRect) Right() float64 {
	if r.Width < 0 {
		return r.X
	}
	return r.X + r.Width
}

// Bottom returns the bottom edge.
func (r DOMRect) Bottom() float64 {
	if r.Height < 0 {
		return r.Y
	}
	return r.Y + r.Height
}

// Left returns the left edge.
func (r DOMRect) Left() float64 {
	if r.Width < 0 {
		return r.X + r.Width
	}
	return r.X
}

// IsEmpty is true for rects without area, e.g. of elements which are not rendered.
func (r DOMRect) IsEmpty() bool {
	return r.Width == 0 || r.Height == 0
}

func (r DOMRect) String() string {
	return fmt.Sprintf("DOMRect(x=%g y=%g w=%g h=%g)", r.X, r.Y, r.Width, r.Height)
}
