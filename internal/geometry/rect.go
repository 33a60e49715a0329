package geometry

// Rect is a window rectangle in its parent's coordinates. Width and Height
// exclude the X border.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Size is a width/height pair.
type Size struct {
	Width  int
	Height int
}

func (r Rect) Right() int  { return r.X + r.Width }
func (r Rect) Bottom() int { return r.Y + r.Height }

// Contains reports whether (x, y) lies inside r. The right and bottom edges
// are exclusive.
func (r Rect) Contains(x, y int) bool {
	return inRegion(r.X, r.Y, r.Width, r.Height, x, y)
}

// FloorToIncrement truncates delta toward zero to a multiple of inc.
func FloorToIncrement(delta, inc int) int {
	if inc <= 1 {
		return delta
	}
	return (delta / inc) * inc
}

// Resize computes the frame rectangle produced by dragging zone by (dx, dy)
// from origin. Edges that are not grasped stay where they were. Size deltas
// are snapped to inc, and the result never shrinks below min.
func Resize(zone Zone, origin Rect, dx, dy int, inc, min Size) Rect {
	r := origin
	switch zone {
	case ZoneTitleBar:
		r.X += dx
		r.Y += dy
		return r
	case ZoneNone:
		return r
	}

	switch zone {
	case ZoneNorthWest, ZoneWest, ZoneSouthWest:
		sx := FloorToIncrement(dx, inc.Width)
		r.X += sx
		r.Width -= sx
		if r.Width < min.Width {
			r.Width = min.Width
			r.X = origin.Right() - min.Width
		}
	case ZoneNorthEast, ZoneEast, ZoneSouthEast:
		r.Width += FloorToIncrement(dx, inc.Width)
		if r.Width < min.Width {
			r.Width = min.Width
		}
	}

	switch zone {
	case ZoneNorthWest, ZoneNorth, ZoneNorthEast:
		sy := FloorToIncrement(dy, inc.Height)
		r.Y += sy
		r.Height -= sy
		if r.Height < min.Height {
			r.Height = min.Height
			r.Y = origin.Bottom() - min.Height
		}
	case ZoneSouthWest, ZoneSouth, ZoneSouthEast:
		r.Height += FloorToIncrement(dy, inc.Height)
		if r.Height < min.Height {
			r.Height = min.Height
		}
	}
	return r
}

// ClampPopup places a w×h popup next to the pointer at (x, y): below and to
// the right when it fits, flipped left or up when it would cross the right
// or bottom screen edge.
func ClampPopup(x, y, w, h, screenW, screenH int) (int, int) {
	px := x
	py := y + 1
	if screenW < px+w {
		px = x - w
	}
	if screenH < py+h {
		py = y - h - 1
	}
	if px < 0 {
		px = 0
	}
	if py < 0 {
		py = 0
	}
	return px, py
}
