package geometry

// Decoration holds the fixed sizes of frame decorations. TitleHeight comes
// from the title font and the rest from configuration; all of them stay
// constant for a session.
type Decoration struct {
	BorderSize       int
	ClientBorderSize int
	FrameSize        int
	TitleHeight      int
	CornerSize       int
}

// ExtraWidth is what a frame adds to its child's width, client border included.
func (d Decoration) ExtraWidth() int {
	return 2 * (d.FrameSize + d.ClientBorderSize)
}

// ExtraHeight is what a frame adds to its child's height, client border included.
func (d Decoration) ExtraHeight() int {
	return d.TitleHeight + 3*d.FrameSize + 2*d.ClientBorderSize
}

// OuterSize returns the frame size that wraps a child of the given size.
func (d Decoration) OuterSize(childWidth, childHeight int) Size {
	return Size{
		Width:  childWidth + d.ExtraWidth(),
		Height: childHeight + d.ExtraHeight(),
	}
}

// InnerSize returns the child size that fits a frame of the given size.
func (d Decoration) InnerSize(frameWidth, frameHeight int) Size {
	return Size{
		Width:  frameWidth - d.ExtraWidth(),
		Height: frameHeight - d.ExtraHeight(),
	}
}

// ChildOffset is where the child sits inside its frame.
func (d Decoration) ChildOffset() (int, int) {
	return d.FrameSize, 2*d.FrameSize + d.TitleHeight
}

// MinFrameSize is the smallest frame that still shows the title controls,
// the corners and a one pixel child.
func (d Decoration) MinFrameSize() Size {
	w := 2*d.CornerSize + 1
	if controls := 3*d.TitleHeight + 2*d.FrameSize; controls > w {
		w = controls
	}
	h := 2*d.CornerSize + 1
	if inner := d.ExtraHeight() + 1; inner > h {
		h = inner
	}
	return Size{Width: w, Height: h}
}

// Control is a title bar button.
type Control int

const (
	ControlNone Control = iota
	ControlMinimize
	ControlMaximize
	ControlClose
)

func (c Control) String() string {
	switch c {
	case ControlMinimize:
		return "minimize"
	case ControlMaximize:
		return "maximize"
	case ControlClose:
		return "close"
	}
	return "none"
}

// ControlRect returns the square occupied by c in a frame of the given width.
// Minimize, maximize and close sit right-aligned in that order.
func (d Decoration) ControlRect(frameWidth int, c Control) Rect {
	size := d.TitleHeight
	slot := 3 - int(c) + 1
	return Rect{
		X:      frameWidth - d.FrameSize - slot*size,
		Y:      d.FrameSize,
		Width:  size,
		Height: size,
	}
}

// DetectControl returns the title bar button under the frame-local point.
func (d Decoration) DetectControl(frameWidth, x, y int) Control {
	size := d.TitleHeight
	if y < d.FrameSize || y >= d.FrameSize+size {
		return ControlNone
	}
	switch {
	case x < frameWidth-(3*size+d.FrameSize):
		return ControlNone
	case x < frameWidth-(2*size+d.FrameSize):
		return ControlMinimize
	case x < frameWidth-(size+d.FrameSize):
		return ControlMaximize
	case x < frameWidth-d.FrameSize:
		return ControlClose
	}
	return ControlNone
}
