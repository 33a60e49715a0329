// Package frame holds the records the window manager keeps for every
// decorated client and the registry that orders them.
package frame

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/fawm/internal/geometry"
)

// MaxTitleLen bounds the cached title in bytes.
const MaxTitleLen = 63

// Resources are the graphics contexts owned by a frame.
type Resources struct {
	Line      xproto.Gcontext
	Focused   xproto.Gcontext
	Unfocused xproto.Gcontext
}

// Frame is one managed client together with its decoration window.
type Frame struct {
	Window xproto.Window
	Child  xproto.Window

	Title        string
	DeleteWindow bool
	WidthInc     int
	HeightInc    int

	Hover     geometry.Control
	Focused   bool
	Minimized bool
	Maximized bool
	Restore   geometry.Rect

	// CloseRequested is set once WM_DELETE_WINDOW has been sent; the frame
	// goes away when the client destroys its window.
	CloseRequested bool

	// ClientBorder is the child's border width before it was framed.
	ClientBorder int

	Resources Resources
}

// New returns a frame with default size increments.
func New(window, child xproto.Window) *Frame {
	return &Frame{
		Window:    window,
		Child:     child,
		WidthInc:  1,
		HeightInc: 1,
	}
}

// SetTitle stores title, cut to MaxTitleLen bytes without splitting a
// UTF-8 sequence.
func (f *Frame) SetTitle(title string) {
	if len(title) <= MaxTitleLen {
		f.Title = title
		return
	}
	cut := MaxTitleLen
	for cut > 0 && title[cut]&0xC0 == 0x80 {
		cut--
	}
	f.Title = title[:cut]
}

// SetIncrements stores resize increments, treating non-positive values as 1.
func (f *Frame) SetIncrements(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	f.WidthInc = w
	f.HeightInc = h
}

// Increments returns the resize increments as a size.
func (f *Frame) Increments() geometry.Size {
	return geometry.Size{Width: f.WidthInc, Height: f.HeightInc}
}
