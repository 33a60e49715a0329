package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// ErrAnotherWM is returned by BecomeWM when another client already
// redirects the root window's substructure.
var ErrAnotherWM = errors.New("another window manager is already running")

// RootEventMask is selected on the root window by BecomeWM.
const RootEventMask = xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskButton1Motion

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	cursors map[uint16]xproto.Cursor
}

// NewConnection connects to display, or to $DISPLAY when it is empty.
func NewConnection(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, err
	}

	return &Connection{
		XUtil:   xu,
		Root:    xu.RootWin(),
		cursors: make(map[uint16]xproto.Cursor),
	}, nil
}

// Conn returns the raw xgb connection.
func (c *Connection) Conn() *xgb.Conn {
	return c.XUtil.Conn()
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// ScreenSize returns the root window size.
func (c *Connection) ScreenSize() (int, int) {
	s := c.XUtil.Screen()
	return int(s.WidthInPixels), int(s.HeightInPixels)
}

// BlackPixel returns the screen's black pixel value.
func (c *Connection) BlackPixel() uint32 {
	return c.XUtil.Screen().BlackPixel
}

// BecomeWM selects substructure redirection on the root window. Only one
// client may hold it, so an access error means another window manager owns
// the display.
func (c *Connection) BecomeWM() error {
	err := xproto.ChangeWindowAttributesChecked(c.Conn(), c.Root,
		xproto.CwEventMask, []uint32{RootEventMask}).Check()
	if err != nil {
		if _, ok := err.(xproto.AccessError); ok {
			return ErrAnotherWM
		}
		return fmt.Errorf("select root events: %w", err)
	}
	return nil
}

// RootGeometry queries the root window's current size.
func (c *Connection) RootGeometry() (int, int, error) {
	g, err := xwindow.New(c.XUtil, c.Root).Geometry()
	if err != nil {
		return 0, 0, err
	}
	return g.Width(), g.Height(), nil
}

// Cursor returns the cursor-font cursor for glyph, creating it on first use.
func (c *Connection) Cursor(glyph uint16) (xproto.Cursor, error) {
	if cur, ok := c.cursors[glyph]; ok {
		return cur, nil
	}
	cur, err := xcursor.CreateCursor(c.XUtil, glyph)
	if err != nil {
		return 0, fmt.Errorf("create cursor %d: %w", glyph, err)
	}
	c.cursors[glyph] = cur
	return cur, nil
}

// AtomName resolves an atom to its name. xgbutil caches the answer.
func (c *Connection) AtomName(atom xproto.Atom) (string, error) {
	return xprop.AtomName(c.XUtil, atom)
}
