//go:build linux

package platform

import (
	"fmt"

	"github.com/1broseidon/fawm/internal/geometry"
	"github.com/1broseidon/fawm/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// X11Display wraps an existing X11 connection behind the Display interface.
type X11Display struct {
	conn *x11.Connection
}

var _ Display = (*X11Display)(nil)

// NewX11Display creates a Display from an existing X11 connection.
func NewX11Display(conn *x11.Connection) *X11Display {
	return &X11Display{conn: conn}
}

// Connection returns the wrapped connection.
func (d *X11Display) Connection() *x11.Connection {
	return d.conn
}

func (d *X11Display) Root() Window {
	return d.conn.Root
}

// ScreenSize prefers the root window's current geometry, which follows
// RandR resizes, over the size recorded at connection setup.
func (d *X11Display) ScreenSize() (int, int) {
	if w, h, err := d.conn.RootGeometry(); err == nil {
		return w, h
	}
	return d.conn.ScreenSize()
}

func (d *X11Display) BlackPixel() uint32 {
	return d.conn.BlackPixel()
}

// CreateWindow creates an InputOutput child of parent with the screen's
// depth and visual.
func (d *X11Display) CreateWindow(parent Window, r geometry.Rect, opts WindowOptions) (Window, error) {
	conn := d.conn.Conn()
	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate window id: %w", err)
	}

	screen := d.conn.XUtil.Screen()
	mask := uint32(xproto.CwBackPixel | xproto.CwBorderPixel)
	values := []uint32{opts.Background, screen.BlackPixel}
	if opts.OverrideRedirect {
		mask |= xproto.CwOverrideRedirect
		values = append(values, 1)
	}
	if opts.EventMask != 0 {
		mask |= xproto.CwEventMask
		values = append(values, opts.EventMask)
	}

	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		parent,
		int16(r.X), int16(r.Y),
		dim(r.Width), dim(r.Height),
		uint16(opts.BorderWidth),
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		mask,
		values,
	).Check()
	if err != nil {
		return 0, fmt.Errorf("failed to create window: %w", err)
	}
	return wid, nil
}

func (d *X11Display) DestroyWindow(w Window) error {
	xproto.DestroyWindow(d.conn.Conn(), w)
	return nil
}

func (d *X11Display) MapWindow(w Window) error {
	xproto.MapWindow(d.conn.Conn(), w)
	return nil
}

func (d *X11Display) UnmapWindow(w Window) error {
	xproto.UnmapWindow(d.conn.Conn(), w)
	return nil
}

func (d *X11Display) RaiseWindow(w Window) error {
	xproto.ConfigureWindow(d.conn.Conn(), w, xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove})
	return nil
}

func (d *X11Display) MoveWindow(w Window, x, y int) error {
	xproto.ConfigureWindow(d.conn.Conn(), w, xproto.ConfigWindowX|xproto.ConfigWindowY,
		[]uint32{coord(x), coord(y)})
	return nil
}

func (d *X11Display) ResizeWindow(w Window, width, height int) error {
	xproto.ConfigureWindow(d.conn.Conn(), w, xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(dim(width)), uint32(dim(height))})
	return nil
}

func (d *X11Display) MoveResizeWindow(w Window, r geometry.Rect) error {
	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY |
		xproto.ConfigWindowWidth | xproto.ConfigWindowHeight)
	xproto.ConfigureWindow(d.conn.Conn(), w, mask, []uint32{
		coord(r.X), coord(r.Y), uint32(dim(r.Width)), uint32(dim(r.Height)),
	})
	return nil
}

// Configure forwards a client's configure request unchanged. Values are
// packed in mask bit order as the protocol requires.
func (d *X11Display) Configure(w Window, req ConfigureRequest) error {
	var values []uint32
	if req.ValueMask&xproto.ConfigWindowX != 0 {
		values = append(values, coord(req.X))
	}
	if req.ValueMask&xproto.ConfigWindowY != 0 {
		values = append(values, coord(req.Y))
	}
	if req.ValueMask&xproto.ConfigWindowWidth != 0 {
		values = append(values, uint32(dim(req.Width)))
	}
	if req.ValueMask&xproto.ConfigWindowHeight != 0 {
		values = append(values, uint32(dim(req.Height)))
	}
	if req.ValueMask&xproto.ConfigWindowBorderWidth != 0 {
		values = append(values, uint32(req.BorderWidth))
	}
	if req.ValueMask&xproto.ConfigWindowSibling != 0 {
		values = append(values, uint32(req.Sibling))
	}
	if req.ValueMask&xproto.ConfigWindowStackMode != 0 {
		values = append(values, uint32(req.StackMode))
	}
	xproto.ConfigureWindow(d.conn.Conn(), w, req.ValueMask, values)
	return nil
}

func (d *X11Display) ReparentWindow(w, parent Window, x, y int) error {
	xproto.ReparentWindow(d.conn.Conn(), w, parent, int16(x), int16(y))
	return nil
}

func (d *X11Display) SetBorderWidth(w Window, width int) error {
	xproto.ConfigureWindow(d.conn.Conn(), w, xproto.ConfigWindowBorderWidth,
		[]uint32{uint32(width)})
	return nil
}

func (d *X11Display) SetBackground(w Window, pixel uint32) error {
	xproto.ChangeWindowAttributes(d.conn.Conn(), w, xproto.CwBackPixel, []uint32{pixel})
	return nil
}

func (d *X11Display) SelectInput(w Window, mask uint32) error {
	xproto.ChangeWindowAttributes(d.conn.Conn(), w, xproto.CwEventMask, []uint32{mask})
	return nil
}

func (d *X11Display) AddToSaveSet(w Window) error {
	xproto.ChangeSaveSet(d.conn.Conn(), xproto.SetModeInsert, w)
	return nil
}

// Redraw clears w and has the server send an Expose for all of it.
func (d *X11Display) Redraw(w Window) error {
	xproto.ClearArea(d.conn.Conn(), true, w, 0, 0, 0, 0)
	return nil
}

func (d *X11Display) Attributes(w Window) (Attributes, error) {
	attrs := xproto.GetWindowAttributes(d.conn.Conn(), w)
	geom := xproto.GetGeometry(d.conn.Conn(), xproto.Drawable(w))
	reply, err := attrs.Reply()
	if err != nil {
		return Attributes{}, err
	}
	g, err := geom.Reply()
	if err != nil {
		return Attributes{}, err
	}
	return Attributes{
		OverrideRedirect: reply.OverrideRedirect,
		Mapped:           reply.MapState != xproto.MapStateUnmapped,
		BorderWidth:      int(g.BorderWidth),
	}, nil
}

func (d *X11Display) Geometry(w Window) (geometry.Rect, error) {
	reply, err := xproto.GetGeometry(d.conn.Conn(), xproto.Drawable(w)).Reply()
	if err != nil {
		return geometry.Rect{}, err
	}
	return geometry.Rect{
		X:      int(reply.X),
		Y:      int(reply.Y),
		Width:  int(reply.Width),
		Height: int(reply.Height),
	}, nil
}

func (d *X11Display) Children(w Window) ([]Window, error) {
	reply, err := xproto.QueryTree(d.conn.Conn(), w).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Children, nil
}

func (d *X11Display) SetInputFocus(w Window) error {
	xproto.SetInputFocus(d.conn.Conn(), xproto.InputFocusPointerRoot, w, xproto.TimeCurrentTime)
	return nil
}

// GrabButton grabs button 1 with any modifier on w in synchronous pointer
// mode, so a click can focus the frame before it is replayed to the client.
func (d *X11Display) GrabButton(w Window) error {
	xproto.GrabButton(
		d.conn.Conn(),
		true,
		w,
		xproto.EventMaskButtonPress,
		xproto.GrabModeSync,
		xproto.GrabModeAsync,
		xproto.WindowNone,
		xproto.CursorNone,
		xproto.ButtonIndex1,
		xproto.ModMaskAny,
	)
	return nil
}

func (d *X11Display) ReplayPointer() error {
	xproto.AllowEvents(d.conn.Conn(), xproto.AllowReplayPointer, xproto.TimeCurrentTime)
	return nil
}

func (d *X11Display) KillClient(w Window) error {
	xproto.KillClient(d.conn.Conn(), uint32(w))
	return nil
}

func (d *X11Display) SendDeleteWindow(w Window) error {
	return d.conn.SendDeleteWindow(w)
}

func (d *X11Display) SendConfigureNotify(w Window, r geometry.Rect, border int) error {
	return d.conn.SendConfigureNotify(w, r.X, r.Y, r.Width, r.Height, border)
}

func (d *X11Display) DefineCursor(w Window, glyph uint16) error {
	cursor, err := d.conn.Cursor(glyph)
	if err != nil {
		return err
	}
	xproto.ChangeWindowAttributes(d.conn.Conn(), w, xproto.CwCursor, []uint32{uint32(cursor)})
	return nil
}

func (d *X11Display) UndefineCursor(w Window) error {
	xproto.ChangeWindowAttributes(d.conn.Conn(), w, xproto.CwCursor, []uint32{xproto.CursorNone})
	return nil
}

func (d *X11Display) AllocColor(name string) (uint32, error) {
	return d.conn.AllocColor(name)
}

func (d *X11Display) OpenFont(names []string) (Font, error) {
	return d.conn.OpenFont(names)
}

func (d *X11Display) TextWidth(f Font, text string) int {
	return d.conn.TextWidth(f, text)
}

// CreateGC creates a graphics context drawing in foreground. A zero font ID
// leaves the server default font in place.
func (d *X11Display) CreateGC(w Window, foreground uint32, font Font) (GC, error) {
	conn := d.conn.Conn()
	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate gc id: %w", err)
	}

	mask := uint32(xproto.GcForeground | xproto.GcBackground)
	values := []uint32{foreground, d.conn.XUtil.Screen().WhitePixel}
	if font.ID != 0 {
		mask |= xproto.GcFont
		values = append(values, uint32(font.ID))
	}
	mask |= xproto.GcGraphicsExposures
	values = append(values, 0)

	if err := xproto.CreateGCChecked(conn, gc, xproto.Drawable(w), mask, values).Check(); err != nil {
		return 0, fmt.Errorf("failed to create gc: %w", err)
	}
	return gc, nil
}

func (d *X11Display) FreeGC(gc GC) error {
	xproto.FreeGC(d.conn.Conn(), gc)
	return nil
}

func (d *X11Display) FillRectangle(w Window, gc GC, r geometry.Rect) error {
	xproto.PolyFillRectangle(d.conn.Conn(), xproto.Drawable(w), gc, []xproto.Rectangle{rect(r)})
	return nil
}

func (d *X11Display) DrawRectangle(w Window, gc GC, r geometry.Rect) error {
	xproto.PolyRectangle(d.conn.Conn(), xproto.Drawable(w), gc, []xproto.Rectangle{rect(r)})
	return nil
}

func (d *X11Display) DrawLine(w Window, gc GC, x1, y1, x2, y2 int) error {
	xproto.PolySegment(d.conn.Conn(), xproto.Drawable(w), gc, []xproto.Segment{{
		X1: int16(x1), Y1: int16(y1), X2: int16(x2), Y2: int16(y2),
	}})
	return nil
}

// DrawText draws text with ImageText8, filling the glyph boxes with
// background. y is the baseline.
func (d *X11Display) DrawText(w Window, gc GC, background uint32, x, y int, text string) error {
	text = x11.ClipText(text)
	if text == "" {
		return nil
	}
	conn := d.conn.Conn()
	xproto.ChangeGC(conn, gc, xproto.GcBackground, []uint32{background})
	xproto.ImageText8(conn, byte(len(text)), xproto.Drawable(w), gc, int16(x), int16(y), text)
	return nil
}

func (d *X11Display) AtomName(atom xproto.Atom) (string, error) {
	return d.conn.AtomName(atom)
}

func (d *X11Display) Title(w Window) (string, error) {
	return d.conn.Title(w)
}

func (d *X11Display) SizeIncrements(w Window) (int, int, error) {
	return d.conn.SizeIncrements(w)
}

func (d *X11Display) Protocols(w Window) ([]string, error) {
	return d.conn.Protocols(w)
}

func (d *X11Display) SetWMState(w Window, iconic bool) error {
	return d.conn.SetWMState(w, iconic)
}

func (d *X11Display) Announce(check Window, name string) error {
	return d.conn.Announce(check, name)
}

func (d *X11Display) SetActiveWindow(w Window) error {
	return d.conn.SetActiveWindow(w)
}

func (d *X11Display) SetClientList(all, stacking []Window) error {
	return d.conn.SetClientList(all, stacking)
}

func rect(r geometry.Rect) xproto.Rectangle {
	return xproto.Rectangle{X: int16(r.X), Y: int16(r.Y), Width: dim(r.Width), Height: dim(r.Height)}
}

// dim clamps a window dimension to the protocol's minimum of one pixel.
func dim(v int) uint16 {
	if v < 1 {
		return 1
	}
	if v > 0xffff {
		return 0xffff
	}
	return uint16(v)
}

func coord(v int) uint32 {
	return uint32(int32(v))
}
