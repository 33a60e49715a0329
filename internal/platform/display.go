package platform

import (
	"errors"

	"github.com/1broseidon/fawm/internal/geometry"
	"github.com/1broseidon/fawm/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// ErrNoSuchWindow reports a request naming a window the display does not
// know about.
var ErrNoSuchWindow = errors.New("no such window")

// Window is a server-side window identifier.
type Window = xproto.Window

// GC is a server-side graphics context.
type GC = xproto.Gcontext

// Attributes is the subset of window attributes the manager looks at.
type Attributes struct {
	OverrideRedirect bool
	Mapped           bool
	BorderWidth      int
}

// Font is an opened font with its metrics.
type Font = x11.Font

// WindowOptions controls a window created by the manager.
type WindowOptions struct {
	Background       uint32
	BorderWidth      int
	EventMask        uint32
	OverrideRedirect bool
}

// ConfigureRequest is a client's configure request, passed through for
// windows the manager does not frame.
type ConfigureRequest struct {
	ValueMask   uint16
	X, Y        int
	Width       int
	Height      int
	BorderWidth int
	Sibling     Window
	StackMode   byte
}

// Display abstracts the window-system requests the manager issues. Requests
// that do not return a value may fail asynchronously; those failures arrive
// with the event stream.
type Display interface {
	Root() Window
	ScreenSize() (int, int)
	BlackPixel() uint32

	CreateWindow(parent Window, r geometry.Rect, opts WindowOptions) (Window, error)
	DestroyWindow(w Window) error
	MapWindow(w Window) error
	UnmapWindow(w Window) error
	RaiseWindow(w Window) error
	MoveWindow(w Window, x, y int) error
	ResizeWindow(w Window, width, height int) error
	MoveResizeWindow(w Window, r geometry.Rect) error
	Configure(w Window, req ConfigureRequest) error
	ReparentWindow(w, parent Window, x, y int) error
	SetBorderWidth(w Window, width int) error
	SetBackground(w Window, pixel uint32) error
	SelectInput(w Window, mask uint32) error
	AddToSaveSet(w Window) error
	Redraw(w Window) error

	Attributes(w Window) (Attributes, error)
	Geometry(w Window) (geometry.Rect, error)
	Children(w Window) ([]Window, error)

	SetInputFocus(w Window) error
	GrabButton(w Window) error
	ReplayPointer() error
	KillClient(w Window) error
	SendDeleteWindow(w Window) error
	SendConfigureNotify(w Window, r geometry.Rect, border int) error

	DefineCursor(w Window, glyph uint16) error
	UndefineCursor(w Window) error

	AllocColor(name string) (uint32, error)
	OpenFont(names []string) (Font, error)
	TextWidth(f Font, text string) int
	CreateGC(w Window, foreground uint32, font Font) (GC, error)
	FreeGC(gc GC) error
	FillRectangle(w Window, gc GC, r geometry.Rect) error
	DrawRectangle(w Window, gc GC, r geometry.Rect) error
	DrawLine(w Window, gc GC, x1, y1, x2, y2 int) error
	DrawText(w Window, gc GC, background uint32, x, y int, text string) error

	AtomName(atom xproto.Atom) (string, error)
	Title(w Window) (string, error)
	SizeIncrements(w Window) (int, int, error)
	Protocols(w Window) ([]string, error)
	SetWMState(w Window, iconic bool) error
	Announce(check Window, name string) error
	SetActiveWindow(w Window) error
	SetClientList(all, stacking []Window) error
}

// SupportsDelete reports whether protocols contains WM_DELETE_WINDOW.
func SupportsDelete(protocols []string) bool {
	for _, p := range protocols {
		if p == "WM_DELETE_WINDOW" {
			return true
		}
	}
	return false
}
