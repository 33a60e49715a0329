// Package wm is the window manager proper: it frames top-level clients,
// reacts to pointer input on the decorations, and draws the popup menu and
// the taskbar.
package wm

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/1broseidon/fawm/internal/config"
	"github.com/1broseidon/fawm/internal/frame"
	"github.com/1broseidon/fawm/internal/geometry"
	"github.com/1broseidon/fawm/internal/logging"
	"github.com/1broseidon/fawm/internal/menu"
	"github.com/1broseidon/fawm/internal/platform"
	"github.com/1broseidon/fawm/internal/x11"
)

// Name is announced through _NET_WM_NAME on the supporting-WM check window.
const Name = "fawm"

const (
	frameEventMask = xproto.EventMaskButtonPress |
		xproto.EventMaskButtonRelease |
		xproto.EventMaskExposure |
		xproto.EventMaskFocusChange |
		xproto.EventMaskLeaveWindow |
		xproto.EventMaskPointerMotion |
		xproto.EventMaskPropertyChange |
		xproto.EventMaskSubstructureNotify |
		xproto.EventMaskSubstructureRedirect

	taskbarEventMask = xproto.EventMaskButton1Motion |
		xproto.EventMaskButtonPress |
		xproto.EventMaskButtonRelease |
		xproto.EventMaskExposure

	popupEventMask = xproto.EventMaskExposure

	clientEventMask = xproto.EventMaskPropertyChange
)

// Exit tells the caller of Run what to do next.
type Exit int

const (
	ExitQuit Exit = iota
	ExitReload
)

func (e Exit) String() string {
	if e == ExitReload {
		return "reload"
	}
	return "quit"
}

// ErrDisconnected is returned by Run when the event stream ends.
var ErrDisconnected = errors.New("display connection closed")

// Launcher starts a shell command line in the background.
type Launcher interface {
	Launch(command string) error
}

// Options configures a Manager.
type Options struct {
	Appearance config.Appearance
	Menu       *menu.Menu
	Logs       *logging.Set
	Launcher   Launcher

	// AbortOnXError makes Run return on the first X protocol error instead
	// of logging it and carrying on.
	AbortOnXError bool

	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Manager owns every frame and all event handling. It is not safe for
// concurrent use; Run is the only place events are handled.
type Manager struct {
	display  platform.Display
	log      *logrus.Logger
	trace    *logrus.Logger
	xerrors  *logrus.Logger
	launcher Launcher
	clock    func() time.Time

	appearance    config.Appearance
	menu          *menu.Menu
	abortOnXError bool

	deco      geometry.Decoration
	font      platform.Font
	clockFont platform.Font

	focusedPixel   uint32
	unfocusedPixel uint32
	textPixel      uint32

	root  platform.Window
	check platform.Window

	frames  *frame.Registry
	grasp   Grasp
	popup   popup
	taskbar taskbar

	events       <-chan x11.Event
	pending      []x11.Event
	disconnected bool

	running bool
	exit    Exit
}

// New loads fonts and colors and creates the popup, the taskbar and the
// supporting-WM check window. It does not touch existing clients; call
// Start for that.
func New(d platform.Display, opts Options) (*Manager, error) {
	logs := opts.Logs
	if logs == nil {
		logs = logging.Discard()
	}
	m := &Manager{
		display:       d,
		log:           logs.Log,
		trace:         logs.Trace,
		xerrors:       logs.XErrors,
		launcher:      opts.Launcher,
		clock:         opts.Clock,
		appearance:    opts.Appearance,
		menu:          opts.Menu,
		abortOnXError: opts.AbortOnXError,
		root:          d.Root(),
		frames:        frame.NewRegistry(),
	}
	if m.clock == nil {
		m.clock = time.Now
	}
	if m.menu == nil {
		m.menu = &menu.Menu{}
	}

	font, err := d.OpenFont(m.appearance.Fonts())
	if err != nil {
		return nil, fmt.Errorf("open title font: %w", err)
	}
	m.font = font
	m.clockFont, err = d.OpenFont(m.appearance.ClockFonts())
	if err != nil {
		m.log.WithError(err).Warn("clock font unavailable, using title font")
		m.clockFont = font
	}

	m.focusedPixel = m.color(m.appearance.FocusedColor)
	m.unfocusedPixel = m.color(m.appearance.UnfocusedColor)
	m.textPixel = m.color(m.appearance.TextColor)
	m.deco = m.appearance.Decoration(font.Height())

	if err := m.setupPopup(); err != nil {
		return nil, err
	}
	if err := m.setupTaskbar(); err != nil {
		return nil, multierror.Append(err, m.Close()).ErrorOrNil()
	}

	m.check, err = d.CreateWindow(m.root, geometry.Rect{X: -1, Y: -1, Width: 1, Height: 1},
		platform.WindowOptions{OverrideRedirect: true})
	if err != nil {
		return nil, multierror.Append(fmt.Errorf("create check window: %w", err), m.Close()).ErrorOrNil()
	}
	if err := d.Announce(m.check, Name); err != nil {
		m.log.WithError(err).Warn("cannot announce EWMH support")
	}
	return m, nil
}

// color resolves name, falling back to black.
func (m *Manager) color(name string) uint32 {
	pixel, err := m.display.AllocColor(name)
	if err != nil {
		m.log.WithError(err).WithField("color", name).Warn("using black")
		return m.display.BlackPixel()
	}
	return pixel
}

// Start frames the clients that are already mapped and shows the taskbar.
func (m *Manager) Start() error {
	if err := m.display.DefineCursor(m.root, geometry.ZoneNone.Cursor()); err != nil {
		m.log.WithError(err).Debug("cannot set root cursor")
	}
	if err := m.manageExisting(); err != nil {
		return err
	}
	if err := m.display.MapWindow(m.taskbar.window); err != nil {
		return fmt.Errorf("map taskbar: %w", err)
	}
	m.updateClientList()
	return nil
}

// Close puts every client back on the root and destroys the frames and the
// manager's own windows.
func (m *Manager) Close() error {
	var result *multierror.Error
	for _, f := range m.frames.All() {
		if err := m.unmanageFrame(f); err != nil {
			result = multierror.Append(result, err)
		}
	}
	m.updateClientList()
	for _, gc := range []platform.GC{m.popup.selected, m.popup.text, m.taskbar.line, m.taskbar.focused, m.taskbar.text, m.taskbar.clock} {
		if gc != 0 {
			result = multierror.Append(result, m.display.FreeGC(gc))
		}
	}
	for _, w := range []platform.Window{m.popup.window, m.taskbar.window, m.check} {
		if w != 0 {
			result = multierror.Append(result, m.display.DestroyWindow(w))
		}
	}
	m.popup = popup{}
	m.taskbar = taskbar{}
	m.check = 0
	return result.ErrorOrNil()
}

// Frames exposes the registry for inspection.
func (m *Manager) Frames() *frame.Registry {
	return m.frames
}

func (m *Manager) ownWindow(w platform.Window) bool {
	return w == m.root || w == m.check || w == m.popup.window || w == m.taskbar.window
}

// traceEvent records ev on the trace log.
func (m *Manager) traceEvent(ev xgb.Event) {
	if m.trace.IsLevelEnabled(logrus.DebugLevel) {
		m.trace.Debug(ev.String())
	}
}
