package wm

import (
	"testing"
	"time"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/fawm/internal/config"
	"github.com/1broseidon/fawm/internal/frame"
	"github.com/1broseidon/fawm/internal/geometry"
	"github.com/1broseidon/fawm/internal/logging"
	"github.com/1broseidon/fawm/internal/menu"
	"github.com/1broseidon/fawm/internal/platform"
)

// With the fake display's 13px font and the default appearance a frame
// adds 10px of width and 27px of height, and the child sits at (4, 21).

type fakeLauncher struct {
	commands []string
	err      error
}

func (l *fakeLauncher) Launch(command string) error {
	l.commands = append(l.commands, command)
	return l.err
}

var testNow = time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

func testMenu() *menu.Menu {
	return &menu.Menu{Items: []menu.Item{
		{Kind: menu.KindExec, Caption: "xterm", Command: "xterm"},
		{Kind: menu.KindReload},
		{Kind: menu.KindExit},
	}}
}

func newTestManager(t *testing.T, d *fakeDisplay) (*Manager, *fakeLauncher) {
	t.Helper()
	l := &fakeLauncher{}
	m, err := New(d, Options{
		Appearance: config.DefaultAppearance(),
		Menu:       testMenu(),
		Logs:       logging.Discard(),
		Launcher:   l,
		Clock:      func() time.Time { return testNow },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m, l
}

// manage maps a new client through a map request and returns its frame.
func manage(t *testing.T, m *Manager, d *fakeDisplay, title string, r geometry.Rect) *frame.Frame {
	t.Helper()
	child := d.addClient(title, r)
	m.handle(xproto.MapRequestEvent{Parent: fakeRoot, Window: child})
	f := m.frames.ByChild(child)
	if f == nil {
		t.Fatalf("client %q was not framed", title)
	}
	return f
}

func press(w platform.Window, rootX, rootY, x, y int) xproto.ButtonPressEvent {
	return xproto.ButtonPressEvent{
		Detail: xproto.ButtonIndex1,
		Root:   fakeRoot,
		Event:  w,
		RootX:  int16(rootX),
		RootY:  int16(rootY),
		EventX: int16(x),
		EventY: int16(y),
	}
}

func release(w platform.Window, rootX, rootY, x, y int) xproto.ButtonReleaseEvent {
	return xproto.ButtonReleaseEvent(press(w, rootX, rootY, x, y))
}

func drag(w platform.Window, rootX, rootY, x, y int) xproto.MotionNotifyEvent {
	return xproto.MotionNotifyEvent{
		Root:   fakeRoot,
		Event:  w,
		RootX:  int16(rootX),
		RootY:  int16(rootY),
		EventX: int16(x),
		EventY: int16(y),
		State:  xproto.KeyButMaskButton1,
	}
}

func rectOf(t *testing.T, d *fakeDisplay, w platform.Window) geometry.Rect {
	t.Helper()
	r, err := d.Geometry(w)
	if err != nil {
		t.Fatalf("Geometry(%d): %v", w, err)
	}
	return r
}
