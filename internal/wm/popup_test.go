package wm

import (
	"reflect"
	"testing"
	"time"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/fawm/internal/geometry"
)

// The test menu is 52px wide (the 36px "reload" label plus two 8px
// margins) and three 13px items tall, plus a 1px border on each side.

func TestPopup_KeptOnScreen(t *testing.T) {
	d := newFakeDisplay(520, 768)
	m, _ := newTestManager(t, d)

	m.handle(press(fakeRoot, 500, 500, 500, 500))

	r := m.popup.rect
	if !m.popup.mapped || !d.windows[m.popup.window].mapped {
		t.Fatalf("popup not shown")
	}
	if r.X+r.Width+2 > 520 {
		t.Fatalf("popup at x=%d width=%d crosses the right edge", r.X, r.Width)
	}
	if r.X != 446 || r.Y != 501 {
		t.Fatalf("popup at (%d,%d), want (446,501)", r.X, r.Y)
	}
}

func TestPopup_ReleaseRunsItem(t *testing.T) {
	d := newFakeDisplay(1024, 768)
	m, l := newTestManager(t, d)

	m.handle(press(fakeRoot, 10, 10, 10, 10))
	m.handle(drag(fakeRoot, 20, 15, 20, 15))
	if m.popup.index != 0 {
		t.Fatalf("highlighted = %d, want 0", m.popup.index)
	}
	m.handle(release(fakeRoot, 20, 15, 20, 15))

	if !reflect.DeepEqual(l.commands, []string{"xterm"}) {
		t.Fatalf("launched %v", l.commands)
	}
	if m.popup.mapped || d.windows[m.popup.window].mapped {
		t.Fatalf("popup should close on release")
	}
}

func TestPopup_ItemsStartInsideTheBorder(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want int
	}{
		{"border row", 20, 11, -1},
		{"first row of first item", 20, 12, 0},
		{"last row of first item", 20, 24, 0},
		{"first row of second item", 20, 25, 1},
		{"border column", 10, 15, -1},
		{"right border column", 63, 15, -1},
		{"last interior column", 62, 15, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newFakeDisplay(1024, 768)
			m, _ := newTestManager(t, d)
			m.handle(press(fakeRoot, 10, 10, 10, 10))
			if got := m.popupItemAt(tt.x, tt.y); got != tt.want {
				t.Fatalf("popupItemAt(%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestPopup_ReleaseOnLastRowOfItem(t *testing.T) {
	d := newFakeDisplay(1024, 768)
	m, l := newTestManager(t, d)

	m.handle(press(fakeRoot, 10, 10, 10, 10))
	m.handle(release(fakeRoot, 20, 24, 20, 24))

	if !reflect.DeepEqual(l.commands, []string{"xterm"}) || m.exit == ExitReload {
		t.Fatalf("launched %v exit=%v, want xterm", l.commands, m.exit)
	}
}

func TestPopup_ReleaseOutsideRunsNothing(t *testing.T) {
	d := newFakeDisplay(1024, 768)
	m, l := newTestManager(t, d)

	m.handle(press(fakeRoot, 10, 10, 10, 10))
	m.handle(release(fakeRoot, 300, 300, 300, 300))

	if len(l.commands) != 0 || m.popup.mapped {
		t.Fatalf("commands=%v mapped=%v", l.commands, m.popup.mapped)
	}
}

func TestPopup_ReleaseWithoutPopupRunsNothing(t *testing.T) {
	d := newFakeDisplay(1024, 768)
	m, l := newTestManager(t, d)
	f := manage(t, m, d, "a", geometry.Rect{X: 300, Y: 300, Width: 100, Height: 100})

	// A release that follows a replayed press on a client.
	m.handle(press(f.Child, 20, 15, 5, 5))
	m.handle(release(fakeRoot, 20, 15, 20, 15))

	if len(l.commands) != 0 {
		t.Fatalf("launched %v", l.commands)
	}
	if d.replays != 1 {
		t.Fatalf("replays = %d, want 1", d.replays)
	}
}

func TestPopup_ExitAndReload(t *testing.T) {
	tests := []struct {
		name string
		y    int
		want Exit
	}{
		{"reload", 11 + 13 + 2, ExitReload},
		{"exit", 11 + 26 + 2, ExitQuit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newFakeDisplay(1024, 768)
			m, _ := newTestManager(t, d)
			m.running = true
			m.exit = ExitReload + 1

			m.handle(press(fakeRoot, 10, 10, 10, 10))
			m.handle(release(fakeRoot, 20, tt.y, 20, tt.y))

			if m.running || m.exit != tt.want {
				t.Fatalf("running=%v exit=%v, want %v", m.running, m.exit, tt.want)
			}
		})
	}
}

func TestTaskbar_MenuButtonOpensPopup(t *testing.T) {
	d := newFakeDisplay(1024, 768)
	m, _ := newTestManager(t, d)

	m.handle(press(m.taskbar.window, 5, 750, 5, 3))

	if !m.popup.mapped {
		t.Fatalf("popup not opened")
	}
	// 41px of popup above the 747px taskbar top.
	if m.popup.rect.Y != 705 {
		t.Fatalf("popup y = %d, want 705", m.popup.rect.Y)
	}
}

func TestTaskbar_ClockRedrawsOnNewMinute(t *testing.T) {
	d := newFakeDisplay(1024, 768)
	m, _ := newTestManager(t, d)
	now := testNow
	m.clock = func() time.Time { return now }
	m.handle(xproto.ExposeEvent{Window: m.taskbar.window})
	if !contains(d.texts, "2024-05-01T12:30") {
		t.Fatalf("clock not drawn: %v", d.texts)
	}
	redraws := d.redraws[m.taskbar.window]

	now = now.Add(20 * time.Second)
	m.tickClock()
	if d.redraws[m.taskbar.window] != redraws {
		t.Fatalf("redrawn within the same minute")
	}

	now = now.Add(time.Minute)
	m.tickClock()
	if d.redraws[m.taskbar.window] != redraws+1 {
		t.Fatalf("not redrawn on a new minute")
	}
}

func TestTaskbar_PressPastEntriesIgnored(t *testing.T) {
	d := newFakeDisplay(1024, 768)
	m, _ := newTestManager(t, d)
	f := manage(t, m, d, "a", geometry.Rect{Width: 100, Height: 100})
	m.handle(xproto.ExposeEvent{Window: m.taskbar.window})
	m.minimizeFrame(f)

	m.handle(press(m.taskbar.window, 1000, 750, 1000, 3))

	if !f.Minimized {
		t.Fatalf("press on the clock restored a frame")
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
