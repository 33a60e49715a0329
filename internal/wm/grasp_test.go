package wm

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/fawm/internal/geometry"
	"github.com/1broseidon/fawm/internal/x11"
)

func TestGrasp_ResizeWest(t *testing.T) {
	d := newFakeDisplay(1024, 768)
	m, _ := newTestManager(t, d)
	f := manage(t, m, d, "a", geometry.Rect{X: 148, Y: 100, Width: 300, Height: 200})

	m.handle(press(f.Window, 150, 200, 2, 100))
	if g := m.Grasp(); g.Zone != geometry.ZoneWest || g.Frame != f.Window {
		t.Fatalf("grasp = %+v, want west on %d", g, f.Window)
	}

	m.handle(drag(f.Window, 170, 200, 22, 100))

	if got, want := rectOf(t, d, f.Window), (geometry.Rect{X: 168, Y: 100, Width: 290, Height: 227}); got != want {
		t.Fatalf("frame = %+v, want %+v", got, want)
	}
	if got := rectOf(t, d, f.Child); got.Width != 280 || got.Height != 200 {
		t.Fatalf("child = %dx%d, want 280x200", got.Width, got.Height)
	}

	m.handle(release(f.Window, 170, 200, 22, 100))
	if m.Grasp().Active() {
		t.Fatalf("grasp should be idle after release")
	}
}

func TestGrasp_TitleBarMove(t *testing.T) {
	d := newFakeDisplay(1024, 768)
	m, _ := newTestManager(t, d)
	f := manage(t, m, d, "a", geometry.Rect{X: 148, Y: 100, Width: 300, Height: 200})

	m.handle(press(f.Window, 200, 110, 52, 10))
	m.handle(drag(f.Window, 230, 150, 82, 50))

	if got, want := rectOf(t, d, f.Window), (geometry.Rect{X: 178, Y: 140, Width: 310, Height: 227}); got != want {
		t.Fatalf("frame = %+v, want %+v", got, want)
	}
}

func TestGrasp_Steps(t *testing.T) {
	tests := []struct {
		name   string
		x, y   int
		dx, dy int
		inc    int
		want   geometry.Rect
	}{
		{"east by increment", 308, 100, 25, 0, 10, geometry.Rect{X: 148, Y: 100, Width: 330, Height: 227}},
		{"south", 100, 225, 0, 13, 1, geometry.Rect{X: 148, Y: 100, Width: 310, Height: 240}},
		{"west stops at minimum", 2, 100, 1000, 0, 1, geometry.Rect{X: 393, Y: 100, Width: 65, Height: 227}},
		{"north-west", 1, 1, -10, -5, 1, geometry.Rect{X: 138, Y: 95, Width: 320, Height: 232}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newFakeDisplay(1024, 768)
			m, _ := newTestManager(t, d)
			child := d.addClient("a", geometry.Rect{X: 148, Y: 100, Width: 300, Height: 200})
			d.windows[child].incW, d.windows[child].incH = tt.inc, tt.inc
			m.handle(xproto.MapRequestEvent{Parent: fakeRoot, Window: child})
			f := m.frames.ByChild(child)

			rootX, rootY := 148+tt.x, 100+tt.y
			m.handle(press(f.Window, rootX, rootY, tt.x, tt.y))
			m.handle(drag(f.Window, rootX+tt.dx, rootY+tt.dy, tt.x+tt.dx, tt.y+tt.dy))

			if got := rectOf(t, d, f.Window); got != tt.want {
				t.Fatalf("frame = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestGrasp_OtherFrameUnaffected(t *testing.T) {
	d := newFakeDisplay(1024, 768)
	m, _ := newTestManager(t, d)
	a := manage(t, m, d, "a", geometry.Rect{X: 10, Y: 10, Width: 300, Height: 200})
	b := manage(t, m, d, "b", geometry.Rect{X: 400, Y: 10, Width: 300, Height: 200})
	beforeA, beforeB := rectOf(t, d, a.Window), rectOf(t, d, b.Window)

	m.handle(press(a.Window, 60, 20, 50, 10))
	m.handle(drag(b.Window, 100, 60, 90, 50))

	if rectOf(t, d, a.Window) != beforeA || rectOf(t, d, b.Window) != beforeB {
		t.Fatalf("motion on another frame must not move either frame")
	}
}

func TestGrasp_InteriorPointIsNotGrasped(t *testing.T) {
	d := newFakeDisplay(1024, 768)
	m, _ := newTestManager(t, d)
	f := manage(t, m, d, "a", geometry.Rect{X: 10, Y: 10, Width: 300, Height: 200})

	m.handle(press(f.Window, 10, 10, 400, 400))

	if m.Grasp().Active() {
		t.Fatalf("press outside the frame started a grasp: %+v", m.Grasp())
	}
}

func TestMotion_Coalesced(t *testing.T) {
	d := newFakeDisplay(1024, 768)
	m, _ := newTestManager(t, d)
	f := manage(t, m, d, "a", geometry.Rect{X: 148, Y: 100, Width: 300, Height: 200})
	m.handle(press(f.Window, 200, 110, 52, 10))

	events := make(chan x11.Event, 4)
	events <- x11.Event{Event: drag(f.Window, 210, 110, 62, 10)}
	events <- x11.Event{Event: drag(f.Window, 220, 110, 72, 10)}
	events <- x11.Event{Event: release(f.Window, 220, 110, 72, 10)}
	m.events = events

	m.handle(drag(f.Window, 205, 110, 57, 10))

	if got := rectOf(t, d, f.Window); got.X != 168 {
		t.Fatalf("frame x = %d, want 168 from the newest motion", got.X)
	}
	if len(m.pending) != 1 {
		t.Fatalf("pending = %d, want the release kept", len(m.pending))
	}
	if _, ok := m.pending[0].Event.(xproto.ButtonReleaseEvent); !ok {
		t.Fatalf("pending event = %T", m.pending[0].Event)
	}
}

func TestHover_TracksControlAndCursor(t *testing.T) {
	d := newFakeDisplay(1024, 768)
	m, _ := newTestManager(t, d)
	f := manage(t, m, d, "a", geometry.Rect{X: 100, Y: 100, Width: 300, Height: 200})
	redraws := d.redraws[f.Window]

	hover := drag(f.Window, 0, 0, 295, 8)
	hover.State = 0
	m.handle(hover)

	if f.Hover != geometry.ControlClose || d.redraws[f.Window] != redraws+1 {
		t.Fatalf("hover = %v, redraws = %d", f.Hover, d.redraws[f.Window])
	}

	edge := drag(f.Window, 0, 0, 308, 100)
	edge.State = 0
	m.handle(edge)
	if d.windows[f.Window].cursor != geometry.ZoneEast.Cursor() {
		t.Fatalf("cursor = %d", d.windows[f.Window].cursor)
	}

	m.handle(xproto.LeaveNotifyEvent{Event: f.Window})
	if d.windows[f.Window].cursor != 0 || f.Hover != geometry.ControlNone {
		t.Fatalf("leave should reset cursor and hover")
	}
}
