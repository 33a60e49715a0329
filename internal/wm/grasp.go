package wm

import (
	"github.com/1broseidon/fawm/internal/frame"
	"github.com/1broseidon/fawm/internal/geometry"
	"github.com/1broseidon/fawm/internal/platform"
)

// Grasp is an in-progress move or resize. The zero value is idle.
type Grasp struct {
	Zone  geometry.Zone
	Frame platform.Window

	// RootX and RootY are where the button went down, in root coordinates.
	RootX, RootY int
	// Origin is the frame geometry at that moment.
	Origin geometry.Rect
}

// Active reports whether a drag is in progress.
func (g Grasp) Active() bool {
	return g.Zone != geometry.ZoneNone && g.Frame != 0
}

// Grasp returns the current drag state.
func (m *Manager) Grasp() Grasp {
	return m.grasp
}

// beginGrasp starts dragging f if the frame-local point (x, y) is on the
// title bar or a resize handle.
func (m *Manager) beginGrasp(f *frame.Frame, origin geometry.Rect, rootX, rootY, x, y int) {
	zone := geometry.ClassifyZone(origin.Width, origin.Height, m.deco.FrameSize, m.deco.CornerSize, x, y)
	if zone == geometry.ZoneNone {
		m.grasp = Grasp{}
		return
	}
	m.grasp = Grasp{
		Zone:   zone,
		Frame:  f.Window,
		RootX:  rootX,
		RootY:  rootY,
		Origin: origin,
	}
}

func (m *Manager) releaseGrasp() {
	m.grasp = Grasp{}
}

// drag applies pointer motion to the grasped frame. Every step is computed
// from the geometry at grasp time so rounding to size increments never
// accumulates.
func (m *Manager) drag(f *frame.Frame, rootX, rootY int) {
	g := m.grasp
	if !g.Active() || g.Frame != f.Window {
		return
	}
	r := geometry.Resize(g.Zone, g.Origin, rootX-g.RootX, rootY-g.RootY, f.Increments(), m.deco.MinFrameSize())
	if g.Zone == geometry.ZoneTitleBar {
		m.display.MoveWindow(f.Window, r.X, r.Y)
		return
	}
	f.Maximized = false
	m.moveResize(f, r)
}

// hover updates the cursor and the highlighted title bar control while no
// button is held.
func (m *Manager) hover(f *frame.Frame, x, y int) {
	r, err := m.display.Geometry(f.Window)
	if err != nil {
		return
	}
	zone := geometry.ClassifyZone(r.Width, r.Height, m.deco.FrameSize, m.deco.CornerSize, x, y)
	m.display.DefineCursor(f.Window, zone.Cursor())

	control := m.deco.DetectControl(r.Width, x, y)
	if control != f.Hover {
		f.Hover = control
		m.display.Redraw(f.Window)
	}
}
