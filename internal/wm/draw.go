package wm

import (
	"github.com/1broseidon/fawm/internal/frame"
	"github.com/1broseidon/fawm/internal/geometry"
	"github.com/1broseidon/fawm/internal/platform"
)

var titleControls = []geometry.Control{
	geometry.ControlClose,
	geometry.ControlMaximize,
	geometry.ControlMinimize,
}

// drawFrame paints the title, the three title bar boxes and the corner
// marks. The background itself is the window's background pixel.
func (m *Manager) drawFrame(f *frame.Frame) {
	r, err := m.display.Geometry(f.Window)
	if err != nil {
		return
	}
	res := f.Resources
	background := m.unfocusedPixel
	if f.Focused {
		background = m.focusedPixel
	}
	fs := m.deco.FrameSize
	m.display.DrawText(f.Window, res.Line, background, fs, fs+m.font.Ascent, f.Title)

	for _, c := range titleControls {
		box := m.deco.ControlRect(r.Width, c)
		fill := res.Unfocused
		if f.Hover == c {
			fill = res.Focused
		}
		m.display.FillRectangle(f.Window, fill, box)
		m.display.DrawRectangle(f.Window, res.Line, box)
	}
	m.drawCorners(f.Window, res.Line, r.Width, r.Height)
}

// drawCorners marks where the corner resize handles end on each of the
// four corners.
func (m *Manager) drawCorners(w platform.Window, gc platform.GC, width, height int) {
	fs, cs := m.deco.FrameSize, m.deco.CornerSize
	lines := [][4]int{
		{0, cs, fs, cs},
		{cs, 0, cs, fs},
		{width - cs, 0, width - cs, fs},
		{width - fs, cs, width, cs},
		{width - fs, height - cs, width, height - cs},
		{width - cs, height - fs, width - cs, height},
		{cs, height - fs, cs, height},
		{0, height - cs, fs, height - cs},
	}
	for _, l := range lines {
		m.display.DrawLine(w, gc, l[0], l[1], l[2], l[3])
	}
}
