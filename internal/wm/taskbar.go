package wm

import (
	"fmt"

	"github.com/1broseidon/fawm/internal/frame"
	"github.com/1broseidon/fawm/internal/geometry"
	"github.com/1broseidon/fawm/internal/platform"
)

// ClockLayout is the taskbar clock format.
const ClockLayout = "2006-01-02T15:04"

// taskbar is the strip along the bottom of the screen: a menu button, one
// entry per frame and the clock.
type taskbar struct {
	window  platform.Window
	line    platform.GC
	focused platform.GC
	text    platform.GC
	clock   platform.GC

	rect   geometry.Rect
	clockX int
	minute int64
}

func (m *Manager) setupTaskbar() error {
	sw, sh := m.display.ScreenSize()
	height := m.font.Height() + 2*m.appearance.Padding
	m.taskbar = taskbar{
		rect:   geometry.Rect{X: -m.deco.BorderSize, Y: sh - height, Width: sw, Height: height},
		clockX: sw,
		minute: -1,
	}
	w, err := m.display.CreateWindow(m.root, m.taskbar.rect, platform.WindowOptions{
		Background:       m.unfocusedPixel,
		BorderWidth:      m.deco.BorderSize,
		EventMask:        taskbarEventMask,
		OverrideRedirect: true,
	})
	if err != nil {
		return fmt.Errorf("create taskbar: %w", err)
	}
	m.taskbar.window = w

	gcs := []struct {
		gc    *platform.GC
		pixel uint32
		font  platform.Font
	}{
		{&m.taskbar.line, m.textPixel, platform.Font{}},
		{&m.taskbar.focused, m.focusedPixel, platform.Font{}},
		{&m.taskbar.text, m.textPixel, m.font},
		{&m.taskbar.clock, m.textPixel, m.clockFont},
	}
	for _, g := range gcs {
		if *g.gc, err = m.display.CreateGC(w, g.pixel, g.font); err != nil {
			return fmt.Errorf("create taskbar gc: %w", err)
		}
	}
	return nil
}

func (m *Manager) redrawTaskbar() {
	if m.taskbar.window != 0 {
		m.display.Redraw(m.taskbar.window)
	}
}

// entryWidth is the width of one window entry, or 0 when there are none.
func (m *Manager) entryWidth() int {
	n := m.frames.Len()
	if n == 0 {
		return 0
	}
	w := (m.taskbar.clockX - m.appearance.Padding - m.taskbar.rect.Height) / n
	if w < 0 {
		return 0
	}
	return w
}

// taskbarEntryAt returns the frame whose entry covers taskbar-local x.
func (m *Manager) taskbarEntryAt(x int) *frame.Frame {
	w := m.entryWidth()
	if w == 0 || x < m.taskbar.rect.Height {
		return nil
	}
	i := (x - m.taskbar.rect.Height) / w
	all := m.frames.All()
	if i >= len(all) {
		return nil
	}
	return all[i]
}

func (m *Manager) onTaskbarPress(x int) {
	if x > m.taskbar.clockX {
		return
	}
	if x < m.taskbar.rect.Height {
		_, sh := m.display.ScreenSize()
		m.openPopup(0, sh-m.taskbar.rect.Height)
		return
	}
	if f := m.taskbarEntryAt(x); f != nil {
		m.restoreFrame(f)
	}
}

func (m *Manager) drawTaskbar() {
	tb := &m.taskbar
	pad := m.appearance.Padding
	h := tb.rect.Height

	now := m.clock()
	clock := now.Format(ClockLayout)
	tb.clockX = tb.rect.Width - m.display.TextWidth(m.clockFont, clock) - pad
	tb.minute = now.Unix() / 60
	m.display.DrawText(tb.window, tb.clock, m.unfocusedPixel, tb.clockX, m.clockFont.Ascent+pad, clock)

	m.display.DrawRectangle(tb.window, tb.line, geometry.Rect{X: pad, Y: pad, Width: h - 2*pad - 1, Height: h - 2*pad - 1})

	w := m.entryWidth()
	if w == 0 {
		return
	}
	top := m.frames.Top()
	for i, f := range m.frames.All() {
		x := h + w*i
		background := m.unfocusedPixel
		if f == top {
			background = m.focusedPixel
			m.display.FillRectangle(tb.window, tb.focused, geometry.Rect{X: x, Width: w, Height: h})
		}
		m.display.DrawLine(tb.window, tb.line, x, 0, x, h)
		m.display.DrawLine(tb.window, tb.line, x+w, 0, x+w, h)
		m.display.DrawText(tb.window, tb.text, background, x+pad, m.font.Ascent+pad, entryLabel(f))
	}
}

// entryLabel brackets the titles of minimized frames.
func entryLabel(f *frame.Frame) string {
	if f.Minimized {
		return "[" + f.Title + "]"
	}
	return f.Title
}

// tickClock redraws the taskbar when the minute shown is stale.
func (m *Manager) tickClock() {
	if m.clock().Unix()/60 != m.taskbar.minute {
		m.redrawTaskbar()
	}
}
