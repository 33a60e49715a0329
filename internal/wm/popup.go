package wm

import (
	"fmt"

	"github.com/1broseidon/fawm/internal/geometry"
	"github.com/1broseidon/fawm/internal/menu"
	"github.com/1broseidon/fawm/internal/platform"
)

// popup is the root menu. It is created once and mapped on demand.
type popup struct {
	window   platform.Window
	text     platform.GC
	selected platform.GC

	rect   geometry.Rect
	index  int
	mapped bool
}

func (m *Manager) itemHeight() int {
	return m.font.Height()
}

func (m *Manager) setupPopup() error {
	width := 0
	for _, item := range m.menu.Items {
		if w := m.display.TextWidth(m.font, item.Label()); w > width {
			width = w
		}
	}
	width += 2 * m.appearance.PopupMargin
	height := m.itemHeight() * m.menu.Len()
	if height < 1 {
		height = 1
	}

	m.popup = popup{rect: geometry.Rect{Width: width, Height: height}, index: -1}
	w, err := m.display.CreateWindow(m.root, m.popup.rect, platform.WindowOptions{
		Background:       m.unfocusedPixel,
		BorderWidth:      m.deco.BorderSize,
		EventMask:        popupEventMask,
		OverrideRedirect: true,
	})
	if err != nil {
		return fmt.Errorf("create popup: %w", err)
	}
	m.popup.window = w
	if m.popup.text, err = m.display.CreateGC(w, m.textPixel, m.font); err != nil {
		return fmt.Errorf("create popup gc: %w", err)
	}
	if m.popup.selected, err = m.display.CreateGC(w, m.focusedPixel, platform.Font{}); err != nil {
		return fmt.Errorf("create popup gc: %w", err)
	}
	return nil
}

// openPopup shows the menu next to (x, y), kept on screen.
func (m *Manager) openPopup(x, y int) {
	if m.menu.Len() == 0 {
		return
	}
	sw, sh := m.display.ScreenSize()
	border := 2 * m.deco.BorderSize
	m.popup.rect.X, m.popup.rect.Y = geometry.ClampPopup(x, y, m.popup.rect.Width+border, m.popup.rect.Height+border, sw, sh)
	m.popup.index = -1
	m.display.MoveWindow(m.popup.window, m.popup.rect.X, m.popup.rect.Y)
	m.display.MapWindow(m.popup.window)
	m.display.RaiseWindow(m.popup.window)
	m.popup.mapped = true
}

func (m *Manager) closePopup() {
	if !m.popup.mapped {
		return
	}
	m.display.UnmapWindow(m.popup.window)
	m.popup.mapped = false
	m.popup.index = -1
}

// popupItemAt returns the menu index under the root point, or -1.
func (m *Manager) popupItemAt(x, y int) int {
	if !m.popup.mapped {
		return -1
	}
	// rect is the outer corner; items are laid out inside the border.
	r := m.popup.rect
	inside := geometry.Rect{X: r.X + m.deco.BorderSize, Y: r.Y + m.deco.BorderSize, Width: r.Width, Height: r.Height}
	if !inside.Contains(x, y) {
		return -1
	}
	i := (y - inside.Y) / m.itemHeight()
	if i >= m.menu.Len() {
		return -1
	}
	return i
}

func (m *Manager) highlightPopup(x, y int) {
	if !m.popup.mapped {
		return
	}
	i := m.popupItemAt(x, y)
	if i == m.popup.index {
		return
	}
	m.popup.index = i
	m.display.Redraw(m.popup.window)
}

// releasePopup closes the menu and runs the item under the pointer.
func (m *Manager) releasePopup(x, y int) {
	if !m.popup.mapped {
		return
	}
	i := m.popupItemAt(x, y)
	m.closePopup()
	item, ok := m.menu.At(i)
	if !ok {
		return
	}
	m.runItem(item)
}

func (m *Manager) runItem(item menu.Item) {
	log := m.log.WithField("item", item.Label())
	switch item.Kind {
	case menu.KindExec:
		if m.launcher == nil {
			log.Warn("no launcher configured")
			return
		}
		if err := m.launcher.Launch(item.Command); err != nil {
			log.WithError(err).Warn("cannot start command")
		}
	case menu.KindExit:
		log.Info("exiting")
		m.stop(ExitQuit)
	case menu.KindReload:
		log.Info("reloading")
		m.stop(ExitReload)
	}
}

func (m *Manager) drawPopup() {
	h := m.itemHeight()
	for i, item := range m.menu.Items {
		background := m.unfocusedPixel
		if i == m.popup.index {
			background = m.focusedPixel
			m.display.FillRectangle(m.popup.window, m.popup.selected,
				geometry.Rect{Y: i * h, Width: m.popup.rect.Width, Height: h})
		}
		y := (i+1)*h - m.font.Descent
		m.display.DrawText(m.popup.window, m.popup.text, background, m.appearance.PopupMargin, y, item.Label())
	}
}
