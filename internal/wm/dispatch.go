package wm

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/1broseidon/fawm/internal/geometry"
	"github.com/1broseidon/fawm/internal/platform"
)

// handle routes one event to its handler.
func (m *Manager) handle(ev xgb.Event) {
	m.traceEvent(ev)
	switch e := ev.(type) {
	case xproto.ButtonPressEvent:
		m.onButtonPress(e)
	case xproto.ButtonReleaseEvent:
		m.onButtonRelease(e)
	case xproto.MotionNotifyEvent:
		m.onMotion(m.lastMotion(e))
	case xproto.ExposeEvent:
		m.onExpose(e)
	case xproto.FocusInEvent:
		m.onFocusIn(e)
	case xproto.FocusOutEvent:
		m.onFocusOut(e)
	case xproto.LeaveNotifyEvent:
		m.onLeave(e)
	case xproto.MapRequestEvent:
		m.onMapRequest(e)
	case xproto.UnmapNotifyEvent:
		m.onUnmapNotify(e)
	case xproto.DestroyNotifyEvent:
		m.onDestroyNotify(e)
	case xproto.ConfigureRequestEvent:
		m.onConfigureRequest(e)
	case xproto.PropertyNotifyEvent:
		m.onPropertyNotify(e)
	case xproto.ClientMessageEvent:
		m.onClientMessage(e)
	}
}

// lastMotion skips over motion events for the same window that are already
// queued and returns the newest. The first event of any other kind is kept
// for the next round of the loop.
func (m *Manager) lastMotion(ev xproto.MotionNotifyEvent) xproto.MotionNotifyEvent {
	if len(m.pending) > 0 || m.events == nil {
		return ev
	}
	for {
		select {
		case next, ok := <-m.events:
			if !ok {
				m.disconnected = true
				return ev
			}
			if motion, isMotion := next.Event.(xproto.MotionNotifyEvent); isMotion && next.Err == nil && motion.Event == ev.Event {
				ev = motion
				continue
			}
			m.pending = append(m.pending, next)
			return ev
		default:
			return ev
		}
	}
}

func (m *Manager) onButtonPress(e xproto.ButtonPressEvent) {
	if e.Detail != xproto.ButtonIndex1 {
		return
	}
	switch e.Event {
	case m.root:
		m.openPopup(int(e.RootX), int(e.RootY))
		return
	case m.taskbar.window:
		m.onTaskbarPress(int(e.EventX))
		return
	}

	if f := m.frames.ByChild(e.Event); f != nil {
		m.raise(f)
		m.focusFrame(f)
		m.display.ReplayPointer()
		return
	}

	f := m.frames.ByWindow(e.Event)
	if f == nil {
		return
	}
	r, err := m.display.Geometry(f.Window)
	if err != nil {
		return
	}
	x, y := int(e.EventX), int(e.EventY)
	switch m.deco.DetectControl(r.Width, x, y) {
	case geometry.ControlClose:
		m.closeFrame(f)
		return
	case geometry.ControlMinimize:
		m.minimizeFrame(f)
		return
	case geometry.ControlMaximize:
		m.toggleMaximize(f)
		return
	}
	m.raise(f)
	m.focusFrame(f)
	m.beginGrasp(f, r, int(e.RootX), int(e.RootY), x, y)
}

func (m *Manager) onButtonRelease(e xproto.ButtonReleaseEvent) {
	if e.Detail != xproto.ButtonIndex1 {
		return
	}
	m.releaseGrasp()
	if m.frames.ByWindow(e.Event) != nil {
		return
	}
	m.releasePopup(int(e.RootX), int(e.RootY))
}

func (m *Manager) onMotion(e xproto.MotionNotifyEvent) {
	if e.Event == m.root || e.Event == m.taskbar.window {
		m.highlightPopup(int(e.RootX), int(e.RootY))
		return
	}
	f := m.frames.ByWindow(e.Event)
	if f == nil {
		return
	}
	if e.State&xproto.KeyButMaskButton1 == 0 {
		m.hover(f, int(e.EventX), int(e.EventY))
		return
	}
	m.drag(f, int(e.RootX), int(e.RootY))
}

func (m *Manager) onExpose(e xproto.ExposeEvent) {
	if e.Count != 0 {
		return
	}
	switch e.Window {
	case m.popup.window:
		m.drawPopup()
		return
	case m.taskbar.window:
		m.drawTaskbar()
		return
	}
	if f := m.frames.ByWindow(e.Window); f != nil {
		m.drawFrame(f)
	}
}

// focusCrossing filters out the focus events caused by grabs and by focus
// moving inside the frame.
func focusCrossing(mode, detail byte) bool {
	if mode != xproto.NotifyModeNormal {
		return false
	}
	return detail == xproto.NotifyDetailNonlinear || detail == xproto.NotifyDetailNonlinearVirtual
}

func (m *Manager) onFocusIn(e xproto.FocusInEvent) {
	if !focusCrossing(e.Mode, e.Detail) {
		return
	}
	f := m.frames.ByWindow(e.Event)
	if f == nil {
		return
	}
	f.Focused = true
	m.raise(f)
	m.display.SetBackground(f.Window, m.focusedPixel)
	m.display.Redraw(f.Window)
}

func (m *Manager) onFocusOut(e xproto.FocusOutEvent) {
	if !focusCrossing(e.Mode, e.Detail) {
		return
	}
	f := m.frames.ByWindow(e.Event)
	if f == nil {
		return
	}
	f.Focused = false
	m.display.SetBackground(f.Window, m.unfocusedPixel)
	m.display.Redraw(f.Window)
}

func (m *Manager) onLeave(e xproto.LeaveNotifyEvent) {
	f := m.frames.ByWindow(e.Event)
	if f == nil {
		return
	}
	m.display.UndefineCursor(f.Window)
	if f.Hover != geometry.ControlNone {
		f.Hover = geometry.ControlNone
		m.display.Redraw(f.Window)
	}
}

func (m *Manager) onMapRequest(e xproto.MapRequestEvent) {
	if f := m.frames.ByChild(e.Window); f != nil {
		m.restoreFrame(f)
		return
	}
	m.reparentWindow(e.Window)
}

// onUnmapNotify treats a client unmapping itself like a minimize so that it
// stays reachable from the taskbar.
func (m *Manager) onUnmapNotify(e xproto.UnmapNotifyEvent) {
	f := m.frames.ByChild(e.Window)
	if f == nil || f.Minimized {
		return
	}
	m.hideFrame(f)
}

func (m *Manager) onDestroyNotify(e xproto.DestroyNotifyEvent) {
	f := m.frames.ByChild(e.Window)
	if f == nil {
		return
	}
	if err := m.destroyFrame(f); err != nil {
		m.log.WithError(err).WithField("window", e.Window).Debug("destroy frame")
	}
	m.focusTop()
}

func (m *Manager) onConfigureRequest(e xproto.ConfigureRequestEvent) {
	req := platform.ConfigureRequest{
		ValueMask:   e.ValueMask,
		X:           int(e.X),
		Y:           int(e.Y),
		Width:       int(e.Width),
		Height:      int(e.Height),
		BorderWidth: int(e.BorderWidth),
		Sibling:     e.Sibling,
		StackMode:   e.StackMode,
	}
	if f := m.frames.ByChild(e.Window); f != nil {
		m.configureFrame(f, req)
		return
	}
	m.display.Configure(e.Window, req)
}

func (m *Manager) onPropertyNotify(e xproto.PropertyNotifyEvent) {
	f := m.frames.ByChild(e.Window)
	if f == nil {
		return
	}
	name, err := m.display.AtomName(e.Atom)
	if err != nil {
		return
	}
	switch name {
	case "WM_NAME", "_NET_WM_NAME":
		if e.State != xproto.PropertyNewValue {
			return
		}
		m.refreshTitle(f)
		m.display.Redraw(f.Window)
		m.redrawTaskbar()
	case "WM_NORMAL_HINTS":
		m.refreshIncrements(f)
	case "WM_PROTOCOLS":
		m.refreshProtocols(f)
	}
}

func (m *Manager) onClientMessage(e xproto.ClientMessageEvent) {
	f := m.frames.ByChild(e.Window)
	if f == nil {
		return
	}
	name, err := m.display.AtomName(e.Type)
	if err != nil {
		return
	}
	switch name {
	case "WM_CHANGE_STATE":
		if e.Format == 32 && len(e.Data.Data32) > 0 && e.Data.Data32[0] == icccm.StateIconic {
			m.minimizeFrame(f)
		}
	case "_NET_ACTIVE_WINDOW":
		m.restoreFrame(f)
	}
}
