package wm

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/hashicorp/go-multierror"

	"github.com/1broseidon/fawm/internal/frame"
	"github.com/1broseidon/fawm/internal/geometry"
	"github.com/1broseidon/fawm/internal/platform"
)

// createFrame makes an unmapped frame window sized to hold a child of
// childW×childH at (x, y) and registers it.
func (m *Manager) createFrame(child platform.Window, x, y, childW, childH int) (*frame.Frame, error) {
	size := m.deco.OuterSize(childW, childH)
	w, err := m.display.CreateWindow(m.root, geometry.Rect{X: x, Y: y, Width: size.Width, Height: size.Height},
		platform.WindowOptions{
			Background:  m.unfocusedPixel,
			BorderWidth: m.deco.BorderSize,
			EventMask:   frameEventMask,
		})
	if err != nil {
		return nil, fmt.Errorf("create frame window: %w", err)
	}

	f := frame.New(w, child)
	res, err := m.createResources(w)
	if err != nil {
		m.display.DestroyWindow(w)
		return nil, err
	}
	f.Resources = res

	if err := m.frames.Insert(f); err != nil {
		return nil, multierror.Append(err, m.releaseFrame(f))
	}
	return f, nil
}

func (m *Manager) createResources(w platform.Window) (frame.Resources, error) {
	var res frame.Resources
	var err error
	if res.Line, err = m.display.CreateGC(w, m.textPixel, m.font); err != nil {
		return res, fmt.Errorf("create line gc: %w", err)
	}
	if res.Focused, err = m.display.CreateGC(w, m.focusedPixel, platform.Font{}); err != nil {
		m.display.FreeGC(res.Line)
		return res, fmt.Errorf("create focused gc: %w", err)
	}
	if res.Unfocused, err = m.display.CreateGC(w, m.unfocusedPixel, platform.Font{}); err != nil {
		m.display.FreeGC(res.Line)
		m.display.FreeGC(res.Focused)
		return res, fmt.Errorf("create unfocused gc: %w", err)
	}
	return res, nil
}

// releaseFrame frees the server resources of a frame that is no longer in
// the registry.
func (m *Manager) releaseFrame(f *frame.Frame) error {
	var result *multierror.Error
	for _, gc := range []platform.GC{f.Resources.Line, f.Resources.Focused, f.Resources.Unfocused} {
		if gc == 0 {
			continue
		}
		if err := m.display.FreeGC(gc); err != nil {
			result = multierror.Append(result, fmt.Errorf("free gc %d: %w", gc, err))
		}
	}
	f.Resources = frame.Resources{}
	if err := m.display.DestroyWindow(f.Window); err != nil {
		result = multierror.Append(result, fmt.Errorf("destroy frame %d: %w", f.Window, err))
	}
	return result.ErrorOrNil()
}

// destroyFrame unregisters f and frees its resources. A frame that is
// already gone is a no-op.
func (m *Manager) destroyFrame(f *frame.Frame) error {
	if !m.frames.Remove(f) {
		return nil
	}
	if m.grasp.Frame == f.Window {
		m.grasp = Grasp{}
	}
	err := m.releaseFrame(f)
	m.updateClientList()
	return err
}

// unmanageFrame hands the client back to the root at the position it has on
// screen, with its own border, and then releases the frame. Used on shutdown,
// where destroying the frame with the client inside would destroy the client.
func (m *Manager) unmanageFrame(f *frame.Frame) error {
	if !m.frames.Remove(f) {
		return nil
	}
	if m.grasp.Frame == f.Window {
		m.grasp = Grasp{}
	}

	var result *multierror.Error
	r, err := m.display.Geometry(f.Window)
	if err != nil {
		result = multierror.Append(result, fmt.Errorf("frame %d geometry: %w", f.Window, err))
	} else {
		cx, cy := m.deco.ChildOffset()
		x := r.X + m.deco.BorderSize + cx
		y := r.Y + m.deco.BorderSize + cy
		if err := m.display.ReparentWindow(f.Child, m.root, x, y); err != nil {
			result = multierror.Append(result, fmt.Errorf("reparent %d to root: %w", f.Child, err))
		}
		if err := m.display.SetBorderWidth(f.Child, f.ClientBorder); err != nil {
			result = multierror.Append(result, fmt.Errorf("restore border of %d: %w", f.Child, err))
		}
	}
	if err := m.releaseFrame(f); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// reparentWindow puts child into a new frame and focuses it. Override-redirect
// windows and windows that vanished meanwhile are left alone.
func (m *Manager) reparentWindow(child platform.Window) {
	log := m.log.WithField("window", child)
	if m.ownWindow(child) {
		return
	}
	if f := m.frames.ByChild(child); f != nil {
		m.restoreFrame(f)
		return
	}
	attrs, err := m.display.Attributes(child)
	if err != nil {
		log.WithError(err).Debug("window vanished before it could be framed")
		return
	}
	if attrs.OverrideRedirect {
		return
	}
	g, err := m.display.Geometry(child)
	if err != nil {
		log.WithError(err).Debug("window vanished before it could be framed")
		return
	}

	f, err := m.createFrame(child, g.X, g.Y, g.Width, g.Height)
	if err != nil {
		log.WithError(err).Warn("cannot frame window")
		return
	}
	f.ClientBorder = attrs.BorderWidth
	m.refreshTitle(f)
	m.refreshIncrements(f)
	m.refreshProtocols(f)

	cx, cy := m.deco.ChildOffset()
	m.display.SetBorderWidth(child, m.deco.ClientBorderSize)
	m.display.SelectInput(child, clientEventMask)
	m.display.AddToSaveSet(child)
	m.display.ReparentWindow(child, f.Window, cx, cy)
	m.display.GrabButton(child)
	m.display.MapWindow(f.Window)
	m.display.MapWindow(child)
	m.display.SetWMState(child, false)
	log.WithField("frame", f.Window).Debug("framed")

	m.raise(f)
	m.focusFrame(f)
}

// manageExisting frames the clients that were mapped before the manager
// started.
func (m *Manager) manageExisting() error {
	children, err := m.display.Children(m.root)
	if err != nil {
		return fmt.Errorf("list existing windows: %w", err)
	}
	for _, w := range children {
		if m.ownWindow(w) {
			continue
		}
		attrs, err := m.display.Attributes(w)
		if err != nil || !attrs.Mapped || attrs.OverrideRedirect {
			continue
		}
		m.reparentWindow(w)
	}
	return nil
}

func (m *Manager) refreshTitle(f *frame.Frame) {
	title, err := m.display.Title(f.Child)
	if err != nil {
		m.log.WithError(err).WithField("window", f.Child).Debug("no title")
		return
	}
	f.SetTitle(title)
}

func (m *Manager) refreshIncrements(f *frame.Frame) {
	w, h, err := m.display.SizeIncrements(f.Child)
	if err != nil {
		return
	}
	f.SetIncrements(w, h)
}

func (m *Manager) refreshProtocols(f *frame.Frame) {
	protocols, err := m.display.Protocols(f.Child)
	if err != nil {
		return
	}
	f.DeleteWindow = platform.SupportsDelete(protocols)
}

// closeFrame asks the client to close. Clients without WM_DELETE_WINDOW, and
// clients asked before that have not obeyed, are killed and their frame
// dropped at once.
func (m *Manager) closeFrame(f *frame.Frame) {
	log := m.log.WithField("window", f.Child)
	if f.DeleteWindow && !f.CloseRequested {
		if err := m.display.SendDeleteWindow(f.Child); err == nil {
			f.CloseRequested = true
			return
		}
		log.Debug("delete request failed, killing client")
	}
	if err := m.display.KillClient(f.Child); err != nil {
		log.WithError(err).Debug("kill client")
	}
	if err := m.destroyFrame(f); err != nil {
		log.WithError(err).Debug("destroy frame")
	}
	m.focusTop()
}

// hideFrame unmaps f and sends it to the back of the focus order. It stays
// registered so the taskbar can bring it back.
func (m *Manager) hideFrame(f *frame.Frame) {
	if m.grasp.Frame == f.Window {
		m.grasp = Grasp{}
	}
	f.Minimized = true
	f.Focused = false
	m.frames.MoveToBack(f)
	m.display.UnmapWindow(f.Window)
	m.focusTop()
}

func (m *Manager) minimizeFrame(f *frame.Frame) {
	if f.Minimized {
		return
	}
	m.hideFrame(f)
	m.display.SetWMState(f.Child, true)
}

// restoreFrame maps f and its child again and focuses it.
func (m *Manager) restoreFrame(f *frame.Frame) {
	if f.Minimized {
		f.Minimized = false
		m.display.SetWMState(f.Child, false)
	}
	m.display.MapWindow(f.Window)
	m.display.MapWindow(f.Child)
	m.raise(f)
	m.focusFrame(f)
}

// toggleMaximize fills the screen above the taskbar with f, or puts it back
// where it was.
func (m *Manager) toggleMaximize(f *frame.Frame) {
	var r geometry.Rect
	if f.Maximized {
		r = f.Restore
		f.Maximized = false
	} else {
		current, err := m.display.Geometry(f.Window)
		if err != nil {
			return
		}
		sw, _ := m.display.ScreenSize()
		border := 2 * m.deco.BorderSize
		r = geometry.Rect{Width: sw - border, Height: m.taskbar.rect.Y - border}
		f.Restore = current
		f.Maximized = true
	}
	m.moveResize(f, r)
	m.raise(f)
	m.focusFrame(f)
}

// moveResize places the frame at r and fits the child inside.
func (m *Manager) moveResize(f *frame.Frame, r geometry.Rect) {
	m.display.MoveResizeWindow(f.Window, r)
	inner := m.deco.InnerSize(r.Width, r.Height)
	m.display.ResizeWindow(f.Child, inner.Width, inner.Height)
}

func (m *Manager) raise(f *frame.Frame) {
	m.display.RaiseWindow(f.Window)
}

// focusFrame gives f the input focus and puts it first in the focus order.
// The decoration changes when the focus-in event arrives.
func (m *Manager) focusFrame(f *frame.Frame) {
	m.frames.MoveToFront(f)
	m.display.SetInputFocus(f.Child)
	m.display.SetActiveWindow(f.Child)
	m.updateClientList()
	m.redrawTaskbar()
}

// focusTop focuses the first visible frame in the focus order.
func (m *Manager) focusTop() {
	if f := m.frames.Top(); f != nil {
		m.focusFrame(f)
		return
	}
	m.display.SetActiveWindow(0)
	m.redrawTaskbar()
}

func (m *Manager) updateClientList() {
	all := m.frames.All()
	clients := make([]platform.Window, 0, len(all))
	for _, f := range all {
		clients = append(clients, f.Child)
	}
	z := m.frames.ZOrder()
	stacking := make([]platform.Window, 0, len(z))
	for i := len(z) - 1; i >= 0; i-- {
		stacking = append(stacking, z[i].Child)
	}
	if err := m.display.SetClientList(clients, stacking); err != nil {
		m.log.WithError(err).Debug("cannot update client list")
	}
}

// configureFrame applies a client's configure request to its frame. The
// requested position is where the client wants its own top-left corner, so
// the frame lands one child offset and one frame border up and to the left.
// The client is told its final geometry with a synthetic ConfigureNotify.
func (m *Manager) configureFrame(f *frame.Frame, req platform.ConfigureRequest) {
	r, err := m.display.Geometry(f.Window)
	if err != nil {
		return
	}
	cx, cy := m.deco.ChildOffset()
	cx += m.deco.BorderSize
	cy += m.deco.BorderSize
	inner := m.deco.InnerSize(r.Width, r.Height)
	if req.ValueMask&xproto.ConfigWindowX != 0 {
		r.X = req.X - cx
	}
	if req.ValueMask&xproto.ConfigWindowY != 0 {
		r.Y = req.Y - cy
	}
	if req.ValueMask&xproto.ConfigWindowWidth != 0 {
		inner.Width = req.Width
	}
	if req.ValueMask&xproto.ConfigWindowHeight != 0 {
		inner.Height = req.Height
	}
	outer := m.deco.OuterSize(inner.Width, inner.Height)
	r.Width, r.Height = outer.Width, outer.Height
	f.Maximized = false

	m.display.MoveResizeWindow(f.Window, r)
	m.display.ResizeWindow(f.Child, inner.Width, inner.Height)
	m.display.SendConfigureNotify(f.Child, geometry.Rect{
		X:      r.X + cx,
		Y:      r.Y + cy,
		Width:  inner.Width,
		Height: inner.Height,
	}, m.deco.ClientBorderSize)
}
