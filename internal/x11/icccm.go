package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"
)

// Title returns the client's title. _NET_WM_NAME wins over WM_NAME.
func (c *Connection) Title(win xproto.Window) (string, error) {
	if name, err := ewmh.WmNameGet(c.XUtil, win); err == nil && name != "" {
		return name, nil
	}
	name, err := icccm.WmNameGet(c.XUtil, win)
	if err != nil {
		return "", fmt.Errorf("failed to get title of 0x%x: %w", uint32(win), err)
	}
	return name, nil
}

// SizeIncrements returns the resize increments from WM_NORMAL_HINTS, or 1x1
// when the client does not set them.
func (c *Connection) SizeIncrements(win xproto.Window) (int, int, error) {
	hints, err := icccm.WmNormalHintsGet(c.XUtil, win)
	if err != nil {
		return 1, 1, err
	}
	if hints.Flags&icccm.SizeHintPResizeInc == 0 {
		return 1, 1, nil
	}
	w, h := int(hints.WidthInc), int(hints.HeightInc)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h, nil
}

// Protocols lists the atoms the client put in WM_PROTOCOLS.
func (c *Connection) Protocols(win xproto.Window) ([]string, error) {
	return icccm.WmProtocolsGet(c.XUtil, win)
}

// SetWMState records the client's ICCCM state.
func (c *Connection) SetWMState(win xproto.Window, iconic bool) error {
	state := uint(icccm.StateNormal)
	if iconic {
		state = icccm.StateIconic
	}
	return icccm.WmStateSet(c.XUtil, win, &icccm.WmState{State: state})
}

// SendDeleteWindow asks the client to close itself via WM_DELETE_WINDOW.
// The message is built by hand like the other client messages here.
func (c *Connection) SendDeleteWindow(win xproto.Window) error {
	protocols, err := xprop.Atm(c.XUtil, "WM_PROTOCOLS")
	if err != nil {
		return fmt.Errorf("failed to intern WM_PROTOCOLS: %w", err)
	}
	deleteWindow, err := xprop.Atm(c.XUtil, "WM_DELETE_WINDOW")
	if err != nil {
		return fmt.Errorf("failed to intern WM_DELETE_WINDOW: %w", err)
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   protocols,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(deleteWindow), uint32(xproto.TimeCurrentTime), 0, 0, 0,
		}),
	}
	return xproto.SendEventChecked(c.Conn(), false, win,
		xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
}

// SendConfigureNotify tells a client where it really is after a configure
// request that the frame absorbed.
func (c *Connection) SendConfigureNotify(win xproto.Window, x, y, width, height, border int) error {
	ev := xproto.ConfigureNotifyEvent{
		Event:            win,
		Window:           win,
		AboveSibling:     xproto.WindowNone,
		X:                int16(x),
		Y:                int16(y),
		Width:            uint16(width),
		Height:           uint16(height),
		BorderWidth:      uint16(border),
		OverrideRedirect: false,
	}
	return xproto.SendEventChecked(c.Conn(), false, win,
		xproto.EventMaskStructureNotify, string(ev.Bytes())).Check()
}
