package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// SupportedHints are the EWMH root properties the manager maintains.
var SupportedHints = []string{
	"_NET_SUPPORTED",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_WM_NAME",
	"_NET_ACTIVE_WINDOW",
	"_NET_CLIENT_LIST",
	"_NET_CLIENT_LIST_STACKING",
}

// Announce publishes the supporting-WM check window and the supported hint
// list so pagers and toolkits can see who manages the display.
func (c *Connection) Announce(check xproto.Window, name string) error {
	if err := ewmh.SupportingWmCheckSet(c.XUtil, c.Root, check); err != nil {
		return fmt.Errorf("failed to set supporting wm check on root: %w", err)
	}
	if err := ewmh.SupportingWmCheckSet(c.XUtil, check, check); err != nil {
		return fmt.Errorf("failed to set supporting wm check: %w", err)
	}
	if err := ewmh.WmNameSet(c.XUtil, check, name); err != nil {
		return fmt.Errorf("failed to set wm name: %w", err)
	}
	if err := ewmh.SupportedSet(c.XUtil, SupportedHints); err != nil {
		return fmt.Errorf("failed to set supported hints: %w", err)
	}
	return nil
}

// SetActiveWindow updates _NET_ACTIVE_WINDOW. Zero clears it.
func (c *Connection) SetActiveWindow(win xproto.Window) error {
	return ewmh.ActiveWindowSet(c.XUtil, win)
}

// SetClientList updates _NET_CLIENT_LIST (creation order) and
// _NET_CLIENT_LIST_STACKING (bottom to top).
func (c *Connection) SetClientList(all, stacking []xproto.Window) error {
	if err := ewmh.ClientListSet(c.XUtil, all); err != nil {
		return err
	}
	return ewmh.ClientListStackingSet(c.XUtil, stacking)
}
