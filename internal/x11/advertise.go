package x11

import (
	"fmt"

	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/icccm"
)

// supportedAtoms is every _NET_WM_* hint fensterchef reads or writes,
// advertised on _NET_SUPPORTED so EWMH-aware clients know what to
// expect from it (spec §9 "SUPPLEMENTED FEATURES").
var supportedAtoms = []string{
	"_NET_SUPPORTED",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_CLIENT_LIST",
	"_NET_WORKAREA",
	"_NET_WM_NAME",
	"_NET_WM_WINDOW_TYPE",
	"_NET_WM_WINDOW_TYPE_DOCK",
	"_NET_WM_WINDOW_TYPE_DIALOG",
	"_NET_WM_WINDOW_TYPE_NORMAL",
	"_NET_WM_STATE",
	"_NET_WM_STATE_FULLSCREEN",
	"_NET_WM_STRUT_PARTIAL",
	"_NET_WM_FULLSCREEN_MONITORS",
}

// Advertise creates the 1x1 override-redirect check window ICCCM/EWMH
// require, points _NET_SUPPORTING_WM_CHECK at it on both itself and the
// root, sets WM_NAME on the check window to wmName, and publishes
// _NET_SUPPORTED. Mirrors the pattern cortile's store package follows
// when it first connects, generalized to fensterchef's own hint set.
func (c *Conn) Advertise(wmName string) error {
	checkWin, err := xproto.NewWindowId(c.XU.Conn())
	if err != nil {
		return fmt.Errorf("x11: advertise: allocate check window id: %w", err)
	}
	err = xproto.CreateWindowChecked(c.XU.Conn(), c.XU.Screen().RootDepth, checkWin, c.Root,
		-1, -1, 1, 1, 0, xproto.WindowClassInputOnly, c.XU.Screen().RootVisual,
		xproto.CwOverrideRedirect, []uint32{1},
	).Check()
	if err != nil {
		return fmt.Errorf("x11: advertise: create check window: %w", err)
	}

	if err := ewmh.SupportingWmCheckSet(c.XU, c.Root, checkWin); err != nil {
		return fmt.Errorf("x11: advertise: set root _NET_SUPPORTING_WM_CHECK: %w", err)
	}
	if err := ewmh.SupportingWmCheckSet(c.XU, checkWin, checkWin); err != nil {
		return fmt.Errorf("x11: advertise: set check window _NET_SUPPORTING_WM_CHECK: %w", err)
	}
	if err := icccm.WmNameSet(c.XU, checkWin, wmName); err != nil {
		return fmt.Errorf("x11: advertise: set check window WM_NAME: %w", err)
	}
	if err := ewmh.SupportedSet(c.XU, supportedAtoms); err != nil {
		return fmt.Errorf("x11: advertise: set _NET_SUPPORTED: %w", err)
	}
	return nil
}

// PublishClientList republishes _NET_CLIENT_LIST in ascending-id order
// (spec §4.1 global list); internal/wm calls it at startup and after a
// window is mapped, unmapped or destroyed.
func (c *Conn) PublishClientList(xids []xproto.Window) error {
	return ewmh.ClientListSet(c.XU, xids)
}

// PublishWorkarea republishes _NET_WORKAREA, one rectangle per
// connected monitor. Nothing in internal/wm calls it, so _NET_WORKAREA
// is listed in _NET_SUPPORTED but never set.
func (c *Conn) PublishWorkarea(areas []ewmh.Workarea) error {
	return ewmh.WorkareaSet(c.XU, areas)
}
