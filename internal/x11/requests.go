package x11

import (
	"fmt"

	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/icccm"

	"github.com/JulianBMW/fensterchef/internal/bind"
	"github.com/JulianBMW/fensterchef/internal/geom"
	"github.com/JulianBMW/fensterchef/internal/keysym"
)

// MapWindow maps win, the X half of window.Registry.Show.
func (c *Conn) MapWindow(win xproto.Window) error {
	return xproto.MapWindowChecked(c.XU.Conn(), win).Check()
}

// UnmapWindow unmaps win, the X half of window.Registry.Hide.
func (c *Conn) UnmapWindow(win xproto.Window) error {
	return xproto.UnmapWindowChecked(c.XU.Conn(), win).Check()
}

// ConfigureWindow applies rect and borderWidth to win, the X half of
// every mode-geometry computation (spec §4.2/§4.3).
func (c *Conn) ConfigureWindow(win xproto.Window, rect geom.Rect, borderWidth uint32) error {
	return xproto.ConfigureWindowChecked(c.XU.Conn(), win,
		xproto.ConfigWindowX|xproto.ConfigWindowY|
			xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|
			xproto.ConfigWindowBorderWidth,
		[]uint32{
			uint32(rect.X), uint32(rect.Y),
			rect.Width, rect.Height,
			borderWidth,
		},
	).Check()
}

// SelectClientInput subscribes to the events a managed client window
// itself needs to report (spec §6: PROPERTY_NOTIFY for property
// changes, ENTER_NOTIFY for pointer-follows-focus, STRUCTURE_NOTIFY
// for a client that resizes/destroys itself). Without this no client
// window ever delivers PROPERTY_NOTIFY, so it must be called once for
// every window the wm starts managing (CREATE_NOTIFY and, for windows
// first seen at MAP_REQUEST, there too).
func (c *Conn) SelectClientInput(win xproto.Window) error {
	return xproto.ChangeWindowAttributesChecked(c.XU.Conn(), win, xproto.CwEventMask,
		[]uint32{uint32(
			xproto.EventMaskPropertyChange |
				xproto.EventMaskEnterWindow |
				xproto.EventMaskStructureNotify,
		)},
	).Check()
}

// Restack raises win above all its siblings, the X half of
// Registry.SetWindowAbove.
func (c *Conn) Restack(win xproto.Window) error {
	return xproto.ConfigureWindowChecked(c.XU.Conn(), win,
		xproto.ConfigWindowStackMode,
		[]uint32{uint32(xproto.StackModeAbove)},
	).Check()
}

// SetInputFocus focuses win directly; internal/wm's focus callback
// calls it for every focus change.
func (c *Conn) SetInputFocus(win xproto.Window, timestamp xproto.Timestamp) error {
	return xproto.SetInputFocusChecked(c.XU.Conn(), xproto.InputFocusPointerRoot, win, timestamp).Check()
}

// RequestClose sends WM_DELETE_WINDOW via the WM_PROTOCOLS client
// message, the first step of the close escalation (spec §4.7
// CLOSE-WINDOW, scenario S5). Only sent if win actually advertises
// WM_DELETE_WINDOW support in WM_PROTOCOLS.
func (c *Conn) RequestClose(win xproto.Window) error {
	protocols, err := icccm.WmProtocolsGet(c.XU, win)
	if err != nil {
		return fmt.Errorf("x11: request close: read WM_PROTOCOLS: %w", err)
	}
	supportsDelete := false
	for _, p := range protocols {
		if p == "WM_DELETE_WINDOW" {
			supportsDelete = true
			break
		}
	}
	if !supportsDelete {
		return c.KillClient(win)
	}

	protoAtom, err := xproto.InternAtom(c.XU.Conn(), true, uint16(len("WM_PROTOCOLS")), "WM_PROTOCOLS").Reply()
	if err != nil {
		return fmt.Errorf("x11: request close: intern WM_PROTOCOLS: %w", err)
	}
	deleteAtom, err := xproto.InternAtom(c.XU.Conn(), true, uint16(len("WM_DELETE_WINDOW")), "WM_DELETE_WINDOW").Reply()
	if err != nil {
		return fmt.Errorf("x11: request close: intern WM_DELETE_WINDOW: %w", err)
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   protoAtom.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(deleteAtom.Atom), 0, 0, 0, 0}),
	}
	return xproto.SendEventChecked(c.XU.Conn(), false, win, xproto.EventMaskNoEvent,
		string(ev.Bytes())).Check()
}

// KillClient forcibly terminates win's owning client, the second step
// of the close escalation when a prior WM_DELETE_WINDOW went
// unanswered within action.RequestCloseMaxDuration.
func (c *Conn) KillClient(win xproto.Window) error {
	return xproto.KillClientChecked(c.XU.Conn(), uint32(win)).Check()
}

// GrabKeyboardBindings grabs every key in specs with every modifier
// combination bind.GrabSet already expanded across the ignore mask.
func (c *Conn) GrabKeyboardBindings(km keysym.Keymap, specs []bind.GrabSpec) error {
	for _, s := range specs {
		keycodes := km.KeycodesForKeysym(s.KeyOrButton)
		for _, kc := range keycodes {
			err := xproto.GrabKeyChecked(c.XU.Conn(), true, c.Root,
				uint16(s.Modifiers), kc,
				xproto.GrabModeAsync, xproto.GrabModeAsync,
			).Check()
			if err != nil {
				return fmt.Errorf("x11: grab key %d mod %d: %w", s.KeyOrButton, s.Modifiers, err)
			}
		}
	}
	return nil
}

// UngrabAllKeys releases every keyboard grab on the root window,
// called before a grab-set refresh.
func (c *Conn) UngrabAllKeys() error {
	return xproto.UngrabKeyChecked(c.XU.Conn(), xproto.GrabAny, c.Root, xproto.ModMaskAny).Check()
}

// GrabButtonBindings grabs every button in specs on win (the root
// window, for click-to-focus/move/resize) with every modifier
// combination bind.GrabSet already expanded.
func (c *Conn) GrabButtonBindings(win xproto.Window, specs []bind.GrabSpec) error {
	for _, s := range specs {
		err := xproto.GrabButtonChecked(c.XU.Conn(), true, win,
			xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease|xproto.EventMaskButtonMotion,
			xproto.GrabModeAsync, xproto.GrabModeAsync,
			0, 0,
			uint8(s.KeyOrButton), uint16(s.Modifiers),
		).Check()
		if err != nil {
			return fmt.Errorf("x11: grab button %d mod %d: %w", s.KeyOrButton, s.Modifiers, err)
		}
	}
	return nil
}

// UngrabAllButtons releases every button grab on win.
func (c *Conn) UngrabAllButtons(win xproto.Window) error {
	return xproto.UngrabButtonChecked(c.XU.Conn(), xproto.ButtonIndexAny, win, xproto.ModMaskAny).Check()
}
