package mode

import "github.com/JulianBMW/fensterchef/internal/window"

// Fixed per-mode _NET_WM_ALLOWED_ACTIONS tables (spec §6).
const (
	actionMaximizeHorz  = "_NET_WM_ACTION_MAXIMIZE_HORZ"
	actionMaximizeVert  = "_NET_WM_ACTION_MAXIMIZE_VERT"
	actionFullscreen    = "_NET_WM_ACTION_FULLSCREEN"
	actionChangeDesktop = "_NET_WM_ACTION_CHANGE_DESKTOP"
	actionClose         = "_NET_WM_ACTION_CLOSE"
	actionMove          = "_NET_WM_ACTION_MOVE"
	actionResize        = "_NET_WM_ACTION_RESIZE"
	actionMinimize      = "_NET_WM_ACTION_MINIMIZE"
	actionShade         = "_NET_WM_ACTION_SHADE"
	actionStick         = "_NET_WM_ACTION_STICK"
	actionAbove         = "_NET_WM_ACTION_ABOVE"
	actionBelow         = "_NET_WM_ACTION_BELOW"
)

var allowedActionsByMode = map[window.Mode][]string{
	window.ModeTiling: {
		actionMaximizeHorz, actionMaximizeVert, actionFullscreen,
		actionChangeDesktop, actionClose,
	},
	window.ModePopup: {
		actionMove, actionResize, actionMinimize, actionShade, actionStick,
		actionMaximizeHorz, actionMaximizeVert, actionFullscreen,
		actionChangeDesktop, actionClose, actionAbove, actionBelow,
	},
	window.ModeFullscreen: {
		actionChangeDesktop, actionClose, actionAbove, actionBelow,
	},
	window.ModeDock: {},
}

// AllowedActions returns the fixed _NET_WM_ALLOWED_ACTIONS atom table
// for mode, per spec §6.
func AllowedActions(m window.Mode) []string {
	return allowedActionsByMode[m]
}
