package config

import (
	"fmt"

	"github.com/JulianBMW/fensterchef/internal/action"
	"github.com/JulianBMW/fensterchef/internal/bind"
	"github.com/JulianBMW/fensterchef/internal/keysym"
)

// RawAction is an action line as it appears in the TOML file: a name
// (spec §6 "uppercased-hyphenated", e.g. "SPLIT-HORIZONTALLY") plus
// whichever parameter field its type needs.
type RawAction struct {
	Name string   `toml:"name"`
	Str  string   `toml:"string"`
	Quad [4]int32 `toml:"quad"`
}

// RawBinding is one `mouse.buttons[]` or `keyboard.keys[]` entry.
type RawBinding struct {
	Key       string      `toml:"key"`
	Button    uint32      `toml:"button"`
	Modifiers []string    `toml:"modifiers"`
	Flags     []string    `toml:"flags"`
	Actions   []RawAction `toml:"actions"`
}

var actionNameTable = map[string]action.Code{
	"NONE":                 action.None,
	"RELOAD-CONFIGURATION": action.ReloadConfiguration,
	"CLOSE-WINDOW":         action.CloseWindow,
	"MINIMIZE-WINDOW":      action.MinimizeWindow,
	"FOCUS-WINDOW":         action.FocusWindow,
	"INITIATE-MOVE":        action.InitiateMove,
	"INITIATE-RESIZE":      action.InitiateResize,
	"NEXT-WINDOW":          action.NextWindow,
	"PREVIOUS-WINDOW":      action.PreviousWindow,
	"REMOVE-FRAME":         action.RemoveFrame,
	"TOGGLE-TILING":        action.ToggleTiling,
	"TRAVERSE-FOCUS":       action.TraverseFocus,
	"TOGGLE-FULLSCREEN":    action.ToggleFullscreen,
	"SPLIT-HORIZONTALLY":   action.SplitHorizontally,
	"SPLIT-VERTICALLY":     action.SplitVertically,
	"MOVE-UP":              action.MoveUp,
	"MOVE-LEFT":            action.MoveLeft,
	"MOVE-RIGHT":           action.MoveRight,
	"MOVE-DOWN":            action.MoveDown,
	"SHOW-WINDOW-LIST":     action.ShowWindowList,
	"RUN":                  action.Run,
	"SHOW-MESSAGE":         action.ShowMessage,
	"SHOW-MESSAGE-RUN":     action.ShowMessageRun,
	"RESIZE-BY":            action.ResizeBy,
	"QUIT":                 action.Quit,
}

var modifierNameTable = map[string]bind.Modifiers{
	"shift":   bind.ShiftMask,
	"lock":    bind.LockMask,
	"control": bind.ControlMask,
	"ctrl":    bind.ControlMask,
	"mod1":    bind.Mod1Mask,
	"alt":     bind.Mod1Mask,
	"mod2":    bind.Mod2Mask,
	"mod3":    bind.Mod3Mask,
	"mod4":    bind.Mod4Mask,
	"super":   bind.Mod4Mask,
	"mod5":    bind.Mod5Mask,
}

var flagNameTable = map[string]bind.Flags{
	"release":     bind.Release,
	"transparent": bind.Transparent,
}

func resolveModifiers(names []string) (bind.Modifiers, error) {
	var mods bind.Modifiers
	for _, n := range names {
		m, ok := modifierNameTable[n]
		if !ok {
			return 0, fmt.Errorf("config: unknown modifier name %q", n)
		}
		mods |= m
	}
	return mods, nil
}

func resolveFlags(names []string) (bind.Flags, error) {
	var flags bind.Flags
	for _, n := range names {
		f, ok := flagNameTable[n]
		if !ok {
			return 0, fmt.Errorf("config: unknown flag name %q", n)
		}
		flags |= f
	}
	return flags, nil
}

func resolveActions(raws []RawAction) ([]action.Action, error) {
	actions := make([]action.Action, 0, len(raws))
	for _, ra := range raws {
		code, ok := actionNameTable[ra.Name]
		if !ok {
			return nil, fmt.Errorf("config: unknown action name %q", ra.Name)
		}
		var value action.Value
		switch action.ParamTypeFor(code) {
		case action.String:
			value = action.Value{Type: action.String, Str: ra.Str}
		case action.Quad:
			value = action.Value{Type: action.Quad, Quad: ra.Quad}
		default:
			value = action.Value{Type: action.Void}
		}
		a := action.Action{Code: code, Param: value}
		if err := action.Validate(a); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, nil
}

func resolveBindings(raws []RawBinding, isKey bool) ([]bind.Binding, error) {
	bindings := make([]bind.Binding, 0, len(raws))
	for _, raw := range raws {
		var keyOrButton uint32
		if isKey {
			sym, ok := keysym.ParseName(raw.Key)
			if !ok {
				return nil, fmt.Errorf("config: unknown key name %q", raw.Key)
			}
			keyOrButton = sym
		} else {
			keyOrButton = raw.Button
		}
		mods, err := resolveModifiers(raw.Modifiers)
		if err != nil {
			return nil, err
		}
		flags, err := resolveFlags(raw.Flags)
		if err != nil {
			return nil, err
		}
		actions, err := resolveActions(raw.Actions)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, bind.Binding{
			KeyOrButton: keyOrButton,
			Modifiers:   mods,
			Flags:       flags,
			Actions:     actions,
		})
	}
	return bindings, nil
}
