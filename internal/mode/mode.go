package mode

import (
	"github.com/JulianBMW/fensterchef/internal/frame"
	"github.com/JulianBMW/fensterchef/internal/monitor"
	"github.com/JulianBMW/fensterchef/internal/window"
)

// Config is the subset of the user configuration set_window_mode
// needs: the configured border width and gap sizes, and the
// tiling.auto_fill_void toggle.
type Config struct {
	BorderSize   uint32
	Gaps         frame.Gaps
	AutoFillVoid bool
}

// Env bundles the collaborators set_window_mode needs beyond the
// window itself: the registry (for the taken-list and eviction), the
// monitor set (for geometry derivation), the current focus frame (the
// TILING placement target), and an optional hook to publish
// _NET_WM_ALLOWED_ACTIONS. Set skips publishing when the hook is nil;
// internal/wm leaves it nil, so _NET_WM_ALLOWED_ACTIONS is not
// published.
type Env struct {
	Registry   *window.Registry
	Monitors   *monitor.Set
	Config     Config
	FocusFrame *frame.Frame
	PublishAllowedActions func(w *window.Window, mode window.Mode)
}

// Set is the only mode mutator (spec §4.2 set_window_mode). It is a
// no-op if w is already in newMode, or if w.IsModeForced is set and
// force is false.
func Set(w *window.Window, newMode window.Mode, force bool, env Env) {
	if w.Mode == newMode {
		return
	}
	if w.IsModeForced && !force {
		return
	}

	oldMode := w.Mode
	wasVisible := w.IsVisible

	if wasVisible && oldMode == window.ModeTiling {
		if leaf, ok := w.Frame.(*frame.Frame); ok && leaf != nil {
			leaf.Window = nil
			w.Frame = nil
			if env.Config.AutoFillVoid {
				if taken := env.Registry.PopTaken(); taken != nil {
					leaf.Window = taken
					taken.Frame = leaf
					taken.IsVisible = true
					frame.Resize(leaf, leaf.Rect, env.Config.BorderSize, env.Config.Gaps)
				}
			}
		}
	}

	switch newMode {
	case window.ModeTiling:
		if env.FocusFrame != nil {
			if occupant := env.FocusFrame.Window; occupant != nil && occupant != w {
				env.Registry.Hide(occupant)
				occupant.Frame = nil
			}
			env.FocusFrame.Window = w
			w.Frame = env.FocusFrame
			frame.Resize(env.FocusFrame, env.FocusFrame.Rect, env.Config.BorderSize, env.Config.Gaps)
		}
	case window.ModePopup:
		ConfigurePopupSize(w, env.Monitors)
	case window.ModeFullscreen:
		ConfigureFullscreenSize(w, env.Monitors)
	case window.ModeDock:
		ConfigureDockSize(w, env.Monitors)
	}

	w.BorderWidth = borderWidthFor(w, newMode, env.Config.BorderSize)

	if !wasVisible && oldMode == window.ModeTiling {
		env.Registry.RemoveTaken(w)
	}

	w.PreviousMode = oldMode
	w.Mode = newMode
	w.IsModeForced = force

	if env.PublishAllowedActions != nil {
		env.PublishAllowedActions(w, newMode)
	}
}

func borderWidthFor(w *window.Window, m window.Mode, configured uint32) uint32 {
	switch m {
	case window.ModeTiling:
		return configured
	case window.ModePopup:
		if w.Properties.Motif.HasDecorationsFlag && w.Properties.Motif.NoDecorations {
			return 0
		}
		return configured
	default:
		return 0
	}
}
