package mode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JulianBMW/fensterchef/internal/frame"
	"github.com/JulianBMW/fensterchef/internal/geom"
	"github.com/JulianBMW/fensterchef/internal/monitor"
	"github.com/JulianBMW/fensterchef/internal/window"
)

func singleMonitorEnv(t *testing.T, rect geom.Rect) (Env, *frame.Frame) {
	t.Helper()
	root := frame.NewRoot(rect)
	set := monitor.NewSet([]*monitor.Monitor{{Name: "A", Rect: rect, Root: root, Primary: true}})
	reg := window.NewRegistry()
	env := Env{
		Registry:   reg,
		Monitors:   set,
		Config:     Config{BorderSize: 2, AutoFillVoid: true},
		FocusFrame: root,
	}
	return env, root
}

// TestPopupGeometryMemory is scenario S2 from spec §8.
func TestPopupGeometryMemory(t *testing.T) {
	env, root := singleMonitorEnv(t, geom.Rect{Width: 1000, Height: 800})
	w := window.New(1)
	w.Properties.SizeHints = window.SizeHints{HasMinSize: true, HasMaxSize: true, MinWidth: 300, MaxWidth: 300, MinHeight: 200, MaxHeight: 200}
	w.Mode = Predict(w)
	require.Equal(t, window.ModePopup, w.Mode)

	env.Registry.Register(w)
	env.Registry.Show(w)
	ConfigurePopupSize(w, env.Monitors)
	wantX := int32(1000-300) / 2
	wantY := int32(800-200) / 2
	assert.Equal(t, geom.Rect{X: wantX, Y: wantY, Width: 300, Height: 200}, w.Position)
	savedPopup := w.PopupPosition

	Set(w, window.ModeTiling, false, env)
	assert.Equal(t, window.ModeTiling, w.Mode)
	assert.Equal(t, root, w.Frame)

	Set(w, window.ModePopup, false, env)
	assert.Equal(t, window.ModePopup, w.Mode)
	assert.Equal(t, savedPopup, w.Position, "popup geometry must be restored from memory")
	assert.Equal(t, savedPopup, w.PopupPosition)
}

// TestFullscreenTogglePreservesPrevious is scenario S3 from spec §8.
func TestFullscreenTogglePreservesPrevious(t *testing.T) {
	env, _ := singleMonitorEnv(t, geom.Rect{Width: 1920, Height: 1080})
	w := window.New(1)
	w.Mode = window.ModePopup
	w.Position = geom.Rect{X: 100, Y: 100, Width: 500, Height: 400}
	w.PopupPosition = w.Position
	env.Registry.Register(w)
	env.Registry.Show(w)

	Set(w, window.ModeFullscreen, true, env)
	assert.Equal(t, window.ModeFullscreen, w.Mode)
	assert.Equal(t, geom.Rect{Width: 1920, Height: 1080}, w.Position)
	assert.Equal(t, uint32(0), w.BorderWidth)

	Set(w, window.ModePopup, true, env)
	assert.Equal(t, window.ModePopup, w.Mode)
	assert.Equal(t, geom.Rect{X: 100, Y: 100, Width: 500, Height: 400}, w.Position)
}

func TestModeForcedBlocksUnforcedTransition(t *testing.T) {
	env, _ := singleMonitorEnv(t, geom.Rect{Width: 800, Height: 600})
	w := window.New(1)
	w.Mode = window.ModePopup
	w.IsModeForced = true
	env.Registry.Register(w)
	env.Registry.Show(w)

	Set(w, window.ModeFullscreen, false, env)
	assert.Equal(t, window.ModePopup, w.Mode, "forced mode should resist an unforced transition")

	Set(w, window.ModeFullscreen, true, env)
	assert.Equal(t, window.ModeFullscreen, w.Mode)
}

func TestSetWindowModeRoundTripRestoresBorderAndGeometry(t *testing.T) {
	env, _ := singleMonitorEnv(t, geom.Rect{Width: 800, Height: 600})
	w := window.New(1)
	w.Mode = window.ModePopup
	w.Position = geom.Rect{X: 50, Y: 60, Width: 300, Height: 200}
	w.PopupPosition = w.Position
	env.Registry.Register(w)
	env.Registry.Show(w)
	wantBorder := env.Config.BorderSize // popup without motif no-decorations uses the configured size

	Set(w, window.ModeFullscreen, true, env)
	Set(w, window.ModePopup, true, env)

	assert.Equal(t, wantBorder, w.BorderWidth)
	assert.Equal(t, geom.Rect{X: 50, Y: 60, Width: 300, Height: 200}, w.Position)
}

func TestTilingEvictsPriorOccupant(t *testing.T) {
	env, root := singleMonitorEnv(t, geom.Rect{Width: 800, Height: 600})
	a := window.New(1)
	a.Mode = window.ModeTiling
	env.Registry.Register(a)
	env.Registry.Show(a)
	root.Window = a
	a.Frame = root

	b := window.New(2)
	b.Mode = window.ModePopup
	env.Registry.Register(b)
	env.Registry.Show(b)

	Set(b, window.ModeTiling, false, env)
	assert.Equal(t, b, root.Window)
	assert.False(t, a.IsVisible, "prior tiling occupant must be hidden when evicted")
}
