package action

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JulianBMW/fensterchef/internal/focus"
	"github.com/JulianBMW/fensterchef/internal/frame"
	"github.com/JulianBMW/fensterchef/internal/geom"
	"github.com/JulianBMW/fensterchef/internal/mode"
	"github.com/JulianBMW/fensterchef/internal/monitor"
	"github.com/JulianBMW/fensterchef/internal/moveresize"
	"github.com/JulianBMW/fensterchef/internal/window"
)

func newDispatcher(t *testing.T, rect geom.Rect) (*Dispatcher, *frame.Frame) {
	t.Helper()
	root := frame.NewRoot(rect)
	set := monitor.NewSet([]*monitor.Monitor{{Name: "A", Rect: rect, Root: root, Primary: true}})
	reg := window.NewRegistry()
	fm := focus.NewManager(reg, root)
	d := &Dispatcher{
		Registry:   reg,
		Monitors:   set,
		ModeEnv:    mode.Env{Registry: reg, Monitors: set, Config: mode.Config{BorderSize: 2}, FocusFrame: root},
		Focus:      fm,
		MoveResize: &moveresize.Machine{},
		FocusRoot:  root,
	}
	return d, root
}

// TestCloseWindowEscalatesOnDoubleClose is scenario S5 from spec §8.
func TestCloseWindowEscalatesOnDoubleClose(t *testing.T) {
	d, _ := newDispatcher(t, geom.Rect{Width: 800, Height: 600})
	w := window.New(1)
	d.Registry.Register(w)
	d.Registry.Show(w)

	var politeCount, killCount int
	clock := time.Unix(1000, 0)
	d.Now = func() time.Time { return clock }
	d.RequestClose = func(*window.Window) { politeCount++ }
	d.KillClient = func(*window.Window) { killCount++ }

	d.Do(Action{Code: CloseWindow}, w)
	assert.Equal(t, 1, politeCount)
	assert.Equal(t, 0, killCount)

	clock = clock.Add(RequestCloseMaxDuration / 2)
	d.Do(Action{Code: CloseWindow}, w)
	assert.Equal(t, 1, politeCount, "second close within the escalation window must not resend the polite request")
	assert.Equal(t, 1, killCount, "second close within the escalation window must kill the client")
}

func TestCloseWindowDoesNotEscalateAfterTimeout(t *testing.T) {
	d, _ := newDispatcher(t, geom.Rect{Width: 800, Height: 600})
	w := window.New(1)
	d.Registry.Register(w)
	d.Registry.Show(w)

	var politeCount, killCount int
	clock := time.Unix(1000, 0)
	d.Now = func() time.Time { return clock }
	d.RequestClose = func(*window.Window) { politeCount++ }
	d.KillClient = func(*window.Window) { killCount++ }

	d.Do(Action{Code: CloseWindow}, w)
	clock = clock.Add(RequestCloseMaxDuration * 2)
	d.Do(Action{Code: CloseWindow}, w)
	assert.Equal(t, 2, politeCount)
	assert.Equal(t, 0, killCount)
}

func TestToggleTilingFlipsBetweenTilingAndPopup(t *testing.T) {
	d, root := newDispatcher(t, geom.Rect{Width: 800, Height: 600})
	w := window.New(1)
	w.Mode = window.ModePopup
	d.Registry.Register(w)
	d.Registry.Show(w)

	d.Do(Action{Code: ToggleTiling}, w)
	assert.Equal(t, window.ModeTiling, w.Mode)
	assert.Equal(t, root, w.Frame)

	d.Do(Action{Code: ToggleTiling}, w)
	assert.Equal(t, window.ModePopup, w.Mode)
}

func TestNextWindowNotifiesWhenNoOtherWindow(t *testing.T) {
	d, _ := newDispatcher(t, geom.Rect{Width: 800, Height: 600})
	w := window.New(1)
	d.Registry.Register(w)
	d.Registry.Show(w)

	var notified string
	d.Notify = func(msg string) { notified = msg }

	d.Do(Action{Code: NextWindow}, w)
	assert.Equal(t, "No other window", notified)
}

func TestNextWindowFindsHiddenTilingWindow(t *testing.T) {
	d, _ := newDispatcher(t, geom.Rect{Width: 800, Height: 600})
	a := window.New(1)
	a.Mode = window.ModeTiling
	d.Registry.Register(a)
	d.Registry.Show(a)

	b := window.New(2)
	b.Mode = window.ModeTiling
	d.Registry.Register(b)
	d.Registry.Show(b)
	d.Registry.Hide(b)

	d.Do(Action{Code: NextWindow}, a)
	assert.True(t, b.IsVisible, "NEXT-WINDOW must show the found hidden tiling window")
}

func TestMoveRightSelectsAdjacentFrame(t *testing.T) {
	d, root := newDispatcher(t, geom.Rect{Width: 800, Height: 600})
	require.NoError(t, frame.Split(root, frame.Horizontal, 0, frame.Gaps{}))
	d.Focus.SetFocusFrame(root.Left)

	d.Do(Action{Code: MoveRight}, nil)
	assert.Equal(t, root.Right, d.Focus.FocusFrame)
}

func TestResizeByBumpsFrameEdgeBetweenSiblings(t *testing.T) {
	d, root := newDispatcher(t, geom.Rect{Width: 800, Height: 600})
	require.NoError(t, frame.Split(root, frame.Horizontal, 0, frame.Gaps{}))
	w := window.New(1)
	w.Mode = window.ModeTiling
	root.Left.Window = w
	w.Frame = root.Left

	d.Do(Action{Code: ResizeBy, Param: Value{Type: Quad, Quad: [4]int32{0, 0, 50, 0}}}, w)
	assert.Equal(t, uint32(450), root.Left.Rect.Width)
	assert.Equal(t, uint32(350), root.Right.Rect.Width)
}

func TestResizeByAdjustsPopupDirectly(t *testing.T) {
	d, _ := newDispatcher(t, geom.Rect{Width: 800, Height: 600})
	w := window.New(1)
	w.Mode = window.ModePopup
	w.Position = geom.Rect{X: 100, Y: 100, Width: 200, Height: 150}
	d.Registry.Register(w)
	d.Registry.Show(w)

	d.Do(Action{Code: ResizeBy, Param: Value{Type: Quad, Quad: [4]int32{0, 0, 30, 20}}}, w)
	assert.Equal(t, geom.Rect{X: 100, Y: 100, Width: 230, Height: 170}, w.Position)
}

func TestQuitClearsRunningFlag(t *testing.T) {
	d, _ := newDispatcher(t, geom.Rect{Width: 800, Height: 600})
	running := true
	d.Running = &running
	d.Do(Action{Code: Quit}, nil)
	assert.False(t, running)
}

func TestReloadConfigurationSetsDeferredFlag(t *testing.T) {
	d, _ := newDispatcher(t, geom.Rect{Width: 800, Height: 600})
	reload := false
	d.ReloadRequested = &reload
	d.Do(Action{Code: ReloadConfiguration}, nil)
	assert.True(t, reload)
}

func TestValidateRejectsMismatchedParamType(t *testing.T) {
	err := Validate(Action{Code: Run, Param: Value{Type: Void}})
	assert.Error(t, err)

	err = Validate(Action{Code: Run, Param: Value{Type: String, Str: "ls"}})
	assert.NoError(t, err)
}
