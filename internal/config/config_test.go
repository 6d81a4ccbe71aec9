package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JulianBMW/fensterchef/internal/action"
	"github.com/JulianBMW/fensterchef/internal/bind"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "fensterchef.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadAppliesDefaultsForAbsentCategories(t *testing.T) {
	path := writeConfig(t, `
[border]
size = 4
`)
	cfg, _, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), cfg.Border.Size)
	assert.True(t, cfg.Tiling.AutoFillVoid, "defaults not present in the file should survive decoding")
}

func TestLoadResolvesKeyBindingActionsAndModifiers(t *testing.T) {
	path := writeConfig(t, `
[keyboard]
ignore_modifiers = ["lock"]

[[keyboard.keys]]
key = "Return"
modifiers = ["mod4"]
actions = [{ name = "TOGGLE-TILING" }]
`)
	cfg, keys, _, err := Load(path)
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, bind.Mod4Mask, keys[0].Modifiers)
	require.Len(t, keys[0].Actions, 1)
	assert.Equal(t, action.ToggleTiling, keys[0].Actions[0].Code)

	ignore, err := cfg.KeyIgnoreModifiers()
	require.NoError(t, err)
	assert.Equal(t, bind.LockMask, ignore)
}

func TestLoadResolvesQuadActionParameter(t *testing.T) {
	path := writeConfig(t, `
[[mouse.buttons]]
button = 1
modifiers = ["mod4"]
actions = [{ name = "RESIZE-BY", quad = [0, 0, 10, 10] }]
`)
	_, _, buttons, err := Load(path)
	require.NoError(t, err)
	require.Len(t, buttons, 1)
	require.Len(t, buttons[0].Actions, 1)
	assert.Equal(t, [4]int32{0, 0, 10, 10}, buttons[0].Actions[0].Param.Quad)
}

func TestLoadRejectsUnknownActionName(t *testing.T) {
	path := writeConfig(t, `
[[keyboard.keys]]
key = "a"
actions = [{ name = "NOT-A-REAL-ACTION" }]
`)
	_, _, _, err := Load(path)
	assert.Error(t, err)
}

func TestLoadReturnsParseErrorOnMalformedToml(t *testing.T) {
	path := writeConfig(t, "this is not valid toml [[[")
	_, _, _, err := Load(path)
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}
