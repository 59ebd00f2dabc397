package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/bouncy/internal/physics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 0.8, cfg.Physics.Gravity)
	assert.Equal(t, 0.98, cfg.Physics.Friction)
	assert.Equal(t, 0.5, cfg.Physics.BounceFactor)
	assert.Equal(t, 10, cfg.Gesture.MaxHistory)
	assert.Equal(t, 50, cfg.Gesture.MinDistance)
	assert.Equal(t, 50*time.Millisecond, cfg.Gesture.MinDeltaTime.Duration())
	assert.Equal(t, 16*time.Millisecond, cfg.TickInterval())
	assert.Equal(t, 300, cfg.Window.Width)
	assert.Equal(t, 200, cfg.Window.Height)
	assert.False(t, cfg.Audio.Enabled)
	assert.True(t, cfg.Terminal.ShowHelp)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultConfig_MatchesPhysicsDefaults(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, physics.DefaultConstants(), cfg.Constants())
	assert.Equal(t, physics.DefaultGestureLimits(), cfg.GestureLimits())

	opts := cfg.EngineOptions()
	assert.Equal(t, physics.DefaultTickInterval, opts.TickInterval)
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Physics, cfg.Physics)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[physics]
gravity = 1.2
friction = 0.95
bounce_factor = 0.7

[gesture]
max_history = 6
min_distance = 20
min_delta_time = "30ms"

[simulation]
tick_interval = "33ms"

[window]
width = 400
height = 240
start_x = 50
start_y = 10

[terminal]
cell_width = 10
cell_height = 20
title = "box"
border_color = "#ff00ff"
show_help = false

[audio]
enabled = true
volume = 25
sound = "~/thud.wav"
min_impact = 6.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 1.2, cfg.Physics.Gravity)
	assert.Equal(t, 0.95, cfg.Physics.Friction)
	assert.Equal(t, 0.7, cfg.Physics.BounceFactor)
	assert.Equal(t, 6, cfg.Gesture.MaxHistory)
	assert.Equal(t, 20, cfg.Gesture.MinDistance)
	assert.Equal(t, 30*time.Millisecond, cfg.Gesture.MinDeltaTime.Duration())
	assert.Equal(t, 33*time.Millisecond, cfg.TickInterval())
	assert.Equal(t, 400, cfg.Window.Width)
	assert.Equal(t, 240, cfg.Window.Height)
	assert.Equal(t, 50, cfg.Window.StartX)
	assert.Equal(t, 10, cfg.Window.StartY)
	assert.Equal(t, 10, cfg.Terminal.CellWidth)
	assert.Equal(t, 20, cfg.Terminal.CellHeight)
	assert.Equal(t, "box", cfg.Terminal.Title)
	assert.Equal(t, "#ff00ff", cfg.Terminal.BorderColor)
	assert.False(t, cfg.Terminal.ShowHelp)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 25, cfg.Audio.Volume)
	assert.Equal(t, "~/thud.wav", cfg.Audio.Sound)
	assert.Equal(t, 6.5, cfg.Audio.MinImpact)
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[physics]
gravity = 0.0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 0.0, cfg.Physics.Gravity)
	assert.Equal(t, 0.98, cfg.Physics.Friction)
	assert.Equal(t, 16*time.Millisecond, cfg.TickInterval())
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, os.WriteFile(path, []byte(`this is not valid toml [`), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"friction zero", "[physics]\nfriction = 0.0\n", ErrInvalidFriction},
		{"friction above one", "[physics]\nfriction = 1.5\n", ErrInvalidFriction},
		{"bounce above one", "[physics]\nbounce_factor = 2.0\n", ErrInvalidBounceFactor},
		{"short history", "[gesture]\nmax_history = 1\n", ErrInvalidHistory},
		{"negative distance", "[gesture]\nmin_distance = -1\n", ErrInvalidMinDistance},
		{"zero delta", "[gesture]\nmin_delta_time = \"0s\"\n", ErrInvalidDeltaTime},
		{"zero tick", "[simulation]\ntick_interval = \"0s\"\n", ErrInvalidTickInterval},
		{"empty window", "[window]\nwidth = 0\n", ErrInvalidWindowSize},
		{"empty cell", "[terminal]\ncell_height = 0\n", ErrInvalidCellSize},
		{"loud", "[audio]\nvolume = 101\n", ErrInvalidVolume},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadConfig(path)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestConfig_Save(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "config.toml")

	cfg := DefaultConfig()
	cfg.Physics.Gravity = 0.4
	cfg.Simulation.TickInterval = Duration(20 * time.Millisecond)

	require.NoError(t, cfg.Save(path))

	_, err := os.Stat(path)
	require.NoError(t, err)

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.4, loaded.Physics.Gravity)
	assert.Equal(t, 20*time.Millisecond, loaded.TickInterval())
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"16ms", 16 * time.Millisecond, false},
		{"1s", time.Second, false},
		{"16", 16 * time.Millisecond, false},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration())
		})
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/bouncy/config.toml", ConfigPath())
}

func TestConfigPathDefault(t *testing.T) {
	path := ConfigPath()
	assert.Contains(t, path, "bouncy/config.toml")
}
