// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/bouncy/internal/physics"
)

// Default configuration values.
const (
	DefaultWindowWidth  = 300
	DefaultWindowHeight = 200
	DefaultCellWidth    = 8
	DefaultCellHeight   = 16
	DefaultTitle        = "bouncy"
	DefaultBorderColor  = "63"
	DefaultVolume       = 60
	DefaultMinImpact    = 4.0
)

// Config represents the bouncy configuration.
type Config struct {
	Physics    PhysicsConfig    `toml:"physics"`
	Gesture    GestureConfig    `toml:"gesture"`
	Simulation SimulationConfig `toml:"simulation"`
	Window     WindowConfig     `toml:"window"`
	Terminal   TerminalConfig   `toml:"terminal"`
	Audio      AudioConfig      `toml:"audio"`
}

// PhysicsConfig holds the per-step physics constants.
// They are read once at startup; edits need a restart.
type PhysicsConfig struct {
	Gravity      float64 `toml:"gravity"`
	Friction     float64 `toml:"friction"`
	BounceFactor float64 `toml:"bounce_factor"`
}

// GestureConfig holds drag velocity estimator limits.
type GestureConfig struct {
	MaxHistory   int      `toml:"max_history"`    // Samples kept for the estimate
	MinDistance  int      `toml:"min_distance"`   // Jitter threshold in pixels
	MinDeltaTime Duration `toml:"min_delta_time"` // Floor for the sample time span
}

// SimulationConfig holds timing settings.
type SimulationConfig struct {
	TickInterval Duration `toml:"tick_interval"` // e.g. "16ms"
}

// WindowConfig holds the simulated window's size and start position.
type WindowConfig struct {
	Width  int `toml:"width"`   // Pixels
	Height int `toml:"height"`  // Pixels
	StartX int `toml:"start_x"` // Pixels from work area left
	StartY int `toml:"start_y"` // Pixels from work area top
}

// TerminalConfig holds settings for the terminal desktop.
type TerminalConfig struct {
	CellWidth   int    `toml:"cell_width"`   // Virtual pixels per terminal column
	CellHeight  int    `toml:"cell_height"`  // Virtual pixels per terminal row
	Title       string `toml:"title"`        // Window title
	BorderColor string `toml:"border_color"` // lipgloss color
	ShowHelp    bool   `toml:"show_help"`
}

// AudioConfig holds bounce sound settings.
type AudioConfig struct {
	Enabled   bool    `toml:"enabled"`
	Volume    int     `toml:"volume"`     // 0-100
	Sound     string  `toml:"sound"`      // wav/ogg/mp3 file, empty for a generated thud
	MinImpact float64 `toml:"min_impact"` // Slower impacts are silent
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Physics: PhysicsConfig{
			Gravity:      physics.DefaultGravity,
			Friction:     physics.DefaultFriction,
			BounceFactor: physics.DefaultBounceFactor,
		},
		Gesture: GestureConfig{
			MaxHistory:   physics.DefaultMaxHistory,
			MinDistance:  physics.DefaultMinDistance,
			MinDeltaTime: Duration(physics.DefaultMinDeltaTime),
		},
		Simulation: SimulationConfig{
			TickInterval: Duration(physics.DefaultTickInterval),
		},
		Window: WindowConfig{
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
		},
		Terminal: TerminalConfig{
			CellWidth:   DefaultCellWidth,
			CellHeight:  DefaultCellHeight,
			Title:       DefaultTitle,
			BorderColor: DefaultBorderColor,
			ShowHelp:    true,
		},
		Audio: AudioConfig{
			Enabled:   false,
			Volume:    DefaultVolume,
			MinImpact: DefaultMinImpact,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "bouncy", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validation errors.
var (
	ErrInvalidFriction     = errors.New("physics.friction must be in (0, 1]")
	ErrInvalidBounceFactor = errors.New("physics.bounce_factor must be in [0, 1]")
	ErrInvalidHistory      = errors.New("gesture.max_history must be at least 2")
	ErrInvalidMinDistance  = errors.New("gesture.min_distance must not be negative")
	ErrInvalidDeltaTime    = errors.New("gesture.min_delta_time must be positive")
	ErrInvalidTickInterval = errors.New("simulation.tick_interval must be positive")
	ErrInvalidWindowSize   = errors.New("window width and height must be positive")
	ErrInvalidCellSize     = errors.New("terminal cell_width and cell_height must be positive")
	ErrInvalidVolume       = errors.New("audio.volume must be 0-100")
)

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if c.Physics.Friction <= 0 || c.Physics.Friction > 1 {
		return ErrInvalidFriction
	}
	if c.Physics.BounceFactor < 0 || c.Physics.BounceFactor > 1 {
		return ErrInvalidBounceFactor
	}
	if c.Gesture.MaxHistory < 2 {
		return ErrInvalidHistory
	}
	if c.Gesture.MinDistance < 0 {
		return ErrInvalidMinDistance
	}
	if c.Gesture.MinDeltaTime <= 0 {
		return ErrInvalidDeltaTime
	}
	if c.Simulation.TickInterval <= 0 {
		return ErrInvalidTickInterval
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return ErrInvalidWindowSize
	}
	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 {
		return ErrInvalidCellSize
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return ErrInvalidVolume
	}
	return nil
}

// Constants returns the physics constants.
func (c *Config) Constants() physics.Constants {
	return physics.Constants{
		Gravity:      c.Physics.Gravity,
		Friction:     c.Physics.Friction,
		BounceFactor: c.Physics.BounceFactor,
	}
}

// GestureLimits returns the estimator limits.
func (c *Config) GestureLimits() physics.GestureLimits {
	return physics.GestureLimits{
		MaxHistory:   c.Gesture.MaxHistory,
		MinDistance:  c.Gesture.MinDistance,
		MinDeltaTime: c.Gesture.MinDeltaTime.Duration(),
	}
}

// TickInterval returns the simulation tick interval.
func (c *Config) TickInterval() time.Duration {
	return c.Simulation.TickInterval.Duration()
}

// EngineOptions builds physics engine options from the configuration.
func (c *Config) EngineOptions() physics.Options {
	return physics.Options{
		Constants:    c.Constants(),
		Limits:       c.GestureLimits(),
		TickInterval: c.TickInterval(),
	}
}
