// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Playfield PlayfieldConfig `yaml:"playfield"`
	Ball      BallConfig      `yaml:"ball"`
	Paddle    PaddleConfig    `yaml:"paddle"`
	Rally     RallyConfig     `yaml:"rally"`
	Timing    TimingConfig    `yaml:"timing"`
	Options   OptionsConfig   `yaml:"options"`
	Sound     SoundConfig     `yaml:"sound"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PlayfieldConfig holds the playfield dimensions in simulation units.
type PlayfieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BallConfig holds ball geometry and base speed.
type BallConfig struct {
	Size          float64 `yaml:"size"`           // Radius
	MoveIncrement float64 `yaml:"move_increment"` // Base |speedX| and |speedY| at serve
}

// PaddleConfig holds paddle geometry shared by both sides.
type PaddleConfig struct {
	Length   float64 `yaml:"length"`
	Width    float64 `yaml:"width"`
	Inset    float64 `yaml:"inset"`     // Gap between goal line and paddle
	MoveStep float64 `yaml:"move_step"` // Displacement per paddle step
}

// RallyConfig holds escalation and goal parameters.
type RallyConfig struct {
	Acceleration  float64 `yaml:"acceleration"`   // Multiplier per paddle hit
	MaxMultiplier float64 `yaml:"max_multiplier"` // 0 = uncapped
	GoalDelay     float64 `yaml:"goal_delay"`     // Seconds
	MaxAngle      float64 `yaml:"max_angle"`      // Degrees
}

// TimingConfig holds the base step rates of the update loop.
type TimingConfig struct {
	BallRate          float64 `yaml:"ball_rate"`
	PaddleRate        float64 `yaml:"paddle_rate"`
	MaxStepsPerUpdate int     `yaml:"max_steps_per_update"`
}

// OptionsConfig holds the initial option flags.
type OptionsConfig struct {
	SoundOn      bool `yaml:"sound_on"`
	AngledReturn bool `yaml:"angled_return"`
}

// SoundConfig holds sound sink parameters.
type SoundConfig struct {
	Dir       string `yaml:"dir"`
	QueueSize int    `yaml:"queue_size"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	LogRallies bool `yaml:"log_rallies"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	LeftPaddleX  float64 // Paddle.Inset
	RightPaddleX float64 // Playfield.Width - Inset - Paddle.Width
	MaxAngleRad  float64 // Rally.MaxAngle in radians
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ComputeDerived()

	return cfg, nil
}

// Validate reports the first parameter that cannot drive a match.
func (c *Config) Validate() error {
	switch {
	case c.Playfield.Width <= 0 || c.Playfield.Height <= 0:
		return fmt.Errorf("%w: playfield %vx%v", ErrInvalid, c.Playfield.Width, c.Playfield.Height)
	case c.Ball.Size <= 0:
		return fmt.Errorf("%w: ball size %v", ErrInvalid, c.Ball.Size)
	case c.Ball.MoveIncrement <= 0:
		return fmt.Errorf("%w: ball move increment %v", ErrInvalid, c.Ball.MoveIncrement)
	case 2*c.Ball.Size >= c.Playfield.Height:
		return fmt.Errorf("%w: ball size %v does not fit playfield height %v", ErrInvalid, c.Ball.Size, c.Playfield.Height)
	case c.Paddle.Length <= 0 || c.Paddle.Width <= 0:
		return fmt.Errorf("%w: paddle %vx%v", ErrInvalid, c.Paddle.Width, c.Paddle.Length)
	case c.Paddle.Length > c.Playfield.Height:
		return fmt.Errorf("%w: paddle length %v exceeds playfield height %v", ErrInvalid, c.Paddle.Length, c.Playfield.Height)
	case c.Paddle.Inset < 0 || 2*(c.Paddle.Inset+c.Paddle.Width) >= c.Playfield.Width:
		return fmt.Errorf("%w: paddle inset %v", ErrInvalid, c.Paddle.Inset)
	case c.Paddle.MoveStep <= 0:
		return fmt.Errorf("%w: paddle move step %v", ErrInvalid, c.Paddle.MoveStep)
	case c.Rally.Acceleration < 1:
		return fmt.Errorf("%w: rally acceleration %v < 1", ErrInvalid, c.Rally.Acceleration)
	case c.Rally.MaxMultiplier != 0 && c.Rally.MaxMultiplier < 1:
		return fmt.Errorf("%w: rally max multiplier %v", ErrInvalid, c.Rally.MaxMultiplier)
	case c.Rally.GoalDelay < 0:
		return fmt.Errorf("%w: goal delay %v", ErrInvalid, c.Rally.GoalDelay)
	case c.Rally.MaxAngle <= 0 || c.Rally.MaxAngle >= 90:
		return fmt.Errorf("%w: max angle %v outside (0, 90)", ErrInvalid, c.Rally.MaxAngle)
	case c.Timing.BallRate <= 0 || c.Timing.PaddleRate <= 0:
		return fmt.Errorf("%w: step rates %v/%v", ErrInvalid, c.Timing.BallRate, c.Timing.PaddleRate)
	case c.Timing.MaxStepsPerUpdate < 1:
		return fmt.Errorf("%w: max steps per update %d", ErrInvalid, c.Timing.MaxStepsPerUpdate)
	}
	return nil
}

// ComputeDerived calculates values derived from loaded config.
// Call again after changing playfield or paddle geometry.
func (c *Config) ComputeDerived() {
	c.Derived.LeftPaddleX = c.Paddle.Inset
	c.Derived.RightPaddleX = c.Playfield.Width - c.Paddle.Inset - c.Paddle.Width
	c.Derived.MaxAngleRad = c.Rally.MaxAngle * math.Pi / 180

	if c.Sound.QueueSize < 1 {
		c.Sound.QueueSize = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
