package mapview

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Flick and gesture defaults, in screen pixels and seconds.
const (
	DefaultMaxVelocity          = 2500.0 // px/s
	DefaultDeceleration         = 2500.0 // px/s²
	MinDeceleration             = 500.0
	MaxDeceleration             = 10000.0
	DefaultDragThreshold        = 10.0 // px
	DefaultMinFlickVelocity     = 75.0 // px/s
	DefaultFlickThreshold       = 20.0 // px
	DefaultVelocitySamplePeriod = 50 * time.Millisecond
	DefaultMinZoomLevel         = 0.0
	DefaultMaxZoomLevel         = 23.0
	DefaultMaxPinchZoomChange   = 4.0 // zoom levels either way per pinch
	DefaultWheelZoomStep        = 0.5 // zoom levels per wheel notch
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the interaction tuning consumed at construction. Start from
// DefaultConfig and override fields; a zero Config disables every gesture.
type Config struct {
	PanEnabled      bool `toml:"pan_enabled" yaml:"pan_enabled"`
	ZoomEnabled     bool `toml:"zoom_enabled" yaml:"zoom_enabled"`
	FlickEnabled    bool `toml:"flick_enabled" yaml:"flick_enabled"`
	RotationEnabled bool `toml:"rotation_enabled" yaml:"rotation_enabled"`

	MaxVelocity          float64       `toml:"max_velocity" yaml:"max_velocity"`
	Deceleration         float64       `toml:"deceleration" yaml:"deceleration"`
	DragThreshold        float64       `toml:"drag_threshold" yaml:"drag_threshold"`
	MinFlickVelocity     float64       `toml:"min_flick_velocity" yaml:"min_flick_velocity"`
	FlickThreshold       float64       `toml:"flick_threshold" yaml:"flick_threshold"`
	VelocitySamplePeriod time.Duration `toml:"velocity_sample_period" yaml:"velocity_sample_period"`

	MinZoomLevel       float64 `toml:"min_zoom_level" yaml:"min_zoom_level"`
	MaxZoomLevel       float64 `toml:"max_zoom_level" yaml:"max_zoom_level"`
	MaxPinchZoomChange float64 `toml:"max_pinch_zoom_change" yaml:"max_pinch_zoom_change"`
	WheelZoomStep      float64 `toml:"wheel_zoom_step" yaml:"wheel_zoom_step"`

	// Logger receives Debug-level state transitions. Nil discards.
	Logger *slog.Logger `toml:"-" yaml:"-"`
}

// DefaultConfig returns the default interaction configuration.
func DefaultConfig() Config {
	return Config{
		PanEnabled:           true,
		ZoomEnabled:          true,
		FlickEnabled:         true,
		RotationEnabled:      true,
		MaxVelocity:          DefaultMaxVelocity,
		Deceleration:         DefaultDeceleration,
		DragThreshold:        DefaultDragThreshold,
		MinFlickVelocity:     DefaultMinFlickVelocity,
		FlickThreshold:       DefaultFlickThreshold,
		VelocitySamplePeriod: DefaultVelocitySamplePeriod,
		MinZoomLevel:         DefaultMinZoomLevel,
		MaxZoomLevel:         DefaultMaxZoomLevel,
		MaxPinchZoomChange:   DefaultMaxPinchZoomChange,
		WheelZoomStep:        DefaultWheelZoomStep,
	}
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.MaxVelocity <= 0:
		return fmt.Errorf("%w: max_velocity must be positive, got %v", ErrInvalidConfig, c.MaxVelocity)
	case c.Deceleration <= 0:
		return fmt.Errorf("%w: deceleration must be positive, got %v", ErrInvalidConfig, c.Deceleration)
	case c.DragThreshold < 0:
		return fmt.Errorf("%w: drag_threshold must not be negative, got %v", ErrInvalidConfig, c.DragThreshold)
	case c.MinFlickVelocity < 0:
		return fmt.Errorf("%w: min_flick_velocity must not be negative, got %v", ErrInvalidConfig, c.MinFlickVelocity)
	case c.FlickThreshold < 0:
		return fmt.Errorf("%w: flick_threshold must not be negative, got %v", ErrInvalidConfig, c.FlickThreshold)
	case c.VelocitySamplePeriod <= 0:
		return fmt.Errorf("%w: velocity_sample_period must be positive, got %v", ErrInvalidConfig, c.VelocitySamplePeriod)
	case c.MinZoomLevel > c.MaxZoomLevel:
		return fmt.Errorf("%w: min_zoom_level %v exceeds max_zoom_level %v", ErrInvalidConfig, c.MinZoomLevel, c.MaxZoomLevel)
	case c.MaxPinchZoomChange < 0:
		return fmt.Errorf("%w: max_pinch_zoom_change must not be negative, got %v", ErrInvalidConfig, c.MaxPinchZoomChange)
	}
	return nil
}

// normalized fills unset numeric fields with defaults and bounds the
// deceleration so flicks can neither run away nor last zero time.
func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.MaxVelocity <= 0 {
		c.MaxVelocity = d.MaxVelocity
	}
	if c.Deceleration == 0 {
		c.Deceleration = d.Deceleration
	}
	c.Deceleration = clamp(c.Deceleration, MinDeceleration, MaxDeceleration)
	if c.VelocitySamplePeriod <= 0 {
		c.VelocitySamplePeriod = d.VelocitySamplePeriod
	}
	if c.MinZoomLevel == 0 && c.MaxZoomLevel == 0 {
		c.MinZoomLevel, c.MaxZoomLevel = d.MinZoomLevel, d.MaxZoomLevel
	}
	if c.MaxPinchZoomChange <= 0 {
		c.MaxPinchZoomChange = d.MaxPinchZoomChange
	}
	if c.WheelZoomStep == 0 {
		c.WheelZoomStep = d.WheelZoomStep
	}
	return c
}

// logger returns the configured logger or a discarding one.
func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// ParseConfig decodes a TOML or YAML document over DefaultConfig. TOML is
// tried first; YAML is the fallback. The result is validated.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if _, tomlErr := toml.Decode(string(data), &cfg); tomlErr != nil {
		cfg = DefaultConfig()
		if yamlErr := yaml.Unmarshal(data, &cfg); yamlErr != nil {
			return Config{}, fmt.Errorf("parse config: not TOML (%v) nor YAML: %w", tomlErr, yamlErr)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
