package awesomemap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the tunables of a Map and its input recognizer. Durations are
// stored in milliseconds so that YAML and TOML files read the same way.
//
// Example (YAML):
//
//	animation:
//	  durationMs: 300
//	  easing: ease-out
//	input:
//	  dragDeadZone: 4
//	zoom:
//	  min: 0.5
//	  max: 4
type Config struct {
	Animation AnimationConfig `yaml:"animation" toml:"animation"`
	Input     InputConfig     `yaml:"input" toml:"input"`
	Zoom      ZoomConfig      `yaml:"zoom" toml:"zoom"`
	// Debug lowers the log level to debug.
	Debug bool `yaml:"debug" toml:"debug"`
}

// AnimationConfig controls programmatic transitions and their completion
// fallback.
type AnimationConfig struct {
	DurationMS int    `yaml:"durationMs" toml:"duration_ms"`
	Easing     string `yaml:"easing" toml:"easing"`
	// FallbackGraceMS is added to an animation's duration before it is
	// forced to complete.
	FallbackGraceMS int `yaml:"fallbackGraceMs" toml:"fallback_grace_ms"`
}

// InputConfig controls gesture classification.
type InputConfig struct {
	DragDeadZone        float64 `yaml:"dragDeadZone" toml:"drag_dead_zone"`
	TapMaxMS            int     `yaml:"tapMaxMs" toml:"tap_max_ms"`
	HoldMS              int     `yaml:"holdMs" toml:"hold_ms"`
	DoubleTapIntervalMS int     `yaml:"doubleTapIntervalMs" toml:"double_tap_interval_ms"`
	DoubleTapDistance   float64 `yaml:"doubleTapDistance" toml:"double_tap_distance"`
	// SwipeVelocity is in pixels per millisecond.
	SwipeVelocity float64 `yaml:"swipeVelocity" toml:"swipe_velocity"`
	// WheelZoomStep is the zoom factor of one wheel notch.
	WheelZoomStep float64 `yaml:"wheelZoomStep" toml:"wheel_zoom_step"`
}

// ZoomConfig bounds the scale and sets the double-tap zoom step.
type ZoomConfig struct {
	Min             float64 `yaml:"min" toml:"min"`
	Max             float64 `yaml:"max" toml:"max"`
	DoubleTapFactor float64 `yaml:"doubleTapFactor" toml:"double_tap_factor"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		Animation: AnimationConfig{
			DurationMS:      300,
			Easing:          defaultEasing.Name,
			FallbackGraceMS: int(defaultFallbackGrace / time.Millisecond),
		},
		Input: InputConfig{
			DragDeadZone:        defaultDragDeadZone,
			TapMaxMS:            250,
			HoldMS:              500,
			DoubleTapIntervalMS: 300,
			DoubleTapDistance:   10,
			SwipeVelocity:       0.65,
			WheelZoomStep:       1.1,
		},
		Zoom: ZoomConfig{
			Min:             0.5,
			Max:             4,
			DoubleTapFactor: 2,
		},
	}
}

// LoadConfig reads a YAML (.yaml, .yml) or TOML (.toml) file. Fields missing
// from the file keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("%w: unknown config format %q", ErrInvalidConfig, ext)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	if c.Animation.DurationMS < 0 {
		return fmt.Errorf("%w: animation duration %dms is negative", ErrInvalidConfig, c.Animation.DurationMS)
	}
	if c.Animation.FallbackGraceMS < 0 {
		return fmt.Errorf("%w: fallback grace %dms is negative", ErrInvalidConfig, c.Animation.FallbackGraceMS)
	}
	if c.Animation.Easing != "" {
		if _, ok := EasingByName(c.Animation.Easing); !ok {
			return fmt.Errorf("%w: unknown easing %q", ErrInvalidConfig, c.Animation.Easing)
		}
	}
	if c.Input.DragDeadZone < 0 {
		return fmt.Errorf("%w: drag dead zone %g is negative", ErrInvalidConfig, c.Input.DragDeadZone)
	}
	if c.Input.WheelZoomStep <= 0 {
		return fmt.Errorf("%w: wheel zoom step must be positive, got %g", ErrInvalidConfig, c.Input.WheelZoomStep)
	}
	if c.Zoom.Min <= 0 || c.Zoom.Max < c.Zoom.Min {
		return fmt.Errorf("%w: zoom range [%g, %g]", ErrInvalidConfig, c.Zoom.Min, c.Zoom.Max)
	}
	if c.Zoom.DoubleTapFactor <= 0 {
		return fmt.Errorf("%w: double tap factor must be positive, got %g", ErrInvalidConfig, c.Zoom.DoubleTapFactor)
	}
	return nil
}

// AnimationDuration returns the default duration of programmatic transitions.
func (c Config) AnimationDuration() time.Duration {
	return ms(c.Animation.DurationMS)
}

// AnimationEasing returns the configured easing, or the default one.
func (c Config) AnimationEasing() Easing {
	if e, ok := EasingByName(c.Animation.Easing); ok {
		return e
	}
	return defaultEasing
}

// FallbackGrace returns the grace period of the completion fallback timer.
func (c Config) FallbackGrace() time.Duration {
	return ms(c.Animation.FallbackGraceMS)
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
