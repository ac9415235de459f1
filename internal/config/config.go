// Package config loads optional TOML configuration for the application.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"charge-field/internal/settings"

	"github.com/BurntSushi/toml"
)

const (
	configFile = "config.toml"
	appDir     = "charges"

	// EnvPath overrides the config file location.
	EnvPath = "CHARGES_CONFIG"
)

// Config holds everything that can be set from the config file.
// The [settings] table replaces the built-in default simulation settings.
type Config struct {
	Settings settings.Settings `toml:"settings"`
	Window   WindowConfig      `toml:"window"`
	Canvas   CanvasConfig      `toml:"canvas"`
	Render   RenderConfig      `toml:"render"`
}

// WindowConfig is the initial main window size in device-independent pixels.
type WindowConfig struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

// CanvasConfig describes the square placement canvas.
type CanvasConfig struct {
	Size        float64 `toml:"size"` // pixels per side
	PixelsPerCm float64 `toml:"pixels_per_cm"`
}

// RenderConfig controls figure rasterization.
type RenderConfig struct {
	DPI float64 `toml:"dpi"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Settings: settings.Defaults(),
		Window:   WindowConfig{Width: 1180, Height: 860},
		Canvas:   CanvasConfig{Size: 800, PixelsPerCm: 20},
		Render:   RenderConfig{DPI: 96},
	}
}

// Path returns the config file location: $CHARGES_CONFIG if set, otherwise
// charges/config.toml under the user config directory.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, appDir, configFile)
}

// Load reads the config file at path over the built-in defaults.
// A missing file is not an error. On any other error the built-in defaults are
// returned alongside the error.
func Load(path string) (Config, error) {
	cfg := Default()

	meta, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("reading %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		log.Printf("Config: ignoring unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	cfg.Settings.Lim = settings.DomainLimit
	if err := cfg.validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if err := settings.Validate(c.Settings); err != nil {
		return err
	}
	if !(c.Canvas.Size > 0) || !(c.Canvas.PixelsPerCm > 0) {
		return fmt.Errorf("canvas size and pixels_per_cm must be positive, got %g and %g",
			c.Canvas.Size, c.Canvas.PixelsPerCm)
	}
	if !(c.Window.Width > 0) || !(c.Window.Height > 0) {
		return fmt.Errorf("window size must be positive, got %gx%g", c.Window.Width, c.Window.Height)
	}
	if !(c.Render.DPI > 0) {
		return fmt.Errorf("render dpi must be positive, got %g", c.Render.DPI)
	}
	return nil
}
