// Package config holds the viewer settings and loads them from YAML or TOML.
package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/cypresslf/test-webgl/internal/shader"
	"github.com/cypresslf/test-webgl/internal/texture"
)

// Config describes one viewer run.
type Config struct {
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
	Title  string `yaml:"title" toml:"title"`

	// Pipeline is one of "flat", "textured" or "textured-lit".
	Pipeline string `yaml:"pipeline" toml:"pipeline"`

	// Texture is an image file decoded in the background. Empty keeps the placeholder.
	Texture string `yaml:"texture" toml:"texture"`
	// Watch reloads Texture whenever the file changes.
	Watch bool `yaml:"watch" toml:"watch"`
	// Loop repeats an animated Texture forever.
	Loop bool `yaml:"loop" toml:"loop"`
	// Placeholder is the RGBA color shown before the texture is ready.
	Placeholder []int `yaml:"placeholder" toml:"placeholder"`

	// Offscreen creates a hidden window; nothing is drawn to it.
	Offscreen bool `yaml:"offscreen" toml:"offscreen"`

	LogLevel string `yaml:"log_level" toml:"log_level"`
}

// Default returns the settings used when no config file is given.
func Default() Config {
	placeholder := texture.DefaultPlaceholder
	return Config{
		Width:       800,
		Height:      600,
		Title:       "Cube",
		Pipeline:    shader.TexturedLit.String(),
		Loop:        true,
		Placeholder: []int{int(placeholder.R), int(placeholder.G), int(placeholder.B), int(placeholder.A)},
		LogLevel:    "info",
	}
}

// Load reads path over the defaults. The decoder is picked by extension:
// .yaml/.yml or .toml. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("unable to read config %q: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("config %q: unsupported format %q", path, ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("unable to parse config %q: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks that every field is usable.
func (cfg Config) Validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	if _, err := shader.ParseVariant(cfg.Pipeline); err != nil {
		return err
	}
	if _, err := cfg.PlaceholderColor(); err != nil {
		return err
	}
	return nil
}

// Variant returns the parsed pipeline variant.
func (cfg Config) Variant() (shader.Variant, error) {
	return shader.ParseVariant(cfg.Pipeline)
}

// PlaceholderColor converts Placeholder into an RGBA color. The color
// must be fully opaque.
func (cfg Config) PlaceholderColor() (color.RGBA, error) {
	if len(cfg.Placeholder) != 4 {
		return color.RGBA{}, fmt.Errorf("placeholder needs 4 components, got %d", len(cfg.Placeholder))
	}
	for _, c := range cfg.Placeholder {
		if c < 0 || c > 255 {
			return color.RGBA{}, fmt.Errorf("placeholder component %d out of range", c)
		}
	}
	if cfg.Placeholder[3] != 255 {
		return color.RGBA{}, fmt.Errorf("placeholder must be opaque, alpha is %d", cfg.Placeholder[3])
	}
	return color.RGBA{
		R: uint8(cfg.Placeholder[0]),
		G: uint8(cfg.Placeholder[1]),
		B: uint8(cfg.Placeholder[2]),
		A: uint8(cfg.Placeholder[3]),
	}, nil
}
