package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/cypresslf/test-webgl/internal/shader"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("size = %dx%d, want 800x600", cfg.Width, cfg.Height)
	}
	if !cfg.Loop {
		t.Errorf("animations do not loop by default")
	}
	variant, err := cfg.Variant()
	if err != nil || variant != shader.TexturedLit {
		t.Errorf("Variant = %v, %v", variant, err)
	}
	placeholder, err := cfg.PlaceholderColor()
	if err != nil || placeholder != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("PlaceholderColor = %v, %v", placeholder, err)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "cube.yaml",
			content: `
width: 1024
height: 512
pipeline: flat
texture: assets/cube.png
watch: true
loop: false
placeholder: [255, 0, 0, 255]
`,
		},
		{
			name: "toml",
			file: "cube.toml",
			content: `
width = 1024
height = 512
pipeline = "flat"
texture = "assets/cube.png"
watch = true
loop = false
placeholder = [255, 0, 0, 255]
`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, test.file, test.content))
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Width != 1024 || cfg.Height != 512 {
				t.Errorf("size = %dx%d", cfg.Width, cfg.Height)
			}
			if cfg.Pipeline != "flat" || cfg.Texture != "assets/cube.png" || !cfg.Watch || cfg.Loop {
				t.Errorf("cfg = %+v", cfg)
			}
			if cfg.Title != "Cube" || cfg.LogLevel != "info" {
				t.Errorf("unset fields lost their defaults: %+v", cfg)
			}
			placeholder, err := cfg.PlaceholderColor()
			if err != nil || placeholder != (color.RGBA{255, 0, 0, 255}) {
				t.Errorf("PlaceholderColor = %v, %v", placeholder, err)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown format", "cube.ini", "width=1"},
		{"bad pipeline", "cube.yaml", "pipeline: wireframe"},
		{"bad size", "cube.yaml", "width: 0"},
		{"translucent placeholder", "cube.yaml", "placeholder: [0, 0, 255, 128]"},
		{"short placeholder", "cube.toml", "placeholder = [0, 0, 255]"},
		{"syntax", "cube.toml", "width = ="},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, test.file, test.content)); err == nil {
				t.Errorf("Load succeeded")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("missing file accepted")
	}
}
