package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.yaml")
	if err := os.WriteFile(path, []byte("width: 640\nheight: 320\npipeline: flat\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	for name, value := range map[string]string{
		"config": path,
		"height": "480",
		"loop":   "false",
	} {
		if err := flag.Set(name, value); err != nil {
			t.Fatal(err)
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 640 || cfg.Height != 480 {
		t.Errorf("size = %dx%d, want 640 from the file and 480 from the flag", cfg.Width, cfg.Height)
	}
	if cfg.Pipeline != "flat" || cfg.Loop {
		t.Errorf("cfg = %+v", cfg)
	}

	if err := flag.Set("width", "-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(); err == nil {
		t.Errorf("invalid flag value accepted")
	}
}
