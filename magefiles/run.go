//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Run mg.Namespace

// Runs the viewer. CUBE_CONFIG selects a config file.
func (Run) Viewer() error {
	args := []string{"run", "."}
	if path := os.Getenv("CUBE_CONFIG"); path != "" {
		args = append(args, "-config", path)
	}
	fmt.Println("Run viewer...")
	return sh.RunV("go", args...)
}

// Renders to a hidden window with debug logging.
func (Run) Offscreen() error {
	mg.Deps(Build.Viewer)
	return sh.RunV("bin/cube", "-offscreen", "-log-level", "debug")
}
