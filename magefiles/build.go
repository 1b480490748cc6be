//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Build mg.Namespace

// Downloads modules and builds the viewer binary into bin/.
func (Build) Viewer() error {
	if err := sh.Run("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-o", "bin/cube", ".")
}

// Runs go vet over every package.
func (Build) Vet() error {
	return sh.RunV("go", "vet", "./...")
}
