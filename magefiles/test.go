//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Test mg.Namespace

// Runs the package tests. None of them need a GPU.
func (Test) Unit() error {
	return sh.RunV("go", "test", "./internal/...")
}

// Runs the package tests with the race detector.
func (Test) Race() error {
	return sh.RunV("go", "test", "-race", "./internal/...")
}
