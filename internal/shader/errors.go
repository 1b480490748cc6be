package shader

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCompile           = errors.New("shader: compile failed")
	ErrLink              = errors.New("shader: link failed")
	ErrUnresolvedBinding = errors.New("shader: unresolved binding")
)

// CompileError carries the compiler diagnostic for a rejected stage.
type CompileError struct {
	Kind Kind
	Log  string
}

func (err *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %v shader: %v", err.Kind, strings.TrimSpace(err.Log))
}

func (err *CompileError) Unwrap() error { return ErrCompile }

// LinkError carries the linker diagnostic for a program that failed to link.
type LinkError struct {
	Log string
}

func (err *LinkError) Error() string {
	return fmt.Sprintf("failed to link program: %v", strings.TrimSpace(err.Log))
}

func (err *LinkError) Unwrap() error { return ErrLink }

// BindingError lists required attributes or uniforms the linked program does not expose.
type BindingError struct {
	Variant Variant
	Names   []string
}

func (err *BindingError) Error() string {
	return fmt.Sprintf("%v program does not expose %v", err.Variant, strings.Join(err.Names, ", "))
}

func (err *BindingError) Unwrap() error { return ErrUnresolvedBinding }
