package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window adapts a glfw window to the render loop.
type Window struct {
	*glfw.Window
	Offscreen bool
}

func NewWindow(width, height int, title string, offscreen bool) (*Window, error) {
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Samples, 2)

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if offscreen {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	return &Window{Window: window, Offscreen: offscreen}, nil
}

func (window *Window) Size() (int, int) { return window.GetFramebufferSize() }

// Presentable reports whether frames reach the screen.
func (window *Window) Presentable() bool { return !window.Offscreen }

func (window *Window) PollEvents() { glfw.PollEvents() }
