// Package scene issues the per-frame bind and draw sequence.
package scene

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/cypresslf/test-webgl/internal/geometry"
	"github.com/cypresslf/test-webgl/internal/gpu"
	"github.com/cypresslf/test-webgl/internal/shader"
	"github.com/cypresslf/test-webgl/internal/texture"
	"github.com/cypresslf/test-webgl/internal/transform"
)

var (
	ErrMissingResource    = errors.New("scene: missing resource")
	ErrGeometryMismatch   = errors.New("scene: geometry does not match program")
	ErrUnsupportedSurface = errors.New("scene: surface cannot present")
)

// Surface is the render target.
type Surface interface {
	Size() (width, height int)
	// Presentable is false for off-screen targets that are never shown.
	Presentable() bool
}

// ShapeFor returns the mesh a pipeline variant draws.
func ShapeFor(variant shader.Variant) geometry.Shape {
	if variant == shader.Flat {
		return geometry.Quad
	}
	return geometry.Cube
}

// Renderer draws one frame at a time. After a missing resource it stays
// halted and refuses every later frame.
type Renderer struct {
	device  gpu.Device
	surface Surface
	logger  *log.Logger

	warnedSurface bool
	halted        error

	Frames  int
	Skipped int
}

// New creates a renderer that draws to surface through device.
func New(device gpu.Device, surface Surface, logger *log.Logger) *Renderer {
	return &Renderer{
		device:  device,
		surface: surface,
		logger:  logger,
	}
}

// Err returns the error that halted the renderer, if any.
func (renderer *Renderer) Err() error { return renderer.halted }

// RenderFrame clears the target and draws buffers with program. The
// texture may be nil for variants that do not sample one.
func (renderer *Renderer) RenderFrame(program *shader.Program, buffers *geometry.Buffers, tex *texture.Texture, matrices transform.Matrices) error {
	if renderer.halted != nil {
		return renderer.halted
	}

	if err := checkResources(program, buffers, tex); err != nil {
		renderer.halted = err
		renderer.logger.Error("cannot draw frame", "err", err)
		return err
	}

	if renderer.surface == nil || !renderer.surface.Presentable() {
		if !renderer.warnedSurface {
			renderer.logger.Warn("surface is off-screen, skipping frames", "err", ErrUnsupportedSurface)
			renderer.warnedSurface = true
		}
		renderer.Skipped++
		return nil
	}

	device := renderer.device
	variant := program.Variant

	device.ClearColor(0, 0, 0, 1)
	device.ClearDepth(1)
	device.Enable(gpu.DEPTH_TEST)
	device.DepthFunc(gpu.LEQUAL)
	device.Clear(gpu.COLOR_BUFFER_BIT | gpu.DEPTH_BUFFER_BIT)

	device.BindVertexArray(buffers.VAO)
	for _, binding := range variant.Attributes() {
		stream, _ := buffers.Stream(binding.Name)
		slot := uint32(program.Attribute(binding.Name))
		device.BindBuffer(gpu.ARRAY_BUFFER, stream.Buffer)
		device.VertexAttribPointer(slot, binding.Size, gpu.FLOAT, false, 0, 0)
		device.EnableVertexAttribArray(slot)
	}
	if buffers.IBO != 0 {
		device.BindBuffer(gpu.ELEMENT_ARRAY_BUFFER, buffers.IBO)
	}

	device.UseProgram(program.ID)
	device.UniformMatrix4fv(program.Uniform(shader.ProjectionMatrix), matrices.Projection)
	device.UniformMatrix4fv(program.Uniform(shader.ModelViewMatrix), matrices.ModelView)
	if variant.Lit() {
		device.UniformMatrix4fv(program.Uniform(shader.NormalMatrix), matrices.Normal)
	}

	if variant.Textured() {
		device.ActiveTexture(gpu.TEXTURE0)
		device.BindTexture(gpu.TEXTURE_2D, tex.ID)
		device.Uniform1i(program.Uniform(shader.Sampler), 0)
	}

	if buffers.IndexCount > 0 {
		device.DrawElements(gpu.TRIANGLES, buffers.IndexCount, gpu.UNSIGNED_SHORT, 0)
	} else {
		device.DrawArrays(gpu.TRIANGLE_STRIP, 0, buffers.VertexCount)
	}

	renderer.Frames++
	return nil
}

// checkResources reports the first required resource that is absent or
// does not match the program's variant. It issues no device calls.
func checkResources(program *shader.Program, buffers *geometry.Buffers, tex *texture.Texture) error {
	missing := func(what string) error { return fmt.Errorf("%w: %s", ErrMissingResource, what) }

	if program == nil || program.ID == 0 {
		return missing("shader program")
	}
	if buffers == nil || buffers.VAO == 0 {
		return missing("geometry buffers")
	}
	variant := program.Variant
	if want := ShapeFor(variant); buffers.Shape != want {
		return fmt.Errorf("%w: %v program draws a %v, got %v buffers", ErrGeometryMismatch, variant, want, buffers.Shape)
	}
	for _, binding := range variant.Attributes() {
		if program.Attribute(binding.Name) == shader.Absent {
			return missing(binding.Name + " attribute")
		}
		stream, ok := buffers.Stream(binding.Name)
		if !ok || stream.Buffer == 0 {
			return missing(binding.Name + " buffer")
		}
		if stream.Size != binding.Size {
			return fmt.Errorf("%w: %s has %d components, %v expects %d", ErrGeometryMismatch, binding.Name, stream.Size, variant, binding.Size)
		}
	}
	if buffers.Shape == geometry.Cube && buffers.IBO == 0 {
		return missing("index buffer")
	}
	if variant.Textured() && (tex == nil || tex.ID == 0) {
		return missing("texture")
	}
	return nil
}
