// Package loop owns the render pipeline and drives it one tick per display refresh.
package loop

import (
	"context"
	"image/color"
	"time"

	"github.com/adinfinit/g"
	"github.com/charmbracelet/log"
	"github.com/loov/hrtime"

	"github.com/cypresslf/test-webgl/internal/geometry"
	"github.com/cypresslf/test-webgl/internal/gpu"
	"github.com/cypresslf/test-webgl/internal/scene"
	"github.com/cypresslf/test-webgl/internal/shader"
	"github.com/cypresslf/test-webgl/internal/texture"
	"github.com/cypresslf/test-webgl/internal/transform"
)

// Clock reports monotonic milliseconds since it was created.
type Clock struct {
	start time.Duration
}

func NewClock() *Clock { return &Clock{start: hrtime.Now()} }

// Millis returns the elapsed time in milliseconds.
func (clock *Clock) Millis() float64 {
	return float64(hrtime.Since(clock.start)) / float64(time.Millisecond)
}

// Window is a presentable surface driven by an event loop.
type Window interface {
	scene.Surface
	ShouldClose() bool
	SwapBuffers()
	PollEvents()
}

// Options selects what the pipeline draws.
type Options struct {
	Variant     shader.Variant
	Placeholder color.RGBA
	// Updates delivers decoded texture content. May be nil.
	Updates *texture.Updates
}

// Stats describes the most recent tick.
type Stats struct {
	Frames  int
	Updates int
	Render  time.Duration

	// Dropped counts updates superseded by a newer one before upload.
	Dropped int
}

// Loop holds every GPU resource of the pipeline and the state advanced each tick.
type Loop struct {
	Device      gpu.Device
	Surface     scene.Surface
	Transformer *transform.Transformer
	Renderer    *scene.Renderer

	Program *shader.Program
	Buffers *geometry.Buffers
	Texture *texture.Texture
	Updates *texture.Updates

	Stats Stats

	logger *log.Logger
}

// New compiles the program, uploads the geometry and, for textured
// variants, allocates the placeholder texture. On error nothing is leaked.
func New(device gpu.Device, surface scene.Surface, logger *log.Logger, opts Options) (*Loop, error) {
	loop := &Loop{
		Device:      device,
		Surface:     surface,
		Transformer: transform.New(g.Vec2{}),
		Renderer:    scene.New(device, surface, logger),
		Updates:     opts.Updates,
		logger:      logger,
	}

	var err error
	loop.Program, err = shader.New(device, opts.Variant)
	if err != nil {
		return nil, err
	}

	shape := scene.ShapeFor(opts.Variant)
	loop.Buffers, err = geometry.Upload(device, geometry.Build(shape))
	if err != nil {
		loop.Close()
		return nil, err
	}

	if opts.Variant.Textured() {
		loop.Texture, err = texture.NewPlaceholder(device, opts.Placeholder)
		if err != nil {
			loop.Close()
			return nil, err
		}
	}

	logger.Info("pipeline ready", "variant", opts.Variant, "shape", shape)
	return loop, nil
}

// Tick renders one frame at now, given in milliseconds.
func (loop *Loop) Tick(now float64) error {
	if loop.Updates != nil && loop.Texture != nil {
		applied, dropped, err := loop.Updates.Apply(loop.Texture)
		if err != nil {
			loop.logger.Warn("texture update rejected", "err", err)
		}
		if applied > 0 {
			loop.logger.Debug("texture updated", "width", loop.Texture.Width, "height", loop.Texture.Height)
		}
		loop.Stats.Updates += applied
		loop.Stats.Dropped += dropped
	}

	width, height := loop.Surface.Size()
	if loop.Transformer.UpdateViewport(g.V2(float32(width), float32(height))) {
		loop.Device.Viewport(0, 0, int32(width), int32(height))
		loop.logger.Debug("viewport", "width", width, "height", height)
	}

	loop.Transformer.Advance(now / 1000)

	start := hrtime.Now()
	err := loop.Renderer.RenderFrame(loop.Program, loop.Buffers, loop.Texture, loop.Transformer.Matrices())
	loop.Stats.Render = hrtime.Since(start)
	loop.Stats.Frames++
	return err
}

// Run ticks until the window closes, ctx is cancelled, or a frame fails.
// frame is called after each tick and may be nil.
func (loop *Loop) Run(ctx context.Context, window Window, clock *Clock, frame func(Stats)) error {
	for !window.ShouldClose() {
		if ctx.Err() != nil {
			return nil
		}
		if err := loop.Tick(clock.Millis()); err != nil {
			return err
		}
		if frame != nil {
			frame(loop.Stats)
		}

		window.SwapBuffers()
		window.PollEvents()
	}
	return nil
}

// Close releases every GPU resource the loop owns.
func (loop *Loop) Close() {
	if loop.Texture != nil {
		loop.Texture.Delete()
	}
	if loop.Buffers != nil {
		loop.Buffers.Delete()
	}
	if loop.Program != nil {
		loop.Program.Delete()
	}
}
