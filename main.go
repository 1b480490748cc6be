package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/cypresslf/test-webgl/internal/config"
	"github.com/cypresslf/test-webgl/internal/gpu/glcore"
	"github.com/cypresslf/test-webgl/internal/logging"
	"github.com/cypresslf/test-webgl/internal/loop"
	"github.com/cypresslf/test-webgl/internal/texture"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "profile")
	configPath = flag.String("config", "", "config file (.yaml or .toml)")

	windowWidth  = flag.Int("width", 0, "window width")
	windowHeight = flag.Int("height", 0, "window height")
	pipeline     = flag.String("pipeline", "", "flat, textured or textured-lit")
	texturePath  = flag.String("texture", "", "image or animated GIF to load onto the cube")
	watch        = flag.Bool("watch", false, "reload the texture when the file changes")
	loopTexture  = flag.Bool("loop", true, "repeat an animated texture forever")
	offscreen    = flag.Bool("offscreen", false, "render to a hidden window")
	logLevel     = flag.String("log-level", "", "debug, info, warn or error")
)

func init() { runtime.LockOSThread() }

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal("render stopped", "err", err)
	}
}

// run owns every resource of the viewer and releases them before returning.
func run(cfg config.Config, logger *log.Logger) error {
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("unable to create cpu-profile %q: %w", *cpuprofile, err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("unable to start cpu-profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	variant, _ := cfg.Variant()
	placeholder, _ := cfg.PlaceholderColor()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := NewWindow(cfg.Width, cfg.Height, cfg.Title, cfg.Offscreen)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer window.Destroy()

	device, version, err := glcore.Init()
	if err != nil {
		return fmt.Errorf("failed to initialize gl: %w", err)
	}
	logger.Info("OpenGL", "version", version)

	updates := texture.NewUpdates(4)
	if cfg.Texture != "" && variant.Textured() {
		loader := texture.NewLoader(cfg.Texture, updates, logger)
		loader.Loop = cfg.Loop
		defer loader.Close()

		loader.Load()
		if cfg.Watch {
			if err := loader.Watch(); err != nil {
				logger.Warn("unable to watch texture", "path", cfg.Texture, "err", err)
			}
		}
	}

	pipe, err := loop.New(device, window, logger, loop.Options{
		Variant:     variant,
		Placeholder: placeholder,
		Updates:     updates,
	})
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}
	defer pipe.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = pipe.Run(ctx, window, loop.NewClock(), func(stats loop.Stats) {
		window.SetTitle(fmt.Sprintf("%s\tRender:\t%v\tUpdates:\t%d", cfg.Title, stats.Render, stats.Updates))
	})
	if err != nil {
		return fmt.Errorf("after %d frames: %w", pipe.Stats.Frames, err)
	}
	logger.Info("closed", "frames", pipe.Stats.Frames, "updates", pipe.Stats.Updates, "dropped", pipe.Stats.Dropped)
	return nil
}

// loadConfig reads the config file and applies the flags that were set on top of it.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return cfg, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *windowWidth
		case "height":
			cfg.Height = *windowHeight
		case "pipeline":
			cfg.Pipeline = *pipeline
		case "texture":
			cfg.Texture = *texturePath
		case "watch":
			cfg.Watch = *watch
		case "loop":
			cfg.Loop = *loopTexture
		case "offscreen":
			cfg.Offscreen = *offscreen
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	return cfg, cfg.Validate()
}
