package texture

import (
	"context"
	"fmt"
	"image"
	"image/gif"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/image/draw"
)

// Delays shorter than MinFrameDelay are played at DefaultFrameDelay,
// matching how browsers treat zero-delay GIF frames.
const (
	MinFrameDelay     = 20 * time.Millisecond
	DefaultFrameDelay = 100 * time.Millisecond
)

// Frame is one fully composed animation frame, bottom row first.
type Frame struct {
	Pixels []uint8
	Delay  time.Duration
}

// Animation is a decoded sequence of equally sized frames.
type Animation struct {
	Source string
	Width  int
	Height int
	Frames []Frame

	// LoopCount follows image/gif: 0 repeats forever, -1 plays once
	// and n plays n+1 times.
	LoopCount int
}

// DecodeGIF decodes every frame of a GIF, applying each frame's disposal
// method so that every Frame holds the full picture.
func DecodeGIF(r io.Reader) (*Animation, error) {
	decoded, err := gif.DecodeAll(r)
	if err != nil {
		return nil, err
	}

	bounds := image.Rect(0, 0, decoded.Config.Width, decoded.Config.Height)
	if bounds.Empty() && len(decoded.Image) > 0 {
		bounds = decoded.Image[0].Bounds()
	}

	animation := &Animation{
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		LoopCount: decoded.LoopCount,
	}

	canvas := image.NewRGBA(bounds)
	previous := image.NewRGBA(bounds)
	for i, paletted := range decoded.Image {
		disposal := byte(0)
		if i < len(decoded.Disposal) {
			disposal = decoded.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			copy(previous.Pix, canvas.Pix)
		}

		draw.Draw(canvas, paletted.Bounds(), paletted, paletted.Bounds().Min, draw.Over)

		frame := image.NewRGBA(bounds)
		copy(frame.Pix, canvas.Pix)
		FlipVertical(frame)

		delay := time.Duration(decoded.Delay[i]) * 10 * time.Millisecond
		if delay < MinFrameDelay {
			delay = DefaultFrameDelay
		}
		animation.Frames = append(animation.Frames, Frame{Pixels: frame.Pix, Delay: delay})

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, paletted.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			copy(canvas.Pix, previous.Pix)
		}
	}

	return animation, nil
}

// DecodeGIFFile decodes the GIF at path.
func DecodeGIFFile(path string) (*Animation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture %q not found on disk: %w", path, err)
	}
	defer file.Close()

	animation, err := DecodeGIF(file)
	if err != nil {
		return nil, fmt.Errorf("unable to decode animation %q: %w", path, err)
	}
	animation.Source = path
	return animation, nil
}

// Player posts the frames of an animation to Updates, each after the
// previous frame's delay.
type Player struct {
	animation *Animation
	updates   *Updates
	logger    *log.Logger

	// Loop repeats the animation forever regardless of its LoopCount.
	Loop bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewPlayer(animation *Animation, updates *Updates, logger *log.Logger) *Player {
	return &Player{
		animation: animation,
		updates:   updates,
		logger:    logger,
	}
}

// Play starts posting frames in the background until the animation ends,
// ctx is done or Close is called.
func (player *Player) Play(ctx context.Context) {
	ctx, player.cancel = context.WithCancel(ctx)
	player.wg.Add(1)
	go func() {
		defer player.wg.Done()
		player.run(ctx)
	}()
}

func (player *Player) run(ctx context.Context) {
	animation := player.animation
	if len(animation.Frames) == 0 {
		return
	}

	for pass := 0; player.Loop || player.plays(pass); pass++ {
		for i, frame := range animation.Frames {
			event := NewReady(fmt.Sprintf("%s#%d", animation.Source, i), frame.Pixels, animation.Width, animation.Height)
			if err := player.updates.Post(ctx, event); err != nil {
				return
			}

			timer := time.NewTimer(frame.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}
	player.logger.Debug("animation finished", "source", animation.Source)
}

// plays reports whether pass is within the animation's own loop count.
func (player *Player) plays(pass int) bool {
	switch count := player.animation.LoopCount; {
	case count == 0:
		return true
	case count < 0:
		return pass == 0
	default:
		return pass <= count
	}
}

// Close stops playback and waits for the player goroutine to exit.
func (player *Player) Close() {
	if player.cancel != nil {
		player.cancel()
	}
	player.wg.Wait()
}
