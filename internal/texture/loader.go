package texture

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode reads an image in any registered format and converts it to
// tightly packed RGBA with the bottom row first, the order GL expects.
func Decode(r io.Reader) (*image.RGBA, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	if rgba.Stride != rgba.Rect.Size().X*4 {
		return nil, fmt.Errorf("unsupported stride")
	}
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)

	FlipVertical(rgba)
	return rgba, nil
}

// FlipVertical reverses the row order of rgba in place.
func FlipVertical(rgba *image.RGBA) {
	height := rgba.Rect.Dy()
	row := make([]uint8, rgba.Stride)
	for top, bottom := 0, height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := rgba.Pix[top*rgba.Stride : (top+1)*rgba.Stride]
		b := rgba.Pix[bottom*rgba.Stride : (bottom+1)*rgba.Stride]
		copy(row, a)
		copy(a, b)
		copy(b, row)
	}
}

// DecodeFile decodes the image at path into a Ready event.
func DecodeFile(path string) (Ready, error) {
	file, err := os.Open(path)
	if err != nil {
		return Ready{}, fmt.Errorf("texture %q not found on disk: %w", path, err)
	}
	defer file.Close()

	rgba, err := Decode(file)
	if err != nil {
		return Ready{}, fmt.Errorf("unable to decode texture %q: %w", path, err)
	}
	return NewReady(path, rgba.Pix, rgba.Rect.Dx(), rgba.Rect.Dy()), nil
}

// Loader decodes an image file off the render goroutine and posts the
// result to Updates, optionally again every time the file changes.
// Animated GIFs are played frame by frame instead.
type Loader struct {
	path    string
	updates *Updates
	logger  *log.Logger

	// Loop repeats animations forever regardless of their loop count.
	Loop bool

	mu     sync.Mutex
	player *Player

	watcher *fsnotify.Watcher
	ctx     context.Context
	cancel  context.CancelFunc
	once    sync.Once
	wg      sync.WaitGroup
}

// NewLoader creates a loader for path. Nothing happens until Load or Watch.
func NewLoader(path string, updates *Updates, logger *log.Logger) *Loader {
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		path:    filepath.Clean(path),
		updates: updates,
		logger:  logger.With("texture", path),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Load decodes the file in the background. Failures are logged and leave
// the current texture content in place.
func (loader *Loader) Load() {
	loader.wg.Add(1)
	go func() {
		defer loader.wg.Done()
		loader.reload()
	}()
}

func (loader *Loader) reload() {
	if strings.EqualFold(filepath.Ext(loader.path), ".gif") {
		animation, err := DecodeGIFFile(loader.path)
		if err == nil && len(animation.Frames) > 1 {
			loader.play(animation)
			return
		}
	}

	event, err := DecodeFile(loader.path)
	if err != nil {
		loader.logger.Error("load failed", "err", err)
		return
	}
	loader.play(nil)
	loader.logger.Debug("decoded", "id", event.ID, "width", event.Width, "height", event.Height)

	if err := loader.updates.Post(loader.ctx, event); err != nil {
		loader.logger.Debug("update discarded", "id", event.ID, "err", err)
	}
}

// play replaces the running animation, if any, with animation. A nil
// animation only stops playback.
func (loader *Loader) play(animation *Animation) {
	loader.mu.Lock()
	defer loader.mu.Unlock()

	if loader.player != nil {
		loader.player.Close()
		loader.player = nil
	}
	if animation == nil || loader.ctx.Err() != nil {
		return
	}
	loader.logger.Debug("playing", "frames", len(animation.Frames), "width", animation.Width, "height", animation.Height)

	loader.player = NewPlayer(animation, loader.updates, loader.logger)
	loader.player.Loop = loader.Loop
	loader.player.Play(loader.ctx)
}

// Watch reloads the texture whenever the file is written or recreated.
func (loader *Loader) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(loader.path)); err != nil {
		watcher.Close()
		return err
	}
	loader.watcher = watcher

	loader.wg.Add(1)
	go loader.watch()
	return nil
}

func (loader *Loader) watch() {
	defer loader.wg.Done()
	for {
		select {
		case <-loader.ctx.Done():
			return
		case event, ok := <-loader.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != loader.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				loader.reload()
			}
		case err, ok := <-loader.watcher.Errors:
			if !ok {
				return
			}
			loader.logger.Warn("watch error", "err", err)
		}
	}
}

// Close stops watching and waits for in-flight decodes to finish.
func (loader *Loader) Close() error {
	var err error
	loader.once.Do(func() {
		loader.cancel()
		if loader.watcher != nil {
			err = loader.watcher.Close()
		}
		loader.wg.Wait()

		loader.mu.Lock()
		if loader.player != nil {
			loader.player.Close()
		}
		loader.mu.Unlock()
	})
	return err
}
