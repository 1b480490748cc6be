package texture

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Ready announces that decoded content for the texture is available.
type Ready struct {
	ID     uuid.UUID
	Source string

	Pixels []uint8
	Width  int
	Height int
}

// NewReady tags decoded RGBA pixels with a fresh event id.
func NewReady(source string, pixels []uint8, width, height int) Ready {
	return Ready{
		ID:     uuid.New(),
		Source: source,
		Pixels: pixels,
		Width:  width,
		Height: height,
	}
}

// Updates carries Ready events from decoder goroutines to the render goroutine.
type Updates struct {
	events chan Ready
}

// NewUpdates creates a queue holding up to capacity pending events.
func NewUpdates(capacity int) *Updates {
	if capacity < 1 {
		capacity = 1
	}
	return &Updates{events: make(chan Ready, capacity)}
}

// Post queues an event, waiting while the queue is full. It is safe to
// call from any goroutine and gives up when ctx is done.
func (updates *Updates) Post(ctx context.Context, event Ready) error {
	select {
	case updates.events <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending returns the number of queued events.
func (updates *Updates) Pending() int { return len(updates.events) }

// Apply drains the queue and uploads only the newest valid event into
// texture. Older events are superseded and counted as dropped; invalid
// ones are reported in err. It never waits for new events.
func (updates *Updates) Apply(texture *Texture) (applied, dropped int, err error) {
	var pending []Ready
	for drained := false; !drained; {
		select {
		case event := <-updates.events:
			pending = append(pending, event)
		default:
			drained = true
		}
	}

	var errs []error
	for i := len(pending) - 1; i >= 0; i-- {
		event := pending[i]
		if applied > 0 {
			dropped++
			continue
		}
		if err := texture.Replace(event.Pixels, event.Width, event.Height); err != nil {
			errs = append(errs, fmt.Errorf("update %v from %q: %w", event.ID, event.Source, err))
			continue
		}
		applied++
	}
	return applied, dropped, errors.Join(errs...)
}
