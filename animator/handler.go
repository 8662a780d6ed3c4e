package animator

import (
	"context"
	"time"
)

// frameCallback is implemented by animations needing frames
type frameCallback interface {
	doFrame(frameTime time.Duration)
}

// Handler is a frame source: it advances the animations
// registered on it, each time a frame is produced.
// The zero value is ready to use.
type Handler struct {
	callbacks []frameCallback
	lastFrame time.Duration
}

// defaultHandler is used by animators without explicit Handler.
var defaultHandler = NewHandler()

// NewHandler returns an empty frame source.
func NewHandler() *Handler { return &Handler{} }

// DefaultHandler returns the handler used by animators
// without a call to SetHandler.
func DefaultHandler() *Handler { return defaultHandler }

func (h *Handler) indexOf(cb frameCallback) int {
	for i, other := range h.callbacks {
		if other == cb {
			return i
		}
	}
	return -1
}

func (h *Handler) add(cb frameCallback) {
	if h.indexOf(cb) == -1 {
		h.callbacks = append(h.callbacks, cb)
	}
}

func (h *Handler) remove(cb frameCallback) {
	if i := h.indexOf(cb); i != -1 {
		h.callbacks = append(h.callbacks[:i:i], h.callbacks[i+1:]...)
	}
}

// Active returns the number of animations waiting for frames.
func (h *Handler) Active() int { return len(h.callbacks) }

// LastFrame returns the time of the last frame.
func (h *Handler) LastFrame() time.Duration { return h.lastFrame }

// DoFrame advances every registered animation to `frameTime`, which
// must not decrease between calls. Animations started after the
// previous frame use `frameTime` as their start time.
func (h *Handler) DoFrame(frameTime time.Duration) {
	h.lastFrame = frameTime
	snapshot := append([]frameCallback(nil), h.callbacks...)
	for _, cb := range snapshot {
		if h.indexOf(cb) == -1 { // removed by a previous callback
			continue
		}
		cb.doFrame(frameTime)
	}
}

// Run produces a frame every `interval`, until `ctx` is done.
// `onFrame`, if not nil, is called after each frame, on the same goroutine:
// this is where the host should draw and interact with the animations.
// Run returns the context error.
func (h *Handler) Run(ctx context.Context, interval time.Duration, onFrame func(frameTime time.Duration)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t := <-ticker.C:
			frameTime := t.Sub(start)
			h.DoFrame(frameTime)
			if onFrame != nil {
				onFrame(frameTime)
			}
		}
	}
}
