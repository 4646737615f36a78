package render

import (
	"image"
	"sync"
	"time"
)

// FrameRenderer composes full frames into an offscreen RGBA and keeps a
// periodically refreshed copy for readers on other goroutines.
type FrameRenderer struct {
	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}

	// PublishEvery is the minimum interval between copies handed to
	// LatestFrame. Zero publishes every frame.
	PublishEvery time.Duration

	text   *TextRenderer
	canvas *image.RGBA
	frames uint64

	lastLog     time.Time
	lastPublish time.Time

	mu     sync.RWMutex
	latest *image.RGBA
}

func NewFrameRenderer(text *TextRenderer) *FrameRenderer {
	return &FrameRenderer{text: text, PublishEvery: 100 * time.Millisecond}
}

// Render clears the canvas to width x height, lets compose draw on it and
// returns the canvas. The result is only valid until the next call.
func (r *FrameRenderer) Render(width, height int, compose func(Drawer)) *image.RGBA {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if r.canvas == nil || r.canvas.Rect.Dx() != width || r.canvas.Rect.Dy() != height {
		r.canvas = image.NewRGBA(image.Rect(0, 0, width, height))
		if r.Logger != nil {
			r.Logger.Infof("render", "canvas resized to %dx%d", width, height)
		}
	} else {
		clear(r.canvas.Pix)
	}
	if compose != nil {
		compose(NewImageDrawer(r.canvas, r.text))
	}
	r.frames++

	now := time.Now()
	if r.latest == nil || now.Sub(r.lastPublish) >= r.PublishEvery {
		r.publish()
		r.lastPublish = now
	}
	if r.Logger != nil && now.Sub(r.lastLog) > time.Second {
		r.Logger.Infof("render", "heartbeat frame=%d size=%dx%d", r.frames, width, height)
		r.lastLog = now
	}
	return r.canvas
}

func (r *FrameRenderer) publish() {
	snapshot := image.NewRGBA(r.canvas.Rect)
	copy(snapshot.Pix, r.canvas.Pix)
	r.mu.Lock()
	r.latest = snapshot
	r.mu.Unlock()
}

// LatestFrame returns the last published frame, or nil before the first one.
// The image is never written to again.
func (r *FrameRenderer) LatestFrame() image.Image {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.latest == nil {
		return nil
	}
	return r.latest
}

// Frames is the number of frames rendered so far.
func (r *FrameRenderer) Frames() uint64 { return r.frames }
