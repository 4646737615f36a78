// Package display presents composed frames on an output device.
package display

import "image"

// Display receives every composed frame.
type Display interface {
	// Bounds is the device size; zero when the device does not dictate one.
	Bounds() image.Rectangle
	Present(frame image.Image) error
	Close() error
}

type NoopDisplay struct{}

func (NoopDisplay) Bounds() image.Rectangle   { return image.Rectangle{} }
func (NoopDisplay) Present(image.Image) error { return nil }
func (NoopDisplay) Close() error              { return nil }
