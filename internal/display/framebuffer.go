package display

import (
	"image"
	"image/color"

	fb "github.com/gonutz/framebuffer"
)

// Framebuffer presents frames on a Linux framebuffer device.
type Framebuffer struct {
	dev *fb.Device
}

// OpenFramebuffer opens path, usually /dev/fb0.
func OpenFramebuffer(path string) (*Framebuffer, error) {
	dev, err := fb.Open(path)
	if err != nil {
		return nil, err
	}
	return &Framebuffer{dev: dev}, nil
}

func (f *Framebuffer) Bounds() image.Rectangle { return f.dev.Bounds() }

// Present scales frame to the device with nearest-neighbour sampling.
func (f *Framebuffer) Present(frame image.Image) error {
	return blit(f.dev, frame)
}

func (f *Framebuffer) Close() error {
	f.dev.Close()
	return nil
}

type pixelSink interface {
	Bounds() image.Rectangle
	Set(x, y int, c color.Color)
}

func blit(dst pixelSink, frame image.Image) error {
	if frame == nil {
		return nil
	}
	bounds := dst.Bounds()
	src := frame.Bounds()
	if bounds.Empty() || src.Empty() {
		return nil
	}
	rgba, _ := frame.(*image.RGBA)
	for y := 0; y < bounds.Dy(); y++ {
		sy := src.Min.Y + (y*src.Dy())/bounds.Dy()
		for x := 0; x < bounds.Dx(); x++ {
			sx := src.Min.X + (x*src.Dx())/bounds.Dx()
			var pixel color.RGBA
			if rgba != nil {
				pixel = rgba.RGBAAt(sx, sy)
			} else {
				pixel = color.RGBAModel.Convert(frame.At(sx, sy)).(color.RGBA)
			}
			dst.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
	return nil
}
