package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/rook-computer/rainfield/internal/rain"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// fallbackAlphabet is used when the glyph font covers none of the requested runes.
const fallbackAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Canvas is the full-viewport raster the rain is painted on.
type Canvas struct {
	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}

	img        *image.RGBA
	face       font.Face
	font       *opentype.Font
	buf        sfnt.Buffer
	glowRadius int
}

// CanvasOptions configures NewCanvas.
type CanvasOptions struct {
	GlyphSize  int
	GlowRadius int
	// FontPath selects an OpenType/TrueType file for the glyphs; empty means Go Mono.
	FontPath string
}

// NewCanvas creates an empty canvas. Font problems are logged and fall back to
// basicfont rather than failing.
func NewCanvas(opts CanvasOptions, logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}) *Canvas {
	if opts.GlyphSize <= 0 {
		opts.GlyphSize = rain.DefaultGlyphSize
	}
	if opts.GlowRadius < 0 {
		opts.GlowRadius = 0
	}
	c := &Canvas{Logger: logger, img: image.NewRGBA(image.Rect(0, 0, 0, 0)), glowRadius: opts.GlowRadius}

	f, err := LoadGlyphFont(opts.FontPath)
	if err != nil {
		c.face = basicfont.Face7x13
		if c.Logger != nil {
			c.Logger.Errorf("canvas", "glyph font load failed, using basicfont: %v", err)
		}
		return c
	}
	face, err := NewGlyphFace(f, opts.GlyphSize)
	if err != nil {
		c.face = basicfont.Face7x13
		if c.Logger != nil {
			c.Logger.Errorf("canvas", "glyph face create failed, using basicfont: %v", err)
		}
		return c
	}
	c.font = f
	c.face = face
	if c.Logger != nil {
		c.Logger.Infof("canvas", "glyph font loaded at %dpx", opts.GlyphSize)
	}
	return c
}

// Covers reports whether the canvas can draw r with a real glyph.
func (c *Canvas) Covers(r rune) bool {
	if c.font == nil {
		return r >= 0x20 && r < 0x7f
	}
	return fontCovers(c.font, &c.buf, r)
}

// FilterAlphabet keeps the runes the canvas can draw, preserving order.
func (c *Canvas) FilterAlphabet(alphabet []rune) []rune {
	out := make([]rune, 0, len(alphabet))
	for _, r := range alphabet {
		if c.Covers(r) {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return []rune(fallbackAlphabet)
	}
	return out
}

// Resize reallocates the canvas; like an HTML canvas, resizing clears it.
func (c *Canvas) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if b := c.img.Bounds(); b.Dx() == width && b.Dy() == height {
		return
	}
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

func (c *Canvas) Size() (width, height int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Fade composites a translucent fill over the whole canvas.
func (c *Canvas) Fade(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Over)
}

// DrawGlyph draws g with its baseline at g.Y, preceded by a blurred halo when
// g.Glow is set.
func (c *Canvas) DrawGlyph(g rain.Glyph) {
	dr, mask, maskp, _, ok := c.face.Glyph(fixed.P(g.X, g.Y), g.Rune)
	if !ok || dr.Empty() {
		return
	}
	if !dr.Overlaps(c.img.Bounds().Inset(-c.glowRadius * 2)) {
		return
	}
	if g.Glow != nil && c.glowRadius > 0 {
		c.drawGlow(dr, mask, maskp, g.Glow)
	}
	draw.DrawMask(c.img, dr, image.NewUniform(g.Fill), image.Point{}, mask, maskp, draw.Over)
}

func (c *Canvas) drawGlow(dr image.Rectangle, mask image.Image, maskp image.Point, glow color.Color) {
	radius := c.glowRadius / 2
	if radius < 1 {
		radius = 1
	}
	area := dr.Inset(-3 * radius)
	halo := image.NewAlpha(area)
	draw.Draw(halo, dr, mask, maskp, draw.Src)
	boxBlur(halo, radius, 3)
	draw.DrawMask(c.img, area, image.NewUniform(glow), image.Point{}, halo, area.Min, draw.Over)
}

// Image exposes the backing pixels. Callers must not retain it across frames.
func (c *Canvas) Image() image.Image { return c.img }
