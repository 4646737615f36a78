package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
)

// TextRenderer rasterises page text with freetype.
type TextRenderer struct {
	font  *truetype.Font
	faces map[int]font.Face
}

func NewTextRenderer(f *truetype.Font) *TextRenderer {
	return &TextRenderer{font: f, faces: map[int]font.Face{}}
}

func (t *TextRenderer) face(size int) font.Face {
	if face, ok := t.faces[size]; ok {
		return face
	}
	face := truetype.NewFace(t.font, &truetype.Options{Size: float64(size), DPI: 72, Hinting: font.HintingFull})
	t.faces[size] = face
	return face
}

func (t *TextRenderer) Measure(text string, size int) TextMetrics {
	face := t.face(size)
	metrics := face.Metrics()
	return TextMetrics{
		Width:      font.MeasureString(face, text).Ceil(),
		Height:     metrics.Ascent.Ceil() + metrics.Descent.Ceil(),
		Ascent:     metrics.Ascent.Ceil(),
		Descent:    metrics.Descent.Ceil(),
		LineHeight: metrics.Height.Ceil(),
	}
}

// Draw renders text with its baseline at (x, baseline).
func (t *TextRenderer) Draw(dst draw.Image, text string, x, baseline, size int, c color.Color) error {
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(t.font)
	ctx.SetFontSize(float64(size))
	ctx.SetHinting(font.HintingFull)
	ctx.SetClip(dst.Bounds())
	ctx.SetDst(dst)
	ctx.SetSrc(image.NewUniform(c))
	_, err := ctx.DrawString(text, freetype.Pt(x, baseline))
	return err
}

// ImageDrawer implements Drawer on an RGBA image.
type ImageDrawer struct {
	dst  *image.RGBA
	text *TextRenderer
}

func NewImageDrawer(dst *image.RGBA, text *TextRenderer) *ImageDrawer {
	return &ImageDrawer{dst: dst, text: text}
}

func (d *ImageDrawer) Size() (int, int) {
	b := d.dst.Bounds()
	return b.Dx(), b.Dy()
}

func (d *ImageDrawer) Fill(rect image.Rectangle, c color.Color) {
	draw.Draw(d.dst, rect, image.NewUniform(c), image.Point{}, draw.Over)
}

func (d *ImageDrawer) StrokeRect(rect image.Rectangle, c color.Color, widthPx int) {
	if widthPx <= 0 {
		return
	}
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+widthPx),
		image.Rect(rect.Min.X, rect.Max.Y-widthPx, rect.Max.X, rect.Max.Y),
		image.Rect(rect.Min.X, rect.Min.Y+widthPx, rect.Min.X+widthPx, rect.Max.Y-widthPx),
		image.Rect(rect.Max.X-widthPx, rect.Min.Y+widthPx, rect.Max.X, rect.Max.Y-widthPx),
	}
	for _, e := range edges {
		draw.Draw(d.dst, e, src, image.Point{}, draw.Over)
	}
}

func (d *ImageDrawer) MeasureText(text string, style TextStyle) TextMetrics {
	if d.text == nil {
		return TextMetrics{}
	}
	return d.text.Measure(text, textSize(style))
}

func (d *ImageDrawer) DrawText(text string, x, y int, style TextStyle) TextMetrics {
	if d.text == nil {
		return TextMetrics{}
	}
	size := textSize(style)
	m := d.text.Measure(text, size)
	switch style.Align {
	case TextAlignCenter:
		x -= m.Width / 2
	case TextAlignRight:
		x -= m.Width
	}
	c := style.Color
	if c == nil {
		c = color.Black
	}
	_ = d.text.Draw(d.dst, text, x, y+m.Ascent, size, c)
	return m
}

func (d *ImageDrawer) DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode) {
	if img == nil || rect.Empty() {
		return
	}
	src := img.Bounds()
	if src.Empty() {
		return
	}
	switch mode {
	case ScaleModeFit:
		rect = fitRect(src, rect)
	case ScaleModeFill:
		src = fillSource(src, rect)
	}
	xdraw.NearestNeighbor.Scale(d.dst, rect, img, src, xdraw.Over, nil)
}

func (d *ImageDrawer) DrawLayer(img image.Image, opacity float64) {
	if img == nil || opacity <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}
	alpha := image.NewUniform(color.Alpha{A: uint8(math.Round(opacity * 255))})
	draw.DrawMask(d.dst, img.Bounds(), img, img.Bounds().Min, alpha, image.Point{}, draw.Over)
}

// fitRect returns the largest rect with src's aspect ratio centred in dst.
func fitRect(src, dst image.Rectangle) image.Rectangle {
	scale := math.Min(float64(dst.Dx())/float64(src.Dx()), float64(dst.Dy())/float64(src.Dy()))
	w := int(float64(src.Dx()) * scale)
	h := int(float64(src.Dy()) * scale)
	x := dst.Min.X + (dst.Dx()-w)/2
	y := dst.Min.Y + (dst.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// fillSource crops src to dst's aspect ratio around its centre.
func fillSource(src, dst image.Rectangle) image.Rectangle {
	scale := math.Max(float64(dst.Dx())/float64(src.Dx()), float64(dst.Dy())/float64(src.Dy()))
	w := int(float64(dst.Dx()) / scale)
	h := int(float64(dst.Dy()) / scale)
	x := src.Min.X + (src.Dx()-w)/2
	y := src.Min.Y + (src.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

func textSize(style TextStyle) int {
	if style.Size > 0 {
		return style.Size
	}
	return DefaultTextSize
}
