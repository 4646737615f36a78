package render

import (
	"image"
	"image/color"
)

// Drawer is the set of primitives the page uses to compose a frame, without
// exposing the destination image.
type Drawer interface {
	// Size returns the destination size in pixels.
	Size() (width int, height int)

	Fill(rect image.Rectangle, c color.Color)
	StrokeRect(rect image.Rectangle, c color.Color, widthPx int)

	MeasureText(text string, style TextStyle) TextMetrics
	DrawText(text string, x, y int, style TextStyle) TextMetrics

	DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode)

	// DrawLayer composites a full-viewport layer at the given opacity.
	DrawLayer(img image.Image, opacity float64)
}

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// TextStyle describes how to render text.
// Coordinates for DrawText use a top-left anchor for Y.
// For X, Align controls how x is interpreted.
type TextStyle struct {
	Color color.Color
	Size  int // font size in pixels; 0 means renderer default
	Align TextAlign
}

type TextMetrics struct {
	Width      int
	Height     int
	Ascent     int
	Descent    int
	LineHeight int
}

type ScaleMode int

const (
	ScaleModeFit ScaleMode = iota
	ScaleModeFill
	ScaleModeStretch
)
