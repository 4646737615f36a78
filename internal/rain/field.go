package rain

import (
	"image"
	"image/color"
	"math"

	"github.com/rook-computer/rainfield/internal/render/layout"
)

// Glyph is one character drawn by the field during a frame.
// Y is the baseline. Glow is nil when the glyph is not highlighted.
type Glyph struct {
	Rune rune
	X, Y int
	Fill color.Color
	Glow color.Color
}

// Surface is the raster the field paints into.
type Surface interface {
	Resize(width, height int)
	Fade(c color.Color)
	DrawGlyph(g Glyph)
	Image() image.Image
}

// Field is the per-column drop simulation. It is not safe for concurrent
// use; Engine serialises access to it.
type Field struct {
	opts Options
	rng  RNG

	width, height int
	drops         []float64
	palette       Palette
	hovered       []image.Rectangle
}

// NewField creates a field sized to width x height with every column seeded
// at a random offset above the top edge.
func NewField(width, height int, opts Options, rng RNG) *Field {
	if rng == nil {
		rng = StdRNG{}
	}
	f := &Field{opts: opts.withDefaults(), rng: rng, palette: PaletteFor("")}
	f.Resize(width, height)
	return f
}

func (f *Field) Options() Options { return f.opts }

func (f *Field) Size() (width, height int) { return f.width, f.height }

// Columns returns floor(width / glyphSize).
func (f *Field) Columns() int { return len(f.drops) }

// Drops returns a copy of the drop positions in glyph-cell units.
func (f *Field) Drops() []float64 {
	out := make([]float64, len(f.drops))
	copy(out, f.drops)
	return out
}

// Resize adapts the column model to new surface dimensions. Columns that
// survive keep their position; new columns get a fresh start offset.
func (f *Field) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	f.width, f.height = width, height

	columns := width / f.opts.GlyphSize
	if f.drops != nil && columns == len(f.drops) {
		return
	}
	drops := make([]float64, columns)
	kept := copy(drops, f.drops)
	for i := kept; i < columns; i++ {
		drops[i] = f.spawnOffset()
	}
	f.drops = drops
}

// spawnOffset is uniform in [-SpawnDepth, 0).
func (f *Field) spawnOffset() float64 {
	return (f.rng.Float64() - 1) * f.opts.SpawnDepth
}

func (f *Field) Palette() Palette { return f.palette }

// SetTheme replaces the palette with the one for the theme attribute value.
func (f *Field) SetTheme(name string) { f.palette = PaletteFor(name) }

func (f *Field) SetPalette(p Palette) { f.palette = p }

// SetHovered replaces the hovered rectangle set. A nil or empty slice turns
// highlighting off.
func (f *Field) SetHovered(rects []image.Rectangle) {
	if len(rects) == 0 {
		f.hovered = nil
		return
	}
	f.hovered = append(make([]image.Rectangle, 0, len(rects)), rects...)
}

func (f *Field) Hovered() []image.Rectangle {
	return append([]image.Rectangle(nil), f.hovered...)
}

// Highlighted reports whether a glyph at pixel (x, y) lies within
// HighlightMargin of any hovered rectangle.
func (f *Field) Highlighted(x, y float64) bool {
	for _, rect := range f.hovered {
		if layout.ContainsInclusive(layout.Expand(rect, f.opts.HighlightMargin), x, y) {
			return true
		}
	}
	return false
}

// Step renders one frame into s and advances the simulation: fade, draw one
// glyph per column, maybe recycle columns below the bottom edge, advance.
// A nil surface advances the simulation without drawing.
func (f *Field) Step(s Surface) {
	if s != nil {
		s.Fade(f.palette.Fade)
	}
	cell := float64(f.opts.GlyphSize)
	threshold := 1 - f.opts.RecycleProbability
	for i := range f.drops {
		r := f.opts.Alphabet[f.rng.IntN(len(f.opts.Alphabet))]
		x := float64(i) * cell
		y := f.drops[i] * cell

		if s != nil {
			glyph := Glyph{Rune: r, X: int(x), Y: int(math.Round(y)), Fill: f.palette.Normal}
			if f.Highlighted(x, y) {
				glyph.Fill = f.palette.Highlight
				glyph.Glow = f.palette.HighlightGlow
			}
			s.DrawGlyph(glyph)
		}

		if y > float64(f.height) && f.rng.Float64() > threshold {
			f.drops[i] = 0
		}
		f.drops[i]++
	}
}
