package rain

import "math/rand/v2"

// Alphabet is the default glyph set: katakana, digits and upper-case latin.
const Alphabet = "アァカサタナハマヤャラワガザダバパイィキシチニヒミリヰギジヂビピウゥクスツヌフムユュルグズブヅプエェケセテネヘメレヱゲゼデベペオォコソトノホモヨョロヲゴゾドボポヴッン0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

const (
	DefaultGlyphSize          = 14
	DefaultRecycleProbability = 0.025
	DefaultHighlightMargin    = 100
	DefaultSpawnDepth         = 100
	DefaultGlowRadius         = 15
	DefaultSurfaceOpacity     = 0.15
)

// Options holds the tuning points of a rain field. Zero values fall back to
// the defaults above, except HighlightMargin where zero means no margin.
// Start from DefaultOptions to get the usual 100px.
type Options struct {
	// GlyphSize is the pixel size of one glyph cell.
	GlyphSize int

	// RecycleProbability is the per-frame chance that a column below the
	// bottom edge restarts at the top.
	RecycleProbability float64

	// HighlightMargin expands every hovered rectangle on all four sides.
	HighlightMargin int

	// SpawnDepth bounds the random start offset, in glyph cells above the top.
	SpawnDepth float64

	// SurfaceOpacity is requested from the host when the surface is mounted.
	SurfaceOpacity float64

	Alphabet []rune
}

func DefaultOptions() Options {
	return Options{
		GlyphSize:          DefaultGlyphSize,
		RecycleProbability: DefaultRecycleProbability,
		HighlightMargin:    DefaultHighlightMargin,
		SpawnDepth:         DefaultSpawnDepth,
		SurfaceOpacity:     DefaultSurfaceOpacity,
		Alphabet:           []rune(Alphabet),
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.GlyphSize <= 0 {
		o.GlyphSize = def.GlyphSize
	}
	if o.RecycleProbability <= 0 || o.RecycleProbability > 1 {
		o.RecycleProbability = def.RecycleProbability
	}
	if o.HighlightMargin < 0 {
		o.HighlightMargin = 0
	}
	if o.SpawnDepth <= 0 {
		o.SpawnDepth = def.SpawnDepth
	}
	if o.SurfaceOpacity <= 0 || o.SurfaceOpacity > 1 {
		o.SurfaceOpacity = def.SurfaceOpacity
	}
	if len(o.Alphabet) == 0 {
		o.Alphabet = def.Alphabet
	}
	return o
}

// RNG is the random source used for start offsets, glyph choice and recycling.
// *rand.Rand from math/rand/v2 satisfies it.
type RNG interface {
	Float64() float64
	IntN(n int) int
}

// StdRNG delegates to the auto-seeded math/rand/v2 globals.
type StdRNG struct{}

func (StdRNG) Float64() float64 { return rand.Float64() }
func (StdRNG) IntN(n int) int   { return rand.IntN(n) }
