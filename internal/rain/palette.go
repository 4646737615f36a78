package rain

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps a theme attribute value to a Theme. Anything other than
// "light", including the empty string, is dark.
func ParseTheme(name string) Theme {
	if name == string(ThemeLight) {
		return ThemeLight
	}
	return ThemeDark
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Palette is the set of colors used to render one theme.
type Palette struct {
	Theme         Theme
	Normal        color.NRGBA
	Fade          color.NRGBA
	Highlight     color.NRGBA
	HighlightGlow color.NRGBA
}

var (
	lightPalette = Palette{
		Theme:         ThemeLight,
		Normal:        HexAlpha("#006400", 0.8),
		Fade:          HexAlpha("#ffffff", 0.2),
		Highlight:     HexAlpha("#0096ff", 1),
		HighlightGlow: HexAlpha("#0096ff", 0.8),
	}
	darkPalette = Palette{
		Theme:         ThemeDark,
		Normal:        HexAlpha("#00ff46", 0.8),
		Fade:          HexAlpha("#111111", 0.2),
		Highlight:     HexAlpha("#00ff00", 1),
		HighlightGlow: HexAlpha("#00ff00", 0.8),
	}
)

// PaletteFor returns the fixed palette for a theme attribute value.
func PaletteFor(name string) Palette {
	if ParseTheme(name) == ThemeLight {
		return lightPalette
	}
	return darkPalette
}

// HexAlpha parses a #rrggbb color and applies alpha in [0, 1]. It panics on
// malformed input, so use it only for compiled-in colors.
func HexAlpha(hex string, alpha float64) color.NRGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(alpha * 255))}
}
