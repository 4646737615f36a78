package page

import (
	"image/color"

	"github.com/rook-computer/rainfield/internal/rain"
)

// Style holds the page colors for one theme.
type Style struct {
	Background color.Color
	Card       color.Color
	CardHover  color.Color
	Border     color.Color
	Accent     color.Color
	Title      color.Color
	Text       color.Color
}

var styles = map[rain.Theme]Style{
	rain.ThemeLight: {
		Background: rain.HexAlpha("#f4f6f3", 1),
		Card:       rain.HexAlpha("#ffffff", 0.85),
		CardHover:  rain.HexAlpha("#ffffff", 0.95),
		Border:     rain.HexAlpha("#cfd8cc", 1),
		Accent:     rain.HexAlpha("#0096ff", 1),
		Title:      rain.HexAlpha("#203022", 1),
		Text:       rain.HexAlpha("#4a5a4c", 1),
	},
	rain.ThemeDark: {
		Background: rain.HexAlpha("#111111", 1),
		Card:       rain.HexAlpha("#1b1f1b", 0.85),
		CardHover:  rain.HexAlpha("#1f261f", 0.95),
		Border:     rain.HexAlpha("#2e3a2c", 1),
		Accent:     rain.HexAlpha("#00ff46", 1),
		Title:      rain.HexAlpha("#e6f2e6", 1),
		Text:       rain.HexAlpha("#9fb3a1", 1),
	},
}

// StyleFor returns the page style for a theme attribute value.
func StyleFor(theme string) Style { return styles[rain.ParseTheme(theme)] }
