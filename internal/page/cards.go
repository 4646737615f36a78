package page

import (
	"image"

	"github.com/rook-computer/rainfield/internal/render"
	"github.com/rook-computer/rainfield/internal/render/layout"
)

const (
	cardPadding = 24
	cardGap     = 32
	cardHeight  = 220
	titleSize   = 26
	lineSize    = 18
	maxColumns  = 3
	minCardW    = 320
)

func drawCard(d render.Drawer, c Card, r image.Rectangle, style Style, hovered bool) {
	fill, border, borderW := style.Card, style.Border, 1
	if hovered {
		fill, border, borderW = style.CardHover, style.Accent, 2
	}
	d.Fill(r, fill)
	d.StrokeRect(r, border, borderW)

	content := layout.Inset(r, cardPadding)
	if c.Image != nil {
		text, pic := layout.SplitVertical(content, content.Dx()-content.Dy())
		d.DrawImageInRect(c.Image, layout.FitSquare(pic), render.ScaleModeFit)
		content = text
	}

	header, body := layout.SplitHorizontal(content, titleSize+12)
	d.DrawText(c.Title, header.Min.X, header.Min.Y, render.TextStyle{Color: style.Title, Size: titleSize})
	y := body.Min.Y
	for _, line := range c.Lines {
		if y+lineSize > body.Max.Y {
			break
		}
		m := d.DrawText(line, body.Min.X, y, render.TextStyle{Color: style.Text, Size: lineSize})
		y += m.LineHeight + 4
	}
}

// LayoutCards places cards in a responsive grid for a viewport of the given
// width, in document coordinates. Only Rect is changed.
func LayoutCards(cards []Card, width int) []Card {
	out := append([]Card(nil), cards...)
	if len(out) == 0 {
		return out
	}
	columns := (width - cardGap) / (minCardW + cardGap)
	if columns > maxColumns {
		columns = maxColumns
	}
	if columns < 1 {
		columns = 1
	}
	rows := (len(out) + columns - 1) / columns
	area := image.Rect(cardGap, cardGap, width-cardGap, cardGap+rows*cardHeight+(rows-1)*cardGap)
	cells := layout.Grid(area, columns, rows, cardGap)
	for i := range out {
		out[i].Rect = cells[i]
	}
	return out
}
