package render

import (
	"image"
	"image/color"

	"github.com/skip2/go-qrcode"
)

const defaultQRCodeSizePx = 256

// ControlQRCode encodes the control UI URL for the page card. The card
// supplies its own padding, so the quiet zone is dropped when border is
// false. An empty url yields (nil, nil).
func ControlQRCode(url string, sizePx int, fg, bg color.Color, border bool) (image.Image, error) {
	if url == "" {
		return nil, nil
	}
	if sizePx <= 0 {
		sizePx = defaultQRCodeSizePx
	}

	code, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	code.DisableBorder = !border
	if fg != nil {
		code.ForegroundColor = fg
	}
	if bg != nil {
		code.BackgroundColor = bg
	}
	return code.Image(sizePx), nil
}
