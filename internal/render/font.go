package render

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// LoadGlyphFont parses the OpenType/TrueType file at path, or the embedded
// Go Mono font when path is empty.
func LoadGlyphFont(path string) (*opentype.Font, error) {
	data := gomono.TTF
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font %s: %w", path, err)
		}
		data = raw
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return f, nil
}

// NewGlyphFace returns a face whose em is sizePx pixels.
func NewGlyphFace(f *opentype.Font, sizePx int) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull})
}

// fontCovers reports whether f has a real glyph (not .notdef) for r.
func fontCovers(f *sfnt.Font, buf *sfnt.Buffer, r rune) bool {
	idx, err := f.GlyphIndex(buf, r)
	return err == nil && idx != 0
}

// LoadTextFont parses the TrueType font used for page text. Empty data
// selects Go Regular.
func LoadTextFont(data []byte) (*truetype.Font, error) {
	if len(data) == 0 {
		data = goregular.TTF
	}
	return truetype.Parse(data)
}
