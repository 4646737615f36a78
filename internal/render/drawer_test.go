package render

import (
	"image"
	"image/color"
	"testing"
)

func newTestDrawer(t *testing.T, width, height int) (*ImageDrawer, *image.RGBA) {
	t.Helper()
	f, err := LoadTextFont(nil)
	if err != nil {
		t.Fatalf("load text font: %v", err)
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	return NewImageDrawer(dst, NewTextRenderer(f)), dst
}

func TestDrawLayerOpacity(t *testing.T) {
	d, dst := newTestDrawer(t, 4, 4)
	d.Fill(dst.Bounds(), color.RGBA{A: 255})

	layer := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range layer.Pix {
		layer.Pix[i] = 255
	}
	d.DrawLayer(layer, 0.15)

	got := dst.RGBAAt(1, 1)
	if got.R < 36 || got.R > 40 {
		t.Errorf("15%% white over black = %d, want about 38", got.R)
	}
	if got.A != 255 {
		t.Errorf("alpha = %d", got.A)
	}
	d.DrawLayer(layer, 0)
	if dst.RGBAAt(1, 1) != got {
		t.Error("zero opacity layer should not draw")
	}
}

func TestStrokeRectLeavesInteriorUntouched(t *testing.T) {
	d, dst := newTestDrawer(t, 20, 20)
	d.StrokeRect(image.Rect(2, 2, 18, 18), color.RGBA{R: 255, A: 255}, 2)
	if dst.RGBAAt(2, 2).R != 255 || dst.RGBAAt(17, 10).R != 255 {
		t.Error("edges should be painted")
	}
	if dst.RGBAAt(10, 10).A != 0 {
		t.Error("interior should stay empty")
	}
}

func TestDrawTextPaintsPixels(t *testing.T) {
	d, dst := newTestDrawer(t, 200, 40)
	m := d.DrawText("Projects", 10, 5, TextStyle{Color: color.White, Size: 20})
	if m.Width <= 0 || m.Ascent <= 0 {
		t.Fatalf("unexpected metrics %+v", m)
	}
	painted := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 200; x++ {
			if dst.RGBAAt(x, y).A != 0 {
				painted++
			}
		}
	}
	if painted == 0 {
		t.Error("text left no pixels")
	}
}

func TestFitRect(t *testing.T) {
	got := fitRect(image.Rect(0, 0, 100, 50), image.Rect(0, 0, 200, 200))
	if got != image.Rect(0, 50, 200, 150) {
		t.Errorf("fitRect = %v", got)
	}
}

func TestFillSource(t *testing.T) {
	got := fillSource(image.Rect(0, 0, 100, 50), image.Rect(0, 0, 200, 200))
	if got != image.Rect(25, 0, 75, 50) {
		t.Errorf("fillSource = %v", got)
	}
}

func TestControlQRCode(t *testing.T) {
	img, err := ControlQRCode("", 128, nil, nil, true)
	if err != nil || img != nil {
		t.Fatalf("empty url: img=%v err=%v", img, err)
	}
	img, err = ControlQRCode("http://127.0.0.1:8080/", 128, color.Black, color.White, true)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 128 || b.Dy() != 128 {
		t.Errorf("qr size = %v", b)
	}
	if r, _, _, _ := img.At(0, 0).RGBA(); r == 0 {
		t.Error("bordered code starts with a dark module")
	}

	img, err = ControlQRCode("http://127.0.0.1:8080/", 128, color.Black, color.White, false)
	if err != nil {
		t.Fatalf("generate borderless: %v", err)
	}
	if r, _, _, _ := img.At(0, 0).RGBA(); r != 0 {
		t.Error("borderless code should start with the finder pattern")
	}
}
