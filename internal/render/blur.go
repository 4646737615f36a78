package render

import "image"

// boxBlur runs passes horizontal+vertical box blurs of the given radius over
// img in place. Three passes approximate a gaussian.
func boxBlur(img *image.Alpha, radius, passes int) {
	if radius <= 0 {
		return
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return
	}
	n := w
	if h > n {
		n = h
	}
	line := make([]uint8, n)
	for p := 0; p < passes; p++ {
		for y := 0; y < h; y++ {
			off := y * img.Stride
			blurLine(img.Pix[off:off+w], 1, w, radius, line)
		}
		for x := 0; x < w; x++ {
			blurLine(img.Pix[x:], img.Stride, h, radius, line)
		}
	}
}

// blurLine blurs n samples spaced stride apart in pix, using tmp as scratch.
func blurLine(pix []uint8, stride, n, radius int, tmp []uint8) {
	for i := 0; i < n; i++ {
		tmp[i] = pix[i*stride]
	}
	window := 2*radius + 1
	sum := 0
	for i := -radius; i <= radius; i++ {
		if i >= 0 && i < n {
			sum += int(tmp[i])
		}
	}
	for i := 0; i < n; i++ {
		pix[i*stride] = uint8(sum / window)
		if out := i - radius; out >= 0 {
			sum -= int(tmp[out])
		}
		if in := i + radius + 1; in < n {
			sum += int(tmp[in])
		}
	}
}
