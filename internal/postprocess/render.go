package postprocess

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"sonar-renderer/internal/sonar"
)

// Gray converts a sonar image to 8-bit grayscale. Grid row 0 becomes the
// bottom scanline, so the nearest range bin ends up at the top.
func Gray(m *sonar.Image) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, m.Beams, m.RangeBins))
	for row := 0; row < m.RangeBins; row++ {
		y := m.RangeBins - 1 - row
		for col := 0; col < m.Beams; col++ {
			out.Pix[out.PixOffset(col, y)] = clamp8(m.At(row, col) * 255)
		}
	}
	return out
}

// Rescale resizes img by scale with CatmullRom filtering. Scales that would
// leave the size unchanged return img itself.
func Rescale(img *image.Gray, scale float64) *image.Gray {
	b := img.Bounds()
	w := int(math.Round(float64(b.Dx()) * scale))
	h := int(math.Round(float64(b.Dy()) * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w == b.Dx() && h == b.Dy() {
		return img
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func clamp8(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
