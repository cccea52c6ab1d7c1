// Package output writes captured sonar frames: the encoded image, the pose
// record beside it, and a run manifest.
package output

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// Formats lists the supported image formats by file extension.
var Formats = []string{"jpg", "png", "webp", "tga", "bmp"}

// NormalizeFormat maps an extension or format name to its canonical form.
func NormalizeFormat(format string) (string, error) {
	f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	if f == "jpeg" {
		f = "jpg"
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("output: unsupported format %q", format)
}

// Encode writes img in format. Quality only applies to JPEG and is
// clamped to 1-100.
func Encode(w io.Writer, img image.Image, format string, quality int) error {
	f, err := NormalizeFormat(format)
	if err != nil {
		return err
	}
	switch f {
	case "jpg":
		quality = max(1, min(100, quality))
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case "png":
		err = png.Encode(w, img)
	case "webp":
		err = nativewebp.Encode(w, toNRGBA(img), nil)
	case "tga":
		err = tga.Encode(w, toNRGBA(img))
	case "bmp":
		err = bmp.Encode(w, img)
	}
	if err != nil {
		return fmt.Errorf("output: %s encode: %w", f, err)
	}
	return nil
}

// toNRGBA widens img for the encoders that only handle colour images.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
