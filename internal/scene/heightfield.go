package scene

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"

	"sonar-renderer/internal/mathutil"
)

// Heightfield is a terrain surface sampled on a regular grid. Grid column i
// maps to x = Origin.x + i/(W-1)·Size.x and row j to z = Origin.z + j/(H-1)·Size.z;
// sample values in [0, 1] are scaled by Height above Origin.y.
type Heightfield struct {
	Origin  mathutil.Vec3
	Size    [2]float64 // extent along x and z
	Height  float64
	W, H    int
	Samples []float64 // row-major, len = W*H
}

// NewHeightfield wraps a row-major grid of normalised samples.
func NewHeightfield(origin mathutil.Vec3, size [2]float64, height float64, w, h int, samples []float64) (*Heightfield, error) {
	if w < 2 || h < 2 {
		return nil, fmt.Errorf("scene: heightfield needs at least 2×2 samples, got %d×%d", w, h)
	}
	if len(samples) != w*h {
		return nil, fmt.Errorf("scene: heightfield has %d samples, want %d", len(samples), w*h)
	}
	if size[0] <= 0 || size[1] <= 0 {
		return nil, fmt.Errorf("scene: heightfield size must be positive, got %v", size)
	}
	return &Heightfield{Origin: origin, Size: size, Height: height, W: w, H: h, Samples: samples}, nil
}

// LoadHeightmap decodes a grayscale heightmap (TGA, PNG, JPEG or BMP) into
// a row-major grid of samples in [0, 1].
func LoadHeightmap(path string) (w, h int, samples []float64, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("scene: read heightmap %s: %w", path, err)
	}

	var decode func(io.Reader) (image.Image, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".tga":
		decode = tga.Decode
	case ".bmp":
		decode = bmp.Decode
	case ".png":
		decode = png.Decode
	case ".jpg", ".jpeg":
		decode = jpeg.Decode
	default:
		return 0, 0, nil, fmt.Errorf("scene: unknown heightmap extension: %s", ext)
	}

	img, err := decode(bytes.NewReader(raw))
	if err != nil {
		return 0, 0, nil, fmt.Errorf("scene: decode heightmap %s: %w", path, err)
	}

	w, h, samples = toSamples(img)
	return w, h, samples, nil
}

// toSamples converts any image to normalised 16-bit luminance samples.
func toSamples(src image.Image) (int, int, []float64) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g := color.Gray16Model.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
			out[y*w+x] = float64(g.Y) / 0xffff
		}
	}
	return w, h, out
}

// heightAt returns the bilinearly interpolated surface height at world x, z
// and whether the point lies over the grid.
func (hf *Heightfield) heightAt(x, z float64) (float64, bool) {
	u := (x - hf.Origin[0]) / hf.Size[0]
	v := (z - hf.Origin[2]) / hf.Size[1]
	if u < 0 || u > 1 || v < 0 || v > 1 || math.IsNaN(u) || math.IsNaN(v) {
		return 0, false
	}

	fx := u * float64(hf.W-1)
	fy := v * float64(hf.H-1)
	x0 := int(fx)
	y0 := int(fy)
	if x0 >= hf.W-1 {
		x0 = hf.W - 2
	}
	if y0 >= hf.H-1 {
		y0 = hf.H - 2
	}
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	s := hf.Samples
	s00 := s[y0*hf.W+x0]
	s10 := s[y0*hf.W+x0+1]
	s01 := s[(y0+1)*hf.W+x0]
	s11 := s[(y0+1)*hf.W+x0+1]

	val := s00*(1-dx)*(1-dy) + s10*dx*(1-dy) + s01*(1-dx)*dy + s11*dx*dy
	return hf.Origin[1] + val*hf.Height, true
}

func (hf *Heightfield) cellSize() float64 {
	return math.Min(hf.Size[0]/float64(hf.W-1), hf.Size[1]/float64(hf.H-1))
}

// normalAt estimates the upward surface normal by central differences.
func (hf *Heightfield) normalAt(x, z float64) mathutil.Vec3 {
	e := hf.cellSize() / 2
	hx0, ok0 := hf.heightAt(x-e, z)
	hx1, ok1 := hf.heightAt(x+e, z)
	hz0, ok2 := hf.heightAt(x, z-e)
	hz1, ok3 := hf.heightAt(x, z+e)
	if !(ok0 && ok1 && ok2 && ok3) {
		return mathutil.Vec3{0, 1, 0}
	}
	return mathutil.Vec3{-(hx1 - hx0) / (2 * e), 1, -(hz1 - hz0) / (2 * e)}.Normalize()
}

// Intersect marches along the ray in half-cell steps and refines the first
// crossing of the surface by bisection.
func (hf *Heightfield) Intersect(origin, dir mathutil.Vec3, maxDistance float64) (float64, mathutil.Vec3, bool) {
	step := hf.cellSize() / 2
	if step <= 0 || math.IsNaN(step) {
		return 0, mathutil.Vec3{}, false
	}

	above := func(t float64) (float64, bool) {
		p := origin.Add(dir.Scale(t))
		h, ok := hf.heightAt(p[0], p[2])
		return p[1] - h, ok
	}

	prevT := 0.0
	prevF, prevOK := above(0)
	for t := step; prevT < maxDistance; t += step {
		if t > maxDistance {
			t = maxDistance
		}
		f, ok := above(t)
		if ok && prevOK && (f <= 0) != (prevF <= 0) {
			lo, hi, flo := prevT, t, prevF
			for i := 0; i < 32; i++ {
				mid := (lo + hi) / 2
				fm, _ := above(mid)
				if (fm <= 0) == (flo <= 0) {
					lo, flo = mid, fm
				} else {
					hi = mid
				}
			}
			if hi <= hitEpsilon {
				return 0, mathutil.Vec3{}, false
			}
			p := origin.Add(dir.Scale(hi))
			return hi, hf.normalAt(p[0], p[2]), true
		}
		prevT, prevF, prevOK = t, f, ok
	}
	return 0, mathutil.Vec3{}, false
}
