package sonar

import "math"

// Image is a RangeBins × Beams intensity grid stored row-major as a flat
// slice. Row and column are flipped relative to the raw bin and beam
// indices: bin 0 of beam 0 lands in the last row and last column.
type Image struct {
	Beams     int
	RangeBins int
	Pix       []float64 // len = Beams*RangeBins, 0 is background
}

// NewImage allocates an all-background image.
func NewImage(beams, rangeBins int) *Image {
	return &Image{
		Beams:     beams,
		RangeBins: rangeBins,
		Pix:       make([]float64, beams*rangeBins),
	}
}

// At returns the intensity at row, col.
func (m *Image) At(row, col int) float64 {
	return m.Pix[row*m.Beams+col]
}

func (m *Image) set(row, col int, v float64) {
	m.Pix[row*m.Beams+col] = v
}

// Lit counts cells that hold a non-zero intensity.
func (m *Image) Lit() int {
	n := 0
	for _, v := range m.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// Rows returns the grid as a slice of rows, sharing no memory with m.
func (m *Image) Rows() [][]float64 {
	rows := make([][]float64, m.RangeBins)
	for r := range rows {
		rows[r] = append([]float64(nil), m.Pix[r*m.Beams:(r+1)*m.Beams]...)
	}
	return rows
}

// Accumulator writes echoes into an Image. Writes for different beams touch
// disjoint columns, so beams may be accumulated from separate goroutines
// without locking. Within a beam the last write to a cell wins.
type Accumulator struct {
	img         *Image
	rangePerBin float64
}

// NewAccumulator creates a fresh background image for cfg.
func NewAccumulator(cfg Config) *Accumulator {
	return &Accumulator{
		img:         NewImage(cfg.Beams, cfg.RangeBins),
		rangePerBin: cfg.EffectiveRange() / float64(cfg.RangeBins),
	}
}

// Bin maps a hit distance to its range bin, clamped into [0, RangeBins).
func (a *Accumulator) Bin(distance float64) int {
	f := math.Floor(distance / a.rangePerBin)
	switch {
	case f < 0:
		return 0
	case f < float64(a.img.RangeBins):
		return int(f)
	default:
		// Also catches +Inf and NaN.
		return a.img.RangeBins - 1
	}
}

// Cell returns the image row and column for a beam and bin.
func (a *Accumulator) Cell(beam, bin int) (row, col int) {
	return a.img.RangeBins - bin - 1, a.img.Beams - beam - 1
}

// Add records an echo. The intensity is clamped to [0, 1]; NaN intensities
// and NaN distances are dropped.
func (a *Accumulator) Add(beam int, distance, intensity float64) {
	if math.IsNaN(distance) || math.IsNaN(intensity) || beam < 0 || beam >= a.img.Beams {
		return
	}
	row, col := a.Cell(beam, a.Bin(distance))
	a.img.set(row, col, Clamp01(intensity))
}

// Image returns the accumulated grid.
func (a *Accumulator) Image() *Image {
	return a.img
}
