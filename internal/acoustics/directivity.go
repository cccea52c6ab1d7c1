package acoustics

import "math"

// TransducerFace is the radiating face geometry of a transducer.
type TransducerFace int

const (
	Omnidirectional TransducerFace = iota
	Hemispherical
	CircularFace
	RectangularFace
)

// Transducer describes a transducer face. Diameter is used by CircularFace,
// Length and Width by RectangularFace; all in metres.
type Transducer struct {
	Face     TransducerFace
	Diameter float64
	Length   float64
	Width    float64
}

// DirectivityIndex returns the directivity index in dB at the given
// wavelength (m).
func (t Transducer) DirectivityIndex(wavelength float64) float64 {
	switch t.Face {
	case Hemispherical:
		return PowerToDecibel(2)
	case CircularFace:
		k := math.Pi * t.Diameter / wavelength
		return PowerToDecibel(k * k)
	case RectangularFace:
		return PowerToDecibel(4 * math.Pi * t.Length * t.Width / (wavelength * wavelength))
	default:
		return 0
	}
}
