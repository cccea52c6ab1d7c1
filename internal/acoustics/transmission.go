package acoustics

import "math"

// WaterType selects the salinity used by the absorption model.
type WaterType int

const (
	FreshWater WaterType = iota
	SeaWater
)

func (w WaterType) String() string {
	if w == SeaWater {
		return "sea"
	}
	return "fresh"
}

// Salinity returns the assumed salinity in ppt.
func (w WaterType) Salinity() float64 {
	if w == SeaWater {
		return 35
	}
	return 1
}

// Default water properties used when the caller does not measure them.
const (
	DefaultTemperature = 4.0 // °C
	DefaultPH          = 8.0
)

// Parameters describes the bulk water the sonar operates in.
type Parameters struct {
	FrequencyKHz float64
	Depth        float64 // metres
	Water        WaterType
	Temperature  float64 // °C
	Salinity     float64 // ppt
	PH           float64
}

// NewParameters derives salinity from the water type and fills temperature
// and pH with the defaults.
func NewParameters(frequencyKHz, depth float64, water WaterType) Parameters {
	return Parameters{
		FrequencyKHz: frequencyKHz,
		Depth:        depth,
		Water:        water,
		Temperature:  DefaultTemperature,
		Salinity:     water.Salinity(),
		PH:           DefaultPH,
	}
}

// Absorption holds the three relaxation terms of the absorption coefficient,
// each in dB/km.
type Absorption struct {
	BoricAcid         float64
	MagnesiumSulphate float64
	Viscosity         float64
}

// Total returns the summed absorption coefficient in dB/km.
func (a Absorption) Total() float64 {
	return a.BoricAcid + a.MagnesiumSulphate + a.Viscosity
}

// depthKm is the depth term the absorption and spreading formulas share: the
// configured depth halved and expressed in km.
func (p Parameters) depthKm() float64 {
	return p.Depth / (2 * 1000)
}

// TransitionDepth is the range (in the same scaled units as the absorption
// depth term) beyond which spreading turns from spherical to cylindrical.
func (p Parameters) TransitionDepth() float64 {
	return p.depthKm() / 2
}

// Absorption returns the boric acid, magnesium sulphate and viscosity terms.
func (p Parameters) Absorption() Absorption {
	t, s, f := p.Temperature, p.Salinity, p.FrequencyKHz
	d := p.depthKm()

	f1 := 0.78 * math.Sqrt(s/35) * math.Exp(t/26)
	f2 := 42 * math.Exp(t/17)
	fSqr := f * f

	return Absorption{
		BoricAcid:         0.106 * (f1 * fSqr / (f1*f1 + fSqr)) * math.Exp((p.PH-8)/0.56),
		MagnesiumSulphate: 0.52 * (1 + t/43) * (s / 35) * (f2 * fSqr / (f2*f2 + fSqr)) * math.Exp(-d/6),
		Viscosity:         0.00049 * fSqr * math.Exp(-(t/27 + d/17)),
	}
}

// TransmissionLoss returns the one-way loss in dB at distance, using
// spherical spreading up to the transition depth and spherical+cylindrical
// spreading beyond it.
func (p Parameters) TransmissionLoss(distance float64) float64 {
	alpha := p.Absorption().Total()
	transition := p.TransitionDepth()
	attenuation := alpha * distance * 0.001

	if distance <= transition {
		return PowerToDecibel(distance*distance) + attenuation
	}
	return PowerToDecibel(distance) + PowerToDecibel(transition) + attenuation
}

// TransmissionLoss computes the one-way loss in dB with the water fixed at
// 4 °C and pH 8; salinity follows freshWater (1 ppt) or sea water (35 ppt).
func TransmissionLoss(distance, frequencyKHz, depth float64, freshWater bool) float64 {
	water := SeaWater
	if freshWater {
		water = FreshWater
	}
	return NewParameters(frequencyKHz, depth, water).TransmissionLoss(distance)
}

// TwoWayTransmissionLoss is the echo-sounder round trip loss for a target at
// distance (m) with absorption in dB/km.
func TwoWayTransmissionLoss(distance, absorptionDBPerKm float64) float64 {
	spreading := 20 * math.Log10(distance)
	attenuation := absorptionDBPerKm * distance / 1000
	return 2*spreading + 2*attenuation
}
