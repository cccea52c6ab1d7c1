package scene

import (
	"fmt"
	"strings"
)

// Material carries the acoustic surface properties of an object.
type Material struct {
	Absorption     float64 `json:"absorption"`
	TargetStrength float64 `json:"target_strength"` // dB
}

// MaterialResolver resolves a material name to its properties.
type MaterialResolver interface {
	Resolve(name string) (Material, bool)
}

// Materials maps lowercase material names to properties.
type Materials map[string]Material

// DefaultMaterials returns the stock surfaces: a metal grate and a soft
// terrain bed.
func DefaultMaterials() Materials {
	return Materials{
		"grate":   {Absorption: 0.1, TargetStrength: -20},
		"terrain": {Absorption: 0.6, TargetStrength: -30},
	}
}

// Resolve looks a material up case-insensitively.
func (m Materials) Resolve(name string) (Material, bool) {
	mat, ok := m[strings.ToLower(strings.TrimSpace(name))]
	return mat, ok
}

// TargetStrength returns the target strength in dB of the named material,
// the TS term of the sonar equation.
func TargetStrength(r MaterialResolver, name string) (float64, error) {
	if r == nil {
		return 0, fmt.Errorf("scene: no materials to resolve %q", name)
	}
	mat, ok := r.Resolve(name)
	if !ok {
		return 0, fmt.Errorf("scene: unknown material %q", name)
	}
	return mat.TargetStrength, nil
}

// Merge returns a copy of m with every entry of other added or replaced.
func (m Materials) Merge(other Materials) Materials {
	out := make(Materials, len(m)+len(other))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range other {
		out[strings.ToLower(k)] = v
	}
	return out
}
