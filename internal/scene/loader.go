package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sonar-renderer/internal/mathutil"
)

// ErrUnknownShape is returned for object specs with an unsupported shape.
var ErrUnknownShape = errors.New("scene: unknown shape")

// File is the JSON scene description.
type File struct {
	Materials Materials    `json:"materials"`
	Objects   []ObjectSpec `json:"objects"`
}

// ObjectSpec describes one object. Which fields apply depends on Shape:
//
//	plane:       point, normal
//	quad:        center, normal, up, size (width, height)
//	sphere:      center, radius
//	box:         min, max
//	heightfield: image, origin, size (x, z extent), height
type ObjectSpec struct {
	Name     string `json:"name"`
	Shape    string `json:"shape"`
	Layer    int    `json:"layer"`
	Material string `json:"material"`

	Point  mathutil.Vec3 `json:"point"`
	Normal mathutil.Vec3 `json:"normal"`
	Center mathutil.Vec3 `json:"center"`
	Up     mathutil.Vec3 `json:"up"`
	Size   [2]float64    `json:"size"`
	Radius float64       `json:"radius"`
	Min    mathutil.Vec3 `json:"min"`
	Max    mathutil.Vec3 `json:"max"`

	Image  string        `json:"image"`
	Origin mathutil.Vec3 `json:"origin"`
	Height float64       `json:"height"`
}

// Load reads a JSON scene file. Heightmap paths are resolved relative to the
// scene file. Materials in the file extend the default table.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}

	return f.Build(filepath.Dir(path))
}

// Build turns the description into a Scene. baseDir anchors relative
// heightmap paths.
func (f File) Build(baseDir string) (*Scene, error) {
	s := &Scene{Materials: DefaultMaterials().Merge(f.Materials)}
	maps := NewHeightmapCache()
	for i, spec := range f.Objects {
		shape, err := spec.build(baseDir, maps)
		if err != nil {
			return nil, fmt.Errorf("scene: object %d (%s): %w", i, spec.Name, err)
		}
		if spec.Layer < 0 || spec.Layer > 31 {
			return nil, fmt.Errorf("scene: object %d (%s): layer %d outside 0-31", i, spec.Name, spec.Layer)
		}
		s.Objects = append(s.Objects, Object{
			Name:     spec.Name,
			Layer:    spec.Layer,
			Material: spec.Material,
			Shape:    shape,
		})
	}
	return s, nil
}

func (o ObjectSpec) build(baseDir string, maps *HeightmapCache) (Shape, error) {
	switch strings.ToLower(o.Shape) {
	case "plane":
		if o.Normal.Len() == 0 {
			return nil, errors.New("plane needs a normal")
		}
		return Plane{Point: o.Point, Normal: o.Normal}, nil
	case "quad":
		if o.Normal.Len() == 0 || o.Up.Len() == 0 {
			return nil, errors.New("quad needs a normal and an up vector")
		}
		if o.Up.Normalize().Cross(o.Normal.Normalize()).Len() < 1e-6 {
			return nil, errors.New("quad up vector is parallel to its normal")
		}
		return Quad{
			Center:   o.Center,
			Normal:   o.Normal,
			Up:       o.Up,
			HalfSize: [2]float64{o.Size[0] / 2, o.Size[1] / 2},
		}, nil
	case "sphere":
		if o.Radius <= 0 {
			return nil, errors.New("sphere needs a positive radius")
		}
		return Sphere{Center: o.Center, Radius: o.Radius}, nil
	case "box":
		return Box{Min: o.Min, Max: o.Max}, nil
	case "heightfield":
		p := o.Image
		if p != "" && !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		hm, err := maps.Get(p)
		if err != nil {
			return nil, err
		}
		return NewHeightfield(o.Origin, o.Size, o.Height, hm.W, hm.H, hm.Samples)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownShape, o.Shape)
	}
}
