package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"sonar-renderer/internal/acoustics"
	"sonar-renderer/internal/pose"
	"sonar-renderer/internal/sonar"
)

// Config holds the sensor, renderer and output settings of a simulation run.
type Config struct {
	// BaseDir anchors relative paths. Load sets it to the config file's
	// directory when the file leaves it empty.
	BaseDir string `json:"base_dir"`

	Sensor      Sensor        `json:"sensor"`
	Renderer    Renderer      `json:"renderer"`
	PoseMapping *pose.Mapping `json:"pose_mapping"`
	Acoustics   Acoustics     `json:"acoustics"`
	Output      Output        `json:"output"`
	Scene       Scene         `json:"scene"`
	Trajectory  Trajectory    `json:"trajectory"`
}

// Sensor mirrors sonar.Config. Absent fields take the sonar.DefaultConfig
// values; explicit values are kept as given and checked by Validate.
type Sensor struct {
	HorizontalFOV            *float64 `json:"horizontal_fov"`
	VerticalFOV              *float64 `json:"vertical_fov"`
	MinRange                 *float64 `json:"min_range"`
	MaxRange                 *float64 `json:"max_range"`
	Beams                    *int     `json:"beams"`
	RangeBins                *int     `json:"range_bins"`
	VerticalSampleMultiplier *float64 `json:"vertical_sample_multiplier"`
	NoiseEnabled             *bool    `json:"noise_enabled"`
	NoiseLevel               *float64 `json:"noise_level"`
	Layers                   []int    `json:"layers"` // empty means all
}

// Renderer selects the intensity model and capture parallelism.
type Renderer struct {
	Model     string `json:"model"` // "reference" or "acoustic"
	Seed      uint64 `json:"seed"`  // 0 picks a time-based seed
	Workers   int    `json:"workers"`
	Verbosity int    `json:"verbosity"`
}

// Acoustics describes the water for the acoustic model and tables.
type Acoustics struct {
	FrequencyKHz float64  `json:"frequency_khz"`
	Depth        float64  `json:"depth"`
	Water        string   `json:"water"` // "fresh" or "sea"
	Temperature  *float64 `json:"temperature"`
	PH           *float64 `json:"ph"`
}

// Output controls how captures are written.
type Output struct {
	Dir       string  `json:"dir"`
	Format    string  `json:"format"`
	Quality   int     `json:"quality"`
	Scale     float64 `json:"scale"`
	SavePoses bool    `json:"save_poses"`
	Manifest  bool    `json:"manifest"`
}

// Scene points at a JSON scene description.
type Scene struct {
	Path string `json:"path"`
}

// Trajectory is the waypoint path played by the batch runner.
type Trajectory struct {
	Waypoints        []pose.Pose `json:"waypoints"`
	FramesPerSegment int         `json:"frames_per_segment"`
}

// Model names accepted in renderer.model.
const (
	ModelReference = "reference"
	ModelAcoustic  = "acoustic"
)

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	// A partial pose_mapping only overrides the fields it names.
	mapping := pose.DefaultMapping()
	cfg := Config{PoseMapping: &mapping}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.BaseDir == "" {
		cfg.BaseDir = filepath.Dir(path)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	BaseDir   string
	ScenePath string
	OutputDir string
	Format    string
	Model     string
	Quality   int
	Workers   int
	Seed      uint64
	Verbosity int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.BaseDir != "" {
		c.BaseDir = flags.BaseDir
	}
	if flags.ScenePath != "" {
		c.Scene.Path = flags.ScenePath
	}
	if flags.OutputDir != "" {
		c.Output.Dir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Output.Format = flags.Format
	}
	if flags.Model != "" {
		c.Renderer.Model = flags.Model
	}
	if flags.Quality > 0 {
		c.Output.Quality = flags.Quality
	}
	if flags.Workers > 0 {
		c.Renderer.Workers = flags.Workers
	}
	if flags.Seed > 0 {
		c.Renderer.Seed = flags.Seed
	}
	if flags.Verbosity > 0 {
		c.Renderer.Verbosity = flags.Verbosity
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "captures"
	}
	c.Output.Dir = c.abs(c.Output.Dir)
	if c.Scene.Path != "" {
		c.Scene.Path = c.abs(c.Scene.Path)
	}

	if c.Renderer.Model == "" {
		c.Renderer.Model = ModelReference
	}
	c.Renderer.Model = strings.ToLower(c.Renderer.Model)
	if c.Renderer.Workers <= 0 {
		c.Renderer.Workers = runtime.NumCPU()
	}

	if c.PoseMapping == nil {
		m := pose.DefaultMapping()
		c.PoseMapping = &m
	}

	if c.Acoustics.FrequencyKHz <= 0 {
		c.Acoustics.FrequencyKHz = acoustics.CarrierFrequency / 1000
	}
	if c.Acoustics.Depth <= 0 {
		c.Acoustics.Depth = 10
	}
	if c.Acoustics.Water == "" {
		c.Acoustics.Water = acoustics.FreshWater.String()
	}

	if c.Output.Format == "" {
		c.Output.Format = "jpg"
	}
	c.Output.Format = strings.ToLower(strings.TrimPrefix(c.Output.Format, "."))
	if c.Output.Quality <= 0 {
		c.Output.Quality = 90
	}
	if c.Output.Scale <= 0 {
		c.Output.Scale = 1
	}

	if c.Trajectory.FramesPerSegment <= 0 {
		c.Trajectory.FramesPerSegment = 10
	}
}

func (c *Config) abs(p string) string {
	if filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// SensorConfig builds the sonar head description and validates it, so a
// bad sensor section fails before any capture.
func (c *Config) SensorConfig() (sonar.Config, error) {
	out := sonar.DefaultConfig()
	set(&out.HorizontalFOV, c.Sensor.HorizontalFOV)
	set(&out.VerticalFOV, c.Sensor.VerticalFOV)
	set(&out.MinRange, c.Sensor.MinRange)
	set(&out.MaxRange, c.Sensor.MaxRange)
	set(&out.Beams, c.Sensor.Beams)
	set(&out.RangeBins, c.Sensor.RangeBins)
	set(&out.VerticalSampleMultiplier, c.Sensor.VerticalSampleMultiplier)
	set(&out.NoiseEnabled, c.Sensor.NoiseEnabled)
	set(&out.NoiseLevel, c.Sensor.NoiseLevel)

	if len(c.Sensor.Layers) > 0 {
		out.Mask = 0
		for _, l := range c.Sensor.Layers {
			if l < 0 || l > 31 {
				return sonar.Config{}, fmt.Errorf("config: sensor layer %d outside 0-31", l)
			}
			out.Mask |= 1 << uint(l)
		}
	}
	if err := out.Validate(); err != nil {
		return sonar.Config{}, fmt.Errorf("config: sensor: %w", err)
	}
	return out, nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Mapping returns the pose axis mapping.
func (c *Config) Mapping() pose.Mapping {
	if c.PoseMapping == nil {
		return pose.DefaultMapping()
	}
	return *c.PoseMapping
}

// AcousticParameters builds the water description.
func (c *Config) AcousticParameters() (acoustics.Parameters, error) {
	var water acoustics.WaterType
	switch strings.ToLower(c.Acoustics.Water) {
	case "", "fresh":
		water = acoustics.FreshWater
	case "sea", "salt":
		water = acoustics.SeaWater
	default:
		return acoustics.Parameters{}, fmt.Errorf("config: unknown water type %q", c.Acoustics.Water)
	}
	p := acoustics.NewParameters(c.Acoustics.FrequencyKHz, c.Acoustics.Depth, water)
	if c.Acoustics.Temperature != nil {
		p.Temperature = *c.Acoustics.Temperature
	}
	if c.Acoustics.PH != nil {
		p.PH = *c.Acoustics.PH
	}
	return p, nil
}

// IntensityModel returns the echo model selected by renderer.model.
func (c *Config) IntensityModel(sensor sonar.Config) (sonar.IntensityModel, error) {
	switch c.Renderer.Model {
	case "", ModelReference:
		return sonar.NewReferenceModel(sensor), nil
	case ModelAcoustic:
		water, err := c.AcousticParameters()
		if err != nil {
			return nil, err
		}
		return sonar.NewAcousticModel(sensor, water), nil
	default:
		return nil, fmt.Errorf("config: unknown intensity model %q", c.Renderer.Model)
	}
}
