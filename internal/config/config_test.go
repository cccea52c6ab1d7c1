package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sonar-renderer/internal/acoustics"
	"sonar-renderer/internal/mathutil"
	"sonar-renderer/internal/pose"
	"sonar-renderer/internal/sonar"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAndResolve(t *testing.T) {
	path := writeConfig(t, `{
		"sensor": {"beams": 64, "range_bins": 32, "noise_enabled": false, "layers": [0, 3]},
		"renderer": {"model": "Acoustic", "seed": 9, "workers": 2},
		"pose_mapping": {"position_x": "+x", "position_y": "+y", "position_z": "+z",
			"rotation_x": "+x", "rotation_y": "+y", "rotation_z": "+z"},
		"acoustics": {"water": "sea", "temperature": 0},
		"output": {"format": ".PNG", "save_poses": true},
		"scene": {"path": "scenes/tank.json"},
		"trajectory": {"waypoints": [{"position": [0, 0, 0]}, {"position": [0, 0, 2]}]}
	}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Dir(path), cfg.BaseDir)

	cfg.Resolve(Flags{})

	sensor, err := cfg.SensorConfig()
	require.NoError(t, err)
	assert.Equal(t, 64, sensor.Beams)
	assert.Equal(t, 32, sensor.RangeBins)
	assert.False(t, sensor.NoiseEnabled)
	assert.Equal(t, 60.0, sensor.HorizontalFOV)
	assert.Equal(t, 5.0, sensor.MaxRange)
	assert.Equal(t, sonar.LayerMask(1|1<<3), sensor.Mask)
	require.NoError(t, sensor.Validate())

	assert.Equal(t, ModelAcoustic, cfg.Renderer.Model)
	assert.Equal(t, uint64(9), cfg.Renderer.Seed)
	assert.Equal(t, "png", cfg.Output.Format)
	assert.Equal(t, 90, cfg.Output.Quality)
	assert.Equal(t, 1.0, cfg.Output.Scale)
	assert.Equal(t, filepath.Join(cfg.BaseDir, "scenes", "tank.json"), cfg.Scene.Path)
	assert.Equal(t, filepath.Join(cfg.BaseDir, "captures"), cfg.Output.Dir)
	assert.Equal(t, 10, cfg.Trajectory.FramesPerSegment)
	assert.Equal(t, mathutil.Vec3{0, 0, 2}, cfg.Trajectory.Waypoints[1].Position)
	assert.Equal(t, pose.XPositive, cfg.Mapping().PositionX)

	water, err := cfg.AcousticParameters()
	require.NoError(t, err)
	assert.Equal(t, acoustics.SeaWater, water.Water)
	assert.Equal(t, 0.0, water.Temperature, "explicit zero temperature is kept")
	assert.Equal(t, acoustics.DefaultPH, water.PH)

	model, err := cfg.IntensityModel(sensor)
	require.NoError(t, err)
	assert.IsType(t, sonar.AcousticModel{}, model)
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{BaseDir: "/data"})

	sensor, err := cfg.SensorConfig()
	require.NoError(t, err)
	assert.Equal(t, sonar.DefaultConfig(), sensor)
	assert.Equal(t, pose.DefaultMapping(), cfg.Mapping())
	assert.Equal(t, "jpg", cfg.Output.Format)
	assert.Equal(t, filepath.Join("/data", "captures"), cfg.Output.Dir)
	assert.Positive(t, cfg.Renderer.Workers)
	assert.InDelta(t, 2100, cfg.Acoustics.FrequencyKHz, 1e-9)

	model, err := cfg.IntensityModel(sensor)
	require.NoError(t, err)
	assert.IsType(t, sonar.ReferenceModel{}, model)
}

func TestFlagsOverrideFile(t *testing.T) {
	cfg := Config{
		Renderer: Renderer{Workers: 2, Model: ModelAcoustic},
		Output:   Output{Dir: "/file/out", Quality: 50},
	}
	cfg.Resolve(Flags{
		OutputDir: "/flag/out",
		Quality:   75,
		Workers:   6,
		Model:     ModelReference,
		Format:    "webp",
		Seed:      3,
		Verbosity: 2,
	})
	assert.Equal(t, "/flag/out", cfg.Output.Dir)
	assert.Equal(t, 75, cfg.Output.Quality)
	assert.Equal(t, 6, cfg.Renderer.Workers)
	assert.Equal(t, ModelReference, cfg.Renderer.Model)
	assert.Equal(t, "webp", cfg.Output.Format)
	assert.Equal(t, uint64(3), cfg.Renderer.Seed)
	assert.Equal(t, 2, cfg.Renderer.Verbosity)
}

func TestConfigErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "config: read")

	_, err = Load(writeConfig(t, `{"sensor": `))
	assert.ErrorContains(t, err, "config: parse")

	_, err = Load(writeConfig(t, `{"pose_mapping": {"position_x": "up"}}`))
	assert.Error(t, err)

	cfg := Config{Sensor: Sensor{Layers: []int{40}}}
	cfg.Resolve(Flags{BaseDir: "/x"})
	_, err = cfg.SensorConfig()
	assert.Error(t, err)

	cfg = Config{Acoustics: Acoustics{Water: "brackish"}, Renderer: Renderer{Model: ModelAcoustic}}
	cfg.Resolve(Flags{BaseDir: "/x"})
	_, err = cfg.AcousticParameters()
	assert.Error(t, err)
	sensor, err := cfg.SensorConfig()
	require.NoError(t, err)
	_, err = cfg.IntensityModel(sensor)
	assert.Error(t, err)

	cfg.Renderer.Model = "ray-traced"
	_, err = cfg.IntensityModel(sensor)
	assert.ErrorContains(t, err, "unknown intensity model")
}

func TestSensorExplicitValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{"sensor": {"vertical_fov": 0, "min_range": 0, "noise_level": 0}}`))
	require.NoError(t, err)
	cfg.Resolve(Flags{})

	sensor, err := cfg.SensorConfig()
	require.NoError(t, err)
	assert.Equal(t, 0.0, sensor.VerticalFOV)
	assert.Equal(t, 0.0, sensor.MinRange)
	assert.Equal(t, 0.0, sensor.NoiseLevel)
	assert.Equal(t, sonar.DefaultConfig().Beams, sensor.Beams, "absent fields take defaults")

	for _, body := range []string{
		`{"sensor": {"beams": -4}}`,
		`{"sensor": {"range_bins": 0}}`,
		`{"sensor": {"horizontal_fov": 0}}`,
		`{"sensor": {"noise_level": 1.5}}`,
	} {
		cfg, err := Load(writeConfig(t, body))
		require.NoError(t, err)
		cfg.Resolve(Flags{})
		_, err = cfg.SensorConfig()
		assert.ErrorIs(t, err, sonar.ErrInvalidConfig, body)
	}
}

func TestPartialPoseMapping(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{"pose_mapping": {"rotation_x": "+x"}}`))
	require.NoError(t, err)
	cfg.Resolve(Flags{})

	want := pose.DefaultMapping()
	want.RotationX = pose.XPositive
	assert.Equal(t, want, cfg.Mapping())

	cfg, err = Load(writeConfig(t, `{"renderer": {"seed": 1}}`))
	require.NoError(t, err)
	cfg.Resolve(Flags{})
	assert.Equal(t, pose.DefaultMapping(), cfg.Mapping())
}
