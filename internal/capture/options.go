package capture

import (
	"time"

	"sonar-renderer/internal/pose"
	"sonar-renderer/internal/sonar"
)

// Option configures a Sensor.
type Option func(*Sensor)

// WithModel replaces the default reference intensity model.
func WithModel(m sonar.IntensityModel) Option {
	return func(s *Sensor) { s.model = m }
}

// WithWorkers sets the number of beam workers. Values below 1 select
// runtime.NumCPU.
func WithWorkers(n int) Option {
	return func(s *Sensor) { s.workers = n }
}

// WithSeed fixes the seed of the per-beam random streams.
func WithSeed(seed uint64) Option {
	return func(s *Sensor) { s.seed = seed }
}

// WithRandomSources overrides the per-beam random source factory. The
// factory is called once per beam per capture, possibly from several
// workers at once; each returned source is used by a single goroutine.
func WithRandomSources(f func(beam int) sonar.RandomSource) Option {
	return func(s *Sensor) { s.sources = f }
}

// WithMapping sets the axis mapping used for pose records.
func WithMapping(m pose.Mapping) Option {
	return func(s *Sensor) { s.mapping = m }
}

// WithClock replaces time.Now for capture timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Sensor) { s.now = now }
}
