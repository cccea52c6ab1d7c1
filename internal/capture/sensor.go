// Package capture drives a sonar capture: it walks the beam × sample grid
// for the current pose, queries the scene, and accumulates echoes into an
// image together with the matching pose record.
package capture

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"sonar-renderer/internal/mathutil"
	"sonar-renderer/internal/monitoring"
	"sonar-renderer/internal/pose"
	"sonar-renderer/internal/sonar"
)

// Capture is one finished sonar frame.
type Capture struct {
	Image     *sonar.Image
	Pose      pose.Pose
	Record    pose.Record
	Frame     int
	Auto      bool
	Timestamp time.Time
}

// Sensor is a simulated imaging sonar. Captures on one Sensor are
// serialized; SetPose may be called at any time and takes effect on the
// next capture.
type Sensor struct {
	cfg     sonar.Config
	lattice sonar.Lattice
	scene   sonar.SceneQuery

	model   sonar.IntensityModel
	workers int
	seed    uint64
	sources func(beam int) sonar.RandomSource
	mapping pose.Mapping
	now     func() time.Time

	captureMu sync.Mutex
	runs      uint64

	mu    sync.Mutex
	pose  pose.Pose
	frame int
}

// New validates cfg and returns a sensor at the origin.
func New(cfg sonar.Config, scene sonar.SceneQuery, opts ...Option) (*Sensor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if scene == nil {
		return nil, errors.New("capture: nil scene")
	}
	s := &Sensor{
		cfg:     cfg,
		lattice: cfg.Lattice(),
		scene:   scene,
		model:   sonar.NewReferenceModel(cfg),
		seed:    uint64(time.Now().UnixNano()),
		mapping: pose.DefaultMapping(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.model == nil {
		return nil, errors.New("capture: nil intensity model")
	}
	if s.workers < 1 {
		s.workers = runtime.NumCPU()
	}
	if s.workers > cfg.Beams {
		s.workers = cfg.Beams
	}
	return s, nil
}

// Config returns the sensor configuration.
func (s *Sensor) Config() sonar.Config {
	return s.cfg
}

// Lattice returns the sampling grid constants.
func (s *Sensor) Lattice() sonar.Lattice {
	return s.lattice
}

// SetPose moves the sensor.
func (s *Sensor) SetPose(p pose.Pose) {
	s.mu.Lock()
	s.pose = p
	s.mu.Unlock()
}

// Pose returns the current pose.
func (s *Sensor) Pose() pose.Pose {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pose
}

// Frame returns the value the next capture will carry.
func (s *Sensor) Frame() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// TakeImage renders one frame at the current pose. The frame counter is
// advanced only by successful auto captures. Cancellation is checked between
// beams; a cancelled capture returns ctx.Err() and no image.
func (s *Sensor) TakeImage(ctx context.Context, auto bool) (*Capture, error) {
	s.captureMu.Lock()
	defer s.captureMu.Unlock()

	s.mu.Lock()
	p := s.pose
	frame := s.frame
	s.mu.Unlock()

	run := s.runs
	s.runs++

	record := s.mapping.Record(p)
	monitoring.Verbosef(monitoring.Info, "Taking image...")
	monitoring.Verbosef(monitoring.Verbose, "sonar pose: %s", record.Format(' '))

	acc := sonar.NewAccumulator(s.cfg)
	xf := p.Transform()

	beams := make(chan int, s.workers*2)
	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for beam := range beams {
				if ctx.Err() != nil {
					continue
				}
				s.traceBeam(beam, xf, p.Position, s.source(run, beam), acc)
			}
		}()
	}

feed:
	for beam := 0; beam < s.cfg.Beams; beam++ {
		select {
		case <-ctx.Done():
			break feed
		case beams <- beam:
		}
	}
	close(beams)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("capture: frame %d: %w", frame, err)
	}

	if auto {
		s.mu.Lock()
		s.frame++
		s.mu.Unlock()
	}
	monitoring.Verbosef(monitoring.Info, "Image taken!")

	return &Capture{
		Image:     acc.Image(),
		Pose:      p,
		Record:    record,
		Frame:     frame,
		Auto:      auto,
		Timestamp: s.now(),
	}, nil
}

// traceBeam fires every vertical sample of one beam in ascending order, so
// later samples overwrite earlier ones landing in the same cell.
func (s *Sensor) traceBeam(beam int, xf mathutil.Mat4, sensorPos mathutil.Vec3, rng sonar.RandomSource, acc *sonar.Accumulator) {
	for sample := 0; sample < s.lattice.Samples; sample++ {
		ray := s.lattice.GenerateRay(beam, sample, xf)
		hit, ok := s.scene.Query(ray.Origin, ray.Direction, ray.MaxDistance, s.cfg.Mask)
		if !ok {
			continue
		}
		v := s.model.Intensity(sonar.EchoInput{Hit: hit, Ray: ray, SensorPosition: sensorPos}, rng)
		acc.Add(beam, hit.Distance, v)
	}
}

// source picks the random stream for a beam. Streams depend only on the
// seed, capture number and beam, never on which worker runs the beam.
func (s *Sensor) source(run uint64, beam int) sonar.RandomSource {
	if s.sources != nil {
		return s.sources(beam)
	}
	return sonar.NewRandomSource(s.seed+run, uint64(beam))
}
