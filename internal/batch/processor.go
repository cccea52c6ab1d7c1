package batch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"sonar-renderer/internal/capture"
	"sonar-renderer/internal/monitoring"
	"sonar-renderer/internal/output"
	"sonar-renderer/internal/pose"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Sensor   *capture.Sensor
	Writer   output.Writer
	Manifest *output.Manifest // optional
	Poses    []pose.Pose
	Workers  int // output writers
}

// Result holds the outcome of one frame.
type Result struct {
	Frame   int
	Image   string
	Success bool
	Error   string
}

type job struct {
	idx int
	c   *capture.Capture
}

// Run captures one auto frame per pose, in order, on the shared sensor and
// hands encoding to a pool of writers. A capture error stops the run; the
// results of frames already captured are still returned.
func Run(ctx context.Context, cfg Config) ([]Result, error) {
	total := len(cfg.Poses)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					monitoring.Verbosef(monitoring.Info, "  [%d/%d] %.1f frames/sec", p, total, rate)
				}
			}
		}
	}()

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan job, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.idx] = writeFrame(cfg, j.c)
				processed.Add(1)
			}
		}()
	}

	var runErr error
	captured := 0
	for i, p := range cfg.Poses {
		cfg.Sensor.SetPose(p)
		c, err := cfg.Sensor.TakeImage(ctx, true)
		if err != nil {
			runErr = fmt.Errorf("batch: pose %d: %w", i, err)
			break
		}
		jobs <- job{idx: i, c: c}
		captured++
	}
	close(jobs)

	wg.Wait()
	close(done)

	return results[:captured], runErr
}

func writeFrame(cfg Config, c *capture.Capture) Result {
	written, err := cfg.Writer.Write(c)
	if err != nil {
		return Result{Frame: c.Frame, Error: err.Error()}
	}
	if cfg.Manifest != nil {
		cfg.Manifest.Add(cfg.Writer.Dir, c, written)
	}
	return Result{Frame: c.Frame, Image: written.Image, Success: true}
}
