package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"sonar-renderer/internal/batch"
	"sonar-renderer/internal/capture"
	"sonar-renderer/internal/config"
	"sonar-renderer/internal/monitoring"
	"sonar-renderer/internal/output"
	"sonar-renderer/internal/pose"
	"sonar-renderer/internal/scene"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	scenePath := flag.String("scene", "", "Path to scene JSON (overrides config)")
	outputDir := flag.String("output", "", "Output directory (default: captures)")
	format := flag.String("format", "", "Image format: jpg, png, webp, tga, bmp (default: jpg)")
	model := flag.String("model", "", "Intensity model: reference or acoustic")
	quality := flag.Int("quality", 0, "JPEG quality 1-100 (default: 90)")
	workers := flag.Int("workers", 0, "Number of beam workers (default: NumCPU)")
	seed := flag.Uint64("seed", 0, "Noise seed (default: time based)")
	verbosity := flag.Int("v", 0, "Verbosity 0-2")
	testN := flag.Int("test", 0, "Capture only the first N frames of the trajectory")
	manual := flag.Bool("manual", false, "Take one timestamped capture at the first waypoint")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		ScenePath: *scenePath,
		OutputDir: *outputDir,
		Format:    *format,
		Model:     *model,
		Quality:   *quality,
		Workers:   *workers,
		Seed:      *seed,
		Verbosity: *verbosity,
	})
	monitoring.SetVerbosity(cfg.Renderer.Verbosity)

	if cfg.Scene.Path == "" {
		fmt.Fprintln(os.Stderr, "Error: no scene. Use -scene flag or config.json.")
		os.Exit(1)
	}
	sc, err := scene.Load(cfg.Scene.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
		os.Exit(1)
	}

	sensorCfg, err := cfg.SensorConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	intensity, err := cfg.IntensityModel(sensorCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := []capture.Option{
		capture.WithModel(intensity),
		capture.WithWorkers(cfg.Renderer.Workers),
		capture.WithMapping(cfg.Mapping()),
	}
	if cfg.Renderer.Seed != 0 {
		opts = append(opts, capture.WithSeed(cfg.Renderer.Seed))
	}
	sensor, err := capture.New(sensorCfg, sc, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	writer := output.Writer{
		Dir:       cfg.Output.Dir,
		Format:    cfg.Output.Format,
		Quality:   cfg.Output.Quality,
		Scale:     cfg.Output.Scale,
		SavePoses: cfg.Output.SavePoses,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *manual {
		os.Exit(takeManual(ctx, sensor, writer, cfg.Trajectory.Waypoints))
	}

	poses := batch.Trajectory(cfg.Trajectory.Waypoints, cfg.Trajectory.FramesPerSegment)
	if len(poses) == 0 {
		poses = []pose.Pose{{}}
	}
	if *testN > 0 && *testN < len(poses) {
		poses = poses[:*testN]
	}

	fmt.Println("Imaging sonar simulator")
	fmt.Printf("Scene: %s (%d objects)\n", cfg.Scene.Path, len(sc.Objects))
	fmt.Printf("Sensor: %d beams x %d bins, %.0f°x%.0f°, %.2f-%.2f m, model=%s\n",
		sensorCfg.Beams, sensorCfg.RangeBins, sensorCfg.HorizontalFOV, sensorCfg.VerticalFOV,
		sensorCfg.MinRange, sensorCfg.MaxRange, cfg.Renderer.Model)
	fmt.Printf("Frames: %d, Workers: %d\n", len(poses), cfg.Renderer.Workers)
	fmt.Printf("Output: %s (%s)\n", cfg.Output.Dir, cfg.Output.Format)
	fmt.Println("------------------------------------------------------------")

	var manifest *output.Manifest
	if cfg.Output.Manifest {
		manifest = output.NewManifest(sensorCfg)
	}

	start := time.Now()

	results, runErr := batch.Run(ctx, batch.Config{
		Sensor:   sensor,
		Writer:   writer,
		Manifest: manifest,
		Poses:    poses,
		Workers:  cfg.Renderer.Workers,
	})

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Captured: %d/%d\n", success, len(poses))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(20, len(errors))
		for _, e := range errors[:limit] {
			fmt.Printf("  frame %d: %s\n", e.Frame, e.Error)
		}
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
	}

	// Write manifest
	if manifest != nil {
		manifestPath := filepath.Join(cfg.Output.Dir, "manifest.json")
		os.MkdirAll(cfg.Output.Dir, 0755)
		if err := output.WriteManifest(manifestPath, manifest); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
		} else {
			fmt.Printf("Manifest: %s (run %s)\n", manifestPath, manifest.RunID)
		}
	}

	if failed > 0 || runErr != nil {
		os.Exit(1)
	}
}

func takeManual(ctx context.Context, sensor *capture.Sensor, writer output.Writer, waypoints []pose.Pose) int {
	if len(waypoints) > 0 {
		sensor.SetPose(waypoints[0])
	}
	c, err := sensor.TakeImage(ctx, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	written, err := writer.Write(c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("Saved %s (%d lit cells)\n", written.Image, c.Image.Lit())
	if written.Pose != "" {
		fmt.Printf("Pose: %s -> %s\n", c.Record, written.Pose)
	}
	return 0
}
