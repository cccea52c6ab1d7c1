package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"sonar-renderer/internal/config"
	"sonar-renderer/internal/mathutil"
	"sonar-renderer/internal/pose"
	"sonar-renderer/internal/scene"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	scenePath := flag.String("scene", "", "Path to scene JSON (overrides config)")
	pos := flag.String("pos", "0,0,0", "Sensor position x,y,z")
	rot := flag.String("rot", "0,0,0", "Sensor rotation x,y,z in degrees")
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{ScenePath: *scenePath})
	if cfg.Scene.Path == "" && flag.NArg() > 0 {
		cfg.Scene.Path = flag.Arg(0)
	}

	sc, err := scene.Load(cfg.Scene.Path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	sensor, err := cfg.SensorConfig()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	var p pose.Pose
	if p.Position, err = parseVec(*pos); err != nil {
		fmt.Printf("Error: -pos: %v\n", err)
		os.Exit(1)
	}
	if p.Rotation, err = parseVec(*rot); err != nil {
		fmt.Printf("Error: -rot: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Objects: %d\n", len(sc.Objects))
	for i, o := range sc.Objects {
		mat, _ := sc.Materials.Resolve(o.Material)
		fmt.Printf("  Object[%d]: %q shape=%T layer=%d material=%q absorption=%.2f\n",
			i, o.Name, o.Shape, o.Layer, o.Material, mat.Absorption)
	}

	xf := p.Transform()
	lattice := sensor.Lattice()
	fmt.Printf("Pose: %s\n", cfg.Mapping().Record(p))
	fmt.Println("    --- Frustum corners (LL, UL, UR, LR) ---")
	for i, r := range lattice.FrustumCorners(xf) {
		end := r.Origin.Add(r.Segment())
		fmt.Printf("    corner[%d] from (%.2f, %.2f, %.2f) to (%.2f, %.2f, %.2f)\n",
			i, r.Origin[0], r.Origin[1], r.Origin[2], end[0], end[1], end[2])
	}

	beam := lattice.Beams / 2
	fmt.Printf("    --- Centre beam %d ---\n", beam)
	for s := 0; s < lattice.Samples; s++ {
		r := lattice.GenerateRay(beam, s, xf)
		hit, ok := sc.Query(r.Origin, r.Direction, r.MaxDistance, sensor.Mask)
		if !ok {
			continue
		}
		bin := int(hit.Distance / lattice.RangePerBin)
		local := p.ToLocal(r.At(hit.Distance))
		n := p.DirToLocal(hit.Normal)
		fmt.Printf("    sample[%3d] el=%6.2f dist=%.3f bin=%d local=(%.2f, %.2f, %.2f) normal=(%.2f, %.2f, %.2f) absorption=%.2f\n",
			s, lattice.Offset(beam, s)[2], hit.Distance, min(bin, sensor.RangeBins-1),
			local[0], local[1], local[2], n[0], n[1], n[2], hit.Absorption)
	}
}

func parseVec(s string) (mathutil.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return mathutil.Vec3{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var v mathutil.Vec3
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return mathutil.Vec3{}, err
		}
		v[i] = f
	}
	return v, nil
}
