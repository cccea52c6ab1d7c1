package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gonum.org/v1/gonum/floats"

	"sonar-renderer/internal/acoustics"
	"sonar-renderer/internal/config"
	"sonar-renderer/internal/scene"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file (acoustics section)")
	minDist := flag.Float64("min", 0.1, "First range in metres")
	maxDist := flag.Float64("max", 5, "Last range in metres")
	steps := flag.Int("steps", 10, "Number of rows")
	temp := flag.Float64("temp", acoustics.DefaultTemperature, "Water temperature °C for the wavelength")
	power := flag.Float64("power", 100, "Electrical input power W")
	eta := flag.Float64("eta", 0.5, "Transducer efficiency")
	diameter := flag.Float64("diameter", 0.02, "Circular transducer face diameter m")
	noise := flag.Float64("nl", 50, "Noise level dB")
	target := flag.Float64("ts", -20, "Target strength dB (overrides -material)")
	scenePath := flag.String("scene", "", "Scene JSON whose materials -material is looked up in (overrides config)")
	material := flag.String("material", "", "Take the target strength from this scene material")
	flag.Parse()

	tsSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "ts" {
			tsSet = true
		}
	})

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{ScenePath: *scenePath})

	if *material != "" && !tsSet {
		var materials scene.MaterialResolver = scene.DefaultMaterials()
		if cfg.Scene.Path != "" {
			sc, err := scene.Load(cfg.Scene.Path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			materials = sc.Materials
		}
		ts, err := scene.TargetStrength(materials, *material)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		*target = ts
	}

	water, err := cfg.AcousticParameters()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *steps < 2 || !(*maxDist > *minDist) || *minDist <= 0 {
		fmt.Fprintln(os.Stderr, "Error: need 0 < min < max and steps >= 2")
		os.Exit(1)
	}

	wavelength, err := acoustics.WavelengthAt(*temp)
	if errors.Is(err, acoustics.ErrTemperatureNotTabulated) {
		speed := acoustics.SoundSpeedAt(*temp)
		fmt.Printf("Note: %g °C not tabulated, interpolated sound speed %.1f m/s\n", *temp, speed)
		wavelength = speed / acoustics.CarrierFrequency
	}

	di := acoustics.Transducer{Face: acoustics.CircularFace, Diameter: *diameter}.DirectivityIndex(wavelength)
	sl := acoustics.SourceLevel(*eta, *power, di)
	abs := water.Absorption()

	fmt.Printf("Water: %s, %.0f kHz, depth %.1f m, %.1f °C, pH %.1f\n",
		water.Water, water.FrequencyKHz, water.Depth, water.Temperature, water.PH)
	fmt.Printf("Absorption: %.3f dB/km (boric %.3f, MgSO4 %.3f, viscosity %.3f)\n",
		abs.Total(), abs.BoricAcid, abs.MagnesiumSulphate, abs.Viscosity)
	fmt.Printf("Wavelength: %.3f mm, pulse (10 cycles): %.2f mm\n",
		wavelength*1000, acoustics.PulseLength(10, acoustics.CarrierFrequency, wavelength*acoustics.CarrierFrequency)*1000)
	fmt.Printf("Source level: %.1f dB, DI: %.1f dB, TS: %.1f dB\n", sl, di, *target)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("%10s %10s %10s %10s %10s\n", "range m", "TL dB", "2-way dB", "SNR dB", "gain")

	ref := water.TransmissionLoss(*minDist)
	for _, d := range floats.Span(make([]float64, *steps), *minDist, *maxDist) {
		tl := water.TransmissionLoss(d)
		snr := acoustics.SonarEquationSNR(sl, *noise, di, tl, *target)
		gain := acoustics.DecibelToVoltage(-2 * (tl - ref))
		fmt.Printf("%10.3f %10.2f %10.2f %10.2f %10.4f\n",
			d, tl, acoustics.TwoWayTransmissionLoss(d, abs.Total()), snr, gain)
	}
}
