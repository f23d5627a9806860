package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"fourierlab/pkg/config"
	"fourierlab/pkg/fourier"
	"fourierlab/pkg/reconstruction"
)

func main() {
	// Parse command line arguments
	inputFile := flag.String("input", "", "Image to transform (PNG, JPEG, GIF or WebP)")
	configPath := flag.String("config", "fourierlab.yaml", "Path to the YAML configuration file")
	initConfig := flag.Bool("init-config", false, "Write a default configuration file to -config and exit")
	outputDir := flag.String("output", "", "Directory for the written images (overrides output.dir)")
	presets := flag.String("presets", "", "Comma-separated presets applied in order: "+
		"reset, lowpass, highpass, bandpass, vstripes, hstripes")
	backend := flag.String("backend", "", "FFT backend: "+strings.Join(fourier.Backends(), ", ")+" (overrides transform.backend)")
	workers := flag.Int("workers", 0, "Goroutines per transform pass (overrides transform.workers)")
	saveBasis := flag.Bool("basis", false, "Also write the basis function of the strongest cell")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	if *initConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			logrus.Fatalf("Failed to write config: %v", err)
		}
		fmt.Printf("Default configuration written to %s\n", *configPath)
		return
	}

	// Validate inputs
	if *inputFile == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}
	if *backend != "" {
		cfg.Transform.Backend = *backend
	}
	if *workers > 0 {
		cfg.Transform.Workers = *workers
	}
	if *saveBasis {
		cfg.Output.SaveBasis = true
	}

	level, err := logrus.ParseLevel(cfg.Output.LogLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level %q: %v", cfg.Output.LogLevel, err)
	}
	if *verbose {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)

	opts, err := reconstruction.OptionsFromConfig(cfg)
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	fmt.Println("================================")
	fmt.Println("FOURIER SPECTRUM EDITOR - BATCH MODE")
	fmt.Println("================================")

	params := &reconstruction.Params{
		InputFile: *inputFile,
		OutputDir: cfg.Output.Dir,
		Format:    cfg.Output.Format,
		GridSize:  cfg.Grid.Size,
		Backend:   cfg.Transform.Backend,
		NumCores:  cfg.Transform.Workers,
		Presets:   splitList(*presets),
		SaveBasis: cfg.Output.SaveBasis,
		Session:   opts,
	}

	reconstructor := reconstruction.NewReconstructor(params)

	startTime := time.Now()
	if err := reconstructor.Process(); err != nil {
		logrus.Fatalf("Reconstruction failed: %v", err)
	}
	processingTime := time.Since(startTime)

	metrics := reconstructor.GetMetrics()
	fmt.Printf("\nReconstruction completed in %.3f seconds\n", processingTime.Seconds())
	fmt.Printf("Stats: %s\n\n", reconstructor.GetFrame().Stats)

	fmt.Printf("Validation Metrics:\n")
	fmt.Printf("===================\n")
	fmt.Printf("Root Mean Square Error (RMSE): %.6f\n", metrics.RMSE)
	fmt.Printf("Peak Signal-to-Noise Ratio (PSNR): %.2f dB\n", metrics.PSNR)
	fmt.Printf("Pearson Correlation: %.4f\n", metrics.Correlation)
	fmt.Printf("Structural Similarity Index (SSIM): %.4f\n", metrics.SSIM)

	fmt.Println("\nOutput images:")
	for _, path := range reconstructor.Outputs() {
		fmt.Printf("- %s\n", path)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
