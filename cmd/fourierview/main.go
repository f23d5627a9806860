package main

import (
	"errors"
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"fourierlab/pkg/config"
	"fourierlab/pkg/reconstruction"
)

var (
	inputFlag   = flag.String("input", "", "Image to open (PNG, JPEG, GIF or WebP)")
	configFlag  = flag.String("config", "fourierlab.yaml", "Path to the YAML configuration file")
	scaleFlag   = flag.Int("scale", 0, "Window scale factor (overrides viewer.scale)")
	verboseFlag = flag.Bool("verbose", false, "Enable debug logging")
)

func main() {
	flag.Parse()
	if *inputFlag == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configFlag)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if *scaleFlag > 0 {
		cfg.Viewer.Scale = *scaleFlag
	}
	level, err := logrus.ParseLevel(cfg.Output.LogLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level %q: %v", cfg.Output.LogLevel, err)
	}
	if *verboseFlag {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)

	engine, err := reconstruction.EngineFromConfig(cfg)
	if err != nil {
		logrus.Fatalf("Failed to create transform engine: %v", err)
	}
	opts, err := reconstruction.OptionsFromConfig(cfg)
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	session, err := reconstruction.NewSession(engine, opts)
	if err != nil {
		logrus.Fatalf("Failed to create session: %v", err)
	}
	if err := session.LoadFile(*inputFlag); err != nil {
		logrus.Fatalf("Failed to load %s: %v", *inputFlag, err)
	}

	g := newGame(session)
	w, h := g.Layout(0, 0)
	ebiten.SetWindowSize(w*cfg.Viewer.Scale, h*cfg.Viewer.Scale)
	ebiten.SetWindowTitle("Fourier Spectrum Editor")
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logrus.Fatal(err)
	}
}
