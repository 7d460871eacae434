package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"cubesketch/internal/app"
	"cubesketch/internal/config"
)

func init() {
	// glfw must run on the main OS thread
	runtime.LockOSThread()
}

func main() {
	var (
		configPath string
		headless   bool
		out        string
		demo       bool
		projection string
		drag       bool
		straighten bool
		vv, v, q   bool
	)
	flag.StringVar(&configPath, "config", "cubesketch.toml", "Path to the TOML config file.")
	flag.BoolVar(&headless, "headless", false, "Render one frame to -out instead of opening a window.")
	flag.StringVar(&out, "out", "frame.png", "PNG output path in headless mode.")
	flag.BoolVar(&demo, "demo", false, "Draw a sample stroke in headless mode.")
	flag.StringVar(&projection, "projection", "", "Projection strategy: distance or matrix.")
	flag.BoolVar(&drag, "drag", false, "Start with right-button drag rotation enabled.")
	flag.BoolVar(&straighten, "straighten", false, "Snap nearly straight strokes to lines.")
	flag.BoolVar(&vv, "vv", false, "Debug logging.")
	flag.BoolVar(&v, "v", false, "Info logging.")
	flag.BoolVar(&q, "q", false, "Only log errors.")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.LevelFromFlags(vv, v, q),
	})))

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "projection":
			cfg.Camera.Projection = projection
		case "drag":
			cfg.Camera.Drag = drag
		case "straighten":
			cfg.Sketch.Straighten = straighten
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	a := app.New(cfg)
	if headless {
		err = renderHeadless(a, out, demo)
	} else {
		err = runWindow(cfg, a)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
