package main

import (
	"fmt"
	"image/png"
	"log/slog"
	"os"

	"cubesketch/internal/app"
	"cubesketch/internal/layer"
)

// renderHeadless writes one composited frame to out as PNG. With demo set,
// a diagonal stroke is drawn across the canvas first.
func renderHeadless(a *app.App, out string, demo bool) error {
	if demo {
		w, h := float64(a.Canvas.Width()), float64(a.Canvas.Height())
		a.Compositor.PointerDown(&layer.PointerEvent{ClientX: w * 0.2, ClientY: h * 0.8, Button: layer.ButtonPrimary})
		for i := 1; i <= 10; i++ {
			f := 0.2 + 0.06*float64(i)
			a.Compositor.PointerMove(&layer.PointerEvent{ClientX: w * f, ClientY: h * (1 - f)})
		}
		a.Compositor.PointerUp(&layer.PointerEvent{Button: layer.ButtonPrimary})
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := png.Encode(f, a.Frame()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	slog.Info("frame written", "path", out, "strokes", len(a.Sketch.Strokes()))
	return nil
}
