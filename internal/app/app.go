// Package app wires the cube and sketch layers onto one software canvas and
// exposes the actions the window frontend binds to keys.
package app

import (
	"image"
	"image/color"
	"log/slog"

	"cubesketch/internal/config"
	"cubesketch/internal/cube"
	"cubesketch/internal/layer"
	"cubesketch/internal/math3d"
	"cubesketch/internal/raster"
	"cubesketch/internal/sketch"
)

const (
	gridStep = 10.0
	fovStep  = 5.0 // degrees
	minFov   = 5.0
	maxFov   = 175.0
)

// App owns the canvas, the compositor and the two layers. Cube is
// registered first so strokes draw on top of it.
type App struct {
	Canvas     *raster.Canvas
	Compositor *layer.Compositor
	Cube       *cube.Layer
	Sketch     *sketch.Layer
	Background color.Color

	presets []cube.Preset
}

// New builds the application from cfg.
func New(cfg *config.Config) *App {
	canvas := raster.NewCanvas(cfg.Window.Width, cfg.Window.Height)

	c := cube.New(
		cube.WithCamera(cfg.CubeCamera()),
		cube.WithLens(cfg.Lens()),
		cube.WithProjection(math3d.ProjectionKind(cfg.Camera.Projection)),
	)
	c.SetDragging(cfg.Camera.Drag)

	s := sketch.New()
	s.SetStyle(cfg.Sketch.Color, cfg.Sketch.Width)
	if pp := cfg.PostProcessor(); pp != nil {
		s.SetPostProcessor(pp)
	}

	comp := layer.NewCompositor(canvas)
	comp.Add(c, s)

	return &App{
		Canvas:     canvas,
		Compositor: comp,
		Cube:       c,
		Sketch:     s,
		Background: color.White,
		presets:    cfg.CubePresets(),
	}
}

// Render draws a frame if anything changed and reports whether it did.
func (a *App) Render() bool {
	if !a.Compositor.Dirty() {
		return false
	}
	a.Compositor.Render()
	return true
}

// Frame renders unconditionally and returns the canvas flattened onto the
// background colour.
func (a *App) Frame() *image.RGBA {
	a.Compositor.Render()
	return a.Canvas.Flatten(a.Background)
}

func (a *App) Undo() {
	a.Sketch.Undo()
	a.Compositor.Invalidate()
}

func (a *App) Redo() {
	a.Sketch.Redo()
	a.Compositor.Invalidate()
}

func (a *App) Clear() {
	a.Sketch.Clear()
	a.Compositor.Invalidate()
}

// ToggleDragging flips right-button drag rotation and returns the new state.
func (a *App) ToggleDragging() bool {
	on := !a.Cube.DraggingEnabled()
	a.Cube.SetDragging(on)
	slog.Info("drag rotation", "enabled", on)
	return on
}

// ToggleDrawing flips whether new strokes may start.
func (a *App) ToggleDrawing() bool {
	on := !a.Sketch.DrawingAllowed()
	a.Sketch.AllowDrawing(on)
	slog.Info("sketching", "enabled", on)
	return on
}

// Presets returns the preset angle grid.
func (a *App) Presets() []cube.Preset { return append([]cube.Preset(nil), a.presets...) }

// ApplyPreset applies preset i; out-of-range indexes are ignored.
func (a *App) ApplyPreset(i int) bool {
	if i < 0 || i >= len(a.presets) {
		return false
	}
	a.Cube.ApplyPreset(a.presets[i])
	a.Compositor.Invalidate()
	slog.Debug("preset applied", "name", a.presets[i].Name)
	return true
}

// PanGrid moves the reference grid by (dx, dy) grid steps.
func (a *App) PanGrid(dx, dy float64) {
	a.Cube.SetGridOffset(a.Cube.GridOffset().Add(math3d.V2(dx, dy).Mul(gridStep)))
	a.Compositor.Invalidate()
}

// NudgeFov changes the field of view by steps * 5 degrees within [5, 175].
func (a *App) NudgeFov(steps int) {
	deg := math3d.RadToDeg(a.Cube.Camera().Fov) + float64(steps)*fovStep
	if deg < minFov || deg > maxFov {
		return
	}
	a.Cube.SetFov(math3d.DegToRad(deg))
	a.Compositor.Invalidate()
}

// CycleProjection switches between the distance and matrix projectors.
func (a *App) CycleProjection() math3d.ProjectionKind {
	next := math3d.ProjectionMatrix
	if a.Cube.Projection() == math3d.ProjectionMatrix {
		next = math3d.ProjectionDistance
	}
	a.Cube.SetProjection(next)
	a.Compositor.Invalidate()
	slog.Info("projection", "kind", next)
	return next
}
