package app

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cubesketch/internal/config"
	"cubesketch/internal/layer"
	"cubesketch/internal/math3d"
)

func newApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Default()
	cfg.Window.Width, cfg.Window.Height = 400, 300
	return New(cfg)
}

func TestLayerOrder(t *testing.T) {
	a := newApp(t)
	layers := a.Compositor.Layers()
	require.Len(t, layers, 2)
	assert.Same(t, a.Cube, layers[0])
	assert.Same(t, a.Sketch, layers[1])
}

func TestRenderOnlyWhenDirty(t *testing.T) {
	a := newApp(t)
	assert.True(t, a.Render())
	assert.False(t, a.Render())

	a.Compositor.PointerMove(&layer.PointerEvent{ClientX: 3, ClientY: 3})
	assert.False(t, a.Render(), "hover without a gesture does not redraw")

	a.Undo()
	assert.True(t, a.Render())
}

func TestFrameDrawsCubeAndStrokes(t *testing.T) {
	a := newApp(t)
	img := a.Frame()
	assert.Equal(t, 400, img.Bounds().Dx())

	// between the grid lines and cube edges
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(240, 200))

	// the edge from (1, 1, 1) to (1, -1, 1) is a vertical line
	p := a.Cube.Projected()[6]
	edge := img.RGBAAt(int(math.Floor(p.X)), int(math.Floor(p.Y))+5)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, edge)

	a.Compositor.PointerDown(&layer.PointerEvent{ClientX: 20, ClientY: 20, Button: layer.ButtonPrimary})
	a.Compositor.PointerMove(&layer.PointerEvent{ClientX: 60, ClientY: 20})
	a.Compositor.PointerUp(&layer.PointerEvent{ClientX: 60, ClientY: 20})
	require.Len(t, a.Sketch.Strokes(), 1)

	img = a.Frame()
	assert.Equal(t, color.RGBA{173, 216, 230, 255}, img.RGBAAt(40, 20))
}

func TestUndoRedoClear(t *testing.T) {
	a := newApp(t)
	for i := 0; i < 3; i++ {
		a.Compositor.PointerDown(&layer.PointerEvent{ClientX: float64(i), Button: layer.ButtonPrimary})
		a.Compositor.PointerUp(&layer.PointerEvent{})
	}
	a.Undo()
	a.Undo()
	assert.Len(t, a.Sketch.Strokes(), 1)
	a.Redo()
	assert.Len(t, a.Sketch.Strokes(), 2)
	a.Clear()
	assert.Empty(t, a.Sketch.Strokes())
	assert.Empty(t, a.Sketch.Undone())
}

func TestToggles(t *testing.T) {
	a := newApp(t)
	assert.True(t, a.ToggleDragging())
	e := &layer.ContextMenuEvent{}
	assert.True(t, a.Compositor.ContextMenu(e))
	assert.False(t, a.ToggleDragging())

	assert.False(t, a.ToggleDrawing())
	a.Compositor.PointerDown(&layer.PointerEvent{Button: layer.ButtonPrimary})
	assert.Nil(t, a.Sketch.Current())
	assert.True(t, a.ToggleDrawing())
}

func TestPresets(t *testing.T) {
	a := newApp(t)
	require.Len(t, a.Presets(), 9)
	assert.False(t, a.ApplyPreset(-1))
	assert.False(t, a.ApplyPreset(9))

	require.True(t, a.ApplyPreset(0))
	cam := a.Cube.Camera()
	assert.InDelta(t, math3d.DegToRad(-45), cam.Yaw, 1e-12)
	assert.InDelta(t, math3d.DegToRad(30), cam.Pitch, 1e-12)
}

func TestPanAndFov(t *testing.T) {
	a := newApp(t)
	a.PanGrid(1, -2)
	assert.Equal(t, math3d.V2(10, -20), a.Cube.GridOffset())

	a.NudgeFov(-2)
	assert.InDelta(t, 80, math3d.RadToDeg(a.Cube.Camera().Fov), 1e-9)
	a.NudgeFov(100)
	assert.InDelta(t, 80, math3d.RadToDeg(a.Cube.Camera().Fov), 1e-9)
}

func TestCycleProjection(t *testing.T) {
	a := newApp(t)
	assert.Equal(t, math3d.ProjectionMatrix, a.CycleProjection())
	assert.Equal(t, math3d.ProjectionDistance, a.CycleProjection())
}

func TestStraightenFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Sketch.Straighten = true
	cfg.Sketch.Tolerance = 1
	a := New(cfg)
	a.Compositor.PointerDown(&layer.PointerEvent{ClientX: 10, ClientY: 10, Button: layer.ButtonPrimary})
	a.Compositor.PointerMove(&layer.PointerEvent{ClientX: 20, ClientY: 10.5})
	a.Compositor.PointerMove(&layer.PointerEvent{ClientX: 30, ClientY: 10})
	a.Compositor.PointerUp(&layer.PointerEvent{})
	require.Len(t, a.Sketch.Strokes(), 1)
	assert.Len(t, a.Sketch.Strokes()[0].Points, 2)
}
