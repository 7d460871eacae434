package cube

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cubesketch/internal/layer"
	"cubesketch/internal/layer/layertest"
	"cubesketch/internal/math3d"
)

func newAttached(t *testing.T, opts ...Option) (*Layer, *layertest.Recorder) {
	t.Helper()
	rec := layertest.New(800, 600)
	l := New(opts...)
	l.Attach(rec)
	require.Len(t, l.Projected(), 8)
	return l, rec
}

func TestDefaultProjectionCorner(t *testing.T) {
	l, _ := newAttached(t)
	// vertex 6 is (1, 1, 1)
	p := l.Projected()[6]
	assert.InDelta(t, 475, p.X, 1e-9)
	assert.InDelta(t, 225, p.Y, 1e-9)
}

func TestSettersRecompute(t *testing.T) {
	setters := map[string]func(*Layer){
		"yaw":   func(l *Layer) { l.SetYaw(0.7) },
		"pitch": func(l *Layer) { l.SetPitch(-0.4) },
		"roll":  func(l *Layer) { l.SetRoll(1.1) },
		"scale": func(l *Layer) { l.SetScale(2) },
		"fov":   func(l *Layer) { l.SetFov(math3d.DegToRad(40)) },
		"preset": func(l *Layer) {
			l.ApplyPreset(Preset{Name: "iso", Yaw: 0.5, Pitch: 0.5})
		},
	}
	for name, set := range setters {
		t.Run(name, func(t *testing.T) {
			l, _ := newAttached(t)
			before := l.Projected()
			set(l)
			assert.NotEqual(t, before, l.Projected())
		})
	}
}

func TestSetProjection(t *testing.T) {
	rec := layertest.New(800, 400)
	l := New()
	l.Attach(rec)
	before := l.Projected()

	l.SetProjection(math3d.ProjectionMatrix)
	assert.Equal(t, math3d.ProjectionMatrix, l.Projection())
	after := l.Projected()
	// the matrix path stretches NDC over the viewport height: 200/300 of the
	// distance projector's offset here
	assert.InDelta(t, 400+(before[6].X-400)*2/3, after[6].X, 1e-6)
}

func TestProjectedMatchesKernel(t *testing.T) {
	l, _ := newAttached(t)
	l.SetYaw(0.3)
	l.SetPitch(-0.2)
	l.SetRoll(0.9)
	l.SetScale(1.5)

	cam := l.Camera()
	p := math3d.NewDistanceProjector(math3d.Lens{FovY: cam.Fov}, math3d.Viewport{Width: 800, Height: 600})
	r := math3d.RotationMatrix(cam.Yaw, cam.Pitch, cam.Roll)
	zoom := math.Pow(1.5, 1.3)
	for i, v := range math3d.CubeVertices {
		want := p.Project(r.MulVec3(v.Mul(ModelScale)), zoom)
		assert.InDelta(t, want.X, l.Projected()[i].X, 1e-9)
		assert.InDelta(t, want.Y, l.Projected()[i].Y, 1e-9)
	}
}

func TestDetachedLayerIsInert(t *testing.T) {
	l := New()
	l.SetYaw(1)
	l.Resize(100, 100)
	assert.Empty(t, l.Projected())

	rec := layertest.New(100, 100)
	l.Draw(rec)
	assert.Empty(t, rec.Ops)

	l.Attach(rec)
	assert.Len(t, l.Projected(), 8)
}

func TestWheelScale(t *testing.T) {
	l, _ := newAttached(t)

	l.Wheel(&layer.WheelEvent{DeltaY: 800}) // would reach 0.0
	assert.Equal(t, 1.0, l.Camera().Scale)

	l.Wheel(&layer.WheelEvent{DeltaY: 720}) // would reach 0.1 exactly
	assert.Equal(t, 1.0, l.Camera().Scale)

	l.Wheel(&layer.WheelEvent{DeltaY: 712}) // 0.11
	assert.InDelta(t, 0.11, l.Camera().Scale, 1e-12)

	l.Wheel(&layer.WheelEvent{DeltaY: -800})
	assert.InDelta(t, 1.11, l.Camera().Scale, 1e-12)
}

func TestWheelRecomputes(t *testing.T) {
	l, _ := newAttached(t)
	before := l.Projected()
	l.Wheel(&layer.WheelEvent{DeltaY: -400})
	assert.NotEqual(t, before, l.Projected())
}

func TestDragIsRelativeToStart(t *testing.T) {
	run := func(steps int) Camera {
		l, _ := newAttached(t)
		l.SetYaw(0.2)
		l.SetPitch(-0.1)
		l.SetDragging(true)

		down := &layer.PointerEvent{ClientX: 100, ClientY: 100, Button: layer.ButtonSecondary}
		l.PointerDown(down)
		assert.True(t, down.DefaultPrevented())
		assert.True(t, l.Dragging())
		for i := 1; i <= steps; i++ {
			f := float64(i) / float64(steps)
			assert.True(t, l.PointerMove(&layer.PointerEvent{ClientX: 100 + 30*f, ClientY: 100 - 50*f}))
		}
		l.PointerUp(&layer.PointerEvent{Button: layer.ButtonSecondary})
		assert.False(t, l.Dragging())
		assert.False(t, l.PointerMove(&layer.PointerEvent{ClientX: 500, ClientY: 500}))
		return l.Camera()
	}

	one := run(1)
	many := run(17)
	assert.InDelta(t, 0.2+30*DragSensitivity, one.Yaw, 1e-12)
	assert.InDelta(t, -0.1-50*DragSensitivity, one.Pitch, 1e-12)
	assert.InDelta(t, one.Yaw, many.Yaw, 1e-12)
	assert.InDelta(t, one.Pitch, many.Pitch, 1e-12)
}

func TestDragRequiresEnableAndSecondary(t *testing.T) {
	l, _ := newAttached(t)
	l.PointerDown(&layer.PointerEvent{Button: layer.ButtonSecondary})
	assert.False(t, l.Dragging())

	l.SetDragging(true)
	l.PointerDown(&layer.PointerEvent{Button: layer.ButtonPrimary})
	assert.False(t, l.Dragging())
}

func TestContextMenuFollowsDragging(t *testing.T) {
	l, _ := newAttached(t)

	e := &layer.ContextMenuEvent{}
	l.ContextMenu(e)
	assert.False(t, e.DefaultPrevented())

	l.SetDragging(true)
	assert.True(t, l.DraggingEnabled())
	e = &layer.ContextMenuEvent{}
	l.ContextMenu(e)
	assert.True(t, e.DefaultPrevented())

	l.SetDragging(false)
	e = &layer.ContextMenuEvent{}
	l.ContextMenu(e)
	assert.False(t, e.DefaultPrevented())
}

func TestDrawOrder(t *testing.T) {
	l, rec := newAttached(t)
	l.Draw(rec)

	styles := rec.Filter("SetStrokeStyle")
	require.Len(t, styles, 3)
	assert.Equal(t, dotStyle, styles[0].Str)
	assert.Equal(t, gridStyle, styles[1].Str)
	assert.Equal(t, cubeStyle, styles[2].Str)

	ellipses := rec.Filter("Ellipse")
	require.Len(t, ellipses, 1)
	assert.Equal(t, []float64{400, 300, dotRadius, dotRadius, 0, 0, 2 * math.Pi}, ellipses[0].Args)

	assert.Len(t, rec.Filter("Stroke"), 3)
	// 4 border segments + 8 grid lines + 12 cube edges
	assert.Len(t, rec.Filter("LineTo"), 4+2*gridCount+12)

	// the cube segments follow the latest yaw
	rec.Reset()
	l.SetYaw(0.5)
	l.Draw(rec)
	lines := rec.Filter("LineTo")
	last := lines[len(lines)-1]
	// the final edge is (3, 7)
	want := l.Projected()[7]
	assert.Equal(t, []float64{want.X, want.Y}, last.Args)
}

func TestGridBoundsAndOffset(t *testing.T) {
	l, _ := newAttached(t)
	tl, br := l.GridBounds()

	d := 300 / math.Tan(math.Pi/4)
	k := d / (d - 100*math.Sqrt(3))
	assert.InDelta(t, 400-100*k, tl.X, 1e-6)
	assert.InDelta(t, 300-100*k, tl.Y, 1e-6)
	assert.InDelta(t, 400+100*k, br.X, 1e-6)
	assert.InDelta(t, 300+100*k, br.Y, 1e-6)

	l.SetGridOffset(math3d.V2(15, -5))
	assert.Equal(t, math3d.V2(15, -5), l.GridOffset())
	tl2, br2 := l.GridBounds()
	assert.InDelta(t, tl.X+15, tl2.X, 1e-9)
	assert.InDelta(t, br.Y-5, br2.Y, 1e-9)
}

func TestUnknownProjectionFallsBack(t *testing.T) {
	l, _ := newAttached(t, WithProjection("fisheye"))
	assert.Equal(t, math3d.ProjectionDistance, l.Projection())
	assert.InDelta(t, 475, l.Projected()[6].X, 1e-9)
}
