// Package cube implements the camera-controlled wireframe cube layer.
package cube

import (
	"log/slog"
	"math"

	"cubesketch/internal/layer"
	"cubesketch/internal/math3d"
)

const (
	// ModelScale is applied to the unit cube before projection.
	ModelScale = 100.0
	// DragSensitivity is radians of yaw/pitch per pixel of drag.
	DragSensitivity = 0.01
	// WheelDivisor converts wheel delta to scale delta.
	WheelDivisor = 800.0
	// MinScale is the exclusive lower bound for wheel-driven scale.
	MinScale = 0.1
	// zoomExponent shapes scale into the projector zoom.
	zoomExponent = 1.3

	gridCount = 4
	dotRadius = 10

	dotStyle  = "rgba(33, 33, 200, 0.8)"
	gridStyle = "rgba(33, 200, 33, 0.5)"
	cubeStyle = "black"
)

// Camera is a snapshot of the layer's orientation state. Angles are radians.
type Camera struct {
	Yaw, Pitch, Roll float64
	Scale            float64
	Fov              float64
	GridOffset       math3d.Vec2
}

// DefaultCamera faces the cube head on with a 90 degree field of view.
func DefaultCamera() Camera {
	return Camera{Scale: 1, Fov: math.Pi / 2}
}

// Preset is a named yaw/pitch/roll triple from the preset angle grid.
type Preset struct {
	Name             string
	Yaw, Pitch, Roll float64
}

// Layer draws a reference dot, a reference grid and the rotated cube.
// Every setter recomputes the projected vertices before returning.
type Layer struct {
	layer.Base

	cam        Camera
	lens       math3d.Lens
	kind       math3d.ProjectionKind
	projector  math3d.Projector
	projected  []math3d.Vec2
	dragEnable bool
	noMenu     bool
	dragging   bool
	dragStart  math3d.Vec2
	dragFrom   math3d.Vec2 // yaw, pitch at drag start
}

var _ layer.Layer = (*Layer)(nil)

// Option configures a Layer.
type Option func(*Layer)

// WithCamera sets the initial camera.
func WithCamera(c Camera) Option { return func(l *Layer) { l.cam = c } }

// WithProjection selects the projection strategy.
func WithProjection(kind math3d.ProjectionKind) Option {
	return func(l *Layer) { l.kind = kind }
}

// WithLens sets the distance constant and clip planes; FovY is taken from
// the camera.
func WithLens(lens math3d.Lens) Option { return func(l *Layer) { l.lens = lens } }

// New returns a cube layer with DefaultCamera and the distance projector.
func New(opts ...Option) *Layer {
	l := &Layer{cam: DefaultCamera(), kind: math3d.ProjectionDistance}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Camera returns the current camera state.
func (l *Layer) Camera() Camera { return l.cam }

// Projection returns the active projection strategy.
func (l *Layer) Projection() math3d.ProjectionKind { return l.kind }

// Projected returns a copy of the projected cube vertices, in
// math3d.CubeVertices order. It is empty until a surface is attached.
func (l *Layer) Projected() []math3d.Vec2 {
	return append([]math3d.Vec2(nil), l.projected...)
}

// Dragging reports whether a drag gesture is in progress.
func (l *Layer) Dragging() bool { return l.dragging }

func (l *Layer) zoom() float64 { return math.Pow(l.cam.Scale, zoomExponent) }

func (l *Layer) project(v math3d.Vec3) math3d.Vec2 {
	return l.projector.Project(v, l.zoom())
}

// update rebuilds the projector and the projected vertices.
func (l *Layer) update() {
	if !l.Attached() {
		return
	}
	lens := l.lens
	lens.FovY = l.cam.Fov
	p, err := math3d.NewProjector(l.kind, lens, l.Viewport())
	if err != nil {
		slog.Warn("falling back to distance projection", "err", err)
		l.kind = math3d.ProjectionDistance
		p = math3d.NewDistanceProjector(lens, l.Viewport())
	}
	l.projector = p

	r := math3d.RotationMatrix(l.cam.Yaw, l.cam.Pitch, l.cam.Roll)
	if cap(l.projected) < len(math3d.CubeVertices) {
		l.projected = make([]math3d.Vec2, len(math3d.CubeVertices))
	}
	l.projected = l.projected[:len(math3d.CubeVertices)]
	for i, v := range math3d.CubeVertices {
		l.projected[i] = l.project(r.MulVec3(v.Mul(ModelScale)))
	}
}

// Attach binds the layer and computes the initial projection.
func (l *Layer) Attach(s layer.Surface) {
	l.Base.Attach(s)
	l.update()
}

// Resize recomputes the projection for the new surface size.
func (l *Layer) Resize(width, height int) { l.update() }

func (l *Layer) SetYaw(yaw float64) {
	l.cam.Yaw = yaw
	l.update()
}

func (l *Layer) SetPitch(pitch float64) {
	l.cam.Pitch = pitch
	l.update()
}

func (l *Layer) SetRoll(roll float64) {
	l.cam.Roll = roll
	l.update()
}

func (l *Layer) SetScale(scale float64) {
	l.cam.Scale = scale
	l.update()
}

// SetFov sets the vertical field of view in radians.
func (l *Layer) SetFov(fov float64) {
	l.cam.Fov = fov
	l.update()
}

// SetProjection switches the projection strategy.
func (l *Layer) SetProjection(kind math3d.ProjectionKind) {
	l.kind = kind
	l.update()
}

// ApplyPreset sets yaw, pitch and roll in one step.
func (l *Layer) ApplyPreset(p Preset) {
	l.cam.Yaw, l.cam.Pitch, l.cam.Roll = p.Yaw, p.Pitch, p.Roll
	l.update()
}

// SetGridOffset pans the reference grid in screen pixels.
func (l *Layer) SetGridOffset(v math3d.Vec2) { l.cam.GridOffset = v }

// GridOffset returns the current grid pan.
func (l *Layer) GridOffset() math3d.Vec2 { return l.cam.GridOffset }

// SetDragging enables right-button drag rotation. The host context menu is
// suppressed exactly while dragging is enabled.
func (l *Layer) SetDragging(enable bool) {
	l.dragEnable = enable
	l.noMenu = enable
	if !enable {
		l.dragging = false
	}
}

// DraggingEnabled reports whether drag rotation is on.
func (l *Layer) DraggingEnabled() bool { return l.dragEnable }

func (l *Layer) PointerDown(e *layer.PointerEvent) {
	if !l.dragEnable || e.Button != layer.ButtonSecondary {
		return
	}
	e.PreventDefault()
	l.dragging = true
	l.dragStart = math3d.V2(e.ClientX, e.ClientY)
	l.dragFrom = math3d.V2(l.cam.Yaw, l.cam.Pitch)
}

// PointerMove sets yaw/pitch from the total displacement since the drag
// started, so the result does not depend on how many moves were reported.
func (l *Layer) PointerMove(e *layer.PointerEvent) bool {
	if !l.dragging {
		return false
	}
	e.PreventDefault()
	d := math3d.V2(e.ClientX, e.ClientY).Sub(l.dragStart)
	l.cam.Yaw = l.dragFrom.X + d.X*DragSensitivity
	l.cam.Pitch = l.dragFrom.Y + d.Y*DragSensitivity
	l.update()
	return true
}

func (l *Layer) PointerUp(*layer.PointerEvent) {
	l.dragging = false
}

// Wheel zooms by -DeltaY/WheelDivisor. A delta that would take the scale to
// MinScale or below is dropped whole.
func (l *Layer) Wheel(e *layer.WheelEvent) {
	scale := l.cam.Scale - e.DeltaY/WheelDivisor
	if scale <= MinScale {
		return
	}
	l.cam.Scale = scale
	l.update()
}

func (l *Layer) ContextMenu(e *layer.ContextMenuEvent) {
	if l.noMenu {
		e.PreventDefault()
	}
}

// Draw renders the centre dot, the reference grid and the cube.
func (l *Layer) Draw(ctx layer.Context) {
	if !l.Attached() || l.projector == nil {
		return
	}
	l.drawCenterDot(ctx)
	l.drawGrid(ctx)
	l.drawCube(ctx)
}

func (l *Layer) drawCenterDot(ctx layer.Context) {
	c := l.project(math3d.Vec3{})
	ctx.BeginPath()
	ctx.Ellipse(c.X, c.Y, dotRadius, dotRadius, 0, 0, 2*math.Pi)
	ctx.SetStrokeStyle(dotStyle)
	ctx.SetLineWidth(1)
	ctx.Stroke()
}

// GridBounds returns the screen-space box of the reference plane behind
// the cube, shifted by the grid offset.
func (l *Layer) GridBounds() (topLeft, bottomRight math3d.Vec2) {
	if l.projector == nil {
		return
	}
	planeZ := -math.Sqrt(3)
	a := l.project(math3d.V3(-1, -1, planeZ).Mul(ModelScale))
	b := l.project(math3d.V3(1, 1, planeZ).Mul(ModelScale))
	topLeft = math3d.V2(math.Min(a.X, b.X), math.Min(a.Y, b.Y)).Add(l.cam.GridOffset)
	bottomRight = math3d.V2(math.Max(a.X, b.X), math.Max(a.Y, b.Y)).Add(l.cam.GridOffset)
	return topLeft, bottomRight
}

func (l *Layer) drawGrid(ctx layer.Context) {
	tl, br := l.GridBounds()

	ctx.BeginPath()
	ctx.MoveTo(tl.X, tl.Y)
	ctx.LineTo(br.X, tl.Y)
	ctx.LineTo(br.X, br.Y)
	ctx.LineTo(tl.X, br.Y)
	ctx.LineTo(tl.X, tl.Y)

	stepY := (br.Y - tl.Y) / gridCount
	stepX := (br.X - tl.X) / gridCount
	for i := 0; i < gridCount; i++ {
		y := tl.Y + stepY*float64(i)
		ctx.MoveTo(tl.X, y)
		ctx.LineTo(br.X, y)
	}
	for i := 0; i < gridCount; i++ {
		x := tl.X + stepX*float64(i)
		ctx.MoveTo(x, tl.Y)
		ctx.LineTo(x, br.Y)
	}
	ctx.SetStrokeStyle(gridStyle)
	ctx.SetLineWidth(1)
	ctx.Stroke()
}

func (l *Layer) drawCube(ctx layer.Context) {
	if len(l.projected) == 0 {
		return
	}
	ctx.BeginPath()
	for _, e := range math3d.CubeEdges {
		a, b := l.projected[e[0]], l.projected[e[1]]
		ctx.MoveTo(a.X, a.Y)
		ctx.LineTo(b.X, b.Y)
	}
	ctx.SetStrokeStyle(cubeStyle)
	ctx.SetLineWidth(1)
	ctx.Stroke()
}
