package math3d

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownProjection is returned by NewProjector for an unrecognised kind.
var ErrUnknownProjection = errors.New("math3d: unknown projection kind")

// DefaultDistanceConstant is the C in d = C / tan(fovY/2).
const DefaultDistanceConstant = 300.0

// ProjectionKind names a projection strategy.
type ProjectionKind string

const (
	// ProjectionDistance is the camera-distance falloff used interactively.
	ProjectionDistance ProjectionKind = "distance"
	// ProjectionMatrix runs the full 4x4 perspective matrix.
	ProjectionMatrix ProjectionKind = "matrix"
)

// Viewport is the pixel size of the target surface.
type Viewport struct {
	Width, Height float64
}

// Center returns the middle of the viewport.
func (vp Viewport) Center() Vec2 { return Vec2{vp.Width / 2, vp.Height / 2} }

// Aspect returns width / height, or 1 for an empty viewport.
func (vp Viewport) Aspect() float64 {
	if vp.Height == 0 {
		return 1
	}
	return vp.Width / vp.Height
}

// Lens describes the optical parameters shared by every projector.
type Lens struct {
	FovY     float64 // radians
	Distance float64 // C in d = C / tan(fovY/2); 0 means DefaultDistanceConstant
	Near     float64 // matrix projector only
	Far      float64 // matrix projector only
}

// EyeDistance returns d = C / tan(fovY/2).
func (l Lens) EyeDistance() float64 {
	c := l.Distance
	if c == 0 {
		c = DefaultDistanceConstant
	}
	return c / math.Tan(l.FovY/2)
}

// Projector maps a model-space point to screen pixels. zoom multiplies the
// offset from the viewport centre.
type Projector interface {
	Project(v Vec3, zoom float64) Vec2
}

// NewProjector builds the projector named by kind.
func NewProjector(kind ProjectionKind, lens Lens, vp Viewport) (Projector, error) {
	switch kind {
	case ProjectionDistance, "":
		return NewDistanceProjector(lens, vp), nil
	case ProjectionMatrix:
		return NewMatrixProjector(lens, vp), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProjection, kind)
	}
}

// DistanceProjector scales each point by d/(d+z), where d is the eye distance
// derived from the field of view. Y is flipped so +y points up on screen.
type DistanceProjector struct {
	center Vec2
	eye    float64
}

// NewDistanceProjector returns the camera-distance projector.
func NewDistanceProjector(lens Lens, vp Viewport) *DistanceProjector {
	return &DistanceProjector{center: vp.Center(), eye: lens.EyeDistance()}
}

// Project implements Projector.
func (p *DistanceProjector) Project(v Vec3, zoom float64) Vec2 {
	k := zoom * p.eye / (p.eye + v.Z)
	return Vec2{
		X: p.center.X + v.X*k,
		Y: p.center.Y - v.Y*k,
	}
}

// MatrixProjector places the model d units in front of the eye (looking down
// -z, so model +z recedes as it does for DistanceProjector) and runs it
// through PerspectiveProjectionMatrix. NDC is stretched over the whole
// viewport, so its on-screen size follows the window height rather than the
// fixed distance constant. Kept as an alternate strategy.
type MatrixProjector struct {
	vp     Viewport
	eye    float64
	matrix Matrix4
}

// NewMatrixProjector returns the full-matrix projector. Zero near/far default
// to 1 and 10000.
func NewMatrixProjector(lens Lens, vp Viewport) *MatrixProjector {
	near, far := lens.Near, lens.Far
	if near == 0 {
		near = 1
	}
	if far == 0 {
		far = 10000
	}
	return &MatrixProjector{
		vp:     vp,
		eye:    lens.EyeDistance(),
		matrix: PerspectiveProjectionMatrix(lens.FovY, vp.Aspect(), near, far),
	}
}

// Project implements Projector.
func (p *MatrixProjector) Project(v Vec3, zoom float64) Vec2 {
	ndc := p.matrix.ProjectVec3(Vec3{v.X, v.Y, -(p.eye + v.Z)})
	c := p.vp.Center()
	return Vec2{
		X: c.X + ndc.X*p.vp.Width/2*zoom,
		Y: c.Y - ndc.Y*p.vp.Height/2*zoom,
	}
}
