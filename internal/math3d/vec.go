// Package math3d holds the small vector/matrix kernel used to rotate and
// project the reference cube.
package math3d

import (
	"errors"
	"math"
)

// ErrZeroW is returned when a homogeneous coordinate with w == 0 is divided.
var ErrZeroW = errors.New("math3d: homogeneous divide with w = 0")

// Vec2 is a screen-space or plane point.
type Vec2 struct {
	X, Y float64
}

// V2 is shorthand for Vec2{x, y}.
func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Add returns the componentwise sum.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns the componentwise difference.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul scales the vector by k.
func (v Vec2) Mul(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

// Length returns the Euclidean length.
func (v Vec2) Length() float64 { return math.Hypot(v.X, v.Y) }

// Vec3 is a model-space point.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is shorthand for Vec3{x, y, z}.
func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// Mul scales the vector uniformly by k.
func (v Vec3) Mul(k float64) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }

// Add returns the componentwise sum.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Length returns the Euclidean length.
func (v Vec3) Length() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Homogeneous appends w = 1.
func (v Vec3) Homogeneous() Vec4 { return Vec4{v.X, v.Y, v.Z, 1} }

// Vec4 is a homogeneous coordinate.
type Vec4 struct {
	X, Y, Z, W float64
}

// ToVec3 performs the perspective divide. It fails with ErrZeroW rather than
// producing infinities or NaN.
func (v Vec4) ToVec3() (Vec3, error) {
	if v.W == 0 {
		return Vec3{}, ErrZeroW
	}
	return Vec3{v.X / v.W, v.Y / v.W, v.Z / v.W}, nil
}
