package math3d

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Matrix3 is a row-major 3x3 matrix. The kernel only builds rotations with it.
type Matrix3 [9]float64

// Identity3 returns the 3x3 identity.
func Identity3() Matrix3 {
	return Matrix3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// MulVec3 returns m * v.
func (m Matrix3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		Y: m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		Z: m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// At returns the element at row r, column c.
func (m Matrix3) At(r, c int) float64 { return m[r*3+c] }

// Matrix4 is a row-major 4x4 matrix, used for perspective projection.
type Matrix4 [16]float64

// Identity4 returns the 4x4 identity.
func Identity4() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at row r, column c.
func (m Matrix4) At(r, c int) float64 { return m[r*4+c] }

// MulVec4 returns m * v.
func (m Matrix4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3]*v.W,
		Y: m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7]*v.W,
		Z: m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11]*v.W,
		W: m[12]*v.X + m[13]*v.Y + m[14]*v.Z + m[15]*v.W,
	}
}

// ProjectVec3 homogenises v, transforms it and divides by w. Points that land
// on w == 0 (geometry exactly on the eye plane) are returned undivided and a
// warning is logged.
func (m Matrix4) ProjectVec3(v Vec3) Vec3 {
	h := m.MulVec4(v.Homogeneous())
	p, err := h.ToVec3()
	if err != nil {
		slog.Warn("perspective divide skipped", "point", v, "err", err)
		return Vec3{h.X, h.Y, h.Z}
	}
	return p
}

// Project is ProjectVec3 in function form.
func Project(point Vec3, m Matrix4) Vec3 { return m.ProjectVec3(point) }

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 { return mgl64.DegToRad(deg) }

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 { return mgl64.RadToDeg(rad) }

// RotationMatrix builds the combined yaw-pitch-roll rotation. Roll turns about
// the view axis, pitch about the horizontal axis and yaw about the vertical
// axis, applied roll first. Angles are radians and are not range checked.
func RotationMatrix(yaw, pitch, roll float64) Matrix3 {
	cy, sy := math.Cos(yaw), math.Sin(yaw)
	cp, sp := math.Cos(pitch), math.Sin(pitch)
	cr, sr := math.Cos(roll), math.Sin(roll)

	return Matrix3{
		cy*cr + sy*sp*sr, sr * cp, -sy*cr + cy*sp*sr,
		-cy*sr + sy*sp*cr, cr * cp, sr*sy + cy*sp*cr,
		sy * cp, -sp, cy * cp,
	}
}

// PerspectiveProjectionMatrix builds an OpenGL style projection mapping view
// space to clip space with w' = -z. fovY is radians. The caller must keep
// near != far and 0 < fovY < pi.
func PerspectiveProjectionMatrix(fovY, aspectRatio, near, far float64) Matrix4 {
	f := 1 / math.Tan(fovY/2)
	rangeInv := 1 / (near - far)

	return Matrix4{
		f / aspectRatio, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (near + far) * rangeInv, 2 * near * far * rangeInv,
		0, 0, -1, 0,
	}
}
