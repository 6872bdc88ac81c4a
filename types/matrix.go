package types

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Matrices are provided by mathgl; the aliases keep call sites inside the
// module uniform with the Vec types defined in this package.
type Mat3 = mgl32.Mat3
type Mat4 = mgl32.Mat4

// Create a 4x4 identity matrix.
func Ident4() Mat4 {
	return mgl32.Ident4()
}

// Create a perspective projection matrix. The fov is expressed in degrees.
func Perspective4(fovDeg, aspect, near, far float32) Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(fovDeg), aspect, near, far)
}

// Create a right-handed look-at view matrix.
func LookAtV(eye, center, up Vec3) Mat4 {
	return mgl32.LookAtV(mgl32.Vec3(eye), mgl32.Vec3(center), mgl32.Vec3(up))
}

// Create a translation matrix.
func Translate4(v Vec3) Mat4 {
	return mgl32.Translate3D(v[0], v[1], v[2])
}

// Create a non-uniform scale matrix.
func Scale4(v Vec3) Mat4 {
	return mgl32.Scale3D(v[0], v[1], v[2])
}

// Transform a point by a 4x4 matrix, applying the translation part.
func TransformPoint(m Mat4, v Vec3) Vec3 {
	out := m.Mul4x1(mgl32.Vec4{v[0], v[1], v[2], 1})
	return Vec3{out[0], out[1], out[2]}
}

// Transform a direction by a 4x4 matrix, ignoring the translation part.
func TransformDir(m Mat4, v Vec3) Vec3 {
	out := m.Mul4x1(mgl32.Vec4{v[0], v[1], v[2], 0})
	return Vec3{out[0], out[1], out[2]}
}

// Transform a direction by a 3x3 matrix.
func TransformDir3(m Mat3, v Vec3) Vec3 {
	out := m.Mul3x1(mgl32.Vec3(v))
	return Vec3(out)
}

// The inverse-transpose of the upper 3x3 block of a transform. Normals must
// be transformed by this matrix rather than the transform itself so that
// non-uniform scaling keeps them perpendicular to the surface.
func NormalMat3(m Mat4) Mat3 {
	return m.Mat3().Inv().Transpose()
}
