package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/atul-mourya/RayTracing-sub004/types"
)

// Stores the ray directions at the four corners of the camera frustum. It is
// used as a shortcut for generating per pixel rays via interpolation of the
// corner rays. The W coordinate is unused but kept so the layout matches the
// float4 type used by GPU kernels.
type Frustum [4]types.Vec4

func (fr Frustum) String() string {
	return fmt.Sprintf(
		"Frustum Rays:\nTL : (%3.3f, %3.3f, %3.3f)\nTR : (%3.3f, %3.3f, %3.3f)\nBL : (%3.3f, %3.3f, %3.3f)\nBR : (%3.3f, %3.3f, %3.3f)",
		fr[0][0], fr[0][1], fr[0][2],
		fr[1][0], fr[1][1], fr[1][2],
		fr[2][0], fr[2][1], fr[2][2],
		fr[3][0], fr[3][1], fr[3][2],
	)
}

// The camera type controls the scene camera.
type Camera struct {
	Position types.Vec3
	LookAt   types.Vec3
	Up       types.Vec3
	Pitch    float32
	Yaw      float32

	ViewMat types.Mat4
	ProjMat types.Mat4
	Frustum Frustum

	// Vertical field of view in degrees.
	FOV float32

	// Adjust the frustum so that Y is inverted.
	InvertY bool
}

func NewCamera(fov float32) *Camera {
	return &Camera{
		ViewMat:  types.Ident4(),
		ProjMat:  types.Ident4(),
		Position: types.Vec3{0, 0, 0},
		LookAt:   types.Vec3{0, 0, -1},
		Up:       types.Vec3{0, 1, 0},
		FOV:      fov,
	}
}

// Setup camera projection matrix.
func (c *Camera) SetupProjection(aspect float32) {
	c.ProjMat = types.Perspective4(c.FOV, aspect, 1, 1000)
	c.Update()
}

// Update the view matrix and frustum rays after the camera has moved.
func (c *Camera) Update() {
	dir := c.LookAt.Sub(c.Position).Normalize()
	pitchAxis := dir.Cross(c.Up)
	pitchQuat := mgl32.QuatRotate(c.Pitch, mgl32.Vec3(pitchAxis))
	yawQuat := mgl32.QuatRotate(c.Yaw, mgl32.Vec3(c.Up))

	orientQuat := pitchQuat.Mul(yawQuat).Normalize()

	dir = types.Vec3(orientQuat.Rotate(mgl32.Vec3(dir)))
	c.LookAt = c.Position.Add(dir)

	c.ViewMat = types.LookAtV(c.Position, c.LookAt, c.Up)
	c.updateFrustum()
}

func (c *Camera) InvViewProjMat() types.Mat4 {
	return c.ProjMat.Mul4(c.ViewMat).Inv()
}

// Generate a ray vector for each corner of the camera frustum by multiplying
// clip space vectors for each corner with the inverted proj/view matrix,
// applying perspective and subtracting the camera eye position.
func (c *Camera) updateFrustum() {
	var v types.Vec4
	invProjViewMat := c.InvViewProjMat()

	var yUp float32 = 1.0
	if c.InvertY {
		yUp = -1.0
	}

	v = types.Vec4(invProjViewMat.Mul4x1(mgl32.Vec4{-1, yUp, -1, 1}))
	c.Frustum[0] = v.Mul(1.0 / v[3]).Vec3().Sub(c.Position).Vec4(0)

	v = types.Vec4(invProjViewMat.Mul4x1(mgl32.Vec4{1, yUp, -1, 1}))
	c.Frustum[1] = v.Mul(1.0 / v[3]).Vec3().Sub(c.Position).Vec4(0)

	v = types.Vec4(invProjViewMat.Mul4x1(mgl32.Vec4{-1, -yUp, -1, 1}))
	c.Frustum[2] = v.Mul(1.0 / v[3]).Vec3().Sub(c.Position).Vec4(0)

	v = types.Vec4(invProjViewMat.Mul4x1(mgl32.Vec4{1, -yUp, -1, 1}))
	c.Frustum[3] = v.Mul(1.0 / v[3]).Vec3().Sub(c.Position).Vec4(0)
}
