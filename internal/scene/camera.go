package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"bascule/internal/geom"
)

// Camera limits. Pitch stays above the deck so the view never goes under
// the bridge.
const (
	MinPitch  = 0.10
	MaxPitch  = 1.35
	MinRadius = 10.0
	MaxRadius = 120.0
	MaxStrafe = 25.0

	FovYDeg = 45.0
	ZNear   = 0.1
	ZFar    = 500.0
)

// Camera orbits a target point; strafe slides the target along X.
type Camera struct {
	Target mgl64.Vec3
	Yaw    float64
	Pitch  float64
	Radius float64
	Strafe float64
}

func NewCamera() Camera {
	return Camera{Target: mgl64.Vec3{0, 2, 0}, Yaw: 0.7, Pitch: 0.25, Radius: 35}
}

func (c *Camera) focus() mgl64.Vec3 { return c.Target.Add(mgl64.Vec3{c.Strafe, 0, 0}) }

func (c *Camera) Eye() mgl64.Vec3 {
	cp := math.Cos(c.Pitch)
	dir := mgl64.Vec3{math.Cos(c.Yaw) * cp, math.Sin(c.Pitch), math.Sin(c.Yaw) * cp}
	return c.focus().Add(dir.Mul(c.Radius))
}

func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye(), c.focus(), mgl64.Vec3{0, 1, 0})
}

func (c *Camera) Proj(aspect float64) mgl64.Mat4 {
	if !(aspect > 0) {
		aspect = 1
	}
	return mgl64.Perspective(mgl64.DegToRad(FovYDeg), aspect, ZNear, ZFar)
}

func (c *Camera) Rotate(dyaw, dpitch float64) {
	c.Yaw += dyaw
	c.Pitch = geom.ClampF(c.Pitch+dpitch, MinPitch, MaxPitch)
}

func (c *Camera) Zoom(dr float64) {
	c.Radius = geom.ClampF(c.Radius+dr, MinRadius, MaxRadius)
}

func (c *Camera) Slide(dx float64) {
	c.Strafe = geom.ClampF(c.Strafe+dx, -MaxStrafe, MaxStrafe)
}
