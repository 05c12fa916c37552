package geom

import "github.com/go-gl/mathgl/mgl64"

// Transform is the placement shared by every scene entity.
// Rotation holds Euler angles in radians, applied in Y, X, Z order.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3
}

func NewTransform() Transform {
	return Transform{Scale: mgl64.Vec3{1, 1, 1}}
}

// ModelMatrix composes Translate · RotateY · RotateX · RotateZ · Scale.
func (t Transform) ModelMatrix() mgl64.Mat4 {
	tr := mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rot := mgl64.HomogRotate3DY(t.Rotation.Y()).
		Mul4(mgl64.HomogRotate3DX(t.Rotation.X())).
		Mul4(mgl64.HomogRotate3DZ(t.Rotation.Z()))
	sc := mgl64.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return tr.Mul4(rot).Mul4(sc)
}

// TransformPoint applies m to a point (w = 1) and drops the w component.
func TransformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}
