package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"bascule/internal/geom"
)

// Texture selects one of the renderer's procedural textures.
type Texture int

const (
	TextureNone Texture = iota
	TextureRoad
	TextureStone
	TextureBrick
	TextureSteel
	TextureRock
	TextureWater
)

// Material carries the specular response of a draw.
type Material struct {
	SpecularStrength float64
	SpecularPower    float64
}

var (
	MaterialDefault = Material{SpecularStrength: 0.25, SpecularPower: 32}
	MaterialAsphalt = Material{SpecularStrength: 0.05, SpecularPower: 12}
	MaterialStone   = Material{SpecularStrength: 0.15, SpecularPower: 28}
	MaterialSteel   = Material{SpecularStrength: 0.75, SpecularPower: 100}
)

// Pass orders draws: every lit instance before water.
type Pass int

const (
	PassLit Pass = iota
	PassWater
)

// Instance is one draw of a library mesh.
type Instance struct {
	Mesh     geom.MeshID
	Model    mgl64.Mat4
	Pass     Pass
	Texture  Texture
	UVMul    mgl64.Vec2
	BoxMap   bool
	BoxScale mgl64.Vec3
	Material Material
	Tint     mgl64.Vec3
}

func newInstance(mesh geom.MeshID, model mgl64.Mat4) Instance {
	return Instance{
		Mesh:     mesh,
		Model:    model,
		UVMul:    mgl64.Vec2{1, 1},
		BoxScale: mgl64.Vec3{1, 1, 1},
		Material: MaterialDefault,
		Tint:     mgl64.Vec3{1, 1, 1},
	}
}

// Frame is everything a renderer needs for one frame.
type Frame struct {
	View        mgl64.Mat4
	Proj        mgl64.Mat4
	Eye         mgl64.Vec3
	Light       Lighting
	Sky         mgl64.Vec3
	WaterOffset mgl64.Vec2
	Night       float64
	Instances   []Instance
}
