package asset

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"bascule/internal/geom"
)

// Model names served by Procedural.
const (
	Car  = "car"
	Bus  = "bus"
	Boat = "boat"
)

// Procedural builds the vehicle and boat models from boxes. Road vehicles
// are authored Z-up with the nose toward -X, the boat Y-up with the nose
// toward -X, so they need the same axis fixes as the exported models they
// stand in for.
type Procedural struct{}

// Specs returns the preparation spec for every model Procedural serves.
func Specs() []Spec {
	return []Spec{
		{Name: Car, TargetSize: 2.6, Fixes: RotXNeg90 | RotY180},
		{Name: Bus, TargetSize: 3.6, Fixes: RotXNeg90 | RotY180},
		{Name: Boat, TargetSize: 7},
	}
}

type box struct {
	center, half mgl32.Vec3
}

func boxes(bs ...box) *geom.Mesh {
	m := &geom.Mesh{}
	for _, b := range bs {
		m.Append(geom.BuildBox(b.half, mgl32.Vec2{1, 1}), b.center)
	}
	return m
}

var (
	paint  = Material{Diffuse: mgl32.Vec3{1, 1, 1}, Specular: 0.6, Shininess: 64}
	glass  = Material{Diffuse: mgl32.Vec3{0.12, 0.14, 0.18}, Specular: 0.9, Shininess: 96}
	rubber = Material{Diffuse: mgl32.Vec3{0.06, 0.06, 0.06}, Specular: 0.05, Shininess: 8}
)

// wheels returns four wheels for a Z-up body of the given half length and
// half width.
func wheels(hx, hy, r float32) *geom.Mesh {
	var bs []box
	for _, x := range []float32{-hx * 0.65, hx * 0.65} {
		for _, y := range []float32{-hy, hy} {
			bs = append(bs, box{center: mgl32.Vec3{x, y, r}, half: mgl32.Vec3{r, 0.06, r}})
		}
	}
	return boxes(bs...)
}

func (Procedural) Load(name string) ([]Part, error) {
	switch name {
	case Car:
		return []Part{
			{Mesh: boxes(box{center: mgl32.Vec3{0, 0, 0.38}, half: mgl32.Vec3{1.0, 0.45, 0.22}}), Material: paint},
			{Mesh: boxes(box{center: mgl32.Vec3{0.15, 0, 0.78}, half: mgl32.Vec3{0.55, 0.4, 0.18}}), Material: glass},
			{Mesh: wheels(1.0, 0.45, 0.18), Material: rubber},
		}, nil
	case Bus:
		return []Part{
			{Mesh: boxes(box{center: mgl32.Vec3{0, 0, 0.75}, half: mgl32.Vec3{1.8, 0.5, 0.55}}), Material: paint},
			{Mesh: boxes(box{center: mgl32.Vec3{0.05, 0, 0.95}, half: mgl32.Vec3{1.72, 0.51, 0.16}}), Material: glass},
			{Mesh: wheels(1.8, 0.5, 0.2), Material: rubber},
		}, nil
	case Boat:
		hull := Material{Diffuse: mgl32.Vec3{0.55, 0.18, 0.12}, Specular: 0.2, Shininess: 24}
		deck := Material{Diffuse: mgl32.Vec3{0.85, 0.82, 0.74}, Specular: 0.3, Shininess: 32}
		return []Part{
			{Mesh: boxes(
				box{center: mgl32.Vec3{0, 0.3, 0}, half: mgl32.Vec3{1.6, 0.3, 0.55}},
				box{center: mgl32.Vec3{-1.85, 0.35, 0}, half: mgl32.Vec3{0.25, 0.25, 0.35}},
			), Material: hull},
			{Mesh: boxes(
				box{center: mgl32.Vec3{0.45, 0.85, 0}, half: mgl32.Vec3{0.6, 0.25, 0.4}},
				box{center: mgl32.Vec3{0.2, 1.5, 0}, half: mgl32.Vec3{0.04, 0.4, 0.04}},
			), Material: deck},
		}, nil
	default:
		return nil, fmt.Errorf("asset: unknown model %q", name)
	}
}
