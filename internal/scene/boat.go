package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"bascule/internal/geom"
)

var boatParking = mgl64.Vec3{-999, 0.2, -999}

// Boat crosses under the open leaf at most once per night.
type Boat struct {
	geom.Transform

	active bool
	passed bool
	parts  []modelPart
}

func NewBoat() *Boat {
	b := &Boat{Transform: geom.NewTransform()}
	b.park()
	return b
}

func (b *Boat) Kind() Kind { return KindBoat }

func (b *Boat) Active() bool { return b.active }

// Passed reports whether the boat already crossed this night.
func (b *Boat) Passed() bool { return b.passed }

func (b *Boat) park() { b.Position = boatParking }

func (b *Boat) Update(w *World, dt float64) {
	t := &w.Tuning
	if !w.IsNight {
		b.passed = false
		b.active = false
		b.park()
		return
	}

	if !b.active && !b.passed && w.Lift >= t.BoatOpenThreshold {
		b.active = true
		b.Position = mgl64.Vec3{t.BoatPassX, t.BoatY, t.BoatStartZ}
		b.Rotation[1] = math.Pi / 2
	}
	if !b.active {
		b.park()
		return
	}

	b.Position[2] += t.BoatSpeed * dt
	if b.Position[2] >= t.BoatEndZ {
		b.active = false
		b.passed = true
		b.park()
	}
}

func (b *Boat) AppendInstances(dst []Instance) []Instance {
	if !b.active {
		return dst
	}
	m := b.ModelMatrix()
	for _, p := range b.parts {
		in := newInstance(p.mesh, m)
		in.Material = p.material
		in.Tint = p.diffuse
		dst = append(dst, in)
	}
	return dst
}
