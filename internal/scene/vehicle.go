package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"bascule/internal/geom"
)

// Actor is anything the scene updates and draws.
type Actor interface {
	Kind() Kind
	Update(w *World, dt float64)
	AppendInstances(dst []Instance) []Instance
}

// modelPart is a prepared model part registered in the mesh library.
type modelPart struct {
	mesh     geom.MeshID
	diffuse  mgl64.Vec3
	material Material
}

// Vehicle is a car or bus travelling along one lane.
type Vehicle struct {
	geom.Transform

	kind   Kind
	Lane   float64 // lateral Z
	Dir    int     // +1 or -1 along X
	Speed  float64
	Length float64 // normalised model size, used for spacing and picking
	Tint   mgl64.Vec3

	active bool
	parts  []modelPart
}

// NewVehicle places an active vehicle on its lane at x.
func NewVehicle(kind Kind, lane float64, dir int, speed, x, length float64) *Vehicle {
	v := &Vehicle{
		Transform: geom.NewTransform(),
		kind:      kind,
		Lane:      lane,
		Dir:       geom.Sign(float64(dir)),
		Speed:     speed,
		Length:    length,
		Tint:      mgl64.Vec3{1, 1, 1},
		active:    true,
	}
	v.Position = mgl64.Vec3{x, 0, lane}
	v.Rotation[1] = v.heading()
	return v
}

func (v *Vehicle) Kind() Kind   { return v.kind }
func (v *Vehicle) Active() bool { return v.active }
func (v *Vehicle) X() float64   { return v.Position[0] }

func (v *Vehicle) heading() float64 {
	if v.Dir > 0 {
		return 0
	}
	return math.Pi
}

// Update moves the vehicle one tick along its lane.
func (v *Vehicle) Update(w *World, dt float64) {
	t := &w.Tuning
	if !v.active {
		if !w.SpawnEnabled {
			return
		}
		v.active = true
		v.Position[0] = -float64(v.Dir) * t.SpawnEdge
		v.Position[1] = t.DeckY
	}

	v.Position[2] = v.Lane

	// Nothing drives onto a moving span.
	if w.Lift > t.FreezeLift {
		v.Rotation[1] = v.heading()
		return
	}

	x := v.Position[0]
	nx := x + float64(v.Dir)*v.Speed*dt

	if w.Phase.HoldsTraffic() {
		stop := w.StopLine(v.Dir)
		// Vehicles past the line keep going so they clear the span.
		if v.Dir > 0 && x <= stop+t.StopEpsilon {
			nx = math.Min(nx, stop)
		} else if v.Dir < 0 && x >= stop-t.StopEpsilon {
			nx = math.Max(nx, stop)
		}
	}
	v.Position[0] = nx

	if w.SpawnEnabled {
		if v.Position[0] > t.SpawnEdge {
			v.Position[0] = -t.SpawnEdge
		}
		if v.Position[0] < -t.SpawnEdge {
			v.Position[0] = t.SpawnEdge
		}
	} else if (v.Dir > 0 && v.Position[0] > t.DespawnX) || (v.Dir < 0 && v.Position[0] < -t.DespawnX) {
		v.active = false
		return
	}

	v.Rotation[1] = v.heading()
}

func (v *Vehicle) AppendInstances(dst []Instance) []Instance {
	if !v.active {
		return dst
	}
	m := v.ModelMatrix()
	for _, p := range v.parts {
		in := newInstance(p.mesh, m)
		in.Material = p.material
		in.Tint = mgl64.Vec3{p.diffuse[0] * v.Tint[0], p.diffuse[1] * v.Tint[1], p.diffuse[2] * v.Tint[2]}
		dst = append(dst, in)
	}
	return dst
}
