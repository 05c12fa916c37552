package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	viewW = 800
	viewH = 600
)

func screenOf(t *testing.T, c *Camera, p mgl64.Vec3) (float64, float64) {
	t.Helper()
	vp := c.Proj(float64(viewW) / viewH).Mul4(c.View())
	x, y, _, _, ok := project(vp, p, viewW, viewH)
	require.True(t, ok)
	return x, y
}

func TestPickVehicleNearest(t *testing.T) {
	cam := NewCamera()
	a := NewVehicle(KindCar, 1.4, +1, 5, -3, 2.6)
	b := NewVehicle(KindBus, 1.4, +1, 5, 3, 3.6)
	a.Position[1], b.Position[1] = 2.05, 2.05
	vs := []*Vehicle{a, b}

	ax, ay := screenOf(t, &cam, a.Position)
	bx, by := screenOf(t, &cam, b.Position)

	assert.Same(t, a, PickVehicle(vs, &cam, ax, ay, viewW, viewH))
	assert.Same(t, b, PickVehicle(vs, &cam, bx, by, viewW, viewH))
	assert.Same(t, a, PickVehicle(vs, &cam, ax+2, ay+1, viewW, viewH))

	// The top row only shows sky.
	assert.Nil(t, PickVehicle(vs, &cam, viewW/2, 0, viewW, viewH))

	a.active = false
	assert.NotSame(t, a, PickVehicle(vs, &cam, ax, ay, viewW, viewH))
}

func TestPickRejectsDegenerateViewport(t *testing.T) {
	cam := NewCamera()
	v := NewVehicle(KindCar, 1.4, +1, 5, 0, 2.6)
	assert.Nil(t, PickVehicle([]*Vehicle{v}, &cam, 0, 0, 0, viewH))
	assert.Nil(t, PickVehicle([]*Vehicle{v}, &cam, 0, 0, viewW, 0))
}

func TestProjectSkipsPointsBehindCamera(t *testing.T) {
	cam := NewCamera()
	vp := cam.Proj(1).Mul4(cam.View())

	behind := cam.Eye().Add(cam.Eye().Sub(cam.focus()))
	_, _, _, _, ok := project(vp, behind, viewW, viewH)
	assert.False(t, ok)

	v := NewVehicle(KindCar, 0, +1, 5, 0, 2.6)
	v.Position = behind
	assert.Nil(t, PickVehicle([]*Vehicle{v}, &cam, viewW/2, viewH/2, viewW, viewH))
}

func TestHandleClickCyclesVariants(t *testing.T) {
	s := New()
	var car, bus *Vehicle
	for _, v := range s.Vehicles() {
		v.active = false
		switch {
		case car == nil && v.Kind() == KindCar:
			car = v
		case bus == nil && v.Kind() == KindBus:
			bus = v
		}
	}
	require.NotNil(t, car)
	require.NotNil(t, bus)

	var hits []Event
	s.Events().Subscribe(EventVehicleHit, func(e Event) { hits = append(hits, e) })

	car.active = true
	car.Position = mgl64.Vec3{0, 2.05, car.Lane}
	cx, cy := screenOf(t, s.Camera(), car.Position)
	for i := 0; i < 4; i++ {
		require.True(t, s.HandleClick(cx, cy, viewW, viewH))
	}

	car.active = false
	bus.active = true
	bus.Position = mgl64.Vec3{0, 2.05, bus.Lane}
	bx, by := screenOf(t, s.Camera(), bus.Position)
	require.True(t, s.HandleClick(bx, by, viewW, viewH))

	bus.active = false
	assert.False(t, s.HandleClick(bx, by, viewW, viewH))

	require.Len(t, hits, 5)
	var got []int
	for _, h := range hits[:4] {
		assert.Equal(t, KindCar, h.Kind)
		got = append(got, h.Variant)
	}
	assert.Equal(t, []int{0, 1, 2, 0}, got)
	assert.Equal(t, KindBus, hits[4].Kind)
	assert.Equal(t, 0, hits[4].Variant)
}
