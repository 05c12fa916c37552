package scene

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bascule/internal/asset"
)

func TestNewBuildsEverythingUpFront(t *testing.T) {
	s := New()

	var cars, buses int
	for _, v := range s.Vehicles() {
		switch v.Kind() {
		case KindCar:
			cars++
			assert.Equal(t, 2.6, v.Length)
		case KindBus:
			buses++
			assert.Equal(t, 3.6, v.Length)
		}
		assert.True(t, v.Active())
		assert.Equal(t, 2.05, v.Position.Y())
		assert.Equal(t, v.Lane, v.Position.Z())
		if v.Dir > 0 {
			assert.Contains(t, []float64{1.4, 3.1}, v.Lane)
		} else {
			assert.Contains(t, []float64{-3.1, -1.4}, v.Lane)
		}
	}
	assert.Equal(t, 6, cars)
	assert.Equal(t, 2, buses)

	// bridge + 8 vehicles + boat
	assert.Len(t, s.Actors(), 10)

	for _, name := range []string{MeshLeaf, MeshCurb, MeshPier, MeshArch, MeshRib, MeshBank, MeshWater, "car/0", "bus/0", "boat/0"} {
		_, ok := s.Library().ID(name)
		assert.True(t, ok, name)
	}
}

func TestCarTintsComeFromPalette(t *testing.T) {
	a, b := New(), New()
	for i, v := range a.Vehicles() {
		if v.Kind() != KindCar {
			continue
		}
		assert.Contains(t, carPalette[:], v.Tint)
		assert.Equal(t, v.Tint, b.Vehicles()[i].Tint, "same seed, same colours")
	}
}

type brokenSource struct{}

func (brokenSource) Load(string) ([]asset.Part, error) { return nil, errors.New("disk on fire") }

func TestNewFallsBackOnBrokenAssets(t *testing.T) {
	var buf bytes.Buffer
	s := New(WithAssetSource(brokenSource{}), WithLogger(zerolog.New(&buf)))

	for _, name := range []string{"car/0", "bus/0", "boat/0"} {
		id, ok := s.Library().ID(name)
		require.True(t, ok, name)
		assert.Len(t, s.Library().Mesh(id).Vertices, 24)
	}
	_, ok := s.Library().ID("car/1")
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "disk on fire")

	s.Trigger()
	runNight(s, 180, nil)
	assert.Equal(t, PhaseDay, s.World().Phase)
}

func TestTickClampsStep(t *testing.T) {
	s := New()
	s.Tick(1)
	assert.InDelta(t, 0.05, s.World().Time, 1e-12)

	s.Tick(-3)
	assert.InDelta(t, 0.05, s.World().Time, 1e-12)
}

func TestLiftInvariantsOverNight(t *testing.T) {
	s := New()
	require.True(t, s.Trigger())

	prev := s.World()
	for i := 0; i < 180*60; i++ {
		s.Tick(testStep)
		w := s.World()

		require.GreaterOrEqual(t, w.Lift, 0.0)
		require.LessOrEqual(t, w.Lift, 1.0)
		switch {
		case w.Lift > prev.Lift:
			require.Equal(t, PhaseLiftingOpen, prev.Phase, "lift rose outside LiftingOpen")
		case w.Lift < prev.Lift:
			require.Equal(t, PhaseClosing, prev.Phase, "lift fell outside Closing")
		}
		require.GreaterOrEqual(t, w.NightBlend, 0.0)
		require.LessOrEqual(t, w.NightBlend, 1.0)

		prev = w
		if w.Phase == PhaseDay {
			break
		}
	}
	assert.Equal(t, PhaseDay, prev.Phase)
}

func TestFrontsStoppedBeforeWaitBeforeLift(t *testing.T) {
	s := New()
	checked := false
	s.Events().Subscribe(EventPhaseEntered, func(e Event) {
		if e.Phase != PhaseWaitBeforeLift {
			return
		}
		checked = true
		w := s.World()
		for _, f := range LaneFronts(s.Vehicles(), w.Tuning) {
			assert.InDelta(t, w.StopLine(f.Dir), f.Vehicle.X(), w.Tuning.FrontTolerance)
		}
	})

	for i := 0; i < 90; i++ {
		s.Tick(testStep)
	}
	s.Trigger()
	runNight(s, 180, nil)
	assert.True(t, checked)
}

func TestEmptyLaneDoesNotBlock(t *testing.T) {
	s := New()
	for _, v := range s.Vehicles() {
		if v.Dir < 0 {
			v.active = false
		}
	}
	s.Trigger()

	var reached bool
	runNight(s, 60, func() {
		if s.World().Phase == PhaseWaitBeforeLift {
			reached = true
		}
	})
	assert.True(t, reached)
}

func TestBoatStartsOnlyWhenOpenAtNight(t *testing.T) {
	s := New()
	starts := 0
	s.Events().Subscribe(EventBoatStarted, func(Event) {
		starts++
		w := s.World()
		assert.True(t, w.IsNight)
		assert.GreaterOrEqual(t, w.Lift, w.Tuning.BoatOpenThreshold)
	})

	for i := 0; i < 600; i++ {
		s.Tick(testStep)
	}
	assert.Equal(t, 0, starts, "no transit during the day")

	for night := 0; night < 2; night++ {
		require.True(t, s.Trigger())
		runNight(s, 180, nil)
	}
	assert.Equal(t, 2, starts, "one transit per night")
}

func TestVehiclesHoldPositionWhileLeafMoves(t *testing.T) {
	s := New()
	s.Trigger()

	checkedTicks := 0
	runNight(s, 180, func() {
		w := s.World()
		if w.Phase != PhaseLiftingOpen || w.Lift <= w.Tuning.FreezeLift {
			return
		}
		before := make([]float64, len(s.vehicles))
		for i, v := range s.vehicles {
			before[i] = v.X()
		}
		s.Tick(testStep)
		for i, v := range s.vehicles {
			if v.Active() {
				assert.Equal(t, before[i], v.X())
				assert.Equal(t, v.heading(), v.Rotation.Y())
			}
		}
		checkedTicks++
	})
	assert.Greater(t, checkedTicks, 0)
}

func TestFrame(t *testing.T) {
	s := New()
	f := s.Frame(16.0 / 9)

	assert.True(t, DayLight.SunDir.ApproxEqual(f.Light.SunDir))
	assert.Equal(t, DayLight.SunColor, f.Light.SunColor)
	assert.Equal(t, DayLight.Ambient, f.Light.Ambient)
	assert.Equal(t, DaySky, f.Sky)
	assert.Equal(t, 0.0, f.Night)
	assert.Equal(t, s.Camera().Eye(), f.Eye)

	// 54 bridge draws, three parts per road vehicle, parked boat hidden.
	assert.Len(t, f.Instances, 54+8*3)

	again := s.Frame(16.0 / 9)
	assert.Equal(t, len(f.Instances), len(again.Instances))
}

func TestBlendLighting(t *testing.T) {
	day := BlendLighting(0)
	assert.True(t, DayLight.SunDir.ApproxEqual(day.SunDir))
	assert.Equal(t, DayLight.SunColor, day.SunColor)
	assert.Equal(t, DayLight.Ambient, day.Ambient)
	night := BlendLighting(1)
	assert.True(t, NightLight.SunDir.ApproxEqual(night.SunDir))
	assert.Equal(t, NightLight.SunColor, night.SunColor)
	assert.InDelta(t, 0.10, night.Ambient, 1e-12)

	mid := BlendLighting(0.5)
	assert.InDelta(t, 0.19, mid.Ambient, 1e-12)
	assert.InDelta(t, 1, mid.SunDir.Len(), 1e-12)
	assert.Equal(t, NightSky, SkyColor(3))
}

func TestWaterScrollWraps(t *testing.T) {
	off := scrollWater(mgl64.Vec2{10, 999.99}, 1)
	assert.InDelta(t, 10.002, off.X(), 1e-9)
	assert.InDelta(t, 0.02, off.Y(), 1e-9)
}

func TestPhaseNames(t *testing.T) {
	assert.Equal(t, "lifting_open", PhaseLiftingOpen.String())
	assert.Equal(t, "unknown", Phase(42).String())
	assert.Equal(t, "bus", KindBus.String())
	assert.True(t, PhaseClosing.HoldsTraffic())
	assert.False(t, PhaseFadeToDay.HoldsTraffic())
}
