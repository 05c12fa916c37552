// Package scene simulates the drawbridge scene: road traffic, the bascule
// leaf, a boat transit and the night cycle that ties them together. It has
// no I/O. Renderers and audio observe it through Frame and the EventBus.
package scene

import "github.com/go-gl/mathgl/mgl64"

// Kind tags every actor in the scene.
type Kind int

const (
	KindBridge Kind = iota
	KindCar
	KindBus
	KindBoat
)

func (k Kind) String() string {
	switch k {
	case KindBridge:
		return "bridge"
	case KindCar:
		return "car"
	case KindBus:
		return "bus"
	case KindBoat:
		return "boat"
	}
	return "unknown"
}

// Phase is a state of the night cycle.
type Phase int

const (
	PhaseDay             Phase = iota
	PhaseStoppingTraffic       // waiting for lane fronts to reach the stop lines
	PhaseWaitBeforeLift
	PhaseLiftingOpen
	PhaseHoldOpen
	PhaseClosing
	PhaseWaitAfterClose
	PhaseFadeToDay // traffic already flowing, light still fading
)

var phaseNames = [...]string{
	"day", "stopping_traffic", "wait_before_lift", "lifting_open",
	"hold_open", "closing", "wait_after_close", "fade_to_day",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// HoldsTraffic reports whether vehicles must respect the stop lines.
func (p Phase) HoldsTraffic() bool {
	return p != PhaseDay && p != PhaseFadeToDay
}

// World is the simulation context passed to every actor update. Only the
// Scene writes it; actors read it.
type World struct {
	Tuning Tuning

	Time         float64
	Phase        Phase
	PhaseTimer   float64
	Lift         float64
	NightBlend   float64
	BlendTarget  float64
	SpawnEnabled bool
	IsNight      bool
	WaterOffset  mgl64.Vec2
}

func newWorld(t Tuning) *World {
	return &World{Tuning: t, Phase: PhaseDay, SpawnEnabled: true}
}

// StopLine returns the X a vehicle travelling in dir must not cross while
// traffic is held.
func (w *World) StopLine(dir int) float64 {
	if dir > 0 {
		return w.Tuning.StopLinePosX
	}
	return w.Tuning.StopLineNegX
}
