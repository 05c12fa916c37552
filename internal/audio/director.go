package audio

import (
	"github.com/rs/zerolog"

	"bascule/internal/scene"
)

// Director maps scene events to mixer cues.
type Director struct {
	mix Mixer
	log zerolog.Logger
}

func NewDirector(mix Mixer, log zerolog.Logger) *Director {
	return &Director{mix: mix, log: log}
}

// Attach subscribes to the events that carry sound and starts the road
// ambience.
func (d *Director) Attach(bus *scene.EventBus) {
	bus.Subscribe(scene.EventPhaseEntered, d.Handle)
	bus.Subscribe(scene.EventBoatHorn, d.Handle)
	bus.Subscribe(scene.EventVehicleHit, d.Handle)
	d.mix.Resume(CueRoad)
}

func (d *Director) Handle(e scene.Event) {
	switch e.Type {
	case scene.EventPhaseEntered:
		d.phaseEntered(e.Phase)
	case scene.EventBoatHorn:
		d.mix.Play(CueHorn, 0)
	case scene.EventVehicleHit:
		switch e.Kind {
		case scene.KindCar:
			d.mix.Play(CueCarHonk, e.Variant%HonkVariants)
		case scene.KindBus:
			d.mix.Play(CueBusHonk, e.Variant%HonkVariants)
		}
	}
}

func (d *Director) phaseEntered(p scene.Phase) {
	d.log.Debug().Stringer("phase", p).Msg("audio cue")
	switch p {
	case scene.PhaseLiftingOpen:
		d.mix.Pause(CueRoad)
		d.mix.Stop(CueRiver)
		d.mix.Play(CueBridge, 0)
	case scene.PhaseHoldOpen:
		d.mix.Play(CueRiver, 0)
	case scene.PhaseClosing:
		d.mix.Stop(CueRiver)
		d.mix.Play(CueBridge, 0)
	case scene.PhaseWaitAfterClose, scene.PhaseFadeToDay:
		d.mix.Resume(CueRoad)
	case scene.PhaseDay:
		d.mix.Resume(CueRoad)
		d.mix.Stop(CueRiver)
	}
}
