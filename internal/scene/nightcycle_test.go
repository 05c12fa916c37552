package scene

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const testStep = 1.0 / 60

type nightLog struct {
	entered   []Phase
	edges     []Event
	completed int
	started   int
	boat      []EventType
	horn      int
}

func recordNight(s *Scene) *nightLog {
	l := &nightLog{}
	bus := s.Events()
	bus.Subscribe(EventPhaseEntered, func(e Event) {
		l.entered = append(l.entered, e.Phase)
		l.edges = append(l.edges, e)
	})
	bus.Subscribe(EventPhaseExited, func(e Event) { l.edges = append(l.edges, e) })
	bus.Subscribe(EventNightStarted, func(Event) { l.started++ })
	bus.Subscribe(EventNightCompleted, func(Event) { l.completed++ })
	bus.Subscribe(EventBoatStarted, func(e Event) { l.boat = append(l.boat, e.Type) })
	bus.Subscribe(EventBoatPassed, func(e Event) { l.boat = append(l.boat, e.Type) })
	bus.Subscribe(EventBoatHorn, func(Event) { l.horn++ })
	return l
}

// runNight ticks until the scene is back in Day or maxSeconds elapse.
func runNight(s *Scene, maxSeconds float64, each func()) {
	for t := 0.0; t < maxSeconds; t += testStep {
		s.Tick(testStep)
		if each != nil {
			each()
		}
		if s.World().Phase == PhaseDay {
			return
		}
	}
}

func TestNightSequence(t *testing.T) {
	Convey("Given a scene in daylight", t, func() {
		s := New()
		log := recordNight(s)
		for i := 0; i < 120; i++ {
			s.Tick(testStep)
		}
		So(s.World().Phase, ShouldEqual, PhaseDay)
		So(s.CanTrigger(), ShouldBeTrue)

		Convey("When night is triggered", func() {
			So(s.Trigger(), ShouldBeTrue)
			So(s.World().Phase, ShouldEqual, PhaseStoppingTraffic)
			So(s.World().SpawnEnabled, ShouldBeFalse)
			So(s.World().BlendTarget, ShouldEqual, 1.0)

			Convey("A second trigger is ignored", func() {
				So(s.CanTrigger(), ShouldBeFalse)
				So(s.Trigger(), ShouldBeFalse)
				So(log.started, ShouldEqual, 1)
				So(s.World().Phase, ShouldEqual, PhaseStoppingTraffic)
			})

			Convey("The sequence visits every phase once and returns to day", func() {
				runNight(s, 180, nil)

				So(log.entered, ShouldResemble, []Phase{
					PhaseStoppingTraffic,
					PhaseWaitBeforeLift,
					PhaseLiftingOpen,
					PhaseHoldOpen,
					PhaseClosing,
					PhaseWaitAfterClose,
					PhaseFadeToDay,
					PhaseDay,
				})
				So(log.completed, ShouldEqual, 1)
				So(s.World().IsNight, ShouldBeFalse)
				So(s.World().Lift, ShouldEqual, 0.0)
				So(s.CanTrigger(), ShouldBeTrue)
			})

			Convey("Every edge exits the old phase before entering the new one", func() {
				runNight(s, 180, nil)

				So(len(log.edges)%2, ShouldEqual, 0)
				prev := PhaseDay
				for i := 0; i < len(log.edges); i += 2 {
					So(log.edges[i].Type, ShouldEqual, EventPhaseExited)
					So(log.edges[i].Phase, ShouldEqual, prev)
					So(log.edges[i+1].Type, ShouldEqual, EventPhaseEntered)
					prev = log.edges[i+1].Phase
				}
			})

			Convey("The boat crosses exactly once and sounds its horn once", func() {
				runNight(s, 180, nil)

				So(log.boat, ShouldResemble, []EventType{EventBoatStarted, EventBoatPassed})
				So(log.horn, ShouldEqual, 1)
				So(s.Boat().Active(), ShouldBeFalse)
				So(s.Boat().Position, ShouldResemble, boatParking)
			})

			Convey("Traffic flows again while it is still dark", func() {
				flowingInDark := false
				runNight(s, 180, func() {
					w := s.World()
					if w.Phase == PhaseFadeToDay && w.SpawnEnabled && w.NightBlend > 0.5 {
						flowingInDark = true
					}
				})
				So(flowingInDark, ShouldBeTrue)
				So(s.World().SpawnEnabled, ShouldBeTrue)
			})
		})
	})
}

func TestStepNightTimings(t *testing.T) {
	Convey("Given a world waiting before lift", t, func() {
		w := newWorld(DefaultTuning())
		So(beginNight(w), ShouldBeTrue)
		stepNight(w, 0.01, nil)
		So(w.Phase, ShouldEqual, PhaseWaitBeforeLift)
		So(w.PhaseTimer, ShouldEqual, w.Tuning.PreLiftWait)

		Convey("It lifts only after the wait has elapsed", func() {
			for i := 0; i < 59; i++ {
				stepNight(w, 0.05, nil)
			}
			So(w.Phase, ShouldEqual, PhaseWaitBeforeLift)
			stepNight(w, 0.1, nil)
			So(w.Phase, ShouldEqual, PhaseLiftingOpen)
			So(w.Lift, ShouldEqual, 0.0)

			Convey("And pins the lift at one when fully open", func() {
				for w.Phase == PhaseLiftingOpen {
					stepNight(w, 0.05, nil)
					So(w.Lift, ShouldBeBetweenOrEqual, 0.0, 1.0)
				}
				So(w.Phase, ShouldEqual, PhaseHoldOpen)
				So(w.Lift, ShouldEqual, 1.0)
				So(w.PhaseTimer, ShouldEqual, w.Tuning.OpenHold)
			})
		})
	})

	Convey("Given an empty road", t, func() {
		w := newWorld(DefaultTuning())
		beginNight(w)

		Convey("Stopping traffic does not wait for anything", func() {
			stepNight(w, 0.02, []LaneFront{})
			So(w.Phase, ShouldEqual, PhaseWaitBeforeLift)
		})
	})

	Convey("Given a lane front short of its stop line", t, func() {
		w := newWorld(DefaultTuning())
		beginNight(w)
		v := NewVehicle(KindCar, 1.4, +1, 5, -12, 2.6)
		fronts := []LaneFront{{Lane: 1.4, Dir: 1, Vehicle: v}}

		Convey("Stopping traffic waits", func() {
			stepNight(w, 0.02, fronts)
			So(w.Phase, ShouldEqual, PhaseStoppingTraffic)
		})

		Convey("And proceeds once it is within tolerance", func() {
			v.Position[0] = -9.05
			stepNight(w, 0.02, fronts)
			So(w.Phase, ShouldEqual, PhaseWaitBeforeLift)
		})
	})

	Convey("Given a fading world", t, func() {
		w := newWorld(DefaultTuning())
		w.Phase = PhaseFadeToDay
		w.IsNight = true
		w.NightBlend = 0.5

		Convey("Day waits for the blend, not the phase", func() {
			stepNight(w, 0.05, nil)
			So(w.Phase, ShouldEqual, PhaseFadeToDay)
			So(w.SpawnEnabled, ShouldBeTrue)

			for w.NightBlend > 0 {
				advanceBlend(w, 0.05)
			}
			stepNight(w, 0.05, nil)
			So(w.Phase, ShouldEqual, PhaseDay)
			So(w.IsNight, ShouldBeFalse)
		})
	})
}
