package scene

import "math"

// advanceBlend moves the night blend toward its target at a constant rate
// so a full fade takes BlendDuration seconds regardless of phase changes.
func advanceBlend(w *World, dt float64) {
	step := 1.0
	if w.Tuning.BlendDuration > 0 {
		step = dt / w.Tuning.BlendDuration
	}
	if w.NightBlend < w.BlendTarget {
		w.NightBlend = math.Min(w.BlendTarget, w.NightBlend+step)
	} else if w.NightBlend > w.BlendTarget {
		w.NightBlend = math.Max(w.BlendTarget, w.NightBlend-step)
	}
}

// beginNight starts a night sequence. It is a no-op outside Day.
func beginNight(w *World) bool {
	if w.Phase != PhaseDay {
		return false
	}
	w.Phase = PhaseStoppingTraffic
	w.PhaseTimer = 0
	w.IsNight = true
	w.BlendTarget = 1
	w.SpawnEnabled = false
	return true
}

// stepNight applies the current phase's effects for one tick and moves to
// the next phase when its exit condition holds. fronts is consulted only
// while stopping traffic.
func stepNight(w *World, dt float64, fronts []LaneFront) {
	t := &w.Tuning
	switch w.Phase {
	case PhaseDay:
		w.IsNight = false
		w.Lift = 0
		w.SpawnEnabled = true
		w.BlendTarget = 0

	case PhaseStoppingTraffic:
		w.IsNight = true
		w.Lift = 0
		w.SpawnEnabled = false
		if frontsStopped(w, fronts) {
			w.Phase = PhaseWaitBeforeLift
			w.PhaseTimer = t.PreLiftWait
		}

	case PhaseWaitBeforeLift:
		w.IsNight = true
		w.Lift = 0
		w.SpawnEnabled = false
		w.PhaseTimer -= dt
		if w.PhaseTimer <= 0 {
			w.Phase = PhaseLiftingOpen
		}

	case PhaseLiftingOpen:
		w.IsNight = true
		w.SpawnEnabled = false
		w.Lift += t.LiftSpeed * dt
		if w.Lift >= 1 {
			w.Lift = 1
			w.Phase = PhaseHoldOpen
			w.PhaseTimer = t.OpenHold
		}

	case PhaseHoldOpen:
		w.IsNight = true
		w.SpawnEnabled = false
		w.Lift = 1
		w.PhaseTimer -= dt
		if w.PhaseTimer <= 0 {
			w.Phase = PhaseClosing
		}

	case PhaseClosing:
		w.IsNight = true
		w.SpawnEnabled = false
		w.Lift -= t.LiftSpeed * dt
		if w.Lift <= 0 {
			w.Lift = 0
			w.Phase = PhaseWaitAfterClose
			w.PhaseTimer = t.PostCloseWait
		}

	case PhaseWaitAfterClose:
		w.IsNight = true
		w.SpawnEnabled = false
		w.Lift = 0
		w.PhaseTimer -= dt
		if w.PhaseTimer <= 0 {
			w.Phase = PhaseFadeToDay
			w.BlendTarget = 0
		}

	case PhaseFadeToDay:
		// Traffic resumes before the light has finished fading.
		w.IsNight = true
		w.SpawnEnabled = true
		w.Lift = 0
		if w.NightBlend <= t.FadeCompleteEpsilon {
			w.Phase = PhaseDay
			w.IsNight = false
		}
	}
}

// frontsStopped reports whether every lane front sits on its stop line.
// Empty lanes have no front and never block.
func frontsStopped(w *World, fronts []LaneFront) bool {
	for _, f := range fronts {
		if math.Abs(f.Vehicle.X()-w.StopLine(f.Dir)) > w.Tuning.FrontTolerance {
			return false
		}
	}
	return true
}
