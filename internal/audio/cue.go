package audio

// Cue names a sound the scene can ask for.
type Cue int

const (
	CueRoad Cue = iota
	CueRiver
	CueBridge
	CueHorn
	CueCarHonk
	CueBusHonk
)

func (c Cue) String() string {
	switch c {
	case CueRoad:
		return "road"
	case CueRiver:
		return "river"
	case CueBridge:
		return "bridge"
	case CueHorn:
		return "horn"
	case CueCarHonk:
		return "car_honk"
	case CueBusHonk:
		return "bus_honk"
	}
	return "unknown"
}

// Looping reports whether the cue repeats until stopped.
func (c Cue) Looping() bool { return c == CueRoad || c == CueRiver }

// Gain is the per-cue level before the master volume.
func (c Cue) Gain() float64 {
	switch c {
	case CueRoad, CueRiver:
		return 0.55
	case CueBridge:
		return 0.70
	default:
		return 0.75
	}
}

// HonkVariants is the number of distinct honks per vehicle kind.
const HonkVariants = 3
