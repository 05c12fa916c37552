package scene

// Tuning holds every constant of the simulation. DefaultTuning returns the
// values the scene was tuned with; config overrides individual fields.
type Tuning struct {
	// Night cycle
	LiftSpeed           float64 // lift units per second
	PreLiftWait         float64
	OpenHold            float64
	PostCloseWait       float64
	BlendDuration       float64
	FrontTolerance      float64 // how close a lane front must be to its stop line
	FadeCompleteEpsilon float64
	MaxStep             float64

	// Road
	StopLinePosX   float64
	StopLineNegX   float64
	StopEpsilon    float64 // vehicles within this of the line still count as before it
	SpawnEdge      float64
	DespawnX       float64
	DeckY          float64
	FreezeLift     float64 // above this lift vehicles hold position
	SpacingBuffer  float64
	MinVehicleGap  float64
	LaneMatchDelta float64

	// River
	BoatSpeed         float64
	BoatStartZ        float64
	BoatEndZ          float64
	BoatPassX         float64
	BoatY             float64
	BoatOpenThreshold float64
	HornWindow        float64

	// Bridge
	MaxLiftAngleDeg float64

	Seed uint64
}

func DefaultTuning() Tuning {
	return Tuning{
		LiftSpeed:           0.35,
		PreLiftWait:         3,
		OpenHold:            12,
		PostCloseWait:       1,
		BlendDuration:       3,
		FrontTolerance:      0.06,
		FadeCompleteEpsilon: 0.001,
		MaxStep:             0.05,

		StopLinePosX:   -9,
		StopLineNegX:   9,
		StopEpsilon:    0.001,
		SpawnEdge:      45,
		DespawnX:       33,
		DeckY:          2.05,
		FreezeLift:     0.05,
		SpacingBuffer:  0.8,
		MinVehicleGap:  3.2,
		LaneMatchDelta: 0.001,

		BoatSpeed:         7.5,
		BoatStartZ:        -55,
		BoatEndZ:          55,
		BoatPassX:         0,
		BoatY:             0.2,
		BoatOpenThreshold: 0.95,
		HornWindow:        0.25,

		MaxLiftAngleDeg: 75,

		Seed: 1337,
	}
}
