package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"bascule/internal/asset"
	"bascule/internal/geom"
)

// Lanes, inner to outer per direction. +X traffic keeps to positive Z.
var (
	lanesPos = [2]float64{1.4, 3.1}
	lanesNeg = [2]float64{-3.1, -1.4}
)

var carPalette = [5]mgl64.Vec3{
	{1.00, 0.85, 0.10}, // taxi yellow
	{0.85, 0.10, 0.10},
	{0.55, 0.58, 0.60},
	{0.15, 0.35, 0.80},
	{0.18, 0.18, 0.18},
}

const (
	carsPerDir   = 3
	clickVariety = 3
)

type Option func(*Scene)

func WithLogger(l zerolog.Logger) Option { return func(s *Scene) { s.log = l } }

func WithTuning(t Tuning) Option { return func(s *Scene) { s.tuning = t } }

// WithEventBus shares an existing bus, so subscribers can register before
// the scene is built.
func WithEventBus(b *EventBus) Option { return func(s *Scene) { s.bus = b } }

// WithAssetSource replaces the procedural vehicle and boat models.
func WithAssetSource(src asset.Source) Option { return func(s *Scene) { s.src = src } }

// Scene owns the world state and every actor. It is the single writer of
// World; all methods must be called from one goroutine.
type Scene struct {
	tuning Tuning
	log    zerolog.Logger
	bus    *EventBus
	src    asset.Source

	world    *World
	lib      *geom.Library
	cam      Camera
	actors   []Actor
	vehicles []*Vehicle
	bridge   *Bridge
	boat     *Boat

	hornPlayed bool
	lastBoatZ  float64
	clicks     map[Kind]int

	instances []Instance
}

// New builds every mesh and actor up front. Nothing is built lazily later.
func New(opts ...Option) *Scene {
	s := &Scene{
		tuning: DefaultTuning(),
		log:    zerolog.Nop(),
		src:    asset.Procedural{},
		cam:    NewCamera(),
		clicks: make(map[Kind]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.bus == nil {
		s.bus = NewEventBus()
	}
	s.world = newWorld(s.tuning)
	s.lib = geom.NewLibrary()

	s.bridge = newBridge(addBridgeMeshes(s.lib))
	s.actors = append(s.actors, s.bridge)

	loader := asset.NewLoader(s.src, s.log)
	models := make(map[string][]modelPart)
	sizes := make(map[string]float64)
	for _, spec := range asset.Specs() {
		models[spec.Name] = s.registerModel(loader.Prepare(spec))
		sizes[spec.Name] = spec.TargetSize
	}

	s.spawnTraffic(
		fleet{parts: models[asset.Car], length: sizes[asset.Car]},
		fleet{parts: models[asset.Bus], length: sizes[asset.Bus]},
	)

	s.boat = NewBoat()
	s.boat.parts = models[asset.Boat]
	s.actors = append(s.actors, s.boat)

	s.log.Debug().
		Int("meshes", s.lib.Len()).
		Int("vehicles", len(s.vehicles)).
		Msg("scene built")
	return s
}

func (s *Scene) registerModel(m *asset.Model) []modelPart {
	parts := make([]modelPart, 0, len(m.Parts))
	for i, p := range m.Parts {
		id := s.lib.Add(fmt.Sprintf("%s/%d", m.Name, i), p.Mesh)
		parts = append(parts, modelPart{
			mesh: id,
			diffuse: mgl64.Vec3{
				float64(p.Material.Diffuse[0]),
				float64(p.Material.Diffuse[1]),
				float64(p.Material.Diffuse[2]),
			},
			material: Material{
				SpecularStrength: float64(p.Material.Specular),
				SpecularPower:    float64(p.Material.Shininess),
			},
		})
	}
	return parts
}

// fleet is the shared model and length of one vehicle kind.
type fleet struct {
	parts  []modelPart
	length float64
}

func (s *Scene) spawnTraffic(car, bus fleet) {
	t := s.tuning

	colors := make([]mgl64.Vec3, carsPerDir*2)
	for i := range colors {
		colors[i] = carPalette[i%len(carPalette)]
	}
	geom.NewRand(t.Seed).Shuffle(len(colors), func(i, j int) { colors[i], colors[j] = colors[j], colors[i] })

	add := func(v *Vehicle, f fleet) {
		v.Position[1] = t.DeckY
		v.parts = f.parts
		s.vehicles = append(s.vehicles, v)
		s.actors = append(s.actors, v)
	}

	for k := 0; k < carsPerDir; k++ {
		v := NewVehicle(KindCar, lanesPos[k%2], +1, 5.8+0.3*float64(k), -t.SpawnEdge+12*float64(k), car.length)
		v.Tint = colors[k]
		add(v, car)
	}
	for k := 0; k < carsPerDir; k++ {
		v := NewVehicle(KindCar, lanesNeg[k%2], -1, 5.6+0.25*float64(k), t.SpawnEdge-12*float64(k), car.length)
		v.Tint = colors[carsPerDir+k]
		add(v, car)
	}
	add(NewVehicle(KindBus, lanesPos[0], +1, 4.2, -30, bus.length), bus)
	add(NewVehicle(KindBus, lanesNeg[1], -1, 4.0, 30, bus.length), bus)
}

func (s *Scene) Events() *EventBus     { return s.bus }
func (s *Scene) Library() *geom.Library { return s.lib }
func (s *Scene) Camera() *Camera        { return &s.cam }
func (s *Scene) Vehicles() []*Vehicle   { return s.vehicles }
func (s *Scene) Boat() *Boat            { return s.boat }
func (s *Scene) Bridge() *Bridge        { return s.bridge }
func (s *Scene) Actors() []Actor        { return s.actors }

// World returns a snapshot of the simulation state.
func (s *Scene) World() World { return *s.world }

// CanTrigger reports whether a night sequence may start now.
func (s *Scene) CanTrigger() bool { return s.world.Phase == PhaseDay }

// Trigger starts a night sequence. It is ignored while one is running.
func (s *Scene) Trigger() bool {
	if !beginNight(s.world) {
		s.log.Debug().Stringer("phase", s.world.Phase).Msg("night trigger ignored")
		return false
	}
	s.emitPhaseEdge(PhaseDay, s.world.Phase)
	s.bus.Emit(Event{Type: EventNightStarted, Time: s.world.Time})
	s.log.Info().Float64("t", s.world.Time).Msg("night sequence started")
	return true
}

// Tick advances the simulation by dt seconds, clamped to [0, MaxStep].
func (s *Scene) Tick(dt float64) {
	w := s.world
	dt = geom.ClampF(dt, 0, w.Tuning.MaxStep)
	w.Time += dt

	prev := w.Phase
	advanceBlend(w, dt)

	var fronts []LaneFront
	if w.Phase == PhaseStoppingTraffic {
		fronts = LaneFronts(s.vehicles, w.Tuning)
	}
	stepNight(w, dt, fronts)
	if w.Phase != prev {
		s.emitPhaseEdge(prev, w.Phase)
	}

	w.WaterOffset = scrollWater(w.WaterOffset, dt)

	boatWasActive, boatHadPassed := s.boat.active, s.boat.passed
	for _, a := range s.actors {
		a.Update(w, dt)
	}
	if !boatWasActive && s.boat.active {
		s.bus.Emit(Event{Type: EventBoatStarted, Time: w.Time})
	}
	if !boatHadPassed && s.boat.passed {
		s.bus.Emit(Event{Type: EventBoatPassed, Time: w.Time})
	}
	s.checkHorn()

	EnforceSpacing(s.vehicles, w.Tuning)
}

func (s *Scene) emitPhaseEdge(from, to Phase) {
	t := s.world.Time
	s.bus.Emit(Event{Type: EventPhaseExited, Phase: from, Time: t})
	s.bus.Emit(Event{Type: EventPhaseEntered, Phase: to, Time: t})
	s.log.Debug().Stringer("from", from).Stringer("to", to).Msg("phase")

	if from == PhaseFadeToDay && to == PhaseDay {
		s.bus.Emit(Event{Type: EventNightCompleted, Time: t})
		s.log.Info().Float64("t", t).Msg("night sequence completed")
	}
}

// checkHorn sounds the boat horn once per transit, when it crosses the
// bridge axis.
func (s *Scene) checkHorn() {
	if !s.boat.active {
		s.hornPlayed = false
		s.lastBoatZ = 0
		return
	}
	z := s.boat.Position[2]
	if !s.hornPlayed && ((s.lastBoatZ < 0 && z >= 0) || math.Abs(z) < s.world.Tuning.HornWindow) {
		s.hornPlayed = true
		s.bus.Emit(Event{Type: EventBoatHorn, Kind: KindBoat, Time: s.world.Time})
	}
	s.lastBoatZ = z
}

// Frame assembles the draw data for the current state. The returned
// instance slice is reused by the next call.
func (s *Scene) Frame(aspect float64) Frame {
	s.instances = s.instances[:0]
	for _, a := range s.actors {
		s.instances = a.AppendInstances(s.instances)
	}
	w := s.world
	return Frame{
		View:        s.cam.View(),
		Proj:        s.cam.Proj(aspect),
		Eye:         s.cam.Eye(),
		Light:       BlendLighting(w.NightBlend),
		Sky:         SkyColor(w.NightBlend),
		WaterOffset: w.WaterOffset,
		Night:       w.NightBlend,
		Instances:   s.instances,
	}
}

// Pick returns the vehicle under the window point, or nil.
func (s *Scene) Pick(x, y float64, w, h int) *Vehicle {
	return PickVehicle(s.vehicles, &s.cam, x, y, w, h)
}

// HandleClick picks a vehicle and emits a hit with a per-kind cycling
// variant. It reports whether anything was hit.
func (s *Scene) HandleClick(x, y float64, w, h int) bool {
	v := s.Pick(x, y, w, h)
	if v == nil {
		return false
	}
	variant := s.clicks[v.kind]
	s.clicks[v.kind] = (variant + 1) % clickVariety
	s.bus.Emit(Event{Type: EventVehicleHit, Kind: v.kind, Variant: variant, Time: s.world.Time})
	s.log.Debug().Stringer("kind", v.kind).Int("variant", variant).Msg("vehicle hit")
	return true
}
