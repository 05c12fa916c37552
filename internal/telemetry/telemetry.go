package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"bascule/internal/scene"
)

const instrumentationName = "bascule/internal/telemetry"

// Recorder turns scene events into OpenTelemetry measurements.
type Recorder struct {
	transitions metric.Int64Counter
	nights      metric.Int64Counter
	boats       metric.Int64Counter
	horns       metric.Int64Counter
	hits        metric.Int64Counter
	nightLength metric.Float64Histogram

	nightStart float64
}

// New creates the instruments on mp. A nil provider uses the global one,
// which is a no-op unless main installed an SDK.
func New(mp metric.MeterProvider) (*Recorder, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	m := mp.Meter(instrumentationName)
	r := &Recorder{}

	var err error
	r.transitions, err = m.Int64Counter(
		"bascule.phase.transitions",
		metric.WithDescription("Night-cycle phases entered"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transitions counter: %w", err)
	}

	r.nights, err = m.Int64Counter(
		"bascule.nights",
		metric.WithDescription("Night sequences by stage"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating nights counter: %w", err)
	}

	r.boats, err = m.Int64Counter(
		"bascule.boat.transits",
		metric.WithDescription("Boat transits by stage"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating boat counter: %w", err)
	}

	r.horns, err = m.Int64Counter(
		"bascule.boat.horns",
		metric.WithDescription("Boat horns sounded"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating horn counter: %w", err)
	}

	r.hits, err = m.Int64Counter(
		"bascule.vehicle.hits",
		metric.WithDescription("Vehicles picked by the user"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating hits counter: %w", err)
	}

	r.nightLength, err = m.Float64Histogram(
		"bascule.night.duration",
		metric.WithDescription("Simulated time from night trigger back to day"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating night duration histogram: %w", err)
	}

	return r, nil
}

// Attach subscribes the recorder to every scene event.
func (r *Recorder) Attach(bus *scene.EventBus) {
	bus.SubscribeAll(r.Record)
}

// Record measures a single event.
func (r *Recorder) Record(e scene.Event) {
	ctx := context.Background()
	switch e.Type {
	case scene.EventPhaseEntered:
		r.transitions.Add(ctx, 1, metric.WithAttributes(attribute.String("phase", e.Phase.String())))
	case scene.EventNightStarted:
		r.nightStart = e.Time
		r.nights.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", "started")))
	case scene.EventNightCompleted:
		r.nights.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", "completed")))
		r.nightLength.Record(ctx, e.Time-r.nightStart)
	case scene.EventBoatStarted:
		r.boats.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", "started")))
	case scene.EventBoatPassed:
		r.boats.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", "passed")))
	case scene.EventBoatHorn:
		r.horns.Add(ctx, 1)
	case scene.EventVehicleHit:
		r.hits.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", e.Kind.String())))
	}
}
