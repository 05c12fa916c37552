package scene

type EventType int

const (
	EventPhaseEntered EventType = iota
	EventPhaseExited
	EventNightStarted
	EventNightCompleted
	EventBoatStarted
	EventBoatHorn
	EventBoatPassed
	EventVehicleHit
)

type Event struct {
	Type    EventType
	Phase   Phase // phase edges
	Kind    Kind  // vehicle hits
	Variant int   // cycles 0..2 per kind on hits
	Time    float64
}

type EventHandler func(Event)

// EventBus delivers events synchronously on the simulation thread.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// SubscribeAll registers fn for every event type.
func (eb *EventBus) SubscribeAll(fn EventHandler) {
	for t := EventPhaseEntered; t <= EventVehicleHit; t++ {
		eb.Subscribe(t, fn)
	}
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
