package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventInstantiated = "instantiated"
	EventRuleFired    = "rule_fired"
)

// InstantiatedEvent is pushed after Instantiate builds a composite.
type InstantiatedEvent struct {
	Root      Entity
	Prototype Entity
	Parts     []Entity
}

// RuleFiredEvent is pushed each time a reactive rule runs.
type RuleFiredEvent struct {
	Rule   string
	Entity Entity
}

// EventQueue is a simple FIFO queue. Events not drained by the end of a
// frame are dropped.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
