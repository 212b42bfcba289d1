// Package events provides the in-process event bus connecting the tool
// handlers to observability subscribers (metrics, logging).
package events

import (
	"github.com/kelindar/event"
)

// Bus wraps the kelindar/event dispatcher for event broadcasting.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus.
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers.
// Usage: bus.Publish(PatternAppliedEvent{...})
func (b *Bus) Publish(ev Event) {
	// kelindar/event dispatches by concrete type, so each variant goes
	// through the generic Publish with its own type.
	switch e := ev.(type) {
	case PatternAppliedEvent:
		event.Publish(b.dispatcher, e)
	case DeviceCallFailedEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe subscribes to events with a handler function. The handler's
// parameter type determines which events it receives.
// Returns an unsubscribe function.
// Usage: unsub := bus.Subscribe(func(e PatternAppliedEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(PatternAppliedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(DeviceCallFailedEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		// No-op for unrecognized handler types
		return func() {}
	}
}
