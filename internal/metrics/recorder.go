package metrics

import (
	"github.com/smazurov/lednode/internal/events"
)

// Recorder subscribes to the event bus and translates tool and device
// events into Prometheus metrics, keeping the handlers free of any
// direct metrics dependency.
type Recorder struct {
	unsubs []func()
}

// NewRecorder creates a recorder attached to the given bus.
func NewRecorder(bus *events.Bus) *Recorder {
	r := &Recorder{}

	r.unsubs = append(r.unsubs, bus.Subscribe(func(e events.PatternAppliedEvent) {
		RecordToolInvocation(e.Tool, "ok")
		ObserveDeviceCallDuration(e.Operation, e.Duration)
	}))

	r.unsubs = append(r.unsubs, bus.Subscribe(func(e events.DeviceCallFailedEvent) {
		RecordToolInvocation(e.Tool, "error")
		RecordDeviceCallFailure(e.Operation, e.Code)
	}))

	return r
}

// Stop detaches the recorder from the bus.
func (r *Recorder) Stop() {
	for _, unsub := range r.unsubs {
		unsub()
	}
	r.unsubs = nil
}
