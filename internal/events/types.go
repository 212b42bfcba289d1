package events

// Event type constants for kelindar/event.
const (
	TypePatternApplied uint32 = iota + 1
	TypeDeviceCallFailed
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// PatternAppliedEvent is published after a tool successfully changes or
// reads the device pattern.
type PatternAppliedEvent struct {
	Tool      string  `json:"tool"`
	Operation string  `json:"operation"` // "set" or "get"
	Pattern   string  `json:"pattern"`
	Duration  float64 `json:"duration_seconds"`
}

// Type returns the event type identifier for PatternAppliedEvent.
func (e PatternAppliedEvent) Type() uint32 { return TypePatternApplied }

// DeviceCallFailedEvent is published when a device controller call fails.
type DeviceCallFailedEvent struct {
	Tool      string `json:"tool"`
	Operation string `json:"operation"`
	Code      string `json:"code"`
	Error     string `json:"error"`
}

// Type returns the event type identifier for DeviceCallFailedEvent.
func (e DeviceCallFailedEvent) Type() uint32 { return TypeDeviceCallFailed }
