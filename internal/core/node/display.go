package node

import "time"

// NumberDisplay is a sink: it copies its numeric input into display data and
// emits no outputs.
type NumberDisplay struct{ Base }

func NewNumberDisplay(id string, data map[string]any) *NumberDisplay {
	return &NumberDisplay{Base: newBase(id, TypeNumberDisplay, data)}
}

func (n *NumberDisplay) Execute(now time.Time) (map[string]any, error) {
	n.data["displayValue"] = n.floatInput("value", 0)
	return map[string]any{}, nil
}

// BoolDisplay is a sink for boolean values.
type BoolDisplay struct{ Base }

func NewBoolDisplay(id string, data map[string]any) *BoolDisplay {
	return &BoolDisplay{Base: newBase(id, TypeBoolDisplay, data)}
}

func (n *BoolDisplay) Execute(now time.Time) (map[string]any, error) {
	n.data["displayValue"] = n.boolInput("value", false)
	return map[string]any{}, nil
}

// historyCapacity bounds the ring of samples kept for display.
const historyCapacity = 50

// HistoryDisplay samples its input every sampleRate seconds into a bounded
// history buffer written to display data. Oldest samples are dropped past
// capacity. It emits no outputs.
type HistoryDisplay struct {
	Base
	history    []any
	sampleRate float64 // seconds
	lastSample time.Time
}

func NewHistoryDisplay(id string, data map[string]any, now time.Time) Node {
	return &HistoryDisplay{
		Base:       newBase(id, TypeHistoryDisplay, data),
		sampleRate: 0.5,
		lastSample: now,
	}
}

func (n *HistoryDisplay) Execute(now time.Time) (map[string]any, error) {
	n.sampleRate = n.floatInput("sampleRate", n.sampleRate)

	if v, ok := n.rawInput("value"); ok && now.Sub(n.lastSample).Seconds() >= n.sampleRate {
		n.history = append(n.history, v)
		if len(n.history) > historyCapacity {
			n.history = n.history[1:]
		}
		n.lastSample = now
	}

	n.data["history"] = append([]any(nil), n.history...)
	return map[string]any{}, nil
}

func (n *HistoryDisplay) ApplyUserInput(control string, value any) error {
	if control != "sampleRate" {
		return ErrUnknownControl
	}
	if n.Connected("sampleRate") {
		return nil
	}
	v, ok := asFloat(value)
	if !ok || v < 0 {
		return ErrInvalidValue
	}
	n.sampleRate = v
	return nil
}
