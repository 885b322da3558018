package node

import "time"

// PulseTimer generates a free-running square wave once enabled: off for
// offDuration, on for onDuration, measured against the wall clock. Enabling
// after being disabled restarts the wave in the off phase. Durations are
// live-updatable from inputs or user controls.
type PulseTimer struct {
	Base
	onDuration  float64 // seconds
	offDuration float64
	enabled     bool
	output      bool
	lastToggle  time.Time
}

func NewPulseTimer(id string, data map[string]any, now time.Time) Node {
	return &PulseTimer{
		Base:        newBase(id, TypePulseTimer, data),
		onDuration:  2.0,
		offDuration: 2.0,
		lastToggle:  now,
	}
}

func (n *PulseTimer) Execute(now time.Time) (map[string]any, error) {
	n.onDuration = n.floatInput("onDuration", n.onDuration)
	n.offDuration = n.floatInput("offDuration", n.offDuration)
	enabled := n.boolInput("enable", n.enabled)

	// A fresh enable restarts the wave in the off phase.
	if enabled && !n.enabled {
		n.output = false
		n.lastToggle = now
	}
	n.enabled = enabled

	if !n.enabled {
		n.output = false
		return map[string]any{"output": n.output}, nil
	}

	elapsed := now.Sub(n.lastToggle).Seconds()
	if !n.output && elapsed >= n.offDuration {
		n.output = true
		n.lastToggle = now
	} else if n.output && elapsed >= n.onDuration {
		n.output = false
		n.lastToggle = now
	}
	return map[string]any{"output": n.output}, nil
}

func (n *PulseTimer) ApplyUserInput(control string, value any) error {
	switch control {
	case "onDuration":
		if n.Connected("onDuration") {
			return nil
		}
		v, ok := asFloat(value)
		if !ok {
			return ErrInvalidValue
		}
		n.onDuration = v
	case "offDuration":
		if n.Connected("offDuration") {
			return nil
		}
		v, ok := asFloat(value)
		if !ok {
			return ErrInvalidValue
		}
		n.offDuration = v
	case "enable", "enabled":
		if n.Connected("enable") {
			return nil
		}
		v, ok := asBool(value)
		if !ok {
			return ErrInvalidValue
		}
		n.enabled = v
	default:
		return ErrUnknownControl
	}
	return nil
}

// delayedValue is one queued sample waiting out its delay.
type delayedValue struct {
	due   time.Time
	value any
}

// DelayTimer delays a value stream by a configurable number of seconds. Each
// incoming value is stamped and queued; every elapsed entry is drained per
// tick and the last one wins, so values coalesce under slow tick rates.
type DelayTimer struct {
	Base
	delay float64 // seconds
	queue []delayedValue
}

func NewDelayTimer(id string, data map[string]any) *DelayTimer {
	return &DelayTimer{Base: newBase(id, TypeDelayTimer, data), delay: 1.0}
}

func (n *DelayTimer) Execute(now time.Time) (map[string]any, error) {
	n.delay = n.floatInput("delay", n.delay)

	if v, ok := n.rawInput("input"); ok {
		due := now.Add(time.Duration(n.delay * float64(time.Second)))
		n.queue = append(n.queue, delayedValue{due: due, value: v})
	}

	var output any
	for len(n.queue) > 0 && !n.queue[0].due.After(now) {
		output = n.queue[0].value
		n.queue = n.queue[1:]
	}
	return map[string]any{"output": output}, nil
}

func (n *DelayTimer) ApplyUserInput(control string, value any) error {
	if control != "delay" {
		return ErrUnknownControl
	}
	if n.Connected("delay") {
		return nil
	}
	v, ok := asFloat(value)
	if !ok || v < 0 {
		return ErrInvalidValue
	}
	n.delay = v
	return nil
}
