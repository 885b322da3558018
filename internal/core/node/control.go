package node

import (
	"math"
	"time"
)

// Motor merges edge-fed or user-set on/off, direction, and speed into a
// clamped output triple. It is purely logical here: commanding a physical
// actuator is an extension point behind the hardware provider interface.
type Motor struct {
	Base
	onOff   bool
	forward bool
	speed   float64
}

func NewMotor(id string, data map[string]any) *Motor {
	return &Motor{Base: newBase(id, TypeMotor, data), forward: true, speed: 50}
}

func (n *Motor) Execute(now time.Time) (map[string]any, error) {
	onOff := n.boolInput("onOff", n.onOff)
	forward := n.boolInput("forward", n.forward)
	speed := clamp(n.floatInput("speed", n.speed), 0, 100)

	return map[string]any{
		"onOff":   onOff,
		"forward": forward,
		"speed":   speed,
	}, nil
}

func (n *Motor) ApplyUserInput(control string, value any) error {
	switch control {
	case "onOff":
		if n.Connected("onOff") {
			return nil
		}
		v, ok := asBool(value)
		if !ok {
			return ErrInvalidValue
		}
		n.onOff = v
	case "forward":
		if n.Connected("forward") {
			return nil
		}
		v, ok := asBool(value)
		if !ok {
			return ErrInvalidValue
		}
		n.forward = v
	case "speed":
		if n.Connected("speed") {
			return nil
		}
		v, ok := asFloat(value)
		if !ok {
			return ErrInvalidValue
		}
		n.speed = clamp(v, 0, 100)
	default:
		return ErrUnknownControl
	}
	return nil
}

// integratorRange bounds the accumulator symmetrically.
const integratorRange = 1000.0

// Integrator accumulates input x elapsed-seconds while enabled, clamped to a
// symmetric range. A reset input zeroes it; disabling freezes it.
type Integrator struct {
	Base
	accumulator float64
	enabled     bool
	lastUpdate  time.Time
}

func NewIntegrator(id string, data map[string]any, now time.Time) Node {
	return &Integrator{
		Base:       newBase(id, TypeIntegrator, data),
		enabled:    true,
		lastUpdate: now,
	}
}

func (n *Integrator) Execute(now time.Time) (map[string]any, error) {
	input := n.floatInput("input", 0)
	enabled := n.boolInput("enabled", n.enabled)
	reset := n.boolInput("reset", false)

	switch {
	case reset:
		n.accumulator = 0
	case enabled:
		dt := now.Sub(n.lastUpdate).Seconds()
		n.accumulator = clamp(n.accumulator+input*dt, -integratorRange, integratorRange)
		n.lastUpdate = now
	}
	if !enabled {
		// Frozen. Restarting must not integrate over the frozen span.
		n.lastUpdate = now
	}
	n.enabled = enabled

	return map[string]any{"output": math.Round(n.accumulator)}, nil
}

func (n *Integrator) ApplyUserInput(control string, value any) error {
	switch control {
	case "enabled":
		if n.Connected("enabled") {
			return nil
		}
		v, ok := asBool(value)
		if !ok {
			return ErrInvalidValue
		}
		n.enabled = v
	case "reset":
		if n.Connected("reset") {
			return nil
		}
		n.accumulator = 0
	default:
		return ErrUnknownControl
	}
	return nil
}

// pControllerRange bounds the controller output symmetrically.
const pControllerRange = 100.0

// PController is a proportional controller: while enabled its output is
// gain x (setpoint - currentValue), rounded and clamped; 0 while disabled.
type PController struct {
	Base
	enabled  bool
	gain     float64
	setpoint float64
	current  float64
}

func NewPController(id string, data map[string]any) *PController {
	return &PController{
		Base:     newBase(id, TypePController, data),
		gain:     1.0,
		setpoint: 50,
	}
}

func (n *PController) Execute(now time.Time) (map[string]any, error) {
	n.enabled = n.boolInput("enabled", n.enabled)
	n.gain = n.floatInput("pGain", n.gain)
	n.setpoint = n.floatInput("setpoint", n.setpoint)
	n.current = n.floatInput("currentValue", n.current)

	var output float64
	if n.enabled {
		output = clamp(math.Round(n.gain*(n.setpoint-n.current)), -pControllerRange, pControllerRange)
	}
	return map[string]any{"output": output}, nil
}

func (n *PController) ApplyUserInput(control string, value any) error {
	switch control {
	case "enabled":
		if n.Connected("enabled") {
			return nil
		}
		v, ok := asBool(value)
		if !ok {
			return ErrInvalidValue
		}
		n.enabled = v
	case "pGain":
		v, ok := asFloat(value)
		if !ok {
			return ErrInvalidValue
		}
		n.gain = v
	default:
		return ErrUnknownControl
	}
	return nil
}
