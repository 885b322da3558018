package node

import "time"

// Dial is a virtual dial/slider input in [0,100]. Its value changes only
// through user input and passes through as the "value" output.
type Dial struct {
	Base
	value float64
}

// NewDial creates a dial at mid-range.
func NewDial(id string, data map[string]any) *Dial {
	d := &Dial{Base: newBase(id, TypeDial, data), value: 50}
	d.SetOutputs(map[string]any{"value": d.value})
	return d
}

func (d *Dial) Execute(now time.Time) (map[string]any, error) {
	return map[string]any{"value": d.value}, nil
}

func (d *Dial) ApplyUserInput(control string, value any) error {
	if control != "value" {
		return ErrUnknownControl
	}
	v, ok := asFloat(value)
	if !ok {
		return ErrInvalidValue
	}
	d.value = clamp(v, 0, 100)
	return nil
}

// Switch is a virtual on/off switch. Its state changes only through user
// input and passes through as the "value" output.
type Switch struct {
	Base
	on bool
}

// NewSwitch creates a switch in the off position.
func NewSwitch(id string, data map[string]any) *Switch {
	s := &Switch{Base: newBase(id, TypeSwitch, data)}
	s.SetOutputs(map[string]any{"value": s.on})
	return s
}

func (s *Switch) Execute(now time.Time) (map[string]any, error) {
	return map[string]any{"value": s.on}, nil
}

func (s *Switch) ApplyUserInput(control string, value any) error {
	if control != "value" {
		return ErrUnknownControl
	}
	v, ok := asBool(value)
	if !ok {
		return ErrInvalidValue
	}
	s.on = v
	return nil
}
