package node

import "time"

// Add sums inputs "a" and "b"; missing operands read as 0.
type Add struct{ Base }

func NewAdd(id string, data map[string]any) *Add {
	return &Add{Base: newBase(id, TypeAdd, data)}
}

func (n *Add) Execute(now time.Time) (map[string]any, error) {
	return map[string]any{"output": n.floatInput("a", 0) + n.floatInput("b", 0)}, nil
}

// Subtract computes a - b.
type Subtract struct{ Base }

func NewSubtract(id string, data map[string]any) *Subtract {
	return &Subtract{Base: newBase(id, TypeSubtract, data)}
}

func (n *Subtract) Execute(now time.Time) (map[string]any, error) {
	return map[string]any{"output": n.floatInput("a", 0) - n.floatInput("b", 0)}, nil
}

// Comparison modes for Comparator.
const (
	CompareGreater = ">"
	CompareLess    = "<"
	CompareEqual   = "=="
)

// Comparator emits a>b, a<b, or a==b depending on its mode; numeric inputs
// default to 0. The mode is a user control, never edge-fed.
type Comparator struct {
	Base
	mode string
}

func NewComparator(id string, data map[string]any) *Comparator {
	return &Comparator{Base: newBase(id, TypeComparator, data), mode: CompareGreater}
}

func (n *Comparator) Execute(now time.Time) (map[string]any, error) {
	a := n.floatInput("a", 0)
	b := n.floatInput("b", 0)

	var result bool
	switch n.mode {
	case CompareLess:
		result = a < b
	case CompareEqual:
		result = a == b
	default:
		result = a > b
	}
	return map[string]any{"output": result}, nil
}

func (n *Comparator) ApplyUserInput(control string, value any) error {
	if control != "mode" {
		return ErrUnknownControl
	}
	mode, ok := value.(string)
	if !ok || (mode != CompareGreater && mode != CompareLess && mode != CompareEqual) {
		return ErrInvalidValue
	}
	n.mode = mode
	return nil
}

// BoolGate passes "signal" through only while "enable" is true; while the
// gate is closed it emits nil.
type BoolGate struct{ Base }

func NewBoolGate(id string, data map[string]any) *BoolGate {
	return &BoolGate{Base: newBase(id, TypeBoolGate, data)}
}

func (n *BoolGate) Execute(now time.Time) (map[string]any, error) {
	if !n.boolInput("enable", false) {
		return map[string]any{"output": nil}, nil
	}
	signal, _ := n.rawInput("signal")
	return map[string]any{"output": signal}, nil
}

// Cap clamps "input" to [min,max]. Both bounds are live-configurable via
// input ports or user controls.
type Cap struct {
	Base
	min float64
	max float64
}

func NewCap(id string, data map[string]any) *Cap {
	return &Cap{Base: newBase(id, TypeCap, data), min: 0, max: 100}
}

func (n *Cap) Execute(now time.Time) (map[string]any, error) {
	lo := n.floatInput("min", n.min)
	hi := n.floatInput("max", n.max)
	v := n.floatInput("input", 50)
	return map[string]any{"output": clamp(v, lo, hi)}, nil
}

func (n *Cap) ApplyUserInput(control string, value any) error {
	v, ok := asFloat(value)
	if !ok {
		return ErrInvalidValue
	}
	switch control {
	case "min":
		if n.Connected("min") {
			return nil
		}
		n.min = v
	case "max":
		if n.Connected("max") {
			return nil
		}
		n.max = v
	default:
		return ErrUnknownControl
	}
	return nil
}
