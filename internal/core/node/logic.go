package node

import "time"

// And is a logical AND gate over inputs "a" and "b"; missing inputs read as
// false.
type And struct{ Base }

func NewAnd(id string, data map[string]any) *And {
	return &And{Base: newBase(id, TypeAnd, data)}
}

func (n *And) Execute(now time.Time) (map[string]any, error) {
	return map[string]any{"output": n.boolInput("a", false) && n.boolInput("b", false)}, nil
}

// Or is a logical OR gate.
type Or struct{ Base }

func NewOr(id string, data map[string]any) *Or {
	return &Or{Base: newBase(id, TypeOr, data)}
}

func (n *Or) Execute(now time.Time) (map[string]any, error) {
	return map[string]any{"output": n.boolInput("a", false) || n.boolInput("b", false)}, nil
}

// Xor is a logical XOR gate.
type Xor struct{ Base }

func NewXor(id string, data map[string]any) *Xor {
	return &Xor{Base: newBase(id, TypeXor, data)}
}

func (n *Xor) Execute(now time.Time) (map[string]any, error) {
	return map[string]any{"output": n.boolInput("a", false) != n.boolInput("b", false)}, nil
}

// Not inverts its "input" port.
type Not struct{ Base }

func NewNot(id string, data map[string]any) *Not {
	return &Not{Base: newBase(id, TypeNot, data)}
}

func (n *Not) Execute(now time.Time) (map[string]any, error) {
	return map[string]any{"output": !n.boolInput("input", false)}, nil
}

// Edge modes for the toggle flip-flop.
const (
	EdgeRising  = "rising"
	EdgeFalling = "falling"
)

// Toggle is an edge-triggered flip-flop: it flips its stored output on a
// rising or falling transition of "input", depending on the edge mode. It
// keeps the previous sample across ticks to detect the transition.
type Toggle struct {
	Base
	edgeMode string
	prev     bool
	state    bool
}

func NewToggle(id string, data map[string]any) *Toggle {
	return &Toggle{Base: newBase(id, TypeToggle, data), edgeMode: EdgeRising}
}

func (n *Toggle) Execute(now time.Time) (map[string]any, error) {
	cur := n.boolInput("input", false)
	switch n.edgeMode {
	case EdgeFalling:
		if n.prev && !cur {
			n.state = !n.state
		}
	default:
		if !n.prev && cur {
			n.state = !n.state
		}
	}
	n.prev = cur
	return map[string]any{"output": n.state}, nil
}

func (n *Toggle) ApplyUserInput(control string, value any) error {
	if control != "edgeMode" {
		return ErrUnknownControl
	}
	mode, ok := value.(string)
	if !ok || (mode != EdgeRising && mode != EdgeFalling) {
		return ErrInvalidValue
	}
	n.edgeMode = mode
	return nil
}
