package node

import (
	"fmt"
	"sort"
	"time"
)

// Type tags as they appear in flow descriptions.
const (
	TypeDial           = "dialNode"
	TypeSwitch         = "switchNode"
	TypeMotor          = "motorNode"
	TypeNumberDisplay  = "numberDisplayNode"
	TypeBoolDisplay    = "boolDisplayNode"
	TypeAnd            = "andNode"
	TypeOr             = "orNode"
	TypeXor            = "xorNode"
	TypeNot            = "notNode"
	TypeToggle         = "toggleNode"
	TypePulseTimer     = "pulseTimerNode"
	TypeDelayTimer     = "delayTimerNode"
	TypeComparator     = "comparatorNode"
	TypeBoolGate       = "boolGateNode"
	TypeCap            = "capNode"
	TypeAdd            = "addNode"
	TypeSubtract       = "subtractNode"
	TypeHistoryDisplay = "historyDisplayNode"
	TypeIntegrator     = "integratorNode"
	TypePController    = "pControllerNode"
)

// Constructor builds a variant instance. now seeds variant timers so that a
// freshly loaded flow measures durations from its load time.
type Constructor func(id string, data map[string]any, now time.Time) Node

var registry = map[string]Constructor{
	TypeDial:           func(id string, data map[string]any, _ time.Time) Node { return NewDial(id, data) },
	TypeSwitch:         func(id string, data map[string]any, _ time.Time) Node { return NewSwitch(id, data) },
	TypeMotor:          func(id string, data map[string]any, _ time.Time) Node { return NewMotor(id, data) },
	TypeNumberDisplay:  func(id string, data map[string]any, _ time.Time) Node { return NewNumberDisplay(id, data) },
	TypeBoolDisplay:    func(id string, data map[string]any, _ time.Time) Node { return NewBoolDisplay(id, data) },
	TypeAnd:            func(id string, data map[string]any, _ time.Time) Node { return NewAnd(id, data) },
	TypeOr:             func(id string, data map[string]any, _ time.Time) Node { return NewOr(id, data) },
	TypeXor:            func(id string, data map[string]any, _ time.Time) Node { return NewXor(id, data) },
	TypeNot:            func(id string, data map[string]any, _ time.Time) Node { return NewNot(id, data) },
	TypeToggle:         func(id string, data map[string]any, _ time.Time) Node { return NewToggle(id, data) },
	TypePulseTimer:     NewPulseTimer,
	TypeDelayTimer:     func(id string, data map[string]any, _ time.Time) Node { return NewDelayTimer(id, data) },
	TypeComparator:     func(id string, data map[string]any, _ time.Time) Node { return NewComparator(id, data) },
	TypeBoolGate:       func(id string, data map[string]any, _ time.Time) Node { return NewBoolGate(id, data) },
	TypeCap:            func(id string, data map[string]any, _ time.Time) Node { return NewCap(id, data) },
	TypeAdd:            func(id string, data map[string]any, _ time.Time) Node { return NewAdd(id, data) },
	TypeSubtract:       func(id string, data map[string]any, _ time.Time) Node { return NewSubtract(id, data) },
	TypeHistoryDisplay: NewHistoryDisplay,
	TypeIntegrator:     NewIntegrator,
	TypePController:    func(id string, data map[string]any, _ time.Time) Node { return NewPController(id, data) },
}

// New constructs a node of the given type. Unknown type tags return
// ErrUnknownType; the loader skips those nodes and counts them.
func New(typ, id string, data map[string]any, now time.Time) (Node, error) {
	c, ok := registry[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
	return c(id, data, now), nil
}

// Types returns the registered type tags, sorted.
func Types() []string {
	out := make([]string, 0, len(registry))
	for t := range registry {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
