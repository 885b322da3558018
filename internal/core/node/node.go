// Package node provides the executable node variants of the flow engine.
//
// Every variant is a small computation over its current input map, the wall
// clock, and private internal state. Variants are selected by a type tag at
// construction time through the registry.
package node

import "time"

// Node is the contract every variant implements.
//
// Execute is the only behavior a variant must provide: it reads the current
// input map, advances internal state, and returns a fresh output map. The
// engine publishes those outputs via SetOutputs after a successful Execute;
// on failure the previous outputs stay visible to downstream edges.
type Node interface {
	ID() string
	Type() string

	// Execute produces this tick's outputs as a function of the current
	// inputs, the wall clock, and internal state.
	Execute(now time.Time) (map[string]any, error)

	// SetInput overwrites one input port; called by edge routing each tick.
	SetInput(port string, value any)

	// Output returns the last published value of an output port, or nil.
	Output(port string) any

	// SetOutputs publishes the outputs of a completed Execute.
	SetOutputs(outputs map[string]any)

	// ApplyUserInput sets or toggles a user-facing control. Controls whose
	// logical input port is fed by an edge are ignored: the edge wins.
	ApplyUserInput(control string, value any) error

	// MarkConnected records that an input port is fed by an edge.
	MarkConnected(port string)
	Connected(port string) bool

	// Snapshot returns an immutable view of the node's observable state.
	Snapshot() State
}

// State is a point-in-time copy of a node's observable state, handed to
// observers once per executed node per tick.
type State struct {
	Inputs  map[string]any `json:"inputs"`
	Outputs map[string]any `json:"outputs"`
	Data    map[string]any `json:"data"`
}

// Base carries the state shared by all variants: identity, display data, the
// input and output maps, and the set of edge-fed input ports. Variants embed
// it and provide Execute plus any controls of their own.
type Base struct {
	id        string
	typ       string
	data      map[string]any
	inputs    map[string]any
	outputs   map[string]any
	connected map[string]struct{}
}

func newBase(id, typ string, data map[string]any) Base {
	if data == nil {
		data = make(map[string]any)
	}
	return Base{
		id:        id,
		typ:       typ,
		data:      data,
		inputs:    make(map[string]any),
		outputs:   make(map[string]any),
		connected: make(map[string]struct{}),
	}
}

// ID returns the node's unique identifier.
func (b *Base) ID() string { return b.id }

// Type returns the node's type tag.
func (b *Base) Type() string { return b.typ }

// SetInput overwrites one input port value.
func (b *Base) SetInput(port string, value any) {
	b.inputs[port] = value
}

// Output returns the last published output value for a port, or nil.
func (b *Base) Output(port string) any {
	return b.outputs[port]
}

// SetOutputs replaces the published output map.
func (b *Base) SetOutputs(outputs map[string]any) {
	if outputs == nil {
		outputs = make(map[string]any)
	}
	b.outputs = outputs
}

// ApplyUserInput rejects unknown controls. Variants with controls shadow it.
func (b *Base) ApplyUserInput(control string, value any) error {
	return ErrUnknownControl
}

// MarkConnected records that an input port has at least one incoming edge.
func (b *Base) MarkConnected(port string) {
	b.connected[port] = struct{}{}
}

// Connected reports whether an input port is fed by an edge.
func (b *Base) Connected(port string) bool {
	_, ok := b.connected[port]
	return ok
}

// Snapshot copies the observable state so observers can hold it across ticks.
func (b *Base) Snapshot() State {
	return State{
		Inputs:  copyMap(b.inputs),
		Outputs: copyMap(b.outputs),
		Data:    copyMap(b.data),
	}
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if s, ok := v.([]any); ok {
			v = append([]any(nil), s...)
		}
		out[k] = v
	}
	return out
}

// boolInput reads an input port as a boolean, falling back to def when the
// port is absent or carries a non-boolean value.
func (b *Base) boolInput(port string, def bool) bool {
	v, ok := b.inputs[port]
	if !ok || v == nil {
		return def
	}
	if parsed, ok := asBool(v); ok {
		return parsed
	}
	return def
}

// floatInput reads an input port as a number, falling back to def.
func (b *Base) floatInput(port string, def float64) float64 {
	v, ok := b.inputs[port]
	if !ok || v == nil {
		return def
	}
	if parsed, ok := asFloat(v); ok {
		return parsed
	}
	return def
}

// rawInput reads an input port without coercion.
func (b *Base) rawInput(port string) (any, bool) {
	v, ok := b.inputs[port]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}
