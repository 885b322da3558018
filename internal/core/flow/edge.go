// Package flow provides edge definitions
package flow

// Edge represents a connection from a source node's output handle to a
// target node's input handle.
type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"` // Source node ID
	Target       string `json:"target"` // Target node ID
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
}

// Validate ensures edge integrity
func (e *Edge) Validate() error {
	if e.Source == "" {
		return ErrInvalidSource
	}
	if e.Target == "" {
		return ErrInvalidTarget
	}
	return nil
}

// OutputKey returns the source output port this edge reads from. Handles use
// the "out-<port>" token form; an edge without a source handle reads the
// conventional primary output.
func (e *Edge) OutputKey() string {
	return OutputKey(e.SourceHandle)
}

// InputKey returns the target input port this edge writes to.
func (e *Edge) InputKey() string {
	return InputKey(e.TargetHandle)
}
