// Package flow defines domain-specific errors
package flow

import "errors"

// Domain errors - defined once, used everywhere
var (
	// Flow errors
	ErrNilFlow      = errors.New("flow cannot be nil")
	ErrFlowNotFound = errors.New("flow not found")
	ErrEmptyFlowID  = errors.New("flow id cannot be empty")

	// Node errors
	ErrNilNode       = errors.New("node cannot be nil")
	ErrInvalidNodeID = errors.New("invalid node ID")
	ErrNodeNotFound  = errors.New("node not found")
	ErrDuplicateNode = errors.New("duplicate node ID")

	// Edge errors
	ErrNilEdge       = errors.New("edge cannot be nil")
	ErrInvalidSource = errors.New("invalid source node")
	ErrInvalidTarget = errors.New("invalid target node")
	ErrDuplicateEdge = errors.New("duplicate edge")
)
