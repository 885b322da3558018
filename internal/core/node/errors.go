// Package node defines domain-specific errors
package node

import "errors"

var (
	ErrUnknownType    = errors.New("unknown node type")
	ErrUnknownControl = errors.New("unknown control")
	ErrInvalidValue   = errors.New("invalid control value")
)
