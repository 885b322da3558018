// Package slicknxt provides a minimal public façade for loading and running
// node flows without importing internal packages. It re-exports the flow
// description types for convenience and exposes a Runtime with simple
// methods to store, load, and drive flows.
package slicknxt
