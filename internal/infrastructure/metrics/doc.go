// Package metrics exposes expvar-published counters and gauges used by the
// SlickNXT engine (tick loop, notifier, hardware monitor). It intentionally
// avoids external dependencies and is consumed by the optional server for
// /debug/vars and /metrics endpoints.
package metrics
