// Package hardware defines the capability interface the engine expects from
// a brick/hardware provider, plus a polling monitor that turns provider
// state into change notifications. Discovery and connection management for
// physical devices live behind the Provider interface; the engine itself
// never commands hardware.
package hardware

import "context"

// SensorInfo describes the kind of sensor attached to a channel.
type SensorInfo struct {
	Kind string `json:"kind"`
	Unit string `json:"unit,omitempty"`
}

// Provider is the capability interface a hardware backend implements.
// The engine consumes it; it never implements it.
type Provider interface {
	// IsConnected reports whether a brick is reachable.
	IsConnected() bool

	// ActuatorChannels returns the channels with an actuator attached
	// (e.g. "A", "B", "C").
	ActuatorChannels() []string

	// SensorChannels maps sensor channels (e.g. "1".."4") to type info.
	SensorChannels() map[string]SensorInfo

	// BatteryLevel returns the brick's battery level in millivolts, or 0
	// when disconnected.
	BatteryLevel() int

	// Connect attempts to reach the brick; Disconnect drops it.
	Connect(ctx context.Context) error
	Disconnect()
}

// Config is the snapshot handed to change subscribers.
type Config struct {
	Connected bool                  `json:"isConnected"`
	Actuators []string              `json:"motors"`
	Sensors   map[string]SensorInfo `json:"sensors"`
	Battery   int                   `json:"battery"`
}

// Snapshot reads a provider's current configuration.
func Snapshot(p Provider) Config {
	return Config{
		Connected: p.IsConnected(),
		Actuators: p.ActuatorChannels(),
		Sensors:   p.SensorChannels(),
		Battery:   p.BatteryLevel(),
	}
}
