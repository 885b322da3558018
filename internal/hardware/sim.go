package hardware

import (
	"context"
	"sort"
	"sync"
)

// SimProvider is an in-process provider used by the server's default
// configuration and by tests. It reports whatever channel layout it is
// given and "connects" instantly.
type SimProvider struct {
	mu        sync.Mutex
	connected bool
	actuators map[string]struct{}
	sensors   map[string]SensorInfo
	battery   int
}

// NewSimProvider creates a disconnected simulated brick.
func NewSimProvider() *SimProvider {
	return &SimProvider{
		actuators: make(map[string]struct{}),
		sensors:   make(map[string]SensorInfo),
		battery:   9000,
	}
}

func (p *SimProvider) IsConnected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

func (p *SimProvider) ActuatorChannels() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.actuators))
	for ch := range p.actuators {
		out = append(out, ch)
	}
	sort.Strings(out)
	return out
}

func (p *SimProvider) SensorChannels() map[string]SensorInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]SensorInfo, len(p.sensors))
	for ch, info := range p.sensors {
		out[ch] = info
	}
	return out
}

func (p *SimProvider) BatteryLevel() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.connected {
		return 0
	}
	return p.battery
}

func (p *SimProvider) Connect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.connected = true
	return nil
}

func (p *SimProvider) Disconnect() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.connected = false
}

// AttachActuator plugs a simulated actuator into a channel.
func (p *SimProvider) AttachActuator(channel string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.actuators[channel] = struct{}{}
}

// DetachActuator removes a simulated actuator.
func (p *SimProvider) DetachActuator(channel string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.actuators, channel)
}

// AttachSensor plugs a simulated sensor into a channel.
func (p *SimProvider) AttachSensor(channel string, info SensorInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sensors[channel] = info
}

// SetBattery sets the reported battery level in millivolts.
func (p *SimProvider) SetBattery(mv int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.battery = mv
}
