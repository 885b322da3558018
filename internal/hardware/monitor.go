package hardware

import (
	"context"
	"log"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fairlight1337/slicknxt/internal/infrastructure/metrics"
)

// DefaultPollInterval is how often the monitor re-reads provider state.
const DefaultPollInterval = 2 * time.Second

// ChangeFunc is invoked with the provider's new configuration whenever
// connectivity or channel sets change.
type ChangeFunc func(cfg Config)

// Monitor polls a provider and fans configuration changes out to
// subscribers. Subscribing and unsubscribing are safe concurrently with a
// running poll loop; a panicking subscriber is evicted.
type Monitor struct {
	provider Provider
	interval time.Duration

	subs sync.Map // subscription id -> ChangeFunc

	mu   sync.Mutex
	last Config
}

// NewMonitor creates a monitor over a provider. Pass 0 for the default
// poll interval.
func NewMonitor(p Provider, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Monitor{provider: p, interval: interval}
}

// Subscribe registers a change callback and returns its subscription id.
// The callback immediately receives the current configuration.
func (m *Monitor) Subscribe(fn ChangeFunc) string {
	id := uuid.NewString()
	m.subs.Store(id, fn)

	m.mu.Lock()
	cfg := m.last
	m.mu.Unlock()
	m.deliver(id, fn, cfg)
	return id
}

// Current returns the most recently observed configuration.
func (m *Monitor) Current() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// Unsubscribe removes a change callback.
func (m *Monitor) Unsubscribe(id string) {
	m.subs.Delete(id)
}

// Run polls until ctx is cancelled. It reconnects a lost provider and
// notifies subscribers whenever the observed configuration changes.
func (m *Monitor) Run(ctx context.Context) {
	log.Printf("hardware: monitoring started (every %s)", m.interval)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		m.poll(ctx)
		select {
		case <-ctx.Done():
			log.Printf("hardware: monitoring stopped")
			return
		case <-ticker.C:
		}
	}
}

func (m *Monitor) poll(ctx context.Context) {
	if !m.provider.IsConnected() {
		if err := m.provider.Connect(ctx); err != nil {
			log.Printf("hardware: connect failed: %v", err)
		}
	}

	cfg := Snapshot(m.provider)
	metrics.SetHardwareConnected(cfg.Connected)

	m.mu.Lock()
	changed := !reflect.DeepEqual(cfg, m.last)
	if changed {
		m.last = cfg
	}
	m.mu.Unlock()

	if !changed {
		return
	}
	metrics.IncHardwareChanges()
	log.Printf("hardware: configuration changed: connected=%v actuators=%v", cfg.Connected, cfg.Actuators)

	m.subs.Range(func(key, value any) bool {
		m.deliver(key.(string), value.(ChangeFunc), cfg)
		return true
	})
}

// deliver invokes one subscriber, evicting it if it panics.
func (m *Monitor) deliver(id string, fn ChangeFunc, cfg Config) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("hardware: evicting change subscriber %s: %v", id, r)
			m.subs.Delete(id)
		}
	}()
	fn(cfg)
}
