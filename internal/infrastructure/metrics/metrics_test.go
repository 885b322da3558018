package metrics

import (
	"expvar"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersPublished(t *testing.T) {
	for _, name := range []string{
		"slicknxt_ticks_total",
		"slicknxt_node_executions_total",
		"slicknxt_node_errors_total",
		"slicknxt_observer_notifications_total",
		"slicknxt_observers",
		"slicknxt_flows_loaded_total",
		"slicknxt_cycle_fallbacks_total",
		"slicknxt_hardware_connected",
		"slicknxt_hardware_changes_total",
	} {
		assert.NotNil(t, expvar.Get(name), name)
	}
}

func TestHelpers(t *testing.T) {
	before := ticksTotal.Value()
	IncTicks()
	assert.Equal(t, before+1, ticksTotal.Value())

	SetObservers(3)
	assert.Equal(t, int64(3), observers.Value())

	SetHardwareConnected(true)
	require.Equal(t, int64(1), hardwareConnected.Value())
	SetHardwareConnected(false)
	require.Equal(t, int64(0), hardwareConnected.Value())
}
