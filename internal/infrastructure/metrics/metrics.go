package metrics

import (
	"expvar"
)

// Engine metrics.
var (
	ticksTotal         = new(expvar.Int)
	nodeExecsTotal     = new(expvar.Int)
	nodeErrorsTotal    = new(expvar.Int)
	notificationsTotal = new(expvar.Int)
	observers          = new(expvar.Int)
	flowsLoadedTotal   = new(expvar.Int)
	cycleFallbackTotal = new(expvar.Int)
)

// Hardware metrics.
var (
	hardwareConnected = new(expvar.Int)
	hardwareChanges   = new(expvar.Int)
)

func init() {
	expvar.Publish("slicknxt_ticks_total", ticksTotal)
	expvar.Publish("slicknxt_node_executions_total", nodeExecsTotal)
	expvar.Publish("slicknxt_node_errors_total", nodeErrorsTotal)
	expvar.Publish("slicknxt_observer_notifications_total", notificationsTotal)
	expvar.Publish("slicknxt_observers", observers)
	expvar.Publish("slicknxt_flows_loaded_total", flowsLoadedTotal)
	expvar.Publish("slicknxt_cycle_fallbacks_total", cycleFallbackTotal)
	expvar.Publish("slicknxt_hardware_connected", hardwareConnected)
	expvar.Publish("slicknxt_hardware_changes_total", hardwareChanges)
}

// Engine helpers
func IncTicks()          { ticksTotal.Add(1) }
func IncNodeExecs()      { nodeExecsTotal.Add(1) }
func IncNodeErrors()     { nodeErrorsTotal.Add(1) }
func IncNotifications()  { notificationsTotal.Add(1) }
func SetObservers(n int) { observers.Set(int64(n)) }
func IncFlowsLoaded()    { flowsLoadedTotal.Add(1) }
func IncCycleFallbacks() { cycleFallbackTotal.Add(1) }

// Hardware helpers
func SetHardwareConnected(connected bool) {
	if connected {
		hardwareConnected.Set(1)
	} else {
		hardwareConnected.Set(0)
	}
}
func IncHardwareChanges() { hardwareChanges.Add(1) }
