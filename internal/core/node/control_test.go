package node

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMotor(t *testing.T) {
	now := time.Now()

	t.Run("defaults", func(t *testing.T) {
		n := NewMotor("m1", nil)
		out, err := n.Execute(now)
		require.NoError(t, err)
		assert.Equal(t, false, out["onOff"])
		assert.Equal(t, true, out["forward"])
		assert.Equal(t, 50.0, out["speed"])
	})

	t.Run("edge-fed inputs win over stored state", func(t *testing.T) {
		n := NewMotor("m1", nil)
		n.SetInput("onOff", true)
		n.SetInput("forward", false)
		n.SetInput("speed", 130.0)

		out, err := n.Execute(now)
		require.NoError(t, err)
		assert.Equal(t, true, out["onOff"])
		assert.Equal(t, false, out["forward"])
		assert.Equal(t, 100.0, out["speed"], "speed clamped to [0,100]")
	})

	t.Run("user controls", func(t *testing.T) {
		n := NewMotor("m1", nil)
		require.NoError(t, n.ApplyUserInput("onOff", true))
		require.NoError(t, n.ApplyUserInput("speed", 80))
		require.NoError(t, n.ApplyUserInput("forward", false))

		out, err := n.Execute(now)
		require.NoError(t, err)
		assert.Equal(t, true, out["onOff"])
		assert.Equal(t, false, out["forward"])
		assert.Equal(t, 80.0, out["speed"])
	})

	t.Run("connected control ignores override", func(t *testing.T) {
		n := NewMotor("m1", nil)
		n.MarkConnected("speed")
		require.NoError(t, n.ApplyUserInput("speed", 10))
		assert.Equal(t, 50.0, n.speed)
	})

	t.Run("invalid values", func(t *testing.T) {
		n := NewMotor("m1", nil)
		assert.ErrorIs(t, n.ApplyUserInput("onOff", "yes"), ErrInvalidValue)
		assert.ErrorIs(t, n.ApplyUserInput("torque", 1), ErrUnknownControl)
	})
}

func TestIntegrator(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("accumulates input times elapsed seconds", func(t *testing.T) {
		n := NewIntegrator("i1", nil, t0).(*Integrator)
		n.SetInput("input", 10.0)

		out, err := n.Execute(t0.Add(1 * time.Second))
		require.NoError(t, err)
		assert.Equal(t, 10.0, out["output"])

		out, err = n.Execute(t0.Add(3 * time.Second))
		require.NoError(t, err)
		assert.Equal(t, 30.0, out["output"])
	})

	t.Run("clamps to symmetric range", func(t *testing.T) {
		n := NewIntegrator("i1", nil, t0).(*Integrator)
		n.SetInput("input", 1e6)

		out, err := n.Execute(t0.Add(1 * time.Second))
		require.NoError(t, err)
		assert.Equal(t, 1000.0, out["output"])

		n.SetInput("input", -1e7)
		out, err = n.Execute(t0.Add(2 * time.Second))
		require.NoError(t, err)
		assert.Equal(t, -1000.0, out["output"])
	})

	t.Run("reset zeroes the accumulator", func(t *testing.T) {
		n := NewIntegrator("i1", nil, t0).(*Integrator)
		n.SetInput("input", 5.0)
		_, err := n.Execute(t0.Add(2 * time.Second))
		require.NoError(t, err)

		n.SetInput("reset", true)
		out, err := n.Execute(t0.Add(3 * time.Second))
		require.NoError(t, err)
		assert.Equal(t, 0.0, out["output"])
	})

	t.Run("disable freezes without back-integration", func(t *testing.T) {
		n := NewIntegrator("i1", nil, t0).(*Integrator)
		n.SetInput("input", 1.0)
		_, err := n.Execute(t0.Add(1 * time.Second))
		require.NoError(t, err)

		n.SetInput("enabled", false)
		out, err := n.Execute(t0.Add(10 * time.Second))
		require.NoError(t, err)
		assert.Equal(t, 1.0, out["output"], "frozen at last value")

		// Re-enable after a long gap: the frozen span must not integrate.
		n.SetInput("enabled", true)
		out, err = n.Execute(t0.Add(11 * time.Second))
		require.NoError(t, err)
		assert.Equal(t, 2.0, out["output"])
	})

	t.Run("controls", func(t *testing.T) {
		n := NewIntegrator("i1", nil, t0).(*Integrator)
		require.NoError(t, n.ApplyUserInput("enabled", false))
		require.NoError(t, n.ApplyUserInput("reset", nil))
		assert.Equal(t, 0.0, n.accumulator)
		assert.ErrorIs(t, n.ApplyUserInput("gain", 1), ErrUnknownControl)
	})
}

func TestPController(t *testing.T) {
	now := time.Now()

	t.Run("disabled emits zero", func(t *testing.T) {
		n := NewPController("p1", nil)
		n.SetInput("currentValue", 10.0)
		out, err := n.Execute(now)
		require.NoError(t, err)
		assert.Equal(t, 0.0, out["output"])
	})

	t.Run("proportional response", func(t *testing.T) {
		n := NewPController("p1", nil)
		n.SetInput("enabled", true)
		n.SetInput("setpoint", 60.0)
		n.SetInput("currentValue", 40.0)
		n.SetInput("pGain", 2.0)

		out, err := n.Execute(now)
		require.NoError(t, err)
		assert.Equal(t, 40.0, out["output"])
	})

	t.Run("rounded and clamped", func(t *testing.T) {
		n := NewPController("p1", nil)
		n.SetInput("enabled", true)
		n.SetInput("setpoint", 0.0)
		n.SetInput("currentValue", -0.26)
		n.SetInput("pGain", 1.0)

		out, err := n.Execute(now)
		require.NoError(t, err)
		assert.Equal(t, 0.0, out["output"], "0.26 rounds down")

		n.SetInput("currentValue", -500.0)
		out, err = n.Execute(now)
		require.NoError(t, err)
		assert.Equal(t, 100.0, out["output"], "clamped high")

		n.SetInput("currentValue", 500.0)
		out, err = n.Execute(now)
		require.NoError(t, err)
		assert.Equal(t, -100.0, out["output"], "clamped low")
	})

	t.Run("controls", func(t *testing.T) {
		n := NewPController("p1", nil)
		require.NoError(t, n.ApplyUserInput("enabled", true))
		require.NoError(t, n.ApplyUserInput("pGain", 3))
		assert.Equal(t, 3.0, n.gain)
		assert.ErrorIs(t, n.ApplyUserInput("pGain", "high"), ErrInvalidValue)
		assert.ErrorIs(t, n.ApplyUserInput("setpoint", 1), ErrUnknownControl)
	})
}
