package node

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSubtract(t *testing.T) {
	now := time.Now()

	add := NewAdd("add1", nil)
	add.SetInput("a", 2.5)
	add.SetInput("b", 4)
	out, err := add.Execute(now)
	require.NoError(t, err)
	assert.Equal(t, 6.5, out["output"])

	sub := NewSubtract("sub1", nil)
	sub.SetInput("a", 10.0)
	out, err = sub.Execute(now)
	require.NoError(t, err)
	assert.Equal(t, 10.0, out["output"], "missing operand reads as 0")
}

func TestComparator(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		mode string
		a, b float64
		want bool
	}{
		{name: "greater true", mode: CompareGreater, a: 5, b: 3, want: true},
		{name: "greater false on equal", mode: CompareGreater, a: 3, b: 3, want: false},
		{name: "less true", mode: CompareLess, a: 1, b: 2, want: true},
		{name: "equal true", mode: CompareEqual, a: 7, b: 7, want: true},
		{name: "equal false", mode: CompareEqual, a: 7, b: 8, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewComparator("c1", nil)
			require.NoError(t, n.ApplyUserInput("mode", tt.mode))
			n.SetInput("a", tt.a)
			n.SetInput("b", tt.b)

			out, err := n.Execute(now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out["output"])
		})
	}

	t.Run("rejects unknown mode", func(t *testing.T) {
		n := NewComparator("c1", nil)
		assert.ErrorIs(t, n.ApplyUserInput("mode", ">="), ErrInvalidValue)
	})

	t.Run("defaults to greater", func(t *testing.T) {
		n := NewComparator("c1", nil)
		n.SetInput("a", 2.0)
		n.SetInput("b", 1.0)
		out, err := n.Execute(now)
		require.NoError(t, err)
		assert.Equal(t, true, out["output"])
	})
}

func TestBoolGate(t *testing.T) {
	now := time.Now()
	n := NewBoolGate("g1", nil)

	n.SetInput("signal", 42.0)
	out, err := n.Execute(now)
	require.NoError(t, err)
	assert.Nil(t, out["output"], "closed gate emits nil")

	n.SetInput("enable", true)
	out, err = n.Execute(now)
	require.NoError(t, err)
	assert.Equal(t, 42.0, out["output"])

	n.SetInput("enable", false)
	out, err = n.Execute(now)
	require.NoError(t, err)
	assert.Nil(t, out["output"])
}

func TestCap(t *testing.T) {
	now := time.Now()

	t.Run("clamps to default bounds", func(t *testing.T) {
		n := NewCap("cap1", nil)
		n.SetInput("input", 150.0)
		out, err := n.Execute(now)
		require.NoError(t, err)
		assert.Equal(t, 100.0, out["output"])

		n.SetInput("input", -20.0)
		out, err = n.Execute(now)
		require.NoError(t, err)
		assert.Equal(t, 0.0, out["output"])
	})

	t.Run("clamps both directions", func(t *testing.T) {
		n := NewCap("cap1", nil)
		n.SetInput("min", 20.0)
		n.SetInput("max", 80.0)

		n.SetInput("input", 10.0)
		out, err := n.Execute(now)
		require.NoError(t, err)
		assert.Equal(t, 20.0, out["output"])

		n.SetInput("input", 90.0)
		out, err = n.Execute(now)
		require.NoError(t, err)
		assert.Equal(t, 80.0, out["output"])
	})

	t.Run("bounds from input ports", func(t *testing.T) {
		n := NewCap("cap1", nil)
		n.SetInput("min", 10.0)
		n.SetInput("max", 20.0)
		n.SetInput("input", 15.0)
		out, err := n.Execute(now)
		require.NoError(t, err)
		assert.Equal(t, 15.0, out["output"])

		n.SetInput("input", 3.0)
		out, err = n.Execute(now)
		require.NoError(t, err)
		assert.Equal(t, 10.0, out["output"])
	})

	t.Run("bounds from user controls", func(t *testing.T) {
		n := NewCap("cap1", nil)
		require.NoError(t, n.ApplyUserInput("min", -5))
		require.NoError(t, n.ApplyUserInput("max", 5))
		n.SetInput("input", -50.0)
		out, err := n.Execute(now)
		require.NoError(t, err)
		assert.Equal(t, -5.0, out["output"])
	})

	t.Run("edge-fed bound ignores user override", func(t *testing.T) {
		n := NewCap("cap1", nil)
		n.MarkConnected("max")
		require.NoError(t, n.ApplyUserInput("max", 7))
		n.SetInput("max", 30.0)
		n.SetInput("input", 25.0)
		out, err := n.Execute(now)
		require.NoError(t, err)
		assert.Equal(t, 25.0, out["output"])
	})
}
