package node

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	now := time.Now()

	t.Run("constructs every registered type", func(t *testing.T) {
		for _, typ := range Types() {
			n, err := New(typ, "n1", nil, now)
			require.NoError(t, err, typ)
			assert.Equal(t, "n1", n.ID())
			assert.Equal(t, typ, n.Type())
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := New("quantumNode", "n1", nil, now)
		assert.ErrorIs(t, err, ErrUnknownType)
	})
}

func TestTypes_Sorted(t *testing.T) {
	types := Types()
	require.NotEmpty(t, types)
	assert.IsIncreasing(t, types)
	assert.Contains(t, types, TypeDial)
	assert.Contains(t, types, TypePController)
}

func TestBase_Snapshot_Isolated(t *testing.T) {
	now := time.Now()
	n := NewHistoryDisplay("h1", nil, now.Add(-time.Hour)).(*HistoryDisplay)
	n.SetInput("value", 1.0)
	_, err := n.Execute(now)
	require.NoError(t, err)

	snap := n.Snapshot()
	history := snap.Data["history"].([]any)
	require.Len(t, history, 1)
	history[0] = "mutated"

	assert.Equal(t, 1.0, n.Snapshot().Data["history"].([]any)[0], "snapshots do not alias node state")
}

func TestCoerce(t *testing.T) {
	t.Run("asFloat", func(t *testing.T) {
		for _, v := range []any{float64(3), float32(3), int(3), int64(3), uint64(3)} {
			got, ok := asFloat(v)
			require.True(t, ok)
			assert.Equal(t, 3.0, got)
		}
		got, ok := asFloat(true)
		require.True(t, ok)
		assert.Equal(t, 1.0, got)

		_, ok = asFloat("3")
		assert.False(t, ok)
	})

	t.Run("asBool", func(t *testing.T) {
		got, ok := asBool(true)
		require.True(t, ok)
		assert.True(t, got)

		got, ok = asBool(float64(0))
		require.True(t, ok)
		assert.False(t, got)

		got, ok = asBool(1)
		require.True(t, ok)
		assert.True(t, got)

		_, ok = asBool("true")
		assert.False(t, ok)
	})
}
