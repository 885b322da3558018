package flow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairlight1337/slicknxt/internal/core/node"
)

func mustNode(t *testing.T, typ, id string) node.Node {
	t.Helper()
	n, err := node.New(typ, id, nil, time.Time{})
	require.NoError(t, err)
	return n
}

func TestFlow_AddNode(t *testing.T) {
	f := New()

	t.Run("keeps insertion order", func(t *testing.T) {
		for _, id := range []string{"c", "a", "b"} {
			require.NoError(t, f.AddNode(mustNode(t, node.TypeSwitch, id)))
		}
		assert.Equal(t, []string{"c", "a", "b"}, f.NodeIDs())
		assert.Equal(t, 3, f.Len())
	})

	t.Run("rejects nil node", func(t *testing.T) {
		assert.ErrorIs(t, f.AddNode(nil), ErrNilNode)
	})

	t.Run("rejects duplicate id", func(t *testing.T) {
		assert.ErrorIs(t, f.AddNode(mustNode(t, node.TypeSwitch, "a")), ErrDuplicateNode)
	})
}

func TestFlow_AddEdge(t *testing.T) {
	f := New()
	require.NoError(t, f.AddNode(mustNode(t, node.TypeAnd, "and1")))

	t.Run("rejects nil edge", func(t *testing.T) {
		assert.ErrorIs(t, f.AddEdge(nil), ErrNilEdge)
	})

	t.Run("rejects invalid edge", func(t *testing.T) {
		assert.ErrorIs(t, f.AddEdge(&Edge{Target: "and1"}), ErrInvalidSource)
	})

	t.Run("accepts dangling endpoints", func(t *testing.T) {
		require.NoError(t, f.AddEdge(&Edge{ID: "e1", Source: "ghost", Target: "and1", TargetHandle: "in-a"}))
		assert.Len(t, f.Edges(), 1)
	})
}

func TestFlow_MarkConnected(t *testing.T) {
	f := New()
	dst := mustNode(t, node.TypeMotor, "m")
	require.NoError(t, f.AddNode(mustNode(t, node.TypeSwitch, "sw")))
	require.NoError(t, f.AddNode(dst))

	require.NoError(t, f.AddEdge(&Edge{ID: "e1", Source: "sw", SourceHandle: "out-value", Target: "m", TargetHandle: "in-on-off"}))
	require.NoError(t, f.AddEdge(&Edge{ID: "e2", Source: "sw", Target: "ghost", TargetHandle: "in-x"}))

	f.MarkConnected()

	assert.True(t, dst.Connected("onOff"))
	assert.False(t, dst.Connected("speed"))
}
