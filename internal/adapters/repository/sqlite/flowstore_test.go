package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairlight1337/slicknxt/internal/app/dto"
	"github.com/fairlight1337/slicknxt/internal/core/flow"
	"github.com/fairlight1337/slicknxt/pkg/serialization"
)

func openTestStore(t *testing.T) *FlowStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flows.db")
	store, err := Open(context.Background(), path, serialization.DefaultSerializer())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleDescription() *dto.FlowDescription {
	return &dto.FlowDescription{
		Nodes: []dto.NodeDescription{
			{ID: "dial", Type: "dialNode", Position: dto.Position{X: 100, Y: 200}},
			{ID: "display", Type: "numberDisplayNode"},
		},
		Edges: []dto.EdgeDescription{
			{ID: "e1", Source: "dial", SourceHandle: "out-value", Target: "display", TargetHandle: "in-value"},
		},
	}
}

func TestFlowStore_SaveGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	saved := sampleDescription()
	require.NoError(t, store.Save(ctx, "f1", saved))

	got, err := store.Get(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, saved.Nodes[0].ID, got.Nodes[0].ID)
	assert.Equal(t, saved.Nodes[0].Position, got.Nodes[0].Position)
	assert.Equal(t, saved.Edges[0].SourceHandle, got.Edges[0].SourceHandle)
}

func TestFlowStore_Errors(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	t.Run("get missing", func(t *testing.T) {
		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, flow.ErrFlowNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		assert.ErrorIs(t, store.Save(ctx, "", sampleDescription()), flow.ErrEmptyFlowID)
		_, err := store.Get(ctx, "")
		assert.ErrorIs(t, err, flow.ErrEmptyFlowID)
		assert.ErrorIs(t, store.Delete(ctx, ""), flow.ErrEmptyFlowID)
	})

	t.Run("invalid description", func(t *testing.T) {
		bad := &dto.FlowDescription{Nodes: []dto.NodeDescription{{ID: "x"}}}
		assert.Error(t, store.Save(ctx, "f1", bad))
	})

	t.Run("delete missing", func(t *testing.T) {
		assert.ErrorIs(t, store.Delete(ctx, "nope"), flow.ErrFlowNotFound)
	})
}

func TestFlowStore_SaveReplacesAndDeletes(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.Save(ctx, "f1", sampleDescription()))
	require.NoError(t, store.Save(ctx, "f1", &dto.FlowDescription{}))

	got, err := store.Get(ctx, "f1")
	require.NoError(t, err)
	assert.Empty(t, got.Nodes)

	require.NoError(t, store.Delete(ctx, "f1"))
	_, err = store.Get(ctx, "f1")
	assert.ErrorIs(t, err, flow.ErrFlowNotFound)
}

func TestFlowStore_List(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, store.Save(ctx, "a", sampleDescription()))
	require.NoError(t, store.Save(ctx, "b", sampleDescription()))

	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, ids)
}

func TestFlowStore_WithTableName(t *testing.T) {
	store := openTestStore(t)

	store.WithTableName("custom_flows")
	assert.Equal(t, "custom_flows", store.tableName)

	store.WithTableName("bad; DROP TABLE flows")
	assert.Equal(t, "custom_flows", store.tableName, "unsafe identifiers rejected")
}
