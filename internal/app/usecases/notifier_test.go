package usecases

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairlight1337/slicknxt/internal/core/node"
)

func TestNotifier_FanOut(t *testing.T) {
	n := NewNotifier()

	var a, b atomic.Int64
	n.Subscribe(func(string, node.State) error { a.Add(1); return nil })
	n.Subscribe(func(string, node.State) error { b.Add(1); return nil })
	require.Equal(t, 2, n.Len())

	n.Notify("n1", node.State{})
	assert.Equal(t, int64(1), a.Load())
	assert.Equal(t, int64(1), b.Load())
}

func TestNotifier_Unsubscribe(t *testing.T) {
	n := NewNotifier()

	var calls atomic.Int64
	id := n.Subscribe(func(string, node.State) error { calls.Add(1); return nil })
	n.Unsubscribe(id)
	n.Unsubscribe("no-such-id")

	n.Notify("n1", node.State{})
	assert.Zero(t, calls.Load())
	assert.Zero(t, n.Len())
}

func TestNotifier_EvictsFailingObserver(t *testing.T) {
	n := NewNotifier()

	var healthy atomic.Int64
	n.Subscribe(func(string, node.State) error {
		return errors.New("client gone")
	})
	n.Subscribe(func(string, node.State) error { healthy.Add(1); return nil })

	n.Notify("n1", node.State{})
	assert.Equal(t, 1, n.Len(), "failing observer evicted")
	assert.Equal(t, int64(1), healthy.Load(), "healthy observer unaffected")

	n.Notify("n2", node.State{})
	assert.Equal(t, int64(2), healthy.Load())
}

func TestNotifier_EvictsPanickingObserver(t *testing.T) {
	n := NewNotifier()
	n.Subscribe(func(string, node.State) error { panic("boom") })

	assert.NotPanics(t, func() { n.Notify("n1", node.State{}) })
	assert.Zero(t, n.Len())
}

func TestNotifier_ConcurrentSubscribe(t *testing.T) {
	n := NewNotifier()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := n.Subscribe(func(string, node.State) error { return nil })
			n.Notify("n1", node.State{})
			n.Unsubscribe(id)
		}()
	}
	wg.Wait()
	assert.Zero(t, n.Len())
}
