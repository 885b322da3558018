package usecases

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/fairlight1337/slicknxt/internal/core/node"
	"github.com/fairlight1337/slicknxt/internal/infrastructure/metrics"
)

// Notifier fans per-node state out to subscribed observers.
//
// Subscriptions may be added and removed concurrently with a running tick,
// so the set lives in a sync.Map rather than under the engine's actor. A
// failing or panicking observer is evicted; it never affects the other
// observers or the tick.
type Notifier struct {
	subs sync.Map // subscription id -> Observer
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers an observer and returns its subscription id.
func (n *Notifier) Subscribe(obs Observer) string {
	id := uuid.NewString()
	n.subs.Store(id, obs)
	metrics.SetObservers(n.Len())
	return id
}

// Unsubscribe removes a subscription. Unknown ids are a no-op.
func (n *Notifier) Unsubscribe(id string) {
	n.subs.Delete(id)
	metrics.SetObservers(n.Len())
}

// Len returns the number of active subscriptions.
func (n *Notifier) Len() int {
	count := 0
	n.subs.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// Notify delivers one node's post-execution state to every observer.
func (n *Notifier) Notify(nodeID string, state node.State) {
	n.subs.Range(func(key, value any) bool {
		id := key.(string)
		obs := value.(Observer)
		if err := n.deliver(obs, nodeID, state); err != nil {
			log.Printf("engine: evicting observer %s: %v", id, err)
			n.Unsubscribe(id)
		}
		metrics.IncNotifications()
		return true
	})
}

// deliver invokes one observer, converting a panic into an error so the
// offending observer can be evicted without aborting the tick.
func (n *Notifier) deliver(obs Observer, nodeID string, state node.State) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()
	return obs(nodeID, state)
}
