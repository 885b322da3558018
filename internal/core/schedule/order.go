// Package schedule computes the deterministic node execution order.
//
// Ordering uses Kahn's algorithm over the flow graph. Ties among
// simultaneously-ready nodes break by a FIFO queue seeded in node insertion
// order, so the result is stable for a fixed flow. Cycles never fail an
// order computation: the unresolved remainder is appended in insertion
// order, trading one-tick-stale reads inside the cycle for liveness.
package schedule

import (
	"log"

	"github.com/fairlight1337/slicknxt/internal/core/flow"
)

// Order returns a permutation of f's node IDs in execution order, and
// whether a cycle forced the insertion-order fallback for part of it.
func Order(f *flow.Flow) ([]string, bool) {
	ids := f.NodeIDs()

	adjacency := make(map[string][]string, len(ids))
	inDegree := make(map[string]int, len(ids))
	for _, id := range ids {
		inDegree[id] = 0
	}

	// Edges with a dangling endpoint are excluded from ordering.
	for _, e := range f.Edges() {
		if f.Node(e.Source) == nil || f.Node(e.Target) == nil {
			continue
		}
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
		inDegree[e.Target]++
	}

	queue := make([]string, 0, len(ids))
	for _, id := range ids {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]string, 0, len(ids))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		for _, next := range adjacency[id] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(order) == len(ids) {
		return order, false
	}

	// Cycle: the ordered prefix stands, the remainder falls back to
	// insertion order. Nodes inside the cycle read one-tick-stale values.
	placed := make(map[string]struct{}, len(order))
	for _, id := range order {
		placed[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := placed[id]; !ok {
			order = append(order, id)
		}
	}
	log.Printf("schedule: flow contains a cycle, %d node(s) fall back to insertion order", len(ids)-len(placed))
	return order, true
}
