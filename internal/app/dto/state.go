package dto

import (
	"time"

	"github.com/fairlight1337/slicknxt/internal/core/node"
)

// NodeStateUpdate is one per-node observation emitted after each tick, in
// scheduler order.
type NodeStateUpdate struct {
	NodeID string     `json:"nodeId"`
	State  node.State `json:"state"`
}

// LoadResult reports the outcome of installing a flow description.
type LoadResult struct {
	NodesLoaded   int  `json:"nodesLoaded"`
	NodesSkipped  int  `json:"nodesSkipped"`
	Edges         int  `json:"edges"`
	CycleFallback bool `json:"cycleFallback"`
}

// EngineStatus describes the execution loop's current state.
type EngineStatus struct {
	Running      bool      `json:"running"`
	Nodes        int       `json:"nodes"`
	Ticks        uint64    `json:"ticks"`
	TickInterval string    `json:"tickInterval"`
	LastTick     time.Time `json:"lastTick,omitempty"`
}
