package usecases

import (
	"context"

	"github.com/fairlight1337/slicknxt/internal/app/dto"
	"github.com/fairlight1337/slicknxt/internal/core/node"
)

// FlowRepository defines the interface for flow description storage
// PRINCIPLES:
// - SRP: Only responsible for flow persistence
// - DIP: Used for dependency injection
type FlowRepository interface {
	Save(ctx context.Context, id string, d *dto.FlowDescription) error
	Get(ctx context.Context, id string) (*dto.FlowDescription, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id string) error
}

// Observer receives one post-execution state snapshot per executed node per
// tick, in scheduler order. Returning an error evicts the subscription.
type Observer func(nodeID string, state node.State) error

// FlowEngine is the core-to-environment contract of the execution loop.
type FlowEngine interface {
	// Load replaces the entire flow, recomputes execution order, and resets
	// routing state. A running engine is gracefully stopped first and stays
	// stopped. Returns the count of nodes loaded.
	Load(ctx context.Context, d *dto.FlowDescription) (*dto.LoadResult, error)

	// Run drives the tick loop until Stop; it blocks the calling goroutine
	// for the lifetime of the run.
	Run(ctx context.Context) error

	// Stop requests a cooperative stop, honored at the next tick boundary.
	Stop(ctx context.Context) error

	// SubmitUserInput forwards a control change to a node.
	SubmitUserInput(ctx context.Context, nodeID, control string, value any) error

	Subscribe(obs Observer) string
	Unsubscribe(id string)

	Status(ctx context.Context) (*dto.EngineStatus, error)

	// Close shuts the engine down permanently.
	Close()
}
