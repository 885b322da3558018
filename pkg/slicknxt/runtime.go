package slicknxt

import (
	"context"
	"time"

	"github.com/fairlight1337/slicknxt/internal/adapters/repository/memory"
	"github.com/fairlight1337/slicknxt/internal/app/dto"
	"github.com/fairlight1337/slicknxt/internal/app/usecases"
	"github.com/fairlight1337/slicknxt/internal/core/node"
)

// Re-export boundary types for convenience
type (
	FlowDescription = dto.FlowDescription
	NodeDescription = dto.NodeDescription
	EdgeDescription = dto.EdgeDescription
	LoadResult      = dto.LoadResult
	EngineStatus    = dto.EngineStatus
	NodeState       = node.State
	Observer        = usecases.Observer
)

// Runtime is a simple façade bundling an engine with a flow store. The
// default runtime uses in-memory storage and is suitable for local usage
// and tests.
type Runtime struct {
	engine usecases.FlowEngine
	store  usecases.FlowRepository
}

// NewRuntime constructs a default runtime with in-memory components. Pass 0
// to use the reference 10 Hz tick rate.
func NewRuntime(tickInterval time.Duration) *Runtime {
	return &Runtime{
		engine: usecases.NewExecutor(tickInterval),
		store:  memory.NewFlowStore(),
	}
}

// NewRuntimeWith constructs a runtime over a caller-provided flow store.
func NewRuntimeWith(engine usecases.FlowEngine, store usecases.FlowRepository) *Runtime {
	return &Runtime{engine: engine, store: store}
}

// Engine exposes the underlying flow engine.
func (rt *Runtime) Engine() usecases.FlowEngine {
	return rt.engine
}

// SaveFlow persists a flow description to the runtime store.
func (rt *Runtime) SaveFlow(ctx context.Context, id string, d *FlowDescription) error {
	return rt.store.Save(ctx, id, d)
}

// GetFlow retrieves a stored flow description.
func (rt *Runtime) GetFlow(ctx context.Context, id string) (*FlowDescription, error) {
	return rt.store.Get(ctx, id)
}

// Load installs a flow description into the engine.
func (rt *Runtime) Load(ctx context.Context, d *FlowDescription) (*LoadResult, error) {
	return rt.engine.Load(ctx, d)
}

// LoadStored loads a previously saved flow into the engine.
func (rt *Runtime) LoadStored(ctx context.Context, id string) (*LoadResult, error) {
	d, err := rt.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return rt.engine.Load(ctx, d)
}

// Run drives the engine until Stop or ctx cancellation.
func (rt *Runtime) Run(ctx context.Context) error {
	return rt.engine.Run(ctx)
}

// Stop requests a cooperative stop of the engine.
func (rt *Runtime) Stop(ctx context.Context) error {
	return rt.engine.Stop(ctx)
}

// Close shuts the runtime's engine down.
func (rt *Runtime) Close() {
	rt.engine.Close()
}

// SubmitUserInput forwards a user control change to a node.
func (rt *Runtime) SubmitUserInput(ctx context.Context, nodeID, control string, value any) error {
	return rt.engine.SubmitUserInput(ctx, nodeID, control, value)
}

// Subscribe registers an observer for per-node state updates.
func (rt *Runtime) Subscribe(obs Observer) string {
	return rt.engine.Subscribe(obs)
}

// Unsubscribe removes an observer.
func (rt *Runtime) Unsubscribe(id string) {
	rt.engine.Unsubscribe(id)
}
