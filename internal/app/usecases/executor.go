package usecases

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fairlight1337/slicknxt/internal/app/dto"
	"github.com/fairlight1337/slicknxt/internal/core/flow"
	"github.com/fairlight1337/slicknxt/internal/core/node"
	"github.com/fairlight1337/slicknxt/internal/core/schedule"
	"github.com/fairlight1337/slicknxt/internal/infrastructure/metrics"
)

// DefaultTickInterval is the reference execution rate (10 Hz).
const DefaultTickInterval = 100 * time.Millisecond

// Executor drives a loaded flow at a fixed tick rate: route all edges,
// execute every node in scheduler order, notify observers per node.
//
// All engine state is owned by a single actor goroutine fed by a command
// channel; Load, Stop, user input, and status requests are applied between
// ticks, never during one. That makes the no-load-during-tick invariant
// structural rather than advisory. Observers are the one exception: the
// notifier tolerates concurrent subscribe/unsubscribe on its own.
type Executor struct {
	cmds     chan func()
	quit     chan struct{}
	notifier *Notifier
	interval time.Duration

	// Actor-owned state. Only the loop goroutine touches these.
	flow     *flow.Flow
	order    []string
	running  bool
	runDone  chan struct{}
	timer    *time.Timer
	ticks    uint64
	lastTick time.Time
}

// NewExecutor creates an executor and starts its actor goroutine. Pass 0 to
// use the reference tick rate.
func NewExecutor(interval time.Duration) *Executor {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	e := &Executor{
		cmds:     make(chan func()),
		quit:     make(chan struct{}),
		notifier: NewNotifier(),
		interval: interval,
	}
	go e.loop()
	return e
}

// loop is the actor: it alternates between applying queued commands and,
// while running, executing ticks. A command can never interleave with an
// in-flight tick.
func (e *Executor) loop() {
	e.timer = time.NewTimer(e.interval)
	defer e.timer.Stop()

	for {
		if e.running {
			select {
			case <-e.quit:
				e.finishRun()
				return
			case cmd := <-e.cmds:
				cmd()
			case <-e.timer.C:
				e.tick(time.Now())
				e.timer.Reset(e.interval)
			}
		} else {
			select {
			case <-e.quit:
				return
			case cmd := <-e.cmds:
				cmd()
			}
		}
	}
}

// do runs fn on the actor goroutine and waits for it.
func (e *Executor) do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	wrapped := func() {
		fn()
		close(done)
	}
	select {
	case e.cmds <- wrapped:
	case <-e.quit:
		return ErrEngineClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	// Once accepted, the command runs at the next tick boundary.
	select {
	case <-done:
		return nil
	case <-e.quit:
		return ErrEngineClosed
	}
}

// Load installs a new flow, fully replacing the previous one. If the engine
// is running it is gracefully stopped first (the in-flight tick has already
// drained by the time the command executes) and stays stopped until Run.
func (e *Executor) Load(ctx context.Context, d *dto.FlowDescription) (*dto.LoadResult, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flow description: %w", err)
	}

	f, skipped := buildFlow(d, time.Now())
	result := &dto.LoadResult{
		NodesLoaded:  f.Len(),
		NodesSkipped: skipped,
		Edges:        len(f.Edges()),
	}

	err := e.do(ctx, func() {
		e.finishRun()
		e.flow = f
		e.order, result.CycleFallback = schedule.Order(f)
	})
	if err != nil {
		return nil, err
	}

	metrics.IncFlowsLoaded()
	if result.CycleFallback {
		metrics.IncCycleFallbacks()
	}
	log.Printf("engine: loaded flow with %d nodes, %d edges (%d skipped)",
		result.NodesLoaded, result.Edges, result.NodesSkipped)
	return result, nil
}

// Run transitions Stopped -> Running and blocks until the loop stops again,
// via Stop, a Load, or cancellation of ctx.
func (e *Executor) Run(ctx context.Context) error {
	done := make(chan struct{})
	var startErr error
	err := e.do(ctx, func() {
		switch {
		case e.running:
			startErr = ErrAlreadyRunning
		case e.flow == nil:
			startErr = ErrNoFlowLoaded
		default:
			e.running = true
			e.runDone = done
			// First tick fires immediately. Drain a stale expiry first so
			// the running branch does not consume an old fire.
			if !e.timer.Stop() {
				select {
				case <-e.timer.C:
				default:
				}
			}
			e.timer.Reset(0)
			log.Printf("engine: flow execution started")
		}
	})
	if err != nil {
		return err
	}
	if startErr != nil {
		return startErr
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		_ = e.Stop(context.Background())
		<-done
		return ctx.Err()
	}
}

// Stop requests a cooperative stop. It returns after the loop has actually
// left the Running state; a tick in progress drains first. Stopping a
// stopped engine is a no-op.
func (e *Executor) Stop(ctx context.Context) error {
	return e.do(ctx, e.finishRun)
}

// finishRun moves the loop to Stopped and releases any Run caller.
// Must run on the actor goroutine.
func (e *Executor) finishRun() {
	if !e.running {
		return
	}
	e.running = false
	close(e.runDone)
	e.runDone = nil
	log.Printf("engine: flow execution stopped")
}

// SubmitUserInput forwards a control change to a node. Unknown node ids are
// reported; nodes reject invalid controls and values locally.
func (e *Executor) SubmitUserInput(ctx context.Context, nodeID, control string, value any) error {
	var applyErr error
	err := e.do(ctx, func() {
		if e.flow == nil {
			applyErr = ErrNoFlowLoaded
			return
		}
		n := e.flow.Node(nodeID)
		if n == nil {
			applyErr = fmt.Errorf("%w: %s", flow.ErrNodeNotFound, nodeID)
			return
		}
		applyErr = n.ApplyUserInput(control, value)
	})
	if err != nil {
		return err
	}
	if applyErr != nil {
		return fmt.Errorf("user input %s.%s: %w", nodeID, control, applyErr)
	}
	return nil
}

// Subscribe registers an observer for per-node state updates.
func (e *Executor) Subscribe(obs Observer) string {
	return e.notifier.Subscribe(obs)
}

// Unsubscribe removes an observer.
func (e *Executor) Unsubscribe(id string) {
	e.notifier.Unsubscribe(id)
}

// Status reports the engine's current state.
func (e *Executor) Status(ctx context.Context) (*dto.EngineStatus, error) {
	status := &dto.EngineStatus{}
	err := e.do(ctx, func() {
		status.Running = e.running
		status.Ticks = e.ticks
		status.TickInterval = e.interval.String()
		status.LastTick = e.lastTick
		if e.flow != nil {
			status.Nodes = e.flow.Len()
		}
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

// Close shuts the actor down. A running flow stops; pending commands fail
// with ErrEngineClosed.
func (e *Executor) Close() {
	select {
	case <-e.quit:
	default:
		close(e.quit)
	}
}

// tick executes one route -> execute -> notify cycle.
func (e *Executor) tick(now time.Time) {
	route(e.flow)

	for _, id := range e.order {
		n := e.flow.Node(id)
		outputs, err := executeNode(n, now)
		if err != nil {
			// Prior outputs stay published; the tick continues.
			log.Printf("engine: error executing node %s: %v", id, err)
			metrics.IncNodeErrors()
		} else {
			n.SetOutputs(outputs)
		}
		metrics.IncNodeExecs()
		e.notifier.Notify(id, n.Snapshot())
	}

	e.ticks++
	e.lastTick = now
	metrics.IncTicks()
}

// executeNode isolates one node's execution, converting a panic into an
// error so a misbehaving node cannot abort the tick for the rest.
func executeNode(n node.Node, now time.Time) (outputs map[string]any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()
	return n.Execute(now)
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", r)
}
