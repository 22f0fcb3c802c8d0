package graph

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/claimpilot/server/internal/agent/graph/gates"
	"github.com/claimpilot/server/internal/agent/graph/tools"
	"github.com/claimpilot/server/internal/agent/model"
	logx "github.com/claimpilot/server/pkg/logger"
)

const DefaultMaxSteps = 12

// Config holds everything needed to assemble the engine end-to-end.
type Config struct {
	Reasoner     Reasoner
	Registry     Dispatcher
	ClaimGate    gates.Gate
	ApprovalGate gates.Gate
	Store        model.CheckpointStore
	SystemPrompt string
	Run          model.RunConfig
}

// Engine drives a run: reason, route, dispatch, append, loop, bounded by the
// configured step count. One Engine serves many threads; runs on different
// threads are independent and share only the read-only registry.
type Engine struct {
	reasoner     Reasoner
	registry     Dispatcher
	router       *Router
	claimGate    gates.Gate
	approvalGate gates.Gate
	store        model.CheckpointStore
	system       string
	maxSteps     int

	mu     sync.Mutex
	active map[string]struct{}
}

// NewEngine validates the wiring and assembles the engine.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Reasoner == nil {
		return nil, fmt.Errorf("reasoner is nil")
	}
	if cfg.Registry == nil {
		return nil, fmt.Errorf("tool registry is nil")
	}
	if cfg.ClaimGate == nil || cfg.ApprovalGate == nil {
		return nil, fmt.Errorf("validation gates are not properly initialized")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("checkpoint store is nil")
	}

	router, err := NewRouter(cfg.Registry)
	if err != nil {
		return nil, err
	}

	maxSteps := cfg.Run.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	return &Engine{
		reasoner:     cfg.Reasoner,
		registry:     cfg.Registry,
		router:       router,
		claimGate:    cfg.ClaimGate,
		approvalGate: cfg.ApprovalGate,
		store:        cfg.Store,
		system:       cfg.SystemPrompt,
		maxSteps:     maxSteps,
		active:       make(map[string]struct{}),
	}, nil
}

// Run processes one user message on a thread and returns the final assistant
// text once the router terminates. At most one run may be active per thread;
// a concurrent second invocation fails with ErrThreadBusy.
func (e *Engine) Run(ctx context.Context, threadID, userMessage string) (string, error) {
	if threadID == "" {
		return "", fmt.Errorf("thread_id is required")
	}
	if !e.acquire(threadID) {
		return "", fmt.Errorf("%w: %s", ErrThreadBusy, threadID)
	}
	defer e.release(threadID)

	state, err := e.store.Load(ctx, threadID)
	if err != nil {
		return "", fmt.Errorf("load thread %s: %w", threadID, err)
	}

	// A new user message starts a fresh run with a fresh step count.
	state.Steps = 0
	state.Append(model.UserTurn(userMessage))
	if err := e.store.Save(ctx, threadID, state); err != nil {
		return "", fmt.Errorf("save thread %s: %w", threadID, err)
	}

	for {
		// Cancellation is honored between suspend points; whatever is already
		// appended stays persisted.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if state.Steps >= e.maxSteps {
			logx.Warn().
				Str("thread_id", threadID).
				Int("max_steps", e.maxSteps).
				Msg("Run exceeded step bound")
			return "", fmt.Errorf("%w: %d steps", ErrStepBoundExceeded, e.maxSteps)
		}

		assistant, err := e.reasoner.Reason(ctx, e.system, state.Clone().Turns, e.registry.Infos())
		if err != nil {
			return "", fmt.Errorf("reasoner: %w", err)
		}
		state.Append(assistant)
		if err := e.store.Save(ctx, threadID, state); err != nil {
			return "", fmt.Errorf("save thread %s: %w", threadID, err)
		}

		targets, err := e.router.Route(assistant)
		if err != nil {
			logx.Error().Err(err).Str("thread_id", threadID).Msg("Routing failed")
			return "", err
		}
		if len(targets) == 1 && targets[0].Kind == TargetTerminate {
			logx.Debug().Str("thread_id", threadID).Msg("Run terminated with a final answer")
			return assistant.Content, nil
		}

		results, err := e.dispatch(ctx, state, targets)
		if err != nil {
			return "", err
		}

		state.Append(results...)
		state.Steps++
		if err := e.store.Save(ctx, threadID, state); err != nil {
			return "", fmt.Errorf("save thread %s: %w", threadID, err)
		}
	}
}

// dispatch fans the batch out to its targets and joins before returning.
// Results are ordered by the action's position in the batch, not by
// completion time, so replays are reproducible.
func (e *Engine) dispatch(ctx context.Context, state *model.ConversationState, targets []Target) ([]*model.Turn, error) {
	// Gates scan history; give every target the same immutable snapshot.
	snapshot := state.Clone()
	results := make([]*model.Turn, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	for i, target := range targets {
		g.Go(func() error {
			turn, err := e.executeTarget(gctx, snapshot, target)
			if err != nil {
				return err
			}
			results[i] = turn
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// executeTarget runs a single resolved target. Gate rejections and tool
// failures come back as turns; only contract breaks surface as errors.
func (e *Engine) executeTarget(ctx context.Context, snapshot *model.ConversationState, target Target) (*model.Turn, error) {
	switch target.Kind {
	case TargetClaimGate:
		return e.runGate(ctx, e.claimGate, snapshot, target.Action)
	case TargetApprovalGate:
		return e.runGate(ctx, e.approvalGate, snapshot, target.Action)
	case TargetTool:
		return e.execute(ctx, target.Action)
	default:
		return nil, fmt.Errorf("%w: target %s is not executable", ErrInvariantViolation, target.Kind)
	}
}

// runGate checks the action against the gate; on pass the (possibly enriched)
// action goes to the generic executor, on rejection the guarded tool is never
// invoked and the reasoner sees the reason on its next turn.
func (e *Engine) runGate(ctx context.Context, gate gates.Gate, snapshot *model.ConversationState, action model.ProposedAction) (*model.Turn, error) {
	outcome := gate.Check(snapshot, action)
	if !outcome.Passed {
		logx.Debug().
			Str("gate", gate.Name()).
			Str("tool_name", action.Name).
			Str("reason", outcome.Reason).
			Msg("Gate rejected proposed action")
		return model.ToolFailureTurn(action, fmt.Sprintf("%s rejected %s: %s", gate.Name(), action.Name, outcome.Reason)), nil
	}
	return e.execute(ctx, outcome.Action)
}

func (e *Engine) execute(ctx context.Context, action model.ProposedAction) (*model.Turn, error) {
	turn, err := e.registry.Execute(ctx, action)
	if err != nil {
		if errors.Is(err, tools.ErrUnregisteredTool) {
			// The router vets names before dispatch, so this is a programming
			// error, not a user-facing condition.
			return nil, fmt.Errorf("%w: %v", ErrInvariantViolation, err)
		}
		return nil, err
	}
	return turn, nil
}

func (e *Engine) acquire(threadID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, busy := e.active[threadID]; busy {
		return false
	}
	e.active[threadID] = struct{}{}
	return true
}

func (e *Engine) release(threadID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.active, threadID)
}
