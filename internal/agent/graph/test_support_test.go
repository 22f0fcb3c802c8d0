package graph

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cloudwego/eino/schema"

	"github.com/claimpilot/server/internal/agent/graph/tools"
	"github.com/claimpilot/server/internal/agent/model"
)

// scriptedReasoner replays a fixed sequence of assistant turns. When the
// script runs out it keeps returning the last turn.
type scriptedReasoner struct {
	mu    sync.Mutex
	turns []*model.Turn
	calls int

	// entered/proceed let tests hold a run inside the reasoning suspend point.
	entered chan struct{}
	proceed chan struct{}
}

func (s *scriptedReasoner) Reason(ctx context.Context, system string, turns []*model.Turn, infos []*schema.ToolInfo) (*model.Turn, error) {
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.proceed != nil {
		select {
		case <-s.proceed:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.calls
	if idx >= len(s.turns) {
		idx = len(s.turns) - 1
	}
	s.calls++
	turn := *s.turns[idx]
	return &turn, nil
}

// fakeDispatcher is an in-test Dispatcher recording every executed action in
// invocation order. Per-tool delays simulate executors finishing out of order.
type fakeDispatcher struct {
	mu       sync.Mutex
	handlers map[string]func(action model.ProposedAction) (*model.Turn, error)
	delays   map[string]time.Duration
	executed []model.ProposedAction
}

func newFakeDispatcher() *fakeDispatcher {
	return &fakeDispatcher{
		handlers: make(map[string]func(action model.ProposedAction) (*model.Turn, error)),
		delays:   make(map[string]time.Duration),
	}
}

func (f *fakeDispatcher) handle(name string, fn func(action model.ProposedAction) (*model.Turn, error)) {
	f.handlers[name] = fn
}

func (f *fakeDispatcher) reply(name, content string) {
	f.handle(name, func(action model.ProposedAction) (*model.Turn, error) {
		return model.ToolResultTurn(action, content), nil
	})
}

func (f *fakeDispatcher) Infos() []*schema.ToolInfo {
	infos := make([]*schema.ToolInfo, 0, len(f.handlers))
	for name := range f.handlers {
		infos = append(infos, &schema.ToolInfo{Name: name})
	}
	return infos
}

func (f *fakeDispatcher) Has(name string) bool {
	_, ok := f.handlers[name]
	return ok
}

func (f *fakeDispatcher) Execute(ctx context.Context, action model.ProposedAction) (*model.Turn, error) {
	if delay, ok := f.delays[action.Name]; ok {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	handler, ok := f.handlers[action.Name]
	f.executed = append(f.executed, action)
	f.mu.Unlock()

	// A nil handler models a name the router knows but the executor does not,
	// the condition the engine must treat as an invariant violation.
	if !ok || handler == nil {
		return nil, fmt.Errorf("%w: %q", tools.ErrUnregisteredTool, action.Name)
	}
	return handler(action)
}

func (f *fakeDispatcher) executedNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, len(f.executed))
	for i, a := range f.executed {
		names[i] = a.Name
	}
	return names
}

func action(id, name, args string) model.ProposedAction {
	return model.ProposedAction{ID: id, Name: name, Arguments: []byte(args)}
}

// fraudSignalJSON is the wire shape the approval gate scans history for.
func fraudSignalJSON(claimID string, flagged bool) string {
	return fmt.Sprintf(`{"signal":{"claim_id":%q,"risk_score":0.1,"flagged":%t}}`, claimID, flagged)
}
