package repo

import (
	"context"
	"sync"

	"github.com/claimpilot/server/internal/agent/model"
)

// MemoryCheckpointStore keeps thread states in process memory. Used by tests
// and redis-less local runs. States are deep-copied on both save and load so
// callers never share mutable history with the store.
type MemoryCheckpointStore struct {
	mu      sync.RWMutex
	threads map[string]*model.ConversationState
}

func NewMemoryCheckpointStore() *MemoryCheckpointStore {
	return &MemoryCheckpointStore{threads: make(map[string]*model.ConversationState)}
}

func (m *MemoryCheckpointStore) Load(ctx context.Context, threadID string) (*model.ConversationState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.threads[threadID]
	if !ok {
		return model.NewConversationState(threadID), nil
	}
	return state.Clone(), nil
}

func (m *MemoryCheckpointStore) Save(ctx context.Context, threadID string, state *model.ConversationState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.threads[threadID] = state.Clone()
	return nil
}

func (m *MemoryCheckpointStore) Clear(ctx context.Context, threadID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.threads, threadID)
	return nil
}

func (m *MemoryCheckpointStore) TurnCount(ctx context.Context, threadID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.threads[threadID]
	if !ok {
		return 0, nil
	}
	return len(state.Turns), nil
}

var _ model.CheckpointStore = (*MemoryCheckpointStore)(nil)
