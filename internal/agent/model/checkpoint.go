package model

import "context"

// CheckpointStore persists conversation state keyed by thread ID so a run can
// resume from the last completed turn after a process restart. Last write wins;
// no cross-thread transactions.
type CheckpointStore interface {
	// Load retrieves the state for a thread. An unknown thread yields a fresh
	// empty state, not an error.
	Load(ctx context.Context, threadID string) (*ConversationState, error)

	// Save persists the state for a thread.
	Save(ctx context.Context, threadID string, state *ConversationState) error

	// Clear removes all persisted state for a thread.
	Clear(ctx context.Context, threadID string) error

	// TurnCount returns the number of turns persisted for the thread.
	TurnCount(ctx context.Context, threadID string) (int, error)
}
