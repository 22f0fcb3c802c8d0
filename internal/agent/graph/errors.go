package graph

import "errors"

var (
	// ErrUnknownAction is returned when the reasoner proposes a tool name the
	// routing table has never heard of. Run-level failure, not silently dropped.
	ErrUnknownAction = errors.New("reasoner proposed an unknown action")
	// ErrInvariantViolation marks an internal contract break: malformed
	// reasoner output shape, or routing to an unregistered tool. Fatal to the
	// run, never retried.
	ErrInvariantViolation = errors.New("orchestration invariant violated")
	// ErrStepBoundExceeded is the run safety valve. History persisted up to
	// the last completed turn is retained.
	ErrStepBoundExceeded = errors.New("run exceeded the configured step bound")
	// ErrThreadBusy rejects a second concurrent run on the same thread.
	ErrThreadBusy = errors.New("another run is already active for this thread")
)
