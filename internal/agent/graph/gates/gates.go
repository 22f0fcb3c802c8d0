// Package gates holds the pre-execution checks that guard claim mutation and
// payment approval. A gate is a pure function of the conversation state and
// the proposed action: it either forwards the action (possibly rewritten) to
// the generic executor, or rejects it with a reason the reasoner can react to.
package gates

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/claimpilot/server/internal/agent/model"
)

// Outcome is the result of one gate check.
type Outcome struct {
	// Action is the action to forward; valid only when Passed.
	Action model.ProposedAction
	Passed bool
	// Reason names the failed rule when !Passed.
	Reason string
}

// Gate validates a proposed action before it reaches the tool registry.
type Gate interface {
	Name() string
	Check(state *model.ConversationState, action model.ProposedAction) Outcome
}

func pass(action model.ProposedAction) Outcome {
	return Outcome{Action: action, Passed: true}
}

func reject(reason string) Outcome {
	return Outcome{Reason: reason}
}

// canonicalClaimID resolves user-supplied claim references ("123", " CLM-000123 ")
// into the canonical clm-%06d form. Unrecognized shapes pass through untouched
// so the tool can report them.
func canonicalClaimID(raw string) string {
	id := strings.TrimSpace(raw)
	if id == "" {
		return ""
	}
	lower := strings.ToLower(id)
	if strings.HasPrefix(lower, "clm-") {
		return lower
	}
	if n, err := strconv.Atoi(id); err == nil && n >= 0 {
		return fmt.Sprintf("clm-%06d", n)
	}
	return id
}
