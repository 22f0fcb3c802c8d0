package graph

import (
	"fmt"
	"strings"

	"github.com/claimpilot/server/internal/agent/graph/tools"
	"github.com/claimpilot/server/internal/agent/model"
	logx "github.com/claimpilot/server/pkg/logger"
)

// TargetKind is the tagged variant of the router's next node. Using an enum
// instead of string-matched branching keeps the dispatch exhaustive.
type TargetKind int

const (
	// TargetTerminate ends the run; the assistant turn's content is the answer.
	TargetTerminate TargetKind = iota
	// TargetClaimGate routes the action through the claim-detail gate first.
	TargetClaimGate
	// TargetApprovalGate routes the action through the approval-rule gate first.
	TargetApprovalGate
	// TargetTool dispatches straight to the generic tool executor.
	TargetTool
)

func (k TargetKind) String() string {
	switch k {
	case TargetTerminate:
		return "terminate"
	case TargetClaimGate:
		return "claim-detail-gate"
	case TargetApprovalGate:
		return "approval-rule-gate"
	case TargetTool:
		return "tool-executor"
	default:
		return fmt.Sprintf("target(%d)", int(k))
	}
}

// Target is one resolved next node, carrying the action it was resolved for.
type Target struct {
	Kind   TargetKind
	Action model.ProposedAction
}

// Router classifies the latest reasoner turn into next nodes. Pure function
// of the turn content; safe to call from multiple runs at once.
type Router struct {
	registry Dispatcher
}

func NewRouter(registry Dispatcher) (*Router, error) {
	if registry == nil {
		return nil, fmt.Errorf("registry is nil")
	}
	return &Router{registry: registry}, nil
}

// Route computes one target per proposed action, in action order. An
// assistant turn with no actions is authoritative and yields a single
// terminate target. Every action in a batch is classified independently so a
// mis-routed one cannot stall the rest.
func (r *Router) Route(turn *model.Turn) ([]Target, error) {
	if turn == nil {
		return nil, fmt.Errorf("%w: router received a nil turn", ErrInvariantViolation)
	}
	if turn.Role != model.RoleAssistant {
		return nil, fmt.Errorf("%w: router received a %s turn, want assistant", ErrInvariantViolation, turn.Role)
	}
	if !turn.HasActions() {
		return []Target{{Kind: TargetTerminate}}, nil
	}

	targets := make([]Target, 0, len(turn.Actions))
	for _, action := range turn.Actions {
		name := strings.TrimSpace(action.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: proposed action %q has no name", ErrInvariantViolation, action.ID)
		}

		switch name {
		case tools.ToolCreateOrUpdateClaim:
			targets = append(targets, Target{Kind: TargetClaimGate, Action: action})
		case tools.ToolApprovePayment:
			targets = append(targets, Target{Kind: TargetApprovalGate, Action: action})
		default:
			if !r.registry.Has(name) {
				return nil, fmt.Errorf("%w: %q", ErrUnknownAction, name)
			}
			targets = append(targets, Target{Kind: TargetTool, Action: action})
		}
	}

	logx.Debug().Int("action_count", len(targets)).Msg("Routed reasoner actions")
	return targets, nil
}
