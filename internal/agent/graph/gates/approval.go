package gates

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/claimpilot/server/internal/agent/graph/tools"
	"github.com/claimpilot/server/internal/agent/model"
	logx "github.com/claimpilot/server/pkg/logger"
)

const (
	ReasonFraudCheckMissing  = "fraud check missing"
	ReasonFraudCheckFlagged  = "claim is flagged by the fraud check"
	ReasonClaimIDMissing     = "claim_id is missing"
	ReasonAmountAboveCeiling = "amount exceeds the auto-approval ceiling"
	ReasonAlreadyApproved    = "a payment was already approved for this claim"
	ReasonPaymentMalformed   = "payment arguments are not a JSON object"
)

// ApprovalGate enforces the payment business rules: a cleared fraud check must
// already be in history, the amount must sit under the auto-approval ceiling,
// and the claim must not have been paid in this conversation already.
type ApprovalGate struct {
	ceiling float64
}

func NewApprovalGate(cfg model.ApprovalRulesConfig) *ApprovalGate {
	return &ApprovalGate{ceiling: cfg.AutoApproveCeiling}
}

func (g *ApprovalGate) Name() string {
	return "approval-rule-gate"
}

type approvePaymentArgs struct {
	ClaimID string `json:"claim_id"`
	Amount  any    `json:"amount"`
}

func (g *ApprovalGate) Check(state *model.ConversationState, action model.ProposedAction) Outcome {
	var args approvePaymentArgs
	if err := json.Unmarshal(action.Arguments, &args); err != nil {
		logx.Debug().Err(err).Str("gate", g.Name()).Msg("Rejecting malformed payment payload")
		return reject(ReasonPaymentMalformed)
	}

	claimID := canonicalClaimID(args.ClaimID)
	if claimID == "" {
		return reject(ReasonClaimIDMissing)
	}
	amount, ok := coerceAmount(args.Amount)
	if !ok || amount <= 0 {
		return reject(ReasonAmountMissing)
	}
	if amount > g.ceiling {
		return reject(fmt.Sprintf("%s (%.2f > %.2f)", ReasonAmountAboveCeiling, amount, g.ceiling))
	}

	signal, found := latestFraudSignal(state, claimID)
	if !found {
		return reject(ReasonFraudCheckMissing)
	}
	if signal.Flagged {
		return reject(ReasonFraudCheckFlagged)
	}

	if paymentAlreadyApproved(state, claimID) {
		return reject(ReasonAlreadyApproved)
	}

	b, err := json.Marshal(map[string]any{
		"claim_id": claimID,
		"amount":   amount,
	})
	if err != nil {
		return reject(ReasonPaymentMalformed)
	}

	forwarded := action
	forwarded.Arguments = b
	return pass(forwarded)
}

// latestFraudSignal scans history newest-first for a successful fraud_check
// result covering the claim.
func latestFraudSignal(state *model.ConversationState, claimID string) (model.FraudSignal, bool) {
	for i := len(state.Turns) - 1; i >= 0; i-- {
		t := state.Turns[i]
		if t == nil || t.Role != model.RoleTool || t.IsError || t.ActionName != tools.ToolFraudCheck {
			continue
		}
		var out struct {
			Signal model.FraudSignal `json:"signal"`
		}
		if err := json.Unmarshal([]byte(t.Content), &out); err != nil {
			continue
		}
		if strings.EqualFold(out.Signal.ClaimID, claimID) {
			return out.Signal, true
		}
	}
	return model.FraudSignal{}, false
}

func paymentAlreadyApproved(state *model.ConversationState, claimID string) bool {
	for _, t := range state.Turns {
		if t == nil || t.Role != model.RoleTool || t.IsError || t.ActionName != tools.ToolApprovePayment {
			continue
		}
		var out struct {
			ClaimID string `json:"claim_id"`
		}
		if err := json.Unmarshal([]byte(t.Content), &out); err != nil {
			continue
		}
		if strings.EqualFold(out.ClaimID, claimID) {
			return true
		}
	}
	return false
}

var _ Gate = (*ApprovalGate)(nil)
