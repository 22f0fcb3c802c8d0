package gates

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/claimpilot/server/internal/agent/graph/tools"
	"github.com/claimpilot/server/internal/agent/model"
)

func newApprovalGate() *ApprovalGate {
	return NewApprovalGate(model.ApprovalRulesConfig{AutoApproveCeiling: 10000})
}

func payAction(args string) model.ProposedAction {
	return model.ProposedAction{ID: "p1", Name: tools.ToolApprovePayment, Arguments: []byte(args)}
}

func fraudResultTurn(claimID string, flagged bool) *model.Turn {
	content := fmt.Sprintf(`{"signal":{"claim_id":%q,"risk_score":0.2,"flagged":%t}}`, claimID, flagged)
	return model.ToolResultTurn(model.ProposedAction{ID: "f1", Name: tools.ToolFraudCheck}, content)
}

func paymentResultTurn(claimID string) *model.Turn {
	content := fmt.Sprintf(`{"claim_id":%q,"amount":4200,"status":"approved"}`, claimID)
	return model.ToolResultTurn(model.ProposedAction{ID: "p0", Name: tools.ToolApprovePayment}, content)
}

func TestApprovalGateRequiresClaimID(t *testing.T) {
	gate := newApprovalGate()
	state := model.NewConversationState("th-1")

	out := gate.Check(state, payAction(`{"amount":4200}`))
	require.False(t, out.Passed)
	require.Equal(t, ReasonClaimIDMissing, out.Reason)
}

func TestApprovalGateEnforcesCeiling(t *testing.T) {
	gate := newApprovalGate()
	state := model.NewConversationState("th-1")
	state.Append(fraudResultTurn("clm-000123", false))

	out := gate.Check(state, payAction(`{"claim_id":"clm-000123","amount":25000}`))
	require.False(t, out.Passed)
	require.Contains(t, out.Reason, ReasonAmountAboveCeiling)
}

func TestApprovalGateRequiresFraudCheckInHistory(t *testing.T) {
	gate := newApprovalGate()
	state := model.NewConversationState("th-1")

	out := gate.Check(state, payAction(`{"claim_id":"clm-000123","amount":4200}`))
	require.False(t, out.Passed)
	require.Equal(t, ReasonFraudCheckMissing, out.Reason)
}

func TestApprovalGateIgnoresFraudCheckForOtherClaims(t *testing.T) {
	gate := newApprovalGate()
	state := model.NewConversationState("th-1")
	state.Append(fraudResultTurn("clm-000999", false))

	out := gate.Check(state, payAction(`{"claim_id":"clm-000123","amount":4200}`))
	require.False(t, out.Passed)
	require.Equal(t, ReasonFraudCheckMissing, out.Reason)
}

func TestApprovalGateRejectsFlaggedClaims(t *testing.T) {
	gate := newApprovalGate()
	state := model.NewConversationState("th-1")
	state.Append(fraudResultTurn("clm-000123", true))

	out := gate.Check(state, payAction(`{"claim_id":"clm-000123","amount":4200}`))
	require.False(t, out.Passed)
	require.Equal(t, ReasonFraudCheckFlagged, out.Reason)
}

func TestApprovalGateRejectsDuplicatePayment(t *testing.T) {
	gate := newApprovalGate()
	state := model.NewConversationState("th-1")
	state.Append(fraudResultTurn("clm-000123", false))
	state.Append(paymentResultTurn("clm-000123"))

	out := gate.Check(state, payAction(`{"claim_id":"clm-000123","amount":4200}`))
	require.False(t, out.Passed)
	require.Equal(t, ReasonAlreadyApproved, out.Reason)
}

func TestApprovalGateForwardsNormalizedPayment(t *testing.T) {
	gate := newApprovalGate()
	state := model.NewConversationState("th-1")
	state.Append(fraudResultTurn("clm-000123", false))

	out := gate.Check(state, payAction(`{"claim_id":"123","amount":"4,200"}`))
	require.True(t, out.Passed)

	var forwarded struct {
		ClaimID string  `json:"claim_id"`
		Amount  float64 `json:"amount"`
	}
	require.NoError(t, json.Unmarshal(out.Action.Arguments, &forwarded))
	require.Equal(t, "clm-000123", forwarded.ClaimID)
	require.InDelta(t, 4200, forwarded.Amount, 0.001)
}

func TestApprovalGateUsesLatestFraudSignal(t *testing.T) {
	gate := newApprovalGate()
	state := model.NewConversationState("th-1")
	state.Append(fraudResultTurn("clm-000123", true))
	state.Append(fraudResultTurn("clm-000123", false))

	out := gate.Check(state, payAction(`{"claim_id":"clm-000123","amount":4200}`))
	require.True(t, out.Passed)
}
