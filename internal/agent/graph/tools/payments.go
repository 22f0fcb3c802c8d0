package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/claimpilot/server/internal/agent/model"
)

// ===================================
// Approve Payment Tool
// ===================================

type ApprovePaymentInput struct {
	ClaimID string  `json:"claim_id"`
	Amount  float64 `json:"amount"`
}

type ApprovePaymentOutput struct {
	ClaimID   string            `json:"claim_id"`
	Amount    float64           `json:"amount"`
	Status    model.ClaimStatus `json:"status"`
	Reference string            `json:"reference"`
}

func createApprovePaymentTool(db *ClaimsDB) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolApprovePayment,
			Desc: "Approve a payout for an open claim. Only call after a fraud check has cleared the claim; the approval rules are enforced upstream.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"claim_id": {
					Type:     "string",
					Desc:     "Claim ID to pay out, e.g. clm-000123.",
					Required: true,
				},
				"amount": {
					Type:     "number",
					Desc:     "Payout amount in the policy currency.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *ApprovePaymentInput) (*ApprovePaymentOutput, error) {
			if in.ClaimID == "" {
				return nil, fmt.Errorf("claim_id is required")
			}
			claim, ok := db.ClaimByID(in.ClaimID)
			if !ok {
				return nil, fmt.Errorf("no claim with id %q", in.ClaimID)
			}
			if claim.Status != model.ClaimStatusOpen && claim.Status != model.ClaimStatusApproved {
				return nil, fmt.Errorf("claim %s is %s and cannot be paid", claim.ID, claim.Status)
			}

			approved, _ := db.SetClaimStatus(claim.ID, model.ClaimStatusApproved)

			return &ApprovePaymentOutput{
				ClaimID:   approved.ID,
				Amount:    in.Amount,
				Status:    approved.Status,
				Reference: fmt.Sprintf("pay-%s", approved.ID),
			}, nil
		},
	)
}
