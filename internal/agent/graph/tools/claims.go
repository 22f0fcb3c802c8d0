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
// Create / Update Claim Tool
// ===================================

type CreateOrUpdateClaimInput struct {
	ClaimID     string  `json:"claim_id,omitempty"`
	UserID      string  `json:"user_id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type CreateOrUpdateClaimOutput struct {
	Claim   model.Claim `json:"claim"`
	Created bool        `json:"created"`
}

func createCreateOrUpdateClaimTool(db *ClaimsDB) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolCreateOrUpdateClaim,
			Desc: "Create a new insurance claim or update an existing one. Requires the claimant's user ID, an incident description, and the requested amount. Omit claim_id to open a new claim.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"claim_id": {
					Type: "string",
					Desc: "Existing claim ID to update, e.g. clm-000123. Omit to create a new claim.",
				},
				"user_id": {
					Type:     "string",
					Desc:     "Policyholder ID of the claimant.",
					Required: true,
				},
				"description": {
					Type:     "string",
					Desc:     "What happened, in the claimant's words.",
					Required: true,
				},
				"amount": {
					Type:     "number",
					Desc:     "Requested amount in the policy currency.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *CreateOrUpdateClaimInput) (*CreateOrUpdateClaimOutput, error) {
			if in.UserID == "" {
				return nil, fmt.Errorf("user_id is required")
			}
			if _, ok := db.UserByID(in.UserID); !ok {
				return nil, fmt.Errorf("no policyholder with id %q", in.UserID)
			}

			_, existed := db.ClaimByID(in.ClaimID)
			claim := db.UpsertClaim(model.Claim{
				ID:          in.ClaimID,
				UserID:      in.UserID,
				Description: in.Description,
				Amount:      in.Amount,
			})

			return &CreateOrUpdateClaimOutput{Claim: claim, Created: !existed}, nil
		},
	)
}
