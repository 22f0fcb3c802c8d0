package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/claimpilot/server/internal/agent/model"
)

// ===================================
// Fraud Check Tool
// ===================================

type FraudCheckInput struct {
	ClaimID     string `json:"claim_id"`
	Description string `json:"description,omitempty"`
}

type FraudCheckOutput struct {
	Signal model.FraudSignal `json:"signal"`
}

// suspicious words that bump the mock risk score
var fraudKeywords = []string{"staged", "total loss", "cash only", "no witnesses"}

func createFraudCheckTool(db *ClaimsDB) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolFraudCheck,
			Desc: "Run a fraud screening against a claim. Must be run before approving any payment. Returns a risk score between 0 and 1 and whether the claim is flagged for manual review.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"claim_id": {
					Type:     "string",
					Desc:     "Claim ID to screen, e.g. clm-000123.",
					Required: true,
				},
				"description": {
					Type: "string",
					Desc: "Optional incident description to screen when it differs from the stored claim.",
				},
			}),
		},
		func(ctx context.Context, in *FraudCheckInput) (*FraudCheckOutput, error) {
			if in.ClaimID == "" {
				return nil, fmt.Errorf("claim_id is required")
			}

			claim, ok := db.ClaimByID(in.ClaimID)
			if !ok {
				return nil, fmt.Errorf("no claim with id %q", in.ClaimID)
			}

			description := in.Description
			if description == "" {
				description = claim.Description
			}

			// Deterministic mock scoring so conversations replay identically.
			score := 0.05
			if claim.Amount > 50000 {
				score += 0.5
			} else if claim.Amount > 20000 {
				score += 0.2
			}
			lower := strings.ToLower(description)
			for _, kw := range fraudKeywords {
				if strings.Contains(lower, kw) {
					score += 0.3
				}
			}
			if score > 1 {
				score = 1
			}

			signal := model.FraudSignal{
				ClaimID:   claim.ID,
				RiskScore: score,
				Flagged:   score >= 0.6,
			}
			if signal.Flagged {
				signal.Notes = "claim exceeds automatic risk threshold, route to manual review"
			}

			return &FraudCheckOutput{Signal: signal}, nil
		},
	)
}
