package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

// ===================================
// Send Confirmation Email Tool
// ===================================

type SendConfirmationEmailInput struct {
	UserID  string `json:"user_id"`
	ClaimID string `json:"claim_id"`
	Subject string `json:"subject,omitempty"`
}

type SendConfirmationEmailOutput struct {
	Delivered bool   `json:"delivered"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
}

func createSendConfirmationEmailTool(db *ClaimsDB) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolSendConfirmationEmail,
			Desc: "Send a confirmation email to the policyholder about their claim, e.g. after a claim is filed or a payment is approved.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"user_id": {
					Type:     "string",
					Desc:     "Policyholder ID of the recipient.",
					Required: true,
				},
				"claim_id": {
					Type:     "string",
					Desc:     "Claim the email is about.",
					Required: true,
				},
				"subject": {
					Type: "string",
					Desc: "Optional subject line override.",
				},
			}),
		},
		func(ctx context.Context, in *SendConfirmationEmailInput) (*SendConfirmationEmailOutput, error) {
			if in.UserID == "" {
				return nil, fmt.Errorf("user_id is required")
			}
			user, ok := db.UserByID(in.UserID)
			if !ok {
				return nil, fmt.Errorf("no policyholder with id %q", in.UserID)
			}
			if _, ok := db.ClaimByID(in.ClaimID); !ok {
				return nil, fmt.Errorf("no claim with id %q", in.ClaimID)
			}

			subject := in.Subject
			if subject == "" {
				subject = fmt.Sprintf("Update on your claim %s", in.ClaimID)
			}

			// Mock delivery; a real implementation would hand off to the
			// notification service.
			return &SendConfirmationEmailOutput{
				Delivered: true,
				To:        user.Email,
				Subject:   subject,
			}, nil
		},
	)
}
