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
// Get User Details Tool
// ===================================

type GetUserDetailsInput struct {
	UserID string `json:"user_id"`
}

type GetUserDetailsOutput struct {
	User model.User `json:"user"`
}

func createGetUserDetailsTool(db *ClaimsDB) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolGetUserDetails,
			Desc: "Look up a policyholder by their user ID. Returns name, email, and policy number. Use this before creating a claim when the claimant identity is unclear.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"user_id": {
					Type:     "string",
					Desc:     "Policyholder ID, e.g. usr-001.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *GetUserDetailsInput) (*GetUserDetailsOutput, error) {
			if in.UserID == "" {
				return nil, fmt.Errorf("user_id is required")
			}

			user, ok := db.UserByID(in.UserID)
			if !ok {
				return nil, fmt.Errorf("no policyholder with id %q", in.UserID)
			}

			return &GetUserDetailsOutput{User: user}, nil
		},
	)
}
