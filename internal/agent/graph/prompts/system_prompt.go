package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/claimpilot/server/internal/agent/graph/tools"
	"github.com/claimpilot/server/internal/agent/model"
)

//go:embed template/system_prompt.txt
var coreSystemPrompt string

// RenderSystem renders the claims-assistant system prompt.
func RenderSystem(ctx context.Context, config model.PromptConfig) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(coreSystemPrompt),
	)
	vars := map[string]any{
		"BusinessName": config.BusinessName,
		"UserTool":     tools.ToolGetUserDetails,
		"ClaimTool":    tools.ToolCreateOrUpdateClaim,
		"FraudTool":    tools.ToolFraudCheck,
		"PaymentTool":  tools.ToolApprovePayment,
		"EmailTool":    tools.ToolSendConfirmationEmail,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("system prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("system prompt render: empty result")
	}
	return msgs[0].Content, nil
}
