package graph

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"github.com/claimpilot/server/internal/agent/model"
)

// Reasoner is the opaque reasoning step: given the system instructions, the
// full history, and the advertised tool declarations, it produces the next
// assistant turn. A turn without proposed actions is a final answer.
// Implementations typically wrap a remote model call and own their retry and
// timeout policy.
type Reasoner interface {
	Reason(ctx context.Context, system string, turns []*model.Turn, tools []*schema.ToolInfo) (*model.Turn, error)
}

// Dispatcher resolves and executes proposed actions. *tools.Registry is the
// production implementation.
type Dispatcher interface {
	Infos() []*schema.ToolInfo
	Has(name string) bool
	Execute(ctx context.Context, action model.ProposedAction) (*model.Turn, error)
}
