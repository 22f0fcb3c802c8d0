package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/claimpilot/server/internal/agent/model"
	logx "github.com/claimpilot/server/pkg/logger"
)

// ErrUnregisteredTool means dispatch was asked to run a name the registry has
// never seen. The router only routes registered names, so hitting this is a
// programming error upstream.
var ErrUnregisteredTool = errors.New("tool is not registered")

// Registry owns the tool declarations and executors. Immutable after
// construction; safe for concurrent Execute calls.
type Registry struct {
	tools map[string]tool.InvokableTool
	infos []*schema.ToolInfo
}

// NewRegistry indexes the given tools by declared name.
func NewRegistry(ctx context.Context, base ...tool.BaseTool) (*Registry, error) {
	r := &Registry{tools: make(map[string]tool.InvokableTool, len(base))}
	for _, t := range base {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("read tool info: %w", err)
		}
		inv, ok := t.(tool.InvokableTool)
		if !ok {
			return nil, fmt.Errorf("tool %q is not invokable", info.Name)
		}
		if _, dup := r.tools[info.Name]; dup {
			return nil, fmt.Errorf("duplicate tool %q", info.Name)
		}
		r.tools[info.Name] = inv
		r.infos = append(r.infos, info)
	}
	return r, nil
}

// DefaultTools returns the insurance toolset backed by the given claims store.
func DefaultTools(db *ClaimsDB) []tool.BaseTool {
	return []tool.BaseTool{
		createGetUserDetailsTool(db),
		createFraudCheckTool(db),
		createCreateOrUpdateClaimTool(db),
		createApprovePaymentTool(db),
		createSendConfirmationEmailTool(db),
	}
}

// Infos returns the tool declarations for advertising to the reasoner.
func (r *Registry) Infos() []*schema.ToolInfo {
	out := make([]*schema.ToolInfo, len(r.infos))
	copy(out, r.infos)
	return out
}

// Has reports whether a tool name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.tools[name]
	return ok
}

// Execute runs the named tool and converts the outcome into a tool-result
// turn. Executor failures are absorbed into an error-flavored turn; only an
// unregistered name is returned as a Go error.
func (r *Registry) Execute(ctx context.Context, action model.ProposedAction) (*model.Turn, error) {
	inv, ok := r.tools[action.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnregisteredTool, action.Name)
	}

	args := sanitizeArguments(action.Name, string(action.Arguments))

	out, err := inv.InvokableRun(ctx, args)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logx.Debug().
			Str("tool_name", action.Name).
			Err(err).
			Msg("Tool execution failed; feeding failure back to reasoner")
		return model.ToolFailureTurn(action, fmt.Sprintf("tool %s failed: %v", action.Name, err)), nil
	}

	return model.ToolResultTurn(action, out), nil
}
