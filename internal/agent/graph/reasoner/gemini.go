package reasoner

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/claimpilot/server/internal/agent/model"
	logx "github.com/claimpilot/server/pkg/logger"
)

// GeminiConfig holds the configuration for the Gemini-backed reasoner.
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   model.ReasonerModelConfig
}

// GeminiReasoner adapts a Gemini chat model to the engine's Reasoner
// contract: history in, one assistant turn out.
type GeminiReasoner struct {
	chatModel *gemini.ChatModel
	modelName string

	bindOnce sync.Once
	bindErr  error
	idSeq    atomic.Int64
}

// NewGeminiReasoner creates the genai client and chat model.
func NewGeminiReasoner(ctx context.Context, cfg GeminiConfig) (*GeminiReasoner, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Model.Model,
		Temperature: &cfg.Model.Temperature,
		MaxTokens:   &cfg.Model.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating reasoner chat model")
		return nil, fmt.Errorf("error creating reasoner chat model: %w", err)
	}

	return &GeminiReasoner{chatModel: chatModel, modelName: cfg.Model.Model}, nil
}

// Reason sends the system prompt plus converted history to the model and
// converts the reply back into a turn. Tool declarations are bound on first
// use; the registry is immutable after startup so one binding is enough.
func (r *GeminiReasoner) Reason(ctx context.Context, system string, turns []*model.Turn, tools []*schema.ToolInfo) (*model.Turn, error) {
	r.bindOnce.Do(func() {
		if len(tools) == 0 {
			return
		}
		if err := r.chatModel.BindTools(tools); err != nil {
			r.bindErr = fmt.Errorf("bind tools: %w", err)
		}
	})
	if r.bindErr != nil {
		return nil, r.bindErr
	}

	messages := make([]*schema.Message, 0, len(turns)+1)
	messages = append(messages, schema.SystemMessage(system))
	for _, t := range turns {
		messages = append(messages, toSchemaMessage(t))
	}

	out, err := r.chatModel.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	if out == nil {
		return nil, fmt.Errorf("model returned no message")
	}

	logx.Debug().
		Str("model", r.modelName).
		Int("tool_call_count", len(out.ToolCalls)).
		Msg("Reasoner produced a turn")

	return r.fromSchemaMessage(out), nil
}

func toSchemaMessage(t *model.Turn) *schema.Message {
	switch t.Role {
	case model.RoleUser:
		return schema.UserMessage(t.Content)
	case model.RoleTool:
		return &schema.Message{
			Role:       schema.Tool,
			Content:    t.Content,
			ToolCallID: t.ActionID,
		}
	default:
		msg := &schema.Message{
			Role:    schema.Assistant,
			Content: t.Content,
		}
		for _, a := range t.Actions {
			msg.ToolCalls = append(msg.ToolCalls, schema.ToolCall{
				ID:   a.ID,
				Type: "function",
				Function: schema.FunctionCall{
					Name:      a.Name,
					Arguments: string(a.Arguments),
				},
			})
		}
		return msg
	}
}

// fromSchemaMessage converts the model reply, synthesizing tool-call IDs when
// the provider omits them (the Gemini OpenAI-compat path sometimes does).
func (r *GeminiReasoner) fromSchemaMessage(out *schema.Message) *model.Turn {
	actions := make([]model.ProposedAction, 0, len(out.ToolCalls))
	for _, tc := range out.ToolCalls {
		id := strings.TrimSpace(tc.ID)
		if id == "" {
			id = fmt.Sprintf("call_%d", r.idSeq.Add(1))
		}
		actions = append(actions, model.ProposedAction{
			ID:        id,
			Name:      tc.Function.Name,
			Arguments: []byte(tc.Function.Arguments),
		})
	}
	return model.AssistantTurn(out.Content, actions)
}
