package model

import "encoding/json"

// Role identifies the origin of a turn in the message history.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ProposedAction is a structured tool-call intent attached to an assistant
// turn. Name must match a registered tool; Arguments is the raw JSON payload
// whose schema is owned by the named tool.
type ProposedAction struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// Turn is one immutable entry in the message history. Assistant turns may
// carry proposed actions; tool turns reference the action they answer via
// ActionID/ActionName and flag failures with IsError.
type Turn struct {
	Role       Role             `json:"role"`
	Content    string           `json:"content"`
	Actions    []ProposedAction `json:"actions,omitempty"`
	ActionID   string           `json:"action_id,omitempty"`
	ActionName string           `json:"action_name,omitempty"`
	IsError    bool             `json:"is_error,omitempty"`
}

// UserTurn builds a user-authored turn.
func UserTurn(content string) *Turn {
	return &Turn{Role: RoleUser, Content: content}
}

// AssistantTurn builds an assistant turn. A turn with no actions is a final
// answer and signals termination.
func AssistantTurn(content string, actions []ProposedAction) *Turn {
	return &Turn{Role: RoleAssistant, Content: content, Actions: actions}
}

// ToolResultTurn builds a tool-result turn answering the given action.
func ToolResultTurn(action ProposedAction, content string) *Turn {
	return &Turn{
		Role:       RoleTool,
		Content:    content,
		ActionID:   action.ID,
		ActionName: action.Name,
	}
}

// ToolFailureTurn builds a tool-result turn describing a failure. Failures
// stay inside the conversation; the reasoner sees them on its next turn.
func ToolFailureTurn(action ProposedAction, reason string) *Turn {
	t := ToolResultTurn(action, reason)
	t.IsError = true
	return t
}

// HasActions reports whether the turn proposes at least one tool call.
func (t *Turn) HasActions() bool {
	return t != nil && len(t.Actions) > 0
}

// ConversationState is the unit of execution for one thread: the append-only
// history plus the step counter bounding the run.
type ConversationState struct {
	ThreadID string  `json:"thread_id"`
	Turns    []*Turn `json:"turns"`
	Steps    int     `json:"steps"`
}

// NewConversationState returns a fresh state for the thread.
func NewConversationState(threadID string) *ConversationState {
	return &ConversationState{ThreadID: threadID}
}

// Append adds turns to the history. Past turns are never edited; appending is
// the only mutation the engine performs.
func (s *ConversationState) Append(turns ...*Turn) {
	s.Turns = append(s.Turns, turns...)
}

// Last returns the most recent turn, or nil for an empty history.
func (s *ConversationState) Last() *Turn {
	if len(s.Turns) == 0 {
		return nil
	}
	return s.Turns[len(s.Turns)-1]
}

// Clone returns a deep copy so collaborators can inspect history without
// aliasing the engine's state.
func (s *ConversationState) Clone() *ConversationState {
	out := &ConversationState{ThreadID: s.ThreadID, Steps: s.Steps}
	out.Turns = make([]*Turn, len(s.Turns))
	for i, t := range s.Turns {
		c := *t
		if t.Actions != nil {
			c.Actions = make([]ProposedAction, len(t.Actions))
			copy(c.Actions, t.Actions)
		}
		out.Turns[i] = &c
	}
	return out
}
