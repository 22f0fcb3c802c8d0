package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTurnConstructors(t *testing.T) {
	user := UserTurn("hello")
	require.Equal(t, RoleUser, user.Role)
	require.False(t, user.HasActions())

	act := ProposedAction{ID: "c1", Name: "fraud_check", Arguments: []byte(`{}`)}
	assistant := AssistantTurn("", []ProposedAction{act})
	require.Equal(t, RoleAssistant, assistant.Role)
	require.True(t, assistant.HasActions())

	result := ToolResultTurn(act, "ok")
	require.Equal(t, RoleTool, result.Role)
	require.Equal(t, "c1", result.ActionID)
	require.Equal(t, "fraud_check", result.ActionName)
	require.False(t, result.IsError)

	failure := ToolFailureTurn(act, "boom")
	require.True(t, failure.IsError)
	require.Equal(t, "boom", failure.Content)
}

func TestConversationStateAppendAndLast(t *testing.T) {
	state := NewConversationState("th-1")
	require.Nil(t, state.Last())

	state.Append(UserTurn("one"), UserTurn("two"))
	require.Len(t, state.Turns, 2)
	require.Equal(t, "two", state.Last().Content)
}

func TestConversationStateCloneIsDeep(t *testing.T) {
	state := NewConversationState("th-1")
	state.Append(AssistantTurn("", []ProposedAction{
		{ID: "c1", Name: "fraud_check", Arguments: []byte(`{"claim_id":"clm-000123"}`)},
	}))
	state.Steps = 3

	clone := state.Clone()
	require.Equal(t, state.ThreadID, clone.ThreadID)
	require.Equal(t, state.Steps, clone.Steps)
	require.Equal(t, state.Turns, clone.Turns)

	clone.Turns[0].Content = "mutated"
	clone.Turns[0].Actions[0].Name = "other"
	clone.Append(UserTurn("extra"))

	require.Empty(t, state.Turns[0].Content)
	require.Equal(t, "fraud_check", state.Turns[0].Actions[0].Name)
	require.Len(t, state.Turns, 1)
}
