package tools

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// sanitizeArguments cleans up model-produced arguments before execution.
// Best effort only; anything that cannot be repaired passes through unchanged
// and fails inside the tool with a readable message.
func sanitizeArguments(name, arguments string) string {
	var m map[string]any
	if err := json.Unmarshal([]byte(arguments), &m); err != nil {
		// keep original if not JSON
		return arguments
	}

	for _, key := range []string{"user_id", "claim_id", "description", "subject"} {
		if v, ok := m[key]; ok {
			switch vv := v.(type) {
			case string:
				m[key] = strings.TrimSpace(vv)
			default:
				m[key] = strings.TrimSpace(fmt.Sprint(v))
			}
		}
	}

	switch name {
	case ToolCreateOrUpdateClaim, ToolApprovePayment:
		// amount: number (models occasionally quote it)
		if v, ok := m["amount"]; ok {
			switch vv := v.(type) {
			case float64:
				// already numeric
			case string:
				cleaned := strings.ReplaceAll(strings.TrimSpace(vv), ",", "")
				if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
					m["amount"] = f
				} else {
					delete(m, "amount")
				}
			default:
				delete(m, "amount")
			}
		}
	}

	b, err := json.Marshal(m)
	if err != nil {
		// fallback to original
		return arguments
	}
	return string(b)
}
