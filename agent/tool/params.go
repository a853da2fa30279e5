package tool

import (
	"strings"

	contractx "github.com/surrogate-labs/surrogate-agent/agent/contract"
)

// stringParam reads a string-typed parameter, trimmed. Non-string values
// and absent keys read as "": required-field checks treat both the same
// way, since the model omits versus null-fills fields unpredictably.
func stringParam(params map[string]any, key string) string {
	v, ok := params[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func failure(message string) contractx.AgentResult {
	return contractx.AgentResult{Success: false, Message: message}
}

func unknownCommand(agent string) contractx.AgentResult {
	return failure("Unknown " + agent + " action.")
}
