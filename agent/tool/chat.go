package tool

import (
	"context"

	contractx "github.com/surrogate-labs/surrogate-agent/agent/contract"
)

// ChatHandler has no command surface. It exists so the registry is total
// over every agent identifier; plain conversation carries no side effect.
type ChatHandler struct{}

var _ contractx.Handler = (*ChatHandler)(nil)

func NewChatHandler() *ChatHandler {
	return &ChatHandler{}
}

func (h *ChatHandler) Execute(ctx context.Context, command string, params map[string]any) (contractx.AgentResult, error) {
	return contractx.AgentResult{Success: true}, nil
}
