package orchestratornode

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/surrogate-labs/surrogate-agent/agent/contract"
)

// ValidateRequest rejects empty turns. A message is allowed to be blank
// only when an image rides along (e.g., "what is this?" sent as a bare
// photo).
func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" && in.ImageBase64 == "" {
		return nil, fmt.Errorf("%w: message is empty", contractx.ErrValidation)
	}

	return &GraphState{
		GraphInput: GraphInput{
			Message:     message,
			History:     in.History,
			ImageBase64: in.ImageBase64,
		},
		Now: nowFn(),
	}, nil
}
