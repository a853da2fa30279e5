package orchestratornode

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/surrogate-labs/surrogate-agent/agent/contract"
)

func InvokeModel(ctx context.Context, in *GraphState, transport contractx.Transport) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	raw, err := transport.Complete(ctx, contractx.TransportRequest{
		SystemInstruction: in.Instruction,
		History:           in.History,
		UserMessage:       in.Message,
		ImageBase64:       in.ImageBase64,
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: empty completion", contractx.ErrModelInvoke)
	}

	in.RawResponse = raw
	return in, nil
}
