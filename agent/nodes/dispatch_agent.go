package orchestratornode

import (
	"context"
	"fmt"

	contractx "github.com/surrogate-labs/surrogate-agent/agent/contract"
)

// DispatchAgent runs the handler the model selected and folds its result
// into the reply. Three outcomes:
//   - no dispatch (Chat, no command, or an identifier outside the
//     registry): the model's text passes through untouched;
//   - handler success: payload attached, message appended after a blank
//     line;
//   - handler domain failure: the reply gets a trailing system note and
//     no payload.
//
// Handler errors are infrastructure faults and abort the run.
func DispatchAgent(ctx context.Context, in *GraphState, registry contractx.Registry) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	agent := in.Intent.ActiveAgent
	if agent == "" || agent == contractx.AgentTypeChat || in.Intent.Command == "" {
		return in, nil
	}

	handler, ok := registry.Lookup(agent)
	if !ok {
		return in, nil
	}

	params := in.Intent.Parameters
	if params == nil {
		params = map[string]any{}
	}

	result, err := handler.Execute(ctx, in.Intent.Command, params)
	if err != nil {
		return nil, fmt.Errorf("execute %s %s: %w", agent, in.Intent.Command, err)
	}

	if result.Success {
		in.Payload = result.Data
		in.Kind = result.Kind
		if result.Message != "" {
			if in.ReplyText == "" {
				in.ReplyText = result.Message
			} else {
				in.ReplyText += "\n\n" + result.Message
			}
		}
	} else {
		in.ReplyText += fmt.Sprintf(" (System: %s)", result.Message)
	}

	return in, nil
}
