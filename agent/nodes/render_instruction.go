package orchestratornode

import (
	"fmt"

	contractx "github.com/surrogate-labs/surrogate-agent/agent/contract"
	"github.com/surrogate-labs/surrogate-agent/agent/prompt"
)

func RenderInstruction(in *GraphState) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	instruction, err := prompt.RenderSystem(in.Side)
	if err != nil {
		return nil, err
	}
	in.Instruction = instruction
	return in, nil
}
