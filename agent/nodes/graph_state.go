package orchestratornode

import (
	"time"

	contractx "github.com/surrogate-labs/surrogate-agent/agent/contract"
)

type GraphInput struct {
	Message     string
	History     []string
	ImageBase64 string
}

type GraphOutput = contractx.ReplyEnvelope

// GraphState is the single mutable value threaded through the pipeline.
// Each node reads what upstream nodes filled in and adds its own fields.
type GraphState struct {
	GraphInput
	Now time.Time

	Side        contractx.SideContext
	Instruction string

	RawResponse string
	Intent      contractx.Intent

	ReplyText string
	Payload   any
	Kind      contractx.PayloadKind
}
