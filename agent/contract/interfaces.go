package contract

import "context"

// Transport is the language-model collaborator, treated as a black box.
type Transport interface {
	// Configured reports whether a credential is available. When false the
	// orchestrator short-circuits to the offline envelope without calling
	// Complete.
	Configured() bool
	// Complete returns the raw assistant text for one turn, or an error on
	// network fault / non-success status.
	Complete(ctx context.Context, req TransportRequest) (string, error)
}

// TransportRequest is the full input of one model invocation.
type TransportRequest struct {
	SystemInstruction string
	History           []string
	UserMessage       string
	ImageBase64       string
}

// Handler executes one agent's commands. Domain failures (missing
// parameters, unknown commands) come back as AgentResult{Success: false};
// the error return is reserved for infrastructure faults, which the
// orchestrator's recovery boundary converts to the processing-error
// envelope.
type Handler interface {
	Execute(ctx context.Context, command string, params map[string]any) (AgentResult, error)
}

// Registry resolves an agent identifier to its handler. It is total over
// the declared AgentType values; Lookup misses only for identifiers outside
// the enumeration.
type Registry interface {
	Lookup(agent AgentType) (Handler, bool)
}
