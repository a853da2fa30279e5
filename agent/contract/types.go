package contract

import "time"

// AgentType identifies one capability domain. The values are wire-visible:
// the model selects an agent by returning one of these strings in the
// activeAgent field, so they must match the instruction prompt exactly.
type AgentType string

const (
	AgentTypeChat     AgentType = "Chat Agent"
	AgentTypeSchedule AgentType = "Schedule Agent"
	AgentTypeDocs     AgentType = "Docs Agent"
	AgentTypeSearch   AgentType = "Search Agent"
	AgentTypeEmail    AgentType = "Email Agent"
	AgentTypePayment  AgentType = "Payment Agent"
	AgentTypeFinance  AgentType = "Financial Agent"
)

// AllAgentTypes returns every declared agent identifier. The registry
// constructor asserts it has a handler for each of them.
func AllAgentTypes() []AgentType {
	return []AgentType{
		AgentTypeChat,
		AgentTypeSchedule,
		AgentTypeDocs,
		AgentTypeSearch,
		AgentTypeEmail,
		AgentTypePayment,
		AgentTypeFinance,
	}
}

// Known reports whether a is one of the declared agent identifiers.
func (a AgentType) Known() bool {
	for _, t := range AllAgentTypes() {
		if a == t {
			return true
		}
	}
	return false
}

// PayloadKind tags the shape of a handler payload for rendering.
// This is a closed set; adding a value is a breaking change to the
// envelope contract.
type PayloadKind string

const (
	PayloadEvent         PayloadKind = "EVENT"
	PayloadDoc           PayloadKind = "DOC"
	PayloadSearchResult  PayloadKind = "SEARCH_RESULT"
	PayloadEmail         PayloadKind = "EMAIL"
	PayloadPayment       PayloadKind = "PAYMENT"
	PayloadFinanceReport PayloadKind = "FINANCE_REPORT"
)

// Intent is the parsed view of a model response.
// Invariant: Command set implies ActiveAgent set; an absent ActiveAgent
// defaults to the Chat pass-through during finalization.
type Intent struct {
	Response         string         `json:"response"`
	DetectedTone     string         `json:"detectedTone"`
	DetectedLanguage string         `json:"detectedLanguage"`
	ActiveAgent      AgentType      `json:"activeAgent"`
	Command          string         `json:"command,omitempty"`
	Parameters       map[string]any `json:"parameters,omitempty"`
}

// AgentResult is the uniform handler output. Success=false carries no
// payload; Message then explains the failure for display and for appending
// to the reply text.
type AgentResult struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    any         `json:"data,omitempty"`
	Kind    PayloadKind `json:"payloadType,omitempty"`
}

// ReplyEnvelope is the orchestrator's return value and the sole contract
// the rendering layer depends on.
type ReplyEnvelope struct {
	Text     string      `json:"text"`
	Tone     string      `json:"tone"`
	Language string      `json:"language"`
	Agent    AgentType   `json:"agent"`
	Payload  any         `json:"payload,omitempty"`
	Kind     PayloadKind `json:"payloadType,omitempty"`
}

// Request is one conversation turn handed to the orchestrator.
// History holds prior turns already flattened to "Sender: text" lines.
// ImageBase64, when set, is a data URL attached as an image content part.
type Request struct {
	Message     string   `json:"message"`
	History     []string `json:"history,omitempty"`
	ImageBase64 string   `json:"image_base64,omitempty"`
}

// SideContext is the store-derived context interpolated into the system
// instruction: the clock reading for this turn, a compact summary of
// persisted events, and the user's display name.
type SideContext struct {
	Now           time.Time
	EventsSummary string
	UserName      string
}
