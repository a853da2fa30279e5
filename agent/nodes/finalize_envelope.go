package orchestratornode

import (
	"fmt"

	contractx "github.com/surrogate-labs/surrogate-agent/agent/contract"
)

// FinalizeEnvelope applies the rendering defaults. The raw agent
// identifier is preserved even when it missed the registry so the caller
// can see what the model actually picked.
func FinalizeEnvelope(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	out := GraphOutput{
		Text:     in.ReplyText,
		Tone:     in.Intent.DetectedTone,
		Language: in.Intent.DetectedLanguage,
		Agent:    in.Intent.ActiveAgent,
		Payload:  in.Payload,
		Kind:     in.Kind,
	}
	if out.Text == "" {
		out.Text = "Processed."
	}
	if out.Tone == "" {
		out.Tone = "Neutral"
	}
	if out.Language == "" {
		out.Language = "en"
	}
	if out.Agent == "" {
		out.Agent = contractx.AgentTypeChat
	}
	return out, nil
}
