package orchestratornode

import (
	"context"
	"errors"
	"testing"

	contractx "github.com/surrogate-labs/surrogate-agent/agent/contract"
)

func TestParseIntentFencedJSON(t *testing.T) {
	t.Parallel()

	in := &GraphState{
		RawResponse: "Here you go:\n```json\n{\"response\":\"Booked.\",\"detectedTone\":\"Helpful\",\"activeAgent\":\"Schedule Agent\",\"command\":\"create_event\",\"parameters\":{\"title\":\"Lunch\"}}\n```",
	}
	out, err := ParseIntent(in)
	if err != nil {
		t.Fatalf("ParseIntent() error = %v", err)
	}
	if out.Intent.ActiveAgent != contractx.AgentTypeSchedule {
		t.Fatalf("ActiveAgent = %s", out.Intent.ActiveAgent)
	}
	if out.Intent.Command != "create_event" {
		t.Fatalf("Command = %s", out.Intent.Command)
	}
	if out.ReplyText != "Booked." {
		t.Fatalf("ReplyText = %q", out.ReplyText)
	}
	if out.Intent.Parameters["title"] != "Lunch" {
		t.Fatalf("Parameters = %v", out.Intent.Parameters)
	}
}

func TestParseIntentRejectsNonJSON(t *testing.T) {
	t.Parallel()

	_, err := ParseIntent(&GraphState{RawResponse: "I cannot answer that."})
	if !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("ParseIntent() error = %v, want ErrSchemaViolation", err)
	}
}

func TestDispatchAgentSkipsChat(t *testing.T) {
	t.Parallel()

	in := &GraphState{
		ReplyText: "hi",
		Intent: contractx.Intent{
			ActiveAgent: contractx.AgentTypeChat,
			Command:     "create_event",
		},
	}
	out, err := DispatchAgent(context.Background(), in, nil)
	if err != nil {
		t.Fatalf("DispatchAgent() error = %v", err)
	}
	if out.Payload != nil || out.ReplyText != "hi" {
		t.Fatalf("chat dispatch must be a no-op: %+v", out)
	}
}
