package prompt

import (
	"strings"
	"testing"
	"time"

	contractx "github.com/surrogate-labs/surrogate-agent/agent/contract"
)

func TestRenderSystem(t *testing.T) {
	t.Parallel()

	side := contractx.SideContext{
		Now:           time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC),
		UserName:      "Boss",
		EventsSummary: "2025-03-15 19:00: Dinner",
	}
	out, err := RenderSystem(side)
	if err != nil {
		t.Fatalf("RenderSystem() error = %v", err)
	}
	for _, want := range []string{
		"User Name: Boss",
		"Existing Events in DB: 2025-03-15 19:00: Dinner",
		"Current Time: Fri, 14 Mar 2025 10:30:00 UTC",
		"Schedule Agent",
		"Financial Agent",
		"OUTPUT FORMAT (JSON ONLY)",
		`"activeAgent"`,
		`Best regards,\nBoss`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("instruction missing %q", want)
		}
	}
	if strings.Contains(out, "{{") {
		t.Fatal("unexpanded template markers left in instruction")
	}
}

func TestRenderSystemDefaults(t *testing.T) {
	t.Parallel()

	out, err := RenderSystem(contractx.SideContext{Now: time.Unix(0, 0)})
	if err != nil {
		t.Fatalf("RenderSystem() error = %v", err)
	}
	if !strings.Contains(out, "Existing Events in DB: None") {
		t.Error("empty schedule must render as None")
	}
	if !strings.Contains(out, "User Name: User") {
		t.Error("empty name must render as User")
	}
}
