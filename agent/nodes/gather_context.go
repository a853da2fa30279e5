package orchestratornode

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/surrogate-labs/surrogate-agent/agent/contract"
	statex "github.com/surrogate-labs/surrogate-agent/agent/state"
)

// GatherContext loads the side context the model grounds on: a one-line
// schedule summary and the user's name. Store failures are infrastructure
// faults and abort the run.
func GatherContext(ctx context.Context, in *GraphState, store statex.Store) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	events, err := store.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, fmt.Sprintf("%s %s: %s", e.Date, e.Time, e.Title))
	}

	profile, err := store.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	in.Side = contractx.SideContext{
		Now:           in.Now,
		EventsSummary: strings.Join(lines, "; "),
		UserName:      profile.Name,
	}
	return in, nil
}
