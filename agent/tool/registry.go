package tool

import (
	"fmt"
	"time"

	contractx "github.com/surrogate-labs/surrogate-agent/agent/contract"
	statex "github.com/surrogate-labs/surrogate-agent/agent/state"
)

// Registry maps every declared agent identifier to its handler. The
// constructor asserts completeness so a new AgentType cannot ship without
// a handler.
type Registry struct {
	handlers map[contractx.AgentType]contractx.Handler
}

var _ contractx.Registry = (*Registry)(nil)

func NewRegistry(store statex.Store, now func() time.Time) (*Registry, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store is required", contractx.ErrValidation)
	}
	if now == nil {
		now = time.Now
	}

	handlers := map[contractx.AgentType]contractx.Handler{
		contractx.AgentTypeChat:     NewChatHandler(),
		contractx.AgentTypeSchedule: NewScheduleHandler(store, now),
		contractx.AgentTypeDocs:     NewDocsHandler(store, now),
		contractx.AgentTypeSearch:   NewSearchHandler(),
		contractx.AgentTypeEmail:    NewEmailHandler(store, now),
		contractx.AgentTypePayment:  NewPaymentHandler(store, now),
		contractx.AgentTypeFinance:  NewFinanceHandler(),
	}

	for _, agent := range contractx.AllAgentTypes() {
		if _, ok := handlers[agent]; !ok {
			return nil, fmt.Errorf("%w: no handler registered for agent=%s", contractx.ErrValidation, agent)
		}
	}

	return &Registry{handlers: handlers}, nil
}

func MustNewRegistry(store statex.Store, now func() time.Time) *Registry {
	r, err := NewRegistry(store, now)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup resolves an agent identifier. It misses only for identifiers
// outside the declared enumeration; the caller treats a miss as a
// Chat-like pass-through.
func (r *Registry) Lookup(agent contractx.AgentType) (contractx.Handler, bool) {
	h, ok := r.handlers[agent]
	return h, ok
}
