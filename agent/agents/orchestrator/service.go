package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	contractx "github.com/surrogate-labs/surrogate-agent/agent/contract"
	nodex "github.com/surrogate-labs/surrogate-agent/agent/nodes"
	statex "github.com/surrogate-labs/surrogate-agent/agent/state"
)

type Orchestrator struct {
	store     statex.Store
	transport contractx.Transport
	registry  contractx.Registry

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	now func() time.Time
}

type Option func(*Orchestrator)

// WithClock overrides the wall clock. Tests pin it to get stable record
// IDs and schedule summaries.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

func New(store statex.Store, transport contractx.Transport, registry contractx.Registry, opts ...Option) (*Orchestrator, error) {
	if store == nil {
		return nil, errors.New("state store is required")
	}
	if transport == nil {
		return nil, errors.New("model transport is required")
	}
	if registry == nil {
		return nil, errors.New("handler registry is required")
	}

	o := &Orchestrator{
		store:     store,
		transport: transport,
		registry:  registry,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}

	graphRunner, err := o.compileRespondGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// Respond runs one turn through the pipeline. It never returns an error:
// an unconfigured transport yields the offline envelope, and any pipeline
// failure collapses into the generic error envelope so the conversation
// surface always has something to render.
func (o *Orchestrator) Respond(ctx context.Context, req contractx.Request) contractx.ReplyEnvelope {
	if !o.transport.Configured() {
		return OfflineEnvelope()
	}

	out, err := o.graphRunner.Invoke(ctx, nodex.GraphInput{
		Message:     req.Message,
		History:     req.History,
		ImageBase64: req.ImageBase64,
	})
	if err != nil {
		log.Error().Err(err).Msg("respond pipeline failed")
		return ProcessingErrorEnvelope()
	}
	return out
}

func OfflineEnvelope() contractx.ReplyEnvelope {
	return contractx.ReplyEnvelope{
		Text:     "I'm offline. Please check the OpenRouter API configuration.",
		Tone:     "Neutral",
		Language: "en",
		Agent:    contractx.AgentTypeChat,
	}
}

func ProcessingErrorEnvelope() contractx.ReplyEnvelope {
	return contractx.ReplyEnvelope{
		Text:     "I encountered a processing error. Please try again.",
		Tone:     "Error",
		Language: "en",
		Agent:    contractx.AgentTypeChat,
	}
}
