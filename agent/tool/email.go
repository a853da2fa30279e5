package tool

import (
	"context"
	"fmt"
	"strconv"
	"time"

	contractx "github.com/surrogate-labs/surrogate-agent/agent/contract"
	statex "github.com/surrogate-labs/surrogate-agent/agent/state"
)

// EmailPayload is the persisted draft merged with both derived compose
// links.
type EmailPayload struct {
	statex.Email
	Mailto string `json:"mailto"`
	Gmail  string `json:"gmail"`
}

// EmailHandler prepares email drafts for the user to send.
type EmailHandler struct {
	store statex.Store
	now   func() time.Time
}

var _ contractx.Handler = (*EmailHandler)(nil)

func NewEmailHandler(store statex.Store, now func() time.Time) *EmailHandler {
	return &EmailHandler{store: store, now: now}
}

func (h *EmailHandler) Execute(ctx context.Context, command string, params map[string]any) (contractx.AgentResult, error) {
	switch command {
	case "send_email":
		return h.sendEmail(ctx, params)
	default:
		return unknownCommand("email"), nil
	}
}

func (h *EmailHandler) sendEmail(ctx context.Context, params map[string]any) (contractx.AgentResult, error) {
	to := stringParam(params, "to")
	subject := stringParam(params, "subject")
	body := stringParam(params, "body")
	if to == "" || subject == "" || body == "" {
		return failure("Missing 'to', 'subject', or 'body' for email."), nil
	}

	now := h.now()
	email := statex.Email{
		ID:      strconv.FormatInt(now.UnixMilli(), 10),
		To:      to,
		Subject: subject,
		Body:    body,
		SentAt:  now.UTC(),
	}
	if err := h.store.AddEmail(ctx, email); err != nil {
		return contractx.AgentResult{}, err
	}

	return contractx.AgentResult{
		Success: true,
		Message: fmt.Sprintf("Email draft prepared for %s.", email.To),
		Data: EmailPayload{
			Email:  email,
			Mailto: MailtoURL(to, subject, body),
			Gmail:  GmailComposeURL(to, subject, body),
		},
		Kind: contractx.PayloadEmail,
	}, nil
}
