package tool

import (
	"context"
	"fmt"
	"strconv"
	"time"

	contractx "github.com/surrogate-labs/surrogate-agent/agent/contract"
	"github.com/surrogate-labs/surrogate-agent/agent/numeric"
	statex "github.com/surrogate-labs/surrogate-agent/agent/state"
)

// PaymentHandler records simulated transactions. No money moves: status is
// fixed to "Success" and the record exists only as a confirmation.
type PaymentHandler struct {
	store statex.Store
	now   func() time.Time
}

var _ contractx.Handler = (*PaymentHandler)(nil)

func NewPaymentHandler(store statex.Store, now func() time.Time) *PaymentHandler {
	return &PaymentHandler{store: store, now: now}
}

func (h *PaymentHandler) Execute(ctx context.Context, command string, params map[string]any) (contractx.AgentResult, error) {
	switch command {
	case "make_payment":
		return h.makePayment(ctx, params)
	default:
		return unknownCommand("payment"), nil
	}
}

func (h *PaymentHandler) makePayment(ctx context.Context, params map[string]any) (contractx.AgentResult, error) {
	recipient := stringParam(params, "recipient")
	amount := numeric.Normalize(params["amount"])
	if recipient == "" || amount == 0 {
		return failure("Missing amount or recipient for payment."), nil
	}

	currency := stringParam(params, "currency")
	if currency == "" {
		currency = "USD"
	}
	description := stringParam(params, "description")
	if description == "" {
		description = "Payment"
	}

	now := h.now()
	tx := statex.PaymentTransaction{
		ID:          strconv.FormatInt(now.UnixMilli(), 10),
		Amount:      amount,
		Currency:    currency,
		Recipient:   recipient,
		Description: description,
		Status:      "Success",
		Timestamp:   now.UTC(),
	}
	if err := h.store.AddPayment(ctx, tx); err != nil {
		return contractx.AgentResult{}, err
	}

	ref := tx.ID
	if len(ref) > 6 {
		ref = ref[len(ref)-6:]
	}

	return contractx.AgentResult{
		Success: true,
		Message: fmt.Sprintf("✅ Payment Processed\nSent $%.2f %s to %s\nRef: %s", tx.Amount, tx.Currency, tx.Recipient, ref),
		Data:    tx,
		Kind:    contractx.PayloadPayment,
	}, nil
}
