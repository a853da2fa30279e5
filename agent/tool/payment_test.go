package tool

import (
	"context"
	"strings"
	"testing"

	contractx "github.com/surrogate-labs/surrogate-agent/agent/contract"
	statex "github.com/surrogate-labs/surrogate-agent/agent/state"
)

func TestPaymentMakePayment(t *testing.T) {
	t.Parallel()

	store := statex.NewMemoryStore()
	h := NewPaymentHandler(store, fixedClock())

	res, err := h.Execute(context.Background(), "make_payment", map[string]any{
		"amount":    "$1,250.50",
		"recipient": "John",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !res.Success {
		t.Fatalf("Execute() failed: %s", res.Message)
	}
	if res.Kind != contractx.PayloadPayment {
		t.Fatalf("Kind = %s, want PAYMENT", res.Kind)
	}

	tx, ok := res.Data.(statex.PaymentTransaction)
	if !ok {
		t.Fatalf("unexpected payload type %T", res.Data)
	}
	if tx.Amount != 1250.50 {
		t.Fatalf("Amount = %v, want 1250.50", tx.Amount)
	}
	if tx.Currency != "USD" || tx.Description != "Payment" {
		t.Fatalf("defaults not applied: %+v", tx)
	}
	if tx.Status != "Success" {
		t.Fatalf("Status = %q", tx.Status)
	}
	if !strings.Contains(res.Message, "Sent $1250.50 USD to John") {
		t.Fatalf("Message = %q", res.Message)
	}
	if !strings.Contains(res.Message, "Ref: ") {
		t.Fatalf("Message missing reference: %q", res.Message)
	}

	payments, _ := store.Payments(context.Background())
	if len(payments) != 1 {
		t.Fatalf("persisted %d payments, want 1", len(payments))
	}
}

func TestPaymentMakePaymentMissingAmount(t *testing.T) {
	t.Parallel()

	store := statex.NewMemoryStore()
	h := NewPaymentHandler(store, fixedClock())

	for _, params := range []map[string]any{
		{"recipient": "John"},
		{"recipient": "John", "amount": "N/A"},
		{"recipient": "John", "amount": 0},
		{"amount": 50},
	} {
		res, err := h.Execute(context.Background(), "make_payment", params)
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if res.Success {
			t.Fatalf("expected failure for params %v", params)
		}
		if res.Message != "Missing amount or recipient for payment." {
			t.Fatalf("Message = %q", res.Message)
		}
	}

	payments, _ := store.Payments(context.Background())
	if len(payments) != 0 {
		t.Fatal("failed command must not persist anything")
	}
}
