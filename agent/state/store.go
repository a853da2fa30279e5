package state

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrInvalidSession = errors.New("session id is empty")
)

// Store is the key-partitioned persistence contract the agents write
// through. Each collection exposes plain CRUD; read-modify-write sequences
// are not transactionally isolated (the intended caller issues at most one
// in-flight request per conversation session, so last writer wins is
// acceptable).
type Store interface {
	Events(ctx context.Context) ([]CalendarEvent, error)
	AddEvent(ctx context.Context, event CalendarEvent) error
	UpdateEventStatus(ctx context.Context, id string, status EventStatus) (*CalendarEvent, error)
	DeleteEvent(ctx context.Context, id string) error

	Documents(ctx context.Context) ([]TextDocument, error)
	AddDocument(ctx context.Context, doc TextDocument) error

	Emails(ctx context.Context) ([]Email, error)
	AddEmail(ctx context.Context, email Email) error

	Payments(ctx context.Context) ([]PaymentTransaction, error)
	AddPayment(ctx context.Context, tx PaymentTransaction) error

	Sessions(ctx context.Context) ([]ChatSession, error)
	Session(ctx context.Context, id string) (*ChatSession, error)
	SaveSession(ctx context.Context, session ChatSession) error
	DeleteSession(ctx context.Context, id string) error

	Profile(ctx context.Context) (UserProfile, error)
	SaveProfile(ctx context.Context, profile UserProfile) error
}
