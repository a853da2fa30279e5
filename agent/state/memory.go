package state

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps all collections in process memory. It backs the local
// store mode and the test suite. Internally synchronized because the REPL
// shares one instance across turns.
type MemoryStore struct {
	mu       sync.RWMutex
	events   []CalendarEvent
	docs     []TextDocument
	emails   []Email
	payments []PaymentTransaction
	sessions map[string]ChatSession
	profile  *UserProfile
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]ChatSession),
	}
}

func (s *MemoryStore) Events(ctx context.Context) ([]CalendarEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]CalendarEvent, len(s.events))
	copy(out, s.events)
	return out, nil
}

func (s *MemoryStore) AddEvent(ctx context.Context, event CalendarEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *MemoryStore) UpdateEventStatus(ctx context.Context, id string, status EventStatus) (*CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID == id {
			s.events[i].Status = status
			updated := s.events[i]
			return &updated, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) Documents(ctx context.Context) ([]TextDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]TextDocument, len(s.docs))
	copy(out, s.docs)
	return out, nil
}

func (s *MemoryStore) AddDocument(ctx context.Context, doc TextDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, doc)
	return nil
}

func (s *MemoryStore) Emails(ctx context.Context) ([]Email, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Email, len(s.emails))
	copy(out, s.emails)
	return out, nil
}

func (s *MemoryStore) AddEmail(ctx context.Context, email Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emails = append(s.emails, email)
	return nil
}

func (s *MemoryStore) Payments(ctx context.Context) ([]PaymentTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]PaymentTransaction, len(s.payments))
	copy(out, s.payments)
	return out, nil
}

func (s *MemoryStore) AddPayment(ctx context.Context, tx PaymentTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = append(s.payments, tx)
	return nil
}

func (s *MemoryStore) Sessions(ctx context.Context) ([]ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ChatSession, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (s *MemoryStore) Session(ctx context.Context, id string) (*ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (s *MemoryStore) SaveSession(ctx context.Context, session ChatSession) error {
	if session.ID == "" {
		return ErrInvalidSession
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *MemoryStore) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) Profile(ctx context.Context) (UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return DefaultProfile(), nil
	}
	return *s.profile, nil
}

func (s *MemoryStore) SaveProfile(ctx context.Context, profile UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = &profile
	return nil
}
