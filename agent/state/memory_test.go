package state

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreEvents(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.AddEvent(ctx, CalendarEvent{ID: "1", Title: "a", Date: "2025-03-10", Time: "09:00", Status: EventPending}); err != nil {
		t.Fatalf("AddEvent() error = %v", err)
	}

	updated, err := store.UpdateEventStatus(ctx, "1", EventConfirmed)
	if err != nil {
		t.Fatalf("UpdateEventStatus() error = %v", err)
	}
	if updated.Status != EventConfirmed {
		t.Fatalf("Status = %s", updated.Status)
	}

	if _, err := store.UpdateEventStatus(ctx, "missing", EventConfirmed); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateEventStatus(missing) error = %v, want ErrNotFound", err)
	}

	if err := store.DeleteEvent(ctx, "1"); err != nil {
		t.Fatalf("DeleteEvent() error = %v", err)
	}
	if err := store.DeleteEvent(ctx, "1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("DeleteEvent(again) error = %v, want ErrNotFound", err)
	}

	events, err := store.Events(ctx)
	if err != nil {
		t.Fatalf("Events() error = %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("len(events) = %d", len(events))
	}
}

func TestMemoryStoreEventsCopyOut(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()
	if err := store.AddEvent(ctx, CalendarEvent{ID: "1", Title: "a", Status: EventPending}); err != nil {
		t.Fatalf("AddEvent() error = %v", err)
	}

	events, _ := store.Events(ctx)
	events[0].Title = "mutated"

	again, _ := store.Events(ctx)
	if again[0].Title != "a" {
		t.Fatal("caller mutation leaked into the store")
	}
}

func TestMemoryStoreSessions(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.SaveSession(ctx, ChatSession{}); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("SaveSession(empty id) error = %v, want ErrInvalidSession", err)
	}

	base := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	older := ChatSession{ID: "s1", Title: "first", UpdatedAt: base}
	newer := ChatSession{ID: "s2", Title: "second", UpdatedAt: base.Add(time.Hour)}
	for _, sess := range []ChatSession{older, newer} {
		if err := store.SaveSession(ctx, sess); err != nil {
			t.Fatalf("SaveSession() error = %v", err)
		}
	}

	sessions, err := store.Sessions(ctx)
	if err != nil {
		t.Fatalf("Sessions() error = %v", err)
	}
	if len(sessions) != 2 || sessions[0].ID != "s2" {
		t.Fatalf("sessions not ordered most recent first: %+v", sessions)
	}

	got, err := store.Session(ctx, "s1")
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	if got.Title != "first" {
		t.Fatalf("Title = %q", got.Title)
	}

	// Saving the same ID replaces the session.
	older.Title = "renamed"
	if err := store.SaveSession(ctx, older); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}
	got, _ = store.Session(ctx, "s1")
	if got.Title != "renamed" {
		t.Fatalf("Title = %q after resave", got.Title)
	}

	if err := store.DeleteSession(ctx, "s1"); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}
	if _, err := store.Session(ctx, "s1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Session(deleted) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreProfileDefault(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	profile, err := store.Profile(ctx)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if profile.Name != "Boss" || profile.PreferredLanguage != "en" {
		t.Fatalf("unexpected default profile: %+v", profile)
	}

	if err := store.SaveProfile(ctx, UserProfile{Name: "Ayesha", PreferredLanguage: "ur"}); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}
	profile, _ = store.Profile(ctx)
	if profile.Name != "Ayesha" {
		t.Fatalf("Name = %q", profile.Name)
	}
}
