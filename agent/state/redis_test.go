package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewUpstashRedisStoreValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewUpstashRedisStore(UpstashRedisConfig{Token: "t"}); err == nil {
		t.Fatal("missing url must fail")
	}
	if _, err := NewUpstashRedisStore(UpstashRedisConfig{URL: "https://example.upstash.io"}); err == nil {
		t.Fatal("missing token must fail")
	}
}

func TestUpstashRedisStoreAddEventCommands(t *testing.T) {
	t.Parallel()

	var commands [][]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		if got := r.Header.Get("Authorization"); got != "Bearer token" {
			t.Errorf("Authorization = %q", got)
		}
		var cmd []any
		if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
			t.Fatalf("decode command: %v", err)
		}
		commands = append(commands, cmd)
		if cmd[0] == "GET" {
			fmt.Fprint(w, `{"result":null}`)
			return
		}
		fmt.Fprint(w, `{"result":"OK"}`)
	}))
	t.Cleanup(server.Close)

	store, err := NewUpstashRedisStore(
		UpstashRedisConfig{URL: server.URL, Token: "token"},
		WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewUpstashRedisStore() error = %v", err)
	}

	event := CalendarEvent{ID: "1", Title: "Standup", Date: "2025-03-14", Time: "09:00", Status: EventPending}
	if err := store.AddEvent(context.Background(), event); err != nil {
		t.Fatalf("AddEvent() error = %v", err)
	}

	if len(commands) != 2 {
		t.Fatalf("sent %d commands, want GET then SET", len(commands))
	}
	if commands[0][0] != "GET" || commands[0][1] != "surrogate:events" {
		t.Fatalf("first command = %v", commands[0])
	}
	if commands[1][0] != "SET" || commands[1][1] != "surrogate:events" {
		t.Fatalf("second command = %v", commands[1])
	}

	var saved []CalendarEvent
	if err := json.Unmarshal([]byte(commands[1][2].(string)), &saved); err != nil {
		t.Fatalf("saved value is not a JSON array: %v", err)
	}
	if len(saved) != 1 || saved[0].Title != "Standup" {
		t.Fatalf("saved = %+v", saved)
	}
}

func TestUpstashRedisStoreReadsDoubleEncodedValues(t *testing.T) {
	t.Parallel()

	events := []CalendarEvent{{ID: "9", Title: "Dinner", Date: "2025-03-15", Time: "19:00", Status: EventConfirmed}}
	inner, err := json.Marshal(events)
	if err != nil {
		t.Fatalf("marshal events: %v", err)
	}
	// Upstash wraps the stored string in a JSON result envelope, so the
	// value arrives double-encoded.
	outer, err := json.Marshal(map[string]string{"result": string(inner)})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(outer)
	}))
	t.Cleanup(server.Close)

	store, err := NewUpstashRedisStore(
		UpstashRedisConfig{URL: server.URL, Token: "token"},
		WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewUpstashRedisStore() error = %v", err)
	}

	got, err := store.Events(context.Background())
	if err != nil {
		t.Fatalf("Events() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "Dinner" {
		t.Fatalf("Events() = %+v", got)
	}
}

func TestUpstashRedisStoreKeyPrefixOption(t *testing.T) {
	t.Parallel()

	var gotKey any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var cmd []any
		json.NewDecoder(r.Body).Decode(&cmd)
		gotKey = cmd[1]
		fmt.Fprint(w, `{"result":null}`)
	}))
	t.Cleanup(server.Close)

	store, err := NewUpstashRedisStore(
		UpstashRedisConfig{URL: server.URL, Token: "token"},
		WithHTTPClient(server.Client()),
		WithKeyPrefix("staging:"),
	)
	if err != nil {
		t.Fatalf("NewUpstashRedisStore() error = %v", err)
	}

	if _, err := store.Documents(context.Background()); err != nil {
		t.Fatalf("Documents() error = %v", err)
	}
	if gotKey != "staging:documents" {
		t.Fatalf("key = %v, want staging:documents", gotKey)
	}
}

func TestUpstashRedisStoreSurfacesRedisErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":"WRONGPASS invalid token"}`)
	}))
	t.Cleanup(server.Close)

	store, err := NewUpstashRedisStore(
		UpstashRedisConfig{URL: server.URL, Token: "bad"},
		WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewUpstashRedisStore() error = %v", err)
	}

	if _, err := store.Events(context.Background()); err == nil {
		t.Fatal("redis error must propagate")
	}
}

func TestUpstashRedisStoreProfileDefault(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":null}`)
	}))
	t.Cleanup(server.Close)

	store, err := NewUpstashRedisStore(
		UpstashRedisConfig{URL: server.URL, Token: "token"},
		WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewUpstashRedisStore() error = %v", err)
	}

	profile, err := store.Profile(context.Background())
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if profile.Name != "Boss" {
		t.Fatalf("Name = %q, want default", profile.Name)
	}
}

func TestUpstashRedisStoreSessionValidation(t *testing.T) {
	t.Parallel()

	store := &UpstashRedisStore{keyPrefix: defaultKeyPrefix}
	if _, err := store.Session(context.Background(), "  "); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("Session() error = %v, want ErrInvalidSession", err)
	}
	if err := store.SaveSession(context.Background(), ChatSession{}); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("SaveSession() error = %v, want ErrInvalidSession", err)
	}
}
