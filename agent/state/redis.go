package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultKeyPrefix     = "surrogate:"
	maxResponseSizeBytes = 2 << 20

	collectionEvents   = "events"
	collectionDocs     = "documents"
	collectionEmails   = "emails"
	collectionPayments = "payments"
	collectionSessions = "chat_sessions"
	keyProfile         = "profile"
)

// StoreOption customizes UpstashRedisStore.
type StoreOption func(*UpstashRedisStore)

func WithKeyPrefix(prefix string) StoreOption {
	return func(s *UpstashRedisStore) {
		if trimmed := strings.TrimSpace(prefix); trimmed != "" {
			s.keyPrefix = trimmed
		}
	}
}

func WithHTTPClient(client *http.Client) StoreOption {
	return func(s *UpstashRedisStore) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// UpstashRedisStore persists each collection as one JSON array value in
// Upstash Redis, accessed over the REST API. Writes are whole-collection
// read-modify-write round trips; see the Store doc for the isolation
// caveat.
type UpstashRedisStore struct {
	baseURL    string
	token      string
	httpClient *http.Client
	keyPrefix  string
}

var _ Store = (*UpstashRedisStore)(nil)

type redisRESTResponse struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

type UpstashRedisConfig struct {
	URL     string        `envconfig:"URL" split_words:"true" required:"true"`
	Token   string        `envconfig:"TOKEN" split_words:"true" required:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

func NewUpstashRedisStore(cfg UpstashRedisConfig, opts ...StoreOption) (*UpstashRedisStore, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if baseURL == "" {
		return nil, errors.New("upstash redis url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid redis rest url: %w", err)
	}

	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("upstash redis token is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	store := &UpstashRedisStore{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		keyPrefix:  defaultKeyPrefix,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}

	return store, nil
}

func (s *UpstashRedisStore) Events(ctx context.Context) ([]CalendarEvent, error) {
	return loadList[CalendarEvent](ctx, s, collectionEvents)
}

func (s *UpstashRedisStore) AddEvent(ctx context.Context, event CalendarEvent) error {
	events, err := loadList[CalendarEvent](ctx, s, collectionEvents)
	if err != nil {
		return err
	}
	return saveList(ctx, s, collectionEvents, append(events, event))
}

func (s *UpstashRedisStore) UpdateEventStatus(ctx context.Context, id string, status EventStatus) (*CalendarEvent, error) {
	events, err := loadList[CalendarEvent](ctx, s, collectionEvents)
	if err != nil {
		return nil, err
	}
	for i := range events {
		if events[i].ID == id {
			events[i].Status = status
			if err := saveList(ctx, s, collectionEvents, events); err != nil {
				return nil, err
			}
			updated := events[i]
			return &updated, nil
		}
	}
	return nil, ErrNotFound
}

func (s *UpstashRedisStore) DeleteEvent(ctx context.Context, id string) error {
	events, err := loadList[CalendarEvent](ctx, s, collectionEvents)
	if err != nil {
		return err
	}
	for i := range events {
		if events[i].ID == id {
			return saveList(ctx, s, collectionEvents, append(events[:i], events[i+1:]...))
		}
	}
	return ErrNotFound
}

func (s *UpstashRedisStore) Documents(ctx context.Context) ([]TextDocument, error) {
	return loadList[TextDocument](ctx, s, collectionDocs)
}

func (s *UpstashRedisStore) AddDocument(ctx context.Context, doc TextDocument) error {
	docs, err := loadList[TextDocument](ctx, s, collectionDocs)
	if err != nil {
		return err
	}
	return saveList(ctx, s, collectionDocs, append(docs, doc))
}

func (s *UpstashRedisStore) Emails(ctx context.Context) ([]Email, error) {
	return loadList[Email](ctx, s, collectionEmails)
}

func (s *UpstashRedisStore) AddEmail(ctx context.Context, email Email) error {
	emails, err := loadList[Email](ctx, s, collectionEmails)
	if err != nil {
		return err
	}
	return saveList(ctx, s, collectionEmails, append(emails, email))
}

func (s *UpstashRedisStore) Payments(ctx context.Context) ([]PaymentTransaction, error) {
	return loadList[PaymentTransaction](ctx, s, collectionPayments)
}

func (s *UpstashRedisStore) AddPayment(ctx context.Context, tx PaymentTransaction) error {
	payments, err := loadList[PaymentTransaction](ctx, s, collectionPayments)
	if err != nil {
		return err
	}
	return saveList(ctx, s, collectionPayments, append(payments, tx))
}

func (s *UpstashRedisStore) Sessions(ctx context.Context) ([]ChatSession, error) {
	return loadList[ChatSession](ctx, s, collectionSessions)
}

func (s *UpstashRedisStore) Session(ctx context.Context, id string) (*ChatSession, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidSession
	}
	sessions, err := loadList[ChatSession](ctx, s, collectionSessions)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].ID == id {
			found := sessions[i]
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *UpstashRedisStore) SaveSession(ctx context.Context, session ChatSession) error {
	if strings.TrimSpace(session.ID) == "" {
		return ErrInvalidSession
	}
	sessions, err := loadList[ChatSession](ctx, s, collectionSessions)
	if err != nil {
		return err
	}
	replaced := false
	for i := range sessions {
		if sessions[i].ID == session.ID {
			sessions[i] = session
			replaced = true
			break
		}
	}
	if !replaced {
		sessions = append(sessions, session)
	}
	return saveList(ctx, s, collectionSessions, sessions)
}

func (s *UpstashRedisStore) DeleteSession(ctx context.Context, id string) error {
	sessions, err := loadList[ChatSession](ctx, s, collectionSessions)
	if err != nil {
		return err
	}
	kept := sessions[:0]
	for _, sess := range sessions {
		if sess.ID != id {
			kept = append(kept, sess)
		}
	}
	return saveList(ctx, s, collectionSessions, kept)
}

func (s *UpstashRedisStore) Profile(ctx context.Context) (UserProfile, error) {
	raw, err := s.getValue(ctx, keyProfile)
	if err != nil {
		return UserProfile{}, err
	}
	if raw == "" {
		return DefaultProfile(), nil
	}
	var profile UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return UserProfile{}, fmt.Errorf("unmarshal profile: %w", err)
	}
	return profile, nil
}

func (s *UpstashRedisStore) SaveProfile(ctx context.Context, profile UserProfile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	_, err = s.exec(ctx, []any{"SET", s.key(keyProfile), string(payload)})
	return err
}

func loadList[T any](ctx context.Context, s *UpstashRedisStore, collection string) ([]T, error) {
	raw, err := s.getValue(ctx, collection)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("unmarshal collection %s: %w", collection, err)
	}
	return items, nil
}

func saveList[T any](ctx context.Context, s *UpstashRedisStore, collection string, items []T) error {
	if items == nil {
		items = []T{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal collection %s: %w", collection, err)
	}
	_, err = s.exec(ctx, []any{"SET", s.key(collection), string(payload)})
	return err
}

// getValue returns the stored JSON text at a key, or "" when unset.
// Upstash encodes the result as a JSON string, so values come back
// double-encoded.
func (s *UpstashRedisStore) getValue(ctx context.Context, name string) (string, error) {
	resp, err := s.exec(ctx, []any{"GET", s.key(name)})
	if err != nil {
		return "", err
	}

	result := bytes.TrimSpace(resp.Result)
	if len(result) == 0 || bytes.Equal(result, []byte("null")) {
		return "", nil
	}

	var encoded string
	if err := json.Unmarshal(result, &encoded); err != nil {
		return "", fmt.Errorf("decode value at %s: %w", name, err)
	}
	return encoded, nil
}

func (s *UpstashRedisStore) key(name string) string {
	return s.keyPrefix + name
}

func (s *UpstashRedisStore) exec(ctx context.Context, command []any) (*redisRESTResponse, error) {
	if len(command) == 0 {
		return nil, errors.New("empty redis command")
	}

	body, err := json.Marshal(command)
	if err != nil {
		return nil, fmt.Errorf("marshal redis command: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build redis request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute redis request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("read redis response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("redis http status=%d body=%s", resp.StatusCode, string(raw))
	}

	var parsed redisRESTResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode redis response: %w", err)
	}
	if parsed.Error != "" {
		return nil, errors.New(parsed.Error)
	}
	return &parsed, nil
}
