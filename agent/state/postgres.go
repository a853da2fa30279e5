package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

type PostgresConfig struct {
	DSN     string        `envconfig:"DSN" split_words:"true" required:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

// PostgresStore keeps one table per collection.
type PostgresStore struct {
	db *bun.DB
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(cfg PostgresConfig) (*PostgresStore, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	opts := []pgdriver.Option{pgdriver.WithDSN(dsn)}
	if cfg.Timeout > 0 {
		opts = append(opts, pgdriver.WithTimeout(cfg.Timeout))
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(opts...))
	return &PostgresStore{db: bun.NewDB(sqldb, pgdialect.New())}, nil
}

// Migrate creates missing tables. Idempotent.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	models := []any{
		(*CalendarEvent)(nil),
		(*TextDocument)(nil),
		(*Email)(nil),
		(*PaymentTransaction)(nil),
		(*ChatSession)(nil),
		(*UserProfile)(nil),
	}
	for _, model := range models {
		if _, err := s.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) Events(ctx context.Context) ([]CalendarEvent, error) {
	var events []CalendarEvent
	if err := s.db.NewSelect().Model(&events).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}
	return events, nil
}

func (s *PostgresStore) AddEvent(ctx context.Context, event CalendarEvent) error {
	if _, err := s.db.NewInsert().Model(&event).Exec(ctx); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateEventStatus(ctx context.Context, id string, status EventStatus) (*CalendarEvent, error) {
	var event CalendarEvent
	err := s.db.NewSelect().Model(&event).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select event: %w", err)
	}

	event.Status = status
	if _, err := s.db.NewUpdate().Model(&event).Column("status").WherePK().Exec(ctx); err != nil {
		return nil, fmt.Errorf("update event status: %w", err)
	}
	return &event, nil
}

func (s *PostgresStore) DeleteEvent(ctx context.Context, id string) error {
	res, err := s.db.NewDelete().Model((*CalendarEvent)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Documents(ctx context.Context) ([]TextDocument, error) {
	var docs []TextDocument
	if err := s.db.NewSelect().Model(&docs).Order("created_at ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("select documents: %w", err)
	}
	return docs, nil
}

func (s *PostgresStore) AddDocument(ctx context.Context, doc TextDocument) error {
	if _, err := s.db.NewInsert().Model(&doc).Exec(ctx); err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (s *PostgresStore) Emails(ctx context.Context) ([]Email, error) {
	var emails []Email
	if err := s.db.NewSelect().Model(&emails).Order("sent_at ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("select emails: %w", err)
	}
	return emails, nil
}

func (s *PostgresStore) AddEmail(ctx context.Context, email Email) error {
	if _, err := s.db.NewInsert().Model(&email).Exec(ctx); err != nil {
		return fmt.Errorf("insert email: %w", err)
	}
	return nil
}

func (s *PostgresStore) Payments(ctx context.Context) ([]PaymentTransaction, error) {
	var payments []PaymentTransaction
	if err := s.db.NewSelect().Model(&payments).Order("created_at ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("select payments: %w", err)
	}
	return payments, nil
}

func (s *PostgresStore) AddPayment(ctx context.Context, tx PaymentTransaction) error {
	if _, err := s.db.NewInsert().Model(&tx).Exec(ctx); err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (s *PostgresStore) Sessions(ctx context.Context) ([]ChatSession, error) {
	var sessions []ChatSession
	if err := s.db.NewSelect().Model(&sessions).Order("updated_at DESC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("select sessions: %w", err)
	}
	return sessions, nil
}

func (s *PostgresStore) Session(ctx context.Context, id string) (*ChatSession, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidSession
	}
	var session ChatSession
	err := s.db.NewSelect().Model(&session).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select session: %w", err)
	}
	return &session, nil
}

func (s *PostgresStore) SaveSession(ctx context.Context, session ChatSession) error {
	if strings.TrimSpace(session.ID) == "" {
		return ErrInvalidSession
	}
	_, err := s.db.NewInsert().
		Model(&session).
		On("CONFLICT (id) DO UPDATE").
		Set("title = EXCLUDED.title").
		Set("messages = EXCLUDED.messages").
		Set("last_message = EXCLUDED.last_message").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteSession(ctx context.Context, id string) error {
	if _, err := s.db.NewDelete().Model((*ChatSession)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *PostgresStore) Profile(ctx context.Context) (UserProfile, error) {
	var profile UserProfile
	err := s.db.NewSelect().Model(&profile).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DefaultProfile(), nil
		}
		return UserProfile{}, fmt.Errorf("select profile: %w", err)
	}
	return profile, nil
}

func (s *PostgresStore) SaveProfile(ctx context.Context, profile UserProfile) error {
	profile.ID = 1
	_, err := s.db.NewInsert().
		Model(&profile).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("preferred_language = EXCLUDED.preferred_language").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
