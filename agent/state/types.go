package state

import (
	"time"

	"github.com/uptrace/bun"

	contractx "github.com/surrogate-labs/surrogate-agent/agent/contract"
)

type EventStatus string

const (
	EventPending   EventStatus = "pending"
	EventConfirmed EventStatus = "confirmed"
	EventCancelled EventStatus = "cancelled"
)

// CalendarEvent is created by the Schedule agent and mutated (status only)
// by later confirm/cancel turns. It is physically deleted only by the
// explicit delete action.
type CalendarEvent struct {
	bun.BaseModel `bun:"table:events" json:"-"`

	ID          string      `bun:"id,pk" json:"id"`
	Title       string      `bun:"title,notnull" json:"title"`
	Date        string      `bun:"date,notnull" json:"date"` // YYYY-MM-DD
	Time        string      `bun:"time,notnull" json:"time"` // HH:MM
	Description string      `bun:"description" json:"description,omitempty"`
	Status      EventStatus `bun:"status,notnull" json:"status"`
}

// TextDocument is an append-only record; never mutated after creation.
type TextDocument struct {
	bun.BaseModel `bun:"table:documents" json:"-"`

	ID        string    `bun:"id,pk" json:"id"`
	Title     string    `bun:"title,notnull" json:"title"`
	Content   string    `bun:"content,notnull" json:"content"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"createdAt"`
}

// Email is an append-only draft record; sending happens outside the core
// through the derived mail links.
type Email struct {
	bun.BaseModel `bun:"table:emails" json:"-"`

	ID      string    `bun:"id,pk" json:"id"`
	To      string    `bun:"recipient,notnull" json:"to"`
	Subject string    `bun:"subject,notnull" json:"subject"`
	Body    string    `bun:"body,notnull" json:"body"`
	SentAt  time.Time `bun:"sent_at,notnull" json:"sentAt"`
}

// PaymentTransaction is an append-only simulated confirmation record.
type PaymentTransaction struct {
	bun.BaseModel `bun:"table:payments" json:"-"`

	ID          string    `bun:"id,pk" json:"id"`
	Amount      float64   `bun:"amount,notnull" json:"amount"`
	Currency    string    `bun:"currency,notnull" json:"currency"`
	Recipient   string    `bun:"recipient,notnull" json:"recipient"`
	Description string    `bun:"description" json:"description"`
	Status      string    `bun:"status,notnull" json:"status"`
	Timestamp   time.Time `bun:"created_at,notnull" json:"timestamp"`
}

// Message is one rendered turn inside a chat session.
type Message struct {
	ID        string              `json:"id"`
	Text      string              `json:"text"`
	Sender    string              `json:"sender"` // user | agent | system
	Timestamp time.Time           `json:"timestamp"`
	Tone      string              `json:"tone,omitempty"`
	Language  string              `json:"language,omitempty"`
	Agent     contractx.AgentType `json:"processingAgent,omitempty"`
}

// ChatSession groups the turns of one conversation.
type ChatSession struct {
	bun.BaseModel `bun:"table:chat_sessions" json:"-"`

	ID          string    `bun:"id,pk" json:"id"`
	Title       string    `bun:"title,notnull" json:"title"`
	Messages    []Message `bun:"messages,type:jsonb" json:"messages"`
	LastMessage string    `bun:"last_message" json:"lastMessage"`
	UpdatedAt   time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

// UserProfile holds display preferences interpolated into the instruction.
type UserProfile struct {
	bun.BaseModel `bun:"table:user_profile" json:"-"`

	ID                int64  `bun:"id,pk" json:"-"`
	Name              string `bun:"name,notnull" json:"name"`
	PreferredLanguage string `bun:"preferred_language,notnull" json:"preferredLanguage"`
}

// DefaultProfile is returned by every store before a profile was saved.
func DefaultProfile() UserProfile {
	return UserProfile{Name: "Boss", PreferredLanguage: "en"}
}
