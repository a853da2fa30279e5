package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/surrogate-labs/surrogate-agent/agent/agents/orchestrator"
	contractx "github.com/surrogate-labs/surrogate-agent/agent/contract"
	statex "github.com/surrogate-labs/surrogate-agent/agent/state"
	toolx "github.com/surrogate-labs/surrogate-agent/agent/tool"
	configx "github.com/surrogate-labs/surrogate-agent/pkg/config"
	_ "github.com/surrogate-labs/surrogate-agent/pkg/logger/autoload"
	openrouterx "github.com/surrogate-labs/surrogate-agent/pkg/openrouter"
)

type AppConfig struct {
	StateBackend string `envconfig:"STATE_BACKEND" split_words:"true" default:"memory"`
	SessionTitle string `envconfig:"SESSION_TITLE" split_words:"true" default:"Terminal Session"`
	HistoryLimit int    `envconfig:"HISTORY_LIMIT" split_words:"true" default:"10"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("APP")

	store := mustNewStore(appCfg.StateBackend)

	openRouterCfg := configx.MustNew[openrouterx.Config]("OPENROUTER")
	transport := openrouterx.NewClient(*openRouterCfg)
	if !transport.Configured() {
		log.Warn().Msg("no openrouter api key set, replies will be offline notices")
	}

	registry := toolx.MustNewRegistry(store, time.Now)

	o, err := orchestrator.New(store, transport, registry)
	if err != nil {
		log.Fatal().Err(err).Msg("build orchestrator")
	}

	if err := runREPL(context.Background(), o, store, *appCfg); err != nil {
		log.Fatal().Err(err).Msg("repl terminated")
	}
}

func mustNewStore(backend string) statex.Store {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", "memory":
		return statex.NewMemoryStore()
	case "redis":
		cfg := configx.MustNew[statex.UpstashRedisConfig]("UPSTASH_REDIS")
		store, err := statex.NewUpstashRedisStore(*cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("build redis store")
		}
		return store
	case "postgres":
		cfg := configx.MustNew[statex.PostgresConfig]("POSTGRES")
		store, err := statex.NewPostgresStore(*cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("build postgres store")
		}
		if err := store.Migrate(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("migrate postgres schema")
		}
		return store
	default:
		log.Fatal().Str("backend", backend).Msg("unknown state backend")
		return nil
	}
}

// runREPL drives one chat session over stdin. Every turn is appended to a
// persisted session so restarts with a durable backend keep the thread.
func runREPL(ctx context.Context, o *orchestrator.Orchestrator, store statex.Store, cfg AppConfig) error {
	session, err := resumeOrCreateSession(ctx, store, cfg.SessionTitle)
	if err != nil {
		return err
	}

	fmt.Println("surrogate ready. Type a message, or 'exit' to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		env := o.Respond(ctx, contractx.Request{
			Message: line,
			History: condenseHistory(session.Messages, cfg.HistoryLimit),
		})

		turn := time.Now()
		session.Messages = append(session.Messages,
			statex.Message{
				ID:        strconv.FormatInt(turn.UnixMilli(), 10),
				Text:      line,
				Sender:    "user",
				Timestamp: turn.UTC(),
			},
			statex.Message{
				ID:        strconv.FormatInt(turn.UnixMilli()+1, 10),
				Text:      env.Text,
				Sender:    "agent",
				Timestamp: turn.UTC(),
				Tone:      env.Tone,
				Language:  env.Language,
				Agent:     env.Agent,
			},
		)
		session.LastMessage = env.Text
		session.UpdatedAt = turn.UTC()
		if err := store.SaveSession(ctx, session); err != nil {
			log.Error().Err(err).Msg("save session")
		}

		printEnvelope(env)
	}
}

// resumeOrCreateSession picks up the most recently updated session so a
// restart with a durable backend keeps the thread; otherwise it starts a
// fresh one.
func resumeOrCreateSession(ctx context.Context, store statex.Store, title string) (statex.ChatSession, error) {
	sessions, err := store.Sessions(ctx)
	if err != nil {
		return statex.ChatSession{}, fmt.Errorf("list sessions: %w", err)
	}
	if len(sessions) > 0 {
		latest := sessions[0]
		for _, sess := range sessions[1:] {
			if sess.UpdatedAt.After(latest.UpdatedAt) {
				latest = sess
			}
		}
		log.Info().Str("session_id", latest.ID).Msg("resuming session")
		return latest, nil
	}

	now := time.Now()
	return statex.ChatSession{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Title:     title,
		UpdatedAt: now.UTC(),
	}, nil
}

// condenseHistory renders the most recent turns as "Sender: text" lines,
// the shape the model was prompted with.
func condenseHistory(messages []statex.Message, limit int) []string {
	if limit <= 0 || len(messages) == 0 {
		return nil
	}
	start := 0
	if len(messages) > limit {
		start = len(messages) - limit
	}
	lines := make([]string, 0, len(messages)-start)
	for _, m := range messages[start:] {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Sender, m.Text))
	}
	return lines
}

func printEnvelope(env contractx.ReplyEnvelope) {
	out, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("marshal envelope")
		fmt.Println(env.Text)
		return
	}
	fmt.Println(string(out))
}
