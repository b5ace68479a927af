// Package store keeps saved round logs.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"euchre-lite/history"
	"euchre-lite/internal/config"
	"euchre-lite/replay"
)

var ErrNotFound = errors.New("saved log not found")

type Service interface {
	Close() error
	// Save stores the whole log tree and returns its new identifier.
	Save(ctx context.Context, name string, l *history.Log) (string, error)
	Load(ctx context.Context, id string) (*history.Log, error)
	// List returns summaries, newest first.
	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, id string) error
}

// Summary describes a saved log without decoding it.
type Summary struct {
	ID        string
	Name      string
	Dealer    string
	Nodes     int
	CreatedAt time.Time
}

// NewServiceFromEnv opens the backend selected by cfg.Store and returns it
// with the backend's name.
func NewServiceFromEnv(cfg config.Config) (Service, string, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Store)) {
	case "", "memory":
		return NewMemoryService(), "memory", nil
	case "sqlite", "local":
		s, err := NewSQLiteService(cfg.SQLitePath)
		if err != nil {
			return nil, "", err
		}
		return s, "sqlite", nil
	case "postgres":
		s, err := NewPostgresService(cfg.PostgresDSN)
		if err != nil {
			return nil, "", err
		}
		return s, "postgres", nil
	case "redis":
		s, err := NewRedisService(cfg.RedisAddr)
		if err != nil {
			return nil, "", err
		}
		return s, "redis", nil
	}
	return nil, "", fmt.Errorf("unknown store %q", cfg.Store)
}

// record is the row every backend persists.
type record struct {
	Summary
	Payload []byte
}

func newRecord(name string, l *history.Log) (record, error) {
	if l == nil {
		return record{}, fmt.Errorf("nil log")
	}
	payload, err := replay.EncodeJSON(l)
	if err != nil {
		return record{}, err
	}
	name = strings.TrimSpace(name)
	id := uuid.NewString()
	if name == "" {
		name = "round-" + id[:8]
	}
	return record{
		Summary: Summary{
			ID:        id,
			Name:      name,
			Dealer:    l.Config().Dealer.String(),
			Nodes:     l.Len(),
			CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		},
		Payload: payload,
	}, nil
}

func decodePayload(id string, payload []byte) (*history.Log, error) {
	l, err := replay.Load(payload)
	if err != nil {
		return nil, fmt.Errorf("saved log %s: %w", id, err)
	}
	return l, nil
}

func normalizeID(id string) (string, error) {
	u, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return u.String(), nil
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, 3*time.Second)
}
