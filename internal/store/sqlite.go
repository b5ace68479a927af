package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"euchre-lite/history"
)

type sqliteService struct {
	db *sql.DB
}

func NewSQLiteService(dbPath string) (Service, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if dbPath != ":memory:" {
		parent := filepath.Dir(dbPath)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
		`PRAGMA foreign_keys = ON;`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSQLiteSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteService{db: db}, nil
}

func (s *sqliteService) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *sqliteService) Save(ctx context.Context, name string, l *history.Log) (string, error) {
	rec, err := newRecord(name, l)
	if err != nil {
		return "", err
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err = s.db.ExecContext(ctx, `
INSERT INTO round_logs (id, name, dealer, nodes, payload, created_at_ms)
VALUES (?, ?, ?, ?, ?, ?)
`, rec.ID, rec.Name, rec.Dealer, rec.Nodes, string(rec.Payload), rec.CreatedAt.UnixMilli())
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (s *sqliteService) Load(ctx context.Context, id string) (*history.Log, error) {
	id, err := normalizeID(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var payload string
	err = s.db.QueryRowContext(ctx, `SELECT payload FROM round_logs WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodePayload(id, []byte(payload))
}

func (s *sqliteService) List(ctx context.Context) ([]Summary, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
SELECT id, name, dealer, nodes, created_at_ms
FROM round_logs
ORDER BY created_at_ms DESC, id ASC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sum Summary
		var createdAtMs int64
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.Dealer, &sum.Nodes, &createdAtMs); err != nil {
			return nil, err
		}
		sum.CreatedAt = time.UnixMilli(createdAtMs).UTC()
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *sqliteService) Delete(ctx context.Context, id string) error {
	id, err := normalizeID(id)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `DELETE FROM round_logs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func ensureSQLiteSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS round_logs (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    dealer TEXT NOT NULL,
    nodes INTEGER NOT NULL DEFAULT 0,
    payload TEXT NOT NULL,
    created_at_ms INTEGER NOT NULL
)`)
	return err
}
