// Package localdb implements the local keyed storage adapter on
// SQLite: one row per month under a fixed key prefix, holding the
// month's serialized snapshot as a whole. The browser original kept
// these blobs in localStorage; a single-file SQLite database is the
// device-local equivalent here.
package localdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"financelite/internal/core"
	"financelite/internal/persist"
)

// KeyPrefix is the fixed prefix month labels are stored under,
// mirroring the original app's localStorage key convention.
const KeyPrefix = "finance-lite-"

type Adapter struct {
	db *sql.DB
}

// New opens (creating if needed) the SQLite database at dbPath and runs
// schema migrations.
func New(dbPath string) (*Adapter, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Adapter{db: db}, nil
}

func (a *Adapter) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func (a *Adapter) Name() string { return "local" }

func key(month string) string { return KeyPrefix + month }

// SaveMonth serializes the month snapshot and stores it whole under its
// key, overwriting any prior value.
func (a *Adapter) SaveMonth(ctx context.Context, month string, entries []core.Entry) error {
	payload, err := core.NewMonthFile(month, entries).Encode(false)
	if err != nil {
		return fmt.Errorf("encode month %s: %w", month, err)
	}

	_, err = a.db.ExecContext(ctx, `
		INSERT INTO month_files (key, payload, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			payload    = excluded.payload,
			updated_at = CURRENT_TIMESTAMP`,
		key(month), string(payload))
	if err != nil {
		return fmt.Errorf("store month %s: %w", month, err)
	}

	slog.InfoContext(ctx, "Month saved to local storage",
		"key", key(month),
		"entries", len(entries))
	return nil
}

// LoadMonth reads and parses the month's key. Absent and unparseable
// values are both reported as ErrNotFound; a corrupted blob is treated
// as missing data, never as a fatal condition.
func (a *Adapter) LoadMonth(ctx context.Context, month string) (*core.MonthFile, error) {
	var payload string
	err := a.db.QueryRowContext(ctx,
		`SELECT payload FROM month_files WHERE key = ?`, key(month)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persist.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read month %s: %w", month, err)
	}

	f, err := core.ParseMonthFile([]byte(payload))
	if err != nil {
		slog.WarnContext(ctx, "Unparseable local payload, treating as absent",
			"key", key(month), "error", err)
		return nil, persist.ErrNotFound
	}
	return f, nil
}

// ListMonths enumerates every stored key under the prefix. Unlike the
// browser's keyed storage, SQLite can enumerate natively, so no
// companion list is needed. Labels come from the key suffix when it is
// a month label, else from the payload's own month field.
func (a *Adapter) ListMonths(ctx context.Context) ([]persist.ListedMonth, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT key, payload FROM month_files WHERE key LIKE ? ORDER BY key`,
		KeyPrefix+"%")
	if err != nil {
		return nil, fmt.Errorf("list months: %w", err)
	}
	defer rows.Close()

	var out []persist.ListedMonth
	for rows.Next() {
		var k, payload string
		if err := rows.Scan(&k, &payload); err != nil {
			return nil, fmt.Errorf("scan month row: %w", err)
		}
		f, err := core.ParseMonthFile([]byte(payload))
		if err != nil {
			slog.WarnContext(ctx, "Skipping unparseable local payload",
				"key", k, "error", err)
			continue
		}
		label := strings.TrimPrefix(k, KeyPrefix)
		if !core.ValidMonth(label) {
			label = f.Month
		}
		out = append(out, persist.ListedMonth{Label: label, File: f})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list months: %w", err)
	}
	return out, nil
}

var _ persist.Adapter = (*Adapter)(nil)
