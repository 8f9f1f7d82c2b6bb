package statestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Binding ties a Discord guild to the channel and message carrying its map
// snapshot. MessageID and LastHash are empty until the first successful
// update cycle.
type Binding struct {
	GuildID     string
	ChannelID   string
	MessageID   string
	LastHash    string
	LastUpdated time.Time
}

type Storage interface {
	GetBinding(ctx context.Context, guildID string) (*Binding, error)
	PutBinding(ctx context.Context, b Binding) error
	DeleteBinding(ctx context.Context, guildID string) (bool, error)
	ListBindings(ctx context.Context) ([]Binding, error)
	GuildColors() (map[string]string, error)
	PutGuildColor(guildID, colorHex string) error
	Close() error
}

const schema = `
CREATE TABLE IF NOT EXISTS bindings (
	guild_id     TEXT PRIMARY KEY,
	channel_id   TEXT NOT NULL,
	message_id   TEXT NOT NULL DEFAULT '',
	last_hash    TEXT NOT NULL DEFAULT '',
	last_updated INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS guild_colors (
	guild_id  TEXT PRIMARY KEY,
	color_hex TEXT NOT NULL
);
`

// SQLiteStore persists bindings and color assignments in a single database
// file. The connection pool is capped at one so all writes serialize through
// a single writer.
type SQLiteStore struct {
	db *sql.DB
}

func Open(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("unable to create state directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("unable to open state database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to initialize state schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetBinding returns nil without error when the guild has no binding.
func (s *SQLiteStore) GetBinding(ctx context.Context, guildID string) (*Binding, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT guild_id, channel_id, message_id, last_hash, last_updated FROM bindings WHERE guild_id = ?",
		guildID)

	b, err := scanBinding(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load binding: %w", err)
	}
	return b, nil
}

func (s *SQLiteStore) PutBinding(ctx context.Context, b Binding) error {
	var updated int64
	if !b.LastUpdated.IsZero() {
		updated = b.LastUpdated.Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bindings (guild_id, channel_id, message_id, last_hash, last_updated)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(guild_id) DO UPDATE SET
		   channel_id = excluded.channel_id,
		   message_id = excluded.message_id,
		   last_hash = excluded.last_hash,
		   last_updated = excluded.last_updated`,
		b.GuildID, b.ChannelID, b.MessageID, b.LastHash, updated)
	if err != nil {
		return fmt.Errorf("unable to save binding: %w", err)
	}
	return nil
}

// DeleteBinding reports whether a binding existed.
func (s *SQLiteStore) DeleteBinding(ctx context.Context, guildID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM bindings WHERE guild_id = ?", guildID)
	if err != nil {
		return false, fmt.Errorf("unable to delete binding: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unable to delete binding: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) ListBindings(ctx context.Context) ([]Binding, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT guild_id, channel_id, message_id, last_hash, last_updated FROM bindings ORDER BY guild_id")
	if err != nil {
		return nil, fmt.Errorf("unable to list bindings: %w", err)
	}
	defer rows.Close()

	var bindings []Binding
	for rows.Next() {
		b, err := scanBinding(rows)
		if err != nil {
			return nil, fmt.Errorf("unable to list bindings: %w", err)
		}
		bindings = append(bindings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unable to list bindings: %w", err)
	}
	return bindings, nil
}

// GuildColors loads the persisted color assignments at startup.
func (s *SQLiteStore) GuildColors() (map[string]string, error) {
	rows, err := s.db.Query("SELECT guild_id, color_hex FROM guild_colors")
	if err != nil {
		return nil, fmt.Errorf("unable to load guild colors: %w", err)
	}
	defer rows.Close()

	colors := make(map[string]string)
	for rows.Next() {
		var guildID, hex string
		if err := rows.Scan(&guildID, &hex); err != nil {
			return nil, fmt.Errorf("unable to load guild colors: %w", err)
		}
		colors[guildID] = hex
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unable to load guild colors: %w", err)
	}
	return colors, nil
}

func (s *SQLiteStore) PutGuildColor(guildID, colorHex string) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO guild_colors (guild_id, color_hex) VALUES (?, ?)",
		guildID, colorHex)
	if err != nil {
		return fmt.Errorf("unable to save guild color: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBinding(row rowScanner) (*Binding, error) {
	var b Binding
	var updated int64
	if err := row.Scan(&b.GuildID, &b.ChannelID, &b.MessageID, &b.LastHash, &updated); err != nil {
		return nil, err
	}
	if updated > 0 {
		b.LastUpdated = time.Unix(updated, 0).UTC()
	}
	return &b, nil
}
