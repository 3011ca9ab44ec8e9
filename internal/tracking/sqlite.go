package tracking

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const lifetimeSchema = `
CREATE TABLE IF NOT EXISTS lifetime_counters (
  actor   TEXT    NOT NULL,
  card_id INTEGER NOT NULL,
  kind    INTEGER NOT NULL,
  value   INTEGER NOT NULL,
  PRIMARY KEY (actor, card_id, kind)
);`

// SQLiteStore persists lifetime counters in SQLite.
type SQLiteStore struct {
	sqlDB *sql.DB
}

// OpenSQLite opens (or creates) the lifetime counter database at path and
// applies the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(lifetimeSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// LoadLifetime returns all persisted lifetime counters for an actor.
func (s *SQLiteStore) LoadLifetime(actor uuid.UUID) (map[Key]map[CounterKind]int, error) {
	rows, err := s.sqlDB.Query(
		`SELECT card_id, kind, value FROM lifetime_counters WHERE actor = ?`,
		actor.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("load lifetime counters: %w", err)
	}
	defer rows.Close()

	out := make(map[Key]map[CounterKind]int)
	for rows.Next() {
		var cardID, kind, value int
		if err := rows.Scan(&cardID, &kind, &value); err != nil {
			return nil, fmt.Errorf("scan lifetime counter: %w", err)
		}
		key := Key{Actor: actor, CardID: cardID}
		if out[key] == nil {
			out[key] = make(map[CounterKind]int)
		}
		out[key][CounterKind(kind)] = value
	}
	return out, rows.Err()
}

// SaveLifetime upserts the given lifetime counters for an actor.
func (s *SQLiteStore) SaveLifetime(actor uuid.UUID, counters map[Key]map[CounterKind]int) error {
	tx, err := s.sqlDB.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	for key, kinds := range counters {
		for kind, value := range kinds {
			_, err := tx.Exec(
				`INSERT INTO lifetime_counters (actor, card_id, kind, value)
				 VALUES (?, ?, ?, ?)
				 ON CONFLICT (actor, card_id, kind) DO UPDATE SET value = excluded.value`,
				actor.String(), key.CardID, int(kind), value,
			)
			if err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("save lifetime counter: %w", err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}
