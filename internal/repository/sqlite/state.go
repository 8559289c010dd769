package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"filesfeed/internal/domain/repositories"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS user_state (
	owner_id TEXT NOT NULL,
	key TEXT NOT NULL,
	value TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (owner_id, key)
)`

// StateStore is a single-file state store for local, single-user deployments.
// It also serves as the TransactionManager: ExecTx serializes load-mutate-save cycles.
type StateStore struct {
	db     *sql.DB
	txMu   sync.Mutex
	logger *slog.Logger
}

var (
	_ repositories.StateStore         = (*StateStore)(nil)
	_ repositories.TransactionManager = (*StateStore)(nil)
)

// Open opens (or creates) the database at path
func Open(path string, logger *slog.Logger) (*StateStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// One writer at a time keeps SQLITE_BUSY out of the picture
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create state schema: %w", err)
	}

	logger.Info("sqlite state store opened", "path", path)
	return &StateStore{db: db, logger: logger}, nil
}

// Load returns the stored value or nil when the owner has none
func (s *StateStore) Load(ctx context.Context, ownerID, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM user_state WHERE owner_id = ? AND key = ?`,
		ownerID, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load state %s: %w", key, err)
	}
	return []byte(value), nil
}

// Save upserts the value for (owner, key)
func (s *StateStore) Save(ctx context.Context, ownerID, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_state (owner_id, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (owner_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, ownerID, key, string(value))
	if err != nil {
		return fmt.Errorf("save state %s: %w", key, err)
	}
	return nil
}

// ExecTx runs fn while holding the store's write lock
func (s *StateStore) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(ctx)
}

// Close closes the database
func (s *StateStore) Close() error {
	return s.db.Close()
}

// Ping checks the database file is usable
func (s *StateStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
