package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"filesfeed/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// lockStateQuery serializes writers of one (owner, key) for the rest of the transaction
const lockStateQuery = `SELECT pg_advisory_xact_lock(hashtext($1), hashtext($2))`

// PostgresStateStore keeps per-owner JSON blobs in a JSONB column
type PostgresStateStore struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewStateStore creates a new state store
func NewStateStore(config *RepositoryConfig) repositories.StateStore {
	return &PostgresStateStore{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Load returns the stored value or nil when the owner has none.
// Inside a transaction it first takes an advisory lock on (owner, key), held
// until commit, so concurrent load-mutate-save cycles on the same key run one
// at a time even before the row exists.
func (s *PostgresStateStore) Load(ctx context.Context, ownerID, key string) ([]byte, error) {
	executor := GetExecutor(ctx, s.pool)

	if repositories.GetTx(ctx) != nil {
		if _, err := executor.Exec(ctx, lockStateQuery, ownerID, key); err != nil {
			return nil, fmt.Errorf("lock state %s: %w", key, err)
		}
	}

	query := fmt.Sprintf(`
		SELECT value::text
		FROM %s
		WHERE owner_id = $1 AND key = $2
	`, s.tables.UserState)

	var value string
	err := executor.QueryRow(ctx, query, ownerID, key).Scan(&value)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load state %s: %w", key, err)
	}

	return []byte(value), nil
}

// Save upserts the value for (owner, key)
func (s *PostgresStateStore) Save(ctx context.Context, ownerID, key string, value []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (owner_id, key, value, updated_at)
		VALUES ($1, $2, $3::jsonb, NOW())
		ON CONFLICT (owner_id, key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, s.tables.UserState)

	if _, err := GetExecutor(ctx, s.pool).Exec(ctx, query, ownerID, key, string(value)); err != nil {
		return fmt.Errorf("save state %s: %w", key, err)
	}

	s.logger.Debug("state saved", "owner", ownerID, "key", key, "bytes", len(value))
	return nil
}
