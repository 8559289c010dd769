package state

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"filesfeed/internal/domain/repositories"
)

// Load decodes the owner's value for key into a T. A missing value yields the
// zero T. So does a corrupt one, which is logged and otherwise treated as absent.
func Load[T any](ctx context.Context, store repositories.StateStore, logger *slog.Logger, ownerID, key string) (T, error) {
	var value T

	raw, err := store.Load(ctx, ownerID, key)
	if err != nil {
		return value, fmt.Errorf("load %s: %w", key, err)
	}
	if len(raw) == 0 {
		return value, nil
	}

	if err := json.Unmarshal(raw, &value); err != nil {
		logger.Warn("discarding corrupt stored state",
			"owner", ownerID,
			"key", key,
			"error", err,
		)
		var zero T
		return zero, nil
	}
	return value, nil
}

// Save encodes value as JSON and stores it under key
func Save[T any](ctx context.Context, store repositories.StateStore, ownerID, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Save(ctx, ownerID, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// MemoryStore is an in-process StateStore. It backs tests and ephemeral runs.
type MemoryStore struct {
	mu     chan struct{}
	values map[string][]byte
}

var (
	_ repositories.StateStore         = (*MemoryStore)(nil)
	_ repositories.TransactionManager = (*MemoryStore)(nil)
)

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mu:     make(chan struct{}, 1),
		values: make(map[string][]byte),
	}
}

type txKey struct{}

func (m *MemoryStore) lock(ctx context.Context) func() {
	// Already held by ExecTx on this call chain
	if ctx.Value(txKey{}) != nil {
		return func() {}
	}
	m.mu <- struct{}{}
	return func() { <-m.mu }
}

// Load returns a copy of the stored value, or nil
func (m *MemoryStore) Load(ctx context.Context, ownerID, key string) ([]byte, error) {
	defer m.lock(ctx)()
	v, ok := m.values[ownerID+"/"+key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

// Save stores a copy of value
func (m *MemoryStore) Save(ctx context.Context, ownerID, key string, value []byte) error {
	defer m.lock(ctx)()
	m.values[ownerID+"/"+key] = append([]byte(nil), value...)
	return nil
}

// Put writes a raw value, bypassing encoding
func (m *MemoryStore) Put(ownerID, key string, raw []byte) {
	defer m.lock(context.Background())()
	m.values[ownerID+"/"+key] = raw
}

// ExecTx runs fn with the store locked
func (m *MemoryStore) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	defer m.lock(ctx)()
	return fn(context.WithValue(ctx, txKey{}, true))
}
