package sqlite

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *StateStore {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := Open(filepath.Join(t.TempDir(), "state.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStateStore_LoadMissing(t *testing.T) {
	store := openTestStore(t)

	value, err := store.Load(context.Background(), "local", "investigationBoard")

	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestStateStore_SaveThenLoad(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "local", "bookmarkedDocs", []byte(`["a"]`)))
	require.NoError(t, store.Save(ctx, "local", "bookmarkedDocs", []byte(`["a","b"]`)))

	value, err := store.Load(ctx, "local", "bookmarkedDocs")
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(value))

	other, err := store.Load(ctx, "someone-else", "bookmarkedDocs")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestStateStore_ExecTxSerializes(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.ExecTx(ctx, func(ctx context.Context) error {
				mu.Lock()
				active++
				if active > maxSeen {
					maxSeen = active
				}
				mu.Unlock()

				_, err := store.Load(ctx, "local", "readDocuments")

				mu.Lock()
				active--
				mu.Unlock()
				return err
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}

func TestStateStore_ConcurrentFirstWritesKeepEveryUpdate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- store.ExecTx(ctx, func(ctx context.Context) error {
				raw, err := store.Load(ctx, "local", "readDocuments")
				if err != nil {
					return err
				}
				n := 0
				if raw != nil {
					if n, err = strconv.Atoi(string(raw)); err != nil {
						return err
					}
				}
				return store.Save(ctx, "local", "readDocuments", []byte(strconv.Itoa(n+1)))
			})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	raw, err := store.Load(ctx, "local", "readDocuments")
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(writers), string(raw))
}
