package progress

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filesfeed/internal/domain"
	"filesfeed/internal/domain/repositories"
	"filesfeed/internal/service/state"
)

type fixedTotal int

func (f fixedTotal) Total(ctx context.Context) int { return int(f) }

func newTestService(total int) (*progressService, *state.MemoryStore) {
	store := state.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewProgressService(store, store, fixedTotal(total), nil, logger).(*progressService)
	return svc, store
}

func TestToggleBookmark(t *testing.T) {
	svc, store := newTestService(33)
	ctx := context.Background()

	on, err := svc.ToggleBookmark(ctx, "local", "rec-1")
	require.NoError(t, err)
	assert.True(t, on)

	_, err = svc.ToggleBookmark(ctx, "local", "rec-2")
	require.NoError(t, err)

	off, err := svc.ToggleBookmark(ctx, "local", "rec-1")
	require.NoError(t, err)
	assert.False(t, off)

	raw, err := store.Load(ctx, "local", repositories.StateKeyBookmarks)
	require.NoError(t, err)
	assert.JSONEq(t, `["rec-2"]`, string(raw))

	_, err = svc.ToggleBookmark(ctx, "local", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMarkRead(t *testing.T) {
	svc, store := newTestService(33)
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		got, err := svc.MarkRead(ctx, "local")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	raw, _ := store.Load(ctx, "local", repositories.StateKeyReadCount)
	assert.Equal(t, "3", string(raw))
}

func TestSummary(t *testing.T) {
	svc, _ := newTestService(20)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.MarkRead(ctx, "local")
		require.NoError(t, err)
	}
	_, _ = svc.ToggleBookmark(ctx, "local", "a")

	s, err := svc.Summary(ctx, "local")
	require.NoError(t, err)
	assert.Equal(t, 5, s.ReadCount)
	assert.Equal(t, 1, s.BookmarkCount)
	assert.Equal(t, 25, s.CompletionPercent)
	assert.Equal(t, 5, s.BookmarkPercent)
	assert.True(t, s.Achievements[0].Unlocked)
	assert.False(t, s.Achievements[1].Unlocked)

	// Owners are isolated
	other, err := svc.Summary(ctx, "someone-else")
	require.NoError(t, err)
	assert.Equal(t, 0, other.ReadCount)
	assert.Empty(t, other.Bookmarks)
}

func TestSummary_CorruptStateIsAbsent(t *testing.T) {
	svc, store := newTestService(10)
	store.Put("local", repositories.StateKeyBookmarks, []byte(`{not json`))
	store.Put("local", repositories.StateKeyReadCount, []byte(`"seven"`))

	s, err := svc.Summary(context.Background(), "local")
	require.NoError(t, err)
	assert.Equal(t, 0, s.ReadCount)
	assert.Equal(t, 0, s.BookmarkCount)

	n, err := svc.MarkRead(context.Background(), "local")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestProgress_RequiresOwner(t *testing.T) {
	svc, _ := newTestService(10)

	_, err := svc.Summary(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = svc.MarkRead(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
