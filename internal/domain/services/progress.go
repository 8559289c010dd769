package services

import (
	"context"

	"filesfeed/internal/domain/models/progress"
)

// ProgressService tracks bookmarks and the read counter
type ProgressService interface {
	// Summary returns progress against the current record total
	Summary(ctx context.Context, ownerID string) (*progress.Summary, error)

	// ToggleBookmark flips the bookmark for a record and returns the new state
	ToggleBookmark(ctx context.Context, ownerID, recordID string) (bool, error)

	// MarkRead increments the read counter and returns the new count
	MarkRead(ctx context.Context, ownerID string) (int, error)
}
