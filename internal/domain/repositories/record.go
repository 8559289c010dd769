package repositories

import (
	"context"

	"filesfeed/internal/domain/models/feed"
)

// RecordRepository is the read-only query surface of the hosted document database
type RecordRepository interface {
	// ListRecent returns a range of records ordered by created_at desc,
	// optionally constrained to one document type
	ListRecent(ctx context.Context, opts *feed.ListOptions) ([]feed.Record, error)

	// ListAll returns every record ordered by created_at desc
	ListAll(ctx context.Context) ([]feed.Record, error)

	// Count returns the total number of records
	Count(ctx context.Context) (int, error)

	// Search matches title/summary by substring or topics/people by array containment,
	// newest first, at most limit records
	Search(ctx context.Context, query string, limit int) ([]feed.Record, error)

	// GetByID retrieves a record by identifier
	GetByID(ctx context.Context, id string) (*feed.Record, error)

	// CategoryCounts groups records by document type
	CategoryCounts(ctx context.Context) ([]feed.Category, error)
}
