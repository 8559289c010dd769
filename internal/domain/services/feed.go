package services

import (
	"context"

	"filesfeed/internal/domain/models/feed"
)

// FeedService serves the filterable feed, the paged feed, search and detail
type FeedService interface {
	// Browse applies the filter to the full record set and returns a window of it.
	// shown is the client's current window size (0 = first window).
	Browse(ctx context.Context, filter feed.FilterState, shown int) (*feed.FeedView, error)

	// Page returns one recency-ordered server page, optionally for one category
	Page(ctx context.Context, page int, category string) (*feed.Page, error)

	// Search runs a backend search; queries shorter than two characters return nothing
	Search(ctx context.Context, query string) (*feed.SearchResults, error)

	// Record returns a record with rendered full text
	Record(ctx context.Context, id string) (*feed.RecordDetail, error)

	// Categories returns the category strip
	Categories(ctx context.Context) ([]feed.Category, error)

	// Home returns totals, categories and the first page
	Home(ctx context.Context) (*feed.HomeSummary, error)

	// Total returns the record count, 0 when the backend is unavailable
	Total(ctx context.Context) int
}
