package feed

import (
	"context"
	"log/slog"
	"sync"

	models "filesfeed/internal/domain/models/feed"
)

// PageSource fetches a recency-ordered range of records
type PageSource interface {
	ListRecent(ctx context.Context, opts *models.ListOptions) ([]models.Record, error)
}

// ScrollState is a point-in-time copy of a Scroller
type ScrollState struct {
	Records  []models.Record
	Page     int
	HasMore  bool
	Loading  bool
	Category string
}

// Scroller accumulates pages for an infinite-scroll feed. At most one page
// request is in flight; calls to Next while loading are no-ops.
type Scroller struct {
	source   PageSource
	pageSize int
	logger   *slog.Logger

	mu         sync.Mutex
	records    []models.Record
	page       int
	hasMore    bool
	loading    bool
	category   string
	generation int // Bumped by SelectCategory so stale responses are dropped
}

// NewScroller creates a scroller positioned before the first page
func NewScroller(source PageSource, pageSize int, logger *slog.Logger) *Scroller {
	return &Scroller{
		source:   source,
		pageSize: pageSize,
		logger:   logger,
		records:  []models.Record{},
		hasMore:  true,
	}
}

// Next requests the following page. Returns true when a page was appended.
// Failures are logged and leave the state as it was.
func (s *Scroller) Next(ctx context.Context) bool {
	s.mu.Lock()
	if s.loading || !s.hasMore {
		s.mu.Unlock()
		return false
	}
	s.loading = true
	page := s.page + 1
	category := s.category
	generation := s.generation
	s.mu.Unlock()

	records, err := s.source.ListRecent(ctx, models.ForPage(page, s.pageSize, category))

	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		// Category changed while the request was in flight
		return false
	}
	s.loading = false

	if err != nil {
		s.logger.Error("failed to load feed page",
			"page", page,
			"category", category,
			"error", err,
		)
		return false
	}

	s.records = append(s.records, records...)
	s.page = page
	s.hasMore = len(records) == s.pageSize
	return true
}

// SelectCategory switches the feed to one document type ("" for all) and
// loads its first page
func (s *Scroller) SelectCategory(ctx context.Context, category string) bool {
	s.mu.Lock()
	s.generation++
	s.category = category
	s.records = []models.Record{}
	s.page = 0
	s.hasMore = true
	s.loading = false
	s.mu.Unlock()

	return s.Next(ctx)
}

// State returns a copy of the current state
func (s *Scroller) State() ScrollState {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]models.Record, len(s.records))
	copy(records, s.records)
	return ScrollState{
		Records:  records,
		Page:     s.page,
		HasMore:  s.hasMore,
		Loading:  s.loading,
		Category: s.category,
	}
}
