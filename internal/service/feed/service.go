package feed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"filesfeed/internal/config"
	models "filesfeed/internal/domain/models/feed"
	"filesfeed/internal/domain/repositories"
	"filesfeed/internal/domain/services"
	"filesfeed/internal/render"
)

type feedService struct {
	records  repositories.RecordRepository
	renderer *render.Renderer
	logger   *slog.Logger
}

// NewFeedService creates the feed service. Read failures on list endpoints are
// logged and served as empty results.
func NewFeedService(
	records repositories.RecordRepository,
	renderer *render.Renderer,
	logger *slog.Logger,
) services.FeedService {
	return &feedService{
		records:  records,
		renderer: renderer,
		logger:   logger,
	}
}

// Browse filters the full record set and returns the visible window
func (s *feedService) Browse(ctx context.Context, filter models.FilterState, shown int) (*models.FeedView, error) {
	all, err := s.records.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to load records for feed", "error", err)
		all = []models.Record{}
	}

	filtered := Apply(all, filter)
	window := WindowAt(config.FeedWindowSize, shown, len(filtered))
	visible := window.Visible(len(filtered))

	return &models.FeedView{
		Records:   filtered[:visible],
		Total:     len(all),
		Filtered:  len(filtered),
		Shown:     visible,
		Remaining: window.Remaining(len(filtered)),
		HasMore:   window.Remaining(len(filtered)) > 0,
		Filter:    filter,
		Facets:    BuildFacets(all),
	}, nil
}

// Page returns one server page of the infinite-scroll feed
func (s *feedService) Page(ctx context.Context, page int, category string) (*models.Page, error) {
	if page < 1 {
		page = 1
	}
	if page > models.MaxPage(config.ScrollPageSize) {
		return models.NewPage(nil, page, config.ScrollPageSize, category), nil
	}

	records, err := s.records.ListRecent(ctx, models.ForPage(page, config.ScrollPageSize, category))
	if err != nil {
		s.logger.Error("failed to load feed page",
			"page", page,
			"category", category,
			"error", err,
		)
		return models.NewPage(nil, page, config.ScrollPageSize, category), nil
	}

	return models.NewPage(records, page, config.ScrollPageSize, category), nil
}

// Search queries the backend. Queries under the minimum length return no results.
func (s *feedService) Search(ctx context.Context, query string) (*models.SearchResults, error) {
	query = strings.TrimSpace(query)
	results := &models.SearchResults{Query: query, Records: []models.Record{}}

	if utf8.RuneCountInString(query) < config.MinSearchQueryLength {
		return results, nil
	}

	records, err := s.records.Search(ctx, query, config.SearchLimit)
	if err != nil {
		s.logger.Error("search failed", "query", query, "error", err)
		return results, nil
	}
	if records != nil {
		results.Records = records
	}
	results.Count = len(results.Records)
	return results, nil
}

// Record returns one record with its full text rendered to HTML
func (s *feedService) Record(ctx context.Context, id string) (*models.RecordDetail, error) {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &models.RecordDetail{
		Record: *record,
		Slug:   models.Slugify(record.Type()),
	}

	if record.FullText != nil {
		html, err := s.renderer.HTML(*record.FullText)
		if err != nil {
			return nil, fmt.Errorf("render record %s: %w", id, err)
		}
		detail.FullTextHTML = html
	}

	return detail, nil
}

// Categories returns the category strip
func (s *feedService) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.records.CategoryCounts(ctx)
	if err != nil {
		s.logger.Error("failed to load categories", "error", err)
		return []models.Category{}, nil
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// Home fetches the count, categories and first page concurrently.
// Each part degrades on its own.
func (s *feedService) Home(ctx context.Context) (*models.HomeSummary, error) {
	summary := &models.HomeSummary{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary.TotalCount = s.Total(gctx)
		return nil
	})
	g.Go(func() error {
		categories, err := s.Categories(gctx)
		summary.Categories = categories
		return err
	})
	g.Go(func() error {
		page, err := s.Page(gctx, 1, "")
		if page != nil {
			summary.Latest = page.Records
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}

// Total returns the record count, or 0 when the backend cannot answer
func (s *feedService) Total(ctx context.Context) int {
	count, err := s.records.Count(ctx)
	if err != nil {
		s.logger.Error("failed to count records", "error", err)
		return 0
	}
	return count
}
