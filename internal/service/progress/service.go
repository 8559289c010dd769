package progress

import (
	"context"
	"log/slog"

	"filesfeed/internal/domain"
	models "filesfeed/internal/domain/models/progress"
	"filesfeed/internal/domain/repositories"
	"filesfeed/internal/domain/services"
	"filesfeed/internal/metrics"
	"filesfeed/internal/service/state"
)

// Totaler reports how many records exist
type Totaler interface {
	Total(ctx context.Context) int
}

type progressService struct {
	store     repositories.StateStore
	txManager repositories.TransactionManager
	totals    Totaler
	metrics   *metrics.Collector
	logger    *slog.Logger
}

// NewProgressService creates the progress service. Bookmarks and the read
// counter live under separate state keys.
func NewProgressService(
	store repositories.StateStore,
	txManager repositories.TransactionManager,
	totals Totaler,
	collector *metrics.Collector,
	logger *slog.Logger,
) services.ProgressService {
	return &progressService{
		store:     store,
		txManager: txManager,
		totals:    totals,
		metrics:   collector,
		logger:    logger,
	}
}

// Summary returns progress against the current record count
func (s *progressService) Summary(ctx context.Context, ownerID string) (*models.Summary, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}

	p, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return p.Summarize(s.totals.Total(ctx)), nil
}

// ToggleBookmark flips a record's bookmark
func (s *progressService) ToggleBookmark(ctx context.Context, ownerID, recordID string) (bool, error) {
	if ownerID == "" {
		return false, domain.ErrUnauthorized
	}
	if recordID == "" {
		return false, &domain.ValidationError{Field: "id", Message: "record id is required"}
	}

	var bookmarked bool
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		ids, err := state.Load[[]string](txCtx, s.store, s.logger, ownerID, repositories.StateKeyBookmarks)
		if err != nil {
			return err
		}

		p := models.Progress{Bookmarks: ids}
		bookmarked = p.Toggle(recordID)
		if p.Bookmarks == nil {
			p.Bookmarks = []string{}
		}
		return state.Save(txCtx, s.store, ownerID, repositories.StateKeyBookmarks, p.Bookmarks)
	})
	if err != nil {
		return false, err
	}

	s.metrics.BookmarkToggled(bookmarked)
	s.logger.Debug("bookmark toggled", "owner", ownerID, "record_id", recordID, "bookmarked", bookmarked)
	return bookmarked, nil
}

// MarkRead increments the read counter
func (s *progressService) MarkRead(ctx context.Context, ownerID string) (int, error) {
	if ownerID == "" {
		return 0, domain.ErrUnauthorized
	}

	var count int
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		n, err := state.Load[int](txCtx, s.store, s.logger, ownerID, repositories.StateKeyReadCount)
		if err != nil {
			return err
		}
		if n < 0 {
			n = 0
		}
		count = n + 1
		return state.Save(txCtx, s.store, ownerID, repositories.StateKeyReadCount, count)
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *progressService) load(ctx context.Context, ownerID string) (*models.Progress, error) {
	ids, err := state.Load[[]string](ctx, s.store, s.logger, ownerID, repositories.StateKeyBookmarks)
	if err != nil {
		return nil, err
	}
	reads, err := state.Load[int](ctx, s.store, s.logger, ownerID, repositories.StateKeyReadCount)
	if err != nil {
		return nil, err
	}
	if reads < 0 {
		reads = 0
	}
	return &models.Progress{Bookmarks: ids, ReadCount: reads}, nil
}
