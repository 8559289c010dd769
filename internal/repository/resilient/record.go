package resilient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"filesfeed/internal/domain"
	"filesfeed/internal/domain/models/feed"
	"filesfeed/internal/domain/repositories"
	"filesfeed/internal/metrics"
)

// BreakerConfig tunes the circuit breaker around the record backend
type BreakerConfig struct {
	Name         string
	MaxRequests  uint32        // Requests allowed through while half-open
	Interval     time.Duration // Closed-state window after which counts reset
	Timeout      time.Duration // Open duration before probing again
	MinRequests  uint32        // Requests needed before the ratio is evaluated
	FailureRatio float64       // Trip threshold
}

// RecordRepository guards a RecordRepository with a circuit breaker.
// Not-found and validation errors are answers, not backend failures, so they don't count.
type RecordRepository struct {
	next    repositories.RecordRepository
	cb      *gobreaker.CircuitBreaker
	metrics *metrics.Collector
	logger  *slog.Logger
}

var _ repositories.RecordRepository = (*RecordRepository)(nil)

// NewRecordRepository wraps next. collector may be nil.
func NewRecordRepository(next repositories.RecordRepository, cfg BreakerConfig, collector *metrics.Collector, logger *slog.Logger) *RecordRepository {
	r := &RecordRepository{
		next:    next,
		metrics: collector,
		logger:  logger,
	}

	r.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
			collector.SetBreakerState(name, float64(to))
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation)
		},
	})
	collector.SetBreakerState(cfg.Name, float64(gobreaker.StateClosed))

	return r
}

// State reports the breaker state
func (r *RecordRepository) State() gobreaker.State {
	return r.cb.State()
}

func (r *RecordRepository) ListRecent(ctx context.Context, opts *feed.ListOptions) ([]feed.Record, error) {
	return call(r, "list_recent", func() ([]feed.Record, error) {
		return r.next.ListRecent(ctx, opts)
	})
}

func (r *RecordRepository) ListAll(ctx context.Context) ([]feed.Record, error) {
	return call(r, "list_all", func() ([]feed.Record, error) {
		return r.next.ListAll(ctx)
	})
}

func (r *RecordRepository) Count(ctx context.Context) (int, error) {
	return call(r, "count", func() (int, error) {
		return r.next.Count(ctx)
	})
}

func (r *RecordRepository) Search(ctx context.Context, query string, limit int) ([]feed.Record, error) {
	return call(r, "search", func() ([]feed.Record, error) {
		return r.next.Search(ctx, query, limit)
	})
}

func (r *RecordRepository) GetByID(ctx context.Context, id string) (*feed.Record, error) {
	return call(r, "get_by_id", func() (*feed.Record, error) {
		return r.next.GetByID(ctx, id)
	})
}

func (r *RecordRepository) CategoryCounts(ctx context.Context) ([]feed.Category, error) {
	return call(r, "category_counts", func() ([]feed.Category, error) {
		return r.next.CategoryCounts(ctx)
	})
}

// call runs fn through the breaker, translating rejections into domain.ErrUnavailable
func call[T any](r *RecordRepository, operation string, fn func() (T, error)) (T, error) {
	start := time.Now()

	out, err := r.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	r.metrics.ObserveBackend(operation, start, err)

	if err != nil {
		var zero T
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, fmt.Errorf("%s: %w (%v)", operation, domain.ErrUnavailable, err)
		}
		return zero, err
	}
	return out.(T), nil
}
