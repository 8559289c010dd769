package feed

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"filesfeed/internal/domain"
	models "filesfeed/internal/domain/models/feed"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

// fakeRecords serves an in-memory record set in the given (recency) order
type fakeRecords struct {
	mu      sync.Mutex
	records []models.Record
	err     error
	calls   []models.ListOptions
	block   chan struct{} // When set, ListRecent waits for it to close
}

func (f *fakeRecords) ListRecent(ctx context.Context, opts *models.ListOptions) ([]models.Record, error) {
	if f.block != nil {
		<-f.block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, *opts)
	if f.err != nil {
		return nil, f.err
	}

	var matching []models.Record
	for _, r := range f.records {
		if opts.DocumentType == "" || r.Type() == opts.DocumentType {
			matching = append(matching, r)
		}
	}
	if opts.Offset >= len(matching) {
		return []models.Record{}, nil
	}
	end := opts.Offset + opts.Limit
	if end > len(matching) {
		end = len(matching)
	}
	return matching[opts.Offset:end], nil
}

func (f *fakeRecords) ListAll(ctx context.Context) ([]models.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeRecords) Count(ctx context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.records), nil
}

func (f *fakeRecords) Search(ctx context.Context, query string, limit int) ([]models.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	return Apply(f.records, models.FilterState{Query: query}), nil
}

func (f *fakeRecords) GetByID(ctx context.Context, id string) (*models.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.records {
		if f.records[i].ID == id {
			r := f.records[i]
			return &r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRecords) CategoryCounts(ctx context.Context) ([]models.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return models.GroupCategories(f.records), nil
}

func (f *fakeRecords) requests() []models.ListOptions {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ListOptions(nil), f.calls...)
}

// numbered builds n records of one type with ids <prefix>-<i>
func numbered(prefix, docType string, n int) []models.Record {
	out := make([]models.Record, n)
	for i := range out {
		out[i] = models.Record{
			ID:           prefix + "-" + string(rune('a'+i%26)) + string(rune('a'+i/26)),
			Title:        prefix + " record",
			DocumentType: strPtr(docType),
		}
	}
	return out
}
