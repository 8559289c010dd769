package supabase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"filesfeed/internal/domain"
	"filesfeed/internal/domain/models/feed"
	"filesfeed/internal/domain/repositories"

	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"
)

// postgrestReserved are characters PostgREST treats as syntax inside or=() lists
var postgrestReserved = strings.NewReplacer(",", " ", "(", " ", ")", " ", `"`, " ", "{", " ", "}", " ")

// SupabaseRecordRepository reads records through the PostgREST API with the anon key.
// The client library has no context support; ctx is checked before each call.
type SupabaseRecordRepository struct {
	client *supa.Client
	table  string
	logger *slog.Logger
}

// NewRecordRepository creates a PostgREST-backed record repository
func NewRecordRepository(url, key, table string, logger *slog.Logger) (repositories.RecordRepository, error) {
	if url == "" || key == "" {
		return nil, fmt.Errorf("supabase url and key are required")
	}

	client, err := supa.NewClient(url, key, nil)
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}

	logger.Info("supabase record backend initialized", "table", table)

	return &SupabaseRecordRepository{
		client: client,
		table:  table,
		logger: logger,
	}, nil
}

// listBatchSize is the page size for full-table reads. PostgREST silently caps
// a response at the project's max-rows, so full reads always page.
const listBatchSize = 1000

func (r *SupabaseRecordRepository) newest(columns string) *postgrest.FilterBuilder {
	return r.client.From(r.table).
		Select(columns, "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Order("id", &postgrest.OrderOpts{Ascending: false})
}

// collectPages calls fetch for consecutive ranges until one comes back empty.
// The offset advances by what was actually returned, so a server-side row cap
// smaller than batch cannot truncate the result.
func collectPages(ctx context.Context, batch int, fetch func(from, to int) ([]feed.Record, error)) ([]feed.Record, error) {
	all := []feed.Record{}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := fetch(len(all), len(all)+batch-1)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			return all, nil
		}
		all = append(all, page...)
	}
}

// ListRecent returns a recency-ordered range of records
func (r *SupabaseRecordRepository) ListRecent(ctx context.Context, opts *feed.ListOptions) ([]feed.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	q := r.newest("*").Range(opts.Offset, opts.RangeEnd(), "")
	if opts.DocumentType != "" {
		q = q.Eq("document_type", opts.DocumentType)
	}

	records := []feed.Record{}
	if _, err := q.ExecuteTo(&records); err != nil {
		return nil, fmt.Errorf("list recent records: %w", err)
	}
	return normalize(records), nil
}

// ListAll returns every record, newest first
func (r *SupabaseRecordRepository) ListAll(ctx context.Context) ([]feed.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := collectPages(ctx, listBatchSize, func(from, to int) ([]feed.Record, error) {
		page := []feed.Record{}
		_, err := r.newest("*").Range(from, to, "").ExecuteTo(&page)
		return page, err
	})
	if err != nil {
		return nil, fmt.Errorf("list all records: %w", err)
	}
	return normalize(records), nil
}

// Count uses an exact count HEAD request
func (r *SupabaseRecordRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	_, count, err := r.client.From(r.table).Select("id", "exact", true).Execute()
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return int(count), nil
}

// Search mirrors the web client's or= filter: title/summary ilike, topic/person containment
func (r *SupabaseRecordRepository) Search(ctx context.Context, query string, limit int) ([]feed.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	term := strings.TrimSpace(postgrestReserved.Replace(query))
	if term == "" {
		return []feed.Record{}, nil
	}

	records := []feed.Record{}
	_, err := r.newest("*").
		Or(SearchFilter(term), "").
		Limit(limit, "").
		ExecuteTo(&records)
	if err != nil {
		return nil, fmt.Errorf("search records: %w", err)
	}
	return normalize(records), nil
}

// GetByID retrieves a record by identifier
func (r *SupabaseRecordRepository) GetByID(ctx context.Context, id string) (*feed.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := []feed.Record{}
	_, err := r.client.From(r.table).
		Select("*", "", false).
		Eq("id", id).
		Limit(1, "").
		ExecuteTo(&records)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}

	rec := normalize(records)[0]
	return &rec, nil
}

// CategoryCounts fetches only the type column and groups client-side;
// PostgREST aggregates are disabled on the hosted project.
func (r *SupabaseRecordRepository) CategoryCounts(ctx context.Context) ([]feed.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := collectPages(ctx, listBatchSize, func(from, to int) ([]feed.Record, error) {
		page := []feed.Record{}
		_, err := r.client.From(r.table).
			Select("id,document_type", "", false).
			Order("id", &postgrest.OrderOpts{Ascending: true}).
			Range(from, to, "").
			ExecuteTo(&page)
		return page, err
	})
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	return feed.GroupCategories(records), nil
}

// SearchFilter builds the PostgREST or= expression for a sanitized term
func SearchFilter(term string) string {
	like := "%" + term + "%"
	array := "{" + strconv.Quote(term) + "}"
	return strings.Join([]string{
		"title.ilike." + like,
		"summary.ilike." + like,
		"key_topics.cs." + array,
		"key_people_names.cs." + array,
	}, ",")
}

func normalize(records []feed.Record) []feed.Record {
	for i := range records {
		if records[i].KeyTopics == nil {
			records[i].KeyTopics = []string{}
		}
		if records[i].KeyPeopleNames == nil {
			records[i].KeyPeopleNames = []string{}
		}
	}
	return records
}
