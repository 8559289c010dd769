package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"filesfeed/internal/domain"
	"filesfeed/internal/domain/models/feed"
	"filesfeed/internal/domain/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const recordColumns = `
	id::text, title, summary, full_text, document_type, document_date,
	source_url, source_dataset, efta_number,
	COALESCE(key_topics, '{}'), COALESCE(key_people_names, '{}'),
	significance, image_url, category_id, COALESCE(page_count, 0), created_at`

// PostgresRecordRepository implements RecordRepository against the posts table
type PostgresRecordRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewRecordRepository creates a new record repository
func NewRecordRepository(config *RepositoryConfig) repositories.RecordRepository {
	return &PostgresRecordRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// ListRecent returns a recency-ordered range of records
func (r *PostgresRecordRepository) ListRecent(ctx context.Context, opts *feed.ListOptions) ([]feed.Record, error) {
	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, recordColumns, r.tables.Posts)
	args := []interface{}{}
	paramIndex := 1

	if opts.DocumentType != "" {
		query += fmt.Sprintf(` WHERE document_type = $%d`, paramIndex)
		args = append(args, opts.DocumentType)
		paramIndex++
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, paramIndex, paramIndex+1)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, queryError("list recent records", err)
	}

	return collectRecords(rows)
}

// ListAll returns every record, newest first
func (r *PostgresRecordRepository) ListAll(ctx context.Context) ([]feed.Record, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY created_at DESC, id DESC
	`, recordColumns, r.tables.Posts)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, queryError("list all records", err)
	}

	return collectRecords(rows)
}

// Count returns the total number of records
func (r *PostgresRecordRepository) Count(ctx context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.tables.Posts)

	var total int
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, queryError("count records", err)
	}
	return total, nil
}

// Search matches title or summary by case-insensitive substring, or topics and
// people by exact array containment
func (r *PostgresRecordRepository) Search(ctx context.Context, query string, limit int) ([]feed.Record, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []feed.Record{}, nil
	}

	sql := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE title ILIKE $1
		   OR summary ILIKE $1
		   OR key_topics @> ARRAY[$2::text]
		   OR key_people_names @> ARRAY[$2::text]
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`, recordColumns, r.tables.Posts)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, sql, LikePattern(query), query, limit)
	if err != nil {
		return nil, queryError("search records", err)
	}

	return collectRecords(rows)
}

// GetByID retrieves a record by identifier
func (r *PostgresRecordRepository) GetByID(ctx context.Context, id string) (*feed.Record, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, recordColumns, r.tables.Posts)

	var records []feed.Record
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, id)
	if err == nil {
		records, err = collectRecords(rows)
	}
	if err != nil {
		// A malformed id can never match
		if IsPgInvalidTextError(err) {
			return nil, fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get record: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}

	return &records[0], nil
}

// CategoryCounts groups records by document type
func (r *PostgresRecordRepository) CategoryCounts(ctx context.Context) ([]feed.Category, error) {
	query := fmt.Sprintf(`
		SELECT document_type, COUNT(*)
		FROM %s
		WHERE document_type IS NOT NULL AND document_type <> ''
		GROUP BY document_type
	`, r.tables.Posts)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	defer rows.Close()

	categories := []feed.Category{}
	for rows.Next() {
		var c feed.Category
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Slug = feed.Slugify(c.Name)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	feed.SortCategories(categories)
	return categories, nil
}

// collectRecords scans and closes rows. Always returns a non-nil slice on success.
func collectRecords(rows pgx.Rows) ([]feed.Record, error) {
	defer rows.Close()

	records := []feed.Record{}
	for rows.Next() {
		var rec feed.Record
		err := rows.Scan(
			&rec.ID,
			&rec.Title,
			&rec.Summary,
			&rec.FullText,
			&rec.DocumentType,
			&rec.DocumentDate,
			&rec.SourceURL,
			&rec.SourceDataset,
			&rec.EftaNumber,
			&rec.KeyTopics,
			&rec.KeyPeopleNames,
			&rec.Significance,
			&rec.ImageURL,
			&rec.CategoryID,
			&rec.PageCount,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return records, nil
}

// LikePattern wraps q in % wildcards, escaping LIKE metacharacters in q itself
func LikePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}

// queryError wraps err, pointing at the schema command when the table is missing
func queryError(op string, err error) error {
	if IsPgUndefinedTableError(err) {
		return fmt.Errorf("%s (run `feedctl schema`): %w", op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
