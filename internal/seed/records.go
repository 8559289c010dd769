package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"filesfeed/internal/domain/models/feed"
	"filesfeed/internal/domain/repositories"
	"filesfeed/internal/repository/postgres"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed data/records.yaml
var sampleRecords []byte

type sampleRecord struct {
	ID             string    `yaml:"id"`
	Title          string    `yaml:"title"`
	Summary        string    `yaml:"summary"`
	FullText       string    `yaml:"full_text"`
	DocumentType   string    `yaml:"document_type"`
	DocumentDate   string    `yaml:"document_date"`
	SourceURL      string    `yaml:"source_url"`
	SourceDataset  string    `yaml:"source_dataset"`
	EftaNumber     string    `yaml:"efta_number"`
	KeyTopics      []string  `yaml:"key_topics"`
	KeyPeopleNames []string  `yaml:"key_people_names"`
	Significance   string    `yaml:"significance"`
	PageCount      int       `yaml:"page_count"`
	CreatedAt      time.Time `yaml:"created_at"`
}

// SampleRecords parses the embedded sample records
func SampleRecords() ([]feed.Record, error) {
	var file struct {
		Records []sampleRecord `yaml:"records"`
	}
	if err := yaml.Unmarshal(sampleRecords, &file); err != nil {
		return nil, fmt.Errorf("parse sample records: %w", err)
	}

	records := make([]feed.Record, 0, len(file.Records))
	for i, s := range file.Records {
		err := validation.ValidateStruct(&s,
			validation.Field(&s.ID, validation.Required, validation.By(isUUID)),
			validation.Field(&s.Title, validation.Required),
			validation.Field(&s.CreatedAt, validation.Required),
			validation.Field(&s.PageCount, validation.Min(0)),
		)
		if err != nil {
			return nil, fmt.Errorf("sample record %d: %w", i, err)
		}
		records = append(records, s.toRecord())
	}
	return records, nil
}

func isUUID(value interface{}) error {
	_, err := uuid.Parse(value.(string))
	return err
}

func (s sampleRecord) toRecord() feed.Record {
	topics := s.KeyTopics
	if topics == nil {
		topics = []string{}
	}
	people := s.KeyPeopleNames
	if people == nil {
		people = []string{}
	}
	return feed.Record{
		ID:             s.ID,
		Title:          s.Title,
		Summary:        optional(s.Summary),
		FullText:       optional(s.FullText),
		DocumentType:   optional(s.DocumentType),
		DocumentDate:   optional(s.DocumentDate),
		SourceURL:      optional(s.SourceURL),
		SourceDataset:  optional(s.SourceDataset),
		EftaNumber:     optional(s.EftaNumber),
		KeyTopics:      topics,
		KeyPeopleNames: people,
		Significance:   optional(s.Significance),
		PageCount:      s.PageCount,
		CreatedAt:      s.CreatedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// RecordSeeder inserts records into the posts table
type RecordSeeder struct {
	db     repositories.DBTX
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewRecordSeeder creates a new record seeder
func NewRecordSeeder(db repositories.DBTX, tables *postgres.TableNames, logger *slog.Logger) *RecordSeeder {
	return &RecordSeeder{
		db:     db,
		tables: tables,
		logger: logger,
	}
}

// Insert writes records, skipping ids that already exist. Returns the number inserted.
func (s *RecordSeeder) Insert(ctx context.Context, records []feed.Record) (int, error) {
	query := `INSERT INTO ` + s.tables.Posts + ` (
			id, title, summary, full_text, document_type, document_date, source_url,
			source_dataset, efta_number, key_topics, key_people_names, significance,
			image_url, category_id, page_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO NOTHING`

	inserted := 0
	for _, r := range records {
		tag, err := s.db.Exec(ctx, query,
			r.ID, r.Title, r.Summary, r.FullText, r.DocumentType, r.DocumentDate, r.SourceURL,
			r.SourceDataset, r.EftaNumber, r.KeyTopics, r.KeyPeopleNames, r.Significance,
			r.ImageURL, r.CategoryID, r.PageCount, r.CreatedAt)
		if err != nil {
			return inserted, fmt.Errorf("insert record %s: %w", r.ID, err)
		}
		if tag.RowsAffected() > 0 {
			inserted++
			s.logger.Debug("seeded record", "record_id", r.ID, "title", r.Title)
		}
	}
	return inserted, nil
}

// ClearRecords deletes every record
func (s *RecordSeeder) ClearRecords(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM `+s.tables.Posts); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	return nil
}
