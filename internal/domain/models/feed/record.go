package feed

import (
	"time"
)

// Record is a single document entry shown in the feed and detail views.
// Records are read-only from the service's point of view.
type Record struct {
	ID             string    `json:"id" db:"id"`
	Title          string    `json:"title" db:"title"`
	Summary        *string   `json:"summary" db:"summary"`
	FullText       *string   `json:"full_text" db:"full_text"`
	DocumentType   *string   `json:"document_type" db:"document_type"`
	DocumentDate   *string   `json:"document_date" db:"document_date"` // Free-form, e.g. "2005-03-14" or "circa 2002"
	SourceURL      *string   `json:"source_url" db:"source_url"`
	SourceDataset  *string   `json:"source_dataset" db:"source_dataset"`
	EftaNumber     *string   `json:"efta_number" db:"efta_number"`
	KeyTopics      []string  `json:"key_topics" db:"key_topics"`
	KeyPeopleNames []string  `json:"key_people_names" db:"key_people_names"`
	Significance   *string   `json:"significance" db:"significance"`
	ImageURL       *string   `json:"image_url" db:"image_url"`
	CategoryID     *int      `json:"category_id" db:"category_id"`
	PageCount      int       `json:"page_count" db:"page_count"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// Type returns the document type or "" when unset
func (r *Record) Type() string {
	if r.DocumentType == nil {
		return ""
	}
	return *r.DocumentType
}

// SummaryText returns the summary or "" when unset
func (r *Record) SummaryText() string {
	if r.Summary == nil {
		return ""
	}
	return *r.Summary
}

// HasPerson reports whether name appears verbatim in the record's people list
func (r *Record) HasPerson(name string) bool {
	for _, p := range r.KeyPeopleNames {
		if p == name {
			return true
		}
	}
	return false
}

// RecordDetail is a record plus its rendered full text for the detail view
type RecordDetail struct {
	Record
	Slug         string `json:"category_slug"`
	FullTextHTML string `json:"full_text_html,omitempty"`
}
