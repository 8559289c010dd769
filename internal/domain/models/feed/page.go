package feed

import (
	"fmt"
	"math"
)

// Default listing configuration values
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListOptions selects a recency-ordered range of records
type ListOptions struct {
	// Offset is the index of the first record (0-based)
	Offset int

	// Limit is the number of records to return
	Limit int

	// DocumentType optionally restricts the range to one category
	// Empty string = all categories
	DocumentType string
}

// MaxPage is the highest page number whose offset still fits in an int
func MaxPage(pageSize int) int {
	if pageSize <= 0 {
		return math.MaxInt
	}
	return math.MaxInt / pageSize
}

// ForPage builds options for a 1-based page number. page must not exceed MaxPage(pageSize).
func ForPage(page, pageSize int, documentType string) *ListOptions {
	if page < 1 {
		page = 1
	}
	return &ListOptions{
		Offset:       (page - 1) * pageSize,
		Limit:        pageSize,
		DocumentType: documentType,
	}
}

// ApplyDefaults fills in default values for unset fields
func (opts *ListOptions) ApplyDefaults() {
	if opts.Limit <= 0 {
		opts.Limit = DefaultPageSize
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
}

// Validate checks that values are reasonable
func (opts *ListOptions) Validate() error {
	if opts.Limit < 0 {
		return fmt.Errorf("limit cannot be negative")
	}
	if opts.Limit > MaxPageSize {
		return fmt.Errorf("limit cannot exceed %d (requested: %d)", MaxPageSize, opts.Limit)
	}
	if opts.Offset < 0 {
		return fmt.Errorf("offset cannot be negative")
	}
	return nil
}

// RangeEnd returns the inclusive index of the last requested record
func (opts *ListOptions) RangeEnd() int {
	return opts.Offset + opts.Limit - 1
}

// Page is one server-side page of the infinite-scroll feed
type Page struct {
	Records  []Record `json:"records"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
	Category string   `json:"category,omitempty"`
	HasMore  bool     `json:"has_more"`
}

// NewPage creates a Page; more pages may exist only when this one came back full
func NewPage(records []Record, page, pageSize int, category string) *Page {
	if records == nil {
		records = []Record{}
	}
	return &Page{
		Records:  records,
		Page:     page,
		PageSize: pageSize,
		Category: category,
		HasMore:  len(records) >= pageSize,
	}
}

// HomeSummary is the landing payload: totals plus the category strip
type HomeSummary struct {
	TotalCount int        `json:"total_count"`
	Categories []Category `json:"categories"`
	Latest     []Record   `json:"latest"`
}

// SearchResults holds the result of a free-text search
type SearchResults struct {
	Query   string   `json:"query"`
	Records []Record `json:"records"`
	Count   int      `json:"count"`
}
