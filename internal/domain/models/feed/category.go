package feed

import (
	"sort"
	"strings"
)

// DefaultSlug is used for records without a document type
const DefaultSlug = "default"

// Category is a derived grouping of records by document type
type Category struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// Slugify lowercases a document type and collapses every run of
// non-alphanumeric characters into a single dash.
func Slugify(documentType string) string {
	if documentType == "" {
		return DefaultSlug
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(documentType) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}

	if b.Len() == 0 {
		return DefaultSlug
	}
	return b.String()
}

// GroupCategories counts records per document type.
// Records without a type are skipped. Result is ordered by count desc, then name.
func GroupCategories(records []Record) []Category {
	counts := make(map[string]int)
	for i := range records {
		t := records[i].Type()
		if t == "" {
			continue
		}
		counts[t]++
	}

	categories := make([]Category, 0, len(counts))
	for name, count := range counts {
		categories = append(categories, Category{
			Name:  name,
			Slug:  Slugify(name),
			Count: count,
		})
	}

	SortCategories(categories)
	return categories
}

// SortCategories orders categories by count desc, then name asc
func SortCategories(categories []Category) {
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Count != categories[j].Count {
			return categories[i].Count > categories[j].Count
		}
		return categories[i].Name < categories[j].Name
	})
}
