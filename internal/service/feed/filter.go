package feed

import (
	"strings"

	"golang.org/x/text/cases"

	"filesfeed/internal/config"
	models "filesfeed/internal/domain/models/feed"
)

// Apply returns the records matching every non-empty field of the filter,
// preserving input order. Empty result is valid.
func Apply(records []models.Record, filter models.FilterState) []models.Record {
	out := make([]models.Record, 0, len(records))
	if filter.IsZero() {
		return append(out, records...)
	}

	// Caser holds state, one per call
	fold := cases.Fold()
	query := fold.String(filter.Query)

	for i := range records {
		r := &records[i]
		if filter.Category != "" && r.Type() != filter.Category {
			continue
		}
		if filter.Person != "" && !r.HasPerson(filter.Person) {
			continue
		}
		if query != "" && !matchesText(fold, r, query) {
			continue
		}
		out = append(out, *r)
	}
	return out
}

// matchesText reports whether the folded query occurs in the title, the
// summary, any topic or any person name
func matchesText(fold cases.Caser, r *models.Record, query string) bool {
	if strings.Contains(fold.String(r.Title), query) {
		return true
	}
	if strings.Contains(fold.String(r.SummaryText()), query) {
		return true
	}
	for _, topic := range r.KeyTopics {
		if strings.Contains(fold.String(topic), query) {
			return true
		}
	}
	for _, person := range r.KeyPeopleNames {
		if strings.Contains(fold.String(person), query) {
			return true
		}
	}
	return false
}

// BuildFacets collects the distinct document types and people in first-seen
// order. Only the first few people are offered as filter choices.
func BuildFacets(records []models.Record) models.Facets {
	facets := models.Facets{
		Categories: []string{},
		People:     []string{},
	}

	seenType := make(map[string]bool)
	seenPerson := make(map[string]bool)
	for i := range records {
		if t := records[i].Type(); t != "" && !seenType[t] {
			seenType[t] = true
			facets.Categories = append(facets.Categories, t)
		}
		for _, p := range records[i].KeyPeopleNames {
			if p == "" || seenPerson[p] {
				continue
			}
			seenPerson[p] = true
			if len(facets.People) < config.PersonFacetLimit {
				facets.People = append(facets.People, p)
			}
		}
	}
	return facets
}
