package feed

// FilterState is the user's current feed filter.
// Empty fields place no constraint on the result.
type FilterState struct {
	Category string `json:"category,omitempty"` // Exact document_type
	Person   string `json:"person,omitempty"`   // Exact entry of key_people_names
	Query    string `json:"query,omitempty"`    // Case-insensitive substring
}

// IsZero reports whether no filter is active
func (f FilterState) IsZero() bool {
	return f.Category == "" && f.Person == "" && f.Query == ""
}

// Facets are the filter choices derivable from a record set
type Facets struct {
	Categories []string `json:"categories"`
	People     []string `json:"people"`
}

// FeedView is a window onto the filtered record set
type FeedView struct {
	Records   []Record    `json:"records"`
	Total     int         `json:"total"`    // Records before filtering
	Filtered  int         `json:"filtered"` // Records matching the filter
	Shown     int         `json:"shown"`
	Remaining int         `json:"remaining"`
	HasMore   bool        `json:"has_more"`
	Filter    FilterState `json:"filter"`
	Facets    Facets      `json:"facets"`
}
