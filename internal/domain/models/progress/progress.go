package progress

import "math"

// Progress is an owner's reading state: bookmarked record ids and a read counter
type Progress struct {
	Bookmarks []string `json:"bookmarks"`
	ReadCount int      `json:"read_count"`
}

// IsBookmarked reports whether a record id is bookmarked
func (p *Progress) IsBookmarked(recordID string) bool {
	for _, id := range p.Bookmarks {
		if id == recordID {
			return true
		}
	}
	return false
}

// Toggle adds the id when absent and removes it when present.
// Returns the new bookmark state.
func (p *Progress) Toggle(recordID string) bool {
	for i, id := range p.Bookmarks {
		if id == recordID {
			p.Bookmarks = append(p.Bookmarks[:i], p.Bookmarks[i+1:]...)
			return false
		}
	}
	p.Bookmarks = append(p.Bookmarks, recordID)
	return true
}

// Achievement is a reading milestone
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
}

type milestone struct {
	id, name, description, icon string
	threshold                   int
	bookmarks                   bool // counts bookmarks instead of reads
}

var milestones = []milestone{
	{"first-readings", "First Readings", "Read 5 documents", "📖", 5, false},
	{"document-digest", "Document Digest", "Read 10 documents", "📚", 10, false},
	{"case-scholar", "Case Scholar", "Read 20 documents", "🎓", 20, false},
	{"complete-archive", "Complete Archive", "Read 33 documents", "🏆", 33, false},
	{"key-evidence", "Key Evidence", "Bookmark 5 documents", "🔖", 5, true},
	{"master-collector", "Master Collector", "Bookmark 10 documents", "💎", 10, true},
}

// Achievements evaluates every milestone against the current progress
func (p *Progress) Achievements() []Achievement {
	out := make([]Achievement, 0, len(milestones))
	for _, m := range milestones {
		n := p.ReadCount
		if m.bookmarks {
			n = len(p.Bookmarks)
		}
		out = append(out, Achievement{
			ID:          m.id,
			Name:        m.name,
			Description: m.description,
			Icon:        m.icon,
			Unlocked:    n >= m.threshold,
		})
	}
	return out
}

// Summary is the progress page payload
type Summary struct {
	ReadCount         int           `json:"read_count"`
	BookmarkCount     int           `json:"bookmark_count"`
	Bookmarks         []string      `json:"bookmarks"`
	TotalDocuments    int           `json:"total_documents"`
	CompletionPercent int           `json:"completion_percent"`
	BookmarkPercent   int           `json:"bookmark_percent"`
	Achievements      []Achievement `json:"achievements"`
}

// Summarize computes percentages against the total record count
func (p *Progress) Summarize(totalDocuments int) *Summary {
	bookmarks := p.Bookmarks
	if bookmarks == nil {
		bookmarks = []string{}
	}
	return &Summary{
		ReadCount:         p.ReadCount,
		BookmarkCount:     len(bookmarks),
		Bookmarks:         bookmarks,
		TotalDocuments:    totalDocuments,
		CompletionPercent: percent(p.ReadCount, totalDocuments),
		BookmarkPercent:   percent(len(bookmarks), totalDocuments),
		Achievements:      p.Achievements(),
	}
}

func percent(n, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}
