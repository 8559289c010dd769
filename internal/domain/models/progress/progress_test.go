package progress

import (
	"testing"
)

func TestProgress_Toggle(t *testing.T) {
	p := &Progress{}

	if !p.Toggle("a") {
		t.Error("first toggle should bookmark")
	}
	p.Toggle("b")
	if p.Toggle("a") {
		t.Error("second toggle should remove")
	}
	if p.IsBookmarked("a") || !p.IsBookmarked("b") {
		t.Errorf("bookmarks = %v", p.Bookmarks)
	}

	p.Toggle("a")
	if len(p.Bookmarks) != 2 || p.Bookmarks[0] != "b" || p.Bookmarks[1] != "a" {
		t.Errorf("bookmarks = %v, want insertion order [b a]", p.Bookmarks)
	}
}

func TestProgress_Summarize(t *testing.T) {
	tests := []struct {
		name           string
		reads          int
		bookmarks      int
		total          int
		wantCompletion int
		wantUnlocked   []string
	}{
		{"nothing yet", 0, 0, 33, 0, nil},
		{"zero total", 5, 0, 0, 0, []string{"first-readings"}},
		{"rounds half up", 1, 0, 8, 13, nil},
		{"all reads", 33, 10, 33, 100, []string{"first-readings", "document-digest", "case-scholar", "complete-archive", "key-evidence", "master-collector"}},
		{"boundary", 10, 5, 100, 10, []string{"first-readings", "document-digest", "key-evidence"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Progress{ReadCount: tt.reads}
			for i := 0; i < tt.bookmarks; i++ {
				p.Toggle(string(rune('a' + i)))
			}

			s := p.Summarize(tt.total)

			if s.CompletionPercent != tt.wantCompletion {
				t.Errorf("CompletionPercent = %d, want %d", s.CompletionPercent, tt.wantCompletion)
			}
			if s.BookmarkCount != tt.bookmarks {
				t.Errorf("BookmarkCount = %d, want %d", s.BookmarkCount, tt.bookmarks)
			}

			var unlocked []string
			for _, a := range s.Achievements {
				if a.Unlocked {
					unlocked = append(unlocked, a.ID)
				}
			}
			if len(unlocked) != len(tt.wantUnlocked) {
				t.Fatalf("unlocked = %v, want %v", unlocked, tt.wantUnlocked)
			}
			for i := range unlocked {
				if unlocked[i] != tt.wantUnlocked[i] {
					t.Errorf("unlocked = %v, want %v", unlocked, tt.wantUnlocked)
					break
				}
			}
		})
	}
}

func TestSummarize_NilBookmarks(t *testing.T) {
	s := (&Progress{}).Summarize(10)
	if s.Bookmarks == nil {
		t.Error("Bookmarks should be an empty slice, not nil")
	}
	if len(s.Achievements) != 6 {
		t.Errorf("achievements = %d, want 6", len(s.Achievements))
	}
}
