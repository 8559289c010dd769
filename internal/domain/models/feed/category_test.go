package feed

import (
	"testing"
)

func strPtr(s string) *string { return &s }

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Flight Log", "flight-log"},
		{"Court Filing / Deposition", "court-filing-deposition"},
		{"  FBI 302  ", "fbi-302"},
		{"---", DefaultSlug},
		{"", DefaultSlug},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGroupCategories(t *testing.T) {
	records := []Record{
		{ID: "1", DocumentType: strPtr("Email")},
		{ID: "2", DocumentType: strPtr("Flight Log")},
		{ID: "3", DocumentType: strPtr("Email")},
		{ID: "4"},
		{ID: "5", DocumentType: strPtr("Deposition")},
		{ID: "6", DocumentType: strPtr("")},
	}

	got := GroupCategories(records)

	want := []Category{
		{Name: "Email", Slug: "email", Count: 2},
		{Name: "Deposition", Slug: "deposition", Count: 1},
		{Name: "Flight Log", Slug: "flight-log", Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d categories, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("categories[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	total := 0
	for _, c := range got {
		total += c.Count
	}
	if total != 4 {
		t.Errorf("sum of counts = %d, want 4 (typed records only)", total)
	}
}

func TestGroupCategories_Empty(t *testing.T) {
	got := GroupCategories(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("GroupCategories(nil) = %v, want empty non-nil slice", got)
	}
}
