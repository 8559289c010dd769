package feed

import "testing"

func TestRecord_Accessors(t *testing.T) {
	r := Record{
		ID:             "1",
		KeyPeopleNames: []string{"Jeffrey Epstein", "Ghislaine Maxwell"},
	}

	if r.Type() != "" || r.SummaryText() != "" {
		t.Errorf("unset optional fields should read as empty")
	}
	if !r.HasPerson("Ghislaine Maxwell") {
		t.Error("HasPerson should match an exact entry")
	}
	if r.HasPerson("ghislaine maxwell") {
		t.Error("HasPerson is an exact match")
	}
}
