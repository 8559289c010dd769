package postgres

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestLikePattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"flight", "%flight%"},
		{"100%", `%100\%%`},
		{"a_b", `%a\_b%`},
		{`c:\path`, `%c:\\path%`},
		{"", "%%"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := LikePattern(tt.in); got != tt.want {
				t.Errorf("LikePattern(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewTableNames(t *testing.T) {
	tables := NewTableNames("test_")
	if tables.Posts != "test_posts" {
		t.Errorf("Posts = %s", tables.Posts)
	}
	if tables.UserState != "test_user_state" {
		t.Errorf("UserState = %s", tables.UserState)
	}

	if NewTableNames("").Posts != "posts" {
		t.Error("empty prefix should produce bare table names")
	}
}

func TestPgErrorClassifiers(t *testing.T) {
	wrappedNoRows := fmt.Errorf("query: %w", pgx.ErrNoRows)
	invalidText := &pgconn.PgError{Code: "22P02"}
	undefinedTable := &pgconn.PgError{Code: "42P01"}

	if !IsPgNoRowsError(wrappedNoRows) {
		t.Error("wrapped ErrNoRows not detected")
	}
	if !IsPgInvalidTextError(fmt.Errorf("scan: %w", invalidText)) {
		t.Error("22P02 not detected")
	}
	if !IsPgUndefinedTableError(undefinedTable) {
		t.Error("42P01 not detected")
	}
	if IsPgInvalidTextError(errors.New("plain")) || IsPgUndefinedTableError(invalidText) {
		t.Error("false positive")
	}
}

func TestQueryError(t *testing.T) {
	undefinedTable := &pgconn.PgError{Code: "42P01"}

	err := queryError("list all records", undefinedTable)
	if !errors.Is(err, undefinedTable) {
		t.Error("original error not wrapped")
	}
	if !strings.Contains(err.Error(), "feedctl schema") {
		t.Errorf("missing schema hint: %v", err)
	}

	plain := queryError("count records", errors.New("boom"))
	if plain.Error() != "count records: boom" {
		t.Errorf("got %q", plain.Error())
	}
}
