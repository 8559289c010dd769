package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filesfeed/internal/catalog"
	"filesfeed/internal/domain"
	models "filesfeed/internal/domain/models/feed"
	"filesfeed/internal/httputil"
	"filesfeed/internal/render"
	boardsvc "filesfeed/internal/service/board"
	feedsvc "filesfeed/internal/service/feed"
	progresssvc "filesfeed/internal/service/progress"
	"filesfeed/internal/service/state"
)

func strPtr(s string) *string { return &s }

type memRecords struct {
	records []models.Record
	err     error
}

func (m *memRecords) ListRecent(ctx context.Context, opts *models.ListOptions) ([]models.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Record
	for _, r := range m.records {
		if opts.DocumentType == "" || r.Type() == opts.DocumentType {
			out = append(out, r)
		}
	}
	if opts.Offset >= len(out) {
		return []models.Record{}, nil
	}
	end := opts.Offset + opts.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[opts.Offset:end], nil
}

func (m *memRecords) ListAll(ctx context.Context) ([]models.Record, error) {
	return m.records, m.err
}

func (m *memRecords) Count(ctx context.Context) (int, error) {
	return len(m.records), m.err
}

func (m *memRecords) Search(ctx context.Context, query string, limit int) ([]models.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	return feedsvc.Apply(m.records, models.FilterState{Query: query}), nil
}

func (m *memRecords) GetByID(ctx context.Context, id string) (*models.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.records {
		if m.records[i].ID == id {
			r := m.records[i]
			return &r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memRecords) CategoryCounts(ctx context.Context) ([]models.Category, error) {
	return models.GroupCategories(m.records), m.err
}

type failingPinger struct{}

func (failingPinger) Ping(ctx context.Context) error { return errors.New("refused") }

// newTestServer wires real services over in-memory storage. Requests carry
// the owner through the context the way the auth middleware sets it.
func newTestServer(t *testing.T, repo *memRecords) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := state.NewMemoryStore()

	feedService := feedsvc.NewFeedService(repo, render.NewRenderer(), logger)
	registry, err := catalog.NewRegistry()
	require.NoError(t, err)

	mux := http.NewServeMux()
	RegisterRoutes(mux, &Handlers{
		Feed:     NewFeedHandler(feedService, logger),
		Board:    NewBoardHandler(boardsvc.NewBoardService(store, store, repo, nil, logger), logger),
		Progress: NewProgressHandler(progresssvc.NewProgressService(store, store, feedService, nil, logger), logger),
		Catalog:  NewCatalogHandler(registry, logger),
		Health:   NewHealthHandler(nil, logger),
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if owner := r.Header.Get("X-Test-Owner"); owner != "" {
			r = httputil.WithOwnerID(r, owner)
		}
		mux.ServeHTTP(w, r)
	})
}

func sampleRepo() *memRecords {
	records := make([]models.Record, 0, 30)
	for i := 0; i < 25; i++ {
		records = append(records, models.Record{
			ID:           "email-" + string(rune('a'+i)),
			Title:        "Email thread",
			DocumentType: strPtr("Email"),
		})
	}
	records = append(records, models.Record{
		ID:             "overview",
		Title:          "Epstein Files Overview",
		FullText:       strPtr("# Overview\n\nIndex of releases."),
		DocumentType:   strPtr("Overview"),
		KeyPeopleNames: []string{"Jeffrey Epstein"},
	})
	return &memRecords{records: records}
}

func do(t *testing.T, h http.Handler, method, path, body, owner string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if owner != "" {
		req.Header.Set("X-Test-Owner", owner)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	}
	return rec, decoded
}

func TestFeedRoutes(t *testing.T) {
	h := newTestServer(t, sampleRepo())

	rec, body := do(t, h, "GET", "/api/feed", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["records"], 12)
	assert.Equal(t, 26.0, body["filtered"])
	assert.Equal(t, true, body["has_more"])

	rec, body = do(t, h, "GET", "/api/feed?q=epstein&shown=12", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1.0, body["filtered"])

	rec, _ = do(t, h, "GET", "/api/feed?shown=lots", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = do(t, h, "GET", "/api/feed?shown=9223372036854775807", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["records"], 26)
	assert.Equal(t, false, body["has_more"])

	rec, body = do(t, h, "GET", "/api/records?page=9223372036854775807", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, body["records"])
	assert.Equal(t, false, body["has_more"])

	rec, body = do(t, h, "GET", "/api/records?page=2", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["records"], 6)
	assert.Equal(t, false, body["has_more"])

	rec, body = do(t, h, "GET", "/api/records/overview", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "overview", body["category_slug"])
	assert.Contains(t, body["full_text_html"], "Overview</h1>")

	rec, _ = do(t, h, "GET", "/api/records/missing", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	rec, body = do(t, h, "GET", "/api/categories", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["categories"], 2)

	rec, body = do(t, h, "GET", "/api/search?q=overview", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1.0, body["count"])
}

func TestFeedRoutes_BackendDown(t *testing.T) {
	repo := sampleRepo()
	repo.err = errors.New("connection refused")
	h := newTestServer(t, repo)

	for _, path := range []string{"/api/feed", "/api/records?page=1", "/api/search?q=epstein", "/api/home", "/api/categories"} {
		rec, _ := do(t, h, "GET", path, "", "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec, _ := do(t, h, "GET", "/api/records/overview", "", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	repo.err = domain.ErrUnavailable
	rec, problem := do(t, h, "GET", "/api/records/overview", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))
	assert.Equal(t, string(httputil.ProblemUnavailable), problem["type"])
}

func TestBoardRoutes(t *testing.T) {
	h := newTestServer(t, sampleRepo())
	owner := "local"

	rec, note := do(t, h, "POST", "/api/me/board/notes", `{"title":"Lead","content":"follow up"}`, owner)
	require.Equal(t, http.StatusCreated, rec.Code)
	noteID := note["id"].(string)

	rec, doc := do(t, h, "POST", "/api/me/board/documents", `{"record_id":"overview"}`, owner)
	require.Equal(t, http.StatusCreated, rec.Code)
	docID := doc["id"].(string)
	assert.Equal(t, "Epstein Files Overview", doc["title"])

	rec, conn := do(t, h, "POST", "/api/me/board/connections", `{"from_id":"`+noteID+`","to_id":"`+docID+`"}`, owner)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, noteID, conn["fromId"])

	rec, problem := do(t, h, "POST", "/api/me/board/connections", `{"from_id":"`+docID+`","to_id":"`+noteID+`"}`, owner)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "connection", problem["resource_type"])

	rec, moved := do(t, h, "PATCH", "/api/me/board/items/"+noteID+"/position", `{"dx":-9999,"dy":0}`, owner)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0.0, moved["x"])

	rec, _ = do(t, h, "PATCH", "/api/me/board/items/"+noteID+"/position", `{"dx":1e308,"dy":0}`, owner)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, h, "DELETE", "/api/me/board/items/"+docID, "", owner)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, board := do(t, h, "GET", "/api/me/board", "", owner)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, board["items"], 1)
	assert.Len(t, board["connections"], 0)

	rec, _ = do(t, h, "DELETE", "/api/me/board", "", owner)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, h, "DELETE", "/api/me/board?confirm=true", "", owner)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = do(t, h, "POST", "/api/me/board/notes", `{"title":""}`, owner)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, h, "GET", "/api/me/board", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProgressRoutes(t *testing.T) {
	h := newTestServer(t, sampleRepo())
	owner := "reader"

	rec, body := do(t, h, "POST", "/api/me/bookmarks/overview", "", owner)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["bookmarked"])

	for i := 0; i < 5; i++ {
		rec, body = do(t, h, "POST", "/api/me/reads", "", owner)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 5.0, body["read_count"])

	rec, body = do(t, h, "GET", "/api/me/progress", "", owner)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 26.0, body["total_documents"])
	assert.Equal(t, 19.0, body["completion_percent"])
	assert.Len(t, body["achievements"], 6)
}

func TestCatalogRoutes(t *testing.T) {
	h := newTestServer(t, sampleRepo())

	rec, body := do(t, h, "GET", "/api/people", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["people"], 10)

	rec, body = do(t, h, "GET", "/api/people/Virginia%20Giuffre", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, body["timeline"])

	rec, _ = do(t, h, "GET", "/api/people/Nobody", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body = do(t, h, "GET", "/api/timeline?type=death", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["entries"], 2)
}

func TestHealthCheck(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	rec := httptest.NewRecorder()
	NewHealthHandler(nil, logger).HealthCheck(rec, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	NewHealthHandler(map[string]Pinger{"database": failingPinger{}}, logger).HealthCheck(rec, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
