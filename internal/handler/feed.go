package handler

import (
	"log/slog"
	"net/http"

	models "filesfeed/internal/domain/models/feed"
	"filesfeed/internal/domain/services"
	"filesfeed/internal/httputil"
)

// FeedHandler serves the feed, paging, search, category and record endpoints
type FeedHandler struct {
	service services.FeedService
	logger  *slog.Logger
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(service services.FeedService, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{
		service: service,
		logger:  logger,
	}
}

// Browse returns the filtered feed window
// GET /api/feed?category=&person=&q=&shown=
func (h *FeedHandler) Browse(w http.ResponseWriter, r *http.Request) {
	shown, err := httputil.QueryInt(r, "shown", 0)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	q := r.URL.Query()
	filter := models.FilterState{
		Category: q.Get("category"),
		Person:   q.Get("person"),
		Query:    q.Get("q"),
	}

	view, err := h.service.Browse(r.Context(), filter, shown)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// ListRecords returns one page of the infinite-scroll feed
// GET /api/records?page=&category=
func (h *FeedHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	page, err := httputil.QueryInt(r, "page", 1)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	result, err := h.service.Page(r.Context(), page, r.URL.Query().Get("category"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// GetRecord returns a record with rendered full text
// GET /api/records/{id}
func (h *FeedHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.Record(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, detail)
}

// Search runs a backend search
// GET /api/search?q=
func (h *FeedHandler) Search(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, results)
}

// Categories returns the category strip
// GET /api/categories
func (h *FeedHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
	})
}

// Home returns the landing summary
// GET /api/home
func (h *FeedHandler) Home(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Home(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, summary)
}
