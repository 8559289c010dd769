package handler

import (
	"log/slog"
	"net/http"

	"filesfeed/internal/domain/services"
	"filesfeed/internal/httputil"
)

// ProgressHandler serves bookmarks, the read counter and achievements
type ProgressHandler struct {
	service services.ProgressService
	logger  *slog.Logger
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(service services.ProgressService, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{
		service: service,
		logger:  logger,
	}
}

// GetProgress returns the progress summary
// GET /api/me/progress
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context(), httputil.GetOwnerID(r))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, summary)
}

// ToggleBookmark flips a record's bookmark
// POST /api/me/bookmarks/{id}
func (h *ProgressHandler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	recordID := r.PathValue("id")
	bookmarked, err := h.service.ToggleBookmark(r.Context(), httputil.GetOwnerID(r), recordID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"record_id":  recordID,
		"bookmarked": bookmarked,
	})
}

// MarkRead increments the read counter
// POST /api/me/reads
func (h *ProgressHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.MarkRead(r.Context(), httputil.GetOwnerID(r))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int{
		"read_count": count,
	})
}
