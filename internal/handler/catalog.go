package handler

import (
	"log/slog"
	"net/http"

	"filesfeed/internal/catalog"
	models "filesfeed/internal/domain/models/catalog"
	"filesfeed/internal/httputil"
)

// CatalogHandler serves the static people and timeline pages
type CatalogHandler struct {
	registry *catalog.Registry
	logger   *slog.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(registry *catalog.Registry, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		registry: registry,
		logger:   logger,
	}
}

// ListPeople returns every key figure
// GET /api/people
func (h *CatalogHandler) ListPeople(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"people": h.registry.People(),
	})
}

// GetPerson returns one profile plus the timeline entries naming them
// GET /api/people/{name}
func (h *CatalogHandler) GetPerson(w http.ResponseWriter, r *http.Request) {
	person, err := h.registry.Person(r.PathValue("name"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"person":   person,
		"timeline": h.registry.Timeline("", person.Name),
	})
}

// Timeline returns the case timeline
// GET /api/timeline?type=&person=
func (h *CatalogHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	entries := h.registry.Timeline(models.EventType(q.Get("type")), q.Get("person"))

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}
