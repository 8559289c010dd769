package handler

import "net/http"

// Handlers groups every HTTP handler the server mounts
type Handlers struct {
	Feed     *FeedHandler
	Board    *BoardHandler
	Progress *ProgressHandler
	Catalog  *CatalogHandler
	Health   *HealthHandler
	Metrics  http.Handler // Optional
}

// RegisterRoutes mounts all routes on mux (Go 1.22+ method patterns)
func RegisterRoutes(mux *http.ServeMux, h *Handlers) {
	// Health check
	mux.HandleFunc("GET /health", h.Health.HealthCheck)
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}

	// Feed routes
	mux.HandleFunc("GET /api/home", h.Feed.Home)
	mux.HandleFunc("GET /api/feed", h.Feed.Browse)
	mux.HandleFunc("GET /api/records", h.Feed.ListRecords)
	mux.HandleFunc("GET /api/records/{id}", h.Feed.GetRecord)
	mux.HandleFunc("GET /api/search", h.Feed.Search)
	mux.HandleFunc("GET /api/categories", h.Feed.Categories)

	// Catalog routes
	mux.HandleFunc("GET /api/people", h.Catalog.ListPeople)
	mux.HandleFunc("GET /api/people/{name}", h.Catalog.GetPerson)
	mux.HandleFunc("GET /api/timeline", h.Catalog.Timeline)

	// Board routes (owner-scoped)
	mux.HandleFunc("GET /api/me/board", h.Board.GetBoard)
	mux.HandleFunc("DELETE /api/me/board", h.Board.Clear)
	mux.HandleFunc("POST /api/me/board/notes", h.Board.AddNote)
	mux.HandleFunc("POST /api/me/board/documents", h.Board.PinDocument)
	mux.HandleFunc("PATCH /api/me/board/items/{id}/position", h.Board.MoveItem)
	mux.HandleFunc("DELETE /api/me/board/items/{id}", h.Board.DeleteItem)
	mux.HandleFunc("POST /api/me/board/connections", h.Board.Connect)

	// Progress routes (owner-scoped)
	mux.HandleFunc("GET /api/me/progress", h.Progress.GetProgress)
	mux.HandleFunc("POST /api/me/bookmarks/{id}", h.Progress.ToggleBookmark)
	mux.HandleFunc("POST /api/me/reads", h.Progress.MarkRead)
}
