package handler

import (
	"log/slog"
	"net/http"

	"filesfeed/internal/domain/services"
	"filesfeed/internal/httputil"
)

// BoardHandler serves the owner's investigation board
type BoardHandler struct {
	service services.BoardService
	logger  *slog.Logger
}

// NewBoardHandler creates a new board handler
func NewBoardHandler(service services.BoardService, logger *slog.Logger) *BoardHandler {
	return &BoardHandler{
		service: service,
		logger:  logger,
	}
}

// GetBoard returns the full board
// GET /api/me/board
func (h *BoardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.service.GetBoard(r.Context(), httputil.GetOwnerID(r))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, board)
}

// AddNote creates a note
// POST /api/me/board/notes
func (h *BoardHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	var req services.AddNoteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	item, err := h.service.AddNote(r.Context(), httputil.GetOwnerID(r), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, item)
}

// PinDocument pins a record
// POST /api/me/board/documents
func (h *BoardHandler) PinDocument(w http.ResponseWriter, r *http.Request) {
	var req services.PinDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	item, err := h.service.PinDocument(r.Context(), httputil.GetOwnerID(r), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, item)
}

// MoveItem applies a drag delta
// PATCH /api/me/board/items/{id}/position
func (h *BoardHandler) MoveItem(w http.ResponseWriter, r *http.Request) {
	var req services.MoveItemRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	item, err := h.service.MoveItem(r.Context(), httputil.GetOwnerID(r), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, item)
}

// DeleteItem removes an item and its connections
// DELETE /api/me/board/items/{id}
func (h *BoardHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteItem(r.Context(), httputil.GetOwnerID(r), r.PathValue("id")); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Connect links two items
// POST /api/me/board/connections
func (h *BoardHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var req services.ConnectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	conn, err := h.service.Connect(r.Context(), httputil.GetOwnerID(r), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, conn)
}

// Clear wipes the board
// DELETE /api/me/board?confirm=true
func (h *BoardHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context(), httputil.GetOwnerID(r), httputil.QueryBool(r, "confirm")); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
