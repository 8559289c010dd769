package services

import (
	"context"

	"filesfeed/internal/domain/models/board"
)

// BoardService manages an owner's investigation board
type BoardService interface {
	GetBoard(ctx context.Context, ownerID string) (*board.Board, error)
	AddNote(ctx context.Context, ownerID string, req *AddNoteRequest) (*board.Item, error)
	PinDocument(ctx context.Context, ownerID string, req *PinDocumentRequest) (*board.Item, error)
	MoveItem(ctx context.Context, ownerID, itemID string, req *MoveItemRequest) (*board.Item, error)
	DeleteItem(ctx context.Context, ownerID, itemID string) error
	Connect(ctx context.Context, ownerID string, req *ConnectRequest) (*board.Connection, error)
	Clear(ctx context.Context, ownerID string, confirmed bool) error
}

// AddNoteRequest creates a note at a random position
type AddNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PinDocumentRequest pins a feed record to the board
type PinDocumentRequest struct {
	RecordID string `json:"record_id"`
}

// MoveItemRequest carries a drag delta
type MoveItemRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// ConnectRequest links two items
type ConnectRequest struct {
	FromID string `json:"from_id"`
	ToID   string `json:"to_id"`
}
