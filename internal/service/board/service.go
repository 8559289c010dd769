package board

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"filesfeed/internal/config"
	"filesfeed/internal/domain"
	models "filesfeed/internal/domain/models/board"
	"filesfeed/internal/domain/repositories"
	"filesfeed/internal/domain/services"
	"filesfeed/internal/metrics"
	"filesfeed/internal/service/state"
)

type boardService struct {
	store     repositories.StateStore
	txManager repositories.TransactionManager
	records   repositories.RecordRepository
	metrics   *metrics.Collector
	logger    *slog.Logger

	// position returns a coordinate in [0, 1); replaced in tests
	position func() float64
}

// NewBoardService creates the board service. Every mutation loads the owner's
// board, changes it and saves it back inside one transaction.
func NewBoardService(
	store repositories.StateStore,
	txManager repositories.TransactionManager,
	records repositories.RecordRepository,
	collector *metrics.Collector,
	logger *slog.Logger,
) services.BoardService {
	return &boardService{
		store:     store,
		txManager: txManager,
		records:   records,
		metrics:   collector,
		logger:    logger,
		position:  rand.Float64,
	}
}

// GetBoard returns the owner's board, empty when nothing (or nothing readable) is stored
func (s *boardService) GetBoard(ctx context.Context, ownerID string) (*models.Board, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.load(ctx, ownerID)
}

// AddNote places a new note at a random spot on the canvas
func (s *boardService) AddNote(ctx context.Context, ownerID string, req *services.AddNoteRequest) (*models.Item, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validateAddNote(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	item := models.Item{
		ID:      "note-" + uuid.NewString(),
		Type:    models.ItemTypeNote,
		Title:   req.Title,
		Content: req.Content,
		X:       s.randomCoordinate(),
		Y:       s.randomCoordinate(),
		Color:   models.NoteColor,
	}

	err := s.mutate(ctx, ownerID, "note", func(b *models.Board) error {
		return b.Add(item)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("board note added", "owner", ownerID, "item_id", item.ID)
	return &item, nil
}

// PinDocument adds a record to the board as a document card
func (s *boardService) PinDocument(ctx context.Context, ownerID string, req *services.PinDocumentRequest) (*models.Item, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.RecordID, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	record, err := s.records.GetByID(ctx, req.RecordID)
	if err != nil {
		return nil, fmt.Errorf("pin record %s: %w", req.RecordID, err)
	}

	item := models.Item{
		ID:       "doc-" + uuid.NewString(),
		Type:     models.ItemTypeDocument,
		Title:    record.Title,
		Content:  record.SummaryText(),
		X:        s.randomCoordinate(),
		Y:        s.randomCoordinate(),
		Color:    models.DocumentColor,
		RecordID: record.ID,
	}

	err = s.mutate(ctx, ownerID, "document", func(b *models.Board) error {
		return b.Add(item)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("board document pinned", "owner", ownerID, "record_id", record.ID)
	return &item, nil
}

// MoveItem applies a drag delta
func (s *boardService) MoveItem(ctx context.Context, ownerID, itemID string, req *services.MoveItemRequest) (*models.Item, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.DX, validation.Min(-float64(config.MaxMoveDelta)), validation.Max(float64(config.MaxMoveDelta))),
		validation.Field(&req.DY, validation.Min(-float64(config.MaxMoveDelta)), validation.Max(float64(config.MaxMoveDelta))),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var moved *models.Item
	err := s.mutate(ctx, ownerID, "move", func(b *models.Board) error {
		item, err := b.Move(itemID, req.DX, req.DY)
		moved = item
		return err
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// DeleteItem removes an item and its connections
func (s *boardService) DeleteItem(ctx context.Context, ownerID, itemID string) error {
	err := s.mutate(ctx, ownerID, "delete", func(b *models.Board) error {
		return b.Delete(itemID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("board item deleted", "owner", ownerID, "item_id", itemID)
	return nil
}

// Connect links two existing items
func (s *boardService) Connect(ctx context.Context, ownerID string, req *services.ConnectRequest) (*models.Connection, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.FromID, validation.Required),
		validation.Field(&req.ToID, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var conn *models.Connection
	err := s.mutate(ctx, ownerID, "connect", func(b *models.Board) error {
		c, err := b.Connect("conn-"+uuid.NewString(), req.FromID, req.ToID)
		conn = c
		return err
	})
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Clear wipes the board. The caller must confirm.
func (s *boardService) Clear(ctx context.Context, ownerID string, confirmed bool) error {
	if !confirmed {
		return &domain.ValidationError{Field: "confirm", Message: "clearing the board must be confirmed"}
	}

	err := s.mutate(ctx, ownerID, "clear", func(b *models.Board) error {
		b.Clear()
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Warn("board cleared", "owner", ownerID)
	return nil
}

// mutate runs load -> fn -> save in a transaction. Nothing is saved when fn fails.
func (s *boardService) mutate(ctx context.Context, ownerID, kind string, fn func(*models.Board) error) error {
	if ownerID == "" {
		return domain.ErrUnauthorized
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		b, err := s.load(txCtx, ownerID)
		if err != nil {
			return err
		}
		if err := fn(b); err != nil {
			return err
		}
		return state.Save(txCtx, s.store, ownerID, repositories.StateKeyBoard, b)
	})
	if err != nil {
		return err
	}

	s.metrics.BoardMutation(kind)
	return nil
}

func (s *boardService) load(ctx context.Context, ownerID string) (*models.Board, error) {
	b, err := state.Load[*models.Board](ctx, s.store, s.logger, ownerID, repositories.StateKeyBoard)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return models.New(), nil
	}
	if n := b.Prune(); n > 0 {
		s.logger.Warn("dropped dangling board connections", "owner", ownerID, "count", n)
	}
	return b, nil
}

func (s *boardService) randomCoordinate() float64 {
	return s.position() * config.BoardCanvasSize
}

func validateAddNote(req *services.AddNoteRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.RuneLength(1, config.MaxNoteTitleLength),
		),
		validation.Field(&req.Content,
			validation.RuneLength(0, config.MaxNoteContentLength),
		),
	)
}
