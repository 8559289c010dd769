package board

import (
	"fmt"
	"math"

	"filesfeed/internal/domain"
)

// ItemType is the kind of thing pinned to the board
type ItemType string

const (
	ItemTypeNote       ItemType = "note"
	ItemTypeDocument   ItemType = "document"
	ItemTypeConnection ItemType = "connection"
)

// Default colours, matching the classes the web client renders
const (
	NoteColor     = "bg-yellow-500"
	DocumentColor = "bg-blue-600"
)

// Item is a positioned note or pinned document
type Item struct {
	ID       string   `json:"id"`
	Type     ItemType `json:"type"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Color    string   `json:"color"`
	RecordID string   `json:"record_id,omitempty"` // Set for pinned documents
}

// Connection links two items. It references them by id and does not own them.
type Connection struct {
	ID     string `json:"id"`
	FromID string `json:"fromId"`
	ToID   string `json:"toId"`
}

// Board is the full persisted investigation board
type Board struct {
	Items       []Item       `json:"items"`
	Connections []Connection `json:"connections"`
}

// New returns an empty board with non-nil slices
func New() *Board {
	return &Board{
		Items:       []Item{},
		Connections: []Connection{},
	}
}

// Find returns the index of the item with the given id, or -1
func (b *Board) Find(id string) int {
	for i := range b.Items {
		if b.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// Add appends an item. Ids must be unique.
func (b *Board) Add(item Item) error {
	if b.Find(item.ID) >= 0 {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("board item %s already exists", item.ID),
			ResourceType: "board_item",
			ResourceID:   item.ID,
		}
	}
	b.Items = append(b.Items, item)
	return nil
}

// Move shifts an item by a drag delta, clamping to non-negative coordinates
func (b *Board) Move(id string, dx, dy float64) (*Item, error) {
	i := b.Find(id)
	if i < 0 {
		return nil, fmt.Errorf("board item %s: %w", id, domain.ErrNotFound)
	}

	x, y := clamp(b.Items[i].X+dx), clamp(b.Items[i].Y+dy)
	if !finite(x) || !finite(y) {
		return nil, &domain.ValidationError{Field: "position", Message: "must be a finite coordinate"}
	}
	b.Items[i].X = x
	b.Items[i].Y = y

	item := b.Items[i]
	return &item, nil
}

// Delete removes an item and every connection that references it
func (b *Board) Delete(id string) error {
	i := b.Find(id)
	if i < 0 {
		return fmt.Errorf("board item %s: %w", id, domain.ErrNotFound)
	}

	b.Items = append(b.Items[:i], b.Items[i+1:]...)

	kept := b.Connections[:0]
	for _, c := range b.Connections {
		if c.FromID != id && c.ToID != id {
			kept = append(kept, c)
		}
	}
	b.Connections = kept

	return nil
}

// Connect links two distinct existing items. A pair can only be linked once,
// in either direction.
func (b *Board) Connect(id, fromID, toID string) (*Connection, error) {
	if fromID == toID {
		return nil, &domain.ValidationError{Field: "to_id", Message: "cannot connect an item to itself"}
	}
	if b.Find(fromID) < 0 {
		return nil, fmt.Errorf("board item %s: %w", fromID, domain.ErrNotFound)
	}
	if b.Find(toID) < 0 {
		return nil, fmt.Errorf("board item %s: %w", toID, domain.ErrNotFound)
	}

	for _, c := range b.Connections {
		if (c.FromID == fromID && c.ToID == toID) || (c.FromID == toID && c.ToID == fromID) {
			return nil, &domain.ConflictError{
				Message:      fmt.Sprintf("items %s and %s are already connected", fromID, toID),
				ResourceType: "connection",
				ResourceID:   c.ID,
			}
		}
	}

	conn := Connection{ID: id, FromID: fromID, ToID: toID}
	b.Connections = append(b.Connections, conn)
	return &conn, nil
}

// Clear removes every item and connection
func (b *Board) Clear() {
	b.Items = []Item{}
	b.Connections = []Connection{}
}

// Prune drops connections whose endpoints no longer exist.
// Returns the number of connections removed.
func (b *Board) Prune() int {
	if b.Items == nil {
		b.Items = []Item{}
	}
	if b.Connections == nil {
		b.Connections = []Connection{}
		return 0
	}

	before := len(b.Connections)
	kept := b.Connections[:0]
	for _, c := range b.Connections {
		if b.Find(c.FromID) >= 0 && b.Find(c.ToID) >= 0 {
			kept = append(kept, c)
		}
	}
	b.Connections = kept
	return before - len(kept)
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
