package repositories

import "context"

// State keys. Values are opaque JSON without versioning.
const (
	StateKeyBoard     = "investigationBoard"
	StateKeyBookmarks = "bookmarkedDocs"
	StateKeyReadCount = "readDocuments"
)

// StateStore persists per-owner JSON blobs
type StateStore interface {
	// Load returns the stored value, or nil with no error when nothing is stored
	Load(ctx context.Context, ownerID, key string) ([]byte, error)

	// Save replaces the stored value
	Save(ctx context.Context, ownerID, key string, value []byte) error
}
