package repositories

import (
	"context"

	"github.com/moodreel/moodreel_app/internal/core/domain"
)

// List orders accepted by EntryReader.ListEntries. The empty order preserves
// storage order.
const (
	OrderDateAsc  = "date"
	OrderDateDesc = "-date"
)

// EntryReader defines read operations for journal entries.
type EntryReader interface {
	// FindEntryByID retrieves a single entry, or apperrors.ErrNotFound.
	FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)

	// ListEntries retrieves all entries. order is "", "date" or "-date";
	// ties on date are broken by creation time, stably.
	ListEntries(ctx context.Context, order string) ([]domain.Entry, error)

	// FilterEntries retrieves entries matching the given filters. Supported
	// keys are "id" and "date"; unknown keys are ignored, so an unrecognized
	// filter returns the entire set rather than an error.
	FilterEntries(ctx context.Context, filters map[string]string) ([]domain.Entry, error)
}

// EntryWriter defines write operations for journal entries.
type EntryWriter interface {
	// SaveEntry persists a new entry. A durable-write failure is reported as
	// apperrors.ErrPersistence and must leave the entry invisible to
	// subsequent reads.
	SaveEntry(ctx context.Context, entry domain.Entry) error

	// UpdateEntry overwrites the stored record with the given (already
	// merged) entry. Returns apperrors.ErrNotFound if the id is unknown.
	UpdateEntry(ctx context.Context, entry domain.Entry) error

	// DeleteEntry removes an entry. Deleting an absent id is a no-op.
	DeleteEntry(ctx context.Context, entryID string) error
}

// EntryRepositoryFacade combines all entry repository interfaces. Storage
// strategies (flat serialized list, SQL) implement this and are selected at
// construction time.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}
