package services

import (
	"context"

	"github.com/moodreel/moodreel_app/internal/core/domain"
	"github.com/moodreel/moodreel_app/internal/dto"
)

// EntrySvcFacade is the public contract all clients use for entry CRUD. Read
// paths return hydrated responses: stored media references are already
// resolved to playable URLs.
type EntrySvcFacade interface {
	// CreateEntry validates the request, assigns id and creation time and
	// persists the entry. The returned record is unhydrated (the media
	// reference is stored as given).
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest) (*domain.Entry, error)

	// ListEntries returns all entries, hydrated, in the requested order
	// ("", "date" or "-date").
	ListEntries(ctx context.Context, order string) ([]dto.EntryResponse, error)

	// FilterEntries returns hydrated entries matching the filters ("id",
	// "date"); unknown filter keys fall back to the whole set.
	FilterEntries(ctx context.Context, filters map[string]string) ([]dto.EntryResponse, error)

	// GetEntryByID returns one hydrated entry or apperrors.ErrNotFound.
	GetEntryByID(ctx context.Context, entryID string) (*dto.EntryResponse, error)

	// UpdateEntry merges the given fields into the stored entry. Unset
	// request fields are preserved; id and creation time are immutable.
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest) (*dto.EntryResponse, error)

	// DeleteEntry removes the entry and reclaims any blob it owned.
	// Returns apperrors.ErrNotFound if the id is unknown.
	DeleteEntry(ctx context.Context, entryID string) error
}
