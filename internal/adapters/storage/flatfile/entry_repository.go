// Package flatfile persists the whole entry collection as one serialized
// JSON list. Every mutation rewrites the full document; the in-memory cache
// is only replaced once the durable write has landed, so a failed write never
// leaves phantom entries visible to readers.
package flatfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/moodreel/moodreel_app/internal/apperrors"
	"github.com/moodreel/moodreel_app/internal/core/domain"
	portsrepo "github.com/moodreel/moodreel_app/internal/core/ports/repositories"
)

const entriesFilename = "entries.json"

// EntryRepository is the flat serialized-list storage strategy. It is an
// explicit store object: constructed once, loads at construction time, and is
// injected into consumers rather than living as a package-level singleton.
type EntryRepository struct {
	mu      sync.RWMutex
	path    string
	entries []domain.Entry
}

func NewEntryRepository(dataDir string) (*EntryRepository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dataDir, err)
	}

	r := &EntryRepository{path: filepath.Join(dataDir, entriesFilename)}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

// Ensure EntryRepository implements portsrepo.EntryRepositoryFacade
var _ portsrepo.EntryRepositoryFacade = (*EntryRepository)(nil)

func (r *EntryRepository) load() error {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.entries = []domain.Entry{}
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", r.path, err)
	}
	var entries []domain.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return fmt.Errorf("failed to parse %s: %w", r.path, err)
	}
	r.entries = entries
	return nil
}

// persist writes the given collection durably. The write goes to a temp file
// in the same directory followed by a rename, so readers never observe a
// partially written document and a failure leaves the previous file intact.
func (r *EntryRepository) persist(entries []domain.Entry) error {
	raw, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to serialize entries: %v", apperrors.ErrPersistence, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), "entries-*.json.tmp")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file: %v", apperrors.ErrPersistence, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: failed to write entries: %v", apperrors.ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: failed to close temp file: %v", apperrors.ErrPersistence, err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: failed to replace %s: %v", apperrors.ErrPersistence, r.path, err)
	}
	return nil
}

func (r *EntryRepository) SaveEntry(_ context.Context, entry domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]domain.Entry, len(r.entries), len(r.entries)+1)
	copy(next, r.entries)
	next = append(next, cloneEntry(entry))

	if err := r.persist(next); err != nil {
		return err
	}
	r.entries = next
	return nil
}

func (r *EntryRepository) FindEntryByID(_ context.Context, entryID string) (*domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if e.EntryID == entryID {
			found := cloneEntry(e)
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *EntryRepository) ListEntries(_ context.Context, order string) ([]domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortEntries(cloneEntries(r.entries), order), nil
}

func (r *EntryRepository) FilterEntries(_ context.Context, filters map[string]string) ([]domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if matchesFilters(e, filters) {
			result = append(result, cloneEntry(e))
		}
	}
	return result, nil
}

func (r *EntryRepository) UpdateEntry(_ context.Context, entry domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, e := range r.entries {
		if e.EntryID == entry.EntryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperrors.ErrNotFound
	}

	next := cloneEntries(r.entries)
	next[idx] = cloneEntry(entry)

	if err := r.persist(next); err != nil {
		return err
	}
	r.entries = next
	return nil
}

func (r *EntryRepository) DeleteEntry(_ context.Context, entryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]domain.Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if e.EntryID != entryID {
			next = append(next, e)
		}
	}
	if len(next) == len(r.entries) {
		// Already absent; deleting twice is not an error.
		return nil
	}

	if err := r.persist(next); err != nil {
		return err
	}
	r.entries = next
	return nil
}

// matchesFilters applies the supported filter keys conjunctively. Unknown
// keys are ignored, so an unrecognized filter matches everything.
func matchesFilters(e domain.Entry, filters map[string]string) bool {
	for key, want := range filters {
		switch key {
		case "id":
			if e.EntryID != want {
				return false
			}
		case "date":
			if e.Date != want {
				return false
			}
		}
	}
	return true
}

// sortEntries orders entries by date with creation time as the tie-breaker.
// An empty or unrecognized order preserves storage order, matching the
// permissive list contract.
func sortEntries(entries []domain.Entry, order string) []domain.Entry {
	switch order {
	case portsrepo.OrderDateAsc:
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].Date != entries[j].Date {
				return entries[i].Date < entries[j].Date
			}
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		})
	case portsrepo.OrderDateDesc:
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].Date != entries[j].Date {
				return entries[i].Date > entries[j].Date
			}
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		})
	}
	return entries
}

func cloneEntry(e domain.Entry) domain.Entry {
	if e.Media != nil {
		media := *e.Media
		e.Media = &media
	}
	return e
}

func cloneEntries(entries []domain.Entry) []domain.Entry {
	out := make([]domain.Entry, len(entries))
	for i, e := range entries {
		out[i] = cloneEntry(e)
	}
	return out
}
