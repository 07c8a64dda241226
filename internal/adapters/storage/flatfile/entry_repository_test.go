package flatfile_test

import (
	"context"
	"testing"
	"time"

	"github.com/moodreel/moodreel_app/internal/adapters/storage/flatfile"
	"github.com/moodreel/moodreel_app/internal/apperrors"
	"github.com/moodreel/moodreel_app/internal/core/domain"
	portsrepo "github.com/moodreel/moodreel_app/internal/core/ports/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*flatfile.EntryRepository, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := flatfile.NewEntryRepository(dir)
	require.NoError(t, err)
	return repo, dir
}

func makeEntry(id, date string, createdAt time.Time) domain.Entry {
	return domain.Entry{
		EntryID:   id,
		Date:      date,
		Mood:      domain.MoodNeutral,
		CreatedAt: createdAt,
	}
}

func TestSaveAndFindEntry(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	entry := makeEntry("e1", "2024-01-05", time.Now().UTC())
	entry.Media = &domain.Media{Type: domain.MediaTypeAudio, Ref: domain.BlobRef("blob-1")}
	require.NoError(t, repo.SaveEntry(ctx, entry))

	found, err := repo.FindEntryByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, entry.Date, found.Date)
	require.NotNil(t, found.Media)
	assert.Equal(t, domain.BlobRef("blob-1"), found.Media.Ref)
}

func TestFindEntryByID_NotFound(t *testing.T) {
	repo, _ := newRepo(t)

	_, err := repo.FindEntryByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListEntries_SortedByDateWithCreationTieBreak(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 6, 10, 0, 0, 0, time.UTC)
	// Two entries share a date; creation order decides between them.
	require.NoError(t, repo.SaveEntry(ctx, makeEntry("older", "2024-01-05", base.Add(-48*time.Hour))))
	require.NoError(t, repo.SaveEntry(ctx, makeEntry("newer-same-day", "2024-01-06", base.Add(time.Hour))))
	require.NoError(t, repo.SaveEntry(ctx, makeEntry("older-same-day", "2024-01-06", base)))

	desc, err := repo.ListEntries(ctx, portsrepo.OrderDateDesc)
	require.NoError(t, err)
	require.Len(t, desc, 3)
	assert.Equal(t, "newer-same-day", desc[0].EntryID)
	assert.Equal(t, "older-same-day", desc[1].EntryID)
	assert.Equal(t, "older", desc[2].EntryID)

	asc, err := repo.ListEntries(ctx, portsrepo.OrderDateAsc)
	require.NoError(t, err)
	assert.Equal(t, "older", asc[0].EntryID)
	assert.Equal(t, "older-same-day", asc[1].EntryID)
	assert.Equal(t, "newer-same-day", asc[2].EntryID)
}

func TestFilterEntries(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, repo.SaveEntry(ctx, makeEntry("e1", "2024-01-05", now)))
	require.NoError(t, repo.SaveEntry(ctx, makeEntry("e2", "2024-01-06", now)))
	require.NoError(t, repo.SaveEntry(ctx, makeEntry("e3", "2024-01-05", now)))

	byDate, err := repo.FilterEntries(ctx, map[string]string{"date": "2024-01-05"})
	require.NoError(t, err)
	assert.Len(t, byDate, 2)

	byID, err := repo.FilterEntries(ctx, map[string]string{"id": "e2"})
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, "e2", byID[0].EntryID)

	both, err := repo.FilterEntries(ctx, map[string]string{"id": "e2", "date": "2024-01-05"})
	require.NoError(t, err)
	assert.Empty(t, both)

	unknownKey, err := repo.FilterEntries(ctx, map[string]string{"mood": "happy"})
	require.NoError(t, err)
	assert.Len(t, unknownKey, 3)
}

func TestUpdateEntry(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	entry := makeEntry("e1", "2024-01-05", time.Now().UTC())
	require.NoError(t, repo.SaveEntry(ctx, entry))

	entry.Notes = "updated"
	require.NoError(t, repo.UpdateEntry(ctx, entry))

	found, err := repo.FindEntryByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "updated", found.Notes)
}

func TestUpdateEntry_NotFound(t *testing.T) {
	repo, _ := newRepo(t)

	err := repo.UpdateEntry(context.Background(), makeEntry("ghost", "2024-01-05", time.Now().UTC()))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteEntry_Idempotent(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveEntry(ctx, makeEntry("e1", "2024-01-05", time.Now().UTC())))

	require.NoError(t, repo.DeleteEntry(ctx, "e1"))
	_, err := repo.FindEntryByID(ctx, "e1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Deleting again is a no-op, not an error.
	require.NoError(t, repo.DeleteEntry(ctx, "e1"))
	require.NoError(t, repo.DeleteEntry(ctx, "never-existed"))
}

func TestEntriesSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	repo, err := flatfile.NewEntryRepository(dir)
	require.NoError(t, err)
	entry := makeEntry("e1", "2024-01-05", time.Now().UTC().Truncate(time.Second))
	entry.Notes = "persisted"
	require.NoError(t, repo.SaveEntry(ctx, entry))

	reopened, err := flatfile.NewEntryRepository(dir)
	require.NoError(t, err)
	found, err := reopened.FindEntryByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "persisted", found.Notes)
	assert.Equal(t, entry.Date, found.Date)
}

func TestReturnedEntriesAreCopies(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	entry := makeEntry("e1", "2024-01-05", time.Now().UTC())
	entry.Media = &domain.Media{Type: domain.MediaTypeVideo, Ref: domain.URLRef("https://example.com/a.mp4")}
	require.NoError(t, repo.SaveEntry(ctx, entry))

	first, err := repo.FindEntryByID(ctx, "e1")
	require.NoError(t, err)
	first.Media.Ref = domain.BlobRef("tampered")

	second, err := repo.FindEntryByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, domain.URLRef("https://example.com/a.mp4"), second.Media.Ref)
}
