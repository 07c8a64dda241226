package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/moodreel/moodreel_app/internal/apperrors"
	"github.com/moodreel/moodreel_app/internal/core/domain"
	portsrepo "github.com/moodreel/moodreel_app/internal/core/ports/repositories"
	"github.com/moodreel/moodreel_app/internal/models"
	"github.com/moodreel/moodreel_app/internal/utils/mapping"
)

// EntryRepository is the SQL storage strategy, one row per entry.
type EntryRepository struct {
	db *pgxpool.Pool
}

func NewEntryRepository(db *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{db: db}
}

// Ensure EntryRepository implements portsrepo.EntryRepositoryFacade
var _ portsrepo.EntryRepositoryFacade = (*EntryRepository)(nil)

const entryColumns = `entry_id, entry_date, mood, notes, location, media_type, media_kind, media_value, analysis, created_at`

func (r *EntryRepository) SaveEntry(ctx context.Context, entry domain.Entry) error {
	m := mapping.ToModelEntry(entry)
	query := `
        INSERT INTO entries (entry_id, entry_date, mood, notes, location, media_type, media_kind, media_value, analysis, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.db.Exec(ctx, query,
		m.EntryID,
		m.Date,
		m.Mood,
		m.Notes,
		m.Location,
		m.MediaType,
		m.MediaKind,
		m.MediaValue,
		m.Analysis,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to insert entry %s: %v", apperrors.ErrPersistence, m.EntryID, err)
	}
	return nil
}

func (r *EntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE entry_id = $1;`

	m, err := scanEntry(r.db.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by id %s: %w", entryID, err)
	}

	entry := mapping.ToDomainEntry(m)
	return &entry, nil
}

func (r *EntryRepository) ListEntries(ctx context.Context, order string) ([]domain.Entry, error) {
	orderBy := `ORDER BY created_at` // storage (insertion) order
	switch order {
	case portsrepo.OrderDateAsc:
		orderBy = `ORDER BY entry_date ASC, created_at ASC`
	case portsrepo.OrderDateDesc:
		orderBy = `ORDER BY entry_date DESC, created_at DESC`
	}

	query := `SELECT ` + entryColumns + ` FROM entries ` + orderBy + `;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

func (r *EntryRepository) FilterEntries(ctx context.Context, filters map[string]string) ([]domain.Entry, error) {
	// Only the supported keys become predicates; unknown keys are ignored so
	// an unrecognized filter falls back to the whole set.
	where := ""
	args := []interface{}{}
	if id, ok := filters["id"]; ok {
		args = append(args, id)
		where += fmt.Sprintf(" AND entry_id = $%d", len(args))
	}
	if date, ok := filters["date"]; ok {
		args = append(args, date)
		where += fmt.Sprintf(" AND entry_date = $%d", len(args))
	}

	query := `SELECT ` + entryColumns + ` FROM entries WHERE TRUE` + where + ` ORDER BY created_at;`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to filter entries: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

func (r *EntryRepository) UpdateEntry(ctx context.Context, entry domain.Entry) error {
	m := mapping.ToModelEntry(entry)
	query := `
        UPDATE entries
        SET entry_date = $2,
            mood = $3,
            notes = $4,
            location = $5,
            media_type = $6,
            media_kind = $7,
            media_value = $8,
            analysis = $9
        WHERE entry_id = $1;
    `
	// created_at is immutable and deliberately not part of the SET list.
	cmdTag, err := r.db.Exec(ctx, query,
		m.EntryID,
		m.Date,
		m.Mood,
		m.Notes,
		m.Location,
		m.MediaType,
		m.MediaKind,
		m.MediaValue,
		m.Analysis,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to update entry %s: %v", apperrors.ErrPersistence, m.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("entry " + m.EntryID + " not found for update")
	}
	return nil
}

func (r *EntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("%w: failed to delete entry %s: %v", apperrors.ErrPersistence, entryID, err)
	}
	// Zero rows affected means the entry was already gone; not an error.
	return nil
}

func scanEntry(row pgx.Row) (models.Entry, error) {
	var m models.Entry
	err := row.Scan(
		&m.EntryID,
		&m.Date,
		&m.Mood,
		&m.Notes,
		&m.Location,
		&m.MediaType,
		&m.MediaKind,
		&m.MediaValue,
		&m.Analysis,
		&m.CreatedAt,
	)
	return m, err
}

func collectEntries(rows pgx.Rows) ([]domain.Entry, error) {
	modelEntries := []models.Entry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}
	return mapping.ToDomainEntrySlice(modelEntries), nil
}
