package mapping

import (
	"github.com/moodreel/moodreel_app/internal/core/domain"
	"github.com/moodreel/moodreel_app/internal/models"
)

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// ToModelEntry converts a domain.Entry to its persistence shape.
func ToModelEntry(e domain.Entry) models.Entry {
	m := models.Entry{
		EntryID:   e.EntryID,
		Date:      e.Date,
		Mood:      strPtr(string(e.Mood)),
		Notes:     strPtr(e.Notes),
		Location:  strPtr(e.Location),
		Analysis:  strPtr(e.Analysis),
		CreatedAt: e.CreatedAt,
	}
	if e.Media != nil {
		mediaType := string(e.Media.Type)
		mediaKind := string(e.Media.Ref.Kind)
		mediaValue := e.Media.Ref.Value
		m.MediaType = &mediaType
		m.MediaKind = &mediaKind
		m.MediaValue = &mediaValue
	}
	return m
}

// ToDomainEntry converts a persistence row back to a domain.Entry.
func ToDomainEntry(m models.Entry) domain.Entry {
	e := domain.Entry{
		EntryID:   m.EntryID,
		Date:      m.Date,
		Mood:      domain.Mood(strVal(m.Mood)),
		Notes:     strVal(m.Notes),
		Location:  strVal(m.Location),
		Analysis:  strVal(m.Analysis),
		CreatedAt: m.CreatedAt,
	}
	if m.MediaType != nil && m.MediaValue != nil {
		ref := domain.MediaRef{Kind: domain.MediaRefKind(strVal(m.MediaKind)), Value: *m.MediaValue}
		if ref.Kind == "" {
			// Rows written before references were tagged.
			ref = domain.ClassifyRef(*m.MediaValue)
		}
		e.Media = &domain.Media{Type: domain.MediaType(*m.MediaType), Ref: ref}
	}
	return e
}

// ToDomainEntrySlice converts a slice of rows.
func ToDomainEntrySlice(rows []models.Entry) []domain.Entry {
	entries := make([]domain.Entry, len(rows))
	for i, m := range rows {
		entries[i] = ToDomainEntry(m)
	}
	return entries
}
