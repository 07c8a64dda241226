package dto

import (
	"time"

	"github.com/moodreel/moodreel_app/internal/core/domain"
)

// MediaRefDTO mirrors domain.MediaRef on the wire.
type MediaRefDTO struct {
	Kind  string `json:"kind" binding:"required,oneof=url blob"`
	Value string `json:"value" binding:"required"`
}

// MediaDTO is the tagged media attachment on create/update requests.
type MediaDTO struct {
	Type string      `json:"type" binding:"required,oneof=video audio"`
	Ref  MediaRefDTO `json:"ref" binding:"required"`
}

// CreateEntryRequest defines the data needed to create a journal entry.
// Media may be given either as a tagged `media` object or through the legacy
// `video_url`/`audio_url` string fields; at most one of the three.
type CreateEntryRequest struct {
	Date     string    `json:"date" binding:"required"`
	Mood     string    `json:"mood" binding:"omitempty,oneof=happy neutral sad angry excited"`
	Notes    string    `json:"notes"`
	Location string    `json:"location"`
	VideoURL string    `json:"video_url"`
	AudioURL string    `json:"audio_url"`
	Media    *MediaDTO `json:"media"`
}

// UpdateEntryRequest defines a partial update. Nil fields are left untouched
// on the stored entry.
type UpdateEntryRequest struct {
	Date     *string   `json:"date"`
	Mood     *string   `json:"mood" binding:"omitempty,oneof=happy neutral sad angry excited"`
	Notes    *string   `json:"notes"`
	Location *string   `json:"location"`
	Analysis *string   `json:"ai_analysis"`
	VideoURL *string   `json:"video_url"`
	AudioURL *string   `json:"audio_url"`
	Media    *MediaDTO `json:"media"`
}

// EntryResponse is the hydrated record returned on every read path. VideoURL
// and AudioURL carry directly playable URLs (or are absent when the entry has
// no media, including when its blob reference dangles); Media exposes the
// stored tagged reference.
type EntryResponse struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Mood      string    `json:"mood,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Location  string    `json:"location,omitempty"`
	VideoURL  *string   `json:"video_url"`
	AudioURL  *string   `json:"audio_url"`
	Media     *MediaDTO `json:"media,omitempty"`
	Analysis  string    `json:"ai_analysis,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToMediaRefDTO converts a domain.MediaRef to its wire form.
func ToMediaRefDTO(ref domain.MediaRef) MediaRefDTO {
	return MediaRefDTO{Kind: string(ref.Kind), Value: ref.Value}
}

// ToEntryResponse converts a domain.Entry to an EntryResponse. playableURL is
// the hydrated URL for the entry's media, or empty when there is none (no
// media, or a dangling blob reference).
func ToEntryResponse(e *domain.Entry, playableURL string) EntryResponse {
	resp := EntryResponse{
		ID:        e.EntryID,
		Date:      e.Date,
		Mood:      string(e.Mood),
		Notes:     e.Notes,
		Location:  e.Location,
		Analysis:  e.Analysis,
		CreatedAt: e.CreatedAt,
	}
	if e.Media != nil {
		ref := ToMediaRefDTO(e.Media.Ref)
		resp.Media = &MediaDTO{Type: string(e.Media.Type), Ref: ref}
	}
	if e.Media != nil && playableURL != "" {
		switch e.Media.Type {
		case domain.MediaTypeAudio:
			resp.AudioURL = &playableURL
		default:
			resp.VideoURL = &playableURL
		}
	}
	return resp
}
