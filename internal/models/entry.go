package models

import "time"

// Entry is the persistence shape of a journal entry as stored by the SQL
// adapter. Optional columns are pointers so NULLs survive the round trip.
type Entry struct {
	EntryID    string    `json:"entryID"` // Primary Key (UUID)
	Date       string    `json:"date"`    // ISO calendar date (YYYY-MM-DD)
	Mood       *string   `json:"mood"`
	Notes      *string   `json:"notes"`
	Location   *string   `json:"location"`
	MediaType  *string   `json:"mediaType"`  // "video" | "audio", NULL when no media
	MediaKind  *string   `json:"mediaKind"`  // "url" | "blob", NULL when no media
	MediaValue *string   `json:"mediaValue"` // URL or blob id
	Analysis   *string   `json:"analysis"`
	CreatedAt  time.Time `json:"createdAt"`
}
