package domain

import "time"

// Mood is the closed set of moods an entry can be tagged with.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodNeutral Mood = "neutral"
	MoodSad     Mood = "sad"
	MoodAngry   Mood = "angry"
	MoodExcited Mood = "excited"
)

// IsValid reports whether m is one of the known moods. The empty mood is
// valid too: mood is an optional field.
func (m Mood) IsValid() bool {
	switch m {
	case "", MoodHappy, MoodNeutral, MoodSad, MoodAngry, MoodExcited:
		return true
	}
	return false
}

// Entry represents a single journal entry: one day, one mood, optional notes
// and at most one attached media clip.
type Entry struct {
	EntryID   string    `json:"entryID"`  // Primary key (UUID)
	Date      string    `json:"date"`     // ISO calendar date (YYYY-MM-DD), primary sort key
	Mood      Mood      `json:"mood"`     // Optional, empty when unset
	Notes     string    `json:"notes"`    // Optional free text
	Location  string    `json:"location"` // Optional free text
	Media     *Media    `json:"media"`    // Nil when the entry has no media
	Analysis  string    `json:"analysis"` // Optional, attached asynchronously by the AI stub
	CreatedAt time.Time `json:"createdAt"`
}

// DateLayout is the calendar-date layout used by Entry.Date.
const DateLayout = "2006-01-02"
