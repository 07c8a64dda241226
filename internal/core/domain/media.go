package domain

import (
	"strings"
	"time"
)

// MediaType distinguishes the two kinds of clips an entry can carry.
type MediaType string

const (
	MediaTypeVideo MediaType = "video"
	MediaTypeAudio MediaType = "audio"
)

func (t MediaType) IsValid() bool {
	return t == MediaTypeVideo || t == MediaTypeAudio
}

// MediaRefKind tags how a media reference should be interpreted.
type MediaRefKind string

const (
	// MediaRefURL marks a value that is directly playable (absolute URL or
	// data URL). Hydration passes these through unchanged.
	MediaRefURL MediaRefKind = "url"
	// MediaRefBlob marks a value that is a blob store id and must be
	// resolved to a playable URL at read time.
	MediaRefBlob MediaRefKind = "blob"
)

// MediaRef is an explicit tagged reference to playable content. Storing the
// kind alongside the value removes any need for callers to sniff string
// shapes.
type MediaRef struct {
	Kind  MediaRefKind `json:"kind"`
	Value string       `json:"value"`
}

// URLRef builds a pass-through reference to an already playable URL.
func URLRef(url string) MediaRef {
	return MediaRef{Kind: MediaRefURL, Value: url}
}

// BlobRef builds a reference to a stored blob id.
func BlobRef(blobID string) MediaRef {
	return MediaRef{Kind: MediaRefBlob, Value: blobID}
}

// ClassifyRef turns a raw media reference string into a tagged MediaRef.
// Absolute URLs, data URLs and rooted upload paths are pass-through; anything
// else is treated as a blob id. This is the compatibility path for entries
// created before tagged references existed.
func ClassifyRef(raw string) MediaRef {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") ||
		strings.HasPrefix(raw, "data:") || strings.HasPrefix(raw, "/") {
		return URLRef(raw)
	}
	return BlobRef(raw)
}

// Media is the optional clip attached to an entry: its type and a tagged
// reference to the content.
type Media struct {
	Type MediaType `json:"type"`
	Ref  MediaRef  `json:"ref"`
}

// Blob is a raw media payload stored independently of the entry that
// references it.
type Blob struct {
	BlobID      string    `json:"blobID"` // Primary key (UUID), independent of any entry
	Payload     []byte    `json:"-"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"createdAt"`
}
