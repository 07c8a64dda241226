package repositories

import (
	"context"

	"github.com/moodreel/moodreel_app/internal/core/domain"
)

// BlobReader defines read operations for stored media payloads.
type BlobReader interface {
	// FindBlobByID retrieves a blob with its payload, or apperrors.ErrNotFound.
	FindBlobByID(ctx context.Context, blobID string) (*domain.Blob, error)

	// ResolveURL mints a playable URL for a stored blob without loading the
	// payload. Returns apperrors.ErrNotFound for unknown ids. URLs are
	// transient: a fresh one may be minted on every call and callers may
	// forget them freely.
	ResolveURL(ctx context.Context, blobID string) (string, error)
}

// BlobWriter defines write operations for stored media payloads.
type BlobWriter interface {
	// SaveBlob persists a blob payload under blob.BlobID.
	SaveBlob(ctx context.Context, blob domain.Blob) error

	// DeleteBlob removes a blob. Deleting an absent id is a no-op.
	DeleteBlob(ctx context.Context, blobID string) error
}

// BlobRepositoryFacade combines the blob store interfaces. Implementations
// are the filesystem store and the MinIO store.
type BlobRepositoryFacade interface {
	BlobReader
	BlobWriter
}
