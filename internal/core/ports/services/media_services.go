package services

import (
	"context"
	"io"

	"github.com/moodreel/moodreel_app/internal/core/domain"
	"github.com/moodreel/moodreel_app/internal/dto"
)

// MediaSvcFacade is the upload side-channel: it stores raw payloads and hands
// back tagged references that entries can carry.
type MediaSvcFacade interface {
	// UploadFile stores the payload under a fresh blob id and returns the
	// tagged reference plus a resolved playable URL.
	UploadFile(ctx context.Context, filename string, r io.Reader, size int64) (*dto.UploadFileResponse, error)

	// OpenBlob loads a stored blob with its payload for playback.
	OpenBlob(ctx context.Context, blobID string) (*domain.Blob, error)
}
