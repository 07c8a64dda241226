package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/moodreel/moodreel_app/internal/apperrors"
	"github.com/moodreel/moodreel_app/internal/core/domain"
	portsrepo "github.com/moodreel/moodreel_app/internal/core/ports/repositories"
	portssvc "github.com/moodreel/moodreel_app/internal/core/ports/services"
	"github.com/moodreel/moodreel_app/internal/dto"
)

// MediaService implements the upload side-channel over a blob store. The
// content type is sniffed from the payload itself, never trusted from the
// client.
type MediaService struct {
	blobRepo portsrepo.BlobRepositoryFacade
	maxBytes int64
}

func NewMediaService(blobRepo portsrepo.BlobRepositoryFacade, maxBytes int64) *MediaService {
	return &MediaService{blobRepo: blobRepo, maxBytes: maxBytes}
}

// Ensure MediaService implements portssvc.MediaSvcFacade
var _ portssvc.MediaSvcFacade = (*MediaService)(nil)

func (s *MediaService) UploadFile(ctx context.Context, filename string, r io.Reader, size int64) (*dto.UploadFileResponse, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: file is required", apperrors.ErrValidation)
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return nil, fmt.Errorf("%w: file %q exceeds the %d byte upload limit", apperrors.ErrValidation, filename, s.maxBytes)
	}

	limit := io.Reader(r)
	if s.maxBytes > 0 {
		// Guard against lying Content-Length headers too.
		limit = io.LimitReader(r, s.maxBytes+1)
	}
	payload, err := io.ReadAll(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %q: %w", filename, err)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: file %q is empty", apperrors.ErrValidation, filename)
	}
	if s.maxBytes > 0 && int64(len(payload)) > s.maxBytes {
		return nil, fmt.Errorf("%w: file %q exceeds the %d byte upload limit", apperrors.ErrValidation, filename, s.maxBytes)
	}

	blob := domain.Blob{
		BlobID:      uuid.NewString(),
		Payload:     payload,
		ContentType: mimetype.Detect(payload).String(),
		Size:        int64(len(payload)),
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.blobRepo.SaveBlob(ctx, blob); err != nil {
		return nil, fmt.Errorf("failed to store upload %q: %w", filename, err)
	}

	url, err := s.blobRepo.ResolveURL(ctx, blob.BlobID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve URL for fresh blob %s: %w", blob.BlobID, err)
	}

	return &dto.UploadFileResponse{
		FileURL:     url,
		FileRef:     dto.ToMediaRefDTO(domain.BlobRef(blob.BlobID)),
		ContentType: blob.ContentType,
		Size:        blob.Size,
	}, nil
}

func (s *MediaService) OpenBlob(ctx context.Context, blobID string) (*domain.Blob, error) {
	blob, err := s.blobRepo.FindBlobByID(ctx, blobID)
	if err != nil {
		return nil, fmt.Errorf("failed to open blob %s: %w", blobID, err)
	}
	return blob, nil
}
