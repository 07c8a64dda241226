package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/moodreel/moodreel_app/internal/apperrors"
	"github.com/moodreel/moodreel_app/internal/core/domain"
	portsrepo "github.com/moodreel/moodreel_app/internal/core/ports/repositories"
	portssvc "github.com/moodreel/moodreel_app/internal/core/ports/services"
	"github.com/moodreel/moodreel_app/internal/dto"
	"github.com/moodreel/moodreel_app/internal/middleware" // Import middleware for GetLoggerFromCtx
	"github.com/google/uuid"
)

// EntryService implements the entry facade on top of a swappable entry
// repository and blob store. All read paths hydrate media references before
// returning.
type EntryService struct {
	entryRepo portsrepo.EntryRepositoryFacade
	blobRepo  portsrepo.BlobRepositoryFacade
}

func NewEntryService(entryRepo portsrepo.EntryRepositoryFacade, blobRepo portsrepo.BlobRepositoryFacade) *EntryService {
	return &EntryService{entryRepo: entryRepo, blobRepo: blobRepo}
}

// Ensure EntryService implements portssvc.EntrySvcFacade
var _ portssvc.EntrySvcFacade = (*EntryService)(nil)

func (s *EntryService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest) (*domain.Entry, error) {
	if req.Date == "" {
		return nil, fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	if _, err := time.Parse(domain.DateLayout, req.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be formatted as YYYY-MM-DD", apperrors.ErrValidation)
	}
	mood := domain.Mood(req.Mood)
	if !mood.IsValid() {
		return nil, fmt.Errorf("%w: unknown mood %q", apperrors.ErrValidation, req.Mood)
	}

	media, err := mediaFromRequest(req.Media, req.VideoURL, req.AudioURL)
	if err != nil {
		return nil, err
	}

	entry := domain.Entry{
		EntryID:   uuid.NewString(),
		Date:      req.Date,
		Mood:      mood,
		Notes:     req.Notes,
		Location:  req.Location,
		Media:     media,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create entry in service: %w", err)
	}

	return &entry, nil
}

func (s *EntryService) ListEntries(ctx context.Context, order string) ([]dto.EntryResponse, error) {
	entries, err := s.entryRepo.ListEntries(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries in service: %w", err)
	}
	return s.hydrateAll(ctx, entries), nil
}

func (s *EntryService) FilterEntries(ctx context.Context, filters map[string]string) ([]dto.EntryResponse, error) {
	entries, err := s.entryRepo.FilterEntries(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to filter entries in service: %w", err)
	}
	return s.hydrateAll(ctx, entries), nil
}

func (s *EntryService) GetEntryByID(ctx context.Context, entryID string) (*dto.EntryResponse, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entry by id in service: %w", err)
	}
	resp := s.hydrate(ctx, *entry)
	return &resp, nil
}

func (s *EntryService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest) (*dto.EntryResponse, error) {
	existing, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry for update: %w", err)
	}

	merged := *existing
	if req.Date != nil {
		if _, err := time.Parse(domain.DateLayout, *req.Date); err != nil {
			return nil, fmt.Errorf("%w: date must be formatted as YYYY-MM-DD", apperrors.ErrValidation)
		}
		merged.Date = *req.Date
	}
	if req.Mood != nil {
		mood := domain.Mood(*req.Mood)
		if !mood.IsValid() {
			return nil, fmt.Errorf("%w: unknown mood %q", apperrors.ErrValidation, *req.Mood)
		}
		merged.Mood = mood
	}
	if req.Notes != nil {
		merged.Notes = *req.Notes
	}
	if req.Location != nil {
		merged.Location = *req.Location
	}
	if req.Analysis != nil {
		merged.Analysis = *req.Analysis
	}
	if req.Media != nil || req.VideoURL != nil || req.AudioURL != nil {
		var videoURL, audioURL string
		if req.VideoURL != nil {
			videoURL = *req.VideoURL
		}
		if req.AudioURL != nil {
			audioURL = *req.AudioURL
		}
		media, err := mediaFromRequest(req.Media, videoURL, audioURL)
		if err != nil {
			return nil, err
		}
		merged.Media = media
	}

	if err := s.entryRepo.UpdateEntry(ctx, merged); err != nil {
		return nil, fmt.Errorf("failed to update entry in service: %w", err)
	}

	resp := s.hydrate(ctx, merged)
	return &resp, nil
}

func (s *EntryService) DeleteEntry(ctx context.Context, entryID string) error {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to load entry for delete: %w", err)
	}

	if err := s.entryRepo.DeleteEntry(ctx, entryID); err != nil {
		return fmt.Errorf("failed to delete entry in service: %w", err)
	}

	// Cascade: reclaim the blob the entry owned. The record is already gone,
	// so a failure here only leaks storage; log and move on.
	if entry.Media != nil && entry.Media.Ref.Kind == domain.MediaRefBlob {
		if err := s.blobRepo.DeleteBlob(ctx, entry.Media.Ref.Value); err != nil {
			middleware.GetLoggerFromCtx(ctx).Warn("Failed to delete blob owned by entry",
				slog.String("entry_id", entryID),
				slog.String("blob_id", entry.Media.Ref.Value),
				slog.String("error", err.Error()))
		}
	}

	return nil
}

// hydrate resolves the entry's stored media reference into a playable URL.
// Pass-through URLs come back unchanged; blob references are resolved against
// the blob store; dangling references degrade to "no media" for this entry
// only.
func (s *EntryService) hydrate(ctx context.Context, entry domain.Entry) dto.EntryResponse {
	if entry.Media == nil {
		return dto.ToEntryResponse(&entry, "")
	}

	switch entry.Media.Ref.Kind {
	case domain.MediaRefURL:
		return dto.ToEntryResponse(&entry, entry.Media.Ref.Value)
	case domain.MediaRefBlob:
		url, err := s.blobRepo.ResolveURL(ctx, entry.Media.Ref.Value)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				middleware.GetLoggerFromCtx(ctx).Warn("Failed to resolve blob URL",
					slog.String("entry_id", entry.EntryID),
					slog.String("blob_id", entry.Media.Ref.Value),
					slog.String("error", err.Error()))
			}
			return dto.ToEntryResponse(&entry, "")
		}
		return dto.ToEntryResponse(&entry, url)
	default:
		return dto.ToEntryResponse(&entry, "")
	}
}

func (s *EntryService) hydrateAll(ctx context.Context, entries []domain.Entry) []dto.EntryResponse {
	responses := make([]dto.EntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = s.hydrate(ctx, e)
	}
	return responses
}

// mediaFromRequest builds the tagged media attachment from a request. The
// tagged form wins; the legacy video_url/audio_url strings are classified
// into url or blob references. At most one reference may be given.
func mediaFromRequest(tagged *dto.MediaDTO, videoURL, audioURL string) (*domain.Media, error) {
	given := 0
	if tagged != nil {
		given++
	}
	if videoURL != "" {
		given++
	}
	if audioURL != "" {
		given++
	}
	if given > 1 {
		return nil, fmt.Errorf("%w: at most one media reference may be given", apperrors.ErrValidation)
	}

	switch {
	case tagged != nil:
		mediaType := domain.MediaType(tagged.Type)
		if !mediaType.IsValid() {
			return nil, fmt.Errorf("%w: unknown media type %q", apperrors.ErrValidation, tagged.Type)
		}
		kind := domain.MediaRefKind(tagged.Ref.Kind)
		if kind != domain.MediaRefURL && kind != domain.MediaRefBlob {
			return nil, fmt.Errorf("%w: unknown media ref kind %q", apperrors.ErrValidation, tagged.Ref.Kind)
		}
		if tagged.Ref.Value == "" {
			return nil, fmt.Errorf("%w: media ref value is required", apperrors.ErrValidation)
		}
		return &domain.Media{Type: mediaType, Ref: domain.MediaRef{Kind: kind, Value: tagged.Ref.Value}}, nil
	case videoURL != "":
		return &domain.Media{Type: domain.MediaTypeVideo, Ref: domain.ClassifyRef(videoURL)}, nil
	case audioURL != "":
		return &domain.Media{Type: domain.MediaTypeAudio, Ref: domain.ClassifyRef(audioURL)}, nil
	}
	return nil, nil
}
