package services

import (
	"context"
	"fmt"
	"time"

	"github.com/moodreel/moodreel_app/internal/apperrors"
	"github.com/moodreel/moodreel_app/internal/core/domain"
	portssvc "github.com/moodreel/moodreel_app/internal/core/ports/services"
)

const (
	audioAnalysisText = "AI analysis for this audio will be shown here. Connect this to your real AI service."
	mediaAnalysisText = "AI analysis for this media will be shown here. Connect this to your real AI service."
)

// AnalysisService is the bundled stand-in for a real AI integration: it waits
// a configurable delay and returns canned text keyed by media type.
type AnalysisService struct {
	delay time.Duration
}

func NewAnalysisService(delay time.Duration) *AnalysisService {
	return &AnalysisService{delay: delay}
}

// Ensure AnalysisService implements portssvc.AnalysisSvcFacade
var _ portssvc.AnalysisSvcFacade = (*AnalysisService)(nil)

func (s *AnalysisService) AnalyzeFile(ctx context.Context, fileURL string, mediaType string) (string, error) {
	if fileURL == "" {
		return "", fmt.Errorf("%w: file_url is required for analysis", apperrors.ErrValidation)
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if domain.MediaType(mediaType) == domain.MediaTypeAudio {
		return audioAnalysisText, nil
	}
	return mediaAnalysisText, nil
}
