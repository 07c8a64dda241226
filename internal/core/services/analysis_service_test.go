package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/moodreel/moodreel_app/internal/apperrors"
	"github.com/moodreel/moodreel_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeFile_AudioText(t *testing.T) {
	svc := services.NewAnalysisService(0)

	analysis, err := svc.AnalyzeFile(context.Background(), "/api/v1/media/blob-1", "audio")

	require.NoError(t, err)
	assert.Contains(t, analysis, "audio")
}

func TestAnalyzeFile_DefaultMediaText(t *testing.T) {
	svc := services.NewAnalysisService(0)

	analysis, err := svc.AnalyzeFile(context.Background(), "https://example.com/clip.mp4", "video")

	require.NoError(t, err)
	assert.Contains(t, analysis, "media")
}

func TestAnalyzeFile_EmptyURL(t *testing.T) {
	svc := services.NewAnalysisService(0)

	_, err := svc.AnalyzeFile(context.Background(), "", "video")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAnalyzeFile_RespectsDelay(t *testing.T) {
	svc := services.NewAnalysisService(30 * time.Millisecond)

	start := time.Now()
	_, err := svc.AnalyzeFile(context.Background(), "https://example.com/clip.mp4", "video")

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestAnalyzeFile_CancelledContext(t *testing.T) {
	svc := services.NewAnalysisService(time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.AnalyzeFile(ctx, "https://example.com/clip.mp4", "video")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
