package services

import "context"

// AnalysisSvcFacade is the external AI integration the UI depends on. The
// bundled implementation is a stub: simulated latency and canned text per
// media type.
type AnalysisSvcFacade interface {
	AnalyzeFile(ctx context.Context, fileURL string, mediaType string) (string, error)
}
