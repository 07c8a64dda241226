package services

import (
	"time"

	portsrepo "github.com/moodreel/moodreel_app/internal/core/ports/repositories"
	portssvc "github.com/moodreel/moodreel_app/internal/core/ports/services"
)

// NewContainer creates the service container with properly initialized
// dependencies. The repositories decide which storage strategies are active;
// the services are backend-agnostic.
func NewContainer(repos *portsrepo.RepositoryProvider, analysisDelay time.Duration, maxUploadBytes int64) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Entry:    NewEntryService(repos.EntryRepo, repos.BlobRepo),
		Media:    NewMediaService(repos.BlobRepo, maxUploadBytes),
		Analysis: NewAnalysisService(analysisDelay),
	}
}
