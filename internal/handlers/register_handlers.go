package handlers

import (
	portssvc "github.com/moodreel/moodreel_app/internal/core/ports/services"
	"github.com/moodreel/moodreel_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	uploadLimiter *limiter.Limiter,
) {
	// Health check for the mobile shell and deploy probes
	r.GET("/health", getHealth)

	v1 := r.Group("/api/v1")

	registerEntryRoutes(v1, services.Entry)
	registerMediaRoutes(v1, services.Media, uploadLimiter)
	registerAnalysisRoutes(v1, services.Analysis)
}

func getHealth(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok", "message": "Journal API is running"})
}

// uploadGroup wraps the upload route with rate limiting when a limiter is
// configured.
func uploadGroup(rg *gin.RouterGroup, uploadLimiter *limiter.Limiter) *gin.RouterGroup {
	if uploadLimiter == nil {
		return rg
	}
	return rg.Group("", middleware.RateLimit(uploadLimiter))
}
