package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/moodreel/moodreel_app/internal/apperrors"
	portssvc "github.com/moodreel/moodreel_app/internal/core/ports/services"
	"github.com/moodreel/moodreel_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// mediaHandler handles uploads and playback of stored media.
type mediaHandler struct {
	mediaService portssvc.MediaSvcFacade
}

func newMediaHandler(ms portssvc.MediaSvcFacade) *mediaHandler {
	return &mediaHandler{mediaService: ms}
}

// registerMediaRoutes registers the upload side-channel and the playback
// route that serves filesystem-stored blobs.
func registerMediaRoutes(rg *gin.RouterGroup, mediaService portssvc.MediaSvcFacade, uploadLimiter *limiter.Limiter) {
	h := newMediaHandler(mediaService)

	uploadGroup(rg, uploadLimiter).POST("/upload", h.uploadFile)
	rg.GET("/media/:blobID", h.serveBlob)
}

func (h *mediaHandler) uploadFile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	header, err := c.FormFile("file")
	if err != nil {
		logger.Warn("Upload request without file field", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	f, err := header.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	defer f.Close()

	result, err := h.mediaService.UploadFile(c.Request.Context(), header.Filename, f, header.Size)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Upload rejected", slog.String("filename", header.Filename), slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to store upload", slog.String("filename", header.Filename), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
		}
		return
	}

	logger.Info("Upload stored",
		slog.String("blob_id", result.FileRef.Value),
		slog.String("content_type", result.ContentType),
		slog.Int64("size", result.Size))
	c.JSON(http.StatusOK, result)
}

func (h *mediaHandler) serveBlob(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	blobID := c.Param("blobID")

	blob, err := h.mediaService.OpenBlob(c.Request.Context(), blobID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Media not found"})
		} else {
			logger.Error("Failed to open blob", slog.String("blob_id", blobID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read media"})
		}
		return
	}

	c.Data(http.StatusOK, blob.ContentType, blob.Payload)
}
