package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/moodreel/moodreel_app/internal/apperrors"
	portssvc "github.com/moodreel/moodreel_app/internal/core/ports/services"
	"github.com/moodreel/moodreel_app/internal/dto"
	"github.com/moodreel/moodreel_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// analysisHandler fronts the AI integration stub.
type analysisHandler struct {
	analysisService portssvc.AnalysisSvcFacade
}

func newAnalysisHandler(as portssvc.AnalysisSvcFacade) *analysisHandler {
	return &analysisHandler{analysisService: as}
}

func registerAnalysisRoutes(rg *gin.RouterGroup, analysisService portssvc.AnalysisSvcFacade) {
	h := newAnalysisHandler(analysisService)
	rg.POST("/analyze", h.analyzeFile)
}

func (h *analysisHandler) analyzeFile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AnalyzeFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AnalyzeFile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	analysis, err := h.analysisService.AnalyzeFile(c.Request.Context(), req.FileURL, req.Type)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			// Background integration failures leave entry state unchanged;
			// the caller just doesn't get an analysis this time.
			logger.Error("Analysis failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze file"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.AnalyzeFileResponse{Analysis: analysis})
}
