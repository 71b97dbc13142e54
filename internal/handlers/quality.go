package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/guidequality-backend/internal/logger"
	pkgerrors "github.com/yungbote/guidequality-backend/internal/pkg/errors"
	"github.com/yungbote/guidequality-backend/internal/services"
)

type QualityHandler struct {
	log                 *logger.Logger
	verificationService services.VerificationService
}

func NewQualityHandler(log *logger.Logger, verificationService services.VerificationService) *QualityHandler {
	return &QualityHandler{
		log:                 log.With("handler", "QualityHandler"),
		verificationService: verificationService,
	}
}

type verifyGuideRequest struct {
	GuideContent     any      `json:"guideContent"`
	LocationName     string   `json:"locationName"`
	Language         string   `json:"language"`
	ExpectedElements []string `json:"expectedElements"`
}

// VerifyGuide scores one guide document. Missing required fields are a
// client error; everything past normalization always produces a report,
// however degraded.
func (h *QualityHandler) VerifyGuide(c *gin.Context) {
	var req verifyGuideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid JSON body"})
		return
	}
	if req.GuideContent == nil || strings.TrimSpace(req.LocationName) == "" || strings.TrimSpace(req.Language) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "guideContent, locationName and language are required"})
		return
	}

	report, err := h.verificationService.VerifyGuide(c.Request.Context(), services.VerifyGuideInput{
		GuideContent:     req.GuideContent,
		LocationName:     req.LocationName,
		Language:         req.Language,
		ExpectedElements: req.ExpectedElements,
	})
	if err != nil {
		h.log.Error("VerifyGuide failed", "location", req.LocationName, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"verification": report,
		"qualityLevel": report.QualityTier,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
}

type analyzeScriptRequest struct {
	Script   string `json:"script"`
	Language string `json:"language"`
}

// AnalyzeScript scores a conversational narration script against the
// style profile.
func (h *QualityHandler) AnalyzeScript(c *gin.Context) {
	var req analyzeScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Script) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "script is required"})
		return
	}

	report, err := h.verificationService.AnalyzeScript(c.Request.Context(), req.Script, req.Language)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		h.log.Error("AnalyzeScript failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"analysis":  report,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
