package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/guidequality-backend/internal/logger"
	pkgerrors "github.com/yungbote/guidequality-backend/internal/pkg/errors"
	"github.com/yungbote/guidequality-backend/internal/services"
)

type ReportHandler struct {
	log                 *logger.Logger
	verificationService services.VerificationService
}

func NewReportHandler(log *logger.Logger, verificationService services.VerificationService) *ReportHandler {
	return &ReportHandler{
		log:                 log.With("handler", "ReportHandler"),
		verificationService: verificationService,
	}
}

// GetLocationReport returns the latest persisted verification for a
// location plus its trend and risk level.
func (h *ReportHandler) GetLocationReport(c *gin.Context) {
	location := strings.TrimSpace(c.Param("location"))
	if location == "" {
		RespondError(c, http.StatusBadRequest, "missing_location", errors.New("location is required"))
		return
	}
	language := strings.TrimSpace(c.DefaultQuery("language", "ko"))

	report, err := h.verificationService.LocationReport(c.Request.Context(), location, language)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			RespondError(c, http.StatusNotFound, "report_not_found", errors.New("no verification on record for this location"))
			return
		}
		h.log.Error("GetLocationReport failed", "location", location, "error", err)
		RespondError(c, http.StatusInternalServerError, "load_report_failed", err)
		return
	}
	RespondOK(c, gin.H{"report": report})
}
