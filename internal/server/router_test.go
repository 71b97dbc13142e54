package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/guidequality-backend/internal/handlers"
	"github.com/yungbote/guidequality-backend/internal/logger"
	"github.com/yungbote/guidequality-backend/internal/services"
	"github.com/yungbote/guidequality-backend/internal/types"
)

type noopVerificationService struct{}

func (noopVerificationService) VerifyGuide(ctx context.Context, input services.VerifyGuideInput) (types.QualityReport, error) {
	return types.QualityReport{}, nil
}

func (noopVerificationService) AnalyzeScript(ctx context.Context, script, language string) (types.ScriptReport, error) {
	return types.ScriptReport{}, nil
}

func (noopVerificationService) LocationReport(ctx context.Context, locationName, language string) (*services.LocationReport, error) {
	return &services.LocationReport{}, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("local")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	svc := noopVerificationService{}
	return NewRouter(RouterConfig{
		ServiceName:    "guidequality-test",
		QualityHandler: handlers.NewQualityHandler(log, svc),
		ReportHandler:  handlers.NewReportHandler(log, svc),
	})
}

func TestPreflightRespondsOK(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/quality/verify-guide", nil)
	// httptest.NewRequest defaults the request Host to "example.com"; an
	// Origin of https://example.com would look same-origin to the CORS
	// middleware and skip preflight handling entirely.
	req.Header.Set("Origin", "https://client.example.net")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("preflight status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "*")
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodPost) || !strings.Contains(got, http.MethodOptions) {
		t.Errorf("Access-Control-Allow-Methods = %q, want POST and OPTIONS", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, "Content-Type") || !strings.Contains(got, "Authorization") {
		t.Errorf("Access-Control-Allow-Headers = %q, want Content-Type and Authorization", got)
	}
}

func TestHealthcheckRoute(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("healthcheck status = %d, want %d", rec.Code, http.StatusOK)
	}
}
