package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/guidequality-backend/internal/handlers"
)

type RouterConfig struct {
	ServiceName    string
	QualityHandler *handlers.QualityHandler
	ReportHandler  *handlers.ReportHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "guidequality-backend"
	}
	router.Use(otelgin.Middleware(serviceName))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins:              []string{"*"},
		AllowMethods:              []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:              []string{"Content-Type", "Authorization"},
		OptionsResponseStatusCode: http.StatusOK,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/quality/verify-guide", cfg.QualityHandler.VerifyGuide)
		api.POST("/quality/analyze-script", cfg.QualityHandler.AnalyzeScript)
		api.GET("/quality/reports/:location", cfg.ReportHandler.GetLocationReport)
	}

	return router
}
