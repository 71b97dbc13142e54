package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/guidequality-backend/internal/clients/gemini"
	"github.com/yungbote/guidequality-backend/internal/db"
	"github.com/yungbote/guidequality-backend/internal/handlers"
	"github.com/yungbote/guidequality-backend/internal/logger"
	"github.com/yungbote/guidequality-backend/internal/observability"
	"github.com/yungbote/guidequality-backend/internal/quality"
	"github.com/yungbote/guidequality-backend/internal/repos"
	"github.com/yungbote/guidequality-backend/internal/server"
	"github.com/yungbote/guidequality-backend/internal/services"
	"github.com/yungbote/guidequality-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing
	shutdownOtel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "guidequality-backend",
		Environment: utils.GetEnv("DEPLOY_ENV", "development", log),
		Version:     utils.GetEnv("SERVICE_VERSION", "dev", log),
	})
	if shutdownOtel != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownOtel(ctx)
		}()
	}

	// Engine config
	log.Info("Loading engine configuration...")
	cfg := quality.DefaultConfig()
	if path := strings.TrimSpace(os.Getenv("QUALITY_CONFIG_PATH")); path != "" {
		loaded, err := quality.LoadConfigFile(path)
		if err != nil {
			log.Warn("Could not load quality config, using defaults", "path", path, "error", err)
		} else {
			cfg = loaded
		}
	}
	if sec := utils.GetEnvAsInt("SEMANTIC_TIMEOUT_SECONDS", 0, log); sec > 0 {
		cfg.SemanticTimeout = time.Duration(sec) * time.Second
	}

	catalog := quality.DefaultCatalog(cfg.DefaultLocale)
	if dir := strings.TrimSpace(os.Getenv("PATTERN_DIR")); dir != "" {
		loadPatternDir(dir, catalog, log)
	}

	// Postgres
	var theDB *gorm.DB
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Warn("Postgres init failed, running without history", "error", err)
	} else {
		if err := postgresService.AutoMigrateAll(); err != nil {
			log.Warn("Postgres auto migration failed", "error", err)
		}
		theDB = postgresService.DB()
	}

	// Repos
	log.Info("Setting up Repos from main...")
	var recordRepo repos.QualityRecordRepo
	if theDB != nil {
		recordRepo = repos.NewQualityRecordRepo(theDB, log)
	}

	// Clients
	log.Info("Setting up Clients from main...")
	var verifier quality.SemanticVerifier
	geminiClient, err := gemini.NewClient(log)
	if err != nil {
		log.Warn("Could not init GeminiClient, semantic checks use the fallback profile", "error", err)
	} else {
		verifier = services.NewGeminiVerifier(geminiClient, cfg, log)
	}

	var cache services.ReportCache
	if utils.GetEnvAsBool("CACHE_ENABLED", true, log) {
		reportCache, err := services.NewReportCache(log)
		if err != nil {
			log.Warn("Could not init ReportCache, running without caching", "error", err)
		} else {
			cache = reportCache
			defer cache.Close()
		}
	}

	// Engine
	engine, err := quality.NewEngine(cfg, catalog, verifier, log)
	if err != nil {
		log.Error("Could not init quality engine", "error", err)
		os.Exit(1)
	}

	// Services
	log.Info("Setting up Services from main...")
	method := "semantic+structural"
	if verifier == nil {
		method = "structural-only"
	}
	verificationService := services.NewVerificationService(theDB, log, engine, recordRepo, cache, method)

	// Handlers
	log.Info("Setting up handlers from main...")
	qualityHandler := handlers.NewQualityHandler(log, verificationService)
	reportHandler := handlers.NewReportHandler(log, verificationService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		ServiceName:    "guidequality-backend",
		QualityHandler: qualityHandler,
		ReportHandler:  reportHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}

func loadPatternDir(dir string, catalog *quality.Catalog, log *logger.Logger) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warn("Could not read pattern directory", "dir", dir, "error", err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		ps, err := quality.LoadPatternFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn("Skipping invalid pattern file", "file", name, "error", err)
			continue
		}
		catalog.Add(ps)
		log.Info("Loaded pattern catalog", "locale", ps.Locale, "file", name)
	}
}
