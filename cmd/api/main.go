package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/johnquangdev/coursepulse/pkg/validator"

	"github.com/johnquangdev/coursepulse/internal/adapter/handler"
	"github.com/johnquangdev/coursepulse/internal/adapter/repository"
	"github.com/johnquangdev/coursepulse/internal/infrastructure/cache"
	"github.com/johnquangdev/coursepulse/internal/infrastructure/database"
	"github.com/johnquangdev/coursepulse/internal/infrastructure/storage"
	"github.com/johnquangdev/coursepulse/internal/usecase/feedback"
	pkgai "github.com/johnquangdev/coursepulse/pkg/ai"
	"github.com/johnquangdev/coursepulse/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run AutoMigrate only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Running GORM AutoMigrate (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run AutoMigrate: %v", err)
		}
	} else {
		log.Println("🔄 Skipping GORM AutoMigrate; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize translation cache backend
	var translationCache feedback.TranslationCache
	switch cfg.Analyze.CacheBackend {
	case "redis":
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		translationCache = cache.NewRedisStore(redisClient)
	case "memory":
		translationCache = cache.NewMemoryStore()
	case "none":
		log.Println("⚠️  Translation cache disabled")
	}

	// Initialize upload archiving
	var archiver feedback.Archiver
	if cfg.Storage.Enabled {
		log.Println("📦 Connecting to object storage...")
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			log.Printf("⚠️  Object storage unavailable, uploads will not be archived: %v", err)
		} else {
			archiver = minioClient
		}
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Initialize analysis pipeline
	log.Println("🤖 Initializing analysis pipeline...")
	var scorer feedback.Scorer
	switch cfg.Sentiment.Provider {
	case "http":
		scorer = pkgai.NewHTTPScorer(&cfg.Sentiment)
		log.Printf("✅ Sentiment scorer: remote (%s)", cfg.Sentiment.BaseURL)
	default:
		scorer = pkgai.NewVaderScorer()
		log.Println("✅ Sentiment scorer: embedded VADER")
	}

	translateClient := pkgai.NewLibreTranslateClient(&cfg.Translate)
	translator := feedback.NewCachedTranslator(translateClient, translationCache, cfg.Translate.CacheTTL, logger)

	aggregator := feedback.NewAggregator(translator, scorer, logger, cfg.Analyze.Workers)
	feedbackService := feedback.NewService(
		aggregator,
		snapshotRepo,
		archiver,
		logger,
		cfg.Translate.Source,
		cfg.Translate.Target,
	)

	// Initialize analyze handler
	log.Println("🚀 Initializing analyze handler...")
	analyzeController := handler.NewAnalyzeController(feedbackService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, analyzeController)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
