package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/lwhela12/the-hive-api/internal/adapter/handler"
	"github.com/lwhela12/the-hive-api/internal/adapter/repository"
	"github.com/lwhela12/the-hive-api/internal/infrastructure/cache"
	"github.com/lwhela12/the-hive-api/internal/infrastructure/database"
	"github.com/lwhela12/the-hive-api/internal/infrastructure/external/transcription"
	"github.com/lwhela12/the-hive-api/internal/infrastructure/storage"
	"github.com/lwhela12/the-hive-api/internal/usecase/attribution"
	"github.com/lwhela12/the-hive-api/internal/usecase/pipeline"
	pkgai "github.com/lwhela12/the-hive-api/pkg/ai"
	"github.com/lwhela12/the-hive-api/pkg/config"
	pkgvalidator "github.com/lwhela12/the-hive-api/pkg/validator"
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

	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	log.Println("🔧 Initializing dependencies...")

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

	// Initialize status cache: Redis when configured, in-memory otherwise
	var statusCache cache.StatusCache
	if cfg.Redis.Host != "" {
		log.Println("📦 Connecting to Redis...")
		redisStore, err := cache.NewRedisStore(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisStore.Close()
		statusCache = redisStore
	} else {
		log.Println("📦 Using in-memory status cache (REDIS_HOST not set)")
		statusCache = cache.NewMemoryStore()
	}

	// Initialize object storage
	log.Println("🪣 Connecting to object storage...")
	blobStore, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	meetingRepo := repository.NewMeetingRepository(db)
	actionItemRepo := repository.NewActionItemRepository(db)
	highlightRepo := repository.NewHighlightRepository(db)
	cycleRepo := repository.NewCycleRepository(db)
	memberRepo := repository.NewMemberRepository(db)

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize external providers
	log.Println("🤖 Initializing transcription and summarization clients...")
	webhookURL := strings.TrimRight(cfg.Assembly.WebhookBaseURL, "/") + "/v1/webhooks/transcription"
	transcriber := transcription.NewAssemblyAIProvider(&cfg.Assembly, webhookURL)
	groqClient := pkgai.NewGroqClient(&cfg.Groq)

	// Initialize services
	log.Println("✨ Initializing pipeline service...")
	pipelineService := pipeline.NewService(
		meetingRepo,
		actionItemRepo,
		highlightRepo,
		cycleRepo,
		memberRepo,
		transcriber,
		groqClient,
		blobStore,
		cfg.Storage.SignedURLExpiry,
		logger,
	)
	attributionService := attribution.NewService(meetingRepo, memberRepo, logger)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	meetingHandler := handler.NewMeeting(meetingRepo, pipelineService, attributionService, statusCache, logger)
	actionItemHandler := handler.NewActionItem(actionItemRepo, logger)
	webhookHandler := handler.NewWebhook(pipelineService, cfg.Assembly.WebhookSecret, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, meetingHandler, actionItemHandler, webhookHandler)
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
