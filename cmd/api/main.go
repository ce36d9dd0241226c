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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	_ "github.com/peergrouptools/peergroup-api/docs"
	"github.com/peergrouptools/peergroup-api/internal/adapter/handler"
	"github.com/peergrouptools/peergroup-api/internal/adapter/repository"
	"github.com/peergrouptools/peergroup-api/internal/infrastructure/cache"
	"github.com/peergrouptools/peergroup-api/internal/infrastructure/database"
	"github.com/peergrouptools/peergroup-api/internal/infrastructure/external/oauth"
	httpmw "github.com/peergrouptools/peergroup-api/internal/infrastructure/http/middleware"
	"github.com/peergrouptools/peergroup-api/internal/infrastructure/storage"
	"github.com/peergrouptools/peergroup-api/internal/usecase/auth"
	"github.com/peergrouptools/peergroup-api/internal/usecase/chat"
	"github.com/peergrouptools/peergroup-api/internal/usecase/checkin"
	"github.com/peergrouptools/peergroup-api/internal/usecase/meeting"
	"github.com/peergrouptools/peergroup-api/internal/usecase/summary"
	pkgai "github.com/peergrouptools/peergroup-api/pkg/ai"
	"github.com/peergrouptools/peergroup-api/pkg/config"
	"github.com/peergrouptools/peergroup-api/pkg/jwt"
	pkgvalidator "github.com/peergrouptools/peergroup-api/pkg/validator"
)

// @title           PeerGroupTools API
// @version         1.0
// @description     Peer-group meetings, Hume EVI session ingestion and bucketed session summaries.

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the Clerk session token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = pkgvalidator.New()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(logger)
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("http.request",
				zap.String("request_id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("5M"))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  corsOrigins(cfg),
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders: []string{echo.HeaderAuthorization},
	}))

	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; run cmd/migrate to apply them")
	}

	// Webhook dedupe store: Redis when enabled, in-process otherwise
	var store cache.Store
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisStore, err := cache.NewRedisStore(startupCtx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisStore.Close()
		store = redisStore
	} else {
		log.Println("⚠️  Redis disabled; webhook deduplication is per-process")
		store = cache.NewMemoryStore()
	}
	replayGuard := cache.NewReplayGuard(store, cfg.Hume.WebhookDedupeTTL)

	// Archive of model output
	var archiver summary.Archiver
	if cfg.Storage.Enabled {
		log.Println("🗄️  Connecting to MinIO...")
		minioClient, err := storage.NewMinIOClient(startupCtx, &cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize MinIO: %v", err)
		}
		archiver = minioClient
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	userRepo := repository.NewUserRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	chatRepo := repository.NewChatRepository(db, logger)
	checkInRepo := repository.NewCheckInRepository(db)
	uow := repository.NewUnitOfWork(db)

	// Identity
	log.Println("🔑 Initializing Clerk verifier...")
	keys := jwt.NewJWKSSource(cfg.Clerk.JWKSURL, cfg.Clerk.SecretKey, cfg.Clerk.JWKSCacheTTL)
	verifier := jwt.NewVerifier(keys, cfg.Clerk.AuthorizedParties, cfg.Clerk.Leeway)
	identityService := auth.NewIdentityService(verifier, userRepo, logger)

	// Summaries
	log.Println("🤖 Initializing summary pipeline...")
	openaiClient := pkgai.NewOpenAIClient(&cfg.OpenAI, logger)
	pipeline := summary.NewPipeline(openaiClient, openaiClient.Model(), cfg.OpenAI.MaxTokens, logger)
	summaryService := summary.NewSummaryService(uow, pipeline, chatRepo, archiver, cfg.Summary.Deadline, logger)

	meetingService := meeting.NewMeetingService(meetingRepo)
	checkInService := checkin.NewCheckInService(checkInRepo)
	chatService := chat.NewChatService(chatRepo, replayGuard, cfg.Hume.SecretKey, logger)

	var humeTokens handler.HumeTokenProvider
	if cfg.Hume.APIKey != "" && cfg.Hume.SecretKey != "" {
		humeTokens = oauth.NewHumeProvider(&cfg.Hume, nil)
	} else {
		log.Println("⚠️  HUME_API_KEY/HUME_SECRET_KEY not set; /v1/hume_tokens is disabled")
	}

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(
		cfg,
		httpmw.EchoAuth(identityService),
		handler.NewSummaryHandler(summaryService, logger),
		handler.NewMeetingHandler(meetingService, logger),
		handler.NewCheckInHandler(checkInService, logger),
		handler.NewChatHandler(chatService, logger),
		handler.NewUserHandler(humeTokens, logger),
	)
	router.Setup(e)

	if !cfg.IsProduction() {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)

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

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Server.Environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// corsOrigins adds the local web client to the configured origins
func corsOrigins(cfg *config.Config) []string {
	const localClient = "http://localhost:3001"
	origins := make([]string, 0, len(cfg.Frontend.Origin)+1)
	seen := map[string]bool{}
	for _, o := range append(cfg.Frontend.Origin, localClient) {
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		origins = append(origins, o)
	}
	return origins
}
