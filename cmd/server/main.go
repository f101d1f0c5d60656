package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/resumeiq-api/internal/config"
	"github.com/yourusername/resumeiq-api/internal/events"
	"github.com/yourusername/resumeiq-api/internal/handler"
	"github.com/yourusername/resumeiq-api/internal/inference"
	"github.com/yourusername/resumeiq-api/internal/middleware"
	"github.com/yourusername/resumeiq-api/internal/provider"
	"github.com/yourusername/resumeiq-api/internal/repository"
	"github.com/yourusername/resumeiq-api/internal/service"
	"github.com/yourusername/resumeiq-api/internal/storage"
)

func main() {
	// ── Logging ──────────────────────────────────────────
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// ── Config ───────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("Starting ResumeIQ API")

	ctx := context.Background()

	// ── Inference ────────────────────────────────────────
	descs, err := buildProviders(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize providers")
	}
	engine, err := inference.NewEngine(descs)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build inference engine")
	}
	log.Info().Strs("providers", engine.Providers()).Msg("Inference cascade ready")

	// ── History store ────────────────────────────────────
	var store repository.HistoryStore = repository.NewMemoryHistory()
	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		pool, err = pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to ping database")
		}
		repo := repository.NewHistoryRepo(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to prepare kv_store")
		}
		store = repo
		log.Info().Msg("Database connected")
	} else {
		log.Warn().Msg("DATABASE_URL not set, history is kept in memory")
	}
	history := service.NewHistoryService(store)

	// ── Object storage ───────────────────────────────────
	var objects storage.ObjectStore
	var localDir string
	if cfg.R2.Enabled() {
		r2, err := storage.NewR2Store(ctx, cfg.R2)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize R2 storage")
		}
		objects = r2
		log.Info().Str("bucket", cfg.R2.Bucket).Msg("Uploads stored in R2")
	} else {
		local, err := storage.NewLocalStore(cfg.UploadDir, "/files")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize upload dir")
		}
		objects = local
		localDir = local.Dir()
		log.Info().Str("dir", localDir).Msg("Uploads stored on disk")
	}

	// ── Events ───────────────────────────────────────────
	var publisher events.Publisher = events.Noop{}
	if cfg.RabbitMQURL != "" {
		p, err := events.NewAMQPPublisher(cfg.RabbitMQURL)
		if err != nil {
			log.Error().Err(err).Msg("RabbitMQ unavailable, analysis events disabled")
		} else {
			publisher = p
		}
	}
	defer publisher.Close()

	// ── Handlers ─────────────────────────────────────────
	aiHandler := handler.NewAIHandler(engine, objects, history, publisher)
	fileHandler := handler.NewFileHandler(objects)
	jobHandler := handler.NewJobHandler(service.NewLiveJobSearch(
		service.NewJSearchClient(cfg.RapidAPIKey, ""),
		service.NewRemotiveClient(""),
	))
	kvHandler := handler.NewKVHandler(store, history)

	// ── Middleware ────────────────────────────────────────
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS)
	defer rateLimiter.Close()

	// ── Router ───────────────────────────────────────────
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(requestLogger())
	r.MaxMultipartMemory = handler.MaxUploadBytes

	// CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"service":   "resumeiq-api",
			"providers": engine.Providers(),
			"time":      time.Now().UTC(),
		})
	})

	if localDir != "" {
		r.Static("/files", localDir)
	}
	r.POST("/files/upload", fileHandler.Upload)

	// AI routes call paid providers, so they are rate limited per client.
	ai := r.Group("/ai", rateLimiter.Limit())
	{
		ai.POST("/chat", aiHandler.Chat)
		ai.POST("/roadmap", aiHandler.Roadmap)
		ai.POST("/linkedin-optimize", aiHandler.LinkedInOptimize)
		ai.POST("/get-review", aiHandler.GetReview)
	}

	r.POST("/jobs", jobHandler.Search)

	kv := r.Group("/kv")
	{
		kv.POST("/set", kvHandler.Set)
		kv.GET("/get/:key", kvHandler.Get)
		kv.POST("/list", kvHandler.List)
		kv.GET("/history", kvHandler.History)
	}

	// ── Server ───────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("ResumeIQ API server running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

// buildProviders turns the configured provider table into cascade descriptors.
// Providers without credentials stay in the table and are skipped at call time.
func buildProviders(ctx context.Context, cfg *config.Config) ([]provider.Descriptor, error) {
	descs := make([]provider.Descriptor, 0, len(cfg.Providers))
	for _, p := range cfg.Providers {
		if !p.IsEnabled() {
			log.Info().Str("provider", p.Name).Msg("Provider disabled")
			continue
		}

		var inv provider.Invoker
		switch p.Name {
		case config.ProviderGemini:
			g, err := provider.NewGemini(ctx, cfg.GeminiAPIKey, firstNonEmpty(p.Model, cfg.GeminiModel), cfg.GeminiBaseURL)
			if err != nil {
				return nil, err
			}
			inv = g
		case config.ProviderGroq:
			inv = provider.NewGroq(cfg.GroqAPIKey, cfg.GroqBaseURL, firstNonEmpty(p.Model, cfg.GroqModel))
		case config.ProviderClaude:
			inv = provider.NewClaude(cfg.ClaudeAPIKey, cfg.ClaudeBaseURL, firstNonEmpty(p.Model, cfg.ClaudeModel))
		default:
			return nil, fmt.Errorf("unknown provider %q", p.Name)
		}

		descs = append(descs, provider.Descriptor{
			Name:     p.Name,
			Priority: p.Priority,
			Timeout:  p.Timeout,
			Invoker:  inv,
		})
	}
	return descs, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// requestLogger logs every request with zerolog
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= 400 {
			event = log.Warn()
		}
		if status >= 500 {
			event = log.Error()
		}

		event.
			Str("request_id", middleware.GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Msg(fmt.Sprintf("%s %s", c.Request.Method, path))
	}
}
