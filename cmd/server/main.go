package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/survey-service/internal/auth"
	"github.com/SAP-F-2025/survey-service/internal/cache"
	"github.com/SAP-F-2025/survey-service/internal/config"
	"github.com/SAP-F-2025/survey-service/internal/handlers"
	"github.com/SAP-F-2025/survey-service/internal/middleware"
	"github.com/SAP-F-2025/survey-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/survey-service/internal/services"
	"github.com/SAP-F-2025/survey-service/internal/utils"
	"github.com/SAP-F-2025/survey-service/internal/validator"
	"github.com/SAP-F-2025/survey-service/pkg"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger := utils.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}
	if err := postgres.AutoMigrate(db); err != nil {
		return err
	}
	logger.Info("Connected to database")

	rdb, err := pkg.NewRedisClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer rdb.Close()
	logger.Info("Connected to Redis")

	cacheService := cache.NewRedisCache(rdb, logger)
	repo := postgres.NewRepository(db, cacheService, logger)

	// Events
	publisher, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	// Services
	serviceManager := services.NewServiceManager(
		repo,
		cache.NewDraftStore(cacheService, cfg.Survey.DraftTTL),
		cache.NewNonceStore(cacheService, cfg.Survey.NonceTTL),
		publisher,
		logger,
		validator.New(),
	)

	// HTTP
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.RequestID())
	router.Use(utils.LoggerMiddleware(utils.NewSlogLogger(logger)))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Survey.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", utils.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", utils.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if err := router.SetTrustedProxies(nil); err != nil {
		return err
	}

	verifier := auth.NewVerifier(cfg.JWTSecret, 24*time.Hour)
	submitLimiter := middleware.NewIPRateLimiter(ctx, cfg.Survey.SubmitRatePerMin, cfg.Survey.SubmitBurst, 10*time.Minute)
	handlers.NewHandlerManager(serviceManager, verifier, submitLimiter, utils.NewSlogLogger(logger)).SetupRoutes(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
