package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yukikurage/taskaura-api/internal/auth"
	"github.com/yukikurage/taskaura-api/internal/config"
	"github.com/yukikurage/taskaura-api/internal/constants"
	"github.com/yukikurage/taskaura-api/internal/database"
	"github.com/yukikurage/taskaura-api/internal/handlers"
	"github.com/yukikurage/taskaura-api/internal/logger"
	"github.com/yukikurage/taskaura-api/internal/middleware"
	"github.com/yukikurage/taskaura-api/internal/repository"
	"github.com/yukikurage/taskaura-api/internal/services"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// logger is not ready yet
		logger.Init(logger.Options{Pretty: true})
		log := logger.Get()
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})
	log := logger.Get()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	dbLogLevel := gormlogger.Info
	if cfg.IsProduction() {
		dbLogLevel = gormlogger.Warn
	}
	db, err := database.Connect(cfg.DB, dbLogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	if err := handlers.RegisterValidators(); err != nil {
		log.Fatal().Err(err).Msg("Failed to register validators")
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Metrics(), middleware.RequestLogger())

	// Initialize services
	uow := repository.NewUnitOfWork(db)
	authService := services.NewAuthService(repository.NewUserRepository(db))
	projectService := services.NewProjectService(uow)

	var generator services.TaskGenerator
	if cfg.OpenAIAPIKey != "" {
		generator = services.NewAIService(cfg.OpenAIAPIKey)
	} else {
		log.Warn().Msg("OPENAI_API_KEY is not set, task generation is disabled")
	}
	taskService := services.NewTaskService(uow, generator)

	// Identity is carried either by a Redis-backed session or by a JWT cookie
	var (
		authHandler *handlers.AuthHandler
		identity    middleware.IdentityResolver
	)
	switch cfg.Auth.Mode {
	case constants.AuthModeJWT:
		tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiration)
		authHandler = handlers.NewJWTAuthHandler(authService, tokens, cfg.IsProduction())
		identity = middleware.JWTIdentity(tokens)
	default:
		store, err := redisStore.NewStore(
			10,              // Redis pool size
			"tcp",           // network type
			cfg.RedisAddr(), // Redis address from config
			"",              // username (empty for default user)
			"",              // password (empty = no password)
			[]byte(cfg.Auth.SessionSecret),
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Redis store")
		}
		store.Options(sessions.Options{
			Path:     "/",
			MaxAge:   86400 * 7, // 7 days
			HttpOnly: true,
			Secure:   cfg.IsProduction(),
			SameSite: http.SameSiteLaxMode,
		})
		r.Use(sessions.Sessions(constants.SessionCookieName, store))
		authHandler = handlers.NewAuthHandler(authService)
		identity = middleware.SessionIdentity
	}

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Taskaura API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.RegisterRoutes(r, handlers.Routes{
		Auth:     authHandler,
		Projects: handlers.NewProjectHandler(projectService),
		Tasks:    handlers.NewTaskHandler(taskService),
		Identity: identity,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("auth_mode", cfg.Auth.Mode).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("Server exited")
}
