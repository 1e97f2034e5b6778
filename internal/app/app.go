package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/config"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/database"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/handlers"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/middleware"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/services"
)

const compressionMinSize = 1024

type App struct {
	config   *config.Config
	logger   *logrus.Logger
	db       *database.Database
	services *services.Services
	handlers *handlers.Handlers
	router   *gin.Engine
	cancel   context.CancelFunc
}

func New(cfg *config.Config) (*App, error) {
	app := &App{
		config: cfg,
		logger: setupLogger(cfg),
	}

	// Initialize database connections
	db, err := database.New(cfg, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	ctx, cancel := context.WithCancel(context.Background())
	app.cancel = cancel

	// Initialize services
	svc, err := services.New(ctx, cfg, app.logger, db, prometheus.DefaultRegisterer)
	if err != nil {
		cancel()
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	app.services = svc

	svc.Catalog.StartAutoReload(ctx, cfg.Data.ReloadInterval)

	// Initialize handlers
	app.handlers = handlers.New(app.logger, svc)

	// Setup router
	app.setupRouter()

	return app, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application...")

	a.cancel()

	var errs []error
	if err := a.services.Close(); err != nil {
		a.logger.WithError(err).Error("Error flushing search events")
		errs = append(errs, err)
	}
	if err := a.db.Close(); err != nil {
		a.logger.WithError(err).Error("Error closing database connections")
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func setupLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

func (a *App) setupRouter() {
	if a.config.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(a.logger))
	router.Use(middleware.Recovery(a.logger))
	router.Use(middleware.CORS(a.config.Security.CORS))
	router.Use(middleware.Security())
	router.Use(middleware.Compression(compressionMinSize))

	router.GET("/health", a.handlers.Health.Check)

	if a.config.Monitoring.Enabled {
		router.GET(a.config.Monitoring.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	api := router.Group("/api/v1")
	{
		resources := api.Group("/resources")
		{
			resources.GET("", a.handlers.Resource.List)
			resources.GET("/:id", a.handlers.Resource.Get)
			resources.GET("/:id/alternatives", a.handlers.Resource.Alternatives)
		}

		search := api.Group("/search")
		{
			search.GET("", a.handlers.Search.Search)
			search.GET("/suggestions", a.handlers.Search.Suggestions)
			search.GET("/facets", a.handlers.Search.Facets)
			search.GET("/history", a.handlers.Search.GetHistory)
			search.POST("/history", a.handlers.Search.AddHistory)
			search.DELETE("/history", a.handlers.Search.ClearHistory)
			search.DELETE("/history/:query", a.handlers.Search.RemoveHistory)
			search.GET("/recent", a.handlers.Search.Recent)
			search.GET("/popular", a.handlers.Search.Popular)
		}

		recommendations := api.Group("/recommendations")
		{
			recommendations.GET("", a.handlers.Recommendation.Get)
			recommendations.POST("/personalized", a.handlers.Recommendation.Personalized)
		}

		// Admin routes (authentication is handled in front of this service)
		admin := api.Group("/admin")
		{
			admin.GET("/recommendations/config", a.handlers.Recommendation.GetConfig)
			admin.PATCH("/recommendations/config", a.handlers.Recommendation.UpdateConfig)
			admin.POST("/recommendations/config/reset", a.handlers.Recommendation.ResetConfig)
			admin.POST("/catalog/reload", a.handlers.Resource.Reload)
			admin.DELETE("/search/popular", a.handlers.Search.ClearPopular)
		}
	}

	a.router = router
}
