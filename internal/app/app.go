package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/mirovate/tablematch/internal/config"
	"github.com/mirovate/tablematch/internal/database"
	"github.com/mirovate/tablematch/internal/handlers"
	"github.com/mirovate/tablematch/internal/middleware"
	"github.com/mirovate/tablematch/internal/services"
)

type App struct {
	config   *config.Config
	logger   *logrus.Logger
	db       *database.Database
	services *services.Services
	handlers *handlers.Handlers
	router   *gin.Engine
}

func New(cfg *config.Config) (*App, error) {
	app := &App{
		config: cfg,
		logger: setupLogger(cfg),
	}

	db, err := database.New(cfg, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	services, err := services.New(cfg, app.logger, db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	app.services = services

	app.handlers = handlers.New(app.logger, services)

	app.setupRouter()

	return app, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application...")

	if err := a.services.Producer.Close(); err != nil {
		a.logger.WithError(err).Warn("Error closing Kafka producer")
	}

	if err := a.db.Close(); err != nil {
		a.logger.WithError(err).Error("Error closing database connections")
		return err
	}

	return nil
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

	router.Use(middleware.Logger(a.logger))
	router.Use(middleware.Recovery(a.logger))
	router.Use(middleware.CORS(a.config))

	router.GET("/health", a.handlers.Health.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		api.Use(middleware.Identity(&a.config.Auth, a.logger))

		recommendations := api.Group("/recommendations")
		{
			recommendations.GET("/:userId", a.handlers.Recommendation.Get)
			recommendations.POST("/track/click", a.handlers.Recommendation.TrackClick)
			recommendations.POST("/track/reservation", a.handlers.Recommendation.TrackReservation)
		}

		api.POST("/interactions", a.handlers.Interaction.Record)
		api.GET("/users/:userId/interactions", a.handlers.User.Interactions)
		api.GET("/users/:userId/reserved-tables", a.handlers.User.ReservedTables)
		api.GET("/tables/popular", a.handlers.Table.Popular)

		admin := api.Group("/admin")
		{
			admin.Use(middleware.RequireAdmin())
			admin.GET("/model", a.handlers.Admin.ModelInfo)
			admin.POST("/model/refresh", a.handlers.Admin.RefreshModel)
			admin.DELETE("/recommendations", a.handlers.Admin.BustCache)
			admin.GET("/users/:userId/analytics", a.handlers.Admin.UserAnalytics)
		}
	}

	a.router = router
}
