package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/utepsa-eventos/eventos-api/api/swagger"
	"github.com/utepsa-eventos/eventos-api/internal/handler"
	"github.com/utepsa-eventos/eventos-api/internal/middleware"
	"github.com/utepsa-eventos/eventos-api/internal/models"
	"github.com/utepsa-eventos/eventos-api/internal/repository"
	"github.com/utepsa-eventos/eventos-api/internal/service"
	"github.com/utepsa-eventos/eventos-api/pkg/cache"
	"github.com/utepsa-eventos/eventos-api/pkg/config"
	"github.com/utepsa-eventos/eventos-api/pkg/database"
	"github.com/utepsa-eventos/eventos-api/pkg/logger"
	corsmiddleware "github.com/utepsa-eventos/eventos-api/pkg/middleware/cors"
	reqidmiddleware "github.com/utepsa-eventos/eventos-api/pkg/middleware/requestid"
	"github.com/utepsa-eventos/eventos-api/pkg/storage"
)

// @title UTEPSA Eventos API
// @version 1.0.0
// @description Backend for the university events platform: schedules, inscriptions, surveys and publications
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	inscriptionRepo := repository.NewInscriptionRepository(db)
	surveyRepo := repository.NewSurveyRepository(db)
	publicationRepo := repository.NewPublicationRepository(db)
	reportRepo := repository.NewReportRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	// Services
	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Schedule.CacheTTL, logr, cfg.Schedule.CacheEnabled && redisClient != nil)
	authSvc := service.NewAuthService(userRepo, cfg.JWT, logr)
	eventSvc := service.NewEventService(eventRepo, logr)
	activitySvc := service.NewActivityService(activityRepo, eventRepo, inscriptionRepo, cacheSvc, logr)
	scheduleSvc := service.NewScheduleService(eventRepo, activityRepo, inscriptionRepo, cacheSvc, cfg.Schedule.CacheTTL, logr)
	inscriptionSvc := service.NewInscriptionService(inscriptionRepo, activityRepo, eventRepo, logr)
	surveySvc := service.NewSurveyService(surveyRepo, inscriptionRepo, logr)
	dashboardSvc := service.NewDashboardService(eventRepo, surveyRepo, cacheSvc, cfg.Dashboard.CacheTTL, logr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reportSvc *service.ReportService
	if cfg.Reports.Enabled {
		reportStore, err := storage.NewLocalStorage(cfg.Reports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init report storage", "error", err)
		}
		reportSvc = service.NewReportService(reportRepo, surveyRepo, eventRepo, reportStore, cfg.Reports, logr)
		reportSvc.Start(ctx)
		defer reportSvc.Stop()
	}

	var publicationSvc *service.PublicationService
	if cfg.Publications.Enabled {
		publicationStore, err := storage.NewLocalStorage(cfg.Publications.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init publication storage", "error", err)
		}
		publicationSvc = service.NewPublicationService(publicationRepo, publicationStore, cfg.Publications, logr)
	}

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	eventHandler := handler.NewEventHandler(eventSvc)
	activityHandler := handler.NewActivityHandler(activitySvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	inscriptionHandler := handler.NewInscriptionHandler(inscriptionSvc)
	surveyHandler := handler.NewSurveyHandler(surveySvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)
		auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
	}

	events := api.Group("/events")
	{
		events.GET("", eventHandler.List)
		events.GET("/:id", eventHandler.Get)
		events.GET("/:id/schedule", middleware.OptionalJWT(authSvc), scheduleHandler.Get)
		events.GET("/:id/my-inscriptions", middleware.JWT(authSvc), inscriptionHandler.MyInscriptions)
	}

	activities := api.Group("/activities")
	{
		activities.GET("/:id", activityHandler.Get)

		manage := activities.Group("", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin, models.RoleOrganizer))
		manage.POST("", activityHandler.Create)
		manage.PATCH("/:id", activityHandler.Update)
		manage.PUT("/:id/survey-window", activityHandler.SetSurveyWindow)
		manage.DELETE("/:id", activityHandler.Delete)
	}

	api.POST("/inscriptions", middleware.JWT(authSvc), inscriptionHandler.Enroll)
	api.POST("/surveys", middleware.JWT(authSvc), surveyHandler.Submit)

	if cfg.Dashboard.Enabled {
		dashboard := api.Group("/dashboard", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin, models.RoleOrganizer))
		dashboard.GET("/events/:id", dashboardHandler.Event)
	}

	if reportSvc != nil {
		reportHandler := handler.NewReportHandler(reportSvc)
		reports := api.Group("/reports")
		reports.POST("", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin, models.RoleOrganizer), reportHandler.Request)
		reports.GET("/:id", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin, models.RoleOrganizer), reportHandler.Status)
		reports.GET("/download/:token", reportHandler.Download)
	}

	if publicationSvc != nil {
		publicationHandler := handler.NewPublicationHandler(publicationSvc)
		api.GET("/publications/shared/:code", publicationHandler.GetByShareCode)
		api.GET("/publications/images/:token", publicationHandler.Image)
		api.GET("/events/:id/publications", publicationHandler.ListByEvent)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
