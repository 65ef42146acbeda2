package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/pupuk-kujang/siadil-api/api/swagger"
	"github.com/pupuk-kujang/siadil-api/internal/handler"
	"github.com/pupuk-kujang/siadil-api/internal/middleware"
	"github.com/pupuk-kujang/siadil-api/internal/mockdata"
	"github.com/pupuk-kujang/siadil-api/internal/models"
	"github.com/pupuk-kujang/siadil-api/internal/repository"
	"github.com/pupuk-kujang/siadil-api/internal/service"
	"github.com/pupuk-kujang/siadil-api/pkg/cache"
	"github.com/pupuk-kujang/siadil-api/pkg/config"
	"github.com/pupuk-kujang/siadil-api/pkg/database"
	"github.com/pupuk-kujang/siadil-api/pkg/logger"
	corsmiddleware "github.com/pupuk-kujang/siadil-api/pkg/middleware/cors"
	reqidmiddleware "github.com/pupuk-kujang/siadil-api/pkg/middleware/requestid"
	"github.com/pupuk-kujang/siadil-api/pkg/storage"
)

// @title SIADIL API
// @version 1.0.0
// @description Digital archive portal backend
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect postgres", "error", err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if client, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
	} else {
		redisClient = client
	}

	exportStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare export storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)

	documentRepo := repository.NewDocumentRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(db)
	shortlinkRepo := repository.NewShortlinkRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	libraryRepo := repository.NewLibraryRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	auditSvc := service.NewAuditService(auditRepo, logr, cfg.Audit.Workers, cfg.Audit.BufferSize)
	auditSvc.Start(ctx)
	defer auditSvc.Stop()

	metricsSvc := service.NewMetricsService()
	documentSvc := service.NewDocumentService(documentRepo, auditSvc, cacheRepo, logr, service.DocumentServiceConfig{
		DefaultPageSize: cfg.Documents.DefaultPageSize,
		MaxPageSize:     cfg.Documents.MaxPageSize,
	})
	reminderSvc := service.NewReminderService(documentRepo, cacheRepo, logr, service.ReminderServiceConfig{
		DangerDays:  cfg.Reminders.DangerDays,
		WarningDays: cfg.Reminders.WarningDays,
		CacheTTL:    cfg.Reminders.CacheTTL,
	})
	exportSvc := service.NewExportService(documentSvc, exportStore, signer, auditSvc, logr, service.ExportServiceConfig{
		CleanupTTL: cfg.Exports.CleanupTTL,
	})
	preferenceSvc := service.NewPreferenceService(preferenceRepo, logr)
	shortlinkSvc := service.NewShortlinkService(shortlinkRepo, cacheRepo, auditSvc, validator.New(), logr, service.ShortlinkServiceConfig{
		CodeLength: cfg.Shortlink.CodeLength,
		CacheTTL:   cfg.Shortlink.CacheTTL,
	})
	authSvc := service.NewAuthService(userRepo, auditSvc, logr, service.AuthServiceConfig{
		Secret:            cfg.JWT.Secret,
		Expiration:        cfg.JWT.Expiration,
		RefreshExpiration: cfg.JWT.RefreshExpiration,
	})
	librarySvc := service.NewLibraryService(libraryRepo, logr)
	employeeSvc := service.NewEmployeeService(employeeRepo, logr)

	if cfg.DemoSeed.Enabled {
		seedDemoDocuments(ctx, cfg, documentRepo, logr)
	}
	go runExportCleanup(ctx, exportSvc, cfg.Exports.CleanupTTL)

	documentHandler := handler.NewDocumentHandler(documentSvc, exportSvc, metricsSvc)
	reminderHandler := handler.NewReminderHandler(reminderSvc)
	preferenceHandler := handler.NewPreferenceHandler(preferenceSvc)
	shortlinkHandler := handler.NewShortlinkHandler(shortlinkSvc, metricsSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	libraryHandler := handler.NewLibraryHandler(librarySvc)
	employeeHandler := handler.NewEmployeeHandler(employeeSvc)
	auditHandler := handler.NewAuditHandler(auditSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/s/:code", shortlinkHandler.Resolve)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	protected := api.Group("", middleware.JWT(authSvc))
	{
		protected.GET("/documents", documentHandler.List)
		protected.POST("/documents", documentHandler.Create)
		protected.GET("/documents/archives", documentHandler.Archives)
		protected.GET("/documents/export", documentHandler.Export)
		protected.GET("/documents/export/download", documentHandler.Download)
		protected.GET("/documents/:id", documentHandler.Get)
		protected.PUT("/documents/:id", documentHandler.Update)
		protected.DELETE("/documents/:id", documentHandler.Delete)

		protected.GET("/reminders", reminderHandler.List)

		protected.GET("/preferences", preferenceHandler.List)
		protected.GET("/preferences/:key", preferenceHandler.Get)
		protected.PUT("/preferences/:key", preferenceHandler.Set)
		protected.DELETE("/preferences/:key", preferenceHandler.Reset)

		protected.GET("/shortlinks", shortlinkHandler.List)
		protected.POST("/shortlinks", shortlinkHandler.Create)
		protected.DELETE("/shortlinks/:id", shortlinkHandler.Delete)

		protected.GET("/library/books", libraryHandler.List)
		protected.GET("/library/books/:id", libraryHandler.Get)

		protected.GET("/me/profile", employeeHandler.Profile)
		protected.GET("/me/employment", employeeHandler.Employment)
		protected.GET("/me/attendance", employeeHandler.Attendance)

		admin := protected.Group("/admin", middleware.RequireRole(models.RoleAdmin))
		admin.GET("/audit-logs", auditHandler.List)
		admin.GET("/metrics", metricsHandler.Snapshot)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Sugar().Infow("server stopping")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}

// seedDemoDocuments inserts generated sample rows for each configured
// archive. Rows that already exist are left untouched.
func seedDemoDocuments(ctx context.Context, cfg *config.Config, repo *repository.DocumentRepository, logr *zap.Logger) {
	now := time.Now()
	seeded := 0
	for _, archive := range cfg.DemoSeed.Archives {
		for _, doc := range mockdata.Generate(archive, cfg.DemoSeed.RowCount, now) {
			if _, err := repo.GetByID(ctx, doc.ID); err == nil {
				continue
			}
			row := doc
			if err := repo.Create(ctx, &row); err != nil {
				logr.Sugar().Warnw("demo seed insert failed", "id", doc.ID, "error", err)
				continue
			}
			seeded++
		}
	}
	if seeded > 0 {
		logr.Sugar().Infow("demo seed complete", "rows", seeded)
	}
}

func runExportCleanup(ctx context.Context, exports *service.ExportService, interval time.Duration) {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			exports.Cleanup(ctx)
		}
	}
}
