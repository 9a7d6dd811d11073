package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"dataflow-backend/internal/config"
	"dataflow-backend/internal/controller"
	"dataflow-backend/internal/database"
	"dataflow-backend/internal/logger"
	"dataflow-backend/internal/middleware"
	"dataflow-backend/internal/model"
	"dataflow-backend/internal/repository"
	"dataflow-backend/internal/security"
	"dataflow-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

type application struct {
	cfg    *config.Config
	log    *slog.Logger
	db     *gorm.DB
	router *gin.Engine

	registry          *database.DriverRegistry
	tester            *database.ConnectionTester
	dataSourceService service.DataSourceService
	catalogService    service.CatalogService
	rateLimiter       *middleware.RateLimiter
}

// bootstrap loads configuration and wires every dependency
func bootstrap(configFile string) (*application, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Init(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app := &application{cfg: cfg, log: log, db: db}

	// Initialize repositories
	dataSourceRepo := repository.NewDataSourceRepository(db)
	catalogRepo, err := repository.NewCachedCatalogRepository(repository.NewCatalogRepository(db), cfg.Catalog.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog cache: %w", err)
	}

	// Initialize connectivity testing
	app.registry = database.NewDefaultDriverRegistry(cfg.Connectivity.DialTimeout)
	app.tester = database.NewConnectionTester(dataSourceRepo, app.registry, cfg.Connectivity.Timeout, log)

	// Initialize services
	app.dataSourceService = service.NewDataSourceService(dataSourceRepo, app.tester, app.tester, log)
	app.catalogService = service.NewCatalogService(catalogRepo, dataSourceRepo, nil, log)

	return app, nil
}

func (a *application) Migrate() error {
	if err := a.db.AutoMigrate(&model.DataCatalogItem{}, &model.DataSource{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	a.log.Info("database schema is up to date")
	return nil
}

func (a *application) buildRouter() *gin.Engine {
	if a.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.InitMetrics()

	router := gin.New()
	router.Use(gin.CustomRecovery(controller.RecoverPanic))
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger(a.log))
	router.Use(middleware.PrometheusMiddleware())

	if a.cfg.Security.EnableRateLimit {
		limiterConfig := middleware.DefaultRateLimiterConfig()
		limiterConfig.RPM = a.cfg.Security.RateLimitPerMinute
		limiterConfig.Burst = a.cfg.Security.RateLimitBurst
		a.rateLimiter = middleware.NewRateLimiter(limiterConfig)
		router.Use(a.rateLimiter.RateLimit())
	}

	router.NoRoute(controller.RouteNotFound)

	healthController := controller.NewHealthController(a.db, a.registry, version)
	router.GET("/health", healthController.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	jwtManager := security.NewJWTManager(a.cfg.Security.JWTSecret, a.cfg.Security.JWTExpiration)
	auth := security.NewAuthMiddleware(jwtManager, a.cfg.Security.EnableAuth)

	api := router.Group("/api/v1", auth.RequireAuth(), auth.RequireWriteAccess())
	controller.NewDataSourceController(a.dataSourceService).RegisterRoutes(api)
	controller.NewCatalogController(a.catalogService).RegisterRoutes(api)
	controller.NewConnectivityController(a.tester).RegisterRoutes(api)

	return router
}

// Serve runs the HTTP server until ctx is cancelled or SIGINT/SIGTERM arrives
func (a *application) Serve(ctx context.Context) error {
	if err := a.Migrate(); err != nil {
		return err
	}
	if a.cfg.Catalog.SeedOnStart {
		if _, err := a.catalogService.SeedCatalog(ctx); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              a.cfg.Server.Addr(),
		Handler:           a.buildRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("starting server",
			slog.String("addr", srv.Addr),
			slog.Any("drivers", a.registry.SupportedCatalogItems()),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (a *application) Close() {
	if a.rateLimiter != nil {
		a.rateLimiter.Stop()
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
