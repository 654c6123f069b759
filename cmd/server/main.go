package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/agro/backend/docs"
	agroapp "github.com/agro/backend/internal/application/agro"
	"github.com/agro/backend/internal/infrastructure/cache"
	"github.com/agro/backend/internal/infrastructure/config"
	"github.com/agro/backend/internal/infrastructure/event"
	"github.com/agro/backend/internal/infrastructure/logger"
	"github.com/agro/backend/internal/infrastructure/metrics"
	"github.com/agro/backend/internal/infrastructure/migration"
	"github.com/agro/backend/internal/infrastructure/persistence"
	"github.com/agro/backend/internal/infrastructure/telemetry"
	"github.com/agro/backend/internal/interfaces/http/handler"
	"github.com/agro/backend/internal/interfaces/http/middleware"
	"github.com/agro/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:generate swag init --dir ./,../../internal/interfaces/http --generalInfo main.go --output ../../docs --outputTypes go --parseDependency

//	@title			Agro Registry API
//	@version		1.0
//	@description	Rural producer, property and crop registry
//	@BasePath		/api/v1

// Version is overridden at build time with -ldflags "-X main.Version=..."
var Version = "dev"

const (
	defaultShutdownTimeout = 30 * time.Second
	scrapeTimeout          = 5 * time.Second
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	baseLog, err := logger.New(logger.FromAppConfig(cfg.Log, cfg.App.Env))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()
	telemetryCfg := telemetry.FromAppConfig(cfg, Version)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetryCfg, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetryCfg, 0, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetryCfg, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize logger provider", zap.Error(err))
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfigFromApp(cfg), baseLog)
	if err != nil {
		baseLog.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() && cfg.Profiling.SpanProfiles {
		tracerProvider.EnableSpanProfiles()
	}

	log := loggerProvider.Bridge(baseLog, telemetryCfg.ServiceName, logger.ParseLevel(cfg.Log.Level))
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting agro registry",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", Version),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL && !cfg.IsProduction(),
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBName:          cfg.Database.DBName,
	}, log)
	if err := dbTracing.Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	sqlDB, err := db.SQL()
	if err != nil {
		log.Fatal("Failed to get sql.DB", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		if err := runMigrations(db, log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	// Report cache
	reportCache, err := cache.NewReportCacheFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.IsProduction()),
	).CreateCache()
	if err != nil {
		log.Fatal("Failed to create report cache", zap.Error(err))
	}

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)
	invalidator := agroapp.NewReportCacheInvalidator(reportCache, log)
	eventBus.Subscribe(invalidator, invalidator.EventTypes()...)

	registryMetrics, err := telemetry.NewRegistryMetrics(meterProvider.Meter("agro-registry"))
	if err != nil {
		log.Fatal("Failed to create registry metrics", zap.Error(err))
	}
	eventBus.Subscribe(registryMetrics)

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Repositories and services
	producerRepo := persistence.NewGormProducerRepository(db.DB)
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	cropRepo := persistence.NewGormCropRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	producerService := agroapp.NewProducerService(producerRepo)
	producerService.SetLogger(log)
	producerService.SetEventPublisher(eventBus)

	propertyService := agroapp.NewPropertyService(propertyRepo, producerRepo, txScope)
	propertyService.SetLogger(log)
	propertyService.SetEventPublisher(eventBus)

	cropService := agroapp.NewCropService(cropRepo, propertyRepo)
	cropService.SetLogger(log)
	cropService.SetEventPublisher(eventBus)

	reportService := agroapp.NewReportService(propertyRepo, reportCache, cfg.Report.CacheTTL, log)
	reportService.SetMetrics(registryMetrics)

	// HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engineCfg := router.EngineConfig{
		HTTP:   cfg.HTTP,
		Logger: log,
		Tracing: middleware.TracingConfig{
			ServiceName: telemetryCfg.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		},
	}
	if cfg.Metrics.Enabled {
		promMetrics := metrics.New()
		if err := promMetrics.RegisterRegistryCollector(reportService, scrapeTimeout, log); err != nil {
			log.Fatal("Failed to register registry collector", zap.Error(err))
		}
		engineCfg.Metrics = promMetrics
		engineCfg.MetricsPath = cfg.Metrics.Path
		engineCfg.MetricsHandler = promMetrics.Handler()
	}

	if cfg.HTTP.SwaggerEnabled {
		engineCfg.SwaggerPath = cfg.HTTP.SwaggerPath
	}

	if cfg.HTTP.RateLimitRPS > 0 {
		limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
			RPS:   cfg.HTTP.RateLimitRPS,
			Burst: cfg.HTTP.RateLimitBurst,
		})
		defer limiter.Stop()
		engineCfg.RateLimiter = limiter
	}

	engine, err := router.NewEngine(engineCfg, router.Handlers{
		Producer: handler.NewProducerHandler(producerService),
		Property: handler.NewPropertyHandler(propertyService),
		Crop:     handler.NewCropHandler(cropService),
		Report:   handler.NewReportHandler(reportService),
		System:   handler.NewSystemHandler(sqlDB, cfg.App.Name, Version, log),
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	timeout := cfg.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Warn("Event bus did not drain", zap.Error(err))
	}
	if closer, ok := reportCache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Warn("Error closing report cache", zap.Error(err))
		}
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}

	for name, shutdown := range map[string]func(context.Context) error{
		"tracer": tracerProvider.Shutdown,
		"meter":  meterProvider.Shutdown,
		"logger": loggerProvider.Shutdown,
	} {
		if err := shutdown(shutdownCtx); err != nil {
			baseLog.Warn("Telemetry provider shutdown failed", zap.String("provider", name), zap.Error(err))
		}
	}

	if err := profiler.Stop(); err != nil {
		baseLog.Warn("Profiler shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// runMigrations applies every pending migration embedded in the binary
func runMigrations(db *persistence.Database, log *zap.Logger) error {
	sqlDB, err := db.SQL()
	if err != nil {
		return err
	}
	migrator, err := migration.New(sqlDB, log)
	if err != nil {
		return err
	}
	// Closing the migrator would close the shared pool, so it is left open.
	return migrator.Up()
}
