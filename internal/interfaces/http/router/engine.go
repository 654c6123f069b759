package router

import (
	"net/http"
	"strings"

	"github.com/agro/backend/internal/infrastructure/config"
	"github.com/agro/backend/internal/infrastructure/logger"
	"github.com/agro/backend/internal/interfaces/http/handler"
	"github.com/agro/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// HealthPath is served outside the versioned API
const HealthPath = "/health"

// Handlers groups the HTTP handlers mounted by the engine
type Handlers struct {
	Producer *handler.ProducerHandler
	Property *handler.PropertyHandler
	Crop     *handler.CropHandler
	Report   *handler.ReportHandler
	System   *handler.SystemHandler
}

// EngineConfig configures the middleware chain
type EngineConfig struct {
	HTTP    config.HTTPConfig
	Logger  *zap.Logger
	Tracing middleware.TracingConfig
	// Metrics receives request observations; nil disables the metrics middleware
	Metrics middleware.HTTPObserver
	// MetricsPath and MetricsHandler expose the Prometheus scrape endpoint when both are set
	MetricsPath    string
	MetricsHandler http.Handler
	// RateLimiter throttles API clients; nil disables it
	RateLimiter *middleware.RateLimiter
	// SwaggerPath mounts the Swagger UI and doc.json under it; empty disables it
	SwaggerPath string
}

// NewEngine builds the gin engine with the middleware chain and every route
func NewEngine(cfg EngineConfig, h Handlers) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	quiet := []string{HealthPath}
	if cfg.MetricsPath != "" {
		quiet = append(quiet, cfg.MetricsPath)
	}
	cfg.Tracing.Skip = append(cfg.Tracing.Skip, quiet...)

	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		middleware.Tracing(cfg.Tracing),
		middleware.SpanEnricher(),
		logger.GinMiddleware(log, quiet...),
	)
	if cfg.Metrics != nil {
		engine.Use(middleware.HTTPMetrics(cfg.Metrics, quiet...))
	}
	if cfg.RateLimiter != nil {
		engine.Use(middleware.RateLimit(cfg.RateLimiter, quiet...))
	}
	engine.Use(
		middleware.Secure(),
		middleware.CORS(middleware.CORSConfigFromHTTP(cfg.HTTP)),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	base := &handler.BaseHandler{}
	engine.NoRoute(func(c *gin.Context) {
		base.NotFound(c, "Route not found")
	})

	if h.System != nil {
		engine.GET(HealthPath, h.System.Health)
	}
	if cfg.MetricsPath != "" && cfg.MetricsHandler != nil {
		engine.GET(cfg.MetricsPath, gin.WrapH(cfg.MetricsHandler))
	}
	if cfg.SwaggerPath != "" {
		engine.GET(strings.TrimSuffix(cfg.SwaggerPath, "/")+"/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r := NewRouter(engine)
	for _, group := range RegistryRoutes(h) {
		r.Register(group)
	}
	r.Setup()

	return engine, nil
}

// RegistryRoutes returns the /api/v1 route groups
func RegistryRoutes(h Handlers) []*DomainGroup {
	producers := NewDomainGroup("producers", "/producers").
		GET("", h.Producer.List).
		GET("/:id", h.Producer.GetByID).
		POST("", h.Producer.Create).
		PUT("/:id", h.Producer.Update).
		DELETE("/:id", h.Producer.Delete)

	properties := NewDomainGroup("properties", "/properties").
		GET("", h.Property.List).
		GET("/report/total-farms", h.Report.TotalFarms).
		GET("/report/total-hectares", h.Report.TotalHectares).
		GET("/producer/:producerId", h.Property.ListByProducer).
		GET("/:id", h.Property.GetByID).
		POST("", h.Property.Create).
		PUT("/:id", h.Property.Update).
		DELETE("/:id", h.Property.Delete)

	crops := NewDomainGroup("crops", "/crops").
		GET("", h.Crop.List).
		GET("/:id", h.Crop.GetByID).
		POST("", h.Crop.Create).
		PUT("/:id", h.Crop.Update).
		DELETE("/:id", h.Crop.Delete)

	// older clients still call these
	reports := NewDomainGroup("reports", "/reports").
		GET("/total-fazendas", h.Report.TotalFarms).
		GET("/total-hectares", h.Report.TotalHectares)

	return []*DomainGroup{producers, properties, crops, reports}
}
