// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"stocktake/internal/domain/auth"
	"stocktake/internal/domain/catalogs/branch"
	"stocktake/internal/domain/catalogs/category"
	"stocktake/internal/domain/catalogs/product"
	"stocktake/internal/domain/catalogs/supplier"
	"stocktake/internal/domain/catalogs/uom"
	"stocktake/internal/domain/reports"
	"stocktake/internal/domain/stocktake"
	"stocktake/internal/infrastructure/http/v1/handlers"
	"stocktake/internal/infrastructure/http/v1/middleware"
	"stocktake/pkg/logger"
)

// Services holds the domain services exposed over HTTP.
// A nil catalog service leaves its routes unregistered.
type Services struct {
	Categories *category.Service
	Suppliers  *supplier.Service
	UOMs       *uom.Service
	Branches   *branch.Service
	Products   *product.Service

	Assignments *stocktake.AssignmentService
	Recorder    *stocktake.CountRecorder
	Finalizer   *stocktake.Finalizer
	Reports     *reports.Service
}

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	Services Services

	// Health serves /health; nil disables the endpoints
	Health *handlers.HealthHandler

	// JWTValidator enables bearer-token auth on the API when set
	JWTValidator middleware.JWTValidator

	// RateLimiter enables per-IP rate limiting on the API when set
	RateLimiter *limiter.Limiter

	// CORSOrigins lists the allowed browser origins
	CORSOrigins []string

	// ServiceName enables OpenTelemetry request spans when non-empty
	ServiceName string

	Debug bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	// Global middleware (order matters!)
	if cfg.ServiceName != "" {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg.CORSOrigins))

	if cfg.Health != nil {
		health := router.Group("/health")
		{
			health.GET("/live", cfg.Health.Live)
			health.GET("/ready", cfg.Health.Ready)
			health.GET("/info", cfg.Health.Info)
		}
	}

	api := router.Group("/api")
	if cfg.RateLimiter != nil {
		api.Use(middleware.RateLimit(cfg.RateLimiter))
	}
	if cfg.JWTValidator != nil {
		api.Use(
			middleware.Auth(cfg.JWTValidator),
			middleware.RequireRole(auth.RoleOperator, auth.RoleAdmin),
		)
	}

	registerCatalogRoutes(api, cfg.Services)
	registerStocktakeRoutes(api, cfg.Services)
	registerReportRoutes(api, cfg.Services)

	return router
}

// registerCatalogRoutes registers reference-data endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, s Services) {
	base := handlers.NewBaseHandler()

	if s.Categories != nil {
		RegisterCatalogRoutes(rg.Group("/categories"), handlers.NewCategoryHandler(base, s.Categories))
	}
	if s.Suppliers != nil {
		RegisterCatalogRoutes(rg.Group("/suppliers"), handlers.NewSupplierHandler(base, s.Suppliers))
	}
	if s.UOMs != nil {
		RegisterCatalogRoutes(rg.Group("/uom"), handlers.NewUOMHandler(base, s.UOMs))
	}
	if s.Branches != nil {
		RegisterCatalogRoutes(rg.Group("/branches"), handlers.NewBranchHandler(base, s.Branches))
	}
	if s.Products != nil {
		RegisterCatalogRoutes(rg.Group("/products"), handlers.NewProductHandler(base, s.Products))
	}
}

// registerStocktakeRoutes registers assignments, counts and summaries.
func registerStocktakeRoutes(rg *gin.RouterGroup, s Services) {
	if s.Assignments == nil || s.Recorder == nil || s.Finalizer == nil {
		return
	}
	base := handlers.NewBaseHandler()

	assignments := handlers.NewAssignmentHandler(base, s.Assignments, s.Recorder)
	{
		group := rg.Group("/branch-assignments")
		RegisterCatalogRoutes(group, assignments)
		group.GET("/:id/counts", assignments.ListCounts)
		group.PUT("/:id/counts/:productId", assignments.PutCount)
	}

	counts := handlers.NewStockCountHandler(base, s.Recorder)
	rg.POST("/stock-counts", counts.Record)
	rg.GET("/monthly-inventory", counts.List)

	summaries := handlers.NewSummaryHandler(base, s.Finalizer)
	{
		group := rg.Group("/stocktake-summaries")
		group.GET("", summaries.List)
		group.POST("/finish", summaries.Finish)
		group.GET("/:assignmentId", summaries.Get)
	}
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, s Services) {
	if s.Reports == nil {
		return
	}
	reportHandler := handlers.NewReportsHandler(handlers.NewBaseHandler(), s.Reports)

	group := rg.Group("/reports")
	group.GET("/monthly-valuation", reportHandler.GetMonthlyValuation)
}
