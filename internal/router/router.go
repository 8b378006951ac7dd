package router

import (
	"context"
	"net/http"
	"strings"
	"time"

	"finora-backend/internal/config"
	"finora-backend/internal/database"
	"finora-backend/internal/handlers"
	"finora-backend/internal/logging"
	"finora-backend/internal/middleware"
	"finora-backend/internal/repositories"
	"finora-backend/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const (
	apiPrefix           = "/api/"
	maxRequestBodySize  = "1M"
	rateLimiterInterval = time.Minute
)

// New builds the echo server with every FINORA route registered. Collectors
// are registered with registry, which is also what /metrics exposes. The
// rate limiter's cleanup goroutine stops when ctx is done.
func New(ctx context.Context, cfg *config.Config, db *database.DB, logger *logrus.Logger, registry *prometheus.Registry) *echo.Echo {
	metrics := services.NewPrometheusMetrics(registry)

	categoryRepo := repositories.NewCategoryRepository(db.DB)
	transactionRepo := repositories.NewTransactionRepository(db.DB)
	userRepo := repositories.NewUserRepository(db.DB)

	tokenService := services.NewTokenService(&cfg.Auth)
	categoryService := services.NewCategoryService(categoryRepo, metrics)
	transactionService := services.NewTransactionService(transactionRepo, categoryRepo, metrics)

	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	healthHandler := handlers.NewHealthCheckHandler(db)
	docsHandler := handlers.NewDocsHandler()

	rateLimiter := middleware.NewRateLimiter(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst)
	rateLimiter.StartCleanup(ctx, rateLimiterInterval)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.NewHTTPErrorHandler(logger, metrics)

	// Routes are registered with a trailing slash; requests without one are
	// rewritten in place rather than redirected.
	e.Pre(echomw.AddTrailingSlashWithConfig(echomw.TrailingSlashConfig{
		Skipper: func(c echo.Context) bool {
			return !strings.HasPrefix(c.Request().URL.Path, apiPrefix)
		},
	}))

	e.Use(middleware.RequestID())
	e.Use(middleware.APIErrorMetrics(metrics))
	e.Use(logging.RequestLogger(logger))
	e.Use(middleware.PanicRecovery(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  cfg.Server.CORSAllowOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, middleware.TraceIDHeader},
		ExposeHeaders: []string{middleware.TraceIDHeader},
	}))
	e.Use(rateLimiter.Middleware())
	e.Use(echomw.BodyLimit(maxRequestBodySize))

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	e.GET("/docs", docsHandler.ServeUI)
	e.GET("/docs/openapi.json", docsHandler.ServeOpenAPI)

	auth := []echo.MiddlewareFunc{middleware.Authenticate(tokenService, userRepo)}
	if cfg.Auth.Required {
		auth = append(auth, middleware.RequireAuth())
	}

	api := e.Group("/api")

	api.GET("/categorias/", categoryHandler.ListCategories, auth...)
	api.POST("/categorias/", categoryHandler.CreateCategory, auth...)
	api.GET("/categorias/:id/", categoryHandler.GetCategory, auth...)
	api.PUT("/categorias/:id/", categoryHandler.UpdateCategory, auth...)
	api.PATCH("/categorias/:id/", categoryHandler.PatchCategory, auth...)
	api.DELETE("/categorias/:id/", categoryHandler.DeleteCategory, auth...)

	api.GET("/transacciones/", transactionHandler.ListTransactions, auth...)
	api.POST("/transacciones/", transactionHandler.CreateTransaction, auth...)
	api.GET("/transacciones/:id/", transactionHandler.GetTransaction, auth...)
	api.PUT("/transacciones/:id/", transactionHandler.UpdateTransaction, auth...)
	api.PATCH("/transacciones/:id/", transactionHandler.PatchTransaction, auth...)
	api.DELETE("/transacciones/:id/", transactionHandler.DeleteTransaction, auth...)

	return e
}
