package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/appservers/customer-api/internal/api/handler"
	"github.com/appservers/customer-api/internal/api/middleware"
	"github.com/appservers/customer-api/internal/core/service"
	"github.com/appservers/customer-api/internal/infrastructure/db/postgres"
	"github.com/appservers/customer-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(pool *pgxpool.Pool, limiter middleware.Limiter, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.ServerName, cfg.Env)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(middleware.ServerHeader(cfg.ServerName))
	e.Use(echoprometheus.NewMiddleware("customer_api"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(pool)
	userService := service.NewUserService(userRepo, log)
	userHandler := handler.NewUserHandler(userService, cfg.ServerName)
	healthHandler := handler.NewHealthHandler(pool, cfg.ServerName, config.Version, cfg.Env)
	rootHandler := handler.NewRootHandler(handler.ServiceInfo{
		Server:      cfg.ServerName,
		Port:        cfg.Port,
		Environment: cfg.Env,
		Version:     config.Version,
		DBHost:      cfg.Postgres.Host,
		DBPort:      cfg.Postgres.Port,
		DBName:      cfg.Postgres.Database,
	})

	// --- User routes (the public API surface is rate limited) ---
	apiGroup := e.Group("/api", middleware.RateLimit(limiter, cfg.ServerName, log))
	users := apiGroup.Group("/users")
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.GET("/email/:email", userHandler.GetByEmail)
	users.POST("", userHandler.Create)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Health probes (no rate limit) ---
	e.GET("/health", healthHandler.Basic)
	e.GET("/health/detailed", healthHandler.Detailed)

	// --- Service banner & info ---
	e.GET("/", rootHandler.Banner)
	e.GET("/info", rootHandler.Info)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
