package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/aseguran/reporting-system/docs"
	"github.com/aseguran/reporting-system/internal/api/handler"
	"github.com/aseguran/reporting-system/internal/api/middleware"
	"github.com/aseguran/reporting-system/internal/core/domain"
	"github.com/aseguran/reporting-system/internal/core/service"
	mongodb "github.com/aseguran/reporting-system/internal/infrastructure/db/mongo"
	redisdb "github.com/aseguran/reporting-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("reporting"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	employeeRepo := mongodb.NewEmployeeRepository(db)
	reportRepo := mongodb.NewReportRepository(db)
	throttle := redisdb.NewLoginThrottle(rdb)

	authService := service.NewAuthService(userRepo, throttle, jwtSecret, 24*time.Hour, log)
	employeeService := service.NewEmployeeService(employeeRepo, userRepo, log)
	reportService := service.NewReportService(reportRepo, employeeRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	reportHandler := handler.NewReportHandler(reportService)
	dashboardHandler := handler.NewDashboardHandler()

	authMiddleware := middleware.Auth(jwtSecret)

	// --- Public routes ---
	e.POST("/api/register", authHandler.Register)
	e.POST("/api/login", authHandler.Login)

	// --- Protected routes ---
	protected := e.Group("/api", authMiddleware)
	protected.GET("/dashboard", dashboardHandler.Show)
	protected.GET("/employees", employeeHandler.List)
	protected.POST("/employees", employeeHandler.Create, middleware.RequireRole(domain.RoleLeader))
	protected.POST("/reports", reportHandler.Submit)
	protected.GET("/reports", reportHandler.List)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
