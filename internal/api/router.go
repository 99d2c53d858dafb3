package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/staffhub/workforce-system/docs"
	"github.com/staffhub/workforce-system/internal/api/handler"
	"github.com/staffhub/workforce-system/internal/api/middleware"
	"github.com/staffhub/workforce-system/internal/core/domain"
	"github.com/staffhub/workforce-system/internal/core/ports"
)

// Deps carries the already-constructed collaborators the router wires into
// handlers. Construction and lifecycle (scheduler start/stop, dispatcher
// drain) belong to the composition root, not the router.
type Deps struct {
	DB        *mongo.Database
	Redis     *redis.Client
	JWTSecret string

	Revocations middleware.RevocationChecker
	Auth        ports.AuthService
	Employees   ports.EmployeeService
	Engine      ports.SnapshotEngine
	Catalog     ports.SnapshotCatalog
	Audit       ports.AuditRecorder
	AuditRepo   ports.AuditRepository

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("workforce"))

	authMW := middleware.Auth(d.JWTSecret, d.Revocations, d.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Audit)
	employeeHandler := handler.NewEmployeeHandler(d.Employees, d.Audit)
	snapshotHandler := handler.NewSnapshotHandler(d.Engine, d.Catalog, d.Audit)
	auditHandler := handler.NewAuditHandler(d.AuditRepo)

	// --- Auth routes ---
	auth := e.Group("/v1/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, authMW)
	auth.GET("/me", authHandler.Whoami, authMW)

	// --- Employee records (protected) ---
	employees := e.Group("/v1/employees", authMW)
	employees.POST("", employeeHandler.Create, middleware.RBAC(d.Audit, domain.RoleAdmin, domain.RoleHR))
	employees.GET("", employeeHandler.List)
	employees.GET("/:id", employeeHandler.Get)
	employees.PUT("/:id", employeeHandler.Update, middleware.RBAC(d.Audit, domain.RoleAdmin, domain.RoleHR))
	employees.DELETE("/:id", employeeHandler.Delete, middleware.RBAC(d.Audit, domain.RoleAdmin))

	// --- Operator controls (admin only) ---
	admin := e.Group("/v1/admin", authMW, middleware.RBAC(d.Audit, domain.RoleAdmin))
	admin.POST("/snapshots", snapshotHandler.Create)
	admin.GET("/snapshots", snapshotHandler.List)
	admin.DELETE("/snapshots/:id", snapshotHandler.Delete)
	admin.POST("/scheduler/start", snapshotHandler.StartScheduler)
	admin.GET("/scheduler/status", snapshotHandler.SchedulerStatus)
	admin.GET("/audit", auditHandler.Recent)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.DB, d.Redis, d.Engine)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
