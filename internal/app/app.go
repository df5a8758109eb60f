// Package app wires repositories, services, handlers and the cleanup worker
// into a Fiber application.
package app

import (
	"log/slog"
	"time"

	"shoppinglist/internal/events"
	"shoppinglist/internal/handlers"
	"shoppinglist/internal/metrics"
	"shoppinglist/internal/middleware"
	"shoppinglist/internal/repositories"
	"shoppinglist/internal/services"
	"shoppinglist/internal/worker"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// MaintenanceTokenTTL is the lifetime of tokens minted for maintenance calls.
const MaintenanceTokenTTL = 24 * time.Hour

// Options configures New.
type Options struct {
	DB              *gorm.DB
	Notifier        *events.Notifier // may be nil
	Metrics         *metrics.Metrics // may be nil
	Logger          *slog.Logger     // may be nil
	JWTSecret       string
	CleanupInterval time.Duration
	// RequestLogging enables fiber's access log.
	RequestLogging bool
}

// App is the assembled service.
type App struct {
	Fiber   *fiber.App
	Auth    *services.AuthService
	Cleanup *worker.CleanupWorker
}

// New builds the application.
func New(opts Options) *App {
	productRepo := repositories.NewGORMProductRepository(opts.DB)
	categoryRepo := repositories.NewGORMCategoryRepository(opts.DB)
	userRepo := repositories.NewGORMUserRepository(opts.DB)

	productService := services.NewProductService(productRepo, categoryRepo, opts.Notifier)
	categoryService := services.NewCategoryService(categoryRepo, opts.Notifier)
	userService := services.NewUserService(userRepo, opts.Notifier)
	authService := services.NewAuthService(opts.JWTSecret, MaintenanceTokenTTL)

	cleanup := worker.NewCleanupWorker(productRepo, opts.Notifier, opts.Metrics, opts.Logger, opts.CleanupInterval)

	f := fiber.New(fiber.Config{AppName: "shoppinglist"})
	f.Use(recover.New())
	if opts.RequestLogging {
		f.Use(logger.New())
	}
	if opts.Metrics != nil {
		f.Use(opts.Metrics.Middleware())
		f.Get("/metrics", adaptor.HTTPHandler(opts.Metrics.Handler()))
	}

	f.Get("/health", healthHandler(opts.DB))

	apiV1 := f.Group("/api/v1")
	handlers.NewProductHandler(productService).RegisterRoutes(apiV1)
	handlers.NewCategoryHandler(categoryService).RegisterRoutes(apiV1)
	handlers.NewUserHandler(userService).RegisterRoutes(apiV1)

	maintenance := apiV1.Group("/maintenance", middleware.AuthRequired(authService))
	handlers.NewMaintenanceHandler(cleanup).RegisterRoutes(maintenance)

	return &App{
		Fiber:   f,
		Auth:    authService,
		Cleanup: cleanup,
	}
}

func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, code := "healthy", fiber.StatusOK
		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			status, code = "unhealthy", fiber.StatusServiceUnavailable
			dbStatus = err.Error()
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"time":     time.Now().Format(time.RFC3339),
			"database": dbStatus,
		})
	}
}
