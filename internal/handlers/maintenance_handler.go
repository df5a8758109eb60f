package handlers

import (
	"context"

	"shoppinglist/internal/worker"

	"github.com/gofiber/fiber/v2"
)

// CleanupRunner runs the product cleanup once.
type CleanupRunner interface {
	Run(ctx context.Context) worker.Report
}

// MaintenanceHandler exposes on-demand maintenance tasks.
type MaintenanceHandler struct {
	cleanup CleanupRunner
}

// NewMaintenanceHandler creates a new MaintenanceHandler.
func NewMaintenanceHandler(cleanup CleanupRunner) *MaintenanceHandler {
	return &MaintenanceHandler{
		cleanup: cleanup,
	}
}

// RegisterRoutes registers the maintenance routes on router, which the caller
// guards with middleware.AuthRequired.
func (h *MaintenanceHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/cleanup", h.HandleCleanup)
}

// HandleCleanup runs the cleanup now and returns its report.
func (h *MaintenanceHandler) HandleCleanup(c *fiber.Ctx) error {
	report := h.cleanup.Run(c.UserContext())
	if report.Result != worker.ResultSuccess {
		return c.Status(fiber.StatusInternalServerError).JSON(report)
	}
	return c.JSON(report)
}
