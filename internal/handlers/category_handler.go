package handlers

import (
	"fmt"

	"shoppinglist/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service: service,
	}
}

// RegisterRoutes registers the category routes with the Fiber app.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategoryByID)
	categoryRoutes.Post("/", h.HandleCreateCategory)
	categoryRoutes.Put("/:id", h.HandleUpdateCategory)
	categoryRoutes.Delete("/:id", h.HandleDeleteCategory)
}

// HandleGetCategories lists categories in name order.
func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories()
	if err != nil {
		return respondError(c, err, "retrieve categories")
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) HandleGetCategoryByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c, err)
	}
	category, err := h.service.GetCategory(id)
	if err != nil {
		return respondError(c, err, "retrieve category")
	}
	return c.JSON(category)
}

func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var form services.CategoryForm
	if err := c.BodyParser(&form); err != nil {
		return badBody(c, err)
	}
	form.ID = 0

	category, err := h.service.SaveCategory(form)
	if err != nil {
		return respondError(c, err, "create category")
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c, err)
	}
	var form services.CategoryForm
	if err := c.BodyParser(&form); err != nil {
		return badBody(c, err)
	}
	form.ID = id

	category, err := h.service.SaveCategory(form)
	if err != nil {
		return respondError(c, err, "update category")
	}
	return c.JSON(category)
}

// HandleDeleteCategory deletes a category. Its products are kept and become
// uncategorised.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c, err)
	}
	if err := h.service.DeleteCategory(id); err != nil {
		return respondError(c, err, "delete category")
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Category %d deleted successfully", id),
	})
}
