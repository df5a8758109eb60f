package handlers

import (
	"fmt"

	"shoppinglist/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)

	router.Get("/categories/:id/products", h.HandleGetProductsByCategory)
}

// HandleGetProducts lists products, newest first. The optional category_id
// query parameter restricts the list to one category.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	if raw := c.Query("category_id"); raw != "" {
		categoryID := c.QueryInt("category_id")
		if categoryID <= 0 {
			return badID(c, fmt.Errorf("invalid category_id %q", raw))
		}
		return h.productsByCategory(c, uint(categoryID))
	}

	products, err := h.service.ListProducts()
	if err != nil {
		return respondError(c, err, "retrieve products")
	}
	return c.JSON(products)
}

// HandleGetProductsByCategory lists the products of the category in :id.
func (h *ProductHandler) HandleGetProductsByCategory(c *fiber.Ctx) error {
	categoryID, err := parseID(c)
	if err != nil {
		return badID(c, err)
	}
	return h.productsByCategory(c, categoryID)
}

func (h *ProductHandler) productsByCategory(c *fiber.Ctx, categoryID uint) error {
	products, err := h.service.ListProductsByCategory(categoryID)
	if err != nil {
		return respondError(c, err, "retrieve products")
	}
	return c.JSON(products)
}

// HandleGetProductByID returns a product with its category.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c, err)
	}
	product, err := h.service.GetProductDetails(id)
	if err != nil {
		return respondError(c, err, "retrieve product")
	}
	return c.JSON(product)
}

// HandleCreateProduct adds a product from the submitted form.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var form services.ProductForm
	if err := c.BodyParser(&form); err != nil {
		return badBody(c, err)
	}
	form.ID = 0

	product, err := h.service.SaveProduct(form)
	if err != nil {
		return respondError(c, err, "create product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct overwrites the product in :id with the submitted form.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c, err)
	}
	var form services.ProductForm
	if err := c.BodyParser(&form); err != nil {
		return badBody(c, err)
	}
	form.ID = id

	product, err := h.service.SaveProduct(form)
	if err != nil {
		return respondError(c, err, "update product")
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes the product in :id.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c, err)
	}
	if err := h.service.DeleteProduct(id); err != nil {
		return respondError(c, err, "delete product")
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %d deleted successfully", id),
	})
}
