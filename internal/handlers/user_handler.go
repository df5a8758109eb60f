package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"shoppinglist/internal/models"
	"shoppinglist/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	service *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Get("/:id", h.HandleGetUserByID)
	userRoutes.Post("/", h.HandleCreateUsers)
	userRoutes.Put("/:id", h.HandleUpdateUser)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
}

func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers()
	if err != nil {
		return respondError(c, err, "retrieve users")
	}
	return c.JSON(users)
}

func (h *UserHandler) HandleGetUserByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c, err)
	}
	user, err := h.service.GetUser(id)
	if err != nil {
		return respondError(c, err, "retrieve user")
	}
	return c.JSON(user)
}

// HandleCreateUsers accepts either a single user object or an array of users.
func (h *UserHandler) HandleCreateUsers(c *fiber.Ctx) error {
	var users []models.User
	body := bytes.TrimSpace(c.Body())
	if len(body) > 0 && body[0] == '{' {
		var user models.User
		if err := json.Unmarshal(body, &user); err != nil {
			return badBody(c, err)
		}
		users = []models.User{user}
	} else if err := json.Unmarshal(body, &users); err != nil {
		return badBody(c, err)
	}
	if len(users) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "At least one user is required.",
		})
	}

	created, err := h.service.CreateUsers(users)
	if err != nil {
		return respondError(c, err, "create users")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c, err)
	}
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return badBody(c, err)
	}
	if err := h.service.UpdateUser(id, &user); err != nil {
		return respondError(c, err, "update user")
	}
	return c.JSON(user)
}

func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c, err)
	}
	if err := h.service.DeleteUser(id); err != nil {
		return respondError(c, err, "delete user")
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("User %d deleted successfully", id),
	})
}
