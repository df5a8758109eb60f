package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shoppinglist/internal/middleware"
	"shoppinglist/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthRequired(t *testing.T) {
	authService := services.NewAuthService("test_jwt_secret", time.Hour)
	app := fiber.New()
	app.Get("/secret", middleware.AuthRequired(authService), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("subject").(string))
	})

	token, err := authService.IssueToken("ops")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/secret", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
