package http

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/weatherapp/backend/internal/domain"
	"github.com/weatherapp/backend/internal/service"
)

const userLocalsKey = "user"

// RequireAuth verifies the bearer token and stores the user in the request locals.
// Requests without a valid token stop here with 401.
func RequireAuth(authSvc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := strings.TrimSpace(strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer "))

		user, err := authSvc.Authenticate(c.UserContext(), token)
		if err != nil {
			log.Printf("Authentication failed: %v", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Please authenticate")
		}

		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

// currentUser returns the authenticated user set by RequireAuth
func currentUser(c *fiber.Ctx) domain.User {
	user, _ := c.Locals(userLocalsKey).(domain.User)
	return user
}
