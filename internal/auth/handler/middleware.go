package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/taskhive/task-service/internal/auth/domain"
	apperror "github.com/taskhive/task-service/internal/errors"
)

// CurrentUserKey is the c.Locals key under which RequireAuth stores the
// resolved user.
const CurrentUserKey = "currentUser"

const bearerPrefix = "Bearer "

// RequireAuth gates protected routes. Missing, malformed, tampered, expired
// and orphaned tokens all produce the same 401 response.
func (h *AuthHandler) RequireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		return unauthenticated(c)
	}

	user, err := h.userService.ResolveToken(c.UserContext(), strings.TrimSpace(header[len(bearerPrefix):]))
	if err != nil {
		if errors.Is(err, apperror.ErrStoreUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "service unavailable"})
		}
		return unauthenticated(c)
	}

	c.Locals(CurrentUserKey, user)

	return c.Next()
}

// CurrentUser returns the user stashed by RequireAuth, or nil when the route
// was not gated.
func CurrentUser(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(CurrentUserKey).(*domain.User)
	return user
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
}
