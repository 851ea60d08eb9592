package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/purnachandra/internal/config"
	"github.com/example/purnachandra/internal/utils"
)

const principalContextKey = "currentPrincipal"

// AuthMiddleware validates identity-provider tokens and loads the principal into context.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		principal, err := utils.ParseToken(cfg.AuthJWTSecret, cfg.AuthIssuer, strings.TrimSpace(parts[1]))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(principalContextKey, principal)
		return c.Next()
	}
}

// RequireRole rejects authenticated callers that lack the role. It must run after AuthMiddleware.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := GetPrincipal(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}
		if !principal.HasRole(role) {
			return fiber.NewError(fiber.StatusForbidden, "forbidden")
		}
		return c.Next()
	}
}

// GetPrincipal extracts the authenticated principal from context.
func GetPrincipal(c *fiber.Ctx) (utils.Principal, bool) {
	principal, ok := c.Locals(principalContextKey).(utils.Principal)
	return principal, ok
}
