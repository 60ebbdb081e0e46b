package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	userdomain "github.com/plataforma/labstock/internal/user/domain"
	"github.com/plataforma/labstock/pkg/auth"
)

// Locals keys under which the verified identity is stored for handlers
// further down the chain.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
	LocalRole     = "role"
)

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// storeIdentity records the verified claims in the request locals and
// forwards them as headers so the platform services can resolve the caller
// without re-validating the token.
func storeIdentity(c *fiber.Ctx, claims *auth.Claims) {
	c.Locals(LocalUserID, claims.UserID)
	c.Locals(LocalUsername, claims.Username)
	c.Locals(LocalRole, claims.Role)

	c.Request().Header.Set("X-User-ID", strconv.FormatUint(uint64(claims.UserID), 10))
	c.Request().Header.Set("X-Username", claims.Username)
	c.Request().Header.Set("X-User-Role", claims.Role)
}

// AuthMiddleware rejects requests that do not carry a valid platform token.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "bearer token required",
			})
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}

		storeIdentity(c, claims)
		return c.Next()
	}
}

// RequireRole admits only callers whose verified role is in the allow list.
// It must run after AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalRole).(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient role",
		})
	}
}

// AdminMiddleware admits platform administrators only.
func AdminMiddleware() fiber.Handler {
	return RequireRole(userdomain.RoleAdmin)
}

// OptionalAuthMiddleware forwards the caller identity when a valid token is
// present but lets anonymous requests through untouched.
func OptionalAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token, ok := bearerToken(c); ok {
			if claims, err := auth.ValidateToken(token); err == nil {
				storeIdentity(c, claims)
			}
		}
		return c.Next()
	}
}
