package middleware

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/wichananm65/storefront-backend/internal/httpx"
	"github.com/wichananm65/storefront-backend/internal/user"
)

// JWT verifies the bearer token and stores it in c.Locals("user").
// Missing, malformed and expired tokens all answer 401.
func JWT(secret []byte) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    secret,
		SigningMethod: "HS256",
		ContextKey:    "user",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return httpx.Fail(c, fiber.StatusUnauthorized, "authentication required")
		},
	})
}

// RequireAdmin lets only administrative identities through.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := user.GetIdentityFromCtx(c)
		if err != nil {
			return httpx.Fail(c, fiber.StatusUnauthorized, "authentication required")
		}
		if !ident.IsAdmin() {
			return httpx.Fail(c, fiber.StatusForbidden, "admin privileges required")
		}
		return c.Next()
	}
}
