package user

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Identity is the authenticated caller as carried by the verified JWT.
type Identity struct {
	ID    int
	Email string
	Role  Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// GetIdentityFromCtx reads the claims the JWT middleware stored in
// c.Locals("user"). Requests without a usable user_id claim are unauthorized.
func GetIdentityFromCtx(c *fiber.Ctx) (Identity, error) {
	tok, ok := c.Locals("user").(*jwt.Token)
	if !ok || tok == nil {
		return Identity{}, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, fiber.ErrUnauthorized
	}

	id, ok := intClaim(claims["user_id"])
	if !ok || id <= 0 {
		return Identity{}, fiber.ErrUnauthorized
	}

	ident := Identity{ID: id, Role: RoleUser}
	if email, ok := claims["email"].(string); ok {
		ident.Email = email
	}
	if role, ok := claims["role"].(string); ok && Role(role) == RoleAdmin {
		ident.Role = RoleAdmin
	}
	return ident, nil
}

// GetUserIDFromCtx is a shorthand for handlers that only need the caller id.
func GetUserIDFromCtx(c *fiber.Ctx) (int, error) {
	ident, err := GetIdentityFromCtx(c)
	if err != nil {
		return 0, err
	}
	return ident.ID, nil
}

func intClaim(raw any) (int, bool) {
	switch v := raw.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case string:
		id, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}
