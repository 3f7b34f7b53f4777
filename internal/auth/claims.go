package auth

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// A token carries either a user_id or a supplier_id claim, never both.
// These helpers read the parsed token the jwt middleware stores in
// c.Locals("user") and are shared by every protected handler.

// UserIDFromCtx extracts the user_id claim from the request token.
func UserIDFromCtx(c *fiber.Ctx) (int, error) {
	return claimFromCtx(c, "user_id")
}

// SupplierIDFromCtx extracts the supplier_id claim from the request token.
func SupplierIDFromCtx(c *fiber.Ctx) (int, error) {
	return claimFromCtx(c, "supplier_id")
}

func claimFromCtx(c *fiber.Ctx, name string) (int, error) {
	u := c.Locals("user")
	if u == nil {
		return 0, fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	raw, ok := claims[name]
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	switch v := raw.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		id, err := strconv.Atoi(v)
		if err != nil {
			return 0, fiber.ErrUnauthorized
		}
		return id, nil
	default:
		return 0, fiber.ErrUnauthorized
	}
}
