package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func tokenClaims(c *fiber.Ctx, key string) (jwt.MapClaims, bool) {
	token, ok := c.Locals(key).(*jwt.Token)
	if !ok || token == nil {
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}

// StaffClaims returns the claims of the verified staff token, if any.
func StaffClaims(c *fiber.Ctx) (jwt.MapClaims, bool) {
	return tokenClaims(c, StaffContextKey)
}

// EmployeeID returns the employee id carried by the staff token.
func EmployeeID(c *fiber.Ctx) (uint, bool) {
	claims, ok := StaffClaims(c)
	if !ok {
		return 0, false
	}
	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// UserID returns the end-user id from the "sub" claim of the user token.
func UserID(c *fiber.Ctx) (uint, bool) {
	claims, ok := tokenClaims(c, UserContextKey)
	if !ok {
		return 0, false
	}
	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// ActorID identifies the caller for logs: "staff:<id>", "user:<id>" or "".
func ActorID(c *fiber.Ctx) string {
	if id, ok := EmployeeID(c); ok {
		return "staff:" + strconv.FormatUint(uint64(id), 10)
	}
	if id, ok := UserID(c); ok {
		return "user:" + strconv.FormatUint(uint64(id), 10)
	}
	return ""
}
