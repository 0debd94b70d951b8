package middleware

import (
	"errors"
	"slices"

	"github.com/Sophavisnuka/real-estate-agency/internal/config"
	"github.com/Sophavisnuka/real-estate-agency/internal/dto"
	"github.com/Sophavisnuka/real-estate-agency/internal/services"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Locals keys holding the verified *jwt.Token of each token kind.
const (
	StaffContextKey = "staff"
	UserContextKey  = "user"
)

const (
	errCodeExpired      = "TOKEN_EXPIRED"
	errCodeUnauthorized = "UNAUTHORIZED"
)

// StaffProtected accepts staff access tokens. When roles are given the
// token's role must be one of them.
func StaffProtected(cfg *config.Config, roles ...string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.JWTSecret)},
		ContextKey: StaffContextKey,
		SuccessHandler: func(c *fiber.Ctx) error {
			claims, ok := tokenClaims(c, StaffContextKey)
			if !ok || claims["typ"] != services.TokenTypeStaff {
				return unauthorized(c, errCodeUnauthorized, "Unauthorized: staff token required")
			}
			if len(roles) > 0 {
				role, _ := claims["role"].(string)
				if !slices.Contains(roles, role) {
					return c.Status(fiber.StatusForbidden).JSON(dto.Response{
						Success: false,
						Message: "Forbidden: insufficient role",
					})
				}
			}
			return c.Next()
		},
		ErrorHandler: tokenErrorHandler,
	})
}

// UserProtected accepts end-user tokens issued after Google sign-in.
func UserProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.UserJWTSecret)},
		ContextKey: UserContextKey,
		SuccessHandler: func(c *fiber.Ctx) error {
			claims, ok := tokenClaims(c, UserContextKey)
			if !ok || claims["typ"] != services.TokenTypeUser {
				return unauthorized(c, errCodeUnauthorized, "Unauthorized: user token required")
			}
			return c.Next()
		},
		ErrorHandler: tokenErrorHandler,
	})
}

func tokenErrorHandler(c *fiber.Ctx, err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return unauthorized(c, errCodeExpired, "Unauthorized: token expired")
	}
	return unauthorized(c, errCodeUnauthorized, "Unauthorized: invalid or missing token")
}

func unauthorized(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.Response{
		Success: false,
		Message: message,
		Error:   code,
	})
}
