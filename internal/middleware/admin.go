package middleware

import (
	"crypto/subtle"

	"github.com/Sophavisnuka/real-estate-agency/internal/config"
	"github.com/Sophavisnuka/real-estate-agency/internal/models"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired lets a request through when it carries the bootstrap
// X-Admin-Token header, or otherwise a staff token with the admin role.
// The header is what allows the first account to be registered.
func AdminRequired(cfg *config.Config) fiber.Handler {
	staff := StaffProtected(cfg, models.RoleAdmin)

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" {
			header := c.Get("X-Admin-Token")
			if header != "" && subtle.ConstantTimeCompare([]byte(header), []byte(cfg.AdminToken)) == 1 {
				return c.Next()
			}
		}
		return staff(c)
	}
}
