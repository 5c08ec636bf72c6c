package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/unievent/unievent-backend/internal/dto"
	"github.com/unievent/unievent-backend/internal/identity"
)

// AdminRequired gates a route group on the admin role. The role comes from
// the identity resolver, which re-reads it from the database, so a stale
// claim in a long-lived token cannot grant admin access.
func AdminRequired(resolver *identity.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := resolver.Resolve(c)
		if !p.Authenticated {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Code: "auth_required", Message: "Unauthorized",
			})
		}
		if !p.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Code: "admin_required", Message: "Admin access required",
			})
		}
		return c.Next()
	}
}
