package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rashmods/helpdesk/internal/domain"

	apperrors "github.com/rashmods/helpdesk/pkg/util/errorutil"
)

// RequireModerator ensures the principal carries the moderator role. The
// analytics dashboard is the only moderator-visible surface.
func RequireModerator() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.Role != domain.RoleModerator {
			return apperrors.NewForbidden("moderator role required")
		}
		return c.Next()
	}
}
