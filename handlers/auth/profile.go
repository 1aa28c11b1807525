package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/saikumarreddyappidi/Education/utils/middleware"
	"github.com/saikumarreddyappidi/Education/utils/response"
)

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}
	return response.Success(c, fiber.Map{"user": toUserResponse(user)})
}
