package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/saikumarreddyappidi/Education/database"
	authutil "github.com/saikumarreddyappidi/Education/utils/auth"
	"github.com/saikumarreddyappidi/Education/utils/response"
)

// LoginRequest represents a user login request
type LoginRequest struct {
	RegistrationNumber string `json:"registrationNumber" validate:"required"`
	Password           string `json:"password" validate:"required"`
}

// Login handles user login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.RegistrationNumber == "" || req.Password == "" {
		return response.BadRequest(c, "Registration number and password are required")
	}

	ip := c.IP()

	user, err := h.store.GetUserByRegistrationNumber(c.Context(), req.RegistrationNumber)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			// Record failed attempt even if user not found
			if h.bruteForceProtection != nil {
				h.bruteForceProtection.RecordFailedAttempt(c, ip)
			}
			return response.Unauthorized(c, "Invalid credentials")
		}
		return response.InternalServerError(c, "Server error during login")
	}

	if err := authutil.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		if h.bruteForceProtection != nil {
			h.bruteForceProtection.RecordFailedAttempt(c, ip)
		}
		return response.Unauthorized(c, "Invalid credentials")
	}

	// Clear failed attempts on successful login
	if h.bruteForceProtection != nil {
		h.bruteForceProtection.RecordSuccessfulAttempt(c, ip)
	}

	token, err := h.jwtManager.GenerateToken(user.ID, user.RegistrationNumber, user.Role)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate token")
	}

	return response.Success(c, AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    toUserResponse(user),
	})
}
