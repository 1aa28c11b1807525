package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/saikumarreddyappidi/Education/services"
	"github.com/saikumarreddyappidi/Education/utils/middleware"
	"github.com/saikumarreddyappidi/Education/utils/response"
)

// ConnectRequest carries the teacher identifier for a connect call. Either
// field is enough; the code is tried first.
type ConnectRequest struct {
	TeacherCode string `json:"teacherCode,omitempty"`
	StaffID     string `json:"staffId,omitempty"`
}

// ConnectResponse wraps the linking confirmation payload.
type ConnectResponse struct {
	Message string `json:"message"`
	*services.LinkResult
}

// ConnectTeacher links the caller to a teacher by code or registration
// number. Connecting twice to the same teacher is a no-op success.
func (h *AuthHandler) ConnectTeacher(c *fiber.Ctx) error {
	return h.connect(c, true)
}

// ConnectStaff is the registration-number-only variant; a teacherCode in the
// body is ignored.
func (h *AuthHandler) ConnectStaff(c *fiber.Ctx) error {
	return h.connect(c, false)
}

func (h *AuthHandler) connect(c *fiber.Ctx, byCode bool) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req ConnectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.TeacherCode = strings.TrimSpace(req.TeacherCode)
	req.StaffID = strings.TrimSpace(req.StaffID)
	if !byCode {
		req.TeacherCode = ""
	}

	result, err := h.linking.Connect(c.Context(), userID, req.TeacherCode, req.StaffID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingIdentifier):
			return response.BadRequest(c, "Teacher code or staff ID is required")
		case errors.Is(err, services.ErrTeacherNotFound):
			return response.NotFound(c, "Teacher not found. Please check and try again.")
		case errors.Is(err, services.ErrNoSharingCode):
			return response.BadRequest(c, "Selected teacher does not have a sharing code yet.")
		default:
			return response.InternalServerError(c, "Server error while connecting to teacher")
		}
	}

	return response.Success(c, ConnectResponse{
		Message:    "Successfully connected to teacher",
		LinkResult: result,
	})
}
