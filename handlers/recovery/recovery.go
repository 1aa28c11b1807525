package recovery

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/saikumarreddyappidi/Education/services"
	"github.com/saikumarreddyappidi/Education/utils/middleware"
	"github.com/saikumarreddyappidi/Education/utils/response"
)

// RecoveryHandler exposes the request-recovery dumps captured for the caller.
type RecoveryHandler struct {
	recovery *services.RecoveryService
}

// NewRecoveryHandler creates a new recovery handler. recovery may be nil when
// capture is disabled.
func NewRecoveryHandler(recovery *services.RecoveryService) *RecoveryHandler {
	return &RecoveryHandler{recovery: recovery}
}

// List returns every recovery dump belonging to the caller.
func (h *RecoveryHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	if h.recovery == nil {
		return response.Success(c, fiber.Map{"recoveryData": []services.RecoveryRecord{}})
	}

	records, err := h.recovery.ListForUser(userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve recovery data")
	}
	return response.Success(c, fiber.Map{"recoveryData": records})
}

// Delete removes one of the caller's recovery dumps. Files belonging to other
// users are rejected.
func (h *RecoveryHandler) Delete(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	if h.recovery == nil {
		return response.NotFound(c, "Recovery file not found or could not be deleted")
	}

	filename := c.Params("filename")
	if err := h.recovery.Delete(userID, filename); err != nil {
		switch {
		case errors.Is(err, services.ErrForbidden):
			return response.Forbidden(c, "Access denied to this recovery file")
		case errors.Is(err, services.ErrRecoveryFileNotFound):
			return response.NotFound(c, "Recovery file not found or could not be deleted")
		default:
			return response.InternalServerError(c, "Failed to delete recovery data")
		}
	}
	return response.SuccessWithMessage(c, "Recovery data deleted successfully", nil)
}
