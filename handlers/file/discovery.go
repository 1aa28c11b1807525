package file

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/saikumarreddyappidi/Education/database"
	"github.com/saikumarreddyappidi/Education/services"
	"github.com/saikumarreddyappidi/Education/utils/response"
)

// SearchByStaff lists one teacher's shared files, addressed by staff
// registration number. Open to any authenticated user.
func (h *FileHandler) SearchByStaff(c *fiber.Ctx) error {
	if _, err := requireUser(c); err != nil {
		return err
	}

	staffID := c.Params("staffId")
	staff, err := h.store.GetStaffByRegistrationNumber(c.Context(), staffID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return response.NotFound(c, "Staff not found for provided ID")
		}
		return response.InternalServerError(c, "Server error while searching staff files")
	}

	files, err := h.store.ListFiles(c.Context(), services.DiscoveryFilter(staff))
	if err != nil {
		return response.InternalServerError(c, "Server error while searching staff files")
	}

	return response.Success(c, fiber.Map{
		"teacherInfo": fiber.Map{
			"name":        staff.RegistrationNumber,
			"subject":     staff.Subject,
			"totalFiles":  len(files),
			"teacherCode": staff.TeacherCode,
		},
		"files": files,
	})
}

// Save clones a shared file into the calling student's account.
func (h *FileHandler) Save(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid file id")
	}

	clone, err := h.content.SaveFile(c.Context(), user, id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrForbidden):
			return response.Forbidden(c, "Only students can save shared files")
		case errors.Is(err, services.ErrNotShared):
			return response.NotFound(c, "Shared file not found")
		default:
			return notFoundOr(c, err, "Shared file not found")
		}
	}
	return response.Created(c, clone)
}
