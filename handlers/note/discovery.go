package note

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/saikumarreddyappidi/Education/database"
	"github.com/saikumarreddyappidi/Education/services"
	"github.com/saikumarreddyappidi/Education/utils/response"
)

// SearchByStaff lists one teacher's shared material, addressed by staff
// registration number. This is the public discovery path: any authenticated
// user may call it, connected to the teacher or not. The response bundles the
// teacher's shared notes, files and whiteboards under a teacherInfo header.
func (h *NoteHandler) SearchByStaff(c *fiber.Ctx) error {
	if _, err := requireUser(c); err != nil {
		return err
	}

	staffID := c.Params("staffId")
	staff, err := h.store.GetStaffByRegistrationNumber(c.Context(), staffID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return response.NotFound(c, "Staff not found")
		}
		return response.InternalServerError(c, "Server error")
	}

	filter := services.DiscoveryFilter(staff)

	notes, err := h.store.ListNotes(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Server error")
	}
	files, err := h.store.ListFiles(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Server error")
	}
	boards, err := h.store.ListWhiteboards(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Server error")
	}

	subject := staff.Subject
	if subject == "" {
		subject = "Not specified"
	}

	return response.Success(c, fiber.Map{
		"teacherInfo": fiber.Map{
			"name":             staff.RegistrationNumber,
			"subject":          subject,
			"totalNotes":       len(notes),
			"totalPdfs":        len(files),
			"totalWhiteboards": len(boards),
			"teacherCode":      staff.TeacherCode,
		},
		"notes":       notes,
		"pdfs":        files,
		"whiteboards": boards,
	})
}
