package note

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"

	"github.com/saikumarreddyappidi/Education/model"
	"github.com/saikumarreddyappidi/Education/services"
	"github.com/saikumarreddyappidi/Education/utils/response"
	"github.com/saikumarreddyappidi/Education/utils/validation"
)

// List returns the caller's feed: own notes, plus shared notes from connected
// teachers for students. Newest update first. Also mounted at /my.
func (h *NoteHandler) List(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	notes, err := h.store.ListNotes(c.Context(), services.FeedFilter(user))
	if err != nil {
		return response.InternalServerError(c, "Server error")
	}
	return response.Success(c, notes)
}

// Create creates a note owned by the caller. Only staff can share; a shared
// note is stamped with the author's teacher code.
func (h *NoteHandler) Create(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	var req NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	isShared, code := services.SharingFields(user, req.wantsShared())
	note := &model.Note{
		Title:       req.Title,
		Content:     req.Content,
		Tags:        pq.StringArray(req.Tags),
		AuthorID:    user.ID,
		AuthorName:  user.RegistrationNumber,
		IsShared:    isShared,
		TeacherCode: code,
	}
	if note.Tags == nil {
		note.Tags = pq.StringArray{}
	}

	if err := h.store.CreateNote(c.Context(), note); err != nil {
		return response.InternalServerError(c, "Server error")
	}
	return response.Created(c, note)
}

// Update rewrites a note's content and sharing state. Owner only.
func (h *NoteHandler) Update(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid note id")
	}

	var req NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	note, err := h.store.GetNoteByID(c.Context(), id)
	if err != nil {
		return notFoundOr(c, err, "Note not found")
	}
	if !services.CanMutate(user, note.AuthorID) {
		return response.Forbidden(c, "Not authorized to update this note")
	}

	note.Title = req.Title
	note.Content = req.Content
	note.Tags = pq.StringArray(req.Tags)
	if note.Tags == nil {
		note.Tags = pq.StringArray{}
	}
	if user.IsStaff() {
		note.IsShared, note.TeacherCode = services.SharingFields(user, req.wantsShared())
	}

	if err := h.store.SaveNote(c.Context(), note); err != nil {
		return response.InternalServerError(c, "Server error")
	}
	return response.Success(c, note)
}

// Delete removes a note. Owner only. Copies saved by students are independent
// rows and survive.
func (h *NoteHandler) Delete(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid note id")
	}

	note, err := h.store.GetNoteByID(c.Context(), id)
	if err != nil {
		return notFoundOr(c, err, "Note not found")
	}
	if !services.CanMutate(user, note.AuthorID) {
		return response.Forbidden(c, "Not authorized to delete this note")
	}

	if err := h.store.DeleteNote(c.Context(), id); err != nil {
		return response.InternalServerError(c, "Server error")
	}
	return response.SuccessWithMessage(c, "Note deleted successfully", nil)
}

// Save clones a shared note into the calling student's account.
func (h *NoteHandler) Save(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid note id")
	}

	clone, err := h.content.SaveNote(c.Context(), user, id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrForbidden):
			return response.Forbidden(c, "Only students can save staff notes")
		case errors.Is(err, services.ErrNotShared):
			return response.NotFound(c, "Note not found or not shared")
		default:
			return notFoundOr(c, err, "Note not found or not shared")
		}
	}
	return response.Created(c, clone)
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
