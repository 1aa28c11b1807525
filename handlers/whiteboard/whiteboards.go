package whiteboard

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/saikumarreddyappidi/Education/database"
	"github.com/saikumarreddyappidi/Education/model"
	"github.com/saikumarreddyappidi/Education/services"
	"github.com/saikumarreddyappidi/Education/utils/middleware"
	"github.com/saikumarreddyappidi/Education/utils/response"
)

// WhiteboardHandler handles whiteboard drawings: CRUD, the shared feed and the
// save-to-account operation. Sharing works exactly like notes.
type WhiteboardHandler struct {
	store   database.Storage
	content *services.ContentService
}

// NewWhiteboardHandler creates a new whiteboard handler.
func NewWhiteboardHandler(store database.Storage) *WhiteboardHandler {
	return &WhiteboardHandler{
		store:   store,
		content: services.NewContentService(store),
	}
}

// WhiteboardRequest is the create/update payload.
type WhiteboardRequest struct {
	Title     string `json:"title"`
	ImageData string `json:"imageData"`
	IsShared  *bool  `json:"isShared,omitempty"`
}

// List returns the caller's whiteboard feed, newest update first.
func (h *WhiteboardHandler) List(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	boards, err := h.store.ListWhiteboards(c.Context(), services.FeedFilter(user))
	if err != nil {
		return response.InternalServerError(c, "Server error while fetching whiteboards")
	}
	return response.Success(c, boards)
}

// Create stores a new drawing owned by the caller.
func (h *WhiteboardHandler) Create(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	var req WhiteboardRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Title == "" || req.ImageData == "" {
		return response.BadRequest(c, "Title and image data are required")
	}

	wantsShared := req.IsShared != nil && *req.IsShared
	isShared, code := services.SharingFields(user, wantsShared)

	board := &model.Whiteboard{
		Title:       req.Title,
		ImageData:   req.ImageData,
		AuthorID:    user.ID,
		AuthorName:  user.RegistrationNumber,
		IsShared:    isShared,
		TeacherCode: code,
	}
	if err := h.store.CreateWhiteboard(c.Context(), board); err != nil {
		return response.InternalServerError(c, "Server error while creating whiteboard")
	}
	return response.Created(c, board)
}

// Update changes a drawing's title, image or sharing state. Owner only.
// Absent fields are left untouched.
func (h *WhiteboardHandler) Update(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid whiteboard id")
	}

	var req WhiteboardRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	board, err := h.store.GetWhiteboardByID(c.Context(), id)
	if err != nil {
		return notFoundOr(c, err, "Whiteboard not found")
	}
	if !services.CanMutate(user, board.AuthorID) {
		return response.Forbidden(c, "Not authorized to update this whiteboard")
	}

	if req.Title != "" {
		board.Title = req.Title
	}
	if req.ImageData != "" {
		board.ImageData = req.ImageData
	}
	if user.IsStaff() && req.IsShared != nil {
		board.IsShared, board.TeacherCode = services.SharingFields(user, *req.IsShared)
	}

	if err := h.store.SaveWhiteboard(c.Context(), board); err != nil {
		return response.InternalServerError(c, "Server error while updating whiteboard")
	}
	return response.Success(c, board)
}

// Delete removes a drawing. Owner only.
func (h *WhiteboardHandler) Delete(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid whiteboard id")
	}

	board, err := h.store.GetWhiteboardByID(c.Context(), id)
	if err != nil {
		return notFoundOr(c, err, "Whiteboard not found")
	}
	if !services.CanMutate(user, board.AuthorID) {
		return response.Forbidden(c, "Not authorized to delete this whiteboard")
	}

	if err := h.store.DeleteWhiteboard(c.Context(), id); err != nil {
		return response.InternalServerError(c, "Server error while deleting whiteboard")
	}
	return response.SuccessWithMessage(c, "Whiteboard deleted successfully", nil)
}

// Save clones a shared drawing into the calling student's account.
func (h *WhiteboardHandler) Save(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid whiteboard id")
	}

	clone, err := h.content.SaveWhiteboard(c.Context(), user, id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrForbidden):
			return response.Forbidden(c, "Only students can save shared drawings")
		case errors.Is(err, services.ErrNotShared):
			return response.NotFound(c, "Shared drawing not found")
		default:
			return notFoundOr(c, err, "Shared drawing not found")
		}
	}
	return response.Created(c, clone)
}

// SearchByStaff lists one teacher's shared drawings by staff registration
// number. Open to any authenticated user.
func (h *WhiteboardHandler) SearchByStaff(c *fiber.Ctx) error {
	if _, err := requireUser(c); err != nil {
		return err
	}

	staffID := c.Params("staffId")
	staff, err := h.store.GetStaffByRegistrationNumber(c.Context(), staffID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return response.NotFound(c, "Staff not found for provided ID")
		}
		return response.InternalServerError(c, "Server error while searching staff drawings")
	}

	boards, err := h.store.ListWhiteboards(c.Context(), services.DiscoveryFilter(staff))
	if err != nil {
		return response.InternalServerError(c, "Server error while searching staff drawings")
	}

	return response.Success(c, fiber.Map{
		"teacherInfo": fiber.Map{
			"name":          staff.RegistrationNumber,
			"subject":       staff.Subject,
			"totalDrawings": len(boards),
			"teacherCode":   staff.TeacherCode,
		},
		"drawings": boards,
	})
}

func requireUser(c *fiber.Ctx) (*model.User, error) {
	user, ok := middleware.GetUser(c)
	if !ok {
		return nil, response.Unauthorized(c, "Authentication required")
	}
	return user, nil
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func notFoundOr(c *fiber.Ctx, err error, message string) error {
	if errors.Is(err, database.ErrNotFound) {
		return response.NotFound(c, message)
	}
	return response.InternalServerError(c, "Server error")
}
