package note

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/saikumarreddyappidi/Education/database"
	"github.com/saikumarreddyappidi/Education/model"
	"github.com/saikumarreddyappidi/Education/services"
	"github.com/saikumarreddyappidi/Education/utils/middleware"
	"github.com/saikumarreddyappidi/Education/utils/response"
	"github.com/saikumarreddyappidi/Education/utils/validation"
)

// NoteHandler handles note CRUD, the shared-notes feed and the save-to-account
// operation.
type NoteHandler struct {
	store     database.Storage
	content   *services.ContentService
	validator *validation.Validator
}

// NewNoteHandler creates a new note handler.
func NewNoteHandler(store database.Storage) *NoteHandler {
	return &NoteHandler{
		store:     store,
		content:   services.NewContentService(store),
		validator: validation.NewValidator(),
	}
}

// NoteRequest is the create/update payload. Shared is the legacy spelling of
// IsShared some clients still send.
type NoteRequest struct {
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Tags     []string `json:"tags"`
	IsShared bool     `json:"isShared"`
	Shared   bool     `json:"shared"`
}

func (r *NoteRequest) wantsShared() bool {
	return r.IsShared || r.Shared
}

// requireUser pulls the authenticated user set by the auth middleware.
func requireUser(c *fiber.Ctx) (*model.User, error) {
	user, ok := middleware.GetUser(c)
	if !ok {
		return nil, response.Unauthorized(c, "Authentication required")
	}
	return user, nil
}

func notFoundOr(c *fiber.Ctx, err error, message string) error {
	if errors.Is(err, database.ErrNotFound) {
		return response.NotFound(c, message)
	}
	return response.InternalServerError(c, "Server error")
}
