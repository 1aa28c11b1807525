package forum

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/saikumarreddyappidi/Education/database"
	"github.com/saikumarreddyappidi/Education/model"
	"github.com/saikumarreddyappidi/Education/services"
	"github.com/saikumarreddyappidi/Education/utils/middleware"
	"github.com/saikumarreddyappidi/Education/utils/response"
	"github.com/saikumarreddyappidi/Education/utils/validation"
)

// ForumHandler handles question threads. Reads are public; creation, answers
// and status changes require authentication.
type ForumHandler struct {
	forum     *services.ForumService
	validator *validation.Validator
}

// NewForumHandler creates a new forum handler.
func NewForumHandler(store database.Storage) *ForumHandler {
	registry := services.NewCodeRegistry(store)
	return &ForumHandler{
		forum:     services.NewForumService(store, registry),
		validator: validation.NewValidator(),
	}
}

// QuestionRequest is the question creation payload.
type QuestionRequest struct {
	Title       string   `json:"title" validate:"required"`
	Content     string   `json:"content" validate:"required"`
	Tags        []string `json:"tags"`
	TeacherCode string   `json:"teacherCode,omitempty"`
}

// AnswerRequest is the answer payload.
type AnswerRequest struct {
	Content string `json:"content" validate:"required"`
}

// StatusRequest is the status update payload. The only accepted value is
// "resolved"; questions never reopen.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListQuestions returns every question thread, newest first.
func (h *ForumHandler) ListQuestions(c *fiber.Ctx) error {
	questions, err := h.forum.ListQuestions(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Server error while fetching questions")
	}
	return response.Success(c, questions)
}

// GetQuestion returns a single thread with its answers.
func (h *ForumHandler) GetQuestion(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid question id")
	}

	question, err := h.forum.GetQuestion(c.Context(), id)
	if err != nil {
		return notFoundOr(c, err, "Question not found")
	}
	return response.Success(c, question)
}

// CreateQuestion opens a new thread. A supplied teacher code binds the
// question to that teacher; an unknown code fails the whole creation.
func (h *ForumHandler) CreateQuestion(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	var req QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	question, err := h.forum.CreateQuestion(c.Context(), user, req.Title, req.Content, req.Tags, req.TeacherCode)
	if err != nil {
		if errors.Is(err, services.ErrTeacherNotFound) {
			return response.NotFound(c, "Teacher not found for provided code")
		}
		return response.InternalServerError(c, "Server error while creating question")
	}
	return response.Created(c, question)
}

// AddAnswer appends an answer to a thread. Allowed for any authenticated user
// regardless of the question's status.
func (h *ForumHandler) AddAnswer(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid question id")
	}

	var req AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	answer, err := h.forum.AddAnswer(c.Context(), id, user, req.Content)
	if err != nil {
		return notFoundOr(c, err, "Question not found")
	}
	return response.Created(c, answer)
}

// UpdateStatus resolves a thread. Author or any staff only; resolving twice is
// a no-op success.
func (h *ForumHandler) UpdateStatus(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid question id")
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	question, err := h.forum.Resolve(c.Context(), id, user, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			return response.BadRequest(c, "Invalid status")
		case errors.Is(err, services.ErrForbidden):
			return response.Forbidden(c, "User not authorized to update this question")
		default:
			return notFoundOr(c, err, "Question not found")
		}
	}
	return response.Success(c, question)
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
