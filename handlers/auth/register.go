package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"

	"github.com/saikumarreddyappidi/Education/database"
	"github.com/saikumarreddyappidi/Education/model"
	"github.com/saikumarreddyappidi/Education/services"
	authutil "github.com/saikumarreddyappidi/Education/utils/auth"
	"github.com/saikumarreddyappidi/Education/utils/middleware"
	"github.com/saikumarreddyappidi/Education/utils/response"
	"github.com/saikumarreddyappidi/Education/utils/validation"
)

// AuthHandler handles registration, login, profile and teacher-connection
// requests.
type AuthHandler struct {
	store                database.Storage
	jwtManager           *authutil.JWTManager
	registry             *services.CodeRegistry
	linking              *services.LinkingService
	validator            *validation.Validator
	bruteForceProtection *middleware.BruteForceProtection
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(store database.Storage, jwtManager *authutil.JWTManager, bruteForceProtection *middleware.BruteForceProtection) *AuthHandler {
	registry := services.NewCodeRegistry(store)
	return &AuthHandler{
		store:                store,
		jwtManager:           jwtManager,
		registry:             registry,
		linking:              services.NewLinkingService(store, registry),
		validator:            validation.NewValidator(),
		bruteForceProtection: bruteForceProtection,
	}
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	RegistrationNumber string `json:"registrationNumber" validate:"required,min=2,max=64"`
	Password           string `json:"password" validate:"required"`
	Role               string `json:"role" validate:"required,oneof=student staff"`
	Course             string `json:"course,omitempty"`
	Year               string `json:"year,omitempty"`
	Semester           string `json:"semester,omitempty"`
	Subject            string `json:"subject,omitempty"`
	TeacherCode        string `json:"teacherCode,omitempty"`
}

// AuthResponse represents a successful registration or login response
type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// UserResponse represents user data in responses
type UserResponse struct {
	ID                 uint      `json:"id"`
	RegistrationNumber string    `json:"registrationNumber"`
	Role               string    `json:"role"`
	Year               string    `json:"year,omitempty"`
	Semester           string    `json:"semester,omitempty"`
	Course             string    `json:"course,omitempty"`
	Subject            string    `json:"subject,omitempty"`
	TeacherCode        *string   `json:"teacherCode,omitempty"`
	TeacherCodes       []string  `json:"teacherCodes"`
	CreatedAt          time.Time `json:"createdAt"`
}

func toUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:                 user.ID,
		RegistrationNumber: user.RegistrationNumber,
		Role:               user.Role,
		Year:               user.Year,
		Semester:           user.Semester,
		Course:             user.Course,
		Subject:            user.Subject,
		TeacherCode:        user.TeacherCode,
		TeacherCodes:       user.TeacherCodes,
		CreatedAt:          user.CreatedAt,
	}
}

// Register handles user registration
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.RegistrationNumber = validation.SanitizeString(req.RegistrationNumber)
	req.TeacherCode = strings.TrimSpace(req.TeacherCode)

	if err := h.validator.ValidateStruct(&req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	if ok, problems := validation.ValidatePasswordStrength(req.Password); !ok {
		return response.ValidationError(c, strings.Join(problems, "; "))
	}

	// Check if user already exists
	if _, err := h.store.GetUserByRegistrationNumber(c.Context(), req.RegistrationNumber); err == nil {
		return response.BadRequest(c, "User already exists with this registration number")
	} else if !errors.Is(err, database.ErrNotFound) {
		return response.InternalServerError(c, "Server error during registration")
	}

	hash, err := authutil.HashPassword(req.Password)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	user := &model.User{
		RegistrationNumber: req.RegistrationNumber,
		PasswordHash:       hash,
		Role:               req.Role,
		Year:               req.Year,
		Semester:           req.Semester,
		TeacherCodes:       pq.StringArray{},
	}

	switch req.Role {
	case model.RoleStaff:
		if req.Subject == "" {
			return response.ErrorWithField(c, fiber.StatusBadRequest,
				"Subject is required for staff registration", "VALIDATION_ERROR", "subject")
		}
		user.Subject = req.Subject

		code, err := h.registry.IssueCode(c.Context(), req.TeacherCode)
		if err != nil {
			if errors.Is(err, services.ErrDuplicateCode) {
				return response.ErrorWithField(c, fiber.StatusBadRequest,
					"Teacher code already exists. Please choose a different code.", "DUPLICATE_TEACHER_CODE", "teacherCode")
			}
			return response.InternalServerError(c, "Server error during registration")
		}
		user.TeacherCode = &code

	case model.RoleStudent:
		user.Course = req.Course
		if req.TeacherCode != "" {
			// Registration-time connect: the supplied code must belong to an
			// existing staff account.
			if _, err := h.registry.ResolveCode(c.Context(), req.TeacherCode); err != nil {
				if errors.Is(err, services.ErrTeacherNotFound) {
					return response.BadRequest(c, "Invalid teacher code")
				}
				return response.InternalServerError(c, "Server error during registration")
			}
			code := req.TeacherCode
			user.TeacherCode = &code
			user.TeacherCodes = pq.StringArray{code}
		}
	}

	if err := h.store.CreateUser(c.Context(), user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			// The unique indexes are the real uniqueness guard; the pre-checks
			// above only produce friendlier messages.
			return response.BadRequest(c, "Registration number or teacher code is already taken")
		}
		return response.InternalServerError(c, "Server error during registration")
	}

	token, err := h.jwtManager.GenerateToken(user.ID, user.RegistrationNumber, user.Role)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate token")
	}

	return response.Created(c, AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    toUserResponse(user),
	})
}
