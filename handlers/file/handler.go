package file

import (
	"encoding/base64"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/saikumarreddyappidi/Education/database"
	"github.com/saikumarreddyappidi/Education/model"
	"github.com/saikumarreddyappidi/Education/services"
	"github.com/saikumarreddyappidi/Education/services/storage"
	"github.com/saikumarreddyappidi/Education/utils/middleware"
	"github.com/saikumarreddyappidi/Education/utils/response"
)

// FileHandler handles file uploads, annotation updates, downloads and the
// shared-files feed. Payloads arrive as base64 data URLs; when a Spaces client
// is configured the raw bytes are offloaded to object storage, otherwise the
// data URL is stored inline.
type FileHandler struct {
	store   database.Storage
	content *services.ContentService
	spaces  *storage.SpacesClient
}

// NewFileHandler creates a new file handler. spaces may be nil.
func NewFileHandler(store database.Storage, spaces *storage.SpacesClient) *FileHandler {
	return &FileHandler{
		store:   store,
		content: services.NewContentService(store),
		spaces:  spaces,
	}
}

var dataURLPattern = regexp.MustCompile(`^data:(.*?);base64,(.*)$`)

// parsedDataURL is a decoded data-URL payload.
type parsedDataURL struct {
	MimeType string
	Raw      []byte
}

// parseDataURL splits and decodes a `data:<mime>;base64,<payload>` string.
func parseDataURL(dataURL string) (*parsedDataURL, error) {
	matches := dataURLPattern.FindStringSubmatch(dataURL)
	if len(matches) < 3 {
		return nil, errors.New("failed to parse data URL")
	}
	raw, err := base64.StdEncoding.DecodeString(matches[2])
	if err != nil {
		return nil, errors.New("failed to parse data URL")
	}
	return &parsedDataURL{MimeType: matches[1], Raw: raw}, nil
}

// determineFileType classifies a payload by MIME type, falling back to the
// filename extension for office formats.
func determineFileType(mimeType, fileName string) model.FileType {
	lowerName := strings.ToLower(fileName)
	switch {
	case strings.Contains(mimeType, "pdf"):
		return model.FileTypePDF
	case strings.Contains(mimeType, "image"):
		return model.FileTypeImage
	case strings.HasSuffix(lowerName, ".ppt") || strings.HasSuffix(lowerName, ".pptx"):
		return model.FileTypePresentation
	default:
		return model.FileTypeDocument
	}
}

// stripExtension returns the filename without its final extension.
func stripExtension(fileName string) string {
	if idx := strings.LastIndex(fileName, "."); idx > 0 {
		return fileName[:idx]
	}
	return fileName
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
