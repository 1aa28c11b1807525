package file

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	"github.com/saikumarreddyappidi/Education/model"
	"github.com/saikumarreddyappidi/Education/services"
	"github.com/saikumarreddyappidi/Education/utils/pdfvalidation"
	"github.com/saikumarreddyappidi/Education/utils/response"
)

// UploadRequest is the JSON upload payload. FileData is a base64 data URL.
type UploadRequest struct {
	Filename string `json:"filename"`
	FileData string `json:"fileData"`
	IsShared bool   `json:"isShared"`
}

// UpdateRequest changes annotations and, for staff, the sharing state.
// Pointer fields distinguish "absent" from zero values.
type UpdateRequest struct {
	Annotations json.RawMessage `json:"annotations,omitempty"`
	IsShared    *bool           `json:"isShared,omitempty"`
}

// List returns the caller's file feed, newest update first.
func (h *FileHandler) List(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	files, err := h.store.ListFiles(c.Context(), services.FeedFilter(user))
	if err != nil {
		return response.InternalServerError(c, "Server error while fetching files")
	}
	return response.Success(c, files)
}

// Upload stores a new file for the caller. PDFs are size- and page-checked
// before acceptance. Staff uploads carry the uploader's teacher code only
// when shared; sharing later re-stamps it through Update.
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	var req UploadRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Filename == "" || req.FileData == "" {
		return response.BadRequest(c, "Filename and file data are required")
	}

	payload, err := parseDataURL(req.FileData)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	fileType := determineFileType(payload.MimeType, req.Filename)

	record := &model.File{
		FileName:     stripExtension(req.Filename),
		OriginalName: req.Filename,
		FileType:     fileType,
		FileSize:     int64(len(payload.Raw)),
		MimeType:     payload.MimeType,

		UploadedByID:               user.ID,
		UploaderRegistrationNumber: user.RegistrationNumber,
		UploaderRole:               user.Role,
		UploaderSubject:            user.Subject,
		UploaderYear:               user.Year,
		UploaderSemester:           user.Semester,
		UploaderCourse:             user.Course,

		Tags: pq.StringArray{},
	}

	if fileType == model.FileTypePDF {
		result, err := pdfvalidation.ValidatePDFBytes(payload.Raw, pdfvalidation.UploadLimits)
		if err != nil {
			return response.InternalServerError(c, "Server error while validating PDF")
		}
		if !result.Valid {
			return response.BadRequest(c, result.Error)
		}
		record.PageCount = result.PageCount
	}

	if user.IsStaff() {
		record.IsShared, record.TeacherCode = services.SharingFields(user, req.IsShared)
	}

	// Offload to object storage when configured; inline data URL otherwise.
	// Offload failure falls back to inline so uploads never depend on the
	// bucket being reachable.
	stored := false
	if h.spaces != nil {
		key := fmt.Sprintf("files/%s/%s", uuid.NewString(), req.Filename)
		url, err := h.spaces.UploadBytes(c.Context(), key, payload.Raw, payload.MimeType)
		if err != nil {
			log.Println("spaces upload failed, storing inline:", err)
		} else {
			record.FileURL = url
			record.SpacesKey = key
			stored = true
		}
	}
	if !stored {
		record.FileData = req.FileData
	}

	if err := h.store.CreateFile(c.Context(), record); err != nil {
		return response.InternalServerError(c, "Server error while uploading file")
	}
	return response.Created(c, record)
}

// Update changes a file's annotations and sharing state. Owner only; sharing
// changes are honored for staff only.
func (h *FileHandler) Update(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid file id")
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	record, err := h.store.GetFileByID(c.Context(), id)
	if err != nil {
		return notFoundOr(c, err, "File not found")
	}
	if !services.CanMutate(user, record.UploadedByID) {
		return response.Forbidden(c, "Not authorized to update this file")
	}

	if len(req.Annotations) > 0 {
		record.Annotations = datatypes.JSON(req.Annotations)
	}
	if user.IsStaff() && req.IsShared != nil {
		record.IsShared, record.TeacherCode = services.SharingFields(user, *req.IsShared)
	}

	if err := h.store.SaveFile(c.Context(), record); err != nil {
		return response.InternalServerError(c, "Server error while updating file")
	}
	return response.Success(c, record)
}

// Delete removes a file. Owner only. The bucket object, if any, is removed
// best effort.
func (h *FileHandler) Delete(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid file id")
	}

	record, err := h.store.GetFileByID(c.Context(), id)
	if err != nil {
		return notFoundOr(c, err, "File not found")
	}
	if !services.CanMutate(user, record.UploadedByID) {
		return response.Forbidden(c, "Not authorized to delete this file")
	}

	if err := h.store.DeleteFile(c.Context(), id); err != nil {
		return response.InternalServerError(c, "Server error while deleting file")
	}

	if h.spaces != nil && record.SpacesKey != "" {
		if err := h.spaces.DeleteObject(c.Context(), record.SpacesKey); err != nil {
			log.Println("spaces delete failed:", err)
		}
	}

	return response.SuccessWithMessage(c, "File deleted successfully", nil)
}

// Download returns the file payload reference and bumps the download counter.
// Subject to the same visibility rule as the feed.
func (h *FileHandler) Download(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid file id")
	}

	record, err := h.store.GetFileByID(c.Context(), id)
	if err != nil {
		return notFoundOr(c, err, "File not found")
	}
	if !services.CanView(user, record.UploadedByID, record.IsShared, record.TeacherCode) {
		return response.Forbidden(c, "Not authorized to download this file")
	}

	if err := h.store.IncrementFileDownloads(c.Context(), id); err != nil {
		return response.InternalServerError(c, "Server error while downloading file")
	}

	url := record.FileURL
	if url == "" {
		url = record.FileData
	}

	return response.Success(c, fiber.Map{
		"id":            record.ID,
		"fileName":      record.FileName,
		"originalName":  record.OriginalName,
		"mimeType":      record.MimeType,
		"fileUrl":       url,
		"downloadCount": record.DownloadCount + 1,
	})
}
