package services

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/saikumarreddyappidi/Education/database"
	"github.com/saikumarreddyappidi/Education/model"
)

// ContentService implements the save-to-my-account operation: cloning a shared
// item into a student's own collection. The clone is a brand-new independent
// row owned by the student, never shared and never code-stamped; deleting the
// original later does not touch it.
type ContentService struct {
	store database.Storage
}

// NewContentService creates a content service backed by the given store.
func NewContentService(store database.Storage) *ContentService {
	return &ContentService{store: store}
}

// SaveNote clones a shared note into the student's account. The copy names
// the original author in its title and carries a saved-from-staff tag.
func (s *ContentService) SaveNote(ctx context.Context, student *model.User, noteID uint) (*model.Note, error) {
	if student.IsStaff() {
		return nil, ErrForbidden
	}

	original, err := s.store.GetNoteByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if !original.IsShared {
		return nil, ErrNotShared
	}

	tags := make(pq.StringArray, 0, len(original.Tags)+1)
	tags = append(tags, original.Tags...)
	tags = append(tags, "saved-from-staff")

	clone := &model.Note{
		Title:      fmt.Sprintf("%s (from %s)", original.Title, original.AuthorName),
		Content:    original.Content,
		Tags:       tags,
		AuthorID:   student.ID,
		AuthorName: student.RegistrationNumber,
		IsShared:   false,
	}
	if err := s.store.CreateNote(ctx, clone); err != nil {
		return nil, err
	}
	return clone, nil
}

// SaveFile clones a shared file into the student's account. The payload
// reference is copied but the object-storage key is not: the clone never owns
// the original's bucket object.
func (s *ContentService) SaveFile(ctx context.Context, student *model.User, fileID uint) (*model.File, error) {
	if student.IsStaff() {
		return nil, ErrForbidden
	}

	original, err := s.store.GetFileByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if !original.IsShared {
		return nil, ErrNotShared
	}

	clone := &model.File{
		FileName:     fmt.Sprintf("%s (copy)", original.FileName),
		OriginalName: original.OriginalName,
		FileType:     original.FileType,
		FileSize:     original.FileSize,
		MimeType:     original.MimeType,
		FileData:     original.FileData,
		FileURL:      original.FileURL,
		PageCount:    original.PageCount,

		UploadedByID:               student.ID,
		UploaderRegistrationNumber: student.RegistrationNumber,
		UploaderRole:               student.Role,
		UploaderSubject:            student.Subject,
		UploaderYear:               student.Year,
		UploaderSemester:           student.Semester,
		UploaderCourse:             student.Course,

		IsShared:    false,
		Annotations: original.Annotations,
		Tags:        append(pq.StringArray{}, original.Tags...),
	}
	if err := s.store.CreateFile(ctx, clone); err != nil {
		return nil, err
	}
	return clone, nil
}

// SaveWhiteboard clones a shared whiteboard drawing into the student's
// account.
func (s *ContentService) SaveWhiteboard(ctx context.Context, student *model.User, boardID uint) (*model.Whiteboard, error) {
	if student.IsStaff() {
		return nil, ErrForbidden
	}

	original, err := s.store.GetWhiteboardByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if !original.IsShared {
		return nil, ErrNotShared
	}

	clone := &model.Whiteboard{
		Title:      fmt.Sprintf("%s (copy)", original.Title),
		ImageData:  original.ImageData,
		AuthorID:   student.ID,
		AuthorName: student.RegistrationNumber,
		IsShared:   false,
	}
	if err := s.store.CreateWhiteboard(ctx, clone); err != nil {
		return nil, err
	}
	return clone, nil
}
