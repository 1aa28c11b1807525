package services

import (
	"context"
	"testing"

	"github.com/lib/pq"

	"github.com/saikumarreddyappidi/Education/database"
	"github.com/saikumarreddyappidi/Education/model"
)

func sharedNote(t *testing.T, store database.Storage, staff *model.User, title string) *model.Note {
	t.Helper()
	note := &model.Note{
		Title:       title,
		Content:     "content",
		Tags:        pq.StringArray{"exam"},
		AuthorID:    staff.ID,
		AuthorName:  staff.RegistrationNumber,
		IsShared:    true,
		TeacherCode: staff.TeacherCode,
	}
	if err := store.CreateNote(context.Background(), note); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	return note
}

func TestSaveNoteClonesIntoStudentAccount(t *testing.T) {
	store := newTestStore(t)
	content := NewContentService(store)
	ctx := context.Background()

	staff := createStaff(t, store, "STAFF1", "TCMATH1")
	student := createStudent(t, store, "STU1")
	original := sharedNote(t, store, staff, "Exam Tips")

	clone, err := content.SaveNote(ctx, student, original.ID)
	if err != nil {
		t.Fatalf("SaveNote returned error: %v", err)
	}

	if clone.ID == original.ID {
		t.Error("clone must be a new row")
	}
	if clone.Title != "Exam Tips (from STAFF1)" {
		t.Errorf("clone title = %q", clone.Title)
	}
	if clone.AuthorID != student.ID || clone.AuthorName != "STU1" {
		t.Errorf("clone must be owned by the student: %+v", clone)
	}
	if clone.IsShared || clone.TeacherCode != nil {
		t.Errorf("clone must be private and code-free: shared=%v code=%v", clone.IsShared, clone.TeacherCode)
	}

	found := false
	for _, tag := range clone.Tags {
		if tag == "saved-from-staff" {
			found = true
		}
	}
	if !found {
		t.Errorf("clone should carry the saved-from-staff tag, got %v", clone.Tags)
	}
}

func TestSaveNoteRejectsStaff(t *testing.T) {
	store := newTestStore(t)
	content := NewContentService(store)

	staff := createStaff(t, store, "STAFF1", "TCMATH1")
	other := createStaff(t, store, "STAFF2", "TCPHYS1")
	original := sharedNote(t, store, staff, "Exam Tips")

	if _, err := content.SaveNote(context.Background(), other, original.ID); err != ErrForbidden {
		t.Errorf("expected ErrForbidden for staff caller, got %v", err)
	}
}

func TestSaveNoteRejectsUnsharedSource(t *testing.T) {
	store := newTestStore(t)
	content := NewContentService(store)
	ctx := context.Background()

	staff := createStaff(t, store, "STAFF1", "TCMATH1")
	student := createStudent(t, store, "STU1")

	private := &model.Note{Title: "Draft", Content: "x", AuthorID: staff.ID, AuthorName: "STAFF1"}
	if err := store.CreateNote(ctx, private); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}

	if _, err := content.SaveNote(ctx, student, private.ID); err != ErrNotShared {
		t.Errorf("expected ErrNotShared, got %v", err)
	}
	if _, err := content.SaveNote(ctx, student, 9999); err != database.ErrNotFound {
		t.Errorf("expected ErrNotFound for missing source, got %v", err)
	}
}

func TestSavedCopySurvivesOriginalDeletion(t *testing.T) {
	store := newTestStore(t)
	content := NewContentService(store)
	ctx := context.Background()

	staff := createStaff(t, store, "STAFF1", "TCMATH1")
	student := createStudent(t, store, "STU1")
	original := sharedNote(t, store, staff, "Exam Tips")

	clone, err := content.SaveNote(ctx, student, original.ID)
	if err != nil {
		t.Fatalf("SaveNote: %v", err)
	}
	if err := store.DeleteNote(ctx, original.ID); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}

	kept, err := store.GetNoteByID(ctx, clone.ID)
	if err != nil {
		t.Fatalf("clone should survive deletion of the original: %v", err)
	}
	if kept.AuthorID != student.ID {
		t.Errorf("surviving copy has wrong owner: %d", kept.AuthorID)
	}
}

func TestSaveFileClone(t *testing.T) {
	store := newTestStore(t)
	content := NewContentService(store)
	ctx := context.Background()

	staff := createStaff(t, store, "STAFF1", "TCMATH1")
	student := createStudent(t, store, "STU1")

	original := &model.File{
		FileName:     "lecture-1",
		OriginalName: "lecture-1.pdf",
		FileType:     model.FileTypePDF,
		FileSize:     1024,
		MimeType:     "application/pdf",
		FileData:     "data:application/pdf;base64,JVBERi0=",
		PageCount:    4,

		UploadedByID:               staff.ID,
		UploaderRegistrationNumber: staff.RegistrationNumber,
		UploaderRole:               staff.Role,
		UploaderSubject:            staff.Subject,

		IsShared:    true,
		TeacherCode: staff.TeacherCode,
		SpacesKey:   "files/abc/lecture-1.pdf",
	}
	if err := store.CreateFile(ctx, original); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}

	clone, err := content.SaveFile(ctx, student, original.ID)
	if err != nil {
		t.Fatalf("SaveFile returned error: %v", err)
	}

	if clone.FileName != "lecture-1 (copy)" {
		t.Errorf("clone fileName = %q", clone.FileName)
	}
	if clone.UploadedByID != student.ID || clone.UploaderRegistrationNumber != "STU1" {
		t.Errorf("clone must snapshot the student's profile: %+v", clone)
	}
	if clone.IsShared || clone.TeacherCode != nil {
		t.Errorf("clone must be private: shared=%v code=%v", clone.IsShared, clone.TeacherCode)
	}
	if clone.SpacesKey != "" {
		t.Errorf("clone must not own the original's bucket object, got key %q", clone.SpacesKey)
	}
	if clone.FileData != original.FileData || clone.PageCount != original.PageCount {
		t.Error("clone should copy the payload fields")
	}
}

func TestSaveWhiteboardClone(t *testing.T) {
	store := newTestStore(t)
	content := NewContentService(store)
	ctx := context.Background()

	staff := createStaff(t, store, "STAFF1", "TCMATH1")
	student := createStudent(t, store, "STU1")

	original := &model.Whiteboard{
		Title:       "Geometry Sketch",
		ImageData:   "data:image/png;base64,iVBORw0=",
		AuthorID:    staff.ID,
		AuthorName:  staff.RegistrationNumber,
		IsShared:    true,
		TeacherCode: staff.TeacherCode,
	}
	if err := store.CreateWhiteboard(ctx, original); err != nil {
		t.Fatalf("CreateWhiteboard: %v", err)
	}

	clone, err := content.SaveWhiteboard(ctx, student, original.ID)
	if err != nil {
		t.Fatalf("SaveWhiteboard returned error: %v", err)
	}
	if clone.Title != "Geometry Sketch (copy)" {
		t.Errorf("clone title = %q", clone.Title)
	}
	if clone.AuthorID != student.ID || clone.IsShared || clone.TeacherCode != nil {
		t.Errorf("clone must be a private student copy: %+v", clone)
	}
	if clone.ImageData != original.ImageData {
		t.Error("clone should copy the image payload")
	}
}
