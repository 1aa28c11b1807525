package database

import (
	"context"
	"errors"

	"github.com/saikumarreddyappidi/Education/model"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique constraint
	// (registration number or teacher code). Uniqueness is ultimately enforced
	// by the store at write time, not by the callers' pre-checks.
	ErrDuplicate = errors.New("duplicate record")
)

// ContentFilter describes a visibility query over one content collection
// (notes, files or whiteboards). The zero SharedCodes/SharedOnly form selects
// the caller's own items only; SharedCodes widens the set to shared items
// carrying one of those codes; SharedOnly restricts to the shared items of
// AuthorID (the public discovery path).
type ContentFilter struct {
	AuthorID    uint
	SharedCodes []string
	SharedOnly  bool
}

// Storage defines the interface that all database implementations must satisfy.
// The handle is constructed once at startup (postgres or in-memory, selected by
// the DB_DRIVER env flag) and injected into every component.
type Storage interface {
	// Lifecycle methods
	Init() error
	Close() error
	HealthCheck() error
	GetDB() interface{} // *gorm.DB for GORMStore, nil for MemoryStore

	// Users
	CreateUser(ctx context.Context, user *model.User) error
	SaveUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id uint) (*model.User, error)
	GetUserByRegistrationNumber(ctx context.Context, regNo string) (*model.User, error)
	GetStaffByTeacherCode(ctx context.Context, code string) (*model.User, error)
	GetStaffByRegistrationNumber(ctx context.Context, regNo string) (*model.User, error)
	TeacherCodeInUse(ctx context.Context, code string) (bool, error)

	// Notes
	CreateNote(ctx context.Context, note *model.Note) error
	SaveNote(ctx context.Context, note *model.Note) error
	DeleteNote(ctx context.Context, id uint) error
	GetNoteByID(ctx context.Context, id uint) (*model.Note, error)
	ListNotes(ctx context.Context, filter ContentFilter) ([]model.Note, error)

	// Files
	CreateFile(ctx context.Context, file *model.File) error
	SaveFile(ctx context.Context, file *model.File) error
	DeleteFile(ctx context.Context, id uint) error
	GetFileByID(ctx context.Context, id uint) (*model.File, error)
	ListFiles(ctx context.Context, filter ContentFilter) ([]model.File, error)
	IncrementFileDownloads(ctx context.Context, id uint) error

	// Whiteboards
	CreateWhiteboard(ctx context.Context, wb *model.Whiteboard) error
	SaveWhiteboard(ctx context.Context, wb *model.Whiteboard) error
	DeleteWhiteboard(ctx context.Context, id uint) error
	GetWhiteboardByID(ctx context.Context, id uint) (*model.Whiteboard, error)
	ListWhiteboards(ctx context.Context, filter ContentFilter) ([]model.Whiteboard, error)

	// Forum
	CreateQuestion(ctx context.Context, q *model.Question) error
	SaveQuestion(ctx context.Context, q *model.Question) error
	GetQuestionByID(ctx context.Context, id uint) (*model.Question, error)
	ListQuestions(ctx context.Context) ([]model.Question, error)
	AddAnswer(ctx context.Context, answer *model.Answer) error
}
