package database

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/saikumarreddyappidi/Education/model"
)

// MemoryStore is an in-memory Storage implementation. It backs local
// development without a Postgres instance (DB_DRIVER=memory) and the service
// tests. Single-document writes are atomic under one mutex, matching the
// consistency the Postgres store provides per row.
type MemoryStore struct {
	mu sync.Mutex

	users       map[uint]*model.User
	notes       map[uint]*model.Note
	files       map[uint]*model.File
	whiteboards map[uint]*model.Whiteboard
	questions   map[uint]*model.Question

	nextUserID       uint
	nextNoteID       uint
	nextFileID       uint
	nextWhiteboardID uint
	nextQuestionID   uint
	nextAnswerID     uint
}

// StartMemory creates an empty in-memory store.
func StartMemory() (*MemoryStore, error) {
	log.Println("Using in-memory store. Data will not survive a restart.")
	return &MemoryStore{
		users:       make(map[uint]*model.User),
		notes:       make(map[uint]*model.Note),
		files:       make(map[uint]*model.File),
		whiteboards: make(map[uint]*model.Whiteboard),
		questions:   make(map[uint]*model.Question),
	}, nil
}

func (s *MemoryStore) Init() error        { return nil }
func (s *MemoryStore) Close() error       { return nil }
func (s *MemoryStore) HealthCheck() error { return nil }

// GetDB returns nil; there is no underlying engine to expose.
func (s *MemoryStore) GetDB() interface{} { return nil }

// ---- Users ----

func (s *MemoryStore) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Teacher codes are unique among staff only; student rows mirror the code
	// of the teacher they connected to.
	for _, u := range s.users {
		if u.RegistrationNumber == user.RegistrationNumber {
			return ErrDuplicate
		}
		if user.Role == model.RoleStaff && u.Role == model.RoleStaff &&
			user.TeacherCode != nil && u.TeacherCode != nil && *u.TeacherCode == *user.TeacherCode {
			return ErrDuplicate
		}
	}

	s.nextUserID++
	user.ID = s.nextUserID
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = copyUser(user)
	return nil
}

func (s *MemoryStore) SaveUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return ErrNotFound
	}
	user.UpdatedAt = time.Now()
	s.users[user.ID] = copyUser(user)
	return nil
}

func (s *MemoryStore) GetUserByID(_ context.Context, id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

func (s *MemoryStore) GetUserByRegistrationNumber(_ context.Context, regNo string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.RegistrationNumber == regNo {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetStaffByTeacherCode(_ context.Context, code string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Role == model.RoleStaff && u.TeacherCode != nil && *u.TeacherCode == code {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetStaffByRegistrationNumber(_ context.Context, regNo string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Role == model.RoleStaff && u.RegistrationNumber == regNo {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) TeacherCodeInUse(_ context.Context, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Role == model.RoleStaff && u.TeacherCode != nil && *u.TeacherCode == code {
			return true, nil
		}
	}
	return false, nil
}

// ---- Notes ----

func (s *MemoryStore) CreateNote(_ context.Context, note *model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextNoteID++
	note.ID = s.nextNoteID
	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now
	cp := *note
	s.notes[note.ID] = &cp
	return nil
}

func (s *MemoryStore) SaveNote(_ context.Context, note *model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[note.ID]; !ok {
		return ErrNotFound
	}
	note.UpdatedAt = time.Now()
	cp := *note
	s.notes[note.ID] = &cp
	return nil
}

func (s *MemoryStore) DeleteNote(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.notes, id)
	return nil
}

func (s *MemoryStore) GetNoteByID(_ context.Context, id uint) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (s *MemoryStore) ListNotes(_ context.Context, filter ContentFilter) ([]model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := []model.Note{}
	for _, n := range s.notes {
		if filter.matches(n.AuthorID, n.IsShared, n.TeacherCode) {
			notes = append(notes, *n)
		}
	}
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})
	return notes, nil
}

// ---- Files ----

func (s *MemoryStore) CreateFile(_ context.Context, file *model.File) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextFileID++
	file.ID = s.nextFileID
	now := time.Now()
	file.CreatedAt = now
	file.UpdatedAt = now
	cp := *file
	s.files[file.ID] = &cp
	return nil
}

func (s *MemoryStore) SaveFile(_ context.Context, file *model.File) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[file.ID]; !ok {
		return ErrNotFound
	}
	file.UpdatedAt = time.Now()
	cp := *file
	s.files[file.ID] = &cp
	return nil
}

func (s *MemoryStore) DeleteFile(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.files, id)
	return nil
}

func (s *MemoryStore) GetFileByID(_ context.Context, id uint) (*model.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.files[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (s *MemoryStore) ListFiles(_ context.Context, filter ContentFilter) ([]model.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	files := []model.File{}
	for _, f := range s.files {
		if filter.matches(f.UploadedByID, f.IsShared, f.TeacherCode) {
			files = append(files, *f)
		}
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].UpdatedAt.After(files[j].UpdatedAt)
	})
	return files, nil
}

func (s *MemoryStore) IncrementFileDownloads(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.files[id]
	if !ok {
		return ErrNotFound
	}
	f.DownloadCount++
	return nil
}

// ---- Whiteboards ----

func (s *MemoryStore) CreateWhiteboard(_ context.Context, wb *model.Whiteboard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextWhiteboardID++
	wb.ID = s.nextWhiteboardID
	now := time.Now()
	wb.CreatedAt = now
	wb.UpdatedAt = now
	cp := *wb
	s.whiteboards[wb.ID] = &cp
	return nil
}

func (s *MemoryStore) SaveWhiteboard(_ context.Context, wb *model.Whiteboard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.whiteboards[wb.ID]; !ok {
		return ErrNotFound
	}
	wb.UpdatedAt = time.Now()
	cp := *wb
	s.whiteboards[wb.ID] = &cp
	return nil
}

func (s *MemoryStore) DeleteWhiteboard(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.whiteboards, id)
	return nil
}

func (s *MemoryStore) GetWhiteboardByID(_ context.Context, id uint) (*model.Whiteboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wb, ok := s.whiteboards[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *wb
	return &cp, nil
}

func (s *MemoryStore) ListWhiteboards(_ context.Context, filter ContentFilter) ([]model.Whiteboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	boards := []model.Whiteboard{}
	for _, wb := range s.whiteboards {
		if filter.matches(wb.AuthorID, wb.IsShared, wb.TeacherCode) {
			boards = append(boards, *wb)
		}
	}
	sort.Slice(boards, func(i, j int) bool {
		return boards[i].UpdatedAt.After(boards[j].UpdatedAt)
	})
	return boards, nil
}

// ---- Forum ----

func (s *MemoryStore) CreateQuestion(_ context.Context, q *model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextQuestionID++
	q.ID = s.nextQuestionID
	now := time.Now()
	q.CreatedAt = now
	q.UpdatedAt = now
	if q.Status == "" {
		q.Status = model.QuestionStatusOpen
	}
	s.questions[q.ID] = copyQuestion(q)
	s.hydrateQuestion(q)
	return nil
}

func (s *MemoryStore) SaveQuestion(_ context.Context, q *model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.questions[q.ID]
	if !ok {
		return ErrNotFound
	}
	q.UpdatedAt = time.Now()
	q.Answers = stored.Answers // answers are append-only via AddAnswer
	s.questions[q.ID] = copyQuestion(q)
	s.hydrateQuestion(q)
	return nil
}

func (s *MemoryStore) GetQuestionByID(_ context.Context, id uint) (*model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.questions[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := copyQuestion(q)
	s.hydrateQuestion(cp)
	return cp, nil
}

func (s *MemoryStore) ListQuestions(_ context.Context) ([]model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	questions := []model.Question{}
	for _, q := range s.questions {
		cp := copyQuestion(q)
		s.hydrateQuestion(cp)
		questions = append(questions, *cp)
	}
	sort.Slice(questions, func(i, j int) bool {
		return questions[i].CreatedAt.After(questions[j].CreatedAt)
	})
	return questions, nil
}

func (s *MemoryStore) AddAnswer(_ context.Context, answer *model.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.questions[answer.QuestionID]
	if !ok {
		return ErrNotFound
	}
	s.nextAnswerID++
	answer.ID = s.nextAnswerID
	answer.CreatedAt = time.Now()
	q.Answers = append(q.Answers, *answer)
	return nil
}

// matches applies the ContentFilter visibility rule to one item.
func (f ContentFilter) matches(ownerID uint, isShared bool, code *string) bool {
	if f.SharedOnly {
		return ownerID == f.AuthorID && isShared
	}
	if ownerID == f.AuthorID {
		return true
	}
	if isShared && code != nil {
		for _, c := range f.SharedCodes {
			if c == *code {
				return true
			}
		}
	}
	return false
}

func copyUser(u *model.User) *model.User {
	cp := *u
	cp.TeacherCodes = append(cp.TeacherCodes[:0:0], u.TeacherCodes...)
	if u.TeacherCode != nil {
		code := *u.TeacherCode
		cp.TeacherCode = &code
	}
	return &cp
}

func copyQuestion(q *model.Question) *model.Question {
	cp := *q
	cp.Answers = append(cp.Answers[:0:0], q.Answers...)
	cp.Author = nil
	cp.AssignedTeacher = nil
	return &cp
}

// hydrateQuestion fills the author references the way the GORM store preloads
// them.
func (s *MemoryStore) hydrateQuestion(q *model.Question) {
	if u, ok := s.users[q.AuthorID]; ok {
		q.Author = copyUser(u)
	}
	if q.AssignedTeacherID != nil {
		if u, ok := s.users[*q.AssignedTeacherID]; ok {
			q.AssignedTeacher = copyUser(u)
		}
	}
	for i := range q.Answers {
		if u, ok := s.users[q.Answers[i].AuthorID]; ok {
			q.Answers[i].Author = copyUser(u)
		}
	}
}
