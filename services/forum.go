package services

import (
	"context"

	"github.com/lib/pq"

	"github.com/saikumarreddyappidi/Education/database"
	"github.com/saikumarreddyappidi/Education/model"
)

// ForumService handles question threads: creation with optional teacher
// assignment, append-only answers, and the one-way open -> resolved status
// transition.
type ForumService struct {
	store    database.Storage
	registry *CodeRegistry
}

// NewForumService creates a forum service.
func NewForumService(store database.Storage, registry *CodeRegistry) *ForumService {
	return &ForumService{store: store, registry: registry}
}

// CreateQuestion creates a question for the author. A supplied teacher code is
// resolved through the registry and bound to the question; an unresolvable
// code fails the whole creation.
func (s *ForumService) CreateQuestion(ctx context.Context, author *model.User, title, content string, tags []string, teacherCode string) (*model.Question, error) {
	question := &model.Question{
		Title:    title,
		Content:  content,
		Tags:     pq.StringArray(tags),
		Status:   model.QuestionStatusOpen,
		AuthorID: author.ID,
	}

	if teacherCode != "" {
		teacher, err := s.registry.ResolveCode(ctx, teacherCode)
		if err != nil {
			return nil, err
		}
		question.AssignedTeacherID = &teacher.ID
		question.AssignedTeacherCode = teacher.TeacherCode
	}

	if err := s.store.CreateQuestion(ctx, question); err != nil {
		return nil, err
	}
	return s.store.GetQuestionByID(ctx, question.ID)
}

// ListQuestions returns every thread, newest first, with authors and answers
// attached.
func (s *ForumService) ListQuestions(ctx context.Context) ([]model.Question, error) {
	return s.store.ListQuestions(ctx)
}

// GetQuestion returns one thread with authors and answers attached.
func (s *ForumService) GetQuestion(ctx context.Context, id uint) (*model.Question, error) {
	return s.store.GetQuestionByID(ctx, id)
}

// AddAnswer appends an answer to a question. Any authenticated user may answer
// any question, resolved ones included.
func (s *ForumService) AddAnswer(ctx context.Context, questionID uint, author *model.User, content string) (*model.Answer, error) {
	if _, err := s.store.GetQuestionByID(ctx, questionID); err != nil {
		return nil, err
	}

	answer := &model.Answer{
		QuestionID: questionID,
		Content:    content,
		AuthorID:   author.ID,
	}
	if err := s.store.AddAnswer(ctx, answer); err != nil {
		return nil, err
	}
	answer.Author = author
	return answer, nil
}

// Resolve moves a question from open to resolved. Only the question's author
// or any staff account may do so; there is no reverse transition, so the only
// accepted status value is "resolved". Resolving an already-resolved question
// is a no-op.
func (s *ForumService) Resolve(ctx context.Context, questionID uint, requester *model.User, status string) (*model.Question, error) {
	if status != model.QuestionStatusResolved {
		return nil, ErrInvalidStatus
	}

	question, err := s.store.GetQuestionByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	if question.AuthorID != requester.ID && !requester.IsStaff() {
		return nil, ErrForbidden
	}

	if question.Status != model.QuestionStatusResolved {
		question.Status = model.QuestionStatusResolved
		if err := s.store.SaveQuestion(ctx, question); err != nil {
			return nil, err
		}
	}
	return question, nil
}
