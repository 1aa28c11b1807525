package services

import (
	"context"
	"testing"

	"github.com/saikumarreddyappidi/Education/database"
	"github.com/saikumarreddyappidi/Education/model"
)

type forumFixture struct {
	store   *database.MemoryStore
	staff   *model.User
	student *model.User
}

func newForum(t *testing.T) (*ForumService, *forumFixture) {
	t.Helper()
	store := newTestStore(t)
	return NewForumService(store, NewCodeRegistry(store)), &forumFixture{
		store:   store,
		staff:   createStaff(t, store, "STAFF1", "TCMATH1"),
		student: createStudent(t, store, "STU1"),
	}
}

func TestCreateQuestionWithoutTeacher(t *testing.T) {
	forum, fx := newForum(t)

	q, err := forum.CreateQuestion(context.Background(), fx.student, "Integrals?", "How do I solve this?", []string{"calculus"}, "")
	if err != nil {
		t.Fatalf("CreateQuestion returned error: %v", err)
	}
	if q.Status != model.QuestionStatusOpen {
		t.Errorf("new question status = %q", q.Status)
	}
	if q.AssignedTeacherID != nil {
		t.Error("no teacher should be assigned")
	}
	if q.Author == nil || q.Author.RegistrationNumber != "STU1" {
		t.Errorf("author should be preloaded, got %+v", q.Author)
	}
}

func TestCreateQuestionBindsTeacherByCode(t *testing.T) {
	forum, fx := newForum(t)

	q, err := forum.CreateQuestion(context.Background(), fx.student, "Integrals?", "body", nil, "TCMATH1")
	if err != nil {
		t.Fatalf("CreateQuestion returned error: %v", err)
	}
	if q.AssignedTeacherID == nil || *q.AssignedTeacherID != fx.staff.ID {
		t.Errorf("expected assignment to staff %d, got %v", fx.staff.ID, q.AssignedTeacherID)
	}
	if q.AssignedTeacherCode == nil || *q.AssignedTeacherCode != "TCMATH1" {
		t.Errorf("expected code snapshot, got %v", q.AssignedTeacherCode)
	}
}

func TestCreateQuestionFailsOnUnknownCode(t *testing.T) {
	forum, fx := newForum(t)

	if _, err := forum.CreateQuestion(context.Background(), fx.student, "T", "b", nil, "TCWRONG"); err != ErrTeacherNotFound {
		t.Fatalf("expected ErrTeacherNotFound, got %v", err)
	}

	questions, err := forum.ListQuestions(context.Background())
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if len(questions) != 0 {
		t.Errorf("failed creation must not persist a question, got %d", len(questions))
	}
}

func TestAnswersAllowedRegardlessOfStatus(t *testing.T) {
	forum, fx := newForum(t)
	ctx := context.Background()

	q, err := forum.CreateQuestion(ctx, fx.student, "T", "b", nil, "")
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if _, err := forum.Resolve(ctx, q.ID, fx.student, model.QuestionStatusResolved); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	answer, err := forum.AddAnswer(ctx, q.ID, fx.staff, "Use substitution.")
	if err != nil {
		t.Fatalf("answers must append to resolved questions too: %v", err)
	}
	if answer.Author == nil || answer.Author.RegistrationNumber != "STAFF1" {
		t.Errorf("answer author not attached: %+v", answer.Author)
	}

	reloaded, err := forum.GetQuestion(ctx, q.ID)
	if err != nil {
		t.Fatalf("GetQuestion: %v", err)
	}
	if len(reloaded.Answers) != 1 {
		t.Errorf("expected 1 answer, got %d", len(reloaded.Answers))
	}
}

func TestResolveGuards(t *testing.T) {
	forum, fx := newForum(t)
	ctx := context.Background()

	q, err := forum.CreateQuestion(ctx, fx.student, "T", "b", nil, "")
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}

	stranger := &model.User{ID: 999, Role: model.RoleStudent, RegistrationNumber: "STU2"}
	if _, err := forum.Resolve(ctx, q.ID, stranger, model.QuestionStatusResolved); err != ErrForbidden {
		t.Errorf("non-author student must not resolve, got %v", err)
	}

	// Any staff may resolve, assigned or not.
	if _, err := forum.Resolve(ctx, q.ID, fx.staff, model.QuestionStatusResolved); err != nil {
		t.Errorf("staff resolve failed: %v", err)
	}
}

func TestResolveRejectsReopen(t *testing.T) {
	forum, fx := newForum(t)
	ctx := context.Background()

	q, err := forum.CreateQuestion(ctx, fx.student, "T", "b", nil, "")
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}

	if _, err := forum.Resolve(ctx, q.ID, fx.student, model.QuestionStatusOpen); err != ErrInvalidStatus {
		t.Errorf("reopening must be rejected, got %v", err)
	}
	if _, err := forum.Resolve(ctx, q.ID, fx.student, "closed"); err != ErrInvalidStatus {
		t.Errorf("unknown status must be rejected, got %v", err)
	}
}

func TestResolveTwiceIsNoOp(t *testing.T) {
	forum, fx := newForum(t)
	ctx := context.Background()

	q, err := forum.CreateQuestion(ctx, fx.student, "T", "b", nil, "")
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}

	if _, err := forum.Resolve(ctx, q.ID, fx.student, model.QuestionStatusResolved); err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	resolved, err := forum.Resolve(ctx, q.ID, fx.student, model.QuestionStatusResolved)
	if err != nil {
		t.Fatalf("second resolve should be a no-op success, got %v", err)
	}
	if resolved.Status != model.QuestionStatusResolved {
		t.Errorf("status = %q", resolved.Status)
	}
}
