package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/saikumarreddyappidi/Education/database"
	"github.com/saikumarreddyappidi/Education/model"
)

const (
	codePrefix      = "TC"
	codeRandomChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeRandomLen   = 6
	codeMaxAttempts = 10
)

// CodeRegistry issues and resolves teacher codes, the per-staff sharing keys.
// A code is attached to a staff account once at registration and never
// reassigned.
type CodeRegistry struct {
	store database.Storage
	rand  *rand.Rand
}

// NewCodeRegistry creates a registry backed by the given store.
func NewCodeRegistry(store database.Storage) *CodeRegistry {
	return &CodeRegistry{
		store: store,
		rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// IssueCode returns the code to attach to a new staff account. A requested
// code is accepted only if no staff account already holds it (case-sensitive
// exact match); an empty request gets a generated code.
//
// The uniqueness probe here is a check-then-act: another registration can
// claim the same code between the read and the insert. The staff-scoped
// unique index on users.teacher_code closes that window; callers must still
// treat a duplicate error from the insert as ErrDuplicateCode.
func (r *CodeRegistry) IssueCode(ctx context.Context, requested string) (string, error) {
	if requested != "" {
		inUse, err := r.store.TeacherCodeInUse(ctx, requested)
		if err != nil {
			return "", err
		}
		if inUse {
			return "", ErrDuplicateCode
		}
		return requested, nil
	}
	return r.generateCode(ctx)
}

// generateCode draws random candidates until one is collision-free, falling
// back to a timestamp-derived code after codeMaxAttempts draws. The fallback
// is unique in practice, not formally proven.
func (r *CodeRegistry) generateCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < codeMaxAttempts; attempt++ {
		candidate := r.randomCode()
		inUse, err := r.store.TeacherCodeInUse(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !inUse {
			return candidate, nil
		}
	}
	return fmt.Sprintf("%s%d%03d", codePrefix, time.Now().UnixMilli(), r.rand.Intn(1000)), nil
}

func (r *CodeRegistry) randomCode() string {
	buf := make([]byte, codeRandomLen)
	for i := range buf {
		buf[i] = codeRandomChars[r.rand.Intn(len(codeRandomChars))]
	}
	return codePrefix + string(buf)
}

// ResolveCode resolves a teacher code to its staff account.
func (r *CodeRegistry) ResolveCode(ctx context.Context, code string) (*model.User, error) {
	teacher, err := r.store.GetStaffByTeacherCode(ctx, code)
	if err != nil {
		if err == database.ErrNotFound {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}
	return teacher, nil
}
