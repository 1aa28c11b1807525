package services

import (
	"context"

	"github.com/saikumarreddyappidi/Education/database"
	"github.com/saikumarreddyappidi/Education/model"
)

// LinkingService connects students to teachers. The relationship is one-way
// and append-only: a connected code is never removed.
type LinkingService struct {
	store    database.Storage
	registry *CodeRegistry
}

// NewLinkingService creates a linking service.
func NewLinkingService(store database.Storage, registry *CodeRegistry) *LinkingService {
	return &LinkingService{store: store, registry: registry}
}

// LinkResult is the confirmation returned after a successful connect.
type LinkResult struct {
	TeacherName    string   `json:"teacherName"`
	TeacherSubject string   `json:"teacherSubject"`
	TeacherCode    string   `json:"teacherCode"`
	ConnectedCodes []string `json:"connectedCodes"`
	// StaffName/StaffSubject duplicate the teacher fields for clients using
	// the connect-staff spelling of the endpoint.
	StaffName    string `json:"staffName"`
	StaffSubject string `json:"staffSubject"`
}

// Connect links the calling user to a teacher identified by teacher code or
// staff registration number. At least one identifier is required; the code is
// tried first. Adding an already-connected code is a no-op, and the legacy
// single-code field is set on first connection only.
func (s *LinkingService) Connect(ctx context.Context, userID uint, teacherCode, staffID string) (*LinkResult, error) {
	if teacherCode == "" && staffID == "" {
		return nil, ErrMissingIdentifier
	}

	var teacher *model.User
	if teacherCode != "" {
		found, err := s.registry.ResolveCode(ctx, teacherCode)
		if err != nil && err != ErrTeacherNotFound {
			return nil, err
		}
		teacher = found
	}
	if teacher == nil && staffID != "" {
		found, err := s.store.GetStaffByRegistrationNumber(ctx, staffID)
		if err != nil && err != database.ErrNotFound {
			return nil, err
		}
		teacher = found
	}
	if teacher == nil {
		return nil, ErrTeacherNotFound
	}

	code := teacher.SharingCode()
	if code == "" {
		// Should be impossible post-registration; guarded anyway.
		return nil, ErrNoSharingCode
	}

	student, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !student.HasConnectedCode(code) {
		student.TeacherCodes = append(student.TeacherCodes, code)
	}
	if student.TeacherCode == nil {
		// Legacy single-code mirror: first connection wins, never overwritten.
		student.TeacherCode = &code
	}

	if err := s.store.SaveUser(ctx, student); err != nil {
		return nil, err
	}

	return &LinkResult{
		TeacherName:    teacher.RegistrationNumber,
		TeacherSubject: teacher.Subject,
		TeacherCode:    code,
		ConnectedCodes: student.TeacherCodes,
		StaffName:      teacher.RegistrationNumber,
		StaffSubject:   teacher.Subject,
	}, nil
}
