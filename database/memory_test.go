package database

import (
	"context"
	"errors"
	"testing"

	"github.com/saikumarreddyappidi/Education/model"
)

func newMemoryStore(t *testing.T) *MemoryStore {
	t.Helper()
	store, err := StartMemory()
	if err != nil {
		t.Fatalf("StartMemory: %v", err)
	}
	return store
}

func strptr(s string) *string { return &s }

func TestCreateUserRejectsDuplicateRegistrationNumber(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()

	first := &model.User{RegistrationNumber: "STU001", PasswordHash: "x", Role: model.RoleStudent}
	if err := store.CreateUser(ctx, first); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	second := &model.User{RegistrationNumber: "STU001", PasswordHash: "x", Role: model.RoleStudent}
	if err := store.CreateUser(ctx, second); !errors.Is(err, ErrDuplicate) {
		t.Errorf("CreateUser with duplicate registration number = %v, want ErrDuplicate", err)
	}
}

func TestCreateUserRejectsDuplicateStaffCode(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()

	first := &model.User{
		RegistrationNumber: "STF001",
		PasswordHash:       "x",
		Role:               model.RoleStaff,
		Subject:            "Math",
		TeacherCode:        strptr("TCMATH1"),
	}
	if err := store.CreateUser(ctx, first); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	second := &model.User{
		RegistrationNumber: "STF002",
		PasswordHash:       "x",
		Role:               model.RoleStaff,
		Subject:            "Math",
		TeacherCode:        strptr("TCMATH1"),
	}
	if err := store.CreateUser(ctx, second); !errors.Is(err, ErrDuplicate) {
		t.Errorf("CreateUser with duplicate staff code = %v, want ErrDuplicate", err)
	}
}

func TestCreateUserAllowsStudentMirrorOfStaffCode(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()

	staff := &model.User{
		RegistrationNumber: "STF001",
		PasswordHash:       "x",
		Role:               model.RoleStaff,
		Subject:            "Math",
		TeacherCode:        strptr("TCMATH1"),
	}
	if err := store.CreateUser(ctx, staff); err != nil {
		t.Fatalf("CreateUser staff: %v", err)
	}

	// A student registering with a valid teacher code carries that code as a
	// mirror from the start. Code uniqueness applies to staff only.
	student := &model.User{
		RegistrationNumber: "STU001",
		PasswordHash:       "x",
		Role:               model.RoleStudent,
		TeacherCode:        strptr("TCMATH1"),
		TeacherCodes:       []string{"TCMATH1"},
	}
	if err := store.CreateUser(ctx, student); err != nil {
		t.Fatalf("CreateUser student with mirrored code: %v", err)
	}

	got, err := store.GetUserByID(ctx, student.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got.SharingCode() != "TCMATH1" {
		t.Errorf("student mirror code = %q, want TCMATH1", got.SharingCode())
	}
}

func TestSaveUserPersistsFirstConnectMirror(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()

	staff := &model.User{
		RegistrationNumber: "STF001",
		PasswordHash:       "x",
		Role:               model.RoleStaff,
		Subject:            "Math",
		TeacherCode:        strptr("TC4F8A2B"),
	}
	if err := store.CreateUser(ctx, staff); err != nil {
		t.Fatalf("CreateUser staff: %v", err)
	}

	student := &model.User{RegistrationNumber: "STU001", PasswordHash: "x", Role: model.RoleStudent}
	if err := store.CreateUser(ctx, student); err != nil {
		t.Fatalf("CreateUser student: %v", err)
	}

	student.TeacherCodes = append(student.TeacherCodes, "TC4F8A2B")
	student.TeacherCode = strptr("TC4F8A2B")
	if err := store.SaveUser(ctx, student); err != nil {
		t.Fatalf("SaveUser after first connect: %v", err)
	}

	got, err := store.GetUserByID(ctx, student.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got.SharingCode() != "TC4F8A2B" {
		t.Errorf("legacy mirror = %q, want TC4F8A2B", got.SharingCode())
	}
	if !got.HasConnectedCode("TC4F8A2B") {
		t.Error("connected code set missing TC4F8A2B")
	}
}

func TestTeacherCodeInUseIgnoresStudentMirrors(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()

	student := &model.User{
		RegistrationNumber: "STU001",
		PasswordHash:       "x",
		Role:               model.RoleStudent,
		TeacherCode:        strptr("TCMATH1"),
	}
	if err := store.CreateUser(ctx, student); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	inUse, err := store.TeacherCodeInUse(ctx, "TCMATH1")
	if err != nil {
		t.Fatalf("TeacherCodeInUse: %v", err)
	}
	if inUse {
		t.Error("student mirror must not reserve a code against staff registration")
	}

	staff := &model.User{
		RegistrationNumber: "STF001",
		PasswordHash:       "x",
		Role:               model.RoleStaff,
		Subject:            "Math",
		TeacherCode:        strptr("TCMATH1"),
	}
	if err := store.CreateUser(ctx, staff); err != nil {
		t.Fatalf("CreateUser staff: %v", err)
	}

	inUse, err = store.TeacherCodeInUse(ctx, "TCMATH1")
	if err != nil {
		t.Fatalf("TeacherCodeInUse: %v", err)
	}
	if !inUse {
		t.Error("staff-held code must report in use")
	}
}
