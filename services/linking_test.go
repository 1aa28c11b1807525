package services

import (
	"context"
	"reflect"
	"testing"
)

func TestConnectByTeacherCode(t *testing.T) {
	store := newTestStore(t)
	linking := NewLinkingService(store, NewCodeRegistry(store))
	createStaff(t, store, "STAFF1", "TCMATH1")
	student := createStudent(t, store, "STU1")

	result, err := linking.Connect(context.Background(), student.ID, "TCMATH1", "")
	if err != nil {
		t.Fatalf("Connect returned error: %v", err)
	}

	if result.TeacherName != "STAFF1" || result.TeacherCode != "TCMATH1" {
		t.Errorf("unexpected confirmation: %+v", result)
	}
	if result.StaffName != result.TeacherName || result.StaffSubject != result.TeacherSubject {
		t.Errorf("staff aliases should mirror teacher fields: %+v", result)
	}
	if !reflect.DeepEqual([]string(result.ConnectedCodes), []string{"TCMATH1"}) {
		t.Errorf("expected connectedCodes [TCMATH1], got %v", result.ConnectedCodes)
	}
}

func TestConnectByStaffRegistrationNumber(t *testing.T) {
	store := newTestStore(t)
	linking := NewLinkingService(store, NewCodeRegistry(store))
	createStaff(t, store, "STAFF1", "TCMATH1")
	student := createStudent(t, store, "STU1")

	result, err := linking.Connect(context.Background(), student.ID, "", "STAFF1")
	if err != nil {
		t.Fatalf("Connect returned error: %v", err)
	}
	if result.TeacherCode != "TCMATH1" {
		t.Errorf("staffId path should yield the teacher's code, got %q", result.TeacherCode)
	}
}

func TestConnectPrefersCodeOverStaffID(t *testing.T) {
	store := newTestStore(t)
	linking := NewLinkingService(store, NewCodeRegistry(store))
	createStaff(t, store, "STAFF1", "TCMATH1")
	createStaff(t, store, "STAFF2", "TCPHYS1")
	student := createStudent(t, store, "STU1")

	result, err := linking.Connect(context.Background(), student.ID, "TCMATH1", "STAFF2")
	if err != nil {
		t.Fatalf("Connect returned error: %v", err)
	}
	if result.TeacherName != "STAFF1" {
		t.Errorf("code should win over staffId, connected to %q", result.TeacherName)
	}
}

func TestConnectFallsBackToStaffIDOnBadCode(t *testing.T) {
	store := newTestStore(t)
	linking := NewLinkingService(store, NewCodeRegistry(store))
	createStaff(t, store, "STAFF2", "TCPHYS1")
	student := createStudent(t, store, "STU1")

	result, err := linking.Connect(context.Background(), student.ID, "TCWRONG", "STAFF2")
	if err != nil {
		t.Fatalf("Connect returned error: %v", err)
	}
	if result.TeacherName != "STAFF2" {
		t.Errorf("expected fallback to staffId, connected to %q", result.TeacherName)
	}
}

func TestConnectIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	linking := NewLinkingService(store, NewCodeRegistry(store))
	createStaff(t, store, "STAFF1", "TCMATH1")
	student := createStudent(t, store, "STU1")

	for i := 0; i < 3; i++ {
		result, err := linking.Connect(context.Background(), student.ID, "TCMATH1", "")
		if err != nil {
			t.Fatalf("Connect #%d returned error: %v", i+1, err)
		}
		if len(result.ConnectedCodes) != 1 {
			t.Fatalf("Connect #%d duplicated the code: %v", i+1, result.ConnectedCodes)
		}
	}
}

func TestConnectLegacyCodeFirstWins(t *testing.T) {
	store := newTestStore(t)
	linking := NewLinkingService(store, NewCodeRegistry(store))
	createStaff(t, store, "STAFF1", "TCMATH1")
	createStaff(t, store, "STAFF2", "TCPHYS1")
	student := createStudent(t, store, "STU1")

	ctx := context.Background()
	if _, err := linking.Connect(ctx, student.ID, "TCMATH1", ""); err != nil {
		t.Fatalf("first connect: %v", err)
	}
	result, err := linking.Connect(ctx, student.ID, "TCPHYS1", "")
	if err != nil {
		t.Fatalf("second connect: %v", err)
	}

	if len(result.ConnectedCodes) != 2 {
		t.Errorf("expected two connected codes, got %v", result.ConnectedCodes)
	}

	saved, err := store.GetUserByID(ctx, student.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if saved.TeacherCode == nil || *saved.TeacherCode != "TCMATH1" {
		t.Errorf("legacy single code should keep the first connection, got %v", saved.TeacherCode)
	}
}

func TestConnectRequiresAnIdentifier(t *testing.T) {
	store := newTestStore(t)
	linking := NewLinkingService(store, NewCodeRegistry(store))
	student := createStudent(t, store, "STU1")

	if _, err := linking.Connect(context.Background(), student.ID, "", ""); err != ErrMissingIdentifier {
		t.Errorf("expected ErrMissingIdentifier, got %v", err)
	}
}

func TestConnectUnknownTeacher(t *testing.T) {
	store := newTestStore(t)
	linking := NewLinkingService(store, NewCodeRegistry(store))
	student := createStudent(t, store, "STU1")

	if _, err := linking.Connect(context.Background(), student.ID, "TCWRONG", "NOBODY"); err != ErrTeacherNotFound {
		t.Errorf("expected ErrTeacherNotFound, got %v", err)
	}
}
