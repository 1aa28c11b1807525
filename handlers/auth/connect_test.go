package auth

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/saikumarreddyappidi/Education/database"
	"github.com/saikumarreddyappidi/Education/model"
	authutil "github.com/saikumarreddyappidi/Education/utils/auth"
)

func strptr(s string) *string { return &s }

func newConnectApp(t *testing.T) (*fiber.App, *database.MemoryStore, uint) {
	t.Helper()

	store, err := database.StartMemory()
	if err != nil {
		t.Fatalf("StartMemory: %v", err)
	}
	ctx := context.Background()

	mathStaff := &model.User{
		RegistrationNumber: "STF001",
		PasswordHash:       "x",
		Role:               model.RoleStaff,
		Subject:            "Math",
		TeacherCode:        strptr("TCMATH1"),
	}
	if err := store.CreateUser(ctx, mathStaff); err != nil {
		t.Fatalf("CreateUser math staff: %v", err)
	}

	physicsStaff := &model.User{
		RegistrationNumber: "STF002",
		PasswordHash:       "x",
		Role:               model.RoleStaff,
		Subject:            "Physics",
		TeacherCode:        strptr("TCPHYS1"),
	}
	if err := store.CreateUser(ctx, physicsStaff); err != nil {
		t.Fatalf("CreateUser physics staff: %v", err)
	}

	student := &model.User{RegistrationNumber: "STU001", PasswordHash: "x", Role: model.RoleStudent}
	if err := store.CreateUser(ctx, student); err != nil {
		t.Fatalf("CreateUser student: %v", err)
	}

	jwtManager := authutil.NewJWTManager(authutil.JWTConfig{Secret: "test-secret", Expiry: time.Hour, Issuer: "education-api"})
	handler := NewAuthHandler(store, jwtManager, nil)

	app := fiber.New()
	asStudent := func(c *fiber.Ctx) error {
		c.Locals("user_id", student.ID)
		return c.Next()
	}
	app.Post("/connect-teacher", asStudent, handler.ConnectTeacher)
	app.Post("/connect-staff", asStudent, handler.ConnectStaff)

	return app, store, student.ID
}

func postJSON(t *testing.T, app *fiber.App, path, body string) int {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp.StatusCode
}

func TestConnectStaffIgnoresTeacherCode(t *testing.T) {
	app, store, studentID := newConnectApp(t)

	// Both identifiers in the body; the staff endpoint only honors staffId.
	status := postJSON(t, app, "/connect-staff", `{"teacherCode":"TCMATH1","staffId":"STF002"}`)
	if status != fiber.StatusOK {
		t.Fatalf("connect-staff status = %d, want 200", status)
	}

	student, err := store.GetUserByID(context.Background(), studentID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if !student.HasConnectedCode("TCPHYS1") {
		t.Error("expected connection to STF002's code TCPHYS1")
	}
	if student.HasConnectedCode("TCMATH1") {
		t.Error("teacherCode in the body must not be honored on connect-staff")
	}
}

func TestConnectStaffRequiresStaffID(t *testing.T) {
	app, _, _ := newConnectApp(t)

	status := postJSON(t, app, "/connect-staff", `{"teacherCode":"TCMATH1"}`)
	if status != fiber.StatusBadRequest {
		t.Errorf("connect-staff without staffId status = %d, want 400", status)
	}
}

func TestConnectTeacherPrefersCode(t *testing.T) {
	app, store, studentID := newConnectApp(t)

	status := postJSON(t, app, "/connect-teacher", `{"teacherCode":"TCMATH1","staffId":"STF002"}`)
	if status != fiber.StatusOK {
		t.Fatalf("connect-teacher status = %d, want 200", status)
	}

	student, err := store.GetUserByID(context.Background(), studentID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if !student.HasConnectedCode("TCMATH1") {
		t.Error("expected connection via teacher code TCMATH1")
	}
}
