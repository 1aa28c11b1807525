package services

import (
	"context"
	"testing"

	"github.com/lib/pq"

	"github.com/saikumarreddyappidi/Education/model"
)

func strptr(s string) *string { return &s }

func TestFeedFilterStaffSeesOwnOnly(t *testing.T) {
	staff := &model.User{ID: 7, Role: model.RoleStaff}
	filter := FeedFilter(staff)

	if filter.AuthorID != 7 {
		t.Errorf("expected AuthorID 7, got %d", filter.AuthorID)
	}
	if len(filter.SharedCodes) != 0 || filter.SharedOnly {
		t.Errorf("staff feed must not widen to shared items: %+v", filter)
	}
}

func TestFeedFilterStudentIncludesConnectedCodes(t *testing.T) {
	legacy := "TCLEGCY"
	student := &model.User{
		ID:           3,
		Role:         model.RoleStudent,
		TeacherCode:  &legacy,
		TeacherCodes: pq.StringArray{"TCMATH1", "TCPHYS1"},
	}
	filter := FeedFilter(student)

	if len(filter.SharedCodes) != 3 {
		t.Errorf("expected set plus legacy code, got %v", filter.SharedCodes)
	}
}

func TestCanView(t *testing.T) {
	staff := &model.User{ID: 1, Role: model.RoleStaff, TeacherCode: strptr("TCMATH1")}
	connected := &model.User{ID: 2, Role: model.RoleStudent, TeacherCodes: pq.StringArray{"TCMATH1"}}
	stranger := &model.User{ID: 3, Role: model.RoleStudent}

	cases := []struct {
		name     string
		user     *model.User
		ownerID  uint
		isShared bool
		code     *string
		want     bool
	}{
		{"owner always sees", staff, 1, false, nil, true},
		{"connected student sees shared", connected, 1, true, strptr("TCMATH1"), true},
		{"stranger blocked from shared", stranger, 1, true, strptr("TCMATH1"), false},
		{"connected student blocked from unshared", connected, 1, false, strptr("TCMATH1"), false},
		{"shared without code invisible", connected, 1, true, nil, false},
		{"staff never sees peers' shared items", staff, 9, true, strptr("TCPHYS1"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanView(tc.user, tc.ownerID, tc.isShared, tc.code); got != tc.want {
				t.Errorf("CanView = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanMutateIsOwnerOnly(t *testing.T) {
	staff := &model.User{ID: 1, Role: model.RoleStaff}
	if !CanMutate(staff, 1) {
		t.Error("owner must be allowed to mutate")
	}
	if CanMutate(staff, 2) {
		t.Error("staff role must not grant mutation on others' items")
	}
}

func TestSharingFields(t *testing.T) {
	staff := &model.User{ID: 1, Role: model.RoleStaff, TeacherCode: strptr("TCMATH1")}
	codeless := &model.User{ID: 2, Role: model.RoleStaff}
	student := &model.User{ID: 3, Role: model.RoleStudent, TeacherCode: strptr("TCMATH1")}

	if shared, code := SharingFields(staff, true); !shared || code == nil || *code != "TCMATH1" {
		t.Errorf("staff sharing should stamp the code, got shared=%v code=%v", shared, code)
	}
	if shared, code := SharingFields(staff, false); shared || code != nil {
		t.Errorf("unsharing should clear the code, got shared=%v code=%v", shared, code)
	}
	if shared, _ := SharingFields(student, true); shared {
		t.Error("students can never share")
	}
	if shared, _ := SharingFields(codeless, true); shared {
		t.Error("staff without a code cannot share")
	}
}

func TestDiscoveryFilterListsSharedOnly(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	staff := createStaff(t, store, "STAFF1", "TCMATH1")

	shared := &model.Note{Title: "Exam Tips", Content: "x", AuthorID: staff.ID,
		AuthorName: staff.RegistrationNumber, IsShared: true, TeacherCode: staff.TeacherCode}
	private := &model.Note{Title: "Draft", Content: "x", AuthorID: staff.ID,
		AuthorName: staff.RegistrationNumber}
	for _, n := range []*model.Note{shared, private} {
		if err := store.CreateNote(ctx, n); err != nil {
			t.Fatalf("CreateNote: %v", err)
		}
	}

	notes, err := store.ListNotes(ctx, DiscoveryFilter(staff))
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(notes) != 1 || notes[0].Title != "Exam Tips" {
		t.Errorf("discovery must list shared items only, got %+v", notes)
	}
}

func TestStudentFeedSeesConnectedSharedNotes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	staff := createStaff(t, store, "STAFF1", "TCMATH1")
	other := createStaff(t, store, "STAFF2", "TCPHYS1")
	student := createStudent(t, store, "STU1")
	student.TeacherCodes = pq.StringArray{"TCMATH1"}
	if err := store.SaveUser(ctx, student); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}

	notes := []*model.Note{
		{Title: "Mine", Content: "x", AuthorID: student.ID, AuthorName: "STU1"},
		{Title: "Connected", Content: "x", AuthorID: staff.ID, AuthorName: "STAFF1",
			IsShared: true, TeacherCode: staff.TeacherCode},
		{Title: "Unconnected", Content: "x", AuthorID: other.ID, AuthorName: "STAFF2",
			IsShared: true, TeacherCode: other.TeacherCode},
		{Title: "Private", Content: "x", AuthorID: staff.ID, AuthorName: "STAFF1"},
	}
	for _, n := range notes {
		if err := store.CreateNote(ctx, n); err != nil {
			t.Fatalf("CreateNote: %v", err)
		}
	}

	feed, err := store.ListNotes(ctx, FeedFilter(student))
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	titles := map[string]bool{}
	for _, n := range feed {
		titles[n.Title] = true
	}
	if len(feed) != 2 || !titles["Mine"] || !titles["Connected"] {
		t.Errorf("unexpected student feed: %+v", titles)
	}
}
