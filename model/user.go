package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Role values for User.Role
const (
	RoleStudent = "student"
	RoleStaff   = "staff"
)

// User represents a registered user in the system. The registration number is
// the login handle. Staff carry a unique teacher code (their sharing key);
// students carry the set of teacher codes they have connected to, plus a
// legacy single-code field mirroring the first connection.
type User struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	RegistrationNumber string         `gorm:"uniqueIndex;not null" json:"registrationNumber"`
	PasswordHash       string         `gorm:"not null" json:"-"` // Never expose password in JSON
	Role               string         `gorm:"type:varchar(20);not null" json:"role"` // student, staff

	// Student profile
	Course   string `json:"course,omitempty"`
	Year     string `json:"year,omitempty"`
	Semester string `json:"semester,omitempty"`

	// Staff profile
	Subject string `json:"subject,omitempty"`

	// TeacherCode is the staff sharing key, assigned once at registration and
	// unique among staff (partial index created in GORMStore.Init). On
	// students it mirrors the first connected code, so the same value appears
	// on the staff row and on every student linked to it.
	TeacherCode *string `gorm:"index" json:"teacherCode,omitempty"`

	// TeacherCodes is the set of codes a student has connected to. Grows
	// monotonically; there is no disconnect operation.
	TeacherCodes pq.StringArray `gorm:"type:text[]" json:"teacherCodes"`
}

// IsStaff reports whether the user holds the staff role.
func (u *User) IsStaff() bool {
	return u.Role == RoleStaff
}

// SharingCode returns the user's single teacher code, or "" if none is assigned.
func (u *User) SharingCode() string {
	if u.TeacherCode == nil {
		return ""
	}
	return *u.TeacherCode
}

// ConnectedCodes returns every code the user can read shared content under:
// the teacherCodes set plus the legacy single code, deduplicated.
func (u *User) ConnectedCodes() []string {
	seen := make(map[string]bool, len(u.TeacherCodes)+1)
	codes := make([]string, 0, len(u.TeacherCodes)+1)
	for _, code := range u.TeacherCodes {
		if code != "" && !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	if c := u.SharingCode(); c != "" && !seen[c] {
		codes = append(codes, c)
	}
	return codes
}

// HasConnectedCode reports whether code is already in the user's set.
func (u *User) HasConnectedCode(code string) bool {
	for _, c := range u.TeacherCodes {
		if c == code {
			return true
		}
	}
	return false
}
