package model

import (
	"time"

	"github.com/lib/pq"
)

// QuestionStatus values. A question only ever moves open -> resolved; there is
// no reopen path.
const (
	QuestionStatusOpen     = "open"
	QuestionStatusResolved = "resolved"
)

// Question is a forum thread. Students may bind a question to a teacher at
// creation time by supplying the teacher's code; the resolved teacher and the
// code snapshot are stored together. Questions are never deleted.
type Question struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title   string         `gorm:"not null" json:"title"`
	Content string         `gorm:"type:text;not null" json:"content"`
	Tags    pq.StringArray `gorm:"type:text[]" json:"tags"`
	Status  string         `gorm:"type:varchar(20);default:'open'" json:"status"`

	AuthorID uint  `gorm:"index;not null" json:"-"`
	Author   *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	AssignedTeacherID   *uint   `gorm:"index" json:"-"`
	AssignedTeacher     *User   `gorm:"foreignKey:AssignedTeacherID" json:"assignedTeacher,omitempty"`
	AssignedTeacherCode *string `json:"assignedTeacherCode,omitempty"`

	Answers []Answer `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"answers"`
}

// Answer is a single reply on a question thread. Answers are append-only and
// allowed regardless of the question's status.
type Answer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	QuestionID uint   `gorm:"index;not null" json:"-"`
	Content    string `gorm:"type:text;not null" json:"content"`

	AuthorID uint  `gorm:"index;not null" json:"-"`
	Author   *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
