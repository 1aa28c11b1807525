package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Note is a rich-text study note. A staff author may flag it shared, which
// stamps it with the author's teacher code at save time; students connected to
// that code can then read it through their feed.
type Note struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title   string         `gorm:"not null" json:"title"`
	Content string         `gorm:"type:text;not null" json:"content"`
	Tags    pq.StringArray `gorm:"type:text[]" json:"tags"`

	AuthorID   uint   `gorm:"index:idx_notes_author,priority:1" json:"authorId"`
	AuthorName string `gorm:"not null" json:"authorName"` // registration number snapshot

	IsShared    bool    `gorm:"default:false;index:idx_notes_sharing,priority:2" json:"isShared"`
	TeacherCode *string `gorm:"index:idx_notes_sharing,priority:1" json:"teacherCode,omitempty"`
}
