package model

import (
	"time"

	"gorm.io/gorm"
)

// Whiteboard is a saved whiteboard drawing, stored as an image data URL.
// Sharing semantics mirror Note.
type Whiteboard struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title     string `gorm:"size:150;not null" json:"title"`
	ImageData string `gorm:"type:text;not null" json:"imageData"`

	AuthorID   uint   `gorm:"index:idx_whiteboards_author" json:"authorId"`
	AuthorName string `gorm:"not null" json:"authorName"`

	IsShared    bool    `gorm:"default:false;index:idx_whiteboards_sharing,priority:2" json:"isShared"`
	TeacherCode *string `gorm:"index:idx_whiteboards_sharing,priority:1" json:"teacherCode,omitempty"`
}
