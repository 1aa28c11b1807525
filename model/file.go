package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FileType classifies an uploaded file by its payload.
type FileType string

const (
	FileTypePDF          FileType = "pdf"
	FileTypeImage        FileType = "image"
	FileTypeDrawing      FileType = "drawing"
	FileTypeDocument     FileType = "document"
	FileTypePresentation FileType = "presentation"
)

// File is an uploaded study file (PDF, image, office document). The payload
// arrives as a base64 data URL; when object storage is configured the raw
// bytes are offloaded and FileURL/SpacesKey are set instead of keeping the
// data URL inline in FileData.
//
// The Uploader* fields are a profile snapshot taken at upload time. Later
// changes to the uploader's User record do not retroactively update old files;
// that staleness is a deliberate read optimization.
type File struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FileName     string   `gorm:"not null" json:"fileName"`
	OriginalName string   `gorm:"not null" json:"originalName"`
	FileType     FileType `gorm:"type:varchar(20);not null" json:"fileType"`
	FileSize     int64    `gorm:"not null" json:"fileSize"`
	MimeType     string   `gorm:"not null" json:"mimeType"`
	FileData     string   `gorm:"type:text" json:"fileData,omitempty"` // inline data URL
	FileURL      string   `gorm:"type:text" json:"fileUrl,omitempty"`  // object storage URL
	SpacesKey    string   `gorm:"type:varchar(500)" json:"-"`          // S3-style key when offloaded
	PageCount    int      `gorm:"default:0" json:"pageCount"`          // PDFs only

	UploadedByID uint `gorm:"index:idx_files_uploader" json:"authorId"`

	// Uploader profile snapshot
	UploaderRegistrationNumber string `gorm:"not null" json:"authorName"`
	UploaderRole               string `gorm:"type:varchar(20);not null" json:"-"`
	UploaderSubject            string `json:"ownerSubject,omitempty"`
	UploaderYear               string `json:"-"`
	UploaderSemester           string `json:"-"`
	UploaderCourse             string `json:"-"`

	IsShared    bool    `gorm:"default:false;index:idx_files_sharing,priority:2" json:"isShared"`
	TeacherCode *string `gorm:"index:idx_files_sharing,priority:1" json:"teacherCode,omitempty"`

	Annotations   datatypes.JSON `json:"annotations,omitempty"`
	Tags          pq.StringArray `gorm:"type:text[]" json:"tags"`
	DownloadCount int            `gorm:"default:0" json:"downloadCount"`
}
