package model

import (
	"time"

	"gorm.io/gorm"
)

// Task belongs to a project and optionally to a column. A NULL ColumnID is a
// valid state: deleting a column orphans its tasks instead of cascading.
type Task struct {
	gorm.Model
	ProjectID   uint       `gorm:"index;not null"`
	ColumnID    *uint      `gorm:"index"`
	Title       string     `gorm:"type:varchar(256);not null"`
	Description string     `gorm:"type:text"`
	Status      TaskStatus `gorm:"not null;default:1"`
	Priority    *Priority
	AssigneeID  *uint `gorm:"index"`
	Assignee    *User `gorm:"foreignKey:AssigneeID"`
	DueDate     *time.Time
	// Order is the rank among tasks sharing the same column. Locally
	// monotonic per column; ties resolved by id on read.
	Order       int          `gorm:"not null;default:0"`
	Labels      []Label      `gorm:"many2many:task_labels"`
	Comments    []Comment    `gorm:"constraint:OnDelete:CASCADE"`
	Attachments []Attachment `gorm:"constraint:OnDelete:CASCADE"`
}

// Comment supports one level of reply nesting. Deeper nesting is flattened
// at display time, not rejected here.
type Comment struct {
	gorm.Model
	TaskID   uint      `gorm:"index;not null"`
	AuthorID uint      `gorm:"index;not null"`
	Author   User      `gorm:"foreignKey:AuthorID"`
	Content  string    `gorm:"type:text;not null"`
	ParentID *uint     `gorm:"index"`
	Replies  []Comment `gorm:"foreignKey:ParentID"`
}

// Attachment is the logical record only; the bytes live in external storage
// addressed by StorageKey.
type Attachment struct {
	gorm.Model
	TaskID       uint   `gorm:"index;not null"`
	Filename     string `gorm:"type:varchar(256);not null"`
	Size         int64  `gorm:"not null"`
	MimeType     string `gorm:"type:varchar(128)"`
	URL          string `gorm:"type:varchar(512)"`
	StorageKey   string `gorm:"type:varchar(64);uniqueIndex"`
	UploadedByID uint   `gorm:"index;not null"`
}
