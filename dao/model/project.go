package model

import "gorm.io/gorm"

// Project owns its columns, tasks and labels; members and the manager are
// reference-only relations.
type Project struct {
	gorm.Model
	Title       string        `gorm:"type:varchar(128);not null"`
	Description *string       `gorm:"type:varchar(512)"`
	Status      ProjectStatus `gorm:"not null;default:1"`
	ManagerID   uint          `gorm:"index;not null"`
	Manager     User          `gorm:"foreignKey:ManagerID"`
	Members     []User        `gorm:"many2many:project_members"`
	Columns     []Column      `gorm:"constraint:OnDelete:CASCADE"`
	Tasks       []Task        `gorm:"constraint:OnDelete:CASCADE"`
	Labels      []Label       `gorm:"constraint:OnDelete:CASCADE"`
}

// Column is a board lane. Order is the rank among columns of the same
// project, ascending left to right. Gaps are allowed; display resolves
// ties by (order, id).
type Column struct {
	gorm.Model
	ProjectID uint   `gorm:"index;not null"`
	Title     string `gorm:"type:varchar(128);not null"`
	Order     int    `gorm:"not null;default:0"`
}
