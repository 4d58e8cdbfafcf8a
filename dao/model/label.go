package model

import "gorm.io/gorm"

type Label struct {
	gorm.Model
	ProjectID uint   `gorm:"index;not null"`
	Name      string `gorm:"type:varchar(64);not null"`
	Color     string `gorm:"type:varchar(16);not null"`
}
