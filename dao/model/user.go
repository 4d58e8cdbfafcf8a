package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is the basic entity of the system
type User struct {
	gorm.Model
	Name       string                            `gorm:"type:varchar(64);not null"`
	Email      string                            `gorm:"uniqueIndex;type:varchar(128);not null"`
	Password   string                            `gorm:"type:varchar(128);not null"`
	Role       Role                              `gorm:"not null;default:1"`
	Status     UserStatus                        `gorm:"not null;default:1"`
	Attributes datatypes.JSONType[UserAttribute] `gorm:"comment:profile attributes"`
}

// UserAttribute holds the profile fields that never participate in a query.
type UserAttribute struct {
	Nickname string `json:"nickname,omitempty"`
	Bio      string `json:"bio,omitempty"`
	JobTitle string `json:"jobTitle,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}
