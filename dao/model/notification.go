package model

import "gorm.io/gorm"

// Notification is mutated in place by the aggregator (message rewritten,
// CreatedAt bumped); otherwise immutable until marked read.
type Notification struct {
	gorm.Model
	UserID  uint   `gorm:"index:idx_notifications_user_type;not null"`
	Message string `gorm:"type:varchar(512);not null"`
	Type    string `gorm:"index:idx_notifications_user_type;type:varchar(64);not null;default:'INFO'"`
	Read    bool   `gorm:"not null;default:false"`
}
