package models

import "gorm.io/gorm"

// Notification is an in-app message shown on the user's notification page
type Notification struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Read      bool   `json:"read" gorm:"default:false"`
	IsDeleted bool   `gorm:"default:false"`
}
