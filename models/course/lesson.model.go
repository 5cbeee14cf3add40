package course

import (
	"time"

	"gorm.io/gorm"
)

// Lesson is a single unit of content inside a module
type Lesson struct {
	gorm.Model
	ModuleID    uint   `json:"module_id" gorm:"index;not null"`
	Title       string `json:"title"`
	ContentHTML string `json:"content_html"`
	ImageURL    string `json:"image_url"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
	IsDeleted   bool   `gorm:"default:false"`
}

// LessonProgress marks a lesson as completed by a user
type LessonProgress struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_user_lesson"`
	LessonID    uint       `json:"lesson_id" gorm:"not null;uniqueIndex:idx_user_lesson"`
	Completed   bool       `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`
}
