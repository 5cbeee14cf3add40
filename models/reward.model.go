package models

import (
	"time"

	"gorm.io/gorm"
)

// UserReward is a badge earned by completing courses or passing final quizzes
type UserReward struct {
	gorm.Model
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	BadgeName   string    `json:"badge_name"`
	BadgeType   string    `json:"badge_type"` // COURSE_COMPLETION, QUIZ_MASTER, STREAK
	Description string    `json:"description"`
	Points      int       `json:"points" gorm:"default:0"`
	EarnedAt    time.Time `json:"earned_at"`
	IsDeleted   bool      `gorm:"default:false"`
}
