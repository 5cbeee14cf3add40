package models

import (
	"time"

	"gorm.io/gorm"
)

// LearningGoal tracks a self-set study target with a deadline
type LearningGoal struct {
	gorm.Model
	UserID       uint      `json:"user_id" gorm:"index;not null"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	GoalType     string    `json:"goal_type"` // DAILY_MINUTES, COURSES_COMPLETED, LESSONS_COMPLETED
	TargetValue  int       `json:"target_value" gorm:"default:0"`
	CurrentValue int       `json:"current_value" gorm:"default:0"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Status       string    `json:"status" gorm:"default:'ACTIVE'"` // ACTIVE, COMPLETED, EXPIRED
	IsDeleted    bool      `gorm:"default:false"`
}
