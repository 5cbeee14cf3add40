package models

import (
	"time"

	"gorm.io/gorm"
)

// LearningRecord logs a single study activity for the learning history page
type LearningRecord struct {
	gorm.Model
	UserID              uint      `json:"user_id" gorm:"index;not null"`
	CourseID            *uint     `json:"course_id" gorm:"index"`
	ActivityType        string    `json:"activity_type"` // LESSON, QUIZ, READING, TIMER
	ActivityDescription string    `json:"activity_description"`
	DurationMinutes     int       `json:"duration_minutes" gorm:"default:0"`
	RecordDate          time.Time `json:"record_date"`
	IsDeleted           bool      `gorm:"default:false"`
}
