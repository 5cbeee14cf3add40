package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quiz is attached either to a module (module quiz) or to the whole course (final quiz)
type Quiz struct {
	gorm.Model
	CourseID     *uint  `json:"course_id" gorm:"index"`
	ModuleID     *uint  `json:"module_id" gorm:"index"`
	Title        string `json:"title"`
	QuizType     string `json:"quiz_type" gorm:"default:'MODULE'"` // MODULE, FINAL
	PassingScore int    `json:"passing_score" gorm:"default:70"`   // percentage
	IsActive     bool   `json:"is_active" gorm:"default:true"`
	IsDeleted    bool   `gorm:"default:false"`
}

// QuizQuestion is a single question inside a quiz
type QuizQuestion struct {
	gorm.Model
	QuizID       uint   `json:"quiz_id" gorm:"index;not null"`
	QuestionText string `json:"question_text"`
	Points       int    `json:"points" gorm:"default:1"`
	OrderIndex   int    `json:"order_index" gorm:"default:0"`
	IsDeleted    bool   `gorm:"default:false"`
}

// QuizOption is an answer choice; IsCorrect is stripped before sending to students
type QuizOption struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	OptionText string `json:"option_text"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}

// QuizAttempt stores a graded submission; Answers maps question IDs to chosen option IDs
type QuizAttempt struct {
	gorm.Model
	UserID      uint           `json:"user_id" gorm:"index;not null"`
	QuizID      uint           `json:"quiz_id" gorm:"index;not null"`
	Answers     datatypes.JSON `json:"answers"`
	Score       int            `json:"score"` // percentage
	Passed      bool           `json:"passed"`
	AttemptedAt time.Time      `json:"attempted_at"`
	IsDeleted   bool           `gorm:"default:false"`
}
