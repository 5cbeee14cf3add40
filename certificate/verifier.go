package certificate

import (
	courseModels "github.com/canyouhelpmebaby-ctrl/progressia-lms-id/models/course"

	"gorm.io/gorm"
)

// CompletionVerifier decides whether a user has finished every required
// lesson of a course. The ledger treats it as a black box so tests can swap
// in a fake.
type CompletionVerifier interface {
	IsComplete(userID, courseID uint) (bool, error)
}

// GormVerifier checks completion against the lessons and lesson_progresses tables.
type GormVerifier struct {
	Db *gorm.DB
}

func NewGormVerifier(db *gorm.DB) *GormVerifier {
	return &GormVerifier{Db: db}
}

// IsComplete returns true iff the course has at least one active lesson under
// an active module and every such lesson has a completed progress row for the
// user. A query error is returned as-is, never reported as "not complete".
func (v *GormVerifier) IsComplete(userID, courseID uint) (bool, error) {
	var totalLessons int64
	err := v.Db.Model(&courseModels.Lesson{}).
		Joins("JOIN modules ON lessons.module_id = modules.id").
		Where("modules.course_id = ? AND modules.is_active = ? AND modules.is_deleted = ?", courseID, true, false).
		Where("lessons.is_active = ? AND lessons.is_deleted = ?", true, false).
		Count(&totalLessons).Error
	if err != nil {
		return false, err
	}

	// A course with no publishable content can never be completed
	if totalLessons == 0 {
		return false, nil
	}

	var completedLessons int64
	err = v.Db.Model(&courseModels.LessonProgress{}).
		Joins("JOIN lessons ON lesson_progresses.lesson_id = lessons.id").
		Joins("JOIN modules ON lessons.module_id = modules.id").
		Where("lesson_progresses.user_id = ? AND lesson_progresses.completed = ?", userID, true).
		Where("modules.course_id = ? AND modules.is_active = ? AND modules.is_deleted = ?", courseID, true, false).
		Where("lessons.is_active = ? AND lessons.is_deleted = ?", true, false).
		Count(&completedLessons).Error
	if err != nil {
		return false, err
	}

	return completedLessons >= totalLessons, nil
}
