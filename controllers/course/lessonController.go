package controllers

import (
	"time"

	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/database"
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/middleware"
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/models"
	courseModels "github.com/canyouhelpmebaby-ctrl/progressia-lms-id/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetLesson fetches a single lesson with its content
func GetLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_active = ?", lessonID, false, true).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	// Check completion status
	isCompleted := false
	var progress courseModels.LessonProgress
	if err := database.Database.Db.Where("user_id = ? AND lesson_id = ? AND completed = ?", userID, lessonID, true).First(&progress).Error; err == nil {
		isCompleted = true
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", fiber.Map{
		"lesson":       lesson,
		"is_completed": isCompleted,
	})
}

// MarkLessonComplete records a completed lesson for the current user
func MarkLessonComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_active = ?", lessonID, false, true).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	// Check if already marked as completed
	var existing courseModels.LessonProgress
	if err := database.Database.Db.Where("user_id = ? AND lesson_id = ? AND completed = ?", userID, lessonID, true).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Lesson already marked as completed!", nil)
	}

	now := time.Now()
	progress := courseModels.LessonProgress{
		UserID:      userID,
		LessonID:    uint(lessonID),
		Completed:   true,
		CompletedAt: &now,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&progress).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark lesson as completed!", nil)
	}
	tx.Commit()

	// Log the activity for the learning records page
	record := models.LearningRecord{
		UserID:              userID,
		ActivityType:        "LESSON",
		ActivityDescription: "Menyelesaikan pelajaran: " + lesson.Title,
		RecordDate:          now,
	}
	database.Database.Db.Create(&record)

	// Bump lesson-completion goals
	updateGoalProgress(userID, "LESSONS_COMPLETED")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as completed successfully!", progress)
}

// GetCourseProgress returns per-module completion percentages for a course
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []courseModels.Module
	database.Database.Db.Where("course_id = ? AND is_deleted = ? AND is_active = ?", courseID, false, true).Order("order_index asc").Find(&modules)

	type ModuleProgress struct {
		ModuleID         uint    `json:"module_id"`
		ModuleName       string  `json:"module_name"`
		TotalLessons     int64   `json:"total_lessons"`
		CompletedLessons int64   `json:"completed_lessons"`
		Progress         float64 `json:"progress"`
	}

	var courseTotal, courseCompleted int64

	moduleProgress := make([]ModuleProgress, len(modules))
	for i, mod := range modules {
		var totalLessons int64
		var completedLessons int64

		database.Database.Db.Model(&courseModels.Lesson{}).
			Where("module_id = ? AND is_deleted = ? AND is_active = ?", mod.ID, false, true).
			Count(&totalLessons)
		database.Database.Db.Model(&courseModels.LessonProgress{}).
			Joins("JOIN lessons ON lesson_progresses.lesson_id = lessons.id").
			Where("lesson_progresses.user_id = ? AND lesson_progresses.completed = ? AND lessons.module_id = ? AND lessons.is_deleted = ? AND lessons.is_active = ?",
				userID, true, mod.ID, false, true).
			Count(&completedLessons)

		progress := float64(0)
		if totalLessons > 0 {
			progress = float64(completedLessons) / float64(totalLessons) * 100
		}

		moduleProgress[i] = ModuleProgress{
			ModuleID:         mod.ID,
			ModuleName:       mod.Title,
			TotalLessons:     totalLessons,
			CompletedLessons: completedLessons,
			Progress:         progress,
		}

		courseTotal += totalLessons
		courseCompleted += completedLessons
	}

	overall := float64(0)
	if courseTotal > 0 {
		overall = float64(courseCompleted) / float64(courseTotal) * 100
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"course_id":       course.ID,
		"overall":         overall,
		"module_progress": moduleProgress,
	})
}

// updateGoalProgress increments active goals of the given type and marks
// reached targets as completed
func updateGoalProgress(userID uint, goalType string) {
	var goals []models.LearningGoal
	if err := database.Database.Db.Where("user_id = ? AND goal_type = ? AND status = ? AND is_deleted = ?", userID, goalType, "ACTIVE", false).Find(&goals).Error; err != nil {
		return
	}

	for i := range goals {
		goals[i].CurrentValue++
		if goals[i].CurrentValue >= goals[i].TargetValue {
			goals[i].Status = "COMPLETED"
		}
		database.Database.Db.Save(&goals[i])
	}
}
