package controllers

import (
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/database"
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/middleware"
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/models"
	courseModels "github.com/canyouhelpmebaby-ctrl/progressia-lms-id/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published courses with pagination
func GetAllCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Retrieve validated pagination request
	reqData, _ := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ? AND is_published = ?", false, true)

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetCourseDetails gets course details with modules, lessons and the user's progress
func GetCourseDetails(c *fiber.Ctx) error {
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

	// Get active modules with their lessons and per-lesson completion flags
	var modules []courseModels.Module
	database.Database.Db.Where("course_id = ? AND is_deleted = ? AND is_active = ?", courseID, false, true).Order("order_index asc").Find(&modules)

	type LessonWithProgress struct {
		courseModels.Lesson
		IsCompleted bool `json:"is_completed"`
	}

	type ModuleWithLessons struct {
		courseModels.Module
		Lessons []LessonWithProgress `json:"lessons"`
	}

	totalLessons := 0
	completedLessons := 0

	result := make([]ModuleWithLessons, len(modules))
	for i, mod := range modules {
		var lessons []courseModels.Lesson
		database.Database.Db.Where("module_id = ? AND is_deleted = ? AND is_active = ?", mod.ID, false, true).Order("order_index asc").Find(&lessons)

		withProgress := make([]LessonWithProgress, len(lessons))
		for j, lesson := range lessons {
			withProgress[j] = LessonWithProgress{Lesson: lesson}

			var progress courseModels.LessonProgress
			if err := database.Database.Db.Where("user_id = ? AND lesson_id = ? AND completed = ?", userID, lesson.ID, true).First(&progress).Error; err == nil {
				withProgress[j].IsCompleted = true
				completedLessons++
			}
			totalLessons++
		}

		result[i] = ModuleWithLessons{Module: mod, Lessons: withProgress}
	}

	progressPercent := float64(0)
	if totalLessons > 0 {
		progressPercent = float64(completedLessons) / float64(totalLessons) * 100
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":            course,
		"modules":           result,
		"total_lessons":     totalLessons,
		"completed_lessons": completedLessons,
		"progress":          progressPercent,
	})
}
