package recordController

import (
	"time"

	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/database"
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/middleware"
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/models"

	"github.com/gofiber/fiber/v2"
)

// LogActivity records a study activity (used by the learning timer page)
func LogActivity(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData := new(struct {
		CourseID            *uint  `json:"course_id"`
		ActivityType        string `json:"activity_type"`
		ActivityDescription string `json:"activity_description"`
		DurationMinutes     int    `json:"duration_minutes"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.ActivityType == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Activity type is required!", nil)
	}
	if reqData.DurationMinutes < 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Duration cannot be negative!", nil)
	}

	record := models.LearningRecord{
		UserID:              userID,
		CourseID:            reqData.CourseID,
		ActivityType:        reqData.ActivityType,
		ActivityDescription: reqData.ActivityDescription,
		DurationMinutes:     reqData.DurationMinutes,
		RecordDate:          time.Now(),
	}

	if err := database.Database.Db.Create(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to log activity!", nil)
	}

	// Timed study sessions count toward daily-minutes goals
	if reqData.DurationMinutes > 0 {
		bumpMinuteGoals(userID, reqData.DurationMinutes)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Activity logged successfully!", record)
}

// GetRecords lists the user's learning history, optionally filtered by date range
func GetRecords(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db.Model(&models.LearningRecord{}).Where("user_id = ? AND is_deleted = ?", userID, false)

	if from := c.Query("from"); from != "" {
		if fromDate, err := time.Parse("2006-01-02", from); err == nil {
			db = db.Where("record_date >= ?", fromDate)
		}
	}
	if to := c.Query("to"); to != "" {
		if toDate, err := time.Parse("2006-01-02", to); err == nil {
			db = db.Where("record_date < ?", toDate.AddDate(0, 0, 1))
		}
	}

	var records []models.LearningRecord
	if err := db.Order("record_date desc").Find(&records).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch records!", nil)
	}

	totalMinutes := 0
	for _, r := range records {
		totalMinutes += r.DurationMinutes
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Records fetched successfully!", fiber.Map{
		"records":       records,
		"total":         len(records),
		"total_minutes": totalMinutes,
	})
}

// GetMaterials lists active learning materials, optionally for one course
func GetMaterials(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	db := database.Database.Db.Where("is_active = ? AND is_deleted = ?", true, false)
	if courseID := c.QueryInt("course_id"); courseID > 0 {
		db = db.Where("course_id = ?", courseID)
	}

	var materials []models.LearningMaterial
	if err := db.Order("created_at desc").Find(&materials).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch materials!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Materials fetched successfully!", fiber.Map{
		"materials": materials,
		"total":     len(materials),
	})
}

// bumpMinuteGoals adds studied minutes to active daily-minutes goals
func bumpMinuteGoals(userID uint, minutes int) {
	var goals []models.LearningGoal
	if err := database.Database.Db.Where("user_id = ? AND goal_type = ? AND status = ? AND is_deleted = ?", userID, "DAILY_MINUTES", "ACTIVE", false).Find(&goals).Error; err != nil {
		return
	}

	for i := range goals {
		goals[i].CurrentValue += minutes
		if goals[i].CurrentValue >= goals[i].TargetValue {
			goals[i].Status = "COMPLETED"
		}
		database.Database.Db.Save(&goals[i])
	}
}
