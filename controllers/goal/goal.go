package goalController

import (
	"time"

	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/database"
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/middleware"
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/models"

	"github.com/gofiber/fiber/v2"
)

// CreateGoal creates a learning goal for the current user
func CreateGoal(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedGoal").(*struct {
		Title       string `json:"title" validate:"required,min=3"`
		Description string `json:"description"`
		GoalType    string `json:"goal_type" validate:"required,oneof=DAILY_MINUTES COURSES_COMPLETED LESSONS_COMPLETED"`
		TargetValue int    `json:"target_value" validate:"required,gt=0"`
		EndDate     string `json:"end_date" validate:"required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	endDate, err := time.Parse("2006-01-02", reqData.EndDate)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid end date, expected YYYY-MM-DD!", nil)
	}
	if !endDate.After(time.Now()) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "End date must be in the future!", nil)
	}

	goal := models.LearningGoal{
		UserID:      userID,
		Title:       reqData.Title,
		Description: reqData.Description,
		GoalType:    reqData.GoalType,
		TargetValue: reqData.TargetValue,
		StartDate:   time.Now(),
		EndDate:     endDate,
	}

	if err := database.Database.Db.Create(&goal).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create goal!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Goal created successfully!", goal)
}

// GetGoals lists the current user's goals
func GetGoals(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var goals []models.LearningGoal
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).Order("created_at desc").Find(&goals).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch goals!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Goals fetched successfully!", fiber.Map{
		"goals": goals,
		"total": len(goals),
	})
}

// UpdateGoal updates a goal's progress or status
func UpdateGoal(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	goalID := c.Locals("goalID").(int)

	var goal models.LearningGoal
	if err := database.Database.Db.Where("id = ? AND user_id = ? AND is_deleted = ?", goalID, userID, false).First(&goal).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Goal not found!", nil)
	}

	reqData := new(struct {
		CurrentValue *int   `json:"current_value"`
		Status       string `json:"status"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.CurrentValue != nil && *reqData.CurrentValue >= 0 {
		goal.CurrentValue = *reqData.CurrentValue
		if goal.CurrentValue >= goal.TargetValue {
			goal.Status = "COMPLETED"
		}
	}
	if reqData.Status == "ACTIVE" || reqData.Status == "COMPLETED" {
		goal.Status = reqData.Status
	}

	if err := database.Database.Db.Save(&goal).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update goal!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Goal updated successfully!", goal)
}

// DeleteGoal soft-deletes a goal
func DeleteGoal(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	goalID := c.Locals("goalID").(int)

	var goal models.LearningGoal
	if err := database.Database.Db.Where("id = ? AND user_id = ? AND is_deleted = ?", goalID, userID, false).First(&goal).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Goal not found!", nil)
	}

	goal.IsDeleted = true
	if err := database.Database.Db.Save(&goal).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete goal!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Goal deleted successfully!", nil)
}
