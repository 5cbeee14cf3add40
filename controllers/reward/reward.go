package rewardController

import (
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/database"
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/middleware"
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/models"

	"github.com/gofiber/fiber/v2"
)

// GetRewards lists the current user's badges and total points
func GetRewards(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var rewards []models.UserReward
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).Order("earned_at desc").Find(&rewards).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch rewards!", nil)
	}

	totalPoints := 0
	for _, r := range rewards {
		totalPoints += r.Points
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Rewards fetched successfully!", fiber.Map{
		"rewards":      rewards,
		"total":        len(rewards),
		"total_points": totalPoints,
	})
}
