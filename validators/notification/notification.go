package notificationValidator

import (
	"strconv"
	"strings"

	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/middleware"

	"github.com/gofiber/fiber/v2"
)

func NotificationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Notification ID!", nil)
		}

		c.Locals("notificationID", id)
		return c.Next()
	}
}
