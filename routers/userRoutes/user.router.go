package userRoutes

import (
	notificationControllers "github.com/canyouhelpmebaby-ctrl/progressia-lms-id/controllers/notification"
	recordControllers "github.com/canyouhelpmebaby-ctrl/progressia-lms-id/controllers/record"
	rewardControllers "github.com/canyouhelpmebaby-ctrl/progressia-lms-id/controllers/reward"
	userControllers "github.com/canyouhelpmebaby-ctrl/progressia-lms-id/controllers/userControllers"
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/middleware"
	notificationValidators "github.com/canyouhelpmebaby-ctrl/progressia-lms-id/validators/notification"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up profile, notification, reward and record routes
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user", middleware.JWTMiddleware)

	// Profile
	userGroup.Get("/profile", userControllers.GetProfile)
	userGroup.Put("/profile", userControllers.UpdateProfile)

	// Notifications
	userGroup.Get("/notifications", notificationControllers.GetNotifications)
	userGroup.Post("/notifications/read-all", notificationControllers.MarkAllNotificationsRead)
	userGroup.Post("/notifications/:id/read", notificationValidators.NotificationID(), notificationControllers.MarkNotificationRead)

	// Rewards
	userGroup.Get("/rewards", rewardControllers.GetRewards)

	// Learning records and materials
	userGroup.Post("/records", recordControllers.LogActivity)
	userGroup.Get("/records", recordControllers.GetRecords)
	userGroup.Get("/materials", recordControllers.GetMaterials)
}
