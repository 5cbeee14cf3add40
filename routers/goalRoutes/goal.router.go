package goalRoutes

import (
	controllers "github.com/canyouhelpmebaby-ctrl/progressia-lms-id/controllers/goal"
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/middleware"
	validators "github.com/canyouhelpmebaby-ctrl/progressia-lms-id/validators/goal"

	"github.com/gofiber/fiber/v2"
)

// SetupGoalRoutes sets up learning goal routes
func SetupGoalRoutes(app *fiber.App) {
	goalGroup := app.Group("/goal", middleware.JWTMiddleware)

	goalGroup.Post("/create", validators.CreateGoal(), controllers.CreateGoal)
	goalGroup.Get("/list", controllers.GetGoals)
	goalGroup.Put("/:id", validators.GoalID(), controllers.UpdateGoal)
	goalGroup.Delete("/:id", validators.GoalID(), controllers.DeleteGoal)
}
