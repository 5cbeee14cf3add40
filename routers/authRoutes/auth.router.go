package authRoutes

import (
	controllers "github.com/canyouhelpmebaby-ctrl/progressia-lms-id/controllers/auth"
	validators "github.com/canyouhelpmebaby-ctrl/progressia-lms-id/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up signup and login routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", validators.Signup(), controllers.Signup)
	authGroup.Post("/login", validators.Login(), controllers.Login)
}
