package courseRoutes

import (
	controllers "github.com/canyouhelpmebaby-ctrl/progressia-lms-id/controllers/course"
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/middleware"
	validators "github.com/canyouhelpmebaby-ctrl/progressia-lms-id/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))

	// Course CRUD
	adminGroup.Post("/create", validators.CreateCourseAdmin(), controllers.AdminCreateCourse)
	adminGroup.Put("/:id", validators.AdminCourseID(), validators.CreateCourseAdmin(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:id", validators.AdminCourseID(), controllers.AdminDeleteCourse)
	adminGroup.Get("/list", controllers.AdminGetAllCourses)
	adminGroup.Post("/:id/publish", validators.AdminCourseID(), controllers.AdminPublishCourse)

	// Module management
	adminGroup.Post("/:id/module", validators.AdminCourseID(), validators.CreateModule(), controllers.AdminCreateModule)

	// Lesson management
	lessonGroup := app.Group("/admin/module", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))
	lessonGroup.Post("/:module_id/lesson", validators.AdminModuleID(), validators.CreateLesson(), controllers.AdminCreateLesson)

	adminLessonGroup := app.Group("/admin/lesson", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))
	adminLessonGroup.Put("/:lesson_id", validators.AdminLessonID(), validators.CreateLesson(), controllers.AdminUpdateLesson)
}
