package courseRoutes

import (
	controllers "github.com/canyouhelpmebaby-ctrl/progressia-lms-id/controllers/course"
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/middleware"
	validators "github.com/canyouhelpmebaby-ctrl/progressia-lms-id/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	userGroup := app.Group("/course")

	// Course listing and details (published courses)
	userGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	userGroup.Get("/:id", middleware.JWTMiddleware, validators.GetCourseDetail(), controllers.GetCourseDetails)

	// Lessons
	userGroup.Get("/lesson/:lesson_id", middleware.JWTMiddleware, validators.GetLesson(), controllers.GetLesson)
	userGroup.Post("/lesson/:lesson_id/complete", middleware.JWTMiddleware, validators.GetLesson(), controllers.MarkLessonComplete)

	// Progress tracking
	userGroup.Get("/:course_id/progress", middleware.JWTMiddleware, validators.GetCourseProgress(), controllers.GetCourseProgress)

	// Quizzes
	userGroup.Get("/quiz/:quiz_id", middleware.JWTMiddleware, validators.GetQuiz(), controllers.GetQuiz)
	userGroup.Post("/quiz/:quiz_id/submit", middleware.JWTMiddleware, validators.SubmitQuiz(), controllers.SubmitQuiz)
	userGroup.Get("/quiz/:quiz_id/attempts", middleware.JWTMiddleware, validators.GetQuiz(), controllers.GetQuizAttempts)

	// Certificate issuance and listing. Issuance failures answer with the
	// {success, error} body its clients expect, so it uses its own auth guard.
	userGroup.Post("/certificate/generate", middleware.CertificateAuth, validators.GenerateCertificate(), controllers.GenerateCertificate)

	userEnrollGroup := app.Group("/user")
	userEnrollGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)
}
