package courseValidator

import (
	"strconv"
	"strings"

	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/middleware"

	"github.com/gofiber/fiber/v2"
)

// idParam validates a positive integer route parameter and stores it in Locals
func idParam(param, localKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params(param))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ID!", nil)
		}

		c.Locals(localKey, id)
		return c.Next()
	}
}

func GetCourseDetail() fiber.Handler {
	return idParam("id", "courseID")
}

func GetCourseProgress() fiber.Handler {
	return idParam("course_id", "courseID")
}

func GetLesson() fiber.Handler {
	return idParam("lesson_id", "lessonID")
}

func GetQuiz() fiber.Handler {
	return idParam("quiz_id", "quizID")
}

func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		// Validate Page
		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}

		// Validate Limit
		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

// GenerateCertificate validates the JSON body of the certificate endpoint
func GenerateCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID int `json:"courseId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		if reqData.CourseID <= 0 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Course ID is required!")
		}

		c.Locals("courseID", reqData.CourseID)
		return c.Next()
	}
}

func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("quiz_id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ID!", nil)
		}
		c.Locals("quizID", id)

		reqData := new(struct {
			Answers map[string][]uint `json:"answers"` // question ID -> selected option IDs
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.Answers) == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please answer at least one question!", nil)
		}

		c.Locals("validatedQuizSubmission", reqData)
		return c.Next()
	}
}
