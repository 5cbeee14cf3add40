package goalValidator

import (
	"strconv"
	"strings"

	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func CreateGoal() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title" validate:"required,min=3"`
			Description string `json:"description"`
			GoalType    string `json:"goal_type" validate:"required,oneof=DAILY_MINUTES COURSES_COMPLETED LESSONS_COMPLETED"`
			TargetValue int    `json:"target_value" validate:"required,gt=0"`
			EndDate     string `json:"end_date" validate:"required"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Title":
					errors["title"] = "Title must be at least 3 characters long!"
				case "GoalType":
					errors["goal_type"] = "Goal type must be DAILY_MINUTES, COURSES_COMPLETED or LESSONS_COMPLETED!"
				case "TargetValue":
					errors["target_value"] = "Target value must be greater than 0!"
				case "EndDate":
					errors["end_date"] = "End date is required!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedGoal", reqData)
		return c.Next()
	}
}

func GoalID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Goal ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Goal ID!", nil)
		}

		c.Locals("goalID", id)
		return c.Next()
	}
}
