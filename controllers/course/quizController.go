package controllers

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/database"
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/middleware"
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/models"
	courseModels "github.com/canyouhelpmebaby-ctrl/progressia-lms-id/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetQuiz fetches a quiz with its questions and options for taking.
// Correct-answer flags are stripped before the response is sent.
func GetQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	quizID := c.Locals("quizID").(int)

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_active = ?", quizID, false, true).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	type QuestionWithOptions struct {
		courseModels.QuizQuestion
		Options []courseModels.QuizOption `json:"options"`
	}

	var questions []courseModels.QuizQuestion
	database.Database.Db.Where("quiz_id = ? AND is_deleted = ?", quizID, false).Order("order_index asc").Find(&questions)

	result := make([]QuestionWithOptions, len(questions))
	for i, question := range questions {
		var options []courseModels.QuizOption
		database.Database.Db.Where("question_id = ? AND is_deleted = ?", question.ID, false).Order("order_index asc").Find(&options)
		// Hide answers from students
		for j := range options {
			options[j].IsCorrect = false
		}
		result[i] = QuestionWithOptions{QuizQuestion: question, Options: options}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", fiber.Map{
		"quiz":      quiz,
		"questions": result,
	})
}

// SubmitQuiz grades a submission against the stored correct options. Score is
// the earned-points percentage; a question earns its points only when the
// selected options match the correct set exactly.
func SubmitQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	quizID := c.Locals("quizID").(int)

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_active = ?", quizID, false, true).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	reqData, ok := c.Locals("validatedQuizSubmission").(*struct {
		Answers map[string][]uint `json:"answers"` // question ID -> selected option IDs
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var questions []courseModels.QuizQuestion
	database.Database.Db.Where("quiz_id = ? AND is_deleted = ?", quizID, false).Find(&questions)

	if len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Quiz has no questions!", nil)
	}

	totalPoints := 0
	earnedPoints := 0

	for _, question := range questions {
		totalPoints += question.Points

		var correctOptions []courseModels.QuizOption
		database.Database.Db.Where("question_id = ? AND is_correct = ? AND is_deleted = ?", question.ID, true, false).Find(&correctOptions)

		correctIDs := make(map[uint]bool)
		for _, opt := range correctOptions {
			correctIDs[opt.ID] = true
		}

		selected := reqData.Answers[uintToKey(question.ID)]
		if len(selected) != len(correctOptions) {
			continue
		}

		matched := 0
		for _, id := range selected {
			if correctIDs[id] {
				matched++
			}
		}
		if matched == len(correctOptions) {
			earnedPoints += question.Points
		}
	}

	score := 0
	if totalPoints > 0 {
		score = earnedPoints * 100 / totalPoints
	}
	passed := score >= quiz.PassingScore

	answersJSON, _ := json.Marshal(reqData.Answers)
	attempt := courseModels.QuizAttempt{
		UserID:      userID,
		QuizID:      uint(quizID),
		Answers:     answersJSON,
		Score:       score,
		Passed:      passed,
		AttemptedAt: time.Now(),
	}

	if err := database.Database.Db.Create(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
	}

	// Log the activity
	record := models.LearningRecord{
		UserID:              userID,
		CourseID:            quiz.CourseID,
		ActivityType:        "QUIZ",
		ActivityDescription: "Mengerjakan kuis: " + quiz.Title,
		RecordDate:          time.Now(),
	}
	database.Database.Db.Create(&record)

	// First pass of a final quiz earns a badge
	if passed && quiz.QuizType == "FINAL" {
		awardQuizBadge(userID, quiz)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted!", fiber.Map{
		"attempt":       attempt,
		"score":         score,
		"passed":        passed,
		"earned_points": earnedPoints,
		"total_points":  totalPoints,
	})
}

// GetQuizAttempts lists the user's past attempts for a quiz
func GetQuizAttempts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	quizID := c.Locals("quizID").(int)

	var attempts []courseModels.QuizAttempt
	if err := database.Database.Db.Where("user_id = ? AND quiz_id = ? AND is_deleted = ?", userID, quizID, false).Order("attempted_at desc").Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"attempts": attempts,
		"total":    len(attempts),
	})
}

// awardQuizBadge grants the QUIZ_MASTER badge once per quiz
func awardQuizBadge(userID uint, quiz courseModels.Quiz) {
	var existing models.UserReward
	if err := database.Database.Db.Where("user_id = ? AND badge_type = ? AND badge_name = ? AND is_deleted = ?", userID, "QUIZ_MASTER", quiz.Title, false).First(&existing).Error; err == nil {
		return
	}

	reward := models.UserReward{
		UserID:      userID,
		BadgeName:   quiz.Title,
		BadgeType:   "QUIZ_MASTER",
		Description: "Lulus kuis akhir: " + quiz.Title,
		Points:      50,
		EarnedAt:    time.Now(),
	}
	database.Database.Db.Create(&reward)
}

func uintToKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
