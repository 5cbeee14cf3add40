package utils

import (
	"fmt"
	"log"
	"time"

	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/database"
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/models"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[GOAL-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// expireOverdueGoals marks ACTIVE goals past their end date as EXPIRED and
// notifies the owner
func expireOverdueGoals() {
	db := database.Database.Db
	now := time.Now()

	var overdue []models.LearningGoal
	if err := db.Where("status = ? AND end_date < ? AND is_deleted = ?", "ACTIVE", now, false).Find(&overdue).Error; err != nil {
		logScheduler("Error fetching overdue goals: " + err.Error())
		return
	}

	for i := range overdue {
		overdue[i].Status = "EXPIRED"
		if err := db.Save(&overdue[i]).Error; err != nil {
			logScheduler("Error expiring goal: " + err.Error())
			continue
		}

		notification := models.Notification{
			UserID:  overdue[i].UserID,
			Title:   "Target Belajar Berakhir",
			Message: "Target \"" + overdue[i].Title + "\" telah melewati tenggat waktu.",
		}
		db.Create(&notification)

		// Email reminder (async)
		go func(goal models.LearningGoal) {
			var user models.User
			if err := database.Database.Db.Where("id = ? AND is_deleted = ?", goal.UserID, false).First(&user).Error; err != nil {
				return
			}
			if err := SendGoalExpiredEmail(user.Email, user.FullName, goal.Title); err != nil {
				logScheduler("Error sending goal expiry email: " + err.Error())
			}
		}(overdue[i])
	}

	if len(overdue) > 0 {
		logScheduler(fmt.Sprintf("Expired %d overdue goals", len(overdue)))
	}
}

// StartGoalScheduler runs the daily goal sweep shortly after midnight
func StartGoalScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("5 0 * * *", expireOverdueGoals); err != nil {
		log.Fatalf("Failed to register goal scheduler: %v", err)
	}

	c.Start()
	logScheduler("Goal scheduler started")
	return c
}
