package controllers

import (
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/certificate"
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/config"
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/database"
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/middleware"
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/models"
	courseModels "github.com/canyouhelpmebaby-ctrl/progressia-lms-id/models/course"
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/utils"

	"github.com/gofiber/fiber/v2"
)

// GenerateCertificate issues (or fetches) the certificate for a completed
// course and returns its rendered SVG alongside the persisted metadata.
func GenerateCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!")
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "User not found!")
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found!")
	}

	db := database.Database.Db
	ledger := certificate.NewLedger(db, certificate.NewGormVerifier(db))

	cert, created, err := ledger.GetOrIssue(userID, uint(courseID))
	if err != nil {
		switch {
		case errors.Is(err, certificate.ErrNotEligible):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Please complete all lessons before requesting a certificate!")
		case errors.Is(err, certificate.ErrConflictRetry):
			log.Printf("Certificate issuance conflict for user %d course %d: %v", userID, courseID, err)
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to issue certificate!")
		default:
			log.Printf("Certificate issuance error for user %d course %d: %v", userID, courseID, err)
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to issue certificate!")
		}
	}

	svg := certificate.RenderSVG(certificate.Data{
		UserName:          user.FullName,
		CourseName:        course.Title,
		CompletionDate:    cert.IssuedAt,
		CertificateNumber: cert.CertificateNumber,
	})

	// Persist a local copy so the file can also be served statically. Rendering
	// is deterministic, so a failed write only costs the cached copy and is
	// retried on the next fetch.
	if cert.CertificateURL == "" {
		if url, err := saveCertificateCopy(cert.PublicID, svg); err == nil {
			database.Database.Db.Model(cert).Update("certificate_url", url)
			cert.CertificateURL = url
		} else {
			log.Printf("Failed to store certificate copy for %s: %v", cert.CertificateNumber, err)
		}
	}

	// First issuance only: notify the user, send the email and advance any
	// course completion goals
	if created {
		notification := models.Notification{
			UserID:  userID,
			Title:   "Sertifikat Diterbitkan",
			Message: "Selamat! Sertifikat untuk kursus \"" + course.Title + "\" telah diterbitkan.",
		}
		database.Database.Db.Create(&notification)

		updateGoalProgress(userID, "COURSES_COMPLETED")

		go func(email, name, courseTitle, number string) {
			if err := utils.SendCertificateEmail(email, name, courseTitle, number); err != nil {
				log.Printf("Failed to send certificate email to %s: %v", email, err)
			}
		}(user.Email, user.FullName, course.Title, cert.CertificateNumber)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"certificate": fiber.Map{
			"id":                cert.PublicID,
			"certificateNumber": cert.CertificateNumber,
			"issuedAt":          cert.IssuedAt,
			"userName":          user.FullName,
			"courseName":        course.Title,
		},
		"svg": svg,
	})
}

// saveCertificateCopy writes the rendered SVG under the public certificate
// directory and returns the path it is served from.
func saveCertificateCopy(publicID, svg string) (string, error) {
	dir := config.AppConfig.CertificateDir
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	filename := publicID + ".svg"
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(svg), 0644); err != nil {
		return "", err
	}
	return "/certificates/" + filename, nil
}

// GetUserCertificates gets all certificates for the current user
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	type CertificateWithCourse struct {
		courseModels.Certificate
		CourseName string `json:"course_name"`
	}

	result := []CertificateWithCourse{}
	err := database.Database.Db.Model(&courseModels.Certificate{}).
		Select("certificates.*, courses.title AS course_name").
		Joins("JOIN courses ON courses.id = certificates.course_id").
		Where("certificates.user_id = ?", userID).
		Order("certificates.issued_at desc").
		Scan(&result).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
		"total":        len(result),
	})
}
