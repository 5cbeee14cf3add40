package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/config"
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/database"
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/middleware"
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/models"
	courseModels "github.com/canyouhelpmebaby-ctrl/progressia-lms-id/models/course"
	validators "github.com/canyouhelpmebaby-ctrl/progressia-lms-id/validators/course"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupCertificateTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:           "3000",
		JWTKey:         "test-secret",
		SaltRound:      4,
		CertificateDir: t.TempDir(),
	}

	dsn := fmt.Sprintf("file:certctrl_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Notification{},
		&models.LearningGoal{},
		&courseModels.Course{},
		&courseModels.Module{},
		&courseModels.Lesson{},
		&courseModels.LessonProgress{},
		&courseModels.Certificate{},
		&courseModels.CertificateSequence{},
	))

	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))
	app.Post("/course/certificate/generate", middleware.CertificateAuth, validators.GenerateCertificate(), GenerateCertificate)
	app.Get("/user/certificates", middleware.JWTMiddleware, GetUserCertificates)

	return app
}

// seedCompletedCourse creates a published course whose every active lesson the
// user has completed, and returns the user and course
func seedCompletedCourse(t *testing.T, userName string) (models.User, courseModels.Course) {
	t.Helper()
	db := database.Database.Db

	user := models.User{FullName: userName, Email: userName + "@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	course := courseModels.Course{Title: "Dasar-Dasar Go", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	module := courseModels.Module{CourseID: course.ID, Title: "Pengenalan", IsActive: true}
	require.NoError(t, db.Create(&module).Error)

	lesson := courseModels.Lesson{ModuleID: module.ID, Title: "Materi 1", IsActive: true}
	require.NoError(t, db.Create(&lesson).Error)

	now := time.Now()
	require.NoError(t, db.Create(&courseModels.LessonProgress{
		UserID: user.ID, LessonID: lesson.ID, Completed: true, CompletedAt: &now,
	}).Error)

	return user, course
}

func generateRequest(t *testing.T, token string, courseID uint) *http.Request {
	t.Helper()

	body, err := json.Marshal(fiber.Map{"courseId": courseID})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/course/certificate/generate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// decodeErrorBody parses the failure body of the certificate endpoint
func decodeErrorBody(t *testing.T, resp *http.Response) (success bool, errMsg string) {
	t.Helper()

	var parsed struct {
		Success *bool   `json:"success"`
		Error   *string `json:"error"`
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &parsed))
	require.NotNil(t, parsed.Success, "failure body must carry a success key")
	require.NotNil(t, parsed.Error, "failure body must carry an error key")
	return *parsed.Success, *parsed.Error
}

type certificateResponse struct {
	Success     bool `json:"success"`
	Certificate struct {
		ID                string `json:"id"`
		CertificateNumber string `json:"certificateNumber"`
		UserName          string `json:"userName"`
		CourseName        string `json:"courseName"`
	} `json:"certificate"`
	SVG string `json:"svg"`
}

func TestGenerateCertificateEndToEnd(t *testing.T) {
	app := setupCertificateTestApp(t)
	user, course := seedCompletedCourse(t, "Budi Santoso")

	token, err := middleware.GenerateJWT(user.ID, user.FullName, user.Role, user.Email)
	require.NoError(t, err)

	resp, err := app.Test(generateRequest(t, token, course.ID), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed certificateResponse
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &parsed))

	assert.True(t, parsed.Success)
	assert.NotEmpty(t, parsed.Certificate.ID)
	assert.Regexp(t, `^CERT-\d{4}-\d{6}$`, parsed.Certificate.CertificateNumber)
	assert.Equal(t, "Budi Santoso", parsed.Certificate.UserName)
	assert.Equal(t, "Dasar-Dasar Go", parsed.Certificate.CourseName)
	assert.Contains(t, parsed.SVG, "Budi Santoso")
	assert.Contains(t, parsed.SVG, "Dasar-Dasar Go")
	assert.Contains(t, parsed.SVG, parsed.Certificate.CertificateNumber)

	// Repeating the request returns the same certificate, no new issuance
	resp2, err := app.Test(generateRequest(t, token, course.ID), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp2.StatusCode)

	var parsed2 certificateResponse
	raw2, err := io.ReadAll(resp2.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw2, &parsed2))

	assert.Equal(t, parsed.Certificate.ID, parsed2.Certificate.ID)
	assert.Equal(t, parsed.Certificate.CertificateNumber, parsed2.Certificate.CertificateNumber)

	var count int64
	database.Database.Db.Model(&courseModels.Certificate{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGenerateCertificateEscapesUserName(t *testing.T) {
	app := setupCertificateTestApp(t)
	user, course := seedCompletedCourse(t, `Budi <b>"Hebat"</b> & Kawan`)

	token, err := middleware.GenerateJWT(user.ID, user.FullName, user.Role, user.Email)
	require.NoError(t, err)

	resp, err := app.Test(generateRequest(t, token, course.ID), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed certificateResponse
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &parsed))

	assert.NotContains(t, parsed.SVG, "<b>")
	assert.Contains(t, parsed.SVG, "&lt;b&gt;&quot;Hebat&quot;&lt;/b&gt; &amp; Kawan")
}

func TestGenerateCertificateNotEligible(t *testing.T) {
	app := setupCertificateTestApp(t)
	db := database.Database.Db

	user := models.User{FullName: "Siti", Email: "siti@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	course := courseModels.Course{Title: "Kimia", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	module := courseModels.Module{CourseID: course.ID, Title: "Bab 1", IsActive: true}
	require.NoError(t, db.Create(&module).Error)
	lesson := courseModels.Lesson{ModuleID: module.ID, Title: "Materi", IsActive: true}
	require.NoError(t, db.Create(&lesson).Error)

	token, err := middleware.GenerateJWT(user.ID, user.FullName, user.Role, user.Email)
	require.NoError(t, err)

	resp, err := app.Test(generateRequest(t, token, course.ID), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	success, errMsg := decodeErrorBody(t, resp)
	assert.False(t, success)
	assert.Equal(t, "Please complete all lessons before requesting a certificate!", errMsg)

	// No certificate row may exist after a rejected request
	var count int64
	db.Model(&courseModels.Certificate{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGenerateCertificateUnauthorized(t *testing.T) {
	app := setupCertificateTestApp(t)
	_, course := seedCompletedCourse(t, "Budi")

	resp, err := app.Test(generateRequest(t, "", course.ID), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	success, errMsg := decodeErrorBody(t, resp)
	assert.False(t, success)
	assert.NotEmpty(t, errMsg)
}

func TestGenerateCertificateMissingCourseID(t *testing.T) {
	app := setupCertificateTestApp(t)
	user, _ := seedCompletedCourse(t, "Budi")

	token, err := middleware.GenerateJWT(user.ID, user.FullName, user.Role, user.Email)
	require.NoError(t, err)

	body := bytes.NewReader([]byte(`{}`))
	req := httptest.NewRequest(http.MethodPost, "/course/certificate/generate", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	success, errMsg := decodeErrorBody(t, resp)
	assert.False(t, success)
	assert.Equal(t, "Course ID is required!", errMsg)
}

func TestGenerateCertificateCourseNotFound(t *testing.T) {
	app := setupCertificateTestApp(t)
	user, course := seedCompletedCourse(t, "Budi")

	token, err := middleware.GenerateJWT(user.ID, user.FullName, user.Role, user.Email)
	require.NoError(t, err)

	resp, err := app.Test(generateRequest(t, token, course.ID+100), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	success, errMsg := decodeErrorBody(t, resp)
	assert.False(t, success)
	assert.Equal(t, "Course not found!", errMsg)
}

func TestGenerateCertificateNotifiesOnlyOnFirstIssuance(t *testing.T) {
	app := setupCertificateTestApp(t)
	user, course := seedCompletedCourse(t, "Budi")

	// Break the certificate directory so the file copy keeps failing and the
	// stored URL stays empty across requests
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	config.AppConfig.CertificateDir = filepath.Join(blocker, "certificates")

	token, err := middleware.GenerateJWT(user.ID, user.FullName, user.Role, user.Email)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		resp, err := app.Test(generateRequest(t, token, course.ID), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	var count int64
	database.Database.Db.Model(&models.Notification{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count, "repeat fetches must not re-notify")
}

func TestGenerateCertificateAdvancesCourseGoal(t *testing.T) {
	app := setupCertificateTestApp(t)
	user, course := seedCompletedCourse(t, "Budi")

	goal := models.LearningGoal{
		UserID:      user.ID,
		Title:       "Selesaikan satu kursus",
		GoalType:    "COURSES_COMPLETED",
		TargetValue: 1,
		Status:      "ACTIVE",
		StartDate:   time.Now(),
		EndDate:     time.Now().Add(30 * 24 * time.Hour),
	}
	require.NoError(t, database.Database.Db.Create(&goal).Error)

	token, err := middleware.GenerateJWT(user.ID, user.FullName, user.Role, user.Email)
	require.NoError(t, err)

	// Issue once, then fetch again; the goal advances only on issuance
	for i := 0; i < 2; i++ {
		resp, err := app.Test(generateRequest(t, token, course.ID), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	var updated models.LearningGoal
	require.NoError(t, database.Database.Db.First(&updated, goal.ID).Error)
	assert.Equal(t, 1, updated.CurrentValue)
	assert.Equal(t, "COMPLETED", updated.Status)
}

func TestGenerateCertificateCORSPreflight(t *testing.T) {
	app := setupCertificateTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/course/certificate/generate", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestGetUserCertificatesList(t *testing.T) {
	app := setupCertificateTestApp(t)
	user, course := seedCompletedCourse(t, "Budi")

	token, err := middleware.GenerateJWT(user.ID, user.FullName, user.Role, user.Email)
	require.NoError(t, err)

	// Issue one certificate first
	resp, err := app.Test(generateRequest(t, token, course.ID), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/user/certificates", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	listResp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, listResp.StatusCode)

	var parsed struct {
		Status bool `json:"status"`
		Data   struct {
			Certificates []struct {
				CertificateNumber string `json:"certificate_number"`
				CourseName        string `json:"course_name"`
			} `json:"certificates"`
			Total int `json:"total"`
		} `json:"data"`
	}
	raw, err := io.ReadAll(listResp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &parsed))

	assert.True(t, parsed.Status)
	assert.Equal(t, 1, parsed.Data.Total)
	require.Len(t, parsed.Data.Certificates, 1)
	assert.Equal(t, "Dasar-Dasar Go", parsed.Data.Certificates[0].CourseName)
}
