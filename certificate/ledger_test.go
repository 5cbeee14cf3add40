package certificate

import (
	"fmt"
	"sync"
	"testing"
	"time"

	courseModels "github.com/canyouhelpmebaby-ctrl/progressia-lms-id/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeVerifier lets tests control the completion check outcome
type fakeVerifier struct {
	complete bool
	err      error
}

func (f *fakeVerifier) IsComplete(userID, courseID uint) (bool, error) {
	return f.complete, f.err
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:ledger_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Serialize writes so concurrent tests see constraint errors, not lock errors
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&courseModels.Module{},
		&courseModels.Lesson{},
		&courseModels.LessonProgress{},
		&courseModels.Certificate{},
		&courseModels.CertificateSequence{},
	))

	return db
}

func TestGetOrIssueNotEligible(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db, &fakeVerifier{complete: false})

	cert, created, err := ledger.GetOrIssue(1, 1)

	assert.Nil(t, cert)
	assert.False(t, created)
	assert.ErrorIs(t, err, ErrNotEligible)

	// Eligibility failure must not write anything
	var count int64
	db.Model(&courseModels.Certificate{}).Count(&count)
	assert.Equal(t, int64(0), count)
	db.Model(&courseModels.CertificateSequence{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGetOrIssueVerifierErrorPropagates(t *testing.T) {
	db := newTestDB(t)
	wantErr := fmt.Errorf("connection refused")
	ledger := NewLedger(db, &fakeVerifier{err: wantErr})

	cert, created, err := ledger.GetOrIssue(1, 1)

	assert.Nil(t, cert)
	assert.False(t, created)
	assert.ErrorIs(t, err, wantErr)
	assert.NotErrorIs(t, err, ErrNotEligible, "a failed check is not the same as ineligibility")
}

func TestGetOrIssueIdempotence(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db, &fakeVerifier{complete: true})

	first, created, err := ledger.GetOrIssue(7, 3)
	require.NoError(t, err)
	require.NotEmpty(t, first.CertificateNumber)
	require.NotEmpty(t, first.PublicID)
	assert.True(t, created, "first call issues the certificate")

	second, created, err := ledger.GetOrIssue(7, 3)
	require.NoError(t, err)
	assert.False(t, created, "repeat call returns the existing certificate")

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.PublicID, second.PublicID)
	assert.Equal(t, first.CertificateNumber, second.CertificateNumber)
	assert.Equal(t, first.IssuedAt.Unix(), second.IssuedAt.Unix())

	var count int64
	db.Model(&courseModels.Certificate{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGetOrIssueUniqueNumbersAcrossPairs(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db, &fakeVerifier{complete: true})

	seen := make(map[string]bool)
	for user := uint(1); user <= 3; user++ {
		for course := uint(1); course <= 3; course++ {
			cert, _, err := ledger.GetOrIssue(user, course)
			require.NoError(t, err)
			assert.False(t, seen[cert.CertificateNumber], "number %s reused", cert.CertificateNumber)
			seen[cert.CertificateNumber] = true
		}
	}

	assert.Len(t, seen, 9)
}

func TestGetOrIssueNumberFormat(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db, &fakeVerifier{complete: true})

	cert, _, err := ledger.GetOrIssue(1, 1)
	require.NoError(t, err)

	assert.Regexp(t, `^CERT-\d{4}-\d{6}$`, cert.CertificateNumber)
	assert.Contains(t, cert.CertificateNumber, fmt.Sprintf("CERT-%d-", time.Now().Year()))
}

func TestGetOrIssueLosingWriterReturnsWinner(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db, &fakeVerifier{complete: true})

	// Inject a competing insert between the ledger's existence check and its
	// own insert, which is exactly the window the unique index protects.
	injected := false
	err := db.Callback().Create().Before("gorm:create").Register("inject_competing_certificate", func(tx *gorm.DB) {
		if injected || tx.Statement.Table != "certificates" {
			return
		}
		injected = true
		winner := courseModels.Certificate{
			PublicID:          "winner-public-id",
			UserID:            5,
			CourseID:          9,
			CertificateNumber: "CERT-2025-999999",
			IssuedAt:          time.Now(),
		}
		require.NoError(t, tx.Session(&gorm.Session{NewDB: true}).Create(&winner).Error)
	})
	require.NoError(t, err)

	cert, created, err := ledger.GetOrIssue(5, 9)
	require.NoError(t, err)

	assert.True(t, injected, "competing insert must have run")
	assert.False(t, created, "the losing writer did not issue the certificate")
	assert.Equal(t, "CERT-2025-999999", cert.CertificateNumber)
	assert.Equal(t, "winner-public-id", cert.PublicID)

	var count int64
	db.Model(&courseModels.Certificate{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGetOrIssueConcurrentIssuance(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db, &fakeVerifier{complete: true})

	const callers = 8
	results := make([]*courseModels.Certificate, callers)
	createdFlags := make([]bool, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], createdFlags[i], errs[i] = ledger.GetOrIssue(2, 4)
		}(i)
	}
	wg.Wait()

	issuers := 0
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
		assert.Equal(t, results[0].CertificateNumber, results[i].CertificateNumber)
		if createdFlags[i] {
			issuers++
		}
	}
	assert.Equal(t, 1, issuers, "exactly one caller performs the issuance")

	var count int64
	db.Model(&courseModels.Certificate{}).Count(&count)
	assert.Equal(t, int64(1), count, "concurrent issuance must persist exactly one row")
}

func TestGormVerifier(t *testing.T) {
	db := newTestDB(t)
	verifier := NewGormVerifier(db)

	// Course 1: two active lessons in an active module, one inactive lesson,
	// plus an inactive module with its own lesson
	activeModule := courseModels.Module{CourseID: 1, Title: "Pengenalan", IsActive: true}
	require.NoError(t, db.Create(&activeModule).Error)
	inactiveModule := courseModels.Module{CourseID: 1, Title: "Draf", IsActive: false}
	require.NoError(t, db.Create(&inactiveModule).Error)

	lesson1 := courseModels.Lesson{ModuleID: activeModule.ID, Title: "Materi 1", IsActive: true}
	lesson2 := courseModels.Lesson{ModuleID: activeModule.ID, Title: "Materi 2", IsActive: true}
	hiddenLesson := courseModels.Lesson{ModuleID: activeModule.ID, Title: "Tersembunyi", IsActive: false}
	draftLesson := courseModels.Lesson{ModuleID: inactiveModule.ID, Title: "Draf", IsActive: true}
	require.NoError(t, db.Create(&lesson1).Error)
	require.NoError(t, db.Create(&lesson2).Error)
	require.NoError(t, db.Create(&hiddenLesson).Error)
	require.NoError(t, db.Create(&draftLesson).Error)

	now := time.Now()

	// No progress yet
	complete, err := verifier.IsComplete(10, 1)
	require.NoError(t, err)
	assert.False(t, complete)

	// One of two required lessons done
	require.NoError(t, db.Create(&courseModels.LessonProgress{UserID: 10, LessonID: lesson1.ID, Completed: true, CompletedAt: &now}).Error)
	complete, err = verifier.IsComplete(10, 1)
	require.NoError(t, err)
	assert.False(t, complete)

	// Both required lessons done; inactive content is ignored
	require.NoError(t, db.Create(&courseModels.LessonProgress{UserID: 10, LessonID: lesson2.ID, Completed: true, CompletedAt: &now}).Error)
	complete, err = verifier.IsComplete(10, 1)
	require.NoError(t, err)
	assert.True(t, complete)

	// Another user's progress does not leak
	complete, err = verifier.IsComplete(11, 1)
	require.NoError(t, err)
	assert.False(t, complete)
}

func TestGormVerifierEmptyCourse(t *testing.T) {
	db := newTestDB(t)
	verifier := NewGormVerifier(db)

	// A course with no lessons can never be complete
	complete, err := verifier.IsComplete(1, 42)
	require.NoError(t, err)
	assert.False(t, complete)
}
