package certificate

import (
	"errors"
	"fmt"
	"time"

	courseModels "github.com/canyouhelpmebaby-ctrl/progressia-lms-id/models/course"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrNotEligible means the completion check came back false; nothing was written.
	ErrNotEligible = errors.New("course not completed yet")
	// ErrConflictRetry means a concurrent issuance won the insert race but the
	// winner's row could not be read back afterwards.
	ErrConflictRetry = errors.New("certificate issuance conflict could not be resolved")
)

// Ledger enforces at most one certificate per (user, course) pair and
// allocates certificate numbers. Repeat calls return the original record.
type Ledger struct {
	Db       *gorm.DB
	Verifier CompletionVerifier
}

func NewLedger(db *gorm.DB, verifier CompletionVerifier) *Ledger {
	return &Ledger{Db: db, Verifier: verifier}
}

// GetOrIssue returns the existing certificate for the pair, or issues a new
// one when the user has completed the course. The second return value is true
// only for the call that actually inserted the row, so callers can run
// first-issuance side effects exactly once. Issuance is idempotent: the
// unique (user_id, course_id) index backs the concurrency contract, and a
// losing concurrent writer re-reads the winner's row instead of failing.
func (l *Ledger) GetOrIssue(userID, courseID uint) (*courseModels.Certificate, bool, error) {
	complete, err := l.Verifier.IsComplete(userID, courseID)
	if err != nil {
		return nil, false, err
	}
	if !complete {
		return nil, false, ErrNotEligible
	}

	var existing courseModels.Certificate
	err = l.Db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	number, err := l.nextCertificateNumber()
	if err != nil {
		return nil, false, err
	}

	cert := courseModels.Certificate{
		PublicID:          uuid.NewString(),
		UserID:            userID,
		CourseID:          courseID,
		CertificateNumber: number,
		IssuedAt:          time.Now(),
	}

	if err := l.Db.Create(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Someone else won the race; their row is the certificate
			var winner courseModels.Certificate
			if rerr := l.Db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&winner).Error; rerr != nil {
				return nil, false, ErrConflictRetry
			}
			return &winner, false, nil
		}
		return nil, false, err
	}

	return &cert, true, nil
}

// nextCertificateNumber allocates a globally unique number from a dedicated
// sequence table. Sequence rows are append-only, so numbers are never reused.
func (l *Ledger) nextCertificateNumber() (string, error) {
	seq := courseModels.CertificateSequence{CreatedAt: time.Now()}
	if err := l.Db.Create(&seq).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("CERT-%d-%06d", time.Now().Year(), seq.ID), nil
}
