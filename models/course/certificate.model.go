package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate represents an issued certificate for course completion.
// The composite unique index on (user_id, course_id) is what resolves the
// double-issuance race: the second concurrent insert fails with a duplicate
// key error and falls back to re-reading the winner's row.
type Certificate struct {
	gorm.Model
	PublicID          string    `json:"public_id" gorm:"unique;not null"` // opaque UUID exposed to clients
	UserID            uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_course_cert"`
	CourseID          uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_user_course_cert"`
	CertificateURL    string    `json:"certificate_url"`
	CertificateNumber string    `json:"certificate_number" gorm:"unique;not null"`
	IssuedAt          time.Time `json:"issued_at"`
}

// CertificateSequence backs certificate number allocation. Rows are inserted
// and never deleted, so an allocated number is never handed out twice even if
// the certificate that used it were removed.
type CertificateSequence struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
}
