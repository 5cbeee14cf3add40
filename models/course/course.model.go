package course

import "gorm.io/gorm"

// Course represents a learning course
type Course struct {
	gorm.Model
	Title                  string `json:"title"`
	Description            string `json:"description"`
	Difficulty             string `json:"difficulty" gorm:"default:'BEGINNER'"` // BEGINNER, INTERMEDIATE, ADVANCED
	ThumbnailURL           string `json:"thumbnail_url"`
	CertificateTemplateURL string `json:"certificate_template_url"`
	IsPublished            bool   `json:"is_published" gorm:"default:false"`
	IsDeleted              bool   `gorm:"default:false"`
}
