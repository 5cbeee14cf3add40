package models

import "gorm.io/gorm"

// LearningMaterial is a downloadable file attached to a course
type LearningMaterial struct {
	gorm.Model
	CourseID    *uint  `json:"course_id" gorm:"index"`
	Title       string `json:"title"`
	Description string `json:"description"`
	FilePath    string `json:"file_path"`
	FileType    string `json:"file_type"`
	FileSize    int64  `json:"file_size" gorm:"default:0"`
	UploadedBy  uint   `json:"uploaded_by"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
	IsDeleted   bool   `gorm:"default:false"`
}
