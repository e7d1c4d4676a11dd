package course

import (
	"time"

	"gorm.io/gorm"
)

// Progress marks one lesson within one enrollment. One row per
// (lesson, enrollment); a nil CompletedAt means the lesson was opened but
// not completed. Rows are never deleted, only refreshed.
type Progress struct {
	gorm.Model
	LessonID     uint       `json:"lesson_id" gorm:"uniqueIndex:idx_progress_lesson_enrollment;not null"`
	EnrollmentID uint       `json:"enrollment_id" gorm:"uniqueIndex:idx_progress_lesson_enrollment;not null"`
	CompletedAt  *time.Time `json:"completed_at"`
}
