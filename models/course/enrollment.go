package course

import (
	"gorm.io/gorm"
)

// Enrollment links a user to a course. At most one row exists per
// (user, course); re-enrollment flips Canceled back to false instead of
// inserting a duplicate. Rows are never hard-deleted so the
// payment -> enrollment lineage stays queryable.
type Enrollment struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	CourseID uint `json:"course_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	Canceled bool `json:"canceled" gorm:"default:false"`

	Course Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}
