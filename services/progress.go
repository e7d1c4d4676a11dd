package services

import (
	"time"

	courseModels "lms/models/course"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertProgress records lesson progress for an enrollment, keyed on the
// unique (lesson_id, enrollment_id) pair.
//
// completed=true sets CompletedAt to now, creating the row if needed.
// completed=false creates the row without a timestamp but NEVER clears an
// existing one: completion is sticky once set. Callers must not rely on
// completed=false to un-complete a lesson.
//
// TODO: confirm with product whether sticky completion is intended or an
// oversight before any feature depends on it.
func UpsertProgress(db *gorm.DB, lessonID, enrollmentID uint, completed bool) (courseModels.Progress, error) {
	progress := courseModels.Progress{
		LessonID:     lessonID,
		EnrollmentID: enrollmentID,
	}

	conflictTarget := []clause.Column{{Name: "lesson_id"}, {Name: "enrollment_id"}}

	if completed {
		now := time.Now()
		progress.CompletedAt = &now
		err := db.Clauses(clause.OnConflict{
			Columns:   conflictTarget,
			DoUpdates: clause.Assignments(map[string]interface{}{"completed_at": now}),
		}).Create(&progress).Error
		if err != nil {
			return courseModels.Progress{}, err
		}
	} else {
		err := db.Clauses(clause.OnConflict{
			Columns:   conflictTarget,
			DoNothing: true,
		}).Create(&progress).Error
		if err != nil {
			return courseModels.Progress{}, err
		}
	}

	// Return the stored row; on the no-op path the existing timestamp wins.
	var stored courseModels.Progress
	err := db.Where("lesson_id = ? AND enrollment_id = ?", lessonID, enrollmentID).First(&stored).Error
	if err != nil {
		return courseModels.Progress{}, err
	}
	return stored, nil
}
