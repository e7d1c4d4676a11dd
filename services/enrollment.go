package services

import (
	"errors"

	courseModels "lms/models/course"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnrollMany upserts one enrollment per course id for the user. Each course
// id is an independent idempotent step:
//   - no row yet: insert one (not canceled)
//   - row exists canceled: flip it back to active
//   - row exists active: skip, no error
//
// "Already enrolled" is deliberately a successful no-op so purchase retries
// converge instead of failing. The unique index on (user_id, course_id) is
// the final guard against racing inserts.
func EnrollMany(db *gorm.DB, userID uint, courseIDs []uint) ([]courseModels.Enrollment, error) {
	results := make([]courseModels.Enrollment, 0, len(courseIDs))

	for _, courseID := range courseIDs {
		var existing courseModels.Enrollment
		err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error
		if err == nil {
			if !existing.Canceled {
				continue // already enrolled and active
			}
			if err := db.Model(&existing).Update("canceled", false).Error; err != nil {
				return nil, err
			}
			existing.Canceled = false
			results = append(results, existing)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		enrollment := courseModels.Enrollment{
			UserID:   userID,
			CourseID: courseID,
		}
		res := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).Create(&enrollment)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			// lost the insert race to a concurrent call; treat as already enrolled
			continue
		}
		results = append(results, enrollment)
	}

	return results, nil
}

// ListActiveEnrollments returns the user's non-canceled enrollments with the
// course's ordered module -> lesson tree preloaded for aggregation.
func ListActiveEnrollments(db *gorm.DB, userID uint) ([]courseModels.Enrollment, error) {
	var enrollments []courseModels.Enrollment
	err := db.
		Where("user_id = ? AND canceled = ?", userID, false).
		Preload("Course").
		Preload("Course.Modules", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("order_index asc")
		}).
		Preload("Course.Modules.Lessons", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("order_index asc")
		}).
		Order("created_at desc").
		Find(&enrollments).Error
	if err != nil {
		return nil, err
	}
	return enrollments, nil
}

// ListProgress returns all progress rows recorded for an enrollment.
func ListProgress(db *gorm.DB, enrollmentID uint) ([]courseModels.Progress, error) {
	var progresses []courseModels.Progress
	if err := db.Where("enrollment_id = ?", enrollmentID).Find(&progresses).Error; err != nil {
		return nil, err
	}
	return progresses, nil
}
