package services

import (
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertProgressCreatesCompletedRow(t *testing.T) {
	db := newTestDB(t)
	a := seedCourse(t, db, "Course A", 1000)
	enrollment := seedEnrollment(t, db, 7, a.ID, false)

	progress, err := UpsertProgress(db, 42, enrollment.ID, true)
	require.NoError(t, err)
	require.NotNil(t, progress.CompletedAt)
	assert.Equal(t, uint(42), progress.LessonID)
	assert.Equal(t, enrollment.ID, progress.EnrollmentID)
}

func TestUpsertProgressIncompleteCreatesRowWithoutTimestamp(t *testing.T) {
	db := newTestDB(t)
	a := seedCourse(t, db, "Course A", 1000)
	enrollment := seedEnrollment(t, db, 7, a.ID, false)

	progress, err := UpsertProgress(db, 42, enrollment.ID, false)
	require.NoError(t, err)
	assert.Nil(t, progress.CompletedAt)
}

func TestUpsertProgressIncompleteKeepsExistingTimestamp(t *testing.T) {
	db := newTestDB(t)
	a := seedCourse(t, db, "Course A", 1000)
	enrollment := seedEnrollment(t, db, 7, a.ID, false)

	completed, err := UpsertProgress(db, 42, enrollment.ID, true)
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedAt)

	// completed=false must not clear the timestamp once set
	after, err := UpsertProgress(db, 42, enrollment.ID, false)
	require.NoError(t, err)
	require.NotNil(t, after.CompletedAt)
	assert.Equal(t, completed.CompletedAt.Unix(), after.CompletedAt.Unix())
}

func TestUpsertProgressRecompleteRefreshesTimestamp(t *testing.T) {
	db := newTestDB(t)
	a := seedCourse(t, db, "Course A", 1000)
	enrollment := seedEnrollment(t, db, 7, a.ID, false)

	first, err := UpsertProgress(db, 42, enrollment.ID, true)
	require.NoError(t, err)

	second, err := UpsertProgress(db, 42, enrollment.ID, true)
	require.NoError(t, err)
	require.NotNil(t, second.CompletedAt)
	assert.False(t, second.CompletedAt.Before(*first.CompletedAt))
}

func TestUpsertProgressKeepsSingleRowPerLesson(t *testing.T) {
	db := newTestDB(t)
	a := seedCourse(t, db, "Course A", 1000)
	enrollment := seedEnrollment(t, db, 7, a.ID, false)

	_, err := UpsertProgress(db, 42, enrollment.ID, false)
	require.NoError(t, err)
	_, err = UpsertProgress(db, 42, enrollment.ID, true)
	require.NoError(t, err)
	_, err = UpsertProgress(db, 42, enrollment.ID, true)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&courseModels.Progress{}).
		Where("lesson_id = ? AND enrollment_id = ?", 42, enrollment.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
