package controllers

import (
	"errors"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetLessonWithContext returns a lesson together with its module, course,
// previous/next lesson ids and the caller's progress in the course.
func GetLessonWithContext(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	var course courseModels.Course
	err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", courseID, false).
		Preload("Modules", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("order_index asc")
		}).
		Preload("Modules.Lessons", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("order_index asc")
		}).
		First(&course).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Progress is zero when the caller is not enrolled; the lesson itself is
	// still served so previews keep working.
	var progresses []courseModels.Progress
	var enrollment courseModels.Enrollment
	err = database.Database.Db.
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment).Error
	if err == nil {
		progresses, err = services.ListProgress(database.Database.Db, enrollment.ID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollment!", nil)
	}

	ctx, err := services.BuildLessonContext(course, uint(lessonID), progresses)
	if err != nil {
		var notFound *services.NotFoundError
		if errors.As(err, &notFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build lesson context!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", ctx)
}
