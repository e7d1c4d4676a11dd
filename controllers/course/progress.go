package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/services"

	"github.com/gofiber/fiber/v2"
)

// UpdateProgress upserts the caller's completion state for one lesson.
// Marking complete refreshes the completion timestamp; marking incomplete
// after completion is a no-op (completion is sticky).
func UpdateProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedProgress").(*struct {
		LessonID     uint  `json:"lessonId"`
		EnrollmentID uint  `json:"enrollmentId"`
		Completed    *bool `json:"completed"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// The enrollment must belong to the caller
	var enrollment courseModels.Enrollment
	err := database.Database.Db.
		Where("id = ? AND user_id = ?", reqData.EnrollmentID, userID).
		First(&enrollment).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	progress, err := services.UpsertProgress(database.Database.Db, reqData.LessonID, reqData.EnrollmentID, *reqData.Completed)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", progress)
}
