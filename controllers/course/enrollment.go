package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/services"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourses upserts one enrollment per requested course for the caller.
// Already-active enrollments are skipped silently; canceled ones are
// reactivated.
func EnrollInCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedEnrollment").(*struct {
		CourseIDs []uint `json:"courseIds"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	enrollments, err := services.EnrollMany(database.Database.Db, userID, reqData.CourseIDs)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in courses!", nil)
	}

	utils.Revalidate("/my-courses")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled successfully!", enrollments)
}

// GetUserEnrollments returns the caller's active enrollments with
// percent-complete and the first lesson to jump into.
func GetUserEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollments, err := services.ListActiveEnrollments(database.Database.Db, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	summaries := make([]services.EnrollmentSummary, 0, len(enrollments))
	for _, enrollment := range enrollments {
		progresses, err := services.ListProgress(database.Database.Db, enrollment.ID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
		}
		summaries = append(summaries, services.SummarizeEnrollment(enrollment, progresses))
	}

	utils.Revalidate("/my-courses")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", summaries)
}
