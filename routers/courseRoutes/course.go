package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Enrollment & progress
	courseGroup.Post("/enroll", middleware.JWTMiddleware, validators.EnrollCourses(), controllers.EnrollInCourses)
	courseGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetUserEnrollments)
	courseGroup.Patch("/progress", middleware.JWTMiddleware, validators.UpdateProgress(), controllers.UpdateProgress)

	// Course content
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseDetails)
	courseGroup.Get("/:course_id/lesson/:lesson_id", middleware.JWTMiddleware, validators.LessonContext(), controllers.GetLessonWithContext)
}
