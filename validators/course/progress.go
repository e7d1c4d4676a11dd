package courseValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// UpdateProgress validates the lesson progress upsert request
func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			LessonID     uint  `json:"lessonId"`
			EnrollmentID uint  `json:"enrollmentId"`
			Completed    *bool `json:"completed"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.LessonID == 0 {
			errors["lessonId"] = "Lesson ID is required!"
		}
		if reqData.EnrollmentID == 0 {
			errors["enrollmentId"] = "Enrollment ID is required!"
		}
		if reqData.Completed == nil {
			errors["completed"] = "Completed flag is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}
