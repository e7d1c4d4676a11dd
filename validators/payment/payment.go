package paymentValidator

import (
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreatePayment validates the purchase request body
func CreatePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseIDs []uint `json:"courseIds"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.CourseIDs) == 0 {
			errors["courseIds"] = "At least one course ID is required!"
		}
		seen := make(map[uint]bool)
		for _, id := range reqData.CourseIDs {
			if id == 0 {
				errors["courseIds"] = "Course IDs must be positive!"
				break
			}
			if seen[id] {
				errors["courseIds"] = "Course IDs must be unique!"
				break
			}
			seen[id] = true
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPayment", reqData)
		return c.Next()
	}
}

// ConfirmPayment validates the payment confirmation request body
func ConfirmPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			PaymentID        uint   `json:"paymentId"`
			ExternalChargeID string `json:"externalChargeId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.PaymentID == 0 {
			errors["paymentId"] = "Payment ID is required!"
		}

		reqData.ExternalChargeID = strings.TrimSpace(reqData.ExternalChargeID)
		if reqData.ExternalChargeID == "" {
			errors["externalChargeId"] = "External charge ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedConfirmPayment", reqData)
		return c.Next()
	}
}
