package paymentController

import (
	"errors"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// CreatePayment persists a PENDING payment for the requested courses and
// returns it with the provider checkout redirect.
func CreatePayment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedPayment").(*struct {
		CourseIDs []uint `json:"courseIds"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result, err := services.CreatePayment(database.Database.Db, utils.PaymentGateway, userID, reqData.CourseIDs)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment created successfully!", result)
}

// ConfirmPayment transitions a payment to PAID and materializes its
// enrollments. Duplicate confirmations get a 409.
func ConfirmPayment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedConfirmPayment").(*struct {
		PaymentID        uint   `json:"paymentId"`
		ExternalChargeID string `json:"externalChargeId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	pmt, err := services.ConfirmPayment(database.Database.Db, reqData.PaymentID, reqData.ExternalChargeID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	utils.Revalidate("/my-courses")
	go sendConfirmationEmail(userID, pmt.AmountCents, pmt.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment confirmed successfully!", pmt)
}

// sendConfirmationEmail mails the buyer the unlocked course titles.
// Best-effort: any failure is only logged by the email service.
func sendConfirmationEmail(userID uint, amountCents int64, paymentID uint) {
	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return
	}

	var titles []string
	db.Model(&courseModels.Course{}).
		Joins("JOIN payment_items ON payment_items.course_id = courses.id").
		Where("payment_items.payment_id = ?", paymentID).
		Pluck("courses.title", &titles)

	utils.SendPurchaseConfirmation(user.Email, user.Name, titles, amountCents)
}

// serviceErrorResponse maps core error kinds to HTTP statuses. Internal
// errors surface generically, without diagnostic detail.
func serviceErrorResponse(c *fiber.Ctx, err error) error {
	var notFound *services.NotFoundError
	if errors.As(err, &notFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, notFound.Message, nil)
	}

	var conflict *services.ConflictError
	if errors.As(err, &conflict) {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, conflict.Message, nil)
	}

	var provider *services.ProviderError
	if errors.As(err, &provider) {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Payment provider error!", fiber.Map{
			"detail": provider.Error(),
		})
	}

	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
}
