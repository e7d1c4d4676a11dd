package paymentRoutes

import (
	controllers "lms/controllers/payment"
	"lms/middleware"
	validators "lms/validators/payment"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes sets up the purchase and confirmation routes
func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payment")

	paymentGroup.Post("/", middleware.JWTMiddleware, validators.CreatePayment(), controllers.CreatePayment)
	paymentGroup.Post("/confirm", middleware.JWTMiddleware, validators.ConfirmPayment(), controllers.ConfirmPayment)
}
