package services

import (
	"errors"
	"fmt"
	"strings"

	courseModels "lms/models/course"
	paymentModels "lms/models/payment"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CheckoutItem is one course line sent to the payment provider.
type CheckoutItem struct {
	CourseID    uint
	Title       string
	AmountCents int64
}

// CheckoutRequest is the provider handshake payload: line items plus the
// provider-visible reference of the local payment and the redirect targets
// the checkout page sends the buyer back to.
type CheckoutRequest struct {
	Items      []CheckoutItem
	Reference  string
	SuccessURL string
	FailureURL string
	PendingURL string
}

// CheckoutGateway abstracts the external payment provider. Implementations
// must bound the call with a timeout; the workflow does not retry.
type CheckoutGateway interface {
	CreateCheckout(req CheckoutRequest) (redirectURL string, err error)
}

// CheckoutResult is what a purchase request gets back: the persisted PENDING
// payment and the provider redirect the buyer completes the purchase on.
type CheckoutResult struct {
	Payment     paymentModels.Payment `json:"payment"`
	RedirectURL string                `json:"redirect_url"`
}

// CreatePayment turns a cart of course ids into a PENDING payment plus a
// provider checkout redirect.
//
// Nothing is persisted unless every course resolves and none of them is
// already actively enrolled for the user. The payment and its items are
// written in one transaction. A provider failure after that point leaves the
// PENDING rows in place on purpose: the orphan is picked up by the
// reconciliation sweep instead of a synchronous rollback.
func CreatePayment(db *gorm.DB, gateway CheckoutGateway, userID uint, courseIDs []uint) (*CheckoutResult, error) {
	var courses []courseModels.Course
	if err := db.Where("id IN ? AND is_deleted = ?", courseIDs, false).Find(&courses).Error; err != nil {
		return nil, err
	}
	if len(courses) != len(courseIDs) {
		return nil, &NotFoundError{Message: "One or more courses do not exist"}
	}

	var enrolled []courseModels.Enrollment
	err := db.Where("user_id = ? AND course_id IN ? AND canceled = ?", userID, courseIDs, false).
		Find(&enrolled).Error
	if err != nil {
		return nil, err
	}
	if len(enrolled) > 0 {
		enrolledIDs := make(map[uint]bool, len(enrolled))
		for _, e := range enrolled {
			enrolledIDs[e.CourseID] = true
		}
		var titles []string
		for _, c := range courses {
			if enrolledIDs[c.ID] {
				titles = append(titles, c.Title)
			}
		}
		return nil, &ConflictError{Message: "Already enrolled in the following courses: " + strings.Join(titles, ", ")}
	}

	var totalCents int64
	for _, c := range courses {
		totalCents += c.PriceCents
	}

	pmt := paymentModels.Payment{
		UserID:      userID,
		AmountCents: totalCents,
		Currency:    paymentModels.CurrencyPEN,
		Status:      paymentModels.PaymentStatusPending,
		Reference:   uuid.NewString(),
	}

	// Payment and its items must land together or not at all
	tx := db.Begin()
	if err := tx.Create(&pmt).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	items := make([]paymentModels.PaymentItem, 0, len(courses))
	for _, c := range courses {
		items = append(items, paymentModels.PaymentItem{
			PaymentID:   pmt.ID,
			CourseID:    c.ID,
			AmountCents: c.PriceCents,
		})
	}
	if err := tx.Create(&items).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	pmt.Items = items

	checkoutItems := make([]CheckoutItem, 0, len(courses))
	for _, c := range courses {
		checkoutItems = append(checkoutItems, CheckoutItem{
			CourseID:    c.ID,
			Title:       c.Title,
			AmountCents: c.PriceCents,
		})
	}

	redirectURL, err := gateway.CreateCheckout(CheckoutRequest{
		Items:      checkoutItems,
		Reference:  pmt.Reference,
		SuccessURL: checkoutBackURL("/cart/success"),
		FailureURL: checkoutBackURL("/cart"),
		PendingURL: checkoutBackURL("/payments/pending"),
	})
	if err != nil {
		// The PENDING payment stays behind for the reconciliation sweep.
		return nil, &ProviderError{Detail: fmt.Sprintf("checkout creation failed for payment %d", pmt.ID), Err: err}
	}

	return &CheckoutResult{Payment: pmt, RedirectURL: redirectURL}, nil
}

// BackURLBase is the front-end origin the provider redirects buyers back to.
// Set once at startup alongside the gateway client.
var BackURLBase string

func checkoutBackURL(path string) string {
	return strings.TrimRight(BackURLBase, "/") + path
}

// ConfirmPayment moves a payment PENDING -> PAID and materializes one
// enrollment per payment item, all in one transaction: a PAID payment with
// missing enrollments must never exist.
//
// The status check rides in the UPDATE's WHERE clause, so of two concurrent
// confirmations exactly one flips the row; the other sees zero rows affected
// and reports Conflict. Enrollment inserts are duplicate-safe: a course the
// user already holds an enrollment for is skipped without error.
func ConfirmPayment(db *gorm.DB, paymentID uint, externalChargeID string) (*paymentModels.Payment, error) {
	var pmt paymentModels.Payment
	err := db.Preload("Items").First(&pmt, paymentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Message: "Payment not found"}
	}
	if err != nil {
		return nil, err
	}
	if pmt.Status != paymentModels.PaymentStatusPending {
		return nil, &ConflictError{Message: "Payment already processed"}
	}

	tx := db.Begin()

	res := tx.Model(&paymentModels.Payment{}).
		Where("id = ? AND status = ?", paymentID, paymentModels.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":             paymentModels.PaymentStatusPaid,
			"external_charge_id": externalChargeID,
		})
	if res.Error != nil {
		tx.Rollback()
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// a concurrent confirmation won the race
		tx.Rollback()
		return nil, &ConflictError{Message: "Payment already processed"}
	}

	enrollments := make([]courseModels.Enrollment, 0, len(pmt.Items))
	for _, item := range pmt.Items {
		enrollments = append(enrollments, courseModels.Enrollment{
			UserID:   pmt.UserID,
			CourseID: item.CourseID,
		})
	}
	if len(enrollments) > 0 {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).Create(&enrollments).Error
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	pmt.Status = paymentModels.PaymentStatusPaid
	pmt.ExternalChargeID = externalChargeID
	return &pmt, nil
}
