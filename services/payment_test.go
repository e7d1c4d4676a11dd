package services

import (
	"errors"
	"testing"

	courseModels "lms/models/course"
	paymentModels "lms/models/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePaymentPersistsPendingPaymentWithItems(t *testing.T) {
	db := newTestDB(t)
	a := seedCourse(t, db, "Course A", 1000)
	b := seedCourse(t, db, "Course B", 1500)
	gateway := &fakeGateway{redirectURL: "https://checkout.example/init"}

	result, err := CreatePayment(db, gateway, 7, []uint{a.ID, b.ID})
	require.NoError(t, err)

	assert.Equal(t, "https://checkout.example/init", result.RedirectURL)
	assert.Equal(t, int64(2500), result.Payment.AmountCents)
	assert.Equal(t, paymentModels.PaymentStatusPending, result.Payment.Status)
	assert.Equal(t, paymentModels.CurrencyPEN, result.Payment.Currency)
	assert.NotEmpty(t, result.Payment.Reference)
	require.Len(t, result.Payment.Items, 2)

	var items []paymentModels.PaymentItem
	require.NoError(t, db.Where("payment_id = ?", result.Payment.ID).Find(&items).Error)
	require.Len(t, items, 2)

	// The provider sees the line items and the payment's reference
	require.Len(t, gateway.requests, 1)
	assert.Equal(t, result.Payment.Reference, gateway.requests[0].Reference)
	assert.Len(t, gateway.requests[0].Items, 2)
}

func TestCreatePaymentUnknownCourse(t *testing.T) {
	db := newTestDB(t)
	a := seedCourse(t, db, "Course A", 1000)
	gateway := &fakeGateway{redirectURL: "https://checkout.example/init"}

	_, err := CreatePayment(db, gateway, 7, []uint{a.ID, 999})

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Empty(t, gateway.requests)

	var count int64
	require.NoError(t, db.Model(&paymentModels.Payment{}).Count(&count).Error)
	assert.Zero(t, count, "nothing may be persisted")
}

func TestCreatePaymentConflictNamesEnrolledCourses(t *testing.T) {
	db := newTestDB(t)
	a := seedCourse(t, db, "Course A", 1000)
	b := seedCourse(t, db, "Course B", 1500)
	seedEnrollment(t, db, 7, a.ID, false)
	gateway := &fakeGateway{redirectURL: "https://checkout.example/init"}

	_, err := CreatePayment(db, gateway, 7, []uint{a.ID, b.ID})

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Contains(t, conflict.Message, "Course A")
	assert.NotContains(t, conflict.Message, "Course B")

	var payments, items int64
	require.NoError(t, db.Model(&paymentModels.Payment{}).Count(&payments).Error)
	require.NoError(t, db.Model(&paymentModels.PaymentItem{}).Count(&items).Error)
	assert.Zero(t, payments)
	assert.Zero(t, items)
}

func TestCreatePaymentCanceledEnrollmentDoesNotConflict(t *testing.T) {
	db := newTestDB(t)
	a := seedCourse(t, db, "Course A", 1000)
	seedEnrollment(t, db, 7, a.ID, true)
	gateway := &fakeGateway{redirectURL: "https://checkout.example/init"}

	result, err := CreatePayment(db, gateway, 7, []uint{a.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), result.Payment.AmountCents)
}

func TestCreatePaymentProviderFailureLeavesPendingRows(t *testing.T) {
	db := newTestDB(t)
	a := seedCourse(t, db, "Course A", 1000)
	gateway := &fakeGateway{err: errors.New("provider down")}

	_, err := CreatePayment(db, gateway, 7, []uint{a.ID})

	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Contains(t, providerErr.Error(), "provider down")

	// The orphan PENDING payment stays behind for reconciliation
	var pmt paymentModels.Payment
	require.NoError(t, db.Preload("Items").First(&pmt).Error)
	assert.Equal(t, paymentModels.PaymentStatusPending, pmt.Status)
	assert.Len(t, pmt.Items, 1)
}

func TestCreatePaymentTwiceCreatesIndependentPayments(t *testing.T) {
	db := newTestDB(t)
	a := seedCourse(t, db, "Course A", 1000)
	gateway := &fakeGateway{redirectURL: "https://checkout.example/init"}

	first, err := CreatePayment(db, gateway, 7, []uint{a.ID})
	require.NoError(t, err)
	second, err := CreatePayment(db, gateway, 7, []uint{a.ID})
	require.NoError(t, err)

	assert.NotEqual(t, first.Payment.ID, second.Payment.ID)
	assert.NotEqual(t, first.Payment.Reference, second.Payment.Reference)

	var count int64
	require.NoError(t, db.Model(&paymentModels.Payment{}).
		Where("status = ?", paymentModels.PaymentStatusPending).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestConfirmPaymentMarksPaidAndEnrolls(t *testing.T) {
	db := newTestDB(t)
	a := seedCourse(t, db, "Course A", 1000)
	b := seedCourse(t, db, "Course B", 1500)
	gateway := &fakeGateway{redirectURL: "https://checkout.example/init"}

	created, err := CreatePayment(db, gateway, 7, []uint{a.ID, b.ID})
	require.NoError(t, err)

	confirmed, err := ConfirmPayment(db, created.Payment.ID, "ext-1")
	require.NoError(t, err)
	assert.Equal(t, paymentModels.PaymentStatusPaid, confirmed.Status)
	assert.Equal(t, "ext-1", confirmed.ExternalChargeID)

	var enrollments []courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ?", 7).Order("course_id").Find(&enrollments).Error)
	require.Len(t, enrollments, 2)
	for _, e := range enrollments {
		assert.False(t, e.Canceled)
	}
}

func TestConfirmPaymentTwiceConflicts(t *testing.T) {
	db := newTestDB(t)
	a := seedCourse(t, db, "Course A", 1000)
	gateway := &fakeGateway{redirectURL: "https://checkout.example/init"}

	created, err := CreatePayment(db, gateway, 7, []uint{a.ID})
	require.NoError(t, err)

	_, err = ConfirmPayment(db, created.Payment.ID, "ext-1")
	require.NoError(t, err)

	_, err = ConfirmPayment(db, created.Payment.ID, "ext-2")
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)

	// The first confirmation's result stands untouched
	var pmt paymentModels.Payment
	require.NoError(t, db.First(&pmt, created.Payment.ID).Error)
	assert.Equal(t, "ext-1", pmt.ExternalChargeID)

	var count int64
	require.NoError(t, db.Model(&courseModels.Enrollment{}).
		Where("user_id = ?", 7).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestConfirmPaymentUnknownPayment(t *testing.T) {
	db := newTestDB(t)

	_, err := ConfirmPayment(db, 999, "ext-1")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestConfirmPaymentSkipsExistingEnrollments(t *testing.T) {
	db := newTestDB(t)
	a := seedCourse(t, db, "Course A", 1000)
	b := seedCourse(t, db, "Course B", 1500)
	gateway := &fakeGateway{redirectURL: "https://checkout.example/init"}

	created, err := CreatePayment(db, gateway, 7, []uint{a.ID, b.ID})
	require.NoError(t, err)

	// Enrollment for A appears between purchase and confirmation
	existing := seedEnrollment(t, db, 7, a.ID, false)

	_, err = ConfirmPayment(db, created.Payment.ID, "ext-1")
	require.NoError(t, err)

	var enrollments []courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 7, a.ID).Find(&enrollments).Error)
	require.Len(t, enrollments, 1, "duplicate-safe insert must skip the existing row")
	assert.Equal(t, existing.ID, enrollments[0].ID)

	var count int64
	require.NoError(t, db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ?", 7, b.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
