package services

import (
	"testing"

	courseModels "lms/models/course"
	paymentModels "lms/models/payment"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&courseModels.Course{},
		&courseModels.Module{},
		&courseModels.Lesson{},
		&courseModels.Enrollment{},
		&courseModels.Progress{},
		&paymentModels.Payment{},
		&paymentModels.PaymentItem{},
	)
	require.NoError(t, err)

	return db
}

func seedCourse(t *testing.T, db *gorm.DB, title string, priceCents int64) courseModels.Course {
	t.Helper()

	course := courseModels.Course{
		Title:      title,
		AuthorName: "Test Author",
		PriceCents: priceCents,
		Published:  true,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func seedEnrollment(t *testing.T, db *gorm.DB, userID, courseID uint, canceled bool) courseModels.Enrollment {
	t.Helper()

	enrollment := courseModels.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Canceled: canceled,
	}
	require.NoError(t, db.Create(&enrollment).Error)
	return enrollment
}

// fakeGateway stands in for the Mercado Pago client in workflow tests.
type fakeGateway struct {
	redirectURL string
	err         error
	requests    []CheckoutRequest
}

func (g *fakeGateway) CreateCheckout(req CheckoutRequest) (string, error) {
	g.requests = append(g.requests, req)
	if g.err != nil {
		return "", g.err
	}
	return g.redirectURL, nil
}
