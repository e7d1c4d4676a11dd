package payment

import (
	"gorm.io/gorm"
)

// PaymentStatus defines the lifecycle state of a payment
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// CurrencyPEN is the only currency the platform charges in
const CurrencyPEN = "PEN"

// Payment is a purchase covering one or more courses. Created PENDING and
// moved to PAID exactly once; after leaving PENDING only ExternalChargeID
// written at confirmation time may differ from the created row.
type Payment struct {
	gorm.Model
	UserID           uint          `json:"user_id" gorm:"index;not null"`
	AmountCents      int64         `json:"amount_cents" gorm:"not null"` // sum of item amounts, minor units
	Currency         string        `json:"currency" gorm:"type:varchar(3);default:'PEN'"`
	Status           PaymentStatus `json:"status" gorm:"type:varchar(20);default:'PENDING';index"`
	Reference        string        `json:"reference" gorm:"type:varchar(64);uniqueIndex"` // provider-visible external reference
	ExternalChargeID string        `json:"external_charge_id" gorm:"type:varchar(100)"`

	Items []PaymentItem `json:"items,omitempty" gorm:"foreignKey:PaymentID"`
}

func (Payment) TableName() string {
	return "payments"
}

// PaymentItem snapshots one course's price at purchase time so later price
// changes never rewrite payment history. Never mutated after creation.
type PaymentItem struct {
	gorm.Model
	PaymentID   uint  `json:"payment_id" gorm:"index;not null"`
	CourseID    uint  `json:"course_id" gorm:"index;not null"`
	AmountCents int64 `json:"amount_cents" gorm:"not null"`
}

func (PaymentItem) TableName() string {
	return "payment_items"
}
