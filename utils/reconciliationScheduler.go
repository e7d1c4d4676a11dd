package utils

import (
	"log"
	"time"

	"lms/config"
	"lms/database"
	paymentModels "lms/models/payment"

	"github.com/robfig/cron/v3"
)

// InitReconciliationScheduler sets up the orphan payment sweep
func InitReconciliationScheduler() {
	log.Println("[RECONCILER] Initializing payment reconciliation scheduler...")

	c := cron.New()

	// Hourly sweep for payments stuck in PENDING
	c.AddFunc("@hourly", func() {
		ReconcileOrphanPayments()
	})

	c.Start()
	log.Println("[RECONCILER] Payment reconciliation scheduler started - runs hourly")
}

// ReconcileOrphanPayments fails PENDING payments older than the configured
// TTL. These are purchases whose provider handshake failed after the local
// rows were written, or checkouts the buyer abandoned; no confirmation can
// arrive for them anymore once the provider preference has expired.
func ReconcileOrphanPayments() {
	db := database.Database.Db
	cutoff := time.Now().Add(-time.Duration(config.AppConfig.PendingPaymentTTL) * time.Hour)

	res := db.Model(&paymentModels.Payment{}).
		Where("status = ? AND created_at < ?", paymentModels.PaymentStatusPending, cutoff).
		Update("status", paymentModels.PaymentStatusFailed)
	if res.Error != nil {
		log.Printf("[RECONCILER] Error failing stale pending payments: %v", res.Error)
		return
	}

	if res.RowsAffected > 0 {
		log.Printf("[RECONCILER] Marked %d stale PENDING payments as FAILED", res.RowsAffected)
	}
}
