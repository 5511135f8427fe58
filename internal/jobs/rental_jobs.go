package jobs

import (
	"context"

	"soundgood-backend/internal/logger"
	"soundgood-backend/internal/service"
)

// SendExpiryReminders mails staff a digest of rentals ending within the
// configured reminder window so instruments can be collected or re-rented.
func (jr *JobRunner) SendExpiryReminders() {
	jr.runWithRecovery("SendExpiryReminders", func() {
		ctx := context.Background()

		query := `
			SELECT r.id, r.student_id, i.name, r.end_date
			FROM rentals r
			JOIN instruments i ON i.id = r.instrument_id
			WHERE r.end_date IS NOT NULL
			  AND r.end_date > CURRENT_DATE
			  AND r.end_date <= CURRENT_DATE + $1 * INTERVAL '1 day'
			ORDER BY r.end_date
		`

		rows, err := jr.db.QueryContext(ctx, query, jr.config.Rental.ReminderDays)
		if err != nil {
			logger.Error("Failed to query expiring rentals", "error", err)
			return
		}
		defer rows.Close()

		var expiring []service.ExpiringRental
		for rows.Next() {
			var e service.ExpiringRental
			if err := rows.Scan(&e.RentalID, &e.StudentID, &e.InstrumentName, &e.EndDate); err != nil {
				logger.Error("Failed to scan expiring rental", "error", err)
				continue
			}
			expiring = append(expiring, e)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating expiring rentals", "error", err)
			return
		}

		if len(expiring) == 0 {
			logger.Info("No rentals expiring within window", "days", jr.config.Rental.ReminderDays)
			return
		}

		recipient := jr.config.Rental.ReminderRecipient
		if recipient == "" {
			logger.Warn("No reminder recipient configured, skipping digest", "expiring", len(expiring))
			return
		}
		if err := jr.email.SendExpiryDigest(ctx, recipient, expiring); err != nil {
			logger.Error("Failed to send expiry digest", "error", err)
			return
		}
		logger.Info("Sent expiry digest", "recipient", recipient, "count", len(expiring))
	})
}

// ReportInventoryUsage logs how much of the instrument inventory is out on
// active rentals.
func (jr *JobRunner) ReportInventoryUsage() {
	jr.runWithRecovery("ReportInventoryUsage", func() {
		ctx := context.Background()

		query := `
			SELECT
				(SELECT count(*) FROM instruments),
				(SELECT count(DISTINCT instrument_id) FROM rentals
				 WHERE end_date IS NULL OR end_date > CURRENT_DATE)
		`

		var total, rented int64
		if err := jr.db.QueryRowContext(ctx, query).Scan(&total, &rented); err != nil {
			logger.Error("Failed to query inventory usage", "error", err)
			return
		}

		logger.Info("Inventory usage", "total_instruments", total, "rented", rented, "available", total-rented)
	})
}
