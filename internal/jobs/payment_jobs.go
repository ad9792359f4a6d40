package jobs

import (
	"context"
	"time"

	"boardinghouse-backend/internal/logger"
)

// MarkOverduePayments flips PENDING payments whose due date has passed to
// OVERDUE. The persisted status is a cache; reads compute overdue on the
// fly, so a missed run never hides an overdue payment.
func (jr *JobRunner) MarkOverduePayments() {
	jr.runWithRecovery("MarkOverduePayments", func() {
		ctx := context.Background()

		marked, err := jr.services.Payment.MarkOverduePayments(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to mark overdue payments", "error", err)
			return
		}

		logger.Info("Marked overdue payments", "count", len(marked))
	})
}

// SendOverdueReminders emails every boarder with an overdue payment.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		overdue, err := jr.services.Payment.ListOverduePayments(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to list overdue payments", "error", err)
			return
		}

		sent := 0
		for _, payment := range overdue {
			boarder, err := jr.services.Boarder.GetBoarder(ctx, payment.BoarderID)
			if err != nil {
				logger.Error("Failed to load boarder for reminder",
					"payment_id", payment.ID,
					"boarder_id", payment.BoarderID,
					"error", err)
				continue
			}
			if !boarder.IsActive {
				continue
			}

			if err := jr.services.Email.SendOverdueReminder(ctx, boarder.Email, boarder.FullName(), payment.AmountCents, payment.DueDate); err != nil {
				logger.Error("Failed to send overdue reminder",
					"payment_id", payment.ID,
					"boarder_id", boarder.ID,
					"error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent overdue reminders", "overdue_payments", len(overdue), "reminders_sent", sent)
	})
}
