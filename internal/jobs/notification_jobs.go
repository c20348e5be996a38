package jobs

import (
	"context"
	"time"

	"toolshare-backend/internal/logger"
)

// DispatchNotifications delivers pending outbox rows. Delivery is
// best-effort: a failed send marks the row FAILED and moves on, and
// rental state is never touched from here.
func (jr *JobRunner) DispatchNotifications() {
	jr.runWithRecovery("DispatchNotifications", func() {
		ctx := context.Background()

		pending, err := jr.noteRepo.ListPending(ctx, jr.config.Rental.SweepBatchSize)
		if err != nil {
			logger.Error("Failed to list pending notifications", "error", err)
			return
		}

		sent, failed := 0, 0
		for _, note := range pending {
			if err := jr.email.Send(ctx, note.RecipientEmail, note.RecipientName, note.Subject, note.Body); err != nil {
				logger.Warn("Failed to deliver notification", "notification_id", note.ID, "error", err)
				if markErr := jr.noteRepo.MarkFailed(ctx, note.ID, err.Error()); markErr != nil {
					logger.Error("Failed to mark notification failed", "notification_id", note.ID, "error", markErr)
				}
				failed++
				continue
			}
			if err := jr.noteRepo.MarkSent(ctx, note.ID, time.Now()); err != nil {
				logger.Error("Failed to mark notification sent", "notification_id", note.ID, "error", err)
			}
			sent++
		}

		if sent > 0 || failed > 0 {
			logger.Info("Dispatched notifications", "sent", sent, "failed", failed)
		}
	})
}
