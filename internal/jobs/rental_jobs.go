package jobs

import (
	"context"
	"time"

	"toolshare-backend/internal/apperr"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/metrics"
)

// AutoDeclineStaleRentals rejects pending rentals the owner never
// answered within the approval SLA, refunding any captured payment in
// full first. Each row is processed independently; one row's failure
// never stops the sweep, and rerunning is a no-op for rows already
// rejected because the scan predicate excludes them.
func (jr *JobRunner) AutoDeclineStaleRentals(ctx context.Context) *SweepReport {
	report := &SweepReport{}

	cutoff := time.Now().Add(-jr.config.ApprovalSLA())
	stale, err := jr.rentalRepo.ListStalePending(ctx, cutoff, jr.config.Rental.SweepBatchSize)
	if err != nil {
		logger.Error("Failed to scan stale pending rentals", "error", err)
		report.Errors = append(report.Errors, SweepError{Error: err.Error()})
		return report
	}

	for _, rt := range stale {
		refunded, err := jr.approval.DeclineStale(ctx, rt.ID)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindStateConflict {
				// Another actor got to this row first; nothing to do.
				metrics.SweepRows.WithLabelValues("auto_decline", "skipped").Inc()
				continue
			}
			logger.Error("Failed to auto-decline rental", "rental_id", rt.ID, "error", err)
			metrics.SweepRows.WithLabelValues("auto_decline", "error").Inc()
			report.Errors = append(report.Errors, SweepError{RentalID: rt.ID, Error: err.Error()})
			continue
		}
		report.Processed++
		metrics.SweepRows.WithLabelValues("auto_decline", "processed").Inc()
		if refunded {
			report.Refunded++
			metrics.SweepRows.WithLabelValues("auto_decline", "refunded").Inc()
		}
		logger.Info("Auto-declined stale rental", "rental_id", rt.ID, "refunded", refunded)
	}

	logger.Info("Auto-decline sweep finished",
		"processed", report.Processed, "refunded", report.Refunded, "errors", len(report.Errors))
	return report
}

// RunAutoDeclineSweep adapts the sweep for the cron scheduler.
func (jr *JobRunner) RunAutoDeclineSweep() {
	jr.runWithRecovery("AutoDeclineStaleRentals", func() {
		jr.AutoDeclineStaleRentals(context.Background())
	})
}
