package jobs

import (
	"context"
	"time"

	"toolshare-backend/internal/apperr"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/metrics"
)

// AutoReleaseDeposits refunds deposits whose claim window has passed
// with no claim filed. Per-row failure isolation and rerun safety work
// the same way as the auto-decline sweep: errors are aggregated, and
// rows already released or claimed fall out of the scan predicate.
func (jr *JobRunner) AutoReleaseDeposits(ctx context.Context) *SweepReport {
	report := &SweepReport{}

	releasable, err := jr.rentalRepo.ListReleasableDeposits(ctx, time.Now(), jr.config.Rental.SweepBatchSize)
	if err != nil {
		logger.Error("Failed to scan releasable deposits", "error", err)
		report.Errors = append(report.Errors, SweepError{Error: err.Error()})
		return report
	}

	for _, rt := range releasable {
		if _, err := jr.deposits.AutoRelease(ctx, rt.ID); err != nil {
			if apperr.KindOf(err) == apperr.KindStateConflict {
				// A claim or a concurrent release won the row.
				metrics.SweepRows.WithLabelValues("auto_release", "skipped").Inc()
				continue
			}
			logger.Error("Failed to auto-release deposit", "rental_id", rt.ID, "error", err)
			metrics.SweepRows.WithLabelValues("auto_release", "error").Inc()
			report.Errors = append(report.Errors, SweepError{RentalID: rt.ID, Error: err.Error()})
			continue
		}
		report.Processed++
		report.Refunded++
		metrics.SweepRows.WithLabelValues("auto_release", "processed").Inc()
		logger.Info("Auto-released deposit", "rental_id", rt.ID, "deposit_pence", rt.DepositPence)
	}

	logger.Info("Auto-release sweep finished",
		"processed", report.Processed, "refunded", report.Refunded, "errors", len(report.Errors))
	return report
}

// RunAutoReleaseSweep adapts the sweep for the cron scheduler.
func (jr *JobRunner) RunAutoReleaseSweep() {
	jr.runWithRecovery("AutoReleaseDeposits", func() {
		jr.AutoReleaseDeposits(context.Background())
	})
}
