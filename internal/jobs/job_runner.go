package jobs

import (
	"toolshare-backend/internal/config"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/repository"
	"toolshare-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	rentalRepo repository.RentalRepository
	noteRepo   repository.NotificationRepository
	approval   service.ApprovalService
	deposits   service.DepositService
	email      service.EmailService
	config     *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(
	rentalRepo repository.RentalRepository,
	noteRepo repository.NotificationRepository,
	approval service.ApprovalService,
	deposits service.DepositService,
	email service.EmailService,
	cfg *config.Config,
) *JobRunner {
	return &JobRunner{
		rentalRepo: rentalRepo,
		noteRepo:   noteRepo,
		approval:   approval,
		deposits:   deposits,
		email:      email,
		config:     cfg,
	}
}

// Config exposes the configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// SweepReport aggregates a sweep's per-row outcomes. Rows that fail do
// not stop the sweep; their errors are collected here instead.
type SweepReport struct {
	Processed int          `json:"processed"`
	Refunded  int          `json:"refunded"`
	Errors    []SweepError `json:"errors"`
}

// SweepError records one row the sweep could not process.
type SweepError struct {
	RentalID int64  `json:"rental_id"`
	Error    string `json:"error"`
}

// RunAllJobs runs every job once (for manual execution)
func (jr *JobRunner) RunAllJobs() {
	jr.RunAutoDeclineSweep()
	jr.RunAutoReleaseSweep()
	jr.DispatchNotifications()
}
