package http

import (
	"net/http"

	"toolshare-backend/internal/jobs"
)

// CronHandler serves the sweep endpoints for an external scheduler.
// Auth is the shared-secret check in Middleware.CronAuth.
type CronHandler struct {
	jobs *jobs.JobRunner
}

func NewCronHandler(jobRunner *jobs.JobRunner) *CronHandler {
	return &CronHandler{jobs: jobRunner}
}

// HandleAutoDecline handles GET /cron/auto-decline-rentals
func (h *CronHandler) HandleAutoDecline(w http.ResponseWriter, r *http.Request) {
	report := h.jobs.AutoDeclineStaleRentals(r.Context())
	writeJSON(w, http.StatusOK, report)
}

// HandleAutoRelease handles GET /cron/auto-release-deposits
func (h *CronHandler) HandleAutoRelease(w http.ResponseWriter, r *http.Request) {
	report := h.jobs.AutoReleaseDeposits(r.Context())
	writeJSON(w, http.StatusOK, report)
}
