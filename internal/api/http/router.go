package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"toolshare-backend/internal/jobs"
	"toolshare-backend/internal/service"
)

// NewRouter wires every route to its handler and middleware chain.
func NewRouter(
	approval service.ApprovalService,
	deposits service.DepositService,
	jobRunner *jobs.JobRunner,
	mw *Middleware,
) *mux.Router {
	rentalHandler := NewRentalHandler(approval)
	depositHandler := NewDepositHandler(deposits)
	cronHandler := NewCronHandler(jobRunner)

	router := mux.NewRouter()
	router.Use(RequestID)

	// Ops endpoints, no auth.
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Authenticated user routes.
	user := router.NewRoute().Subrouter()
	user.Use(mw.Authenticate)
	user.HandleFunc("/borrow", rentalHandler.HandleBorrow).Methods("POST")
	user.HandleFunc("/borrow/validate", rentalHandler.HandleValidateBorrow).Methods("POST")
	user.HandleFunc("/rentals/{id:[0-9]+}/approve", rentalHandler.HandleApprove).Methods("POST")
	user.HandleFunc("/rentals/{id:[0-9]+}/return", rentalHandler.HandleConfirmReturn).Methods("POST")
	user.HandleFunc("/deposits/claim", depositHandler.HandleClaim).Methods("POST")

	// Platform operator routes.
	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(mw.Authenticate, mw.RequireAdmin)
	admin.HandleFunc("/decline", rentalHandler.HandleAdminDecline).Methods("POST")
	admin.HandleFunc("/deposits/resolve", depositHandler.HandleResolve).Methods("POST")
	admin.HandleFunc("/deposits/hold", depositHandler.HandleHold).Methods("POST")

	// External scheduler routes, shared-secret protected.
	cron := router.PathPrefix("/cron").Subrouter()
	cron.Use(mw.CronAuth)
	cron.HandleFunc("/auto-decline-rentals", cronHandler.HandleAutoDecline).Methods("GET")
	cron.HandleFunc("/auto-release-deposits", cronHandler.HandleAutoRelease).Methods("GET")

	return router
}
