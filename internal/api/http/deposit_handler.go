package http

import (
	"net/http"

	"toolshare-backend/internal/apperr"
	"toolshare-backend/internal/service"
)

// DepositHandler serves the deposit lifecycle endpoints.
type DepositHandler struct {
	deposits service.DepositService
}

func NewDepositHandler(deposits service.DepositService) *DepositHandler {
	return &DepositHandler{deposits: deposits}
}

type claimBody struct {
	RentalID int64  `json:"rental_id"`
	Reason   string `json:"reason"`
}

// HandleClaim handles POST /deposits/claim
func (h *DepositHandler) HandleClaim(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeError(w, apperr.Authorization("unauthenticated", "session required"))
		return
	}
	var body claimBody
	if !decodeBody(w, r, &body) {
		return
	}
	if body.RentalID == 0 {
		writeError(w, apperr.Validation("missing_rental_id", "rental_id is required"))
		return
	}

	rental, err := h.deposits.Claim(r.Context(), body.RentalID, claims.UserID, body.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

type resolveBody struct {
	RentalID   int64  `json:"rental_id"`
	Action     string `json:"action"`
	AdminNotes string `json:"admin_notes,omitempty"`
}

// HandleResolve handles POST /admin/deposits/resolve
func (h *DepositHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeError(w, apperr.Authorization("unauthenticated", "session required"))
		return
	}
	var body resolveBody
	if !decodeBody(w, r, &body) {
		return
	}
	if body.RentalID == 0 {
		writeError(w, apperr.Validation("missing_rental_id", "rental_id is required"))
		return
	}

	rental, err := h.deposits.Resolve(r.Context(), body.RentalID, claims.UserID, body.Action, body.AdminNotes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

type holdBody struct {
	RentalID   int64  `json:"rentalId"`
	AdminNotes string `json:"adminNotes,omitempty"`
}

// HandleHold handles POST /admin/deposits/hold
func (h *DepositHandler) HandleHold(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeError(w, apperr.Authorization("unauthenticated", "session required"))
		return
	}
	var body holdBody
	if !decodeBody(w, r, &body) {
		return
	}
	if body.RentalID == 0 {
		writeError(w, apperr.Validation("missing_rental_id", "rentalId is required"))
		return
	}

	rental, err := h.deposits.Hold(r.Context(), body.RentalID, claims.UserID, body.AdminNotes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}
