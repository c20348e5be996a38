package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"toolshare-backend/internal/apperr"
	"toolshare-backend/internal/service"
)

// RentalHandler serves the borrow and rental-status endpoints.
type RentalHandler struct {
	approval service.ApprovalService
}

func NewRentalHandler(approval service.ApprovalService) *RentalHandler {
	return &RentalHandler{approval: approval}
}

type borrowBody struct {
	ToolID    int64  `json:"toolId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Notes     string `json:"notes,omitempty"`
}

func (b borrowBody) toRequest() service.BorrowRequest {
	return service.BorrowRequest{
		ToolID:    b.ToolID,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		Notes:     b.Notes,
	}
}

// HandleBorrow handles POST /borrow
func (h *RentalHandler) HandleBorrow(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeError(w, apperr.Authorization("unauthenticated", "session required"))
		return
	}
	var body borrowBody
	if !decodeBody(w, r, &body) {
		return
	}

	rental, err := h.approval.CreateBorrow(r.Context(), claims.UserID, body.toRequest())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

// HandleValidateBorrow handles POST /borrow/validate (dry run, no side effects)
func (h *RentalHandler) HandleValidateBorrow(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeError(w, apperr.Authorization("unauthenticated", "session required"))
		return
	}
	var body borrowBody
	if !decodeBody(w, r, &body) {
		return
	}

	quote, err := h.approval.ValidateBorrow(r.Context(), claims.UserID, body.toRequest())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "quote": quote})
}

// HandleApprove handles POST /rentals/{id}/approve
func (h *RentalHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeError(w, apperr.Authorization("unauthenticated", "session required"))
		return
	}
	rentalID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	rental, err := h.approval.Approve(r.Context(), claims.UserID, rentalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

// HandleConfirmReturn handles POST /rentals/{id}/return
func (h *RentalHandler) HandleConfirmReturn(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeError(w, apperr.Authorization("unauthenticated", "session required"))
		return
	}
	rentalID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	rental, err := h.approval.ConfirmReturn(r.Context(), claims.UserID, rentalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

type declineBody struct {
	RentalID int64  `json:"rentalId"`
	Reason   string `json:"reason,omitempty"`
}

// HandleAdminDecline handles POST /admin/decline
func (h *RentalHandler) HandleAdminDecline(w http.ResponseWriter, r *http.Request) {
	var body declineBody
	if !decodeBody(w, r, &body) {
		return
	}
	if body.RentalID == 0 {
		writeError(w, apperr.Validation("missing_rental_id", "rentalId is required"))
		return
	}

	rental, err := h.approval.Decline(r.Context(), body.RentalID, body.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid_rental_id", "rental id must be a positive integer")
	}
	return id, nil
}
