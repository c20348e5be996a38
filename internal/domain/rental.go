package domain

import "time"

type RentalStatus string

const (
	RentalStatusPendingApproval RentalStatus = "PENDING_APPROVAL"
	RentalStatusApproved        RentalStatus = "APPROVED"
	RentalStatusActive          RentalStatus = "ACTIVE"
	RentalStatusReturned        RentalStatus = "RETURNED"
	RentalStatusCompleted       RentalStatus = "COMPLETED"
	RentalStatusRejected        RentalStatus = "REJECTED"
	RentalStatusCancelled       RentalStatus = "CANCELLED"
)

// rentalTransitions enumerates every legal rental status transition.
// Anything not listed is rejected.
var rentalTransitions = map[RentalStatus][]RentalStatus{
	RentalStatusPendingApproval: {RentalStatusApproved, RentalStatusRejected, RentalStatusCancelled},
	RentalStatusApproved:        {RentalStatusActive, RentalStatusReturned, RentalStatusCancelled},
	RentalStatusActive:          {RentalStatusReturned},
	RentalStatusReturned:        {RentalStatusCompleted},
}

// CanTransitionTo reports whether moving from s to target is legal.
func (s RentalStatus) CanTransitionTo(target RentalStatus) bool {
	for _, t := range rentalTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Terminal reports whether no further rental status transitions are possible.
func (s RentalStatus) Terminal() bool {
	return len(rentalTransitions[s]) == 0
}

type DepositStatus string

const (
	DepositStatusHeld           DepositStatus = "HELD"
	DepositStatusPendingRelease DepositStatus = "PENDING_RELEASE"
	DepositStatusClaimed        DepositStatus = "CLAIMED"
	DepositStatusReleased       DepositStatus = "RELEASED"
	DepositStatusRefunded       DepositStatus = "REFUNDED"
	DepositStatusForfeited      DepositStatus = "FORFEITED"
)

var depositTransitions = map[DepositStatus][]DepositStatus{
	DepositStatusHeld:           {DepositStatusPendingRelease, DepositStatusClaimed, DepositStatusReleased},
	DepositStatusPendingRelease: {DepositStatusHeld, DepositStatusClaimed, DepositStatusReleased},
	DepositStatusClaimed:        {DepositStatusRefunded, DepositStatusForfeited},
}

// CanTransitionTo reports whether moving from s to target is legal.
func (s DepositStatus) CanTransitionTo(target DepositStatus) bool {
	for _, t := range depositTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Terminal reports whether s is one of the terminal deposit states.
// RELEASED, REFUNDED and FORFEITED are never exited.
func (s DepositStatus) Terminal() bool {
	return len(depositTransitions[s]) == 0
}

// Claimable reports whether an owner may still file a damage claim.
func (s DepositStatus) Claimable() bool {
	return s == DepositStatusHeld || s == DepositStatusPendingRelease
}

// Rental is one rental agreement between a renter and a tool owner.
// It carries two independent status axes: Status for the rental itself
// and DepositStatus for the attached security deposit. DepositStatus is
// nil until the rental reaches RETURNED.
type Rental struct {
	ID       int64 `json:"id"`
	ToolID   int64 `json:"tool_id"`
	RenterID int64 `json:"renter_id"`
	OwnerID  int64 `json:"owner_id"`

	// Calendar dates, yyyy-mm-dd.
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	RentalCostPence       int64   `json:"rental_cost_pence"`
	DepositPence          int64   `json:"deposit_pence"`
	StripePaymentIntentID *string `json:"stripe_payment_intent_id,omitempty"`

	Status        RentalStatus   `json:"status"`
	DepositStatus *DepositStatus `json:"deposit_status,omitempty"`

	Notes              string `json:"notes"`
	RejectionReason    string `json:"rejection_reason"`
	DepositClaimReason string `json:"deposit_claim_reason"`
	DepositAdminNotes  string `json:"deposit_admin_notes"`
	DepositRefundID    string `json:"deposit_refund_id"`

	ReturnConfirmedAt *time.Time `json:"return_confirmed_at,omitempty"`
	ClaimWindowEndsAt *time.Time `json:"claim_window_ends_at,omitempty"`
	DepositClaimedAt  *time.Time `json:"deposit_claimed_at,omitempty"`
	DepositReleasedAt *time.Time `json:"deposit_released_at,omitempty"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// DepositClaimable reports whether the deposit is currently in a state
// an owner claim may be filed from.
func (r *Rental) DepositClaimable() bool {
	return r.DepositStatus != nil && r.DepositStatus.Claimable()
}

// Paid reports whether a captured payment is attached to this rental.
func (r *Rental) Paid() bool {
	return r.StripePaymentIntentID != nil && *r.StripePaymentIntentID != ""
}
