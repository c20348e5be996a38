package service

import (
	"context"

	"toolshare-backend/internal/domain"
)

// BorrowRequest is a renter's request to open a rental against a tool.
type BorrowRequest struct {
	ToolID    int64
	StartDate string
	EndDate   string
	Notes     string
}

// BorrowQuote is the outcome of a successful dry-run validation.
type BorrowQuote struct {
	Tier            domain.SubscriptionTier `json:"tier"`
	DurationDays    int                     `json:"duration_days"`
	RentalCostPence int64                   `json:"rental_cost_pence"`
	DepositPence    int64                   `json:"deposit_pence"`
}

// ApprovalService decides whether a renter may open a rental and owns
// the rental-status axis up to the confirmed return.
type ApprovalService interface {
	ValidateBorrow(ctx context.Context, renterID int64, req BorrowRequest) (*BorrowQuote, error)
	CreateBorrow(ctx context.Context, renterID int64, req BorrowRequest) (*domain.Rental, error)
	Approve(ctx context.Context, ownerID, rentalID int64) (*domain.Rental, error)
	Decline(ctx context.Context, rentalID int64, reason string) (*domain.Rental, error)
	ConfirmReturn(ctx context.Context, userID, rentalID int64) (*domain.Rental, error)

	// DeclineStale rejects one stale pending rental on behalf of the
	// auto-decline sweep, refunding first when the rental was paid.
	DeclineStale(ctx context.Context, rentalID int64) (refunded bool, err error)
}

// DepositService owns every transition of the deposit-status axis and
// the money movement bound to it.
type DepositService interface {
	Claim(ctx context.Context, rentalID, ownerID int64, reason string) (*domain.Rental, error)
	Resolve(ctx context.Context, rentalID, adminID int64, action, notes string) (*domain.Rental, error)
	Hold(ctx context.Context, rentalID, adminID int64, notes string) (*domain.Rental, error)
	AutoRelease(ctx context.Context, rentalID int64) (*domain.Rental, error)
}

// EmailService delivers one email. Used only by the outbox dispatcher.
type EmailService interface {
	Send(ctx context.Context, toEmail, toName, subject, body string) error
}

// Notifier appends best-effort notifications to the outbox. Append
// failures are logged and swallowed; they never block a transition.
type Notifier interface {
	BorrowRequested(ctx context.Context, rental *domain.Rental)
	RentalApproved(ctx context.Context, rental *domain.Rental)
	RentalDeclined(ctx context.Context, rental *domain.Rental, reason string)
	ReturnConfirmed(ctx context.Context, rental *domain.Rental)
	DepositClaimed(ctx context.Context, rental *domain.Rental)
	DepositRefunded(ctx context.Context, rental *domain.Rental)
	DepositForfeited(ctx context.Context, rental *domain.Rental)
	DepositReleased(ctx context.Context, rental *domain.Rental)
}

// Deposit resolution actions accepted by DepositService.Resolve.
const (
	ResolveActionRefund  = "refund"
	ResolveActionForfeit = "forfeit"
)
