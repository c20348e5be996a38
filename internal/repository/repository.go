package repository

import (
	"context"
	"errors"
	"time"

	"toolshare-backend/internal/domain"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStateConflict is returned when a conditional transition
	// matched no row: the entity was not in the expected prior state.
	ErrStateConflict = errors.New("state conflict")
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type ToolRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Tool, error)
	CountByOwner(ctx context.Context, ownerID int64) (int, error)
	SetStatus(ctx context.Context, id int64, status domain.ToolStatus) error
}

// RentalRepository persists the rental row, the single shared mutable
// resource in the system. Every status transition is a conditional
// update keyed on the expected prior state; a transition that matches
// no row returns ErrStateConflict.
type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	CountApprovedByRenter(ctx context.Context, renterID int64) (int, error)

	// Rental status axis.
	Approve(ctx context.Context, id int64) error
	Reject(ctx context.Context, id int64, reason string) error
	ConfirmReturn(ctx context.Context, id int64, returnedAt, claimWindowEndsAt time.Time) error

	// Deposit status axis.
	ClaimDeposit(ctx context.Context, id int64, reason string, claimedAt time.Time) error
	ResolveDepositRefund(ctx context.Context, id int64, refundID, notes string, releasedAt time.Time) error
	ResolveDepositForfeit(ctx context.Context, id int64, notes string) error
	HoldDeposit(ctx context.Context, id int64, notes string) error
	ReleaseDeposit(ctx context.Context, id int64, refundID string, releasedAt time.Time) error

	// Sweep scans. Both predicates exclude rows that have already been
	// transitioned, which is what makes the sweeps rerun-safe.
	ListStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]domain.Rental, error)
	ListReleasableDeposits(ctx context.Context, now time.Time, limit int) ([]domain.Rental, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	ListPending(ctx context.Context, limit int) ([]domain.Notification, error)
	MarkSent(ctx context.Context, id int64, sentAt time.Time) error
	MarkFailed(ctx context.Context, id int64, reason string) error
}
