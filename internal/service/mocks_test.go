package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/payment"
)

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) CountApprovedByRenter(ctx context.Context, renterID int64) (int, error) {
	args := m.Called(ctx, renterID)
	return args.Int(0), args.Error(1)
}
func (m *MockRentalRepo) Approve(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRentalRepo) Reject(ctx context.Context, id int64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}
func (m *MockRentalRepo) ConfirmReturn(ctx context.Context, id int64, returnedAt, claimWindowEndsAt time.Time) error {
	args := m.Called(ctx, id, returnedAt, claimWindowEndsAt)
	return args.Error(0)
}
func (m *MockRentalRepo) ClaimDeposit(ctx context.Context, id int64, reason string, claimedAt time.Time) error {
	args := m.Called(ctx, id, reason, claimedAt)
	return args.Error(0)
}
func (m *MockRentalRepo) ResolveDepositRefund(ctx context.Context, id int64, refundID, notes string, releasedAt time.Time) error {
	args := m.Called(ctx, id, refundID, notes, releasedAt)
	return args.Error(0)
}
func (m *MockRentalRepo) ResolveDepositForfeit(ctx context.Context, id int64, notes string) error {
	args := m.Called(ctx, id, notes)
	return args.Error(0)
}
func (m *MockRentalRepo) HoldDeposit(ctx context.Context, id int64, notes string) error {
	args := m.Called(ctx, id, notes)
	return args.Error(0)
}
func (m *MockRentalRepo) ReleaseDeposit(ctx context.Context, id int64, refundID string, releasedAt time.Time) error {
	args := m.Called(ctx, id, refundID, releasedAt)
	return args.Error(0)
}
func (m *MockRentalRepo) ListStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]domain.Rental, error) {
	args := m.Called(ctx, createdBefore, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListReleasableDeposits(ctx context.Context, now time.Time, limit int) ([]domain.Rental, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

// MockToolRepo
type MockToolRepo struct {
	mock.Mock
}

func (m *MockToolRepo) GetByID(ctx context.Context, id int64) (*domain.Tool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tool), args.Error(1)
}
func (m *MockToolRepo) CountByOwner(ctx context.Context, ownerID int64) (int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Error(1)
}
func (m *MockToolRepo) SetStatus(ctx context.Context, id int64, status domain.ToolStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Refund(ctx context.Context, paymentIntentID string, amountPence int64, idempotencyKey string) (*payment.Refund, error) {
	args := m.Called(ctx, paymentIntentID, amountPence, idempotencyKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Refund), args.Error(1)
}

// noopNotifier satisfies Notifier for tests that do not assert on
// notification content. The outbox itself is exercised elsewhere.
type noopNotifier struct{}

func (noopNotifier) BorrowRequested(context.Context, *domain.Rental)        {}
func (noopNotifier) RentalApproved(context.Context, *domain.Rental)         {}
func (noopNotifier) RentalDeclined(context.Context, *domain.Rental, string) {}
func (noopNotifier) ReturnConfirmed(context.Context, *domain.Rental)        {}
func (noopNotifier) DepositClaimed(context.Context, *domain.Rental)         {}
func (noopNotifier) DepositRefunded(context.Context, *domain.Rental)        {}
func (noopNotifier) DepositForfeited(context.Context, *domain.Rental)       {}
func (noopNotifier) DepositReleased(context.Context, *domain.Rental)        {}
