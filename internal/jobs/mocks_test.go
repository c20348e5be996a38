package jobs

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/service"
)

// MockRentalRepo implements only the methods the sweeps touch; the
// rest panic so an unexpected call fails loudly.
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	panic("not used by jobs")
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	panic("not used by jobs")
}
func (m *MockRentalRepo) CountApprovedByRenter(ctx context.Context, renterID int64) (int, error) {
	panic("not used by jobs")
}
func (m *MockRentalRepo) Approve(ctx context.Context, id int64) error {
	panic("not used by jobs")
}
func (m *MockRentalRepo) Reject(ctx context.Context, id int64, reason string) error {
	panic("not used by jobs")
}
func (m *MockRentalRepo) ConfirmReturn(ctx context.Context, id int64, returnedAt, claimWindowEndsAt time.Time) error {
	panic("not used by jobs")
}
func (m *MockRentalRepo) ClaimDeposit(ctx context.Context, id int64, reason string, claimedAt time.Time) error {
	panic("not used by jobs")
}
func (m *MockRentalRepo) ResolveDepositRefund(ctx context.Context, id int64, refundID, notes string, releasedAt time.Time) error {
	panic("not used by jobs")
}
func (m *MockRentalRepo) ResolveDepositForfeit(ctx context.Context, id int64, notes string) error {
	panic("not used by jobs")
}
func (m *MockRentalRepo) HoldDeposit(ctx context.Context, id int64, notes string) error {
	panic("not used by jobs")
}
func (m *MockRentalRepo) ReleaseDeposit(ctx context.Context, id int64, refundID string, releasedAt time.Time) error {
	panic("not used by jobs")
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

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) ListPending(ctx context.Context, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}
func (m *MockNotificationRepo) MarkSent(ctx context.Context, id int64, sentAt time.Time) error {
	args := m.Called(ctx, id, sentAt)
	return args.Error(0)
}
func (m *MockNotificationRepo) MarkFailed(ctx context.Context, id int64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

// MockApprovalService
type MockApprovalService struct {
	mock.Mock
}

func (m *MockApprovalService) ValidateBorrow(ctx context.Context, renterID int64, req service.BorrowRequest) (*service.BorrowQuote, error) {
	panic("not used by jobs")
}
func (m *MockApprovalService) CreateBorrow(ctx context.Context, renterID int64, req service.BorrowRequest) (*domain.Rental, error) {
	panic("not used by jobs")
}
func (m *MockApprovalService) Approve(ctx context.Context, ownerID, rentalID int64) (*domain.Rental, error) {
	panic("not used by jobs")
}
func (m *MockApprovalService) Decline(ctx context.Context, rentalID int64, reason string) (*domain.Rental, error) {
	panic("not used by jobs")
}
func (m *MockApprovalService) ConfirmReturn(ctx context.Context, userID, rentalID int64) (*domain.Rental, error) {
	panic("not used by jobs")
}
func (m *MockApprovalService) DeclineStale(ctx context.Context, rentalID int64) (bool, error) {
	args := m.Called(ctx, rentalID)
	return args.Bool(0), args.Error(1)
}

// MockDepositService
type MockDepositService struct {
	mock.Mock
}

func (m *MockDepositService) Claim(ctx context.Context, rentalID, ownerID int64, reason string) (*domain.Rental, error) {
	panic("not used by jobs")
}
func (m *MockDepositService) Resolve(ctx context.Context, rentalID, adminID int64, action, notes string) (*domain.Rental, error) {
	panic("not used by jobs")
}
func (m *MockDepositService) Hold(ctx context.Context, rentalID, adminID int64, notes string) (*domain.Rental, error) {
	panic("not used by jobs")
}
func (m *MockDepositService) AutoRelease(ctx context.Context, rentalID int64) (*domain.Rental, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(ctx context.Context, toEmail, toName, subject, body string) error {
	args := m.Called(ctx, toEmail, toName, subject, body)
	return args.Error(0)
}
