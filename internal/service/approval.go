package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"toolshare-backend/internal/apperr"
	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/metrics"
	"toolshare-backend/internal/payment"
	"toolshare-backend/internal/repository"
	"toolshare-backend/internal/utils"
)

// StaleDeclineReason is the canned rejection recorded by the
// auto-decline sweep.
const StaleDeclineReason = "Automatically declined: the owner did not respond within the approval window."

type approvalService struct {
	rentalRepo  repository.RentalRepository
	toolRepo    repository.ToolRepository
	userRepo    repository.UserRepository
	gateway     payment.Gateway
	notifier    Notifier
	claimWindow time.Duration
}

func NewApprovalService(
	rentalRepo repository.RentalRepository,
	toolRepo repository.ToolRepository,
	userRepo repository.UserRepository,
	gateway payment.Gateway,
	notifier Notifier,
	claimWindow time.Duration,
) ApprovalService {
	return &approvalService{
		rentalRepo:  rentalRepo,
		toolRepo:    toolRepo,
		userRepo:    userRepo,
		gateway:     gateway,
		notifier:    notifier,
		claimWindow: claimWindow,
	}
}

// validate runs the borrow preconditions in order. First failure wins;
// no side effects occur here.
func (s *approvalService) validate(ctx context.Context, renterID int64, req BorrowRequest) (*domain.Tool, *BorrowQuote, error) {
	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, nil, apperr.Validation("invalid_dates", err.Error())
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return nil, nil, apperr.Validation("invalid_dates", err.Error())
	}
	days, err := utils.DurationDays(start, end)
	if err != nil {
		return nil, nil, apperr.Validation("invalid_dates", err.Error()).
			WithRemedy("Pick an end date after the start date.")
	}

	renter, err := s.userRepo.GetByID(ctx, renterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, apperr.Authorization("unknown_renter", "renter account not found")
		}
		return nil, nil, err
	}
	if !renter.EmailVerified {
		return nil, nil, apperr.Authorization("email_not_verified", "verify your email address before borrowing").
			WithRemedy("Confirm the verification email we sent you, then try again.")
	}

	toolsListed, err := s.toolRepo.CountByOwner(ctx, renterID)
	if err != nil {
		return nil, nil, err
	}
	tier, hasMembership := domain.EffectiveTier(renter.SubscriptionTier, toolsListed)
	if !hasMembership {
		return nil, nil, apperr.Authorization("no_membership", "borrowing requires a paid plan or at least one listed tool").
			WithRemedy("Subscribe to a plan, or list a tool of your own to unlock borrowing.")
	}

	tool, err := s.toolRepo.GetByID(ctx, req.ToolID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, apperr.NotFound("tool_not_found", "tool not found")
		}
		return nil, nil, err
	}
	if tool.OwnerID == renterID {
		return nil, nil, apperr.Validation("own_tool", "you cannot borrow your own tool")
	}
	if tool.Status != domain.ToolStatusAvailable {
		return nil, nil, apperr.StateConflict("tool_unavailable", "tool is not available for rental")
	}

	limits, ok := domain.LimitsFor(tier)
	if !ok {
		return nil, nil, apperr.Authorization("no_membership", "borrowing requires a paid plan or at least one listed tool")
	}

	activeBorrows, err := s.rentalRepo.CountApprovedByRenter(ctx, renterID)
	if err != nil {
		return nil, nil, err
	}
	if activeBorrows >= limits.MaxActiveBorrows {
		return nil, nil, apperr.Validation("borrow_limit_reached",
			fmt.Sprintf("your %s plan allows %d concurrent borrow(s)", tier, limits.MaxActiveBorrows)).
			WithRemedy("Return an active rental or upgrade your plan.")
	}
	if tool.ReplacementValuePence > limits.MaxToolValuePence {
		return nil, nil, apperr.Validation("tool_value_exceeds_tier",
			fmt.Sprintf("your %s plan covers tools up to £%d", tier, limits.MaxToolValuePence/100)).
			WithRemedy("Upgrade your plan to borrow higher-value tools.")
	}
	if days > limits.MaxDurationDays {
		return nil, nil, apperr.Validation("duration_exceeds_tier",
			fmt.Sprintf("your %s plan allows rentals up to %d day(s)", tier, limits.MaxDurationDays)).
			WithRemedy("Shorten the rental or upgrade your plan.")
	}

	quote := &BorrowQuote{
		Tier:            tier,
		DurationDays:    days,
		RentalCostPence: utils.RentalCostPence(days, tool.DailyRatePence),
		DepositPence:    utils.DepositPence(tool.ReplacementValuePence),
	}
	return tool, quote, nil
}

func (s *approvalService) ValidateBorrow(ctx context.Context, renterID int64, req BorrowRequest) (*BorrowQuote, error) {
	_, quote, err := s.validate(ctx, renterID, req)
	return quote, err
}

func (s *approvalService) CreateBorrow(ctx context.Context, renterID int64, req BorrowRequest) (*domain.Rental, error) {
	tool, quote, err := s.validate(ctx, renterID, req)
	if err != nil {
		return nil, err
	}

	rental := &domain.Rental{
		ToolID:          tool.ID,
		RenterID:        renterID,
		OwnerID:         tool.OwnerID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		RentalCostPence: quote.RentalCostPence,
		DepositPence:    quote.DepositPence,
		Status:          domain.RentalStatusPendingApproval,
		Notes:           req.Notes,
	}
	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		return nil, err
	}

	metrics.RentalTransitions.WithLabelValues(string(domain.RentalStatusPendingApproval)).Inc()
	s.notifier.BorrowRequested(ctx, rental)

	return rental, nil
}

func (s *approvalService) Approve(ctx context.Context, ownerID, rentalID int64) (*domain.Rental, error) {
	rt, err := s.getRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.OwnerID != ownerID {
		return nil, apperr.Authorization("not_owner", "only the tool owner can approve this rental")
	}
	if rt.Status != domain.RentalStatusPendingApproval {
		return nil, apperr.StateConflict("not_pending", "rental is not pending approval")
	}

	if err := s.rentalRepo.Approve(ctx, rentalID); err != nil {
		return nil, mapTransitionErr(err, "not_pending", "rental is not pending approval")
	}
	rt.Status = domain.RentalStatusApproved

	metrics.RentalTransitions.WithLabelValues(string(domain.RentalStatusApproved)).Inc()
	s.notifier.RentalApproved(ctx, rt)

	return rt, nil
}

func (s *approvalService) Decline(ctx context.Context, rentalID int64, reason string) (*domain.Rental, error) {
	rt, err := s.getRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.Status != domain.RentalStatusPendingApproval {
		return nil, apperr.StateConflict("not_pending", "rental is not pending approval")
	}
	if reason == "" {
		reason = "Declined by the owner."
	}

	if _, err := s.decline(ctx, rt, reason); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *approvalService) DeclineStale(ctx context.Context, rentalID int64) (bool, error) {
	rt, err := s.getRental(ctx, rentalID)
	if err != nil {
		return false, err
	}
	if rt.Status != domain.RentalStatusPendingApproval {
		return false, apperr.StateConflict("not_pending", "rental is not pending approval")
	}
	return s.decline(ctx, rt, StaleDeclineReason)
}

// decline refunds first (when paid), then commits REJECTED with a
// conditional update. A gateway failure aborts with no state change.
func (s *approvalService) decline(ctx context.Context, rt *domain.Rental, reason string) (bool, error) {
	refunded := false
	if rt.Paid() {
		// Full refund of everything captured for this rental.
		_, err := s.gateway.Refund(ctx, *rt.StripePaymentIntentID, 0, payment.DeclineRefundKey(rt.ID))
		if err != nil {
			return false, apperr.Upstream("refund_failed", "payment gateway refund failed", err)
		}
		refunded = true
		metrics.RefundsIssued.WithLabelValues("full").Inc()
	}

	if err := s.rentalRepo.Reject(ctx, rt.ID, reason); err != nil {
		return refunded, mapTransitionErr(err, "not_pending", "rental is not pending approval")
	}
	rt.Status = domain.RentalStatusRejected
	rt.RejectionReason = reason

	metrics.RentalTransitions.WithLabelValues(string(domain.RentalStatusRejected)).Inc()
	s.notifier.RentalDeclined(ctx, rt, reason)

	return refunded, nil
}

func (s *approvalService) ConfirmReturn(ctx context.Context, userID, rentalID int64) (*domain.Rental, error) {
	rt, err := s.getRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.OwnerID != userID && rt.RenterID != userID {
		return nil, apperr.Authorization("not_party", "only the renter or the owner can confirm a return")
	}
	if rt.Status != domain.RentalStatusApproved && rt.Status != domain.RentalStatusActive {
		return nil, apperr.StateConflict("not_out", "rental is not currently out with the renter")
	}

	now := time.Now()
	windowEnds := now.Add(s.claimWindow)
	if err := s.rentalRepo.ConfirmReturn(ctx, rentalID, now, windowEnds); err != nil {
		return nil, mapTransitionErr(err, "not_out", "rental is not currently out with the renter")
	}
	rt.Status = domain.RentalStatusReturned
	held := domain.DepositStatusHeld
	rt.DepositStatus = &held
	rt.ReturnConfirmedAt = &now
	rt.ClaimWindowEndsAt = &windowEnds

	if err := s.toolRepo.SetStatus(ctx, rt.ToolID, domain.ToolStatusAvailable); err != nil {
		logger.Warn("Failed to free tool after return", "tool_id", rt.ToolID, "error", err)
	}

	metrics.RentalTransitions.WithLabelValues(string(domain.RentalStatusReturned)).Inc()
	metrics.DepositTransitions.WithLabelValues(string(domain.DepositStatusHeld)).Inc()
	s.notifier.ReturnConfirmed(ctx, rt)

	return rt, nil
}

func (s *approvalService) getRental(ctx context.Context, rentalID int64) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("rental_not_found", "rental not found")
		}
		return nil, err
	}
	return rt, nil
}

// mapTransitionErr converts the repository's lost-CAS signal into a
// state-conflict refusal; anything else passes through unchanged.
func mapTransitionErr(err error, code, message string) error {
	if errors.Is(err, repository.ErrStateConflict) {
		return apperr.StateConflict(code, message)
	}
	return err
}
