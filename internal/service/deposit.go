package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"toolshare-backend/internal/apperr"
	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/metrics"
	"toolshare-backend/internal/payment"
	"toolshare-backend/internal/repository"
)

const minClaimReasonLen = 10

type depositService struct {
	rentalRepo repository.RentalRepository
	gateway    payment.Gateway
	notifier   Notifier
}

func NewDepositService(
	rentalRepo repository.RentalRepository,
	gateway payment.Gateway,
	notifier Notifier,
) DepositService {
	return &depositService{
		rentalRepo: rentalRepo,
		gateway:    gateway,
		notifier:   notifier,
	}
}

func (s *depositService) Claim(ctx context.Context, rentalID, ownerID int64, reason string) (*domain.Rental, error) {
	rt, err := s.getRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.OwnerID != ownerID {
		return nil, apperr.Authorization("not_owner", "only the tool owner can claim the deposit")
	}
	if len(strings.TrimSpace(reason)) < minClaimReasonLen {
		return nil, apperr.Validation("claim_reason_too_short", "claim reason must be at least 10 characters").
			WithRemedy("Describe the damage or loss in more detail.")
	}
	if !rt.DepositClaimable() {
		return nil, apperr.StateConflict("deposit_not_claimable", "deposit is not in a claimable state")
	}

	now := time.Now()
	if err := s.rentalRepo.ClaimDeposit(ctx, rentalID, reason, now); err != nil {
		return nil, mapTransitionErr(err, "deposit_not_claimable", "deposit is not in a claimable state")
	}
	claimed := domain.DepositStatusClaimed
	rt.DepositStatus = &claimed
	rt.DepositClaimReason = reason
	rt.DepositClaimedAt = &now

	metrics.DepositTransitions.WithLabelValues(string(domain.DepositStatusClaimed)).Inc()
	s.notifier.DepositClaimed(ctx, rt)

	return rt, nil
}

func (s *depositService) Resolve(ctx context.Context, rentalID, adminID int64, action, notes string) (*domain.Rental, error) {
	switch action {
	case ResolveActionRefund, ResolveActionForfeit:
	default:
		return nil, apperr.Validation("invalid_action", "action must be 'refund' or 'forfeit'")
	}

	rt, err := s.getRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.DepositStatus == nil || *rt.DepositStatus != domain.DepositStatusClaimed {
		return nil, apperr.StateConflict("deposit_not_claimed", "deposit has no open claim to resolve")
	}

	if action == ResolveActionForfeit {
		if err := s.rentalRepo.ResolveDepositForfeit(ctx, rentalID, notes); err != nil {
			return nil, mapTransitionErr(err, "deposit_not_claimed", "deposit has no open claim to resolve")
		}
		forfeited := domain.DepositStatusForfeited
		rt.DepositStatus = &forfeited
		rt.DepositAdminNotes = notes

		metrics.DepositTransitions.WithLabelValues(string(domain.DepositStatusForfeited)).Inc()
		s.notifier.DepositForfeited(ctx, rt)
		return rt, nil
	}

	refund, err := s.refundDeposit(ctx, rt)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.rentalRepo.ResolveDepositRefund(ctx, rentalID, refund.ID, notes, now); err != nil {
		// Lost the commit race. The deterministic idempotency key means
		// the gateway deduplicated against whoever won.
		return nil, mapTransitionErr(err, "deposit_not_claimed", "deposit has no open claim to resolve")
	}
	refunded := domain.DepositStatusRefunded
	rt.DepositStatus = &refunded
	rt.DepositAdminNotes = notes
	rt.DepositRefundID = refund.ID
	rt.DepositReleasedAt = &now

	metrics.DepositTransitions.WithLabelValues(string(domain.DepositStatusRefunded)).Inc()
	s.notifier.DepositRefunded(ctx, rt)

	return rt, nil
}

func (s *depositService) Hold(ctx context.Context, rentalID, adminID int64, notes string) (*domain.Rental, error) {
	rt, err := s.getRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.DepositStatus == nil || *rt.DepositStatus != domain.DepositStatusPendingRelease {
		return nil, apperr.StateConflict("deposit_not_pending_release", "deposit is not pending release")
	}

	if err := s.rentalRepo.HoldDeposit(ctx, rentalID, notes); err != nil {
		return nil, mapTransitionErr(err, "deposit_not_pending_release", "deposit is not pending release")
	}
	held := domain.DepositStatusHeld
	rt.DepositStatus = &held
	rt.DepositAdminNotes = notes

	metrics.DepositTransitions.WithLabelValues(string(domain.DepositStatusHeld)).Inc()
	return rt, nil
}

func (s *depositService) AutoRelease(ctx context.Context, rentalID int64) (*domain.Rental, error) {
	rt, err := s.getRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !rt.DepositClaimable() {
		return nil, apperr.StateConflict("deposit_not_releasable", "deposit is not awaiting release")
	}
	if rt.ClaimWindowEndsAt == nil || rt.ClaimWindowEndsAt.After(time.Now()) {
		return nil, apperr.StateConflict("claim_window_open", "the owner's claim window has not ended")
	}

	refund, err := s.refundDeposit(ctx, rt)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.rentalRepo.ReleaseDeposit(ctx, rentalID, refund.ID, now); err != nil {
		return nil, mapTransitionErr(err, "deposit_not_releasable", "deposit is not awaiting release")
	}
	released := domain.DepositStatusReleased
	rt.DepositStatus = &released
	rt.DepositRefundID = refund.ID
	rt.DepositReleasedAt = &now

	metrics.DepositTransitions.WithLabelValues(string(domain.DepositStatusReleased)).Inc()
	s.notifier.DepositReleased(ctx, rt)

	return rt, nil
}

// refundDeposit issues the single partial refund a deposit may ever
// receive. Both refund-issuing paths share the same idempotency key,
// so the gateway collapses them to one money movement.
func (s *depositService) refundDeposit(ctx context.Context, rt *domain.Rental) (*payment.Refund, error) {
	if !rt.Paid() {
		return nil, apperr.StateConflict("missing_payment_intent", "rental has no captured payment to refund against")
	}
	refund, err := s.gateway.Refund(ctx, *rt.StripePaymentIntentID, rt.DepositPence, payment.DepositRefundKey(rt.ID))
	if err != nil {
		return nil, apperr.Upstream("refund_failed", "payment gateway refund failed", err)
	}
	metrics.RefundsIssued.WithLabelValues("deposit").Inc()
	return refund, nil
}

func (s *depositService) getRental(ctx context.Context, rentalID int64) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("rental_not_found", "rental not found")
		}
		return nil, err
	}
	return rt, nil
}
