package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRentalStatusTransitions(t *testing.T) {
	t.Run("PendingApproval", func(t *testing.T) {
		assert.True(t, RentalStatusPendingApproval.CanTransitionTo(RentalStatusApproved))
		assert.True(t, RentalStatusPendingApproval.CanTransitionTo(RentalStatusRejected))
		assert.True(t, RentalStatusPendingApproval.CanTransitionTo(RentalStatusCancelled))
		assert.False(t, RentalStatusPendingApproval.CanTransitionTo(RentalStatusActive))
		assert.False(t, RentalStatusPendingApproval.CanTransitionTo(RentalStatusReturned))
		assert.False(t, RentalStatusPendingApproval.CanTransitionTo(RentalStatusCompleted))
	})

	t.Run("Approved", func(t *testing.T) {
		assert.True(t, RentalStatusApproved.CanTransitionTo(RentalStatusActive))
		assert.True(t, RentalStatusApproved.CanTransitionTo(RentalStatusReturned))
		assert.True(t, RentalStatusApproved.CanTransitionTo(RentalStatusCancelled))
		assert.False(t, RentalStatusApproved.CanTransitionTo(RentalStatusRejected))
	})

	t.Run("Active", func(t *testing.T) {
		assert.True(t, RentalStatusActive.CanTransitionTo(RentalStatusReturned))
		assert.False(t, RentalStatusActive.CanTransitionTo(RentalStatusCancelled))
		assert.False(t, RentalStatusActive.CanTransitionTo(RentalStatusApproved))
	})

	t.Run("Returned", func(t *testing.T) {
		assert.True(t, RentalStatusReturned.CanTransitionTo(RentalStatusCompleted))
		assert.False(t, RentalStatusReturned.CanTransitionTo(RentalStatusActive))
	})

	t.Run("TerminalStates", func(t *testing.T) {
		assert.True(t, RentalStatusCompleted.Terminal())
		assert.True(t, RentalStatusRejected.Terminal())
		assert.True(t, RentalStatusCancelled.Terminal())
		assert.False(t, RentalStatusPendingApproval.Terminal())
		assert.False(t, RentalStatusReturned.Terminal())
	})

	t.Run("NoSelfTransitions", func(t *testing.T) {
		all := []RentalStatus{
			RentalStatusPendingApproval, RentalStatusApproved, RentalStatusActive,
			RentalStatusReturned, RentalStatusCompleted, RentalStatusRejected, RentalStatusCancelled,
		}
		for _, s := range all {
			assert.False(t, s.CanTransitionTo(s), "status %s should not transition to itself", s)
		}
	})
}

func TestDepositStatusTransitions(t *testing.T) {
	t.Run("Held", func(t *testing.T) {
		assert.True(t, DepositStatusHeld.CanTransitionTo(DepositStatusPendingRelease))
		assert.True(t, DepositStatusHeld.CanTransitionTo(DepositStatusClaimed))
		assert.True(t, DepositStatusHeld.CanTransitionTo(DepositStatusReleased))
		assert.False(t, DepositStatusHeld.CanTransitionTo(DepositStatusRefunded))
		assert.False(t, DepositStatusHeld.CanTransitionTo(DepositStatusForfeited))
	})

	t.Run("PendingRelease", func(t *testing.T) {
		assert.True(t, DepositStatusPendingRelease.CanTransitionTo(DepositStatusHeld))
		assert.True(t, DepositStatusPendingRelease.CanTransitionTo(DepositStatusClaimed))
		assert.True(t, DepositStatusPendingRelease.CanTransitionTo(DepositStatusReleased))
	})

	t.Run("ClaimedResolvesOnly", func(t *testing.T) {
		assert.True(t, DepositStatusClaimed.CanTransitionTo(DepositStatusRefunded))
		assert.True(t, DepositStatusClaimed.CanTransitionTo(DepositStatusForfeited))
		assert.False(t, DepositStatusClaimed.CanTransitionTo(DepositStatusReleased))
		assert.False(t, DepositStatusClaimed.CanTransitionTo(DepositStatusHeld))
	})

	t.Run("TerminalStates", func(t *testing.T) {
		assert.True(t, DepositStatusReleased.Terminal())
		assert.True(t, DepositStatusRefunded.Terminal())
		assert.True(t, DepositStatusForfeited.Terminal())
		assert.False(t, DepositStatusHeld.Terminal())
		assert.False(t, DepositStatusPendingRelease.Terminal())
		assert.False(t, DepositStatusClaimed.Terminal())
	})

	t.Run("Claimable", func(t *testing.T) {
		assert.True(t, DepositStatusHeld.Claimable())
		assert.True(t, DepositStatusPendingRelease.Claimable())
		assert.False(t, DepositStatusClaimed.Claimable())
		assert.False(t, DepositStatusReleased.Claimable())
		assert.False(t, DepositStatusRefunded.Claimable())
		assert.False(t, DepositStatusForfeited.Claimable())
	})
}

func TestRentalHelpers(t *testing.T) {
	t.Run("DepositClaimable", func(t *testing.T) {
		rt := &Rental{Status: RentalStatusReturned}
		assert.False(t, rt.DepositClaimable(), "nil deposit status is never claimable")

		held := DepositStatusHeld
		rt.DepositStatus = &held
		assert.True(t, rt.DepositClaimable())

		claimed := DepositStatusClaimed
		rt.DepositStatus = &claimed
		assert.False(t, rt.DepositClaimable())
	})

	t.Run("Paid", func(t *testing.T) {
		rt := &Rental{}
		assert.False(t, rt.Paid())

		empty := ""
		rt.StripePaymentIntentID = &empty
		assert.False(t, rt.Paid())

		pi := "pi_123"
		rt.StripePaymentIntentID = &pi
		assert.True(t, rt.Paid())
	})
}
