package domain

type SubscriptionTier string

const (
	TierNone     SubscriptionTier = "NONE"
	TierBasic    SubscriptionTier = "BASIC"
	TierStandard SubscriptionTier = "STANDARD"
	TierPro      SubscriptionTier = "PRO"
)

// TierLimits caps what a renter at a given effective tier may borrow.
type TierLimits struct {
	MaxActiveBorrows  int
	MaxToolValuePence int64
	MaxDurationDays   int
}

var tierLimits = map[SubscriptionTier]TierLimits{
	TierBasic:    {MaxActiveBorrows: 1, MaxToolValuePence: 10000, MaxDurationDays: 3},
	TierStandard: {MaxActiveBorrows: 2, MaxToolValuePence: 30000, MaxDurationDays: 7},
	TierPro:      {MaxActiveBorrows: 5, MaxToolValuePence: 100000, MaxDurationDays: 14},
}

// EffectiveTier derives the tier a renter borrows under. A paid tier wins
// outright; otherwise listing tools unlocks membership (3+ tools earn
// STANDARD, 1+ earns BASIC). The second return is false when the renter
// has no membership at all.
func EffectiveTier(paid SubscriptionTier, toolsListed int) (SubscriptionTier, bool) {
	if paid == TierBasic || paid == TierStandard || paid == TierPro {
		return paid, true
	}
	switch {
	case toolsListed >= 3:
		return TierStandard, true
	case toolsListed >= 1:
		return TierBasic, true
	default:
		return TierNone, false
	}
}

// LimitsFor returns the borrow caps for a tier. The second return is
// false for TierNone or an unknown tier.
func LimitsFor(tier SubscriptionTier) (TierLimits, bool) {
	l, ok := tierLimits[tier]
	return l, ok
}
