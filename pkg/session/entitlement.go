package session

import (
	"time"

	"github.com/wkwunju/moreach-sub001/pkg/domain"
)

// Entitlement math. Pure functions over a user record and an explicit
// instant, so expiry boundaries are deterministic in tests. Day counts use
// duration arithmetic, not calendar-day boundaries, to avoid
// timezone-dependent off-by-one results.

// TrialDaysRemaining returns how many whole-or-partial days of free trial
// are left. 0 for a nil user, a missing trial_ends_at, or an expiry at or
// before now; otherwise at least 1.
func TrialDaysRemaining(u *domain.User, now time.Time) int {
	if u == nil || u.TrialEndsAt == nil {
		return 0
	}
	left := u.TrialEndsAt.Sub(now)
	if left <= 0 {
		return 0
	}
	days := int(left / (24 * time.Hour))
	if left%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// IsTrialActive returns true while the user is on the FREE_TRIAL tier with
// an unexpired trial_ends_at.
func IsTrialActive(u *domain.User, now time.Time) bool {
	if u == nil || u.SubscriptionTier != domain.TierFreeTrial {
		return false
	}
	return u.TrialEndsAt != nil && u.TrialEndsAt.After(now)
}

// IsSubscriptionActive returns true when the user currently has product
// access: an active trial, or a paid tier whose subscription_ends_at is
// either unset (non-expiring grant) or in the future. EXPIRED is inactive
// regardless of any date fields, and a paid tier with a past end date stays
// inactive even if a stale trial_ends_at is present.
func IsSubscriptionActive(u *domain.User, now time.Time) bool {
	if u == nil {
		return false
	}
	if IsTrialActive(u, now) {
		return true
	}
	if !domain.PaidTier(u.SubscriptionTier) {
		return false
	}
	return u.SubscriptionEndsAt == nil || u.SubscriptionEndsAt.After(now)
}
