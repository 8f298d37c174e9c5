package entitlement

import (
	"time"

	"github.com/hearthhq/hearthkit/pkg/plans"
)

// HasActiveSubscriptionAt reports whether a point-in-time subscription
// snapshot grants premium at the given time. Used when a specific
// subscription record is the available input rather than the live
// multi-source reconciliation.
//
// A subscription ending exactly at the evaluation instant counts as
// expired. This method is useful for testing with fixed time values.
func HasActiveSubscriptionAt(plan plans.Plan, status Status, endsAt *time.Time, now time.Time) bool {
	if plan != plans.PlanPremium {
		return false
	}
	if status != StatusActive {
		return false
	}
	if endsAt == nil {
		return true
	}
	return endsAt.After(now)
}

// HasActiveSubscription reports whether a subscription snapshot grants
// premium right now.
func HasActiveSubscription(plan plans.Plan, status Status, endsAt *time.Time) bool {
	return HasActiveSubscriptionAt(plan, status, endsAt, time.Now().UTC())
}
