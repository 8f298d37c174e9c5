// Package entitlement resolves whether a household has premium access by
// reconciling three independent and sometimes conflicting sources of truth:
// the household billing aggregation (web provider), the on-device purchase
// provider snapshot (mobile provider) and the cached subscription fields on
// the user profile.
//
// # Reconciliation
//
// The premium decision is a logical OR across sources evaluated as an
// explicit ordered rule list (first match wins):
//
//  1. household aggregation reports premium
//  2. native platform and the mobile entitlement is active
//  3. the profile cache says the plan is premium
//
// A household must never lose premium access because one provider's cache
// is stale, so sources are combined with OR, never AND. Missing or failed
// sources are treated as "no premium signal from this source", not as
// errors: Reconcile is pure and Reconciler.Resolve never returns an error.
//
// The provider label on the decision is resolved independently of the
// boolean and picks the backend whose management/upgrade copy should be
// shown, defaulting to stripe.
//
// # Usage
//
//	rec := entitlement.NewReconciler(billingQuery, purchaseClient, profileReader)
//
//	ctx := platform.WithContext(ctx, platform.IOS)
//	decision := rec.Resolve(ctx)
//	if decision.HasPremium {
//		// unlock premium features for the household
//	}
//
// The decision also carries NativePlatform so UI affordances (for example
// hiding the web checkout button inside the mobile app) gate consistently
// with purchase policy.
//
// # Point-in-time checks
//
// Where a single subscription record is the available input, use
// HasActiveSubscription instead of the live reconciliation:
//
//	ok := entitlement.HasActiveSubscription(plans.PlanPremium, entitlement.StatusActive, sub.EndsAt)
package entitlement
