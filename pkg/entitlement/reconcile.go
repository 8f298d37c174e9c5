package entitlement

import (
	"github.com/hearthhq/hearthkit/pkg/plans"
	"github.com/hearthhq/hearthkit/pkg/platform"
)

// Inputs carries the three independently fetched entitlement sources plus
// the client platform. Zero values mean "this source reports no premium":
// a missing or failed source never blocks reconciliation.
type Inputs struct {
	Household HouseholdBillingStatus
	Purchase  PurchaseStatus
	Profile   ProfileSubscription
	Platform  platform.Platform
}

// premiumRule is one step of the ordered premium decision. Rules are
// evaluated top to bottom and the first match wins, which keeps the
// precedence auditable and testable per rule.
type premiumRule struct {
	name  string
	grant func(in Inputs) bool
}

var premiumRules = []premiumRule{
	{
		// Household aggregation is authoritative: any member's qualifying
		// subscription covers the whole household.
		name:  "household",
		grant: func(in Inputs) bool { return in.Household.HasPremium },
	},
	{
		// The mobile entitlement only counts on a native platform; a web
		// session cannot claim an on-device purchase.
		name:  "mobile_entitlement",
		grant: func(in Inputs) bool { return in.Platform.IsNative() && in.Purchase.IsActive },
	},
	{
		// The profile cache is the lowest priority source. It keeps access
		// alive while the provider-backed sources are stale or unreachable.
		name:  "profile_cache",
		grant: func(in Inputs) bool { return in.Profile.Plan == plans.PlanPremium },
	},
}

// Reconcile folds the three entitlement sources into one decision.
// Pure function: no clock, no I/O, no error path. The premium decision is a
// logical OR across sources so a stale cache on one provider can never
// revoke access granted by another.
func Reconcile(in Inputs) Decision {
	d := Decision{
		NativePlatform: in.Platform.IsNative(),
		Provider:       providerLabel(in),
	}

	for _, rule := range premiumRules {
		if rule.grant(in) {
			d.HasPremium = true
			break
		}
	}

	return d
}

// providerLabel resolves which billing backend to surface for management
// and upgrade copy. Independent of the premium decision itself:
//
//  1. the household aggregation's provider, when it granted premium
//  2. the mobile provider, when a native entitlement is active
//  3. the provider cached on the user profile
//  4. stripe as the default
func providerLabel(in Inputs) Provider {
	if in.Household.HasPremium && in.Household.Provider != "" {
		return in.Household.Provider
	}
	if in.Platform.IsNative() && in.Purchase.IsActive {
		return ProviderRevenueCat
	}
	if in.Profile.Provider != "" {
		return in.Profile.Provider
	}
	return ProviderStripe
}
