// Package plans defines the subscription plan catalog for household
// applications and the pure checks built on top of it: boolean feature
// lookups and numeric limit evaluation with an unlimited sentinel.
//
// The catalog maps each plan tier (basic, premium) to a PlanLimits record
// containing numeric caps and boolean feature flags. A limit value of
// Unlimited (-1) means no cap and short-circuits every comparison.
//
// # Quick Start
//
//	import "github.com/hearthhq/hearthkit/pkg/plans"
//
//	// Feature checks are household-scoped: the household is the billing unit.
//	if plans.HouseholdCanUseFeature(hasPremium, plans.FeatureMailingLabels) {
//		renderMailingLabels()
//	}
//
//	// Limit checks use the -1 sentinel convention transparently.
//	limits := plans.Limits(plans.PlanPremium)
//	if plans.HasReachedLimit(groupCount, limits.MaxGroups) {
//		return ErrUpgradeRequired
//	}
//
// # Custom Catalogs
//
// The built-in catalog is authoritative for most deployments. When plan
// limits need to be configurable, load them through a CatalogSource:
//
//	catalog, err := plans.NewCatalog(plans.FileSource("plans.yaml"))
//	if err != nil {
//		return err
//	}
//	ok := catalog.CanUseFeature(plans.PlanPremium, plans.FeatureEventPlanning)
//
// Feature keys are a closed enumeration covering only boolean-valued
// capabilities; numeric limits are struct fields and cannot be looked up
// through FeatureKey, so an invalid feature check fails at compile time
// rather than through a runtime cast.
package plans
