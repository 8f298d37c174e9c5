package plans

// CanUseFeature reports whether a plan includes a boolean feature.
// Pure lookup against the catalog; repeated calls with identical arguments
// always return the same result.
func (c *Catalog) CanUseFeature(plan Plan, key FeatureKey) bool {
	return c.Limits(plan).Feature(key)
}

// HouseholdCanUseFeature is the canonical entry point for household-scoped
// checks: the household-level premium flag picks the plan, then the feature
// flag is looked up on it.
func (c *Catalog) HouseholdCanUseFeature(hasPremium bool, key FeatureKey) bool {
	return c.CanUseFeature(PlanForHousehold(hasPremium), key)
}

// CanUseFeature checks a feature against the built-in catalog.
func CanUseFeature(plan Plan, key FeatureKey) bool {
	return Default().CanUseFeature(plan, key)
}

// HouseholdCanUseFeature checks a household-scoped feature against the
// built-in catalog.
func HouseholdCanUseFeature(hasPremium bool, key FeatureKey) bool {
	return Default().HouseholdCanUseFeature(hasPremium, key)
}

// HasReachedLimit reports whether a current count has reached a numeric
// limit. Unlimited short-circuits before any comparison. Negative counts
// are never expected but are treated as "not reached" rather than a fault.
func HasReachedLimit(current, limit int64) bool {
	if limit == Unlimited {
		return false
	}
	if current < 0 {
		return false
	}
	return current >= limit
}
