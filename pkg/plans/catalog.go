package plans

// Catalog holds the plan-to-limits mapping used for all feature and limit
// checks. The built-in catalog is static process-wide data; a custom
// CatalogSource can override it at startup but nothing mutates a catalog
// after construction.
type Catalog struct {
	limits map[Plan]PlanLimits
}

// builtin is the authoritative default catalog.
var builtin = map[Plan]PlanLimits{
	PlanBasic: {
		MaxGroups:          0,
		MaxEventsPerMonth:  0,
		MaxMembersPerGroup: Unlimited,
		AdvancedFeatures:   false,
		RealTimeChat:       true,
		TaskManagement:     true,
		EventPlanning:      false,
		MailingLabels:      false,
	},
	PlanPremium: {
		MaxGroups:          Unlimited,
		MaxEventsPerMonth:  Unlimited,
		MaxMembersPerGroup: Unlimited,
		AdvancedFeatures:   true,
		RealTimeChat:       true,
		TaskManagement:     true,
		EventPlanning:      true,
		MailingLabels:      true,
	},
}

// Default returns a catalog backed by the built-in plan definitions.
func Default() *Catalog {
	return &Catalog{limits: builtin}
}

// NewCatalog loads plan definitions from the given source and validates them.
// Use this when plan limits are deployment-configurable; otherwise Default
// is all you need.
func NewCatalog(src CatalogSource) (*Catalog, error) {
	if src == nil {
		panic("plans: CatalogSource is required")
	}

	limits, err := src.Load()
	if err != nil {
		return nil, err
	}
	if err := validateLimits(limits); err != nil {
		return nil, err
	}

	return &Catalog{limits: limits}, nil
}

// Limits returns the limits record for a plan. Total function: unknown
// plans resolve to the basic tier so a corrupted plan value can never
// grant elevated access.
func (c *Catalog) Limits(plan Plan) PlanLimits {
	if l, ok := c.limits[plan]; ok {
		return l
	}
	return c.limits[PlanBasic]
}

// Limits is a convenience lookup against the built-in catalog.
func Limits(plan Plan) PlanLimits {
	return Default().Limits(plan)
}

// Describe returns human-readable descriptions of what a plan grants,
// suitable for pricing and upgrade screens.
func Describe(plan Plan) []string {
	switch plan {
	case PlanPremium:
		return []string{
			"Unlimited groups",
			"Unlimited events",
			"Unlimited members per group",
			"Advanced planning features",
			"Real-time family chat",
			"Shared task management",
			"Event planning tools",
			"Printable mailing labels",
		}
	default:
		return []string{
			"One shared household",
			"Unlimited members",
			"Real-time family chat",
			"Shared task management",
		}
	}
}
