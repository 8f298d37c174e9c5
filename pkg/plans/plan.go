package plans

// Plan identifies a subscription tier. Households are the billing unit,
// so every member of a household shares the same effective plan.
type Plan string

const (
	PlanBasic   Plan = "basic"
	PlanPremium Plan = "premium"
)

// Valid reports whether the plan is one of the known tiers.
func (p Plan) Valid() bool {
	return p == PlanBasic || p == PlanPremium
}

// PlanForHousehold maps the household-level premium flag to a plan.
// Households, not individual users, carry the subscription, so most
// feature checks start from this mapping.
func PlanForHousehold(hasPremium bool) Plan {
	if hasPremium {
		return PlanPremium
	}
	return PlanBasic
}

const (
	// Unlimited indicates no cap for a numeric limit (-1 chosen for SQL compatibility).
	Unlimited int64 = -1
)

// FeatureKey names a boolean capability of a plan. The set is closed on
// purpose: numeric limits are not features and cannot be looked up through
// this type, which keeps limit checks and feature checks separate at
// compile time.
type FeatureKey string

const (
	FeatureAdvanced       FeatureKey = "advanced_features"
	FeatureRealTimeChat   FeatureKey = "real_time_chat"
	FeatureTaskManagement FeatureKey = "task_management"
	FeatureEventPlanning  FeatureKey = "event_planning"
	FeatureMailingLabels  FeatureKey = "mailing_labels"
)

// PlanLimits describes everything a plan grants: numeric resource caps
// (Unlimited disables the cap) and boolean feature flags.
type PlanLimits struct {
	MaxGroups          int64 `yaml:"max_groups"`
	MaxEventsPerMonth  int64 `yaml:"max_events_per_month"`
	MaxMembersPerGroup int64 `yaml:"max_members_per_group"`

	AdvancedFeatures bool `yaml:"advanced_features"`
	RealTimeChat     bool `yaml:"real_time_chat"`
	TaskManagement   bool `yaml:"task_management"`
	EventPlanning    bool `yaml:"event_planning"`
	MailingLabels    bool `yaml:"mailing_labels"`
}

// Feature returns the flag value for a feature key.
// Unknown keys report false so callers fail closed.
func (l PlanLimits) Feature(key FeatureKey) bool {
	switch key {
	case FeatureAdvanced:
		return l.AdvancedFeatures
	case FeatureRealTimeChat:
		return l.RealTimeChat
	case FeatureTaskManagement:
		return l.TaskManagement
	case FeatureEventPlanning:
		return l.EventPlanning
	case FeatureMailingLabels:
		return l.MailingLabels
	default:
		return false
	}
}
