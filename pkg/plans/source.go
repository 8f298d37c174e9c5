package plans

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CatalogSource loads plan definitions for catalog construction.
// Sources run once at startup; the resulting catalog is immutable.
type CatalogSource interface {
	Load() (map[Plan]PlanLimits, error)
}

// StaticSource serves a fixed set of plan definitions. Useful in tests and
// for applications that define their catalog in code.
type StaticSource map[Plan]PlanLimits

func (s StaticSource) Load() (map[Plan]PlanLimits, error) {
	limits := make(map[Plan]PlanLimits, len(s))
	for plan, l := range s {
		limits[plan] = l
	}
	return limits, nil
}

// YAMLSource loads plan definitions from YAML bytes. The document maps plan
// names to limit records:
//
//	basic:
//	  max_groups: 0
//	  real_time_chat: true
//	premium:
//	  max_groups: -1
//	  mailing_labels: true
type YAMLSource []byte

func (s YAMLSource) Load() (map[Plan]PlanLimits, error) {
	var raw map[Plan]PlanLimits
	if err := yaml.Unmarshal(s, &raw); err != nil {
		return nil, errors.Join(ErrFailedToLoadCatalog, err)
	}
	return raw, nil
}

// FileSource loads plan definitions from a YAML file on disk.
type FileSource string

func (s FileSource) Load() (map[Plan]PlanLimits, error) {
	data, err := os.ReadFile(string(s))
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadCatalog, err)
	}
	return YAMLSource(data).Load()
}

// validateLimits ensures a loaded catalog is internally consistent.
// Catches configuration mistakes at startup instead of at check time.
func validateLimits(limits map[Plan]PlanLimits) error {
	for _, plan := range []Plan{PlanBasic, PlanPremium} {
		if _, ok := limits[plan]; !ok {
			return errors.Join(ErrMissingPlan, fmt.Errorf("missing plan %q", plan))
		}
	}

	for plan, l := range limits {
		if !plan.Valid() {
			return errors.Join(ErrInvalidPlanConfiguration, fmt.Errorf("unknown plan %q", plan))
		}
		for name, v := range map[string]int64{
			"max_groups":            l.MaxGroups,
			"max_events_per_month":  l.MaxEventsPerMonth,
			"max_members_per_group": l.MaxMembersPerGroup,
		} {
			if v < Unlimited {
				return errors.Join(ErrInvalidPlanConfiguration,
					fmt.Errorf("plan %q: %s must be >= -1, got %d", plan, name, v))
			}
		}
	}
	return nil
}
