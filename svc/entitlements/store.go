package entitlements

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hearthhq/hearthkit/pkg/entitlement"
)

// ErrNotFound is returned when no billing record exists for a household.
var ErrNotFound = errors.New("billing status not found for household")

// BillingRecord is the persisted billing state of a household. It is the
// server-side source behind entitlement.HouseholdBillingStatus.
type BillingRecord struct {
	HouseholdID     uuid.UUID
	HouseholdName   string
	HasPremium      bool
	Provider        entitlement.Provider
	PremiumUserID   uuid.UUID
	PremiumUserName string
	UpdatedAt       time.Time
}

// Status converts the record into the wire shape consumed by clients.
func (r BillingRecord) Status() entitlement.HouseholdBillingStatus {
	status := entitlement.HouseholdBillingStatus{
		HasPremium: r.HasPremium,
		Provider:   r.Provider,
	}
	if r.HouseholdID != uuid.Nil {
		status.Household = &entitlement.HouseholdRef{
			ID:   r.HouseholdID,
			Name: r.HouseholdName,
		}
	}
	if r.HasPremium && r.PremiumUserID != uuid.Nil {
		status.PremiumUser = &entitlement.PremiumMember{
			ID:       r.PremiumUserID,
			Name:     r.PremiumUserName,
			Provider: r.Provider,
		}
	}
	return status
}

// Store persists household billing records.
type Store interface {
	// GetBillingRecord returns the record for a household, or ErrNotFound.
	GetBillingRecord(ctx context.Context, householdID uuid.UUID) (BillingRecord, error)
	// SaveBillingRecord inserts or replaces the record for its household.
	SaveBillingRecord(ctx context.Context, rec BillingRecord) error
}
