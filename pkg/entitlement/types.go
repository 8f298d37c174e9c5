package entitlement

import (
	"time"

	"github.com/google/uuid"

	"github.com/hearthhq/hearthkit/pkg/plans"
)

// Provider identifies the billing backend a subscription runs through.
type Provider string

const (
	// ProviderStripe handles web and desktop billing through hosted checkout.
	ProviderStripe Provider = "stripe"
	// ProviderRevenueCat handles mobile in-app purchases.
	ProviderRevenueCat Provider = "revenuecat"
)

// Status is the subscription lifecycle state reported by a billing provider.
type Status string

const (
	StatusActive   Status = "active"
	StatusCanceled Status = "canceled"
	StatusPastDue  Status = "past_due"
)

// PremiumMember identifies the household member whose subscription covers
// the household.
type PremiumMember struct {
	ID       uuid.UUID
	Name     string
	Provider Provider
}

// HouseholdRef is a lightweight household reference carried on billing
// status responses.
type HouseholdRef struct {
	ID   uuid.UUID
	Name string
}

// HouseholdBillingStatus is the household-level aggregation answer: does any
// member of the household hold a qualifying subscription. It is the highest
// priority entitlement source. An empty Provider means the aggregation could
// not attribute the subscription to a specific backend.
type HouseholdBillingStatus struct {
	HasPremium  bool
	Provider    Provider
	PremiumUser *PremiumMember
	Household   *HouseholdRef
}

// EntitlementInfo describes one entitlement granted by the mobile purchase
// provider.
type EntitlementInfo struct {
	ProductID string
	ExpiresAt *time.Time
	WillRenew bool
}

// PurchaseStatus is the on-device purchase provider's snapshot of the
// current subscriber. Only meaningful on native mobile platforms; web
// clients always see a zero value.
type PurchaseStatus struct {
	IsActive       bool
	ProductID      string
	RenewalDate    *time.Time
	ExpirationDate *time.Time
	Entitlements   map[string]EntitlementInfo
}

// ProfileSubscription is the cached subscription denormalization on the
// user record. Lowest priority source: it can lag behind both providers.
type ProfileSubscription struct {
	Plan     plans.Plan
	Provider Provider
}

// Decision is the reconciled entitlement answer. Derived on demand from the
// three input sources; never persisted.
type Decision struct {
	HasPremium     bool
	Provider       Provider
	NativePlatform bool
}
