package entitlements

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hearthhq/hearthkit/pkg/entitlement"
	"github.com/hearthhq/hearthkit/pkg/logger"
)

// ErrNoActiveEntitlement is returned by VerifyPurchase when the provider
// reports no active entitlement for the user. A client-side purchase
// success that ends here must not unlock premium.
var ErrNoActiveEntitlement = errors.New("provider reports no active entitlement for user")

// SubscriberAPI is the provider backend used for trusted verification.
// billing.RevenueCatClient implements it. A nil status with nil error
// means the user has no active entitlement.
type SubscriberAPI interface {
	Subscriber(ctx context.Context, appUserID string) (*entitlement.PurchaseStatus, error)
}

// Service is the server side of the entitlement system: it answers
// household billing-status queries and performs trusted purchase
// verification against the provider backend.
type Service struct {
	store    Store
	provider SubscriberAPI
	log      *slog.Logger
	now      func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger. Defaults to slog.Default().
func WithServiceLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithServiceClock overrides the time source for tests.
func WithServiceClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates the entitlement service.
// Panics if store or provider is nil.
func NewService(store Store, provider SubscriberAPI, opts ...ServiceOption) *Service {
	if store == nil {
		panic("entitlements: service requires a store")
	}
	if provider == nil {
		panic("entitlements: service requires a provider API")
	}
	s := &Service{
		store:    store,
		provider: provider,
		log:      slog.Default(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BillingStatus returns the household's billing status. A household with
// no record is not an error: it simply has no premium.
func (s *Service) BillingStatus(ctx context.Context, householdID uuid.UUID) (entitlement.HouseholdBillingStatus, error) {
	rec, err := s.store.GetBillingRecord(ctx, householdID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return entitlement.HouseholdBillingStatus{}, nil
		}
		return entitlement.HouseholdBillingStatus{}, fmt.Errorf("billing status for household %s: %w", householdID, err)
	}
	return rec.Status(), nil
}

// VerifyPurchase re-checks the user's entitlement directly against the
// provider backend and, when active, records household premium. The
// client's own purchase result is never trusted: only what the provider
// reports here counts.
func (s *Service) VerifyPurchase(ctx context.Context, householdID, userID uuid.UUID, appUserID, userName string) (entitlement.HouseholdBillingStatus, error) {
	status, err := s.provider.Subscriber(ctx, appUserID)
	if err != nil {
		return entitlement.HouseholdBillingStatus{}, fmt.Errorf("verify purchase for user %s: %w", appUserID, err)
	}
	if status == nil || !status.IsActive {
		s.log.InfoContext(ctx, "purchase verification found no active entitlement",
			logger.HouseholdID(householdID),
			logger.UserID(userID),
		)
		return entitlement.HouseholdBillingStatus{}, ErrNoActiveEntitlement
	}

	rec := BillingRecord{
		HouseholdID:     householdID,
		HasPremium:      true,
		Provider:        entitlement.ProviderRevenueCat,
		PremiumUserID:   userID,
		PremiumUserName: userName,
		UpdatedAt:       s.now(),
	}
	if prev, err := s.store.GetBillingRecord(ctx, householdID); err == nil {
		rec.HouseholdName = prev.HouseholdName
	}

	if err := s.store.SaveBillingRecord(ctx, rec); err != nil {
		return entitlement.HouseholdBillingStatus{}, fmt.Errorf("record verified purchase: %w", err)
	}

	s.log.InfoContext(ctx, "purchase verified, household premium recorded",
		logger.HouseholdID(householdID),
		logger.UserID(userID),
		logger.ProductID(status.ProductID),
	)
	return rec.Status(), nil
}

// HouseholdSource adapts the service to a per-household
// entitlement.HouseholdBillingSource for use with the reconciler.
func (s *Service) HouseholdSource(householdID uuid.UUID) entitlement.HouseholdBillingSource {
	return householdSource{svc: s, householdID: householdID}
}

type householdSource struct {
	svc         *Service
	householdID uuid.UUID
}

func (h householdSource) HouseholdBillingStatus(ctx context.Context) (entitlement.HouseholdBillingStatus, error) {
	return h.svc.BillingStatus(ctx, h.householdID)
}
