package purchaseflow

import (
	"context"

	"github.com/hearthhq/hearthkit/pkg/entitlement"
)

// Product is one purchasable item from the provider's current offerings.
type Product struct {
	ID          string
	Title       string
	Description string
	PriceLabel  string // localized display price, e.g. "$4.99/month"
}

// Outcome is the provider-reported result of a purchase or restore call.
// Status is nil when a restore found nothing to restore. An Outcome is a
// client-side claim only: it never grants entitlement by itself.
type Outcome struct {
	ProductID string
	Status    *entitlement.PurchaseStatus
}

// Provider is the on-device purchase provider SDK surface. Implementations
// wrap the native SDK on mobile builds; web builds use Unavailable.
//
// All calls may suspend and must respect context cancellation, except that
// the orchestrator deliberately never cancels Purchase/Restore mid-flight.
type Provider interface {
	// Initialize prepares the SDK. Idempotent; safe to retry after failure.
	Initialize(ctx context.Context) error

	// SetUserID binds the provider subscriber to the application user so
	// server-side verification can look the subscriber up.
	SetUserID(ctx context.Context, userID string) error

	// Offerings returns the products currently available for purchase.
	Offerings(ctx context.Context) ([]Product, error)

	// Purchase starts the native purchase sheet for a product.
	// User cancellation is reported as a *ProviderError with Cancelled set.
	Purchase(ctx context.Context, productID string) (*Outcome, error)

	// Restore replays historical purchases for the current subscriber.
	Restore(ctx context.Context) (*Outcome, error)

	// ActiveEntitlement returns the current entitlement snapshot, or nil
	// when the subscriber holds none.
	ActiveEntitlement(ctx context.Context) (*entitlement.PurchaseStatus, error)

	// Logout clears cached subscriber state at session teardown.
	Logout(ctx context.Context) error
}

// Unavailable is the Provider used on platforms without an on-device
// purchase SDK. Every operation fails with a not-available provider error,
// and ActiveEntitlement reports no entitlement rather than an error so
// entitlement reconciliation degrades cleanly.
type Unavailable struct{}

var errUnavailable = &ProviderError{
	Code:    "provider_unavailable",
	Message: "purchase provider is not available on this platform",
}

func (Unavailable) Initialize(context.Context) error                  { return errUnavailable }
func (Unavailable) SetUserID(context.Context, string) error           { return errUnavailable }
func (Unavailable) Offerings(context.Context) ([]Product, error)      { return nil, errUnavailable }
func (Unavailable) Purchase(context.Context, string) (*Outcome, error) { return nil, errUnavailable }
func (Unavailable) Restore(context.Context) (*Outcome, error)         { return nil, errUnavailable }
func (Unavailable) Logout(context.Context) error                      { return nil }

func (Unavailable) ActiveEntitlement(context.Context) (*entitlement.PurchaseStatus, error) {
	return nil, nil
}
