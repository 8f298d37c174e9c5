package purchaseflow

import (
	"errors"
	"fmt"
)

// Kind classifies purchase flow failures for the UI layer. The taxonomy is
// part of the public contract: callers decide retry/suppress behavior per
// kind instead of string-matching messages.
type Kind string

const (
	// KindNotNativePlatform: purchase attempted outside a native mobile app.
	// Blocking policy gate, not retryable.
	KindNotNativePlatform Kind = "not_native_platform"
	// KindNotInitialized: the provider SDK is not ready for this operation.
	KindNotInitialized Kind = "not_initialized"
	// KindProductNotFound: the requested product is absent from current offerings.
	KindProductNotFound Kind = "product_not_found"
	// KindPurchaseCancelled: the user backed out. Not a failure; error UI
	// must be suppressed.
	KindPurchaseCancelled Kind = "purchase_cancelled"
	// KindProviderError: opaque passthrough from the purchase provider,
	// message and code preserved. Retryable at the user's discretion.
	KindProviderError Kind = "provider_error"
	// KindVerificationFailed: the server could not independently confirm
	// the purchase. Entitlement stays non-premium regardless of what the
	// client-side purchase call reported.
	KindVerificationFailed Kind = "verification_failed"
)

// FlowError is a classified purchase flow failure.
type FlowError struct {
	Kind    Kind
	Code    string // provider error code, when one exists
	Message string
	cause   error
}

func (e *FlowError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("purchaseflow: %s (%s): %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("purchaseflow: %s: %s", e.Kind, e.Message)
}

func (e *FlowError) Unwrap() error {
	return e.cause
}

func newFlowError(kind Kind, message string, cause error) *FlowError {
	return &FlowError{Kind: kind, Message: message, cause: cause}
}

// KindOf extracts the failure kind from an error chain.
// Returns the empty Kind for nil or unclassified errors.
func KindOf(err error) Kind {
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// ProviderError is an error reported by the purchase provider SDK.
// Cancelled marks user-initiated aborts, which the orchestrator swallows
// instead of surfacing.
type ProviderError struct {
	Code      string
	Message   string
	Cancelled bool
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("purchase provider: %s: %s", e.Code, e.Message)
	}
	return "purchase provider: " + e.Message
}

// isCancellation reports whether the error chain contains a user-initiated
// provider cancellation.
func isCancellation(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Cancelled
}
