package billing

import "errors"

var (
	// ErrCheckoutUnavailableOnMobile rejects web checkout session creation
	// from native mobile platforms. App-store policy requires purchases on
	// device to go through the in-app purchase provider; this is a hard
	// gate applied before any network call, not a preference.
	ErrCheckoutUnavailableOnMobile = errors.New("web checkout is not available inside the mobile app")

	ErrMissingAPIKey         = errors.New("purchase provider API key is required")
	ErrMissingBaseURL        = errors.New("billing endpoint base URL is required")
	ErrNoCheckoutURL         = errors.New("no checkout URL returned from billing endpoint")
	ErrSubscriberNotFound    = errors.New("purchase provider has no such subscriber")
	ErrProviderRequestFailed = errors.New("purchase provider request failed")
	ErrCheckoutRequestFailed = errors.New("checkout session request failed")
)
