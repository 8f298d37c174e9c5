// Package billing provides the provider-facing clients of the subscription
// system: the web checkout session client and the RevenueCat server API
// client used for purchase verification.
//
// # Platform gate
//
// CheckoutClient.CreateSession enforces the app-store purchase policy: a
// native mobile client must never open a web checkout, so the call is
// rejected with ErrCheckoutUnavailableOnMobile before any network traffic
// when the context platform is ios or android. Native clients purchase
// through the in-app provider instead (see package purchaseflow).
//
// # Trusted verification reads
//
// RevenueCatClient talks to the purchase provider's backend with a
// server-held API key. It backs the server-side verification step: the
// server re-queries RevenueCat directly rather than trusting any receipt
// or success signal supplied by a client.
//
//	cfg := billing.RevenueCatConfig{APIKey: apiKey}
//	rc, err := billing.NewRevenueCatClient(cfg)
//	status, err := rc.Subscriber(ctx, appUserID)
//	// status == nil means no active entitlement
package billing
