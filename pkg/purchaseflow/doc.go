// Package purchaseflow drives the on-device purchase provider through the
// initialize, purchase and restore flows and exposes the progress as a
// small state machine the UI can render directly.
//
// # States
//
//	idle -> initializing -> ready -> purchasing -> verifying -> ready
//	                          \----> restoring --/        \--> error
//
// Initialization failures return to idle and are retryable. Teardown (at
// logout) collapses any state back to idle and clears cached provider
// session state.
//
// # Server-side verification
//
// Client-reported purchase or restore success never grants premium by
// itself. After the provider confirms a purchase locally, the orchestrator
// triggers a server-side verification call that independently re-queries
// the purchase provider's backend using server-held credentials; only that
// confirmation updates the household's premium status. Client-side receipts
// are attacker-controlled data, so the two-step ordering (provider success,
// then server verify, then state update) is never collapsed.
//
// # Usage
//
//	orch := purchaseflow.New(provider, verifier, reconciler,
//		purchaseflow.WithLogger(log))
//
//	ctx := platform.WithContext(ctx, platform.IOS)
//	if err := orch.Initialize(ctx, userID); err != nil {
//		// non-fatal; offer retry
//	}
//
//	res, err := orch.Purchase(ctx, "premium_monthly")
//	switch {
//	case err != nil && purchaseflow.KindOf(err) == purchaseflow.KindVerificationFailed:
//		// money may have been captured without entitlement confirmed;
//		// show the retry-or-support message
//	case err != nil:
//		// classified failure, see purchaseflow.Kind
//	case res.Cancelled:
//		// user backed out; no error UI
//	default:
//		// res.Decision carries the freshly re-resolved entitlement
//	}
//
// The orchestrator is dependency-injected and session-scoped; inject a fake
// Provider in tests and purchaseflow.Unavailable on web builds.
package purchaseflow
