package purchaseflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hearthhq/hearthkit/pkg/entitlement"
	"github.com/hearthhq/hearthkit/pkg/platform"
)

// Verifier triggers server-side re-verification of a purchase. The server
// re-queries the purchase provider's backend with its own credentials and
// updates the authoritative household subscription state; no client-supplied
// purchase payload is involved in the call.
type Verifier interface {
	Verify(ctx context.Context) error
}

// DecisionSource resolves the current entitlement decision from fresh
// inputs. Satisfied by *entitlement.Reconciler.
type DecisionSource interface {
	Resolve(ctx context.Context) entitlement.Decision
}

// Result is the caller-visible outcome of a purchase or restore flow.
type Result struct {
	// Cancelled is set when the user backed out of the provider sheet.
	// Not an error; the UI must not show a failure toast.
	Cancelled bool
	// Restored is set when a restore found an entitlement to replay.
	// A restore that found nothing completes with Restored false and no
	// error ("nothing to restore" is informational).
	Restored bool
	// Decision is the entitlement decision re-resolved from fresh inputs
	// after server verification. Zero when no verification ran.
	Decision entitlement.Decision
}

// Orchestrator drives the platform purchase provider through the
// initialize/purchase/restore/verify flows and exposes a UI-consumable
// state machine. Construct one per session at the composition root and
// inject the provider; there is no process-wide instance.
type Orchestrator struct {
	provider  Provider
	verifier  Verifier
	decisions DecisionSource
	log       *slog.Logger

	mu        sync.Mutex
	state     State
	offerings []Product
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the structured logger for flow diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(o *Orchestrator) {
		if log != nil {
			o.log = log
		}
	}
}

// New creates an Orchestrator in StateIdle.
// Panics if any required dependency is nil to fail fast at composition time.
func New(provider Provider, verifier Verifier, decisions DecisionSource, opts ...Option) *Orchestrator {
	if provider == nil {
		panic("purchaseflow: Provider is required")
	}
	if verifier == nil {
		panic("purchaseflow: Verifier is required")
	}
	if decisions == nil {
		panic("purchaseflow: DecisionSource is required")
	}

	o := &Orchestrator{
		provider:  provider,
		verifier:  verifier,
		decisions: decisions,
		log:       slog.Default(),
		state:     StateIdle,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the current flow state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Offerings returns the products fetched during initialization.
func (o *Orchestrator) Offerings() []Product {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Product, len(o.offerings))
	copy(out, o.offerings)
	return out
}

// Status resolves the current entitlement decision from fresh inputs.
// Read path only; does not touch the flow state.
func (o *Orchestrator) Status(ctx context.Context) entitlement.Decision {
	return o.decisions.Resolve(ctx)
}

// Initialize prepares the provider SDK, binds the subscriber to the given
// user and fetches current offerings. On failure the flow returns to
// StateIdle and the error is retryable. Superseded initializations are
// rejected rather than raced: callers retry from idle.
func (o *Orchestrator) Initialize(ctx context.Context, userID string) error {
	if !platform.IsNativeContext(ctx) {
		return newFlowError(KindNotNativePlatform, "in-app purchases require the mobile app", nil)
	}

	if err := o.begin(StateIdle, StateInitializing); err != nil {
		return err
	}

	if err := o.provider.Initialize(ctx); err != nil {
		o.setState(StateIdle)
		return providerFlowError("provider initialization failed", err)
	}
	if err := o.provider.SetUserID(ctx, userID); err != nil {
		o.setState(StateIdle)
		return providerFlowError("binding purchase subscriber failed", err)
	}

	products, err := o.provider.Offerings(ctx)
	if err != nil {
		o.setState(StateIdle)
		return providerFlowError("fetching offerings failed", err)
	}

	o.mu.Lock()
	o.offerings = products
	o.state = StateReady
	o.mu.Unlock()

	o.log.InfoContext(ctx, "purchase flow ready", "user_id", userID, "products", len(products))
	return nil
}

// Purchase runs the full purchase flow for a product: provider purchase,
// then mandatory server-side re-verification, then a fresh entitlement
// resolution. The decision reported to the caller comes exclusively from
// the post-verification re-resolution; the provider's own success signal
// never grants premium.
func (o *Orchestrator) Purchase(ctx context.Context, productID string) (*Result, error) {
	if !platform.IsNativeContext(ctx) {
		return nil, newFlowError(KindNotNativePlatform, "in-app purchases require the mobile app", nil)
	}

	o.mu.Lock()
	if o.state != StateReady {
		state := o.state
		o.mu.Unlock()
		return nil, newFlowError(KindNotInitialized,
			fmt.Sprintf("purchase flow is %s, not ready", state), nil)
	}
	if !o.hasProductLocked(productID) {
		o.mu.Unlock()
		return nil, newFlowError(KindProductNotFound,
			fmt.Sprintf("product %q is not in the current offerings", productID), nil)
	}
	o.state = StatePurchasing
	o.mu.Unlock()

	// From here the flow runs to verification completion or provider
	// error; it is never cancelled client-side once the provider call is
	// issued, so a charged purchase always gets evaluated.
	outcome, err := o.provider.Purchase(ctx, productID)
	if err != nil {
		o.setState(StateReady)
		if isCancellation(err) {
			o.log.InfoContext(ctx, "purchase cancelled by user", "product_id", productID)
			return &Result{Cancelled: true}, nil
		}
		return nil, providerFlowError("purchase failed", err)
	}

	o.log.InfoContext(ctx, "provider reported purchase success, verifying",
		"product_id", outcome.ProductID)

	return o.verifyAndResolve(ctx)
}

// Restore replays historical purchases. A restore that finds no entitlement
// completes without error and without touching the entitlement decision.
func (o *Orchestrator) Restore(ctx context.Context) (*Result, error) {
	if !platform.IsNativeContext(ctx) {
		return nil, newFlowError(KindNotNativePlatform, "restoring purchases requires the mobile app", nil)
	}

	if err := o.begin(StateReady, StateRestoring); err != nil {
		return nil, err
	}

	outcome, err := o.provider.Restore(ctx)
	if err != nil {
		o.setState(StateReady)
		if isCancellation(err) {
			return &Result{Cancelled: true}, nil
		}
		return nil, providerFlowError("restore failed", err)
	}

	if outcome == nil || outcome.Status == nil {
		o.setState(StateReady)
		o.log.InfoContext(ctx, "restore found no entitlement")
		return &Result{Restored: false}, nil
	}

	res, err := o.verifyAndResolve(ctx)
	if err != nil {
		return nil, err
	}
	res.Restored = true
	return res, nil
}

// Teardown collapses the flow back to StateIdle from any state and clears
// cached provider session state. Called at logout.
func (o *Orchestrator) Teardown(ctx context.Context) error {
	err := o.provider.Logout(ctx)
	if err != nil {
		o.log.WarnContext(ctx, "provider logout failed", "error", err)
	}

	o.mu.Lock()
	o.offerings = nil
	o.state = StateIdle
	o.mu.Unlock()

	return err
}

// verifyAndResolve performs the mandatory second step of every successful
// purchase/restore: server-side re-verification followed by a fresh
// entitlement resolution. The two steps are ordered and never collapsed;
// the UI-visible decision must not change before the server confirms.
func (o *Orchestrator) verifyAndResolve(ctx context.Context) (*Result, error) {
	o.setState(StateVerifying)

	if err := o.verifier.Verify(ctx); err != nil {
		o.setState(StateError)
		return nil, newFlowError(KindVerificationFailed,
			"the purchase could not be confirmed; retry or contact support", err)
	}

	decision := o.decisions.Resolve(ctx)
	o.setState(StateReady)

	return &Result{Decision: decision}, nil
}

// begin transitions from an expected state, rejecting the operation when
// the flow is anywhere else.
func (o *Orchestrator) begin(from, to State) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != from {
		return newFlowError(KindNotInitialized,
			fmt.Sprintf("purchase flow is %s, not %s", o.state, from), nil)
	}
	o.state = to
	return nil
}

// setState applies an unconditional transition already validated by the
// flow logic. The table check guards against future transition bugs.
func (o *Orchestrator) setState(to State) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if canTransition(o.state, to) {
		o.state = to
	}
}

func (o *Orchestrator) hasProductLocked(productID string) bool {
	for _, p := range o.offerings {
		if p.ID == productID {
			return true
		}
	}
	return false
}

// providerFlowError classifies a provider failure, preserving the
// provider's code and message when present.
func providerFlowError(message string, err error) *FlowError {
	fe := newFlowError(KindProviderError, message, err)
	var pe *ProviderError
	if errors.As(err, &pe) {
		fe.Code = pe.Code
		fe.Message = pe.Message
	}
	return fe
}
