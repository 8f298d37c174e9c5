package entitlement

import (
	"context"
	"log/slog"

	"github.com/hearthhq/hearthkit/pkg/platform"
)

// HouseholdBillingSource answers the household-level billing aggregation
// query. Must be re-fetchable on demand: the reconciler reads it fresh on
// every resolution instead of caching across evaluations.
type HouseholdBillingSource interface {
	HouseholdBillingStatus(ctx context.Context) (HouseholdBillingStatus, error)
}

// PurchaseStatusSource exposes the on-device purchase provider's current
// entitlement snapshot. Returns nil when the subscriber holds no active
// entitlement. Only consulted on native mobile platforms.
type PurchaseStatusSource interface {
	ActiveEntitlement(ctx context.Context) (*PurchaseStatus, error)
}

// ProfileSource reads the cached subscription fields off the user profile.
type ProfileSource interface {
	ProfileSubscription(ctx context.Context) (ProfileSubscription, error)
}

// Reconciler resolves the household's premium entitlement from three
// independently fetched sources. It never returns an error: a source that
// fails to fetch simply contributes no premium signal and the decision is
// computed from whatever subset resolved.
type Reconciler struct {
	household HouseholdBillingSource
	purchase  PurchaseStatusSource
	profile   ProfileSource
	log       *slog.Logger
}

// ReconcilerOption configures a Reconciler.
type ReconcilerOption func(*Reconciler)

// WithLogger sets the logger used to report degraded source fetches.
func WithLogger(log *slog.Logger) ReconcilerOption {
	return func(r *Reconciler) {
		if log != nil {
			r.log = log
		}
	}
}

// NewReconciler creates a Reconciler over the given sources. Any source may
// be nil, in which case it contributes no premium signal; web builds pass a
// nil purchase source since no on-device provider exists there.
func NewReconciler(household HouseholdBillingSource, purchase PurchaseStatusSource, profile ProfileSource, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		household: household,
		purchase:  purchase,
		profile:   profile,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve fetches all three sources fresh and folds them into a decision.
// The client platform is read from context; the mobile purchase source is
// only consulted on native platforms since a web session cannot hold an
// on-device entitlement.
func (r *Reconciler) Resolve(ctx context.Context) Decision {
	in := Inputs{Platform: platform.FromContext(ctx)}

	if r.household != nil {
		status, err := r.household.HouseholdBillingStatus(ctx)
		if err != nil {
			r.log.DebugContext(ctx, "household billing source unavailable", "error", err)
		} else {
			in.Household = status
		}
	}

	if r.purchase != nil && in.Platform.IsNative() {
		ent, err := r.purchase.ActiveEntitlement(ctx)
		if err != nil {
			r.log.DebugContext(ctx, "purchase status source unavailable", "error", err)
		} else if ent != nil {
			in.Purchase = *ent
		}
	}

	if r.profile != nil {
		profile, err := r.profile.ProfileSubscription(ctx)
		if err != nil {
			r.log.DebugContext(ctx, "profile source unavailable", "error", err)
		} else {
			in.Profile = profile
		}
	}

	return Reconcile(in)
}
