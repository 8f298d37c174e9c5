package purchaseflow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hearthhq/hearthkit/pkg/entitlement"
	"github.com/hearthhq/hearthkit/pkg/platform"
	"github.com/hearthhq/hearthkit/pkg/purchaseflow"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Initialize(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockProvider) SetUserID(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockProvider) Offerings(ctx context.Context) ([]purchaseflow.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]purchaseflow.Product), args.Error(1)
}

func (m *mockProvider) Purchase(ctx context.Context, productID string) (*purchaseflow.Outcome, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchaseflow.Outcome), args.Error(1)
}

func (m *mockProvider) Restore(ctx context.Context) (*purchaseflow.Outcome, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchaseflow.Outcome), args.Error(1)
}

func (m *mockProvider) ActiveEntitlement(ctx context.Context) (*entitlement.PurchaseStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entitlement.PurchaseStatus), args.Error(1)
}

func (m *mockProvider) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Verify(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockDecisions struct {
	mock.Mock
}

func (m *mockDecisions) Resolve(ctx context.Context) entitlement.Decision {
	return m.Called(ctx).Get(0).(entitlement.Decision)
}

func nativeCtx() context.Context {
	return platform.WithContext(context.Background(), platform.IOS)
}

var testProducts = []purchaseflow.Product{
	{ID: "premium_monthly", Title: "Premium Monthly", PriceLabel: "$4.99/month"},
	{ID: "premium_annual", Title: "Premium Annual", PriceLabel: "$49.99/year"},
}

// readyOrchestrator builds an orchestrator that has completed initialization.
func readyOrchestrator(t *testing.T, provider *mockProvider, verifier *mockVerifier, decisions *mockDecisions) *purchaseflow.Orchestrator {
	t.Helper()

	provider.On("Initialize", mock.Anything).Return(nil).Once()
	provider.On("SetUserID", mock.Anything, "user-1").Return(nil).Once()
	provider.On("Offerings", mock.Anything).Return(testProducts, nil).Once()

	orch := purchaseflow.New(provider, verifier, decisions)
	require.NoError(t, orch.Initialize(nativeCtx(), "user-1"))
	require.Equal(t, purchaseflow.StateReady, orch.State())
	return orch
}

func TestNew_PanicsOnNilDependencies(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { purchaseflow.New(nil, &mockVerifier{}, &mockDecisions{}) })
	assert.Panics(t, func() { purchaseflow.New(&mockProvider{}, nil, &mockDecisions{}) })
	assert.Panics(t, func() { purchaseflow.New(&mockProvider{}, &mockVerifier{}, nil) })
}

func TestOrchestrator_Initialize(t *testing.T) {
	t.Parallel()

	t.Run("success reaches ready and caches offerings", func(t *testing.T) {
		t.Parallel()
		provider := &mockProvider{}
		orch := readyOrchestrator(t, provider, &mockVerifier{}, &mockDecisions{})

		assert.Equal(t, testProducts, orch.Offerings())
		provider.AssertExpectations(t)
	})

	t.Run("rejected off native platforms", func(t *testing.T) {
		t.Parallel()
		provider := &mockProvider{}
		orch := purchaseflow.New(provider, &mockVerifier{}, &mockDecisions{})

		err := orch.Initialize(context.Background(), "user-1")
		require.Error(t, err)
		assert.Equal(t, purchaseflow.KindNotNativePlatform, purchaseflow.KindOf(err))
		assert.Equal(t, purchaseflow.StateIdle, orch.State())
		provider.AssertNotCalled(t, "Initialize", mock.Anything)
	})

	t.Run("provider failure returns to idle and is retryable", func(t *testing.T) {
		t.Parallel()
		provider := &mockProvider{}
		provider.On("Initialize", mock.Anything).
			Return(&purchaseflow.ProviderError{Code: "network", Message: "offline"}).Once()
		provider.On("Initialize", mock.Anything).Return(nil).Once()
		provider.On("SetUserID", mock.Anything, "user-1").Return(nil)
		provider.On("Offerings", mock.Anything).Return(testProducts, nil)

		orch := purchaseflow.New(provider, &mockVerifier{}, &mockDecisions{})

		err := orch.Initialize(nativeCtx(), "user-1")
		require.Error(t, err)
		assert.Equal(t, purchaseflow.KindProviderError, purchaseflow.KindOf(err))
		assert.Equal(t, purchaseflow.StateIdle, orch.State())

		require.NoError(t, orch.Initialize(nativeCtx(), "user-1"))
		assert.Equal(t, purchaseflow.StateReady, orch.State())
	})

	t.Run("offerings failure returns to idle", func(t *testing.T) {
		t.Parallel()
		provider := &mockProvider{}
		provider.On("Initialize", mock.Anything).Return(nil)
		provider.On("SetUserID", mock.Anything, "user-1").Return(nil)
		provider.On("Offerings", mock.Anything).
			Return(nil, &purchaseflow.ProviderError{Code: "offerings", Message: "unavailable"})

		orch := purchaseflow.New(provider, &mockVerifier{}, &mockDecisions{})
		err := orch.Initialize(nativeCtx(), "user-1")

		require.Error(t, err)
		assert.Equal(t, purchaseflow.StateIdle, orch.State())
	})
}

func TestOrchestrator_Purchase(t *testing.T) {
	t.Parallel()

	t.Run("happy path verifies before updating decision", func(t *testing.T) {
		t.Parallel()
		provider := &mockProvider{}
		verifier := &mockVerifier{}
		decisions := &mockDecisions{}

		var sequence []string
		provider.On("Purchase", mock.Anything, "premium_monthly").
			Run(func(mock.Arguments) { sequence = append(sequence, "purchase") }).
			Return(&purchaseflow.Outcome{
				ProductID: "premium_monthly",
				Status:    &entitlement.PurchaseStatus{IsActive: true},
			}, nil)
		verifier.On("Verify", mock.Anything).
			Run(func(mock.Arguments) { sequence = append(sequence, "verify") }).
			Return(nil)
		decisions.On("Resolve", mock.Anything).
			Run(func(mock.Arguments) { sequence = append(sequence, "resolve") }).
			Return(entitlement.Decision{HasPremium: true, Provider: entitlement.ProviderRevenueCat, NativePlatform: true})

		orch := readyOrchestrator(t, provider, verifier, decisions)
		res, err := orch.Purchase(nativeCtx(), "premium_monthly")

		require.NoError(t, err)
		assert.True(t, res.Decision.HasPremium)
		assert.Equal(t, entitlement.ProviderRevenueCat, res.Decision.Provider)
		assert.False(t, res.Cancelled)
		assert.Equal(t, purchaseflow.StateReady, orch.State())

		// Provider success alone must never update the decision: the
		// server verify step strictly precedes resolution.
		assert.Equal(t, []string{"purchase", "verify", "resolve"}, sequence)
	})

	t.Run("rejected off native platforms before any provider call", func(t *testing.T) {
		t.Parallel()
		provider := &mockProvider{}
		orch := readyOrchestrator(t, provider, &mockVerifier{}, &mockDecisions{})

		_, err := orch.Purchase(context.Background(), "premium_monthly")
		require.Error(t, err)
		assert.Equal(t, purchaseflow.KindNotNativePlatform, purchaseflow.KindOf(err))
		provider.AssertNotCalled(t, "Purchase", mock.Anything, mock.Anything)
	})

	t.Run("rejected before initialization", func(t *testing.T) {
		t.Parallel()
		orch := purchaseflow.New(&mockProvider{}, &mockVerifier{}, &mockDecisions{})

		_, err := orch.Purchase(nativeCtx(), "premium_monthly")
		require.Error(t, err)
		assert.Equal(t, purchaseflow.KindNotInitialized, purchaseflow.KindOf(err))
	})

	t.Run("unknown product", func(t *testing.T) {
		t.Parallel()
		provider := &mockProvider{}
		orch := readyOrchestrator(t, provider, &mockVerifier{}, &mockDecisions{})

		_, err := orch.Purchase(nativeCtx(), "lifetime_deal")
		require.Error(t, err)
		assert.Equal(t, purchaseflow.KindProductNotFound, purchaseflow.KindOf(err))
		assert.Equal(t, purchaseflow.StateReady, orch.State())
		provider.AssertNotCalled(t, "Purchase", mock.Anything, mock.Anything)
	})

	t.Run("user cancellation is silent", func(t *testing.T) {
		t.Parallel()
		provider := &mockProvider{}
		verifier := &mockVerifier{}
		provider.On("Purchase", mock.Anything, "premium_monthly").
			Return(nil, &purchaseflow.ProviderError{Code: "1", Message: "purchase cancelled", Cancelled: true})

		orch := readyOrchestrator(t, provider, verifier, &mockDecisions{})
		res, err := orch.Purchase(nativeCtx(), "premium_monthly")

		require.NoError(t, err)
		assert.True(t, res.Cancelled)
		assert.Equal(t, purchaseflow.StateReady, orch.State())
		verifier.AssertNotCalled(t, "Verify", mock.Anything)
	})

	t.Run("provider error preserves code and message", func(t *testing.T) {
		t.Parallel()
		provider := &mockProvider{}
		provider.On("Purchase", mock.Anything, "premium_monthly").
			Return(nil, &purchaseflow.ProviderError{Code: "payment_pending", Message: "payment is pending"})

		orch := readyOrchestrator(t, provider, &mockVerifier{}, &mockDecisions{})
		_, err := orch.Purchase(nativeCtx(), "premium_monthly")

		require.Error(t, err)
		var fe *purchaseflow.FlowError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, purchaseflow.KindProviderError, fe.Kind)
		assert.Equal(t, "payment_pending", fe.Code)
		assert.Equal(t, "payment is pending", fe.Message)
		assert.Equal(t, purchaseflow.StateReady, orch.State())
	})

	t.Run("verification failure never grants premium", func(t *testing.T) {
		t.Parallel()
		provider := &mockProvider{}
		verifier := &mockVerifier{}
		decisions := &mockDecisions{}

		provider.On("Purchase", mock.Anything, "premium_monthly").
			Return(&purchaseflow.Outcome{
				ProductID: "premium_monthly",
				Status:    &entitlement.PurchaseStatus{IsActive: true},
			}, nil)
		verifier.On("Verify", mock.Anything).
			Return(&purchaseflow.ProviderError{Code: "500", Message: "verification backend down"})

		orch := readyOrchestrator(t, provider, verifier, decisions)
		_, err := orch.Purchase(nativeCtx(), "premium_monthly")

		require.Error(t, err)
		assert.Equal(t, purchaseflow.KindVerificationFailed, purchaseflow.KindOf(err))
		assert.Equal(t, purchaseflow.StateError, orch.State())

		// The decision source must not be consulted on the failure path:
		// the client-reported success is worthless without server
		// confirmation.
		decisions.AssertNotCalled(t, "Resolve", mock.Anything)
	})
}

func TestOrchestrator_Restore(t *testing.T) {
	t.Parallel()

	t.Run("restores and verifies a found entitlement", func(t *testing.T) {
		t.Parallel()
		provider := &mockProvider{}
		verifier := &mockVerifier{}
		decisions := &mockDecisions{}

		provider.On("Restore", mock.Anything).
			Return(&purchaseflow.Outcome{
				ProductID: "premium_annual",
				Status:    &entitlement.PurchaseStatus{IsActive: true},
			}, nil)
		verifier.On("Verify", mock.Anything).Return(nil)
		decisions.On("Resolve", mock.Anything).
			Return(entitlement.Decision{HasPremium: true, Provider: entitlement.ProviderRevenueCat, NativePlatform: true})

		orch := readyOrchestrator(t, provider, verifier, decisions)
		res, err := orch.Restore(nativeCtx())

		require.NoError(t, err)
		assert.True(t, res.Restored)
		assert.True(t, res.Decision.HasPremium)
		assert.Equal(t, purchaseflow.StateReady, orch.State())
	})

	t.Run("nothing to restore is informational", func(t *testing.T) {
		t.Parallel()
		provider := &mockProvider{}
		verifier := &mockVerifier{}

		provider.On("Restore", mock.Anything).
			Return(&purchaseflow.Outcome{}, nil)

		orch := readyOrchestrator(t, provider, verifier, &mockDecisions{})
		res, err := orch.Restore(nativeCtx())

		require.NoError(t, err)
		assert.False(t, res.Restored)
		assert.False(t, res.Cancelled)
		assert.Equal(t, purchaseflow.StateReady, orch.State())
		verifier.AssertNotCalled(t, "Verify", mock.Anything)
	})

	t.Run("restore verification failure surfaces verification-failed", func(t *testing.T) {
		t.Parallel()
		provider := &mockProvider{}
		verifier := &mockVerifier{}

		provider.On("Restore", mock.Anything).
			Return(&purchaseflow.Outcome{
				ProductID: "premium_annual",
				Status:    &entitlement.PurchaseStatus{IsActive: true},
			}, nil)
		verifier.On("Verify", mock.Anything).
			Return(&purchaseflow.ProviderError{Message: "backend unreachable"})

		orch := readyOrchestrator(t, provider, verifier, &mockDecisions{})
		_, err := orch.Restore(nativeCtx())

		require.Error(t, err)
		assert.Equal(t, purchaseflow.KindVerificationFailed, purchaseflow.KindOf(err))
		assert.Equal(t, purchaseflow.StateError, orch.State())
	})
}

func TestOrchestrator_Teardown(t *testing.T) {
	t.Parallel()

	t.Run("collapses any state to idle and clears session", func(t *testing.T) {
		t.Parallel()
		provider := &mockProvider{}
		provider.On("Logout", mock.Anything).Return(nil)

		orch := readyOrchestrator(t, provider, &mockVerifier{}, &mockDecisions{})
		require.NoError(t, orch.Teardown(context.Background()))

		assert.Equal(t, purchaseflow.StateIdle, orch.State())
		assert.Empty(t, orch.Offerings())
		provider.AssertCalled(t, "Logout", mock.Anything)
	})

	t.Run("recovers an errored flow", func(t *testing.T) {
		t.Parallel()
		provider := &mockProvider{}
		verifier := &mockVerifier{}

		provider.On("Purchase", mock.Anything, "premium_monthly").
			Return(&purchaseflow.Outcome{ProductID: "premium_monthly", Status: &entitlement.PurchaseStatus{IsActive: true}}, nil)
		verifier.On("Verify", mock.Anything).Return(&purchaseflow.ProviderError{Message: "down"})
		provider.On("Logout", mock.Anything).Return(nil)

		orch := readyOrchestrator(t, provider, verifier, &mockDecisions{})
		_, err := orch.Purchase(nativeCtx(), "premium_monthly")
		require.Error(t, err)
		require.Equal(t, purchaseflow.StateError, orch.State())

		require.NoError(t, orch.Teardown(context.Background()))
		assert.Equal(t, purchaseflow.StateIdle, orch.State())
	})
}

func TestOrchestrator_Status(t *testing.T) {
	t.Parallel()

	decisions := &mockDecisions{}
	decisions.On("Resolve", mock.Anything).
		Return(entitlement.Decision{HasPremium: true, Provider: entitlement.ProviderStripe})

	orch := purchaseflow.New(&mockProvider{}, &mockVerifier{}, decisions)
	d := orch.Status(context.Background())

	assert.True(t, d.HasPremium)
	// Status is a read path: it never touches the flow state.
	assert.Equal(t, purchaseflow.StateIdle, orch.State())
}

func TestUnavailableProvider(t *testing.T) {
	t.Parallel()

	var p purchaseflow.Unavailable
	ctx := context.Background()

	assert.Error(t, p.Initialize(ctx))
	assert.Error(t, p.SetUserID(ctx, "user-1"))

	_, err := p.Purchase(ctx, "premium_monthly")
	assert.Error(t, err)

	// Entitlement reads degrade to "no signal" instead of failing.
	status, err := p.ActiveEntitlement(ctx)
	require.NoError(t, err)
	assert.Nil(t, status)

	assert.NoError(t, p.Logout(ctx))
}
