package billing_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthhq/hearthkit/pkg/billing"
)

func rcServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *billing.RevenueCatClient) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := billing.NewRevenueCatClient(billing.RevenueCatConfig{
		APIKey:        "sk_test",
		BaseURL:       srv.URL,
		EntitlementID: "premium",
	}, billing.WithRevenueCatClock(func() time.Time {
		return time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	}))
	require.NoError(t, err)

	return srv, client
}

func TestRevenueCatClient_Subscriber(t *testing.T) {
	t.Parallel()

	t.Run("active entitlement", func(t *testing.T) {
		t.Parallel()
		_, client := rcServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/subscribers/user-42", r.URL.Path)
			assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

			fmt.Fprint(w, `{"subscriber":{"entitlements":{"premium":{
				"expires_date":"2026-09-01T00:00:00Z",
				"purchase_date":"2026-07-01T00:00:00Z",
				"product_identifier":"premium_monthly"}}}}`)
		})

		status, err := client.Subscriber(context.Background(), "user-42")
		require.NoError(t, err)
		require.NotNil(t, status)

		assert.True(t, status.IsActive)
		assert.Equal(t, "premium_monthly", status.ProductID)
		require.Contains(t, status.Entitlements, "premium")
		assert.Equal(t, "premium_monthly", status.Entitlements["premium"].ProductID)
	})

	t.Run("expired entitlement reports no status", func(t *testing.T) {
		t.Parallel()
		_, client := rcServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"subscriber":{"entitlements":{"premium":{
				"expires_date":"2026-07-01T00:00:00Z",
				"product_identifier":"premium_monthly"}}}}`)
		})

		status, err := client.Subscriber(context.Background(), "user-42")
		require.NoError(t, err)
		assert.Nil(t, status)
	})

	t.Run("lifetime entitlement without expiry is active", func(t *testing.T) {
		t.Parallel()
		_, client := rcServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"subscriber":{"entitlements":{"premium":{
				"product_identifier":"premium_lifetime"}}}}`)
		})

		status, err := client.Subscriber(context.Background(), "user-42")
		require.NoError(t, err)
		require.NotNil(t, status)
		assert.True(t, status.IsActive)
		assert.Nil(t, status.ExpirationDate)
	})

	t.Run("no entitlement for configured id", func(t *testing.T) {
		t.Parallel()
		_, client := rcServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"subscriber":{"entitlements":{}}}`)
		})

		status, err := client.Subscriber(context.Background(), "user-42")
		require.NoError(t, err)
		assert.Nil(t, status)
	})

	t.Run("unknown subscriber", func(t *testing.T) {
		t.Parallel()
		_, client := rcServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := client.Subscriber(context.Background(), "user-42")
		assert.ErrorIs(t, err, billing.ErrSubscriberNotFound)
	})

	t.Run("backend failure", func(t *testing.T) {
		t.Parallel()
		_, client := rcServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := client.Subscriber(context.Background(), "user-42")
		assert.ErrorIs(t, err, billing.ErrProviderRequestFailed)
	})

	t.Run("empty app user id", func(t *testing.T) {
		t.Parallel()
		_, client := rcServer(t, func(w http.ResponseWriter, r *http.Request) {})

		_, err := client.Subscriber(context.Background(), "")
		assert.ErrorIs(t, err, billing.ErrProviderRequestFailed)
	})
}

func TestNewRevenueCatClient(t *testing.T) {
	t.Parallel()

	_, err := billing.NewRevenueCatClient(billing.RevenueCatConfig{})
	assert.ErrorIs(t, err, billing.ErrMissingAPIKey)

	client, err := billing.NewRevenueCatClient(billing.RevenueCatConfig{APIKey: "sk_test"})
	require.NoError(t, err)
	assert.NotNil(t, client)
}
