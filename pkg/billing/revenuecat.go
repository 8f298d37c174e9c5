package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hearthhq/hearthkit/pkg/entitlement"
)

// RevenueCatConfig holds configuration for the RevenueCat server API client.
// The API key is a server-held secret; this client must never run inside a
// shipped mobile or web client.
type RevenueCatConfig struct {
	APIKey        string        `env:"REVENUECAT_API_KEY,required"`
	BaseURL       string        `env:"REVENUECAT_API_URL" envDefault:"https://api.revenuecat.com/v1"`
	EntitlementID string        `env:"REVENUECAT_ENTITLEMENT_ID" envDefault:"premium"`
	Timeout       time.Duration `env:"REVENUECAT_TIMEOUT" envDefault:"15s"`
}

// RevenueCatClient reads subscriber state from the RevenueCat backend API.
// This is the trusted read path for purchase verification: the client-side
// SDK's claims are never consulted.
type RevenueCatClient struct {
	cfg  RevenueCatConfig
	http *http.Client
	now  func() time.Time
}

// RevenueCatOption configures a RevenueCatClient.
type RevenueCatOption func(*RevenueCatClient)

// WithRevenueCatHTTPClient overrides the HTTP client.
func WithRevenueCatHTTPClient(c *http.Client) RevenueCatOption {
	return func(rc *RevenueCatClient) {
		if c != nil {
			rc.http = c
		}
	}
}

// WithRevenueCatClock overrides the clock used for expiry comparison.
// Useful for testing with fixed time values.
func WithRevenueCatClock(now func() time.Time) RevenueCatOption {
	return func(rc *RevenueCatClient) {
		if now != nil {
			rc.now = now
		}
	}
}

// NewRevenueCatClient creates a RevenueCat server API client.
func NewRevenueCatClient(cfg RevenueCatConfig, opts ...RevenueCatOption) (*RevenueCatClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.revenuecat.com/v1"
	}
	if cfg.EntitlementID == "" {
		cfg.EntitlementID = "premium"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	c := &RevenueCatClient{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		now:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// subscriberResponse mirrors the fields of the GET /subscribers payload
// this client cares about.
type subscriberResponse struct {
	Subscriber struct {
		Entitlements map[string]struct {
			ExpiresDate       *time.Time `json:"expires_date"`
			PurchaseDate      *time.Time `json:"purchase_date"`
			ProductIdentifier string     `json:"product_identifier"`
		} `json:"entitlements"`
	} `json:"subscriber"`
}

// Subscriber fetches the entitlement snapshot for an app user from the
// RevenueCat backend. Returns nil without error when the subscriber holds
// no entitlement for the configured entitlement ID, or when the entitlement
// has expired.
func (c *RevenueCatClient) Subscriber(ctx context.Context, appUserID string) (*entitlement.PurchaseStatus, error) {
	if appUserID == "" {
		return nil, errors.Join(ErrProviderRequestFailed, errors.New("app user ID is required"))
	}

	endpoint := fmt.Sprintf("%s/subscribers/%s", c.cfg.BaseURL, url.PathEscape(appUserID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Join(ErrProviderRequestFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Join(ErrProviderRequestFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrSubscriberNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, errors.Join(ErrProviderRequestFailed,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var payload subscriberResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Join(ErrProviderRequestFailed, err)
	}

	ent, ok := payload.Subscriber.Entitlements[c.cfg.EntitlementID]
	if !ok {
		return nil, nil
	}

	now := c.now()
	active := ent.ExpiresDate == nil || ent.ExpiresDate.After(now)
	if !active {
		return nil, nil
	}

	status := &entitlement.PurchaseStatus{
		IsActive:       true,
		ProductID:      ent.ProductIdentifier,
		ExpirationDate: ent.ExpiresDate,
		Entitlements: map[string]entitlement.EntitlementInfo{
			c.cfg.EntitlementID: {
				ProductID: ent.ProductIdentifier,
				ExpiresAt: ent.ExpiresDate,
				WillRenew: ent.ExpiresDate != nil,
			},
		},
	}
	return status, nil
}
