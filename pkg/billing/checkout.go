package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hearthhq/hearthkit/pkg/platform"
)

// CheckoutConfig configures the web checkout session client.
type CheckoutConfig struct {
	BaseURL string        `env:"BILLING_CHECKOUT_URL,required"`
	Timeout time.Duration `env:"BILLING_CHECKOUT_TIMEOUT" envDefault:"15s"`
}

// CheckoutRequest carries the optional inputs for a checkout session.
type CheckoutRequest struct {
	CouponCode string `json:"coupon_code,omitempty"`
}

// CheckoutSession is a hosted checkout session the browser redirects to.
type CheckoutSession struct {
	URL string `json:"url"`
}

// CheckoutClient creates hosted web checkout sessions through the billing
// backend. The backend owns the payment provider interaction; this client's
// single policy concern is the native-platform gate.
type CheckoutClient struct {
	baseURL string
	http    *http.Client
}

// CheckoutOption configures a CheckoutClient.
type CheckoutOption func(*CheckoutClient)

// WithCheckoutHTTPClient overrides the HTTP client, e.g. to add auth
// transport or for tests.
func WithCheckoutHTTPClient(c *http.Client) CheckoutOption {
	return func(cc *CheckoutClient) {
		if c != nil {
			cc.http = c
		}
	}
}

// NewCheckoutClient creates a web checkout session client.
func NewCheckoutClient(cfg CheckoutConfig, opts ...CheckoutOption) (*CheckoutClient, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	c := &CheckoutClient{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CreateSession creates a hosted checkout session and returns its redirect
// URL. Rejected with ErrCheckoutUnavailableOnMobile before any network call
// when the context platform is a native mobile app.
func (c *CheckoutClient) CreateSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	if platform.IsNativeContext(ctx) {
		return nil, ErrCheckoutUnavailableOnMobile
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Join(ErrCheckoutRequestFailed, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Join(ErrCheckoutRequestFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, errors.Join(ErrCheckoutRequestFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errors.Join(ErrCheckoutRequestFailed,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, errors.Join(ErrCheckoutRequestFailed, err)
	}
	if session.URL == "" {
		return nil, ErrNoCheckoutURL
	}

	return &session, nil
}
