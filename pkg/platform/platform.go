package platform

import "context"

// Platform identifies the client platform a request or session originates
// from. Purchase policy differs per platform: app-store rules require that
// native mobile clients buy through the in-app purchase provider, never
// through a web checkout.
type Platform string

const (
	// Web covers browsers and desktop wrappers.
	Web Platform = "web"
	// IOS is the native iOS app.
	IOS Platform = "ios"
	// Android is the native Android app.
	Android Platform = "android"
)

// IsNative reports whether the platform is a native mobile app.
func (p Platform) IsNative() bool {
	return p == IOS || p == Android
}

// Valid reports whether the platform is one of the known values.
func (p Platform) Valid() bool {
	return p == Web || p == IOS || p == Android
}

type contextKey struct{}

// WithContext attaches the client platform to a context.
func WithContext(ctx context.Context, p Platform) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext retrieves the client platform from a context.
// Defaults to Web when no platform was attached: the web rules are the
// strictest for purchases, so an unknown client is treated as web.
func FromContext(ctx context.Context) Platform {
	if ctx == nil {
		return Web
	}
	if p, ok := ctx.Value(contextKey{}).(Platform); ok && p.Valid() {
		return p
	}
	return Web
}

// IsNativeContext reports whether the context carries a native mobile platform.
func IsNativeContext(ctx context.Context) bool {
	return FromContext(ctx).IsNative()
}
