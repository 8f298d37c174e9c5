package platform

import (
	"net/http"
	"strings"
)

// HeaderName is the request header native clients send to identify their
// platform. Absent or unknown values resolve to Web.
const HeaderName = "X-Client-Platform"

// Middleware returns a middleware that reads the client platform from the
// request header and attaches it to the request context, making platform
// gating available to every downstream handler without explicit plumbing.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := Parse(r.Header.Get(HeaderName))
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), p)))
		})
	}
}

// Parse normalizes a raw platform string. Unknown values resolve to Web so
// a spoofed or missing header can only ever tighten purchase policy, never
// loosen it.
func Parse(raw string) Platform {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "ios", "iphone", "ipad":
		return IOS
	case "android":
		return Android
	default:
		return Web
	}
}
