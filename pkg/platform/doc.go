// Package platform propagates the client platform (web, ios, android)
// through context.Context, HTTP requests and structured logs.
//
// The platform determines purchase policy: native mobile clients must buy
// through the in-app purchase provider, while web clients use the hosted
// checkout. Handlers and services read the platform from context rather
// than taking it as a parameter, so the gate is applied consistently.
//
// # Usage
//
//	r := chi.NewRouter()
//	r.Use(platform.Middleware())
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		if platform.IsNativeContext(r.Context()) {
//			// reject web checkout, point at the in-app purchase flow
//		}
//	}
//
// Unknown or missing platform values always resolve to Web, which carries
// the strictest purchase rules, so a client that fails to identify itself
// can never bypass the native-purchase gate.
package platform
