// Package httpserver runs the entitlement HTTP surface with graceful
// shutdown on context cancellation or SIGINT/SIGTERM.
//
//	srv := httpserver.New(
//		httpserver.WithAddr(":8080"),
//		httpserver.WithLogger(log),
//	)
//
//	r := chi.NewRouter()
//	r.Mount("/entitlements", entitlements.Router(svc, checkout))
//	r.Get("/health", httpserver.HealthCheckHandler(log, pg.Healthcheck(pool), redis.Healthcheck(rdb)))
//
//	if err := srv.Run(ctx, r); err != nil {
//		log.Error("server exited", logger.Error(err))
//	}
package httpserver
