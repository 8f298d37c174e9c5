// Package logger builds configured slog.Logger instances with automatic
// context attribute injection.
//
// The returned logger wraps its handler so that registered ContextExtractor
// functions run on every emitted record. Combined with extractors such as
// platform.LoggerExtractor, request-scoped values travel through
// context.Context and appear on log lines without explicit plumbing:
//
//	log := logger.New(
//		logger.WithProduction("entitlements"),
//		logger.WithContextExtractors(platform.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "billing status resolved")
//
// Domain attribute helpers (HouseholdID, Provider, FlowState) keep log
// field names consistent across packages.
package logger
