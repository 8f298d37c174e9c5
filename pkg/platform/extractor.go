package platform

import (
	"context"
	"log/slog"
)

// LoggerExtractor returns a context extractor that injects the client
// platform into structured log records.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if p, ok := ctx.Value(contextKey{}).(Platform); ok {
			return slog.String("platform", string(p)), true
		}
		return slog.Attr{}, false
	}
}
