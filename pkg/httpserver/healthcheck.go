package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hearthhq/hearthkit/pkg/logger"
)

// HealthCheckHandler returns a handler for liveness and readiness probes.
// With no probe functions it always answers 200 "ALIVE". With probes (for
// example pg.Healthcheck and redis.Healthcheck) it runs each one and
// answers 200 "READY" only when all succeed.
func HealthCheckHandler(log *slog.Logger, probes ...func(context.Context) error) http.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if len(probes) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		for _, probe := range probes {
			if err := probe(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness probe failed", logger.Error(err))
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
