// Package httpapi assembles the public HTTP surface. It should delegate to
// domain services without embedding business logic so transport concerns
// remain isolated.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stellium/internal/transport/http/shared"
)

// Registrar is implemented by every domain handler package.
type Registrar interface {
	Register(r chi.Router)
}

// HealthChecker reports the health of one backing dependency.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// NewRouter wires all public endpoints: the domain handlers, the liveness
// probe and the Prometheus scrape endpoint.
func NewRouter(healthCheckers map[string]HealthChecker, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()

	for _, h := range handlers {
		h.Register(r)
	}

	r.Get("/healthz", handleHealthz(healthCheckers))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// handleHealthz reports liveness plus per-dependency health. A failing
// dependency flips the status to 503 and names the culprit.
func handleHealthz(checkers map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		deps := make(map[string]string, len(checkers))
		for name, c := range checkers {
			if err := c.Health(r.Context()); err != nil {
				deps[name] = "unhealthy"
				status = http.StatusServiceUnavailable
				continue
			}
			deps[name] = "ok"
		}

		body := map[string]any{"status": "ok"}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		if len(deps) > 0 {
			body["dependencies"] = deps
		}
		shared.WriteJSON(w, status, body)
	}
}
