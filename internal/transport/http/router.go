package httptransport

import (
	"log/slog"
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rutcheck/internal/platform/metrics"
	"rutcheck/internal/platform/middleware"
	dErrors "rutcheck/pkg/domain-errors"
	"rutcheck/pkg/platform/httputil"
)

// Registrar mounts a group of routes.
type Registrar interface {
	Register(r chi.Router)
}

// RouterConfig carries what the router needs beyond the handlers.
type RouterConfig struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	RequestTimeout time.Duration
	// TrustedProxies may set the client IP through forwarding headers.
	TrustedProxies []netip.Prefix
}

// NewRouter wires the middleware chain, the operational endpoints and every
// registrar. Operational endpoints sit outside the request timeout.
func NewRouter(cfg RouterConfig, registrars ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata(cfg.TrustedProxies))
	r.Use(middleware.Logger(cfg.Logger))

	r.Get("/healthz", handleHealth)
	if cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		if cfg.RequestTimeout > 0 {
			r.Use(chimw.Timeout(cfg.RequestTimeout))
		}
		r.Use(middleware.LatencyMiddleware(cfg.Metrics))
		for _, reg := range registrars {
			reg.Register(r)
		}
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "route not found"))
	})
	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
